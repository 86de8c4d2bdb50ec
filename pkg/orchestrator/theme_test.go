package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
)

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-primary": "#123456",
			"radius":        "4px",
			"space-5":       "32px",
		},
		Templates: map[string]string{
			"forms.help": "acme/help",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"dynform.css": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color-primary": "#654321",
				},
				Templates: map[string]string{
					vanilla.PagePartial: "acme/dark/page",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"dynform.css": "theme.dark.css",
					},
				},
			},
		},
	}
}

func TestForm_PassesSelectedThemeToRenderer(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "custom-variant",
		Manifest: &theme.Manifest{Name: "acme", Tokens: map[string]string{"brand": "#123456"}},
	}}
	orch, renderer := newCapture(t, orchestrator.WithThemeSelector(selector))

	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Document:     contactsDocument(t),
		OperationID:  "createContact",
		ThemeName:    "custom-theme",
		ThemeVariant: "custom-variant",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(selector.calls) != 1 || selector.calls[0] != (selectorCall{"custom-theme", "custom-variant"}) {
		t.Fatalf("unexpected selector calls: %+v", selector.calls)
	}
	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg != renderer.form.Config().Theme {
		t.Fatalf("form and renderer should share the theme config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "custom-variant" {
		t.Fatalf("unexpected theme %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Partials[vanilla.PagePartial] != vanilla.PageTemplate {
		t.Fatalf("fallback partial missing: %v", cfg.Partials)
	}
	if cfg.CSSVars["--brand"] != "#123456" {
		t.Fatalf("css vars not derived from tokens: %v", cfg.CSSVars)
	}
	if cfg.AssetURL == nil || cfg.AssetURL("dynform.css") != "" {
		t.Fatalf("expected a resolver returning no url for unknown assets")
	}
}

func TestForm_ManifestVariantsOverrideBase(t *testing.T) {
	orch, renderer := newCapture(t, orchestrator.WithThemes("acme", "dark", acmeManifest()))

	if _, err := orch.Generate(context.Background(), orchestrator.Request{
		Document:    contactsDocument(t),
		OperationID: "createContact",
	}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil || cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme config: %+v", cfg)
	}
	if cfg.Partials[vanilla.PagePartial] != "acme/dark/page" {
		t.Fatalf("variant template override missing: %v", cfg.Partials)
	}
	if cfg.Partials["forms.help"] != "acme/help" {
		t.Fatalf("base template missing: %v", cfg.Partials)
	}
	if cfg.Tokens["color-primary"] != "#654321" || cfg.Tokens["radius"] != "4px" {
		t.Fatalf("tokens not merged with variant: %v", cfg.Tokens)
	}
	if cfg.CSSVars["--color-primary"] != "#654321" {
		t.Fatalf("css vars not derived from variant tokens: %v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("dynform.css"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := renderer.form.Styles().FormControl["margin-bottom"]; got != "32px" {
		t.Fatalf("form styles should follow the theme tokens, got %q", got)
	}
}

func TestForm_ThemeSelectionErrors(t *testing.T) {
	orch, _ := newCapture(t, orchestrator.WithThemeSelector(&stubThemeSelector{err: errors.New("boom")}))
	_, err := orch.Generate(context.Background(), orchestrator.Request{Document: contactsDocument(t), OperationID: "createContact"})
	if err == nil || !strings.Contains(err.Error(), "select theme: boom") {
		t.Fatalf("expected selector error, got %v", err)
	}
}

func TestManifestSelector(t *testing.T) {
	selector := orchestrator.NewManifestSelector("acme", "dark", acmeManifest(), nil)

	sel, err := selector.Select("", "")
	if err != nil || sel.Theme != "acme" || sel.Variant != "dark" {
		t.Fatalf("defaults not applied: %+v, %v", sel, err)
	}
	if sel, err := selector.Select("acme", "dark"); err != nil || sel.Manifest == nil {
		t.Fatalf("explicit selection failed: %v", err)
	}
	if _, err := selector.Select("other", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if _, err := selector.Select("acme", "sepia"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
}
