package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
)

// WithThemeSelector resolves the theme of every form through selector.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemes selects among manifests, using defaultTheme and
// defaultVariant when a request names none.
func WithThemes(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) Option {
	return func(o *Orchestrator) {
		o.themeSelector = NewManifestSelector(defaultTheme, defaultVariant, manifests...)
	}
}

// WithThemeFallbacks sets the partials used when a selected theme does not
// override them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = copyStrings(fallbacks)
	}
}

func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		vanilla.PagePartial: vanilla.PageTemplate,
	}
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}
	return rendererConfig(selection, o.themeFallbacks), nil
}

// rendererConfig flattens a selection: variant templates, tokens and asset
// files override the manifest's, which override fallbacks. Every token is
// also exposed as a "--name" CSS variable.
func rendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: copyStrings(fallbacks),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}
	if cfg.Partials == nil {
		cfg.Partials = map[string]string{}
	}

	prefix := ""
	files := map[string]string{}
	if m := selection.Manifest; m != nil {
		merge(cfg.Partials, m.Templates)
		merge(cfg.Tokens, m.Tokens)
		merge(files, m.Assets.Files)
		prefix = m.Assets.Prefix
		if variant, ok := m.Variants[selection.Variant]; ok {
			merge(cfg.Partials, variant.Templates)
			merge(cfg.Tokens, variant.Tokens)
			merge(files, variant.Assets.Files)
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
		}
	}
	for name, value := range cfg.Tokens {
		cfg.CSSVars[cssVarName(name)] = value
	}
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

// assetResolver maps asset keys to URLs under prefix. Unknown keys resolve
// to "" so callers can skip them; absolute URLs are returned unchanged.
func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") || prefix == "" {
			return file
		}
		return prefix + "/" + file
	}
}

func cssVarName(token string) string {
	if strings.HasPrefix(token, "--") {
		return token
	}
	return "--" + strings.ReplaceAll(token, ".", "-")
}

func merge(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

func copyStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	merge(out, in)
	return out
}

// ManifestSelector implements theme.ThemeSelector over a fixed set of
// manifests.
type ManifestSelector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes manifests by name. Nil manifests are ignored.
func NewManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) *ManifestSelector {
	s := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   defaultTheme,
		defaultVariant: defaultVariant,
	}
	for _, m := range manifests {
		if m != nil {
			s.manifests[m.Name] = m
		}
	}
	return s
}

// Select returns the named theme, falling back to the defaults. A variant
// the manifest does not declare is an error.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.defaultTheme
	}
	m, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theme %q not registered", name)
	}
	if variant == "" && name == s.defaultTheme {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}
