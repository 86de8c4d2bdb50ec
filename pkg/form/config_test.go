package form_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/view"
)

func configErrors(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	if !errors.Is(err, form.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	var out []string
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}
	for _, e := range joined.Unwrap() {
		if nested, ok := e.(interface{ Unwrap() []error }); ok {
			for _, n := range nested.Unwrap() {
				out = append(out, n.Error())
			}
			continue
		}
		out = append(out, e.Error())
	}
	return out
}

func TestNew_ConfigErrors(t *testing.T) {
	cases := map[string]struct {
		cfg  form.Config
		opts []form.Option
		want []string
	}{
		"valid": {
			cfg: form.Config{Form: model.Form{Fields: model.Entries(
				model.Field{Name: "a", Type: model.FieldTypeText},
				model.Field{Type: model.FieldTypeHeader, Heading: "No name needed"},
				model.Field{Name: "b", Type: "radio"},
			)}},
		},
		"missing name": {
			cfg: form.Config{Form: model.Form{Fields: model.Entries(
				model.Field{Type: model.FieldTypeEmail},
			)}},
			want: []string{"form: fields[0]: email field requires a name"},
		},
		"duplicate name across group": {
			cfg: form.Config{Form: model.Form{Fields: []model.Entry{
				model.Single(model.Field{Name: "a", Type: model.FieldTypeText}),
				model.Row(model.Field{Name: "b", Type: model.FieldTypeText}, model.Field{Name: "a", Type: model.FieldTypeText}),
			}}},
			want: []string{`form: fields[1][1]: duplicate field name "a" (first declared at fields[0])`},
		},
		"duplicate group key and empty group": {
			cfg: form.Config{Form: model.Form{Fields: []model.Entry{
				model.Row(model.Field{ID: "x", Name: "a", Type: model.FieldTypeText}, model.Field{ID: "y", Name: "b", Type: model.FieldTypeText}),
				model.Row(model.Field{ID: "x", Name: "c", Type: model.FieldTypeText}, model.Field{ID: "y", Name: "d", Type: model.FieldTypeText}),
				model.Row(),
			}}},
			want: []string{
				`form: fields[1]: duplicate group key "x-y" (first declared at fields[0])`,
				"form: fields[2]: group has no fields",
			},
		},
		"button without handler": {
			cfg: form.Config{Form: model.Form{Actions: []model.Action{
				{Title: "Save", Type: model.ActionSubmit},
				{Title: "Cancel"},
			}}},
			want: []string{`form: actions[1]: button action "Cancel" requires OnClick`},
		},
		"duplicate feedback": {
			cfg: form.Config{Form: model.Form{Feedback: model.Feedback{
				{Kind: model.FeedbackSuccess},
				{Kind: model.FeedbackSuccess},
				{},
			}}},
			want: []string{
				`form: feedback[1]: duplicate feedback kind "success" (first declared at feedback[0])`,
				"form: feedback[2]: feedback entry requires a kind",
			},
		},
		"strict types": {
			cfg: form.Config{Form: model.Form{Fields: model.Entries(
				model.Field{Name: "b", Type: "radio"},
			)}},
			opts: []form.Option{form.WithStrictTypes()},
			want: []string{`form: fields[0]: unknown field type "radio"`},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := form.New(tc.cfg, tc.opts...)
			if diff := cmp.Diff(tc.want, configErrors(t, err)); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
			var cfgErr *form.ConfigError
			if tc.want != nil && !errors.As(err, &cfgErr) {
				t.Fatalf("expected a *ConfigError in %v", err)
			}
		})
	}
}

func TestNew_UnknownTypeRendersNothingAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	f, err := form.New(form.Config{Form: model.Form{Fields: model.Entries(
		model.Field{Name: "choice", Type: "radio", Label: "Choice"},
		model.Field{Name: "name", Type: model.FieldTypeText},
	)}}, form.WithLogger(logger))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	root := f.Render()
	if root.ByTestID("dynamic-form--choice-field") != nil {
		t.Fatalf("unknown type must not render a control")
	}
	if root.ByTestID("dynamic-form--name-field") == nil {
		t.Fatalf("the remaining fields must still render")
	}
	if !strings.Contains(buf.String(), "unknown field type renders no control") || !strings.Contains(buf.String(), "type=radio") {
		t.Fatalf("expected an info log, got %q", buf.String())
	}
	if diff := cmp.Diff([]string{"name"}, f.Engine().Fields()); diff != "" {
		t.Fatalf("registered fields mismatch (-want +got):\n%s", diff)
	}
}

func TestControls_ListsInteractiveFields(t *testing.T) {
	f := mustForm(t, form.Config{Form: model.Form{
		TestID: "profile",
		Fields: []model.Entry{
			model.Single(model.Field{Type: model.FieldTypeHeader, Heading: "About"}),
			model.Row(
				model.Field{Name: "born", Type: model.FieldTypeDatepicker},
				model.Field{Name: "nick", Type: model.FieldTypeText, TestID: "nickname"},
			),
		},
	}})
	var got [][2]string
	for _, ctl := range f.Controls() {
		got = append(got, [2]string{ctl.TestID, ctl.InputTestID})
	}
	want := [][2]string{
		{"profile--born-field", "profile--born-field--input"},
		{"nickname", "nickname"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("controls mismatch (-want +got):\n%s", diff)
	}
}

func TestStylesFor_UsesThemeTokens(t *testing.T) {
	defaults := form.StylesFor(nil)
	if defaults.FormLine["gap"] != "16px" || defaults.FormControl["margin-bottom"] != "20px" {
		t.Fatalf("unexpected defaults: %v %v", defaults.FormLine, defaults.FormControl)
	}
	themed := form.StylesFor(&theme.RendererConfig{Tokens: map[string]string{"space-4": "2rem", "space-5": " "}})
	if themed.FormLine["gap"] != "2rem" {
		t.Fatalf("expected themed gap, got %q", themed.FormLine["gap"])
	}
	if themed.FormControl["margin-bottom"] != "20px" {
		t.Fatalf("blank tokens must fall back, got %q", themed.FormControl["margin-bottom"])
	}
}

func TestBinder_FieldStyleReplacesWrapperStyle(t *testing.T) {
	f := mustForm(t, form.Config{Form: model.Form{Fields: model.Entries(
		model.Field{Name: "plain", Type: model.FieldTypeText},
		model.Field{Name: "custom", Type: model.FieldTypeText, Style: map[string]string{"padding": "0"}},
		model.Field{Name: "agree", Type: model.FieldTypeCheckbox, Label: "Agree"},
	)}})
	wrappers := f.Render().AllByTestID("dynamic-form--form-control")
	if len(wrappers) != 3 {
		t.Fatalf("expected 3 wrappers, got %d", len(wrappers))
	}
	want := []string{
		"margin-bottom: 20px; white-space: break-spaces",
		"padding: 0",
		"align-items: center; display: flex; flex-wrap: wrap; line-height: 40px; margin-bottom: 20px; white-space: break-spaces",
	}
	var got []string
	for _, w := range wrappers {
		got = append(got, w.AttrValue("style"))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("wrapper styles mismatch (-want +got):\n%s", diff)
	}
}

func TestWithWidgets_OverridesKind(t *testing.T) {
	registry := controls.NewDefaultRegistry()
	err := registry.Register(controls.KindText, controls.Descriptor{
		Name: "badge",
		Widget: func(p controls.Props) *view.Node {
			return view.El("output", view.Attrs{"id": p.ID, "data-testid": p.TestID}, view.Text(controls.Text(p.Value)))
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	f := mustForm(t, form.Config{Form: model.Form{
		InitialValues: map[string]any{"name": "Ada"},
		Fields:        model.Entries(model.Field{Name: "name", Type: model.FieldTypeText}),
	}}, form.WithWidgets(registry))
	got := f.Render().ByTestID("dynamic-form--name-field")
	if got == nil || got.Tag != "output" || got.TextContent() != "Ada" {
		t.Fatalf("expected the custom widget, got %s", view.HTML(f.Render()))
	}
}
