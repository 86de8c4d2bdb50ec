package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, *form.Form, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(namedRenderer("vanilla"))
	registry.MustRegister(namedRenderer("TUI"))

	if err := registry.Register(namedRenderer("tui")); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := registry.Register(namedRenderer(" ")); err == nil {
		t.Fatalf("expected name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}

	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	def, err := registry.Get("")
	if err != nil || def.Name() != "vanilla" {
		t.Fatalf("expected first registered renderer as default, got %v %v", def, err)
	}
	if err := registry.SetDefault("Tui"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	def, _ = registry.Get("")
	if def.Name() != "TUI" {
		t.Fatalf("expected tui default, got %s", def.Name())
	}
	if _, err := registry.Get("preact"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	if !registry.Has(" VANILLA ") {
		t.Fatalf("lookups must ignore case and spacing")
	}
}
