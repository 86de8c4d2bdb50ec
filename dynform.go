// Package dynform renders forms from declarative descriptors. Descriptors
// come from Go values, YAML or JSON form documents, or OpenAPI request
// bodies; the resulting form keeps its values, errors and touched state in
// a form-state engine and renders as HTML or drives a terminal session.
//
// The subpackages hold the pieces; this package exposes the common entry
// points.
package dynform

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/form"
	pkgopenapi "github.com/goliatone/go-dynform/pkg/openapi"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
)

// Config aliases form.Config.
type Config = form.Config

// RenderOptions describes per-request values, server errors and submission
// settings applied on top of a configured form.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// New builds a form from cfg.
func New(cfg Config, options ...form.Option) (*form.Form, error) {
	return form.New(cfg, options...)
}

// RenderHTML renders f as a standalone HTML page with the built-in
// templates.
func RenderHTML(ctx context.Context, f *form.Form, opts RenderOptions) ([]byte, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, f, opts)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the OpenAPI source, builds the form of the requested
// operation and renders it as HTML.
func GenerateHTML(ctx context.Context, source pkgopenapi.Source, operationID string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
	})
}

// GenerateHTMLFromDocument renders the form of an operation from a document
// that is already loaded.
func GenerateHTMLFromDocument(ctx context.Context, doc pkgopenapi.Document, operationID string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document:    &doc,
		OperationID: operationID,
	})
}

// WithSchemaFS registers declarative form documents with the orchestrator.
func WithSchemaFS(fsys fs.FS) orchestrator.Option {
	return orchestrator.WithSchemaFS(fsys)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme and variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemes selects among manifests with the given defaults.
func WithThemes(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) orchestrator.Option {
	return orchestrator.WithThemes(defaultTheme, defaultVariant, manifests...)
}
