package render

import (
	"context"

	"github.com/goliatone/go-dynform/pkg/form"
)

// Renderer turns a configured form into an output representation: an HTML
// page, or the JSON values collected by a terminal session.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *form.Form, options RenderOptions) ([]byte, error)
}
