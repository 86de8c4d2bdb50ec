package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry per-request data that renderers apply on top of a
// configured form without changing its descriptors.
type RenderOptions struct {
	// Values pre-populate controls by dotted field path before rendering.
	Values map[string]any
	// Errors surface server-side validation feedback keyed by field path.
	// Paths are normalised with MapErrorPayload; Apply returns the messages
	// of unknown paths as form-level messages.
	Errors map[string][]string
	// Theme overrides the page-level theme of HTML renderers.
	Theme *theme.RendererConfig
	// HiddenFields are emitted as hidden inputs inside the form element.
	HiddenFields map[string]string
	// Action and Method set the submission target of HTML output.
	Action string
	Method string
	// Title names the page or terminal session.
	Title string
}
