package formstate

import (
	"context"
	"log/slog"
)

// SubmitFunc receives the current values once every field validated. The
// engine clears its in-flight flag when the function returns unless the
// function called Helpers.SetSubmitting(true).
type SubmitFunc func(ctx context.Context, values map[string]any, helpers *Helpers) error

// Option configures an Engine.
type Option func(*Engine)

// WithSubmit registers the submit handler.
func WithSubmit(fn SubmitFunc) Option {
	return func(e *Engine) {
		e.onSubmit = fn
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
