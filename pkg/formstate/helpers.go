package formstate

// Helpers is handed to the submit handler so it can steer the engine while
// the submission runs.
type Helpers struct {
	engine         *Engine
	keepSubmitting bool
}

// SetSubmitting controls the in-flight flag. Passing true keeps the flag
// raised after the handler returns; the caller clears it later with
// Engine.SetSubmitting(false).
func (h *Helpers) SetSubmitting(submitting bool) {
	h.keepSubmitting = submitting
	h.engine.SetSubmitting(submitting)
}

// SetFieldError records a server-side error for name.
func (h *Helpers) SetFieldError(name, msg string) {
	h.engine.SetFieldError(name, msg)
}

// SetErrors replaces all errors.
func (h *Helpers) SetErrors(errs map[string]string) {
	h.engine.SetErrors(errs)
}

// ResetForm restores the initial values.
func (h *Helpers) ResetForm(values ...map[string]any) {
	h.keepSubmitting = false
	h.engine.Reset(values...)
}

// Engine exposes the engine the submission belongs to.
func (h *Helpers) Engine() *Engine {
	return h.engine
}
