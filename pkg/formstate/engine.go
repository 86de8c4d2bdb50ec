package formstate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Engine is the shared form state: values, per-field errors, touched flags and
// the in-flight submission flag. SetFieldValue is the only write path for
// values. Subscribers are notified after every mutation, outside the lock.
type Engine struct {
	mu sync.Mutex

	initial     map[string]any
	values      map[string]any
	errors      map[string]string
	touched     map[string]bool
	validators  map[string]model.ValidateFunc
	order       []string
	submitting  bool
	validating  bool
	submitCount int

	onSubmit SubmitFunc
	logger   *slog.Logger

	subscribers map[int]func()
	nextSub     int
}

// New seeds an engine with initial values.
func New(initial map[string]any, options ...Option) *Engine {
	e := &Engine{
		initial:     cloneValues(initial),
		values:      cloneValues(initial),
		errors:      make(map[string]string),
		touched:     make(map[string]bool),
		validators:  make(map[string]model.ValidateFunc),
		logger:      slog.New(slog.DiscardHandler),
		subscribers: make(map[int]func()),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Subscribe registers fn to run after every state change and returns a
// function removing it.
func (e *Engine) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subscribers[id] = fn
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.subscribers, id)
		e.mu.Unlock()
	}
}

// RegisterField declares a field and its validator. Registering again
// replaces the validator and keeps the original order.
func (e *Engine) RegisterField(name string, validate model.ValidateFunc) {
	if name == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.validators[name]; !ok {
		e.order = append(e.order, name)
	}
	e.validators[name] = validate
}

// Fields returns registered field names in registration order.
func (e *Engine) Fields() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.order...)
}

// Value returns the value stored for name.
func (e *Engine) Value(name string) any {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, _ := lookup(e.values, name)
	return v
}

// Values returns a copy of every value.
func (e *Engine) Values() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneValues(e.values)
}

// SetFieldValue writes value for name. A touched field is revalidated so a
// shown error clears once the value becomes valid; untouched fields are not.
func (e *Engine) SetFieldValue(name string, value any) {
	e.mu.Lock()
	if err := store(e.values, name, value); err != nil {
		e.logger.Warn("set field value", slog.String("field", name), slog.Any("error", err))
	}
	_, registered := e.validators[name]
	revalidate := registered && e.touched[name]
	e.mu.Unlock()
	if revalidate {
		e.validate([]string{name})
	}
	e.notify()
}

// Error returns the current error for name.
func (e *Engine) Error(name string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errors[name]
}

// Errors returns a copy of every non-empty error.
func (e *Engine) Errors() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.errors))
	for k, v := range e.errors {
		out[k] = v
	}
	return out
}

// SetFieldError stores msg as the error of name. An empty msg clears it.
func (e *Engine) SetFieldError(name, msg string) {
	e.mu.Lock()
	e.setError(name, msg)
	e.mu.Unlock()
	e.notify()
}

// SetErrors replaces every error.
func (e *Engine) SetErrors(errs map[string]string) {
	e.mu.Lock()
	e.errors = make(map[string]string, len(errs))
	for k, v := range errs {
		e.setError(k, v)
	}
	e.mu.Unlock()
	e.notify()
}

// IsTouched reports whether name was blurred or submitted.
func (e *Engine) IsTouched(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.touched[name]
}

// Touched returns a copy of the touched flags.
func (e *Engine) Touched() map[string]bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]bool, len(e.touched))
	for k, v := range e.touched {
		out[k] = v
	}
	return out
}

// SetFieldTouched updates the touched flag without validating.
func (e *Engine) SetFieldTouched(name string, touched bool) {
	e.mu.Lock()
	e.touched[name] = touched
	e.mu.Unlock()
	e.notify()
}

// Blur marks name touched and validates it.
func (e *Engine) Blur(name string) string {
	e.mu.Lock()
	e.touched[name] = true
	e.mu.Unlock()
	msg := e.validate([]string{name})[name]
	e.notify()
	return msg
}

// ValidateField runs the validator of name and stores its result.
func (e *Engine) ValidateField(name string) string {
	msg := e.validate([]string{name})[name]
	e.notify()
	return msg
}

// ValidateForm runs every validator and returns the failing fields.
func (e *Engine) ValidateForm() map[string]string {
	failed := failures(e.validate(e.Fields()))
	e.notify()
	return failed
}

// IsSubmitting reports whether a submission is in flight.
func (e *Engine) IsSubmitting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitting
}

// SubmitCount returns the number of submit attempts.
func (e *Engine) SubmitCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitCount
}

// SetSubmitting sets the in-flight flag.
func (e *Engine) SetSubmitting(submitting bool) {
	e.mu.Lock()
	e.submitting = submitting
	e.mu.Unlock()
	e.notify()
}

// SubmitForm touches and validates every registered field, then invokes the
// submit handler when none failed. A blocked attempt returns a
// *ValidationError matching ErrInvalid.
func (e *Engine) SubmitForm(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e.mu.Lock()
	if e.submitting || e.validating {
		e.mu.Unlock()
		return ErrSubmitInFlight
	}
	e.submitCount++
	for _, name := range e.order {
		e.touched[name] = true
	}
	names := append([]string(nil), e.order...)
	e.validating = true
	e.mu.Unlock()

	failed := failures(e.validate(names))

	e.mu.Lock()
	e.validating = false
	if len(failed) > 0 {
		e.mu.Unlock()
		e.logger.Debug("submit blocked", slog.Int("invalid_fields", len(failed)))
		e.notify()
		return &ValidationError{Fields: failed}
	}
	handler := e.onSubmit
	values := cloneValues(e.values)
	e.submitting = handler != nil
	e.mu.Unlock()
	e.notify()

	if handler == nil {
		return nil
	}

	helpers := &Helpers{engine: e}
	err := handler(ctx, values, helpers)

	e.mu.Lock()
	if !helpers.keepSubmitting {
		e.submitting = false
	}
	e.mu.Unlock()
	e.notify()

	if err != nil {
		e.logger.Info("submit handler failed", slog.Any("error", err))
		return fmt.Errorf("formstate: submit: %w", err)
	}
	return nil
}

// Reset restores the initial values (or values, when given) and clears
// errors, touched flags and the in-flight flag.
func (e *Engine) Reset(values ...map[string]any) {
	e.mu.Lock()
	if len(values) > 0 && values[0] != nil {
		e.initial = cloneValues(values[0])
	}
	e.values = cloneValues(e.initial)
	e.errors = make(map[string]string)
	e.touched = make(map[string]bool)
	e.submitting = false
	e.mu.Unlock()
	e.notify()
}

func (e *Engine) setError(name, msg string) {
	if msg == "" {
		delete(e.errors, name)
		return
	}
	e.errors[name] = msg
}

type check struct {
	name     string
	validate model.ValidateFunc
	value    any
}

// validate runs the validators of names against a snapshot of their values
// and stores the results. Validators run without the lock held, so they may
// read other fields through the engine.
func (e *Engine) validate(names []string) map[string]string {
	e.mu.Lock()
	checks := make([]check, 0, len(names))
	for _, name := range names {
		value, _ := lookup(e.values, name)
		checks = append(checks, check{name: name, validate: e.validators[name], value: value})
	}
	e.mu.Unlock()

	results := make(map[string]string, len(checks))
	for _, c := range checks {
		results[c.name] = e.runValidator(c.name, c.validate, c.value)
	}

	e.mu.Lock()
	for name, msg := range results {
		e.setError(name, msg)
	}
	e.mu.Unlock()
	return results
}

func failures(results map[string]string) map[string]string {
	failed := make(map[string]string)
	for name, msg := range results {
		if msg != "" {
			failed[name] = msg
		}
	}
	return failed
}

// runValidator treats a panicking validator as reporting no error.
func (e *Engine) runValidator(name string, validate model.ValidateFunc, value any) (msg string) {
	if validate == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("validator panicked", slog.String("field", name), slog.Any("panic", r))
			msg = ""
		}
	}()
	return validate(value)
}

func (e *Engine) notify() {
	e.mu.Lock()
	subs := make([]func(), 0, len(e.subscribers))
	for i := 0; i < e.nextSub; i++ {
		if fn, ok := e.subscribers[i]; ok {
			subs = append(subs, fn)
		}
	}
	e.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
