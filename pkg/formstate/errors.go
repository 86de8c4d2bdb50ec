package formstate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalid reports a submit attempt blocked by field validation.
	ErrInvalid = errors.New("formstate: form is invalid")
	// ErrSubmitInFlight reports a submit attempt while a previous submission
	// is still marked as in flight.
	ErrSubmitInFlight = errors.New("formstate: submission already in flight")
)

// ValidationError lists the field messages that blocked a submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "formstate: validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match ErrInvalid.
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}
