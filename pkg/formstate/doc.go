// Package formstate implements the form-state engine shared by every control
// of a form. Validation runs on blur and on submit attempts only; a submit
// attempt touches every registered field, validates all of them and calls the
// submit handler only when none failed. Validators that panic are treated as
// reporting no error.
package formstate
