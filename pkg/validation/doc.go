// Package validation provides ready-made model.ValidateFunc builders.
//
// Every builder returns the empty string for acceptable values and a
// human-readable message otherwise. Apart from Required, builders let empty
// values through so they compose with it.
package validation
