// Package model defines the declarative form description: field descriptors,
// row groups, actions and feedback entries. Descriptors are plain data (with
// optional callbacks) and decode from JSON or YAML, where a list element that
// is a mapping becomes a single field and a nested sequence becomes a row
// group. Callbacks (Validate, OnChange, Container, Action.OnClick) are never
// serialised; loaders attach them after decoding.
package model
