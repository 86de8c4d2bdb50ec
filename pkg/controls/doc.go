// Package controls resolves field descriptors to abstract control kinds and
// provides the built-in widgets that render them.
//
// Resolution is total: every type tag maps to exactly one kind, and tags that
// are not recognised fall back to KindNone. Widgets live in a Registry so
// callers can replace the rendering of a kind without changing how fields are
// bound to form state.
package controls
