// Package orchestrator wires the pipeline from a form source to rendered
// output: OpenAPI operations or declarative form documents become
// descriptors, descriptors become a configured form, and a registered
// renderer turns the form into bytes.
package orchestrator
