// Package view is a small retained element tree used by every renderer.
//
// Widgets build Nodes, HTML serialises them, and Document dispatches
// interactions against the current tree, re-rendering after each event. The
// query helpers (ByTestID, ByLabelText, ByRole, ByText) locate elements the
// way a user or an accessibility tool would.
package view
