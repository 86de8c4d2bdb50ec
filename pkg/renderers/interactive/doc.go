// Package interactive renders a form as a full-screen terminal session.
//
// The session keeps every control on screen at once: Tab and Shift+Tab move
// focus, Space toggles checkboxes and menu options, Left and Right move
// through menu options and Enter submits. Answers reach the form through
// its rendered tree, so values, touched flags and errors behave exactly as
// they do in HTML output.
package interactive
