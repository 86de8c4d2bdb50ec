package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-dynform/pkg/view"
)

// HiddenField is a hidden input emitted inside the form element, next to the
// rendered controls.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken carries a request-forgery token under the backend's input name,
// for example "_csrf" or "csrf_token".
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// SessionField carries the id of the server-side form session.
func SessionField(id string) HiddenField {
	return Hidden("_session", id)
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			out[name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns fields ordered by name, dropping empty names.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	result := make([]HiddenField, 0, len(fields))
	for name, value := range fields {
		if key := strings.TrimSpace(name); key != "" {
			result = append(result, HiddenField{Name: key, Value: value})
		}
	}
	if len(result) == 0 {
		return nil
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Decorate applies the submission target and hidden fields of opts to the
// first form element under root. It returns root.
func Decorate(root *view.Node, opts RenderOptions) *view.Node {
	if root == nil {
		return nil
	}
	formNode := root.Find(func(n *view.Node) bool { return n.Tag == "form" })
	if formNode == nil {
		return root
	}
	if action := strings.TrimSpace(opts.Action); action != "" {
		formNode.SetAttr("action", action)
	}
	if method := strings.ToLower(strings.TrimSpace(opts.Method)); method != "" {
		formNode.SetAttr("method", method)
	}
	hidden := SortedHiddenFields(opts.HiddenFields)
	if len(hidden) == 0 {
		return root
	}
	inputs := make([]*view.Node, 0, len(hidden))
	for _, field := range hidden {
		inputs = append(inputs, view.El("input", view.Attrs{
			"type":  "hidden",
			"name":  field.Name,
			"value": field.Value,
		}))
	}
	formNode.Children = append(inputs, formNode.Children...)
	return root
}
