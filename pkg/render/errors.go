package render

import (
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
)

// ErrorMapping splits a server error payload into field-level messages keyed
// by field name and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Empty reports whether the mapping carries no message.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MergeFormErrors concatenates form-level messages, trimming blanks and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload resolves payload keys (dotted paths, JSON pointers,
// bracketed indexes, request wrappers such as "body.") against the field
// names declared by form. Keys that match no field are reported as
// form-level messages so nothing is lost.
func MapErrorPayload(form model.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	names := make(map[string]struct{})
	for _, field := range form.AllFields() {
		if !field.Type.DataBearing() {
			continue
		}
		if name := strings.TrimSpace(field.Name); name != "" {
			names[name] = struct{}{}
		}
	}

	for raw, messages := range payload {
		clean := normalizeMessages(messages)
		if len(clean) == 0 {
			continue
		}
		name := resolveErrorPath(raw, names)
		if name == "" {
			mapping.Form = append(mapping.Form, clean...)
			continue
		}
		mapping.Fields[name] = normalizeMessages(append(mapping.Fields[name], clean...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// ApplyErrors stores field messages in the form's engine and marks those
// fields touched so the error slot shows. Multiple messages for one field
// are joined with "; ".
func ApplyErrors(f *form.Form, mapping ErrorMapping) {
	if f == nil {
		return
	}
	engine := f.Engine()
	for name, messages := range mapping.Fields {
		engine.SetFieldTouched(name, true)
		engine.SetFieldError(name, strings.Join(messages, "; "))
	}
}

// ErrorFeedback builds a visible error feedback entry listing messages.
func ErrorFeedback(title string, messages []string) model.FeedbackEntry {
	entry := model.FeedbackEntry{
		Kind:    model.FeedbackError,
		Visible: true,
		Title:   title,
	}
	messages = normalizeMessages(messages)
	if len(messages) == 0 {
		return entry
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, msg := range messages {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(msg))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	entry.Description = b.String()
	return entry
}

// Apply writes opts.Values into the engine, then maps and applies
// opts.Errors. It returns the form-level messages that matched no field.
func Apply(f *form.Form, opts RenderOptions) []string {
	if f == nil {
		return nil
	}
	for name, value := range opts.Values {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			f.Engine().SetFieldValue(trimmed, value)
		}
	}
	if len(opts.Errors) == 0 {
		return nil
	}
	mapping := MapErrorPayload(f.Config().Form, opts.Errors)
	ApplyErrors(f, mapping)
	return mapping.Form
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// resolveErrorPath returns the longest declared name matching raw, trying the
// path as given, without request wrappers and without numeric indexes.
func resolveErrorPath(raw string, names map[string]struct{}) string {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return ""
	}
	segments := splitErrorPath(trimmed)
	if len(segments) == 0 {
		return ""
	}

	best := ""
	bestDepth := 0
	unwrapped := dropWrapperSegments(segments)
	for _, variant := range [][]string{
		segments,
		unwrapped,
		withoutIndexes(segments),
		withoutIndexes(unwrapped),
	} {
		for end := len(variant); end > bestDepth; end-- {
			candidate := strings.Join(variant[:end], ".")
			if _, ok := names[candidate]; ok {
				best, bestDepth = candidate, end
				break
			}
		}
	}
	return best
}

func splitErrorPath(path string) []string {
	clean := strings.TrimLeft(strings.TrimSpace(path), "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"values":     {},
	"attributes": {},
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

func withoutIndexes(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
