package model

import "strings"

const (
	// DefaultTestID prefixes every test identifier when a form sets none.
	DefaultTestID = "dynamic-form"
	// DefaultLabel is the accessible name of a form that sets none.
	DefaultLabel = "Dynamic Form"
)

// Form is the data portion of a form configuration.
type Form struct {
	ID            string            `json:"id,omitempty" yaml:"id,omitempty"`
	TestID        string            `json:"testId,omitempty" yaml:"testId,omitempty"`
	Label         string            `json:"label,omitempty" yaml:"label,omitempty"`
	Style         map[string]string `json:"style,omitempty" yaml:"style,omitempty"`
	InitialValues map[string]any    `json:"initialValues,omitempty" yaml:"initialValues,omitempty"`
	Fields        []Entry           `json:"fields" yaml:"fields"`
	Actions       []Action          `json:"actions,omitempty" yaml:"actions,omitempty"`
	Feedback      Feedback          `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}

// ResolvedTestID returns TestID or DefaultTestID.
func (f Form) ResolvedTestID() string {
	if id := strings.TrimSpace(f.TestID); id != "" {
		return id
	}
	return DefaultTestID
}

// ResolvedLabel returns Label or DefaultLabel.
func (f Form) ResolvedLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return DefaultLabel
}

// AllFields flattens entries into fields in document order.
func (f Form) AllFields() []Field {
	var out []Field
	for _, entry := range f.Fields {
		out = append(out, entry.Fields()...)
	}
	return out
}

// DefaultValues returns InitialValues completed with the zero value of every
// data-bearing field missing from it.
func (f Form) DefaultValues() map[string]any {
	out := make(map[string]any, len(f.InitialValues))
	for k, v := range f.InitialValues {
		out[k] = v
	}
	for _, field := range f.AllFields() {
		if !field.Type.DataBearing() || strings.TrimSpace(field.Name) == "" {
			continue
		}
		if _, ok := out[field.Name]; ok {
			continue
		}
		out[field.Name] = field.ZeroValue()
	}
	return out
}

// MapFields returns a copy of the form with fn applied to every field.
func (f Form) MapFields(fn func(Field) Field) Form {
	out := f
	out.Fields = make([]Entry, 0, len(f.Fields))
	for _, entry := range f.Fields {
		out.Fields = append(out.Fields, entry.Map(fn))
	}
	return out
}
