package model

import (
	"strings"
	"time"

	"github.com/goliatone/go-dynform/pkg/view"
)

// FieldType tags a descriptor with the control it should render as.
type FieldType string

const (
	FieldTypeText       FieldType = "text"
	FieldTypeEmail      FieldType = "email"
	FieldTypeTel        FieldType = "tel"
	FieldTypeNumber     FieldType = "number"
	FieldTypeCheckbox   FieldType = "checkbox"
	FieldTypeSwitch     FieldType = "switch"
	FieldTypeTextarea   FieldType = "textarea"
	FieldTypeSelect     FieldType = "select"
	FieldTypeDatepicker FieldType = "datepicker"
	FieldTypeHeader     FieldType = "header"
)

// FieldTypes lists every recognised type tag in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText, FieldTypeEmail, FieldTypeTel, FieldTypeNumber,
		FieldTypeCheckbox, FieldTypeSwitch, FieldTypeTextarea,
		FieldTypeSelect, FieldTypeDatepicker, FieldTypeHeader,
	}
}

// Normalize trims and lower-cases the tag.
func (t FieldType) Normalize() FieldType {
	return FieldType(strings.ToLower(strings.TrimSpace(string(t))))
}

// Valid reports whether t is a recognised tag.
func (t FieldType) Valid() bool {
	switch t.Normalize() {
	case FieldTypeText, FieldTypeEmail, FieldTypeTel, FieldTypeNumber,
		FieldTypeCheckbox, FieldTypeSwitch, FieldTypeTextarea,
		FieldTypeSelect, FieldTypeDatepicker, FieldTypeHeader:
		return true
	}
	return false
}

// DataBearing reports whether descriptors of this type hold a value in the
// shared form state. Headers and unknown tags do not.
func (t FieldType) DataBearing() bool {
	return t.Valid() && t.Normalize() != FieldTypeHeader
}

// ValidateFunc inspects a value and returns an error message, or the empty
// string when the value is acceptable.
type ValidateFunc func(value any) string

// ChangeFunc observes a committed value change.
type ChangeFunc func(value any)

// ContainerFunc wraps the rendered children of a field.
type ContainerFunc func(children ...*view.Node) *view.Node

// MenuOption is a selectable item of a select control.
type MenuOption struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// NumberOptions configure numeric controls.
type NumberOptions struct {
	Precision   int      `json:"precision,omitempty" yaml:"precision,omitempty"`
	Step        float64  `json:"step,omitempty" yaml:"step,omitempty"`
	Min         *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	ShowStepper bool     `json:"showStepper,omitempty" yaml:"showStepper,omitempty"`
	Prefix      string   `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix      string   `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Pattern     string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// DefaultDateFormat is the Go layout used by date controls without an
// explicit format.
const DefaultDateFormat = "2006-01-02"

// DatepickerOptions configure date controls.
type DatepickerOptions struct {
	MinDate        *time.Time     `json:"minDate,omitempty" yaml:"minDate,omitempty"`
	MaxDate        *time.Time     `json:"maxDate,omitempty" yaml:"maxDate,omitempty"`
	Format         string         `json:"format,omitempty" yaml:"format,omitempty"`
	FirstDayOfWeek time.Weekday   `json:"firstDayOfWeek,omitempty" yaml:"firstDayOfWeek,omitempty"`
	Calendar       map[string]any `json:"calendar,omitempty" yaml:"calendar,omitempty"`
}

// Layout returns the configured format or DefaultDateFormat.
func (o *DatepickerOptions) Layout() string {
	if o == nil || strings.TrimSpace(o.Format) == "" {
		return DefaultDateFormat
	}
	return o.Format
}

// SelectOptions configure multi-select menus.
type SelectOptions struct {
	Items             []MenuOption `json:"items" yaml:"items"`
	InitialValue      []MenuOption `json:"initialValue,omitempty" yaml:"initialValue,omitempty"`
	Single            bool         `json:"single,omitempty" yaml:"single,omitempty"`
	ShowSelectedItems bool         `json:"showSelectedItems,omitempty" yaml:"showSelectedItems,omitempty"`
	ButtonLabel       string       `json:"buttonLabel,omitempty" yaml:"buttonLabel,omitempty"`
}

// Field describes one form entry. Name is required for data-bearing types and
// must be unique within a form.
type Field struct {
	ID            string            `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string            `json:"name,omitempty" yaml:"name,omitempty"`
	Type          FieldType         `json:"type" yaml:"type"`
	Label         string            `json:"label,omitempty" yaml:"label,omitempty"`
	Heading       string            `json:"heading,omitempty" yaml:"heading,omitempty"`
	Required      bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Disabled      bool              `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	HelperMessage string            `json:"helperMessage,omitempty" yaml:"helperMessage,omitempty"`
	Placeholder   string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	TestID        string            `json:"testId,omitempty" yaml:"testId,omitempty"`
	Style         map[string]string `json:"style,omitempty" yaml:"style,omitempty"`
	// Value overrides the state value for display. Nil means not provided.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	NumberOptions     *NumberOptions     `json:"numberOptions,omitempty" yaml:"numberOptions,omitempty"`
	DatepickerOptions *DatepickerOptions `json:"datepickerOptions,omitempty" yaml:"datepickerOptions,omitempty"`
	SelectOptions     *SelectOptions     `json:"selectOptions,omitempty" yaml:"selectOptions,omitempty"`

	Validate  ValidateFunc  `json:"-" yaml:"-"`
	OnChange  ChangeFunc    `json:"-" yaml:"-"`
	Container ContainerFunc `json:"-" yaml:"-"`
}

// Key returns the identifier used for rendering keys: ID, falling back to
// Name.
func (f Field) Key() string {
	if id := strings.TrimSpace(f.ID); id != "" {
		return id
	}
	return strings.TrimSpace(f.Name)
}

// ZeroValue returns the empty state value for the field's type.
func (f Field) ZeroValue() any {
	switch f.Type.Normalize() {
	case FieldTypeCheckbox, FieldTypeSwitch:
		return false
	case FieldTypeSelect:
		if f.SelectOptions != nil && len(f.SelectOptions.InitialValue) > 0 {
			return append([]MenuOption(nil), f.SelectOptions.InitialValue...)
		}
		return []MenuOption{}
	case FieldTypeDatepicker:
		return nil
	case FieldTypeHeader:
		return nil
	default:
		return ""
	}
}
