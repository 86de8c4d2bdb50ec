package controls

import "github.com/goliatone/go-dynform/pkg/model"

// Kind is the abstract control a field renders as.
type Kind int

const (
	KindNone Kind = iota
	KindText
	KindTextarea
	KindNumber
	KindCheckbox
	KindSwitch
	KindDatepicker
	KindSelect
)

var kindNames = map[Kind]string{
	KindNone:       "none",
	KindText:       "text",
	KindTextarea:   "textarea",
	KindNumber:     "number",
	KindCheckbox:   "checkbox",
	KindSwitch:     "switch",
	KindDatepicker: "datepicker",
	KindSelect:     "select",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds lists every kind that renders a control.
func Kinds() []Kind {
	return []Kind{KindText, KindTextarea, KindNumber, KindCheckbox, KindSwitch, KindDatepicker, KindSelect}
}

// Toggle reports whether the kind is a boolean toggle.
func (k Kind) Toggle() bool {
	return k == KindCheckbox || k == KindSwitch
}

// LabelPlacement positions a field's label relative to its control.
type LabelPlacement int

const (
	LabelBefore LabelPlacement = iota
	LabelAfter
)

// Resolution is the outcome of resolving a field descriptor.
type Resolution struct {
	Type model.FieldType
	Kind Kind
	// InputType is the native input type for text-like controls.
	InputType string
	Label     LabelPlacement
	// HelperMessage reports whether the field's helper message is shown.
	HelperMessage bool
	// Multiline controls never submit on Enter.
	Multiline bool
	// Options carries the field's option bag for number, datepicker and
	// select controls; nil otherwise.
	Options any
	// Known is false when the type tag was not recognised.
	Known bool
}

// Resolve maps a descriptor to its control. It is total: unknown or missing
// type tags resolve to KindNone like headers, with Known false.
func Resolve(field model.Field) Resolution {
	res := ResolveType(field.Type)
	switch res.Kind {
	case KindNumber:
		if field.NumberOptions != nil {
			res.Options = field.NumberOptions
		}
	case KindDatepicker:
		if field.DatepickerOptions != nil {
			res.Options = field.DatepickerOptions
		}
	case KindSelect:
		if field.SelectOptions != nil {
			res.Options = field.SelectOptions
		}
	}
	return res
}

// ResolveType maps a type tag alone, without option bags.
func ResolveType(t model.FieldType) Resolution {
	norm := t.Normalize()
	res := Resolution{Type: norm, Known: true, Label: LabelBefore}
	switch norm {
	case model.FieldTypeText, model.FieldTypeEmail, model.FieldTypeTel:
		res.Kind = KindText
		res.InputType = string(norm)
		res.HelperMessage = true
	case model.FieldTypeTextarea:
		res.Kind = KindTextarea
		res.HelperMessage = true
		res.Multiline = true
	case model.FieldTypeNumber:
		res.Kind = KindNumber
		res.InputType = "number"
		res.HelperMessage = true
	case model.FieldTypeCheckbox:
		res.Kind = KindCheckbox
		res.Label = LabelAfter
	case model.FieldTypeSwitch:
		res.Kind = KindSwitch
		res.Label = LabelAfter
	case model.FieldTypeDatepicker:
		res.Kind = KindDatepicker
	case model.FieldTypeSelect:
		res.Kind = KindSelect
	case model.FieldTypeHeader:
		res.Kind = KindNone
	default:
		res.Kind = KindNone
		res.Known = false
	}
	return res
}
