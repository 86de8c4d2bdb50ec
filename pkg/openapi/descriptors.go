package openapi

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/validation"
)

// textareaThreshold is the maxLength above which strings render as a
// textarea.
const textareaThreshold = 255

// Descriptors derives a form from the request body of op. Properties become
// fields in PropertyNames order; nested objects are flattened into dotted
// names under a header; properties sharing a "row" hint form one group.
// Validation follows the schema constraints.
func Descriptors(op Operation) (model.Form, error) {
	body := op.RequestBody
	if body.Type != "" && body.Type != "object" {
		return model.Form{}, fmt.Errorf("openapi: operation %q: request body must be an object, got %q", op.ID, body.Type)
	}
	if len(body.Properties) == 0 {
		return model.Form{}, fmt.Errorf("openapi: operation %q: request body has no properties", op.ID)
	}

	hints := op.Hints()
	out := model.Form{
		ID:            op.ID,
		TestID:        hints.String("testId"),
		Label:         firstNonEmpty(hints.String("label"), op.Summary),
		InitialValues: make(map[string]any),
	}

	b := &builder{initial: out.InitialValues}
	b.object("", body)
	out.Fields = b.entries()

	submit := model.Action{
		Title:       firstNonEmpty(hints.String("submit"), "Submit"),
		Type:        model.ActionSubmit,
		LoadingText: hints.String("loadingText"),
	}
	out.Actions = []model.Action{submit}
	if len(out.InitialValues) == 0 {
		out.InitialValues = nil
	}
	return out, nil
}

type builder struct {
	initial map[string]any
	out     []model.Entry
	rows    map[string]int
}

func (b *builder) object(prefix string, s Schema) {
	for _, name := range s.PropertyNames() {
		prop := s.Properties[name]
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		hints := prop.Hints()
		if hints.Bool("hidden") {
			continue
		}
		if prop.Type == "object" && len(prop.Properties) > 0 {
			b.add("", model.Field{
				ID:      path,
				Type:    model.FieldTypeHeader,
				Heading: firstNonEmpty(hints.String("label"), prop.Title, humanize(name)),
			})
			b.object(path, prop)
			continue
		}
		field, ok := fieldFor(path, name, prop, s.IsRequired(name))
		if !ok {
			continue
		}
		if prop.Default != nil {
			if v := initialValue(field, prop.Default); v != nil {
				b.initial[path] = v
			}
		}
		b.add(hints.String("row"), field)
	}
}

func (b *builder) add(row string, field model.Field) {
	if row == "" {
		b.out = append(b.out, model.Single(field))
		return
	}
	if b.rows == nil {
		b.rows = make(map[string]int)
	}
	if idx, ok := b.rows[row]; ok {
		b.out[idx] = model.Row(append(b.out[idx].Group(), field)...)
		return
	}
	b.rows[row] = len(b.out)
	b.out = append(b.out, model.Row(field))
}

func (b *builder) entries() []model.Entry {
	return b.out
}

func fieldFor(path, name string, s Schema, required bool) (model.Field, bool) {
	hints := s.Hints()
	field := model.Field{
		Name:          path,
		Label:         firstNonEmpty(hints.String("label"), s.Title, humanize(name)),
		Placeholder:   hints.String("placeholder"),
		HelperMessage: firstNonEmpty(hints.String("helperMessage"), s.Description),
		Heading:       hints.String("heading"),
		TestID:        hints.String("testId"),
		Required:      required,
	}

	var rules []model.ValidateFunc
	if required {
		rules = append(rules, validation.Required(""))
	}

	switch s.Type {
	case "string":
		switch {
		case len(s.Enum) > 0:
			field.Type = model.FieldTypeSelect
			field.SelectOptions = &model.SelectOptions{Items: menuItems(s.Enum), Single: true}
		case s.Format == "email":
			field.Type = model.FieldTypeEmail
			rules = append(rules, validation.Email(""))
		case s.Format == "date" || s.Format == "date-time":
			field.Type = model.FieldTypeDatepicker
			field.DatepickerOptions = dateOptions(s)
		case s.Format == "tel" || s.Format == "phone":
			field.Type = model.FieldTypeTel
		case s.MaxLength != nil && *s.MaxLength > textareaThreshold:
			field.Type = model.FieldTypeTextarea
		default:
			field.Type = model.FieldTypeText
		}
		if field.Type == model.FieldTypeText || field.Type == model.FieldTypeTextarea {
			rules = append(rules, validation.NonEmpty(""))
		}
		if field.Type != model.FieldTypeSelect && field.Type != model.FieldTypeDatepicker {
			if s.MinLength != nil && *s.MinLength > 0 {
				rules = append(rules, validation.MinLength(*s.MinLength, ""))
			}
			if s.MaxLength != nil {
				rules = append(rules, validation.MaxLength(*s.MaxLength, ""))
			}
			if s.Pattern != "" {
				rules = append(rules, validation.Pattern(s.Pattern, ""))
			}
		}
	case "integer", "number":
		field.Type = model.FieldTypeNumber
		opts := &model.NumberOptions{Min: s.Minimum, Max: s.Maximum}
		if s.Type == "integer" {
			opts.Step = 1
		} else {
			opts.Precision = 2
			opts.Step = 0.01
		}
		field.NumberOptions = opts
		if s.Minimum != nil || s.Maximum != nil {
			rules = append(rules, validation.Range(s.Minimum, s.Maximum, ""))
		}
	case "boolean":
		field.Type = model.FieldTypeCheckbox
		rules = nil
		if required {
			rules = append(rules, validation.Required("You must accept this"))
		}
	case "array":
		if s.Items == nil || len(s.Items.Enum) == 0 {
			return model.Field{}, false
		}
		field.Type = model.FieldTypeSelect
		field.SelectOptions = &model.SelectOptions{Items: menuItems(s.Items.Enum), ShowSelectedItems: true}
	default:
		return model.Field{}, false
	}

	if override := model.FieldType(hints.String("type")); override != "" && override.Valid() {
		field.Type = override
	}
	if field.Type == model.FieldTypeSelect && field.SelectOptions != nil {
		field.SelectOptions.ButtonLabel = hints.String("buttonLabel")
	}
	field.Validate = validation.Compose(rules...)
	return field, true
}

func menuItems(enum []any) []model.MenuOption {
	out := make([]model.MenuOption, 0, len(enum))
	for _, v := range enum {
		value := fmt.Sprint(v)
		out = append(out, model.MenuOption{Label: humanize(value), Value: value})
	}
	return out
}

func dateOptions(s Schema) *model.DatepickerOptions {
	hints := s.Hints()
	opts := &model.DatepickerOptions{Format: hints.String("format")}
	if min, err := time.Parse(model.DefaultDateFormat, hints.String("minDate")); err == nil {
		opts.MinDate = &min
	}
	if max, err := time.Parse(model.DefaultDateFormat, hints.String("maxDate")); err == nil {
		opts.MaxDate = &max
	}
	return opts
}

func initialValue(field model.Field, def any) any {
	switch field.Type {
	case model.FieldTypeSelect:
		var items []model.MenuOption
		if field.SelectOptions != nil {
			items = field.SelectOptions.Items
		}
		var values []string
		switch d := def.(type) {
		case []any:
			for _, v := range d {
				values = append(values, fmt.Sprint(v))
			}
		default:
			values = []string{fmt.Sprint(d)}
		}
		selected := make([]model.MenuOption, 0, len(values))
		for _, v := range values {
			for _, item := range items {
				if item.Value == v {
					selected = append(selected, item)
				}
			}
		}
		return selected
	case model.FieldTypeNumber:
		switch d := def.(type) {
		case float64:
			return d
		case int:
			return float64(d)
		}
		return nil
	case model.FieldTypeCheckbox, model.FieldTypeSwitch:
		if b, ok := def.(bool); ok {
			return b
		}
		return nil
	case model.FieldTypeDatepicker:
		if s, ok := def.(string); ok {
			layout := model.DefaultDateFormat
			if len(s) > len(layout) {
				layout = time.RFC3339
			}
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
		return nil
	default:
		return fmt.Sprint(def)
	}
}

// humanize turns "firstName", "first_name" or "first-name" into
// "First name".
func humanize(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}
	runes := []rune(strings.TrimSpace(name))
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	if len(words) == 0 {
		return ""
	}
	first := []rune(words[0])
	first[0] = unicode.ToUpper(first[0])
	words[0] = string(first)
	return strings.Join(words, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
