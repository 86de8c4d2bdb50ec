package form

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/view"
)

// Control is a resolved field as seen by drivers that operate the form
// without a pointer: terminal sessions, tests and servers.
type Control struct {
	Field      model.Field
	Resolution controls.Resolution
	// ID is the DOM id of the interactive element.
	ID string
	// TestID identifies the control (the wrapping label for toggles).
	TestID string
	// InputTestID identifies the element receiving change events.
	InputTestID string
}

func (f *Form) control(field model.Field) Control {
	res := controls.Resolve(field)
	id := strings.TrimSpace(field.Name)
	if id == "" {
		id = field.Key()
	}
	testID := strings.TrimSpace(field.TestID)
	if testID == "" {
		testID = fmt.Sprintf("%s--%s-field", f.testID, id)
	}
	inputTestID := testID
	if res.Kind == controls.KindDatepicker {
		inputTestID = testID + "--input"
	}
	return Control{Field: field, Resolution: res, ID: id, TestID: testID, InputTestID: inputTestID}
}

// bindField renders one descriptor wired to the engine.
func (f *Form) bindField(field model.Field) *view.Node {
	ctl := f.control(field)
	res := ctl.Resolution
	name := strings.TrimSpace(field.Name)

	errMsg := ""
	if name != "" && f.engine.IsTouched(name) {
		errMsg = f.engine.Error(name)
	}
	invalid := errMsg != ""

	wrapperAttrs := view.Attrs{
		"class":       "form-control",
		"data-testid": f.testID + "--form-control",
		"data-type":   string(res.Type),
	}
	if invalid {
		wrapperAttrs["data-invalid"] = "true"
	}
	if field.Required {
		wrapperAttrs["data-required"] = "true"
	}
	if field.Disabled {
		wrapperAttrs["data-disabled"] = "true"
	}
	base := f.styles.FormControl
	if field.Style != nil {
		base = field.Style
	}
	var extra []map[string]string
	if res.Kind.Toggle() {
		extra = append(extra, f.styles.FormControlRightLabel)
	}
	if res.Type == model.FieldTypeHeader {
		extra = append(extra, f.styles.FormHeader)
	}
	wrapper := view.El("div", styleAttr(wrapperAttrs, append([]map[string]string{base}, extra...)...)).WithKey(field.Key())

	var inner []*view.Node
	if heading := strings.TrimSpace(field.Heading); heading != "" {
		attrs := view.Attrs{"class": "form-heading"}
		if res.Type == model.FieldTypeHeader {
			attrs["data-testid"] = ctl.TestID
		}
		inner = append(inner, view.El("h4", styleAttr(attrs, f.styles.Heading), view.Text(heading)))
	}
	if field.Label != "" && !res.Kind.Toggle() {
		attrs := view.Attrs{"for": ctl.ID, "class": "form-label"}
		label := view.El("label", styleAttr(attrs, f.styles.Label), view.Text(field.Label))
		if field.Required && res.Kind != controls.KindNone {
			label.SetAttr("data-required", "true")
			label.Append(controls.RequiredMarker())
		}
		inner = append(inner, label)
	}

	helperID := ""
	var helper *view.Node
	if res.HelperMessage && field.HelperMessage != "" {
		helperID = ctl.ID + "-helper"
		helper = view.El("div", view.Attrs{
			"id":          helperID,
			"class":       "helper-message",
			"data-testid": ctl.TestID + "-helper-message",
		}, view.Text(field.HelperMessage))
	}

	if res.Kind != controls.KindNone && name != "" {
		if widget := f.widgets.Widget(res.Kind); widget != nil {
			inner = append(inner, widget(f.props(ctl, errMsg, helperID)))
		} else {
			f.logger.Warn("no widget registered", slog.String("field", name), slog.String("kind", res.Kind.String()))
		}
	}
	if helper != nil {
		inner = append(inner, helper)
	}

	if field.Container != nil {
		wrapper.Append(field.Container(inner...))
	} else {
		wrapper.Append(view.Fragment(inner...))
	}

	if invalid {
		wrapper.Append(view.El("div", view.Attrs{
			"id":          ctl.ID + "-error",
			"role":        "alert",
			"class":       "error-message",
			"data-testid": f.testID + "--error-message",
		}, view.Text(errMsg)))
	}
	return wrapper
}

func (f *Form) props(ctl Control, errMsg, helperID string) controls.Props {
	field := ctl.Field
	res := ctl.Resolution
	name := strings.TrimSpace(field.Name)

	value := field.Value
	if value == nil {
		value = f.engine.Value(name)
	}

	var describedBy []string
	if helperID != "" {
		describedBy = append(describedBy, helperID)
	}
	if errMsg != "" {
		describedBy = append(describedBy, ctl.ID+"-error")
	}

	props := controls.Props{
		ID:          ctl.ID,
		Name:        name,
		TestID:      ctl.TestID,
		Type:        res.Type,
		InputType:   res.InputType,
		Label:       field.Label,
		Placeholder: field.Placeholder,
		Value:       value,
		Options:     res.Options,
		Disabled:    field.Disabled,
		Required:    field.Required,
		Invalid:     errMsg != "",
		DescribedBy: strings.Join(describedBy, " "),
		OnChange: func(v any) {
			f.engine.SetFieldValue(name, v)
			if field.OnChange != nil {
				field.OnChange(v)
			}
		},
		OnBlur: func() {
			f.engine.Blur(name)
		},
	}
	if res.Kind == controls.KindSwitch {
		props.Placeholder = ""
	}
	if res.Kind.Toggle() {
		props.Style = f.styles.RightLabel
	}
	if !res.Multiline {
		props.OnKeyDown = func(evt *view.Event) {
			if evt.Key == view.KeyEnter && !evt.Shift {
				evt.PreventDefault()
				f.submitFromEvent()
			}
		}
	}
	return props
}
