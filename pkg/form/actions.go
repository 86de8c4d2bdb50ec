package form

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/view"
)

// actionBar renders actions right-aligned in order. Submit actions rely on
// the enclosing form element's submit event; button actions only call their
// own OnClick.
func (f *Form) actionBar(actions []model.Action) *view.Node {
	if len(actions) == 0 {
		return nil
	}
	submitting := f.engine.IsSubmitting()
	bar := view.El("div", styleAttr(view.Attrs{"class": "form-actions"}, f.styles.ActionsContainer))
	for i, action := range actions {
		bar.Append(f.actionButton(i, action, submitting))
	}
	return bar
}

func (f *Form) actionButton(index int, action model.Action, submitting bool) *view.Node {
	kind := action.Kind()
	testID := strings.TrimSpace(action.TestID)
	if testID == "" {
		testID = f.testID + "--action-button"
	}
	variant := "default"
	if kind == model.ActionSubmit {
		variant = "primary"
	}
	attrs := view.Attrs{
		"type":         string(kind),
		"class":        "button button--" + variant,
		"data-variant": variant,
		"data-testid":  testID,
	}
	if name := strings.TrimSpace(action.AccessibleName()); name != "" {
		attrs["aria-label"] = name
	}
	text := action.Title
	if submitting {
		attrs["aria-busy"] = "true"
		attrs["data-loading"] = "true"
		text = action.Busy()
	}
	if action.Disabled || submitting {
		attrs["disabled"] = ""
	}

	button := view.El("button", attrs, view.Text(text)).WithKey(strconv.Itoa(index))
	if kind == model.ActionButton && action.OnClick != nil {
		onClick := action.OnClick
		button.On(view.EventClick, func(*view.Event) { onClick() })
	}
	return button
}
