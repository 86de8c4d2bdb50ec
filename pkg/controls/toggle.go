package controls

import "github.com/goliatone/go-dynform/pkg/view"

// Checkbox renders a checkbox wrapped by its own label element, with the
// label text after the box.
func Checkbox(p Props) *view.Node {
	return toggle(p, "checkbox", false)
}

// Switch renders a switch. It behaves like a checkbox with role=switch and a
// decorative track.
func Switch(p Props) *view.Node {
	return toggle(p, "switch", true)
}

func toggle(p Props, class string, isSwitch bool) *view.Node {
	attrs := p.baseAttrs()
	delete(attrs, "data-testid")
	attrs["type"] = "checkbox"
	attrs["class"] = class + "__input"
	if isSwitch {
		attrs["role"] = "switch"
	}
	checked := Bool(p.Value)
	if checked {
		attrs["checked"] = ""
	}
	if isSwitch {
		if checked {
			attrs["aria-checked"] = "true"
		} else {
			attrs["aria-checked"] = "false"
		}
	}
	input := p.bind(view.El("input", attrs), func(evt *view.Event) {
		p.emit(Bool(evt.Value))
	})

	labelAttrs := view.Attrs{
		"class":       class,
		"data-testid": p.TestID,
	}
	if p.Disabled {
		labelAttrs["data-disabled"] = "true"
	}
	if p.Required {
		labelAttrs["data-required"] = "true"
	}
	if style := view.Style(p.Style); style != "" {
		labelAttrs["style"] = style
	}

	label := view.El("label", labelAttrs, input)
	if isSwitch {
		label.Append(view.El("span", view.Attrs{"class": "switch__track", "aria-hidden": "true"},
			view.El("span", view.Attrs{"class": "switch__thumb"}),
		))
	}
	text := view.El("span", view.Attrs{"class": class + "__label"}, view.Text(p.Label))
	if p.Required {
		text.Append(RequiredMarker())
	}
	return label.Append(text)
}

// RequiredMarker returns the decorative marker appended to required labels.
func RequiredMarker() *view.Node {
	return view.El("span", view.Attrs{"class": "required-indicator", "aria-hidden": "true"}, view.Text("*"))
}
