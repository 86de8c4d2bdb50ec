package controls

import (
	"strconv"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/view"
)

// TextInput renders single-line text, email and tel inputs.
func TextInput(p Props) *view.Node {
	attrs := p.baseAttrs()
	attrs["type"] = p.InputType
	if attrs["type"] == "" {
		attrs["type"] = "text"
	}
	attrs["value"] = Text(p.Value)
	attrs["class"] = "input"
	if p.Placeholder != "" {
		attrs["placeholder"] = p.Placeholder
	}
	input := view.El("input", attrs)
	return p.bind(input, func(evt *view.Event) {
		p.emit(Text(evt.Value))
	})
}

// TextArea renders a multi-line text input.
func TextArea(p Props) *view.Node {
	attrs := p.baseAttrs()
	attrs["class"] = "textarea"
	attrs["rows"] = "4"
	if p.Placeholder != "" {
		attrs["placeholder"] = p.Placeholder
	}
	area := view.El("textarea", attrs, view.Text(Text(p.Value)))
	return p.bind(area, func(evt *view.Event) {
		p.emit(Text(evt.Value))
	})
}

// NumberInput renders a numeric input. Values are delivered as float64
// rounded to the configured precision, or as the raw string when the input
// is empty or cannot be parsed. The stepper, when enabled, clamps to the
// configured bounds.
func NumberInput(p Props) *view.Node {
	opts, _ := p.Options.(*model.NumberOptions)

	attrs := p.baseAttrs()
	attrs["type"] = "number"
	attrs["inputmode"] = "decimal"
	attrs["class"] = "number-input__field"
	attrs["value"] = FormatNumber(p.Value, opts)
	attrs["data-allow-mouse-wheel"] = "false"
	attrs["step"] = strconv.FormatFloat(Step(opts), 'f', -1, 64)
	if p.Placeholder != "" {
		attrs["placeholder"] = p.Placeholder
	}
	if opts != nil {
		if opts.Min != nil {
			attrs["min"] = strconv.FormatFloat(*opts.Min, 'f', -1, 64)
		}
		if opts.Max != nil {
			attrs["max"] = strconv.FormatFloat(*opts.Max, 'f', -1, 64)
		}
		if opts.Pattern != "" {
			attrs["pattern"] = opts.Pattern
		}
		if opts.Precision > 0 {
			attrs["data-precision"] = strconv.Itoa(opts.Precision)
		}
	}
	input := p.bind(view.El("input", attrs), func(evt *view.Event) {
		p.emit(ParseNumber(evt.Value, opts))
	})

	wrapper := view.El("div", view.Attrs{"class": "number-input"})
	if opts != nil && opts.Prefix != "" {
		wrapper.Append(view.El("span", view.Attrs{"class": "number-input__prefix"}, view.Text(opts.Prefix)))
	}
	wrapper.Append(input)
	if opts != nil && opts.Suffix != "" {
		wrapper.Append(view.El("span", view.Attrs{"class": "number-input__suffix"}, view.Text(opts.Suffix)))
	}
	if opts != nil && opts.ShowStepper {
		wrapper.Append(stepper(p, opts))
	}
	return wrapper
}

func stepper(p Props, opts *model.NumberOptions) *view.Node {
	step := func(delta float64) func(*view.Event) {
		return func(*view.Event) {
			current, ok := ParseNumber(p.Value, opts).(float64)
			if !ok {
				current = 0
			}
			p.emit(round(Clamp(current+delta, opts), opts))
		}
	}
	button := func(label, glyph string, delta float64) *view.Node {
		attrs := view.Attrs{
			"type":       "button",
			"class":      "number-input__step",
			"aria-label": label,
			"tabindex":   "-1",
		}
		if p.Disabled {
			attrs["disabled"] = ""
		}
		return view.El("button", attrs, view.Text(glyph)).On(view.EventClick, step(delta))
	}
	return view.El("div", view.Attrs{"class": "number-input__stepper"},
		button("Increment", "+", Step(opts)),
		button("Decrement", "-", -Step(opts)),
	)
}
