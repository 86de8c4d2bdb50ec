package controls

import (
	"time"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/view"
)

// DatePicker renders a date control with a text surface. The text surface
// carries the control id so labels target it, and its test id is the
// control's test id suffixed with "--input". Only committed dates (a
// time.Time, or text matching the configured layout and range) reach
// OnChange; intermediate input is ignored.
func DatePicker(p Props) *view.Node {
	opts, _ := p.Options.(*model.DatepickerOptions)

	attrs := p.baseAttrs()
	attrs["type"] = "text"
	attrs["class"] = "datepicker__input"
	attrs["data-testid"] = p.TestID + "--input"
	attrs["autocomplete"] = "off"
	attrs["value"] = FormatDate(p.Value, opts)
	attrs["data-format"] = opts.Layout()
	if p.Placeholder != "" {
		attrs["placeholder"] = p.Placeholder
	} else {
		attrs["placeholder"] = opts.Layout()
	}
	if opts != nil {
		if opts.MinDate != nil {
			attrs["data-min-date"] = opts.MinDate.Format(time.RFC3339)
		}
		if opts.MaxDate != nil {
			attrs["data-max-date"] = opts.MaxDate.Format(time.RFC3339)
		}
		attrs["data-first-day"] = opts.FirstDayOfWeek.String()
	}

	input := p.bind(view.El("input", attrs), func(evt *view.Event) {
		if t, ok := ParseDate(evt.Value, opts); ok {
			p.emit(t)
		}
	})

	return view.El("div", view.Attrs{
		"class":       "datepicker",
		"data-testid": p.TestID,
	}, input)
}
