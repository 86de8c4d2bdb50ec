package controls

import (
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/view"
)

// Props is everything a widget receives from the field binder. Widgets
// report committed values through OnChange using the kind's native
// representation and never expose raw events.
type Props struct {
	ID          string
	Name        string
	TestID      string
	Type        model.FieldType
	InputType   string
	Label       string
	Placeholder string
	Value       any
	Options     any
	Style       map[string]string

	Disabled bool
	Required bool
	Invalid  bool
	// DescribedBy lists ids of helper and error elements.
	DescribedBy string

	OnChange  func(value any)
	OnKeyDown view.Handler
	OnBlur    func()
}

func (p Props) baseAttrs() view.Attrs {
	attrs := view.Attrs{
		"id":          p.ID,
		"name":        p.Name,
		"data-testid": p.TestID,
	}
	if p.Invalid {
		attrs["aria-invalid"] = "true"
	}
	if p.Required {
		attrs["aria-required"] = "true"
		attrs["required"] = ""
	}
	if p.Disabled {
		attrs["disabled"] = ""
	}
	if p.DescribedBy != "" {
		attrs["aria-describedby"] = p.DescribedBy
	}
	if style := view.Style(p.Style); style != "" {
		attrs["style"] = style
	}
	return attrs
}

// bind attaches change, keydown and blur handlers to n.
func (p Props) bind(n *view.Node, change func(*view.Event)) *view.Node {
	if change != nil {
		n.On(view.EventChange, change)
	}
	if p.OnKeyDown != nil {
		n.On(view.EventKeyDown, p.OnKeyDown)
	}
	if p.OnBlur != nil {
		n.On(view.EventBlur, func(*view.Event) { p.OnBlur() })
	}
	return n
}

func (p Props) emit(value any) {
	if p.OnChange != nil {
		p.OnChange(value)
	}
}
