package controls

import (
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/view"
)

// MultiSelect renders a menu of options. Activating an option toggles it in
// the selection (or replaces the selection for single-choice menus) and
// delivers the whole selection as []model.MenuOption. Hidden inputs mirror the
// selection so plain HTML submissions carry it.
func MultiSelect(p Props) *view.Node {
	opts, _ := p.Options.(*model.SelectOptions)
	var items []model.MenuOption
	single := false
	buttonLabel := ""
	showChips := false
	if opts != nil {
		items = opts.Items
		single = opts.Single
		buttonLabel = opts.ButtonLabel
		showChips = opts.ShowSelectedItems
	}
	selection := Selection(p.Value, items)
	selected := make(map[string]bool, len(selection))
	for _, item := range selection {
		selected[item.Value] = true
	}

	if buttonLabel == "" {
		buttonLabel = p.Placeholder
	}
	if buttonLabel == "" {
		buttonLabel = "Select"
	}

	buttonAttrs := p.baseAttrs()
	delete(buttonAttrs, "data-testid")
	delete(buttonAttrs, "name")
	delete(buttonAttrs, "required")
	buttonAttrs["type"] = "button"
	buttonAttrs["class"] = "multi-select__button"
	buttonAttrs["aria-haspopup"] = "listbox"
	buttonAttrs["aria-controls"] = p.ID + "-listbox"
	button := view.El("button", buttonAttrs, view.Text(buttonLabel))
	if p.OnKeyDown != nil {
		button.On(view.EventKeyDown, p.OnKeyDown)
	}
	if p.OnBlur != nil {
		button.On(view.EventBlur, func(*view.Event) { p.OnBlur() })
	}

	listAttrs := view.Attrs{
		"id":    p.ID + "-listbox",
		"role":  "listbox",
		"class": "multi-select__menu",
	}
	if !single {
		listAttrs["aria-multiselectable"] = "true"
	}
	list := view.El("ul", listAttrs)
	for _, item := range items {
		itemAttrs := view.Attrs{
			"role":       "option",
			"class":      "multi-select__option",
			"data-value": item.Value,
		}
		if selected[item.Value] {
			itemAttrs["aria-selected"] = "true"
		} else {
			itemAttrs["aria-selected"] = "false"
		}
		if p.Disabled {
			itemAttrs["aria-disabled"] = "true"
		}
		option := item
		node := view.El("li", itemAttrs, view.Text(item.Label)).WithKey(item.Value)
		if !p.Disabled {
			node.On(view.EventClick, func(*view.Event) {
				p.emit(Toggled(selection, option, single))
			})
		}
		list.Append(node)
	}

	root := view.El("div", view.Attrs{
		"class":       "multi-select",
		"data-testid": p.TestID,
	}, button)

	if showChips && len(selection) > 0 {
		chips := view.El("div", view.Attrs{"class": "multi-select__chips"})
		for _, item := range selection {
			option := item
			remove := view.El("button", view.Attrs{
				"type":       "button",
				"class":      "chip__remove",
				"aria-label": "Remove " + item.Label,
			}, view.Text("×"))
			if p.Disabled {
				remove.SetAttr("disabled", "")
			} else {
				remove.On(view.EventClick, func(*view.Event) {
					p.emit(Toggled(selection, option, false))
				})
			}
			chips.Append(view.El("span", view.Attrs{"class": "chip"}, view.Text(item.Label), remove).WithKey(item.Value))
		}
		root.Append(chips)
	}

	root.Append(list)
	for _, item := range selection {
		root.Append(view.El("input", view.Attrs{"type": "hidden", "name": p.Name, "value": item.Value}))
	}
	return root
}
