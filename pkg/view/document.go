package view

import (
	"errors"
	"strings"
)

var (
	// ErrDetached is returned when the event target is not part of the
	// current tree.
	ErrDetached = errors.New("view: target is not attached to the document")
	// ErrDisabled is returned when the event target is disabled. The event is
	// dropped without running any handler.
	ErrDisabled = errors.New("view: target is disabled")
)

// Document owns the current render of a tree and re-renders it after every
// dispatched event so queries always observe fresh state.
type Document struct {
	render func() *Node
	root   *Node
}

// NewDocument renders once and returns a document bound to render.
func NewDocument(render func() *Node) *Document {
	d := &Document{render: render}
	d.Refresh()
	return d
}

// Root returns the current tree.
func (d *Document) Root() *Node {
	return d.root
}

// Refresh re-renders the tree.
func (d *Document) Refresh() {
	if d.render == nil {
		return
	}
	d.root = d.render()
}

// Dispatch delivers evt to target, bubbling through ancestors for bubbling
// events, then runs the default action unless a handler prevented it.
func (d *Document) Dispatch(target *Node, evt *Event) error {
	if target == nil {
		return ErrDetached
	}
	path := d.pathTo(target)
	if path == nil {
		return ErrDetached
	}
	if isDisabled(path) {
		return ErrDisabled
	}
	evt.Target = target

	for i := len(path) - 1; i >= 0; i-- {
		if h := path[i].Handler(evt.Type); h != nil {
			h(evt)
		}
		if !bubbles(evt.Type) {
			break
		}
	}

	if !evt.DefaultPrevented() {
		if err := d.defaultAction(path, evt); err != nil {
			return err
		}
	}
	d.Refresh()
	return nil
}

func (d *Document) defaultAction(path []*Node, evt *Event) error {
	target := path[len(path)-1]
	switch evt.Type {
	case EventClick:
		switch {
		case isToggleInput(target):
			return d.Dispatch(target, &Event{Type: EventChange, Value: !target.HasAttr("checked")})
		case target.Tag == "button" && strings.EqualFold(target.AttrValue("type"), "submit"):
			if form := nearest(path, "form"); form != nil {
				return d.Dispatch(form, &Event{Type: EventSubmit})
			}
		case !isControl(target):
			if label := nearest(path, "label"); label != nil {
				if control := labelledControl(d.root, label); control != nil {
					return d.Dispatch(control, &Event{Type: EventClick})
				}
			}
		}
	}
	return nil
}

func labelledControl(root, label *Node) *Node {
	if id := label.AttrValue("for"); id != "" {
		return findByAttr(root, "id", id)
	}
	var found *Node
	label.Walk(func(node *Node, _ []*Node) bool {
		if node != label && isControl(node) {
			found = node
			return false
		}
		return true
	})
	return found
}

func isControl(n *Node) bool {
	switch n.Tag {
	case "input", "textarea", "select", "button":
		return true
	}
	return false
}

// Click dispatches a click.
func (d *Document) Click(target *Node) error {
	return d.Dispatch(target, &Event{Type: EventClick})
}

// Change dispatches a change carrying value.
func (d *Document) Change(target *Node, value any) error {
	return d.Dispatch(target, &Event{Type: EventChange, Value: value})
}

// KeyDown dispatches a key press. It returns the event so callers can inspect
// whether the default action was prevented.
func (d *Document) KeyDown(target *Node, key string, shift bool) (*Event, error) {
	evt := &Event{Type: EventKeyDown, Key: key, Shift: shift}
	return evt, d.Dispatch(target, evt)
}

// Focus dispatches a focus event.
func (d *Document) Focus(target *Node) error {
	return d.Dispatch(target, &Event{Type: EventFocus})
}

// Blur dispatches a blur event.
func (d *Document) Blur(target *Node) error {
	return d.Dispatch(target, &Event{Type: EventBlur})
}

// Submit dispatches a submit event to a form element.
func (d *Document) Submit(form *Node) error {
	return d.Dispatch(form, &Event{Type: EventSubmit})
}

func (d *Document) pathTo(target *Node) []*Node {
	var path []*Node
	d.root.Walk(func(node *Node, ancestors []*Node) bool {
		if node == target {
			path = append(append([]*Node(nil), ancestors...), node)
			return false
		}
		return true
	})
	return path
}

func isDisabled(path []*Node) bool {
	target := path[len(path)-1]
	if target.Disabled() {
		return true
	}
	for _, ancestor := range path[:len(path)-1] {
		if ancestor.Tag == "fieldset" && ancestor.Disabled() {
			return true
		}
	}
	return false
}

func isToggleInput(n *Node) bool {
	if n.Tag != "input" {
		return false
	}
	switch strings.ToLower(n.AttrValue("type")) {
	case "checkbox", "radio":
		return true
	}
	return false
}

func nearest(path []*Node, tag string) *Node {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].Tag == tag {
			return path[i]
		}
	}
	return nil
}

func findByAttr(root *Node, name, value string) *Node {
	var found *Node
	root.Walk(func(node *Node, _ []*Node) bool {
		if node.IsElement() && node.AttrValue(name) == value {
			if _, ok := node.Attr(name); ok {
				found = node
				return false
			}
		}
		return true
	})
	return found
}
