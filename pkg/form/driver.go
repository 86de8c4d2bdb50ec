package form

import (
	"fmt"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/view"
)

// Driver operates a form through its rendered tree, dispatching the events
// a pointer or keyboard would. Values therefore pass through the same
// conversions and validation as in a browser.
type Driver struct {
	form *Form
	doc  *view.Document
}

// Driver returns a driver over a fresh document.
func (f *Form) Driver() *Driver {
	return &Driver{form: f, doc: f.Document()}
}

// Document exposes the driven document.
func (d *Driver) Document() *view.Document {
	return d.doc
}

// Set delivers value to ctl as a change followed by a blur.
func (d *Driver) Set(ctl Control, value any) error {
	target := d.input(ctl)
	if target == nil {
		return fmt.Errorf("form: control %s not rendered", ctl.Field.Name)
	}
	if err := d.doc.Change(target, value); err != nil {
		return fmt.Errorf("form: change %s: %w", ctl.Field.Name, err)
	}
	return d.Blur(ctl)
}

// Select clicks the options of a select control until its selection holds
// exactly values, then blurs it. Single-choice menus keep the first value.
func (d *Driver) Select(ctl Control, values ...string) error {
	opts, _ := ctl.Resolution.Options.(*model.SelectOptions)
	if opts == nil {
		return fmt.Errorf("form: %s is not a select", ctl.Field.Name)
	}
	if opts.Single && len(values) > 1 {
		values = values[:1]
	}
	desired := make(map[string]bool, len(values))
	for _, v := range values {
		desired[v] = true
	}
	current := make(map[string]bool)
	for _, item := range controls.Selection(d.form.engine.Value(ctl.Field.Name), opts.Items) {
		current[item.Value] = true
	}
	for _, item := range opts.Items {
		if current[item.Value] == desired[item.Value] {
			continue
		}
		if opts.Single && !desired[item.Value] {
			// choosing another item replaces the selection
			continue
		}
		if err := d.Toggle(ctl, item.Value); err != nil {
			return err
		}
	}
	return d.Blur(ctl)
}

// Toggle clicks the option carrying value.
func (d *Driver) Toggle(ctl Control, value string) error {
	option := d.option(ctl, value)
	if option == nil {
		return fmt.Errorf("form: option %q of %s not rendered", value, ctl.Field.Name)
	}
	if err := d.doc.Click(option); err != nil {
		return fmt.Errorf("form: select %s: %w", ctl.Field.Name, err)
	}
	return nil
}

// Blur moves focus away from ctl, which marks it touched and validates it.
func (d *Driver) Blur(ctl Control) error {
	target := d.input(ctl)
	if ctl.Resolution.Kind == controls.KindSelect && target != nil {
		target = target.Find(func(n *view.Node) bool { return n.Tag == "button" })
	}
	if target == nil {
		return fmt.Errorf("form: control %s not rendered", ctl.Field.Name)
	}
	if err := d.doc.Blur(target); err != nil {
		return fmt.Errorf("form: blur %s: %w", ctl.Field.Name, err)
	}
	return nil
}

// input locates the element receiving change events. Toggles are labelled
// wrappers around the checkbox.
func (d *Driver) input(ctl Control) *view.Node {
	node := d.doc.Root().ByTestID(ctl.InputTestID)
	if node == nil {
		return nil
	}
	if ctl.Resolution.Kind.Toggle() {
		return node.Find(func(n *view.Node) bool { return n.Tag == "input" })
	}
	return node
}

func (d *Driver) option(ctl Control, value string) *view.Node {
	root := d.doc.Root().ByTestID(ctl.TestID)
	if root == nil {
		return nil
	}
	return root.Find(func(n *view.Node) bool {
		return n.Tag == "li" && n.AttrValue("role") == "option" && n.AttrValue("data-value") == value
	})
}
