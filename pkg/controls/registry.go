package controls

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-dynform/pkg/view"
)

// Widget renders a control for a resolved field.
type Widget func(props Props) *view.Node

// Descriptor bundles a widget with the stylesheets it needs once per page.
type Descriptor struct {
	Name        string
	Widget      Widget
	Stylesheets []string
}

// Registry maps control kinds to widgets. Callers can override defaults to
// swap the rendering of a kind without touching the binder.
type Registry struct {
	mu      sync.RWMutex
	widgets map[Kind]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{widgets: make(map[Kind]Descriptor)}
}

// NewDefaultRegistry returns a registry with the built-in widgets.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(KindText, Descriptor{Name: "input", Widget: TextInput})
	r.MustRegister(KindTextarea, Descriptor{Name: "textarea", Widget: TextArea})
	r.MustRegister(KindNumber, Descriptor{Name: "number-input", Widget: NumberInput})
	r.MustRegister(KindCheckbox, Descriptor{Name: "checkbox", Widget: Checkbox})
	r.MustRegister(KindSwitch, Descriptor{Name: "switch", Widget: Switch})
	r.MustRegister(KindDatepicker, Descriptor{Name: "datepicker", Widget: DatePicker})
	r.MustRegister(KindSelect, Descriptor{Name: "multi-select", Widget: MultiSelect})
	return r
}

// Register associates a descriptor with kind, replacing any existing entry.
func (r *Registry) Register(kind Kind, descriptor Descriptor) error {
	if kind == KindNone {
		return fmt.Errorf("controls: kind %s cannot have a widget", kind)
	}
	if descriptor.Widget == nil {
		return fmt.Errorf("controls: widget for %s is nil", kind)
	}
	if descriptor.Name == "" {
		descriptor.Name = kind.String()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.widgets[kind] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(kind Kind, descriptor Descriptor) {
	if err := r.Register(kind, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor returns the descriptor registered for kind.
func (r *Registry) Descriptor(kind Kind) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.widgets[kind]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(d), true
}

// Widget returns the widget registered for kind, or nil.
func (r *Registry) Widget(kind Kind) Widget {
	d, ok := r.Descriptor(kind)
	if !ok {
		return nil
	}
	return d.Widget
}

// Kinds returns registered kinds in ascending order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.widgets))
	for k := range r.widgets {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Stylesheets returns the de-duplicated stylesheets of every registered
// widget in kind order.
func (r *Registry) Stylesheets() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, kind := range r.Kinds() {
		d, _ := r.Descriptor(kind)
		for _, sheet := range d.Stylesheets {
			if _, ok := seen[sheet]; ok {
				continue
			}
			seen[sheet] = struct{}{}
			out = append(out, sheet)
		}
	}
	return out
}

// Clone returns an independent copy.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := NewRegistry()
	for k, d := range r.widgets {
		out.widgets[k] = cloneDescriptor(d)
	}
	return out
}

func cloneDescriptor(d Descriptor) Descriptor {
	d.Stylesheets = append([]string(nil), d.Stylesheets...)
	return d
}
