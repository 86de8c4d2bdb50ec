package schema

import (
	"sort"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/formstate"
	"github.com/goliatone/go-dynform/pkg/model"
)

// Store keeps the parsed form documents. It is safe for concurrent readers
// once LoadFS returns.
type Store struct {
	forms map[string]Document
}

// Document is one declarative form.
type Document struct {
	ID     string
	Source string
	Form   model.Form
	Rules  map[string]Rules
}

// Bindings supply the callbacks a document cannot declare.
type Bindings struct {
	OnSubmit formstate.SubmitFunc
	// Actions binds button actions by TestID, falling back to Title.
	Actions map[string]func()
	// Fallback handles button actions missing from Actions.
	Fallback func(model.Action)
}

// Config returns a form configuration with the declared rules attached to
// their fields and b's callbacks attached to the actions. Rules declared for
// a field that already has a Validate function run after it. Buttons left
// unbound make form.New fail.
func (d Document) Config(b Bindings) form.Config {
	f := d.Form.MapFields(func(field model.Field) model.Field {
		rules, ok := d.Rules[field.Name]
		if !ok || field.Name == "" {
			return field
		}
		if rules.Required {
			field.Required = true
		}
		field.Validate = composeValidators(field.Validate, rules.Validator())
		return field
	})
	f.Actions = make([]model.Action, 0, len(d.Form.Actions))
	for _, action := range d.Form.Actions {
		if action.Kind() == model.ActionButton && action.OnClick == nil {
			action.OnClick = b.bind(action)
		}
		f.Actions = append(f.Actions, action)
	}
	return form.Config{Form: f, OnSubmit: b.OnSubmit}
}

func (b Bindings) bind(action model.Action) func() {
	for _, key := range []string{action.TestID, action.Title} {
		if fn, ok := b.Actions[key]; ok && key != "" {
			return fn
		}
	}
	if b.Fallback != nil {
		return func() { b.Fallback(action) }
	}
	return nil
}

// Form returns the document registered under id.
func (s *Store) Form(id string) (Document, bool) {
	if s == nil {
		return Document{}, false
	}
	doc, ok := s.forms[id]
	return doc, ok
}

// IDs lists the stored form ids in lexical order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.forms))
	for id := range s.forms {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func composeValidators(first, second model.ValidateFunc) model.ValidateFunc {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func(value any) string {
		if msg := first(value); msg != "" {
			return msg
		}
		return second(value)
	}
}
