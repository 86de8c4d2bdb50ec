package interactive

import (
	"strings"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/model"
)

const helpLine = "tab/shift+tab move • space toggle • ←/→ options • enter submit • esc quit"

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.title))
	b.WriteString("\n")
	for _, note := range m.notes {
		b.WriteString(m.theme.Error.Render(note))
		b.WriteString("\n")
	}

	if m.submitted {
		for _, entry := range m.form.Feedback().Visible() {
			if entry.Title != "" {
				b.WriteString(m.theme.Status.Render(entry.Title))
				b.WriteString("\n")
			}
		}
		return b.String()
	}

	engine := m.form.Engine()
	for i, s := range m.fields {
		for _, heading := range s.headings {
			b.WriteString("\n")
			b.WriteString(m.theme.Heading.Render(heading))
			b.WriteString("\n")
		}
		focused := i == m.focus
		marker := "  "
		if focused {
			marker = m.theme.Focused.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(m.theme.Label.Render(label(s.ctl.Field)))
		b.WriteString(": ")
		b.WriteString(m.value(s, focused))
		b.WriteString("\n")
		name := s.ctl.Field.Name
		if engine.IsTouched(name) {
			if msg := engine.Error(name); msg != "" {
				b.WriteString("    ")
				b.WriteString(m.theme.Error.Render(msg))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	button := m.submitLabel()
	if m.focus == len(m.fields) {
		b.WriteString(m.theme.Focused.Inherit(m.theme.Button).Render(button))
	} else {
		b.WriteString(m.theme.Button.Render(button))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.theme.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Help.Render(helpLine))
	return b.String()
}

func (m *Model) value(s *slot, focused bool) string {
	field := s.ctl.Field
	switch kind := s.ctl.Resolution.Kind; {
	case kind.Toggle():
		if controls.Bool(m.form.Engine().Value(field.Name)) {
			return "[x]"
		}
		return "[ ]"
	case kind == controls.KindSelect:
		opts, _ := s.ctl.Resolution.Options.(*model.SelectOptions)
		selected := make(map[string]bool)
		single := opts != nil && opts.Single
		for _, item := range controls.Selection(m.form.Engine().Value(field.Name), s.items()) {
			selected[item.Value] = true
		}
		parts := make([]string, 0, len(s.items()))
		for i, item := range s.items() {
			mark := "[ ]"
			if single {
				mark = "( )"
			}
			if selected[item.Value] {
				mark = "[x]"
				if single {
					mark = "(•)"
				}
			}
			part := mark + " " + item.Label
			if focused && i == s.cursor {
				part = m.theme.Focused.Render(part)
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, "  ")
	default:
		text := string(s.buffer)
		if text == "" && !focused {
			placeholder := field.Placeholder
			if placeholder == "" && kind == controls.KindDatepicker {
				opts, _ := s.ctl.Resolution.Options.(*model.DatepickerOptions)
				placeholder = opts.Layout()
			}
			return m.theme.Placeholder.Render(placeholder)
		}
		if focused {
			text += "_"
		}
		return text
	}
}

func (m *Model) submitLabel() string {
	for _, action := range m.form.Config().Actions {
		if action.Kind() == model.ActionSubmit {
			if m.form.Engine().IsSubmitting() {
				return action.Busy()
			}
			return action.Title
		}
	}
	return "Submit"
}

func label(field model.Field) string {
	text := strings.TrimSpace(field.Label)
	if text == "" {
		text = field.Name
	}
	if field.Required {
		text += " *"
	}
	return text
}
