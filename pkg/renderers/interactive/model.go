package interactive

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/formstate"
	"github.com/goliatone/go-dynform/pkg/model"
)

// Model is the bubbletea model of a session. Focus cycles through the
// enabled controls and the submit button.
type Model struct {
	ctx    context.Context
	form   *form.Form
	driver *form.Driver
	theme  Theme
	title  string
	notes  []string

	fields []*slot
	focus  int
	status string
	width  int

	submitted bool
	aborted   bool
}

type slot struct {
	ctl      form.Control
	headings []string
	buffer   []rune
	cursor   int
	dirty    bool
}

var _ tea.Model = (*Model)(nil)

// NewModel builds a session over f. Values already in the engine seed the
// text buffers.
func NewModel(ctx context.Context, f *form.Form, options ...Option) *Model {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:    ctx,
		form:   f,
		driver: f.Driver(),
		theme:  cfg.theme,
		title:  strings.TrimSpace(cfg.title),
		notes:  cfg.notes,
	}
	if m.title == "" {
		m.title = f.Config().ResolvedLabel()
	}

	byName := make(map[string]form.Control)
	for _, ctl := range f.Controls() {
		byName[ctl.Field.Name] = ctl
	}
	var headings []string
	for _, field := range f.Config().AllFields() {
		if heading := strings.TrimSpace(field.Heading); heading != "" {
			headings = append(headings, heading)
		}
		ctl, ok := byName[field.Name]
		if !ok || field.Type == model.FieldTypeHeader || field.Disabled {
			continue
		}
		s := &slot{ctl: ctl, headings: headings}
		headings = nil
		s.reset(f.Engine().Value(field.Name))
		m.fields = append(m.fields, s)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Submitted reports whether the form was submitted successfully.
func (m *Model) Submitted() bool {
	return m.submitted
}

// Aborted reports whether the user left without submitting.
func (m *Model) Aborted() bool {
	return m.aborted
}

// Focus returns the focused field name, or "" when the submit button has
// focus.
func (m *Model) Focus() string {
	if s := m.current(); s != nil {
		return s.ctl.Field.Name
	}
	return ""
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m *Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		m.move(1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.move(-1)
		return m, nil
	case tea.KeyEnter:
		if s := m.current(); s != nil && s.ctl.Resolution.Kind == controls.KindTextarea {
			s.insert('\n')
			return m, nil
		}
		return m.submit()
	}

	s := m.current()
	if s == nil {
		return m, nil
	}
	kind := s.ctl.Resolution.Kind
	switch {
	case kind.Toggle():
		if msg.Type == tea.KeySpace {
			m.fail(m.driver.Set(s.ctl, !controls.Bool(m.form.Engine().Value(s.ctl.Field.Name))))
		}
	case kind == controls.KindSelect:
		items := s.items()
		switch msg.Type {
		case tea.KeyLeft:
			if s.cursor > 0 {
				s.cursor--
			}
		case tea.KeyRight:
			if s.cursor < len(items)-1 {
				s.cursor++
			}
		case tea.KeySpace:
			if len(items) > 0 {
				m.fail(m.driver.Toggle(s.ctl, items[s.cursor].Value))
			}
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				s.insert(r)
			}
		case tea.KeySpace:
			s.insert(' ')
		case tea.KeyBackspace:
			if n := len(s.buffer); n > 0 {
				s.buffer = s.buffer[:n-1]
				s.dirty = true
			}
		}
	}
	return m, nil
}

func (m *Model) current() *slot {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return m.fields[m.focus]
}

// move commits the focused field and shifts focus by delta, wrapping
// around the submit button.
func (m *Model) move(delta int) {
	m.commit()
	n := len(m.fields) + 1
	m.focus = ((m.focus+delta)%n + n) % n
}

// commit hands the focused field's pending input to the form and blurs it.
func (m *Model) commit() {
	s := m.current()
	if s == nil {
		return
	}
	m.status = ""
	if !s.dirty || !s.textual() {
		m.fail(m.driver.Blur(s.ctl))
		return
	}
	s.dirty = false
	text := string(s.buffer)
	if s.ctl.Resolution.Kind == controls.KindDatepicker && strings.TrimSpace(text) != "" {
		opts, _ := s.ctl.Resolution.Options.(*model.DatepickerOptions)
		if _, ok := controls.ParseDate(text, opts); !ok {
			m.status = "Invalid date, expected " + opts.Layout()
			m.fail(m.driver.Blur(s.ctl))
			return
		}
	}
	m.fail(m.driver.Set(s.ctl, text))
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	m.commit()
	err := m.form.Submit(m.ctx)
	var invalid *formstate.ValidationError
	switch {
	case err == nil:
		m.submitted = true
		m.status = ""
		return m, tea.Quit
	case errors.As(err, &invalid):
		m.status = "Please fix the highlighted fields"
		for i, s := range m.fields {
			if _, failed := invalid.Fields[s.ctl.Field.Name]; failed {
				m.focus = i
				break
			}
		}
	default:
		m.status = err.Error()
	}
	return m, nil
}

func (m *Model) fail(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

func (s *slot) textual() bool {
	switch s.ctl.Resolution.Kind {
	case controls.KindText, controls.KindTextarea, controls.KindNumber, controls.KindDatepicker:
		return true
	}
	return false
}

func (s *slot) insert(r rune) {
	s.buffer = append(s.buffer, r)
	s.dirty = true
}

func (s *slot) items() []model.MenuOption {
	if opts, ok := s.ctl.Resolution.Options.(*model.SelectOptions); ok && opts != nil {
		return opts.Items
	}
	return nil
}

func (s *slot) reset(value any) {
	var text string
	switch s.ctl.Resolution.Kind {
	case controls.KindNumber:
		opts, _ := s.ctl.Resolution.Options.(*model.NumberOptions)
		text = controls.FormatNumber(value, opts)
	case controls.KindDatepicker:
		opts, _ := s.ctl.Resolution.Options.(*model.DatepickerOptions)
		text = controls.FormatDate(value, opts)
	case controls.KindText, controls.KindTextarea:
		text = controls.Text(value)
	}
	s.buffer = []rune(text)
	s.dirty = false
}
