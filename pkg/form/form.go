package form

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/formstate"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/view"
)

// Form is a configured form bound to its own form-state engine.
type Form struct {
	cfg     Config
	testID  string
	label   string
	engine  *formstate.Engine
	widgets *controls.Registry
	styles  Styles
	logger  *slog.Logger
	ctx     context.Context

	mu         sync.RWMutex
	feedback   model.Feedback
	lastSubmit error
}

// New validates cfg and builds a form. Configuration problems are reported
// together as ConfigError values joined with errors.Join.
func New(cfg Config, opts ...Option) (*Form, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := check(cfg, o.strictTypes); err != nil {
		return nil, err
	}

	f := &Form{
		cfg:      cfg,
		testID:   cfg.ResolvedTestID(),
		label:    cfg.ResolvedLabel(),
		widgets:  o.widgets,
		styles:   StylesFor(cfg.Theme),
		logger:   o.logger,
		ctx:      o.ctx,
		feedback: append(model.Feedback(nil), cfg.Feedback...),
	}
	f.engine = formstate.New(cfg.DefaultValues(),
		formstate.WithSubmit(cfg.OnSubmit),
		formstate.WithLogger(o.logger),
	)
	for _, field := range cfg.AllFields() {
		if !field.Type.Valid() {
			f.logger.Info("unknown field type renders no control",
				slog.String("field", field.Key()),
				slog.String("type", string(field.Type)),
			)
			continue
		}
		if field.Type.DataBearing() {
			f.engine.RegisterField(strings.TrimSpace(field.Name), field.Validate)
		}
	}
	return f, nil
}

// Engine returns the form-state engine backing the form.
func (f *Form) Engine() *formstate.Engine {
	return f.engine
}

// TestID returns the resolved test id prefix.
func (f *Form) TestID() string {
	return f.testID
}

// Config returns the configuration the form was built from.
func (f *Form) Config() Config {
	return f.cfg
}

// Styles returns the slot styles derived from the theme.
func (f *Form) Styles() Styles {
	return f.styles
}

// Stylesheets lists the stylesheets required by the registered widgets.
func (f *Form) Stylesheets() []string {
	return f.widgets.Stylesheets()
}

// Controls lists every field that renders an interactive control, in
// document order.
func (f *Form) Controls() []Control {
	var out []Control
	for _, field := range f.cfg.AllFields() {
		ctl := f.control(field)
		if ctl.Resolution.Kind == controls.KindNone || strings.TrimSpace(field.Name) == "" {
			continue
		}
		out = append(out, ctl)
	}
	return out
}

// Feedback returns the current feedback entries.
func (f *Form) Feedback() model.Feedback {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append(model.Feedback(nil), f.feedback...)
}

// SetFeedback replaces the feedback entries used by the next render.
func (f *Form) SetFeedback(feedback model.Feedback) error {
	if err := checkFeedback(feedback); err != nil {
		return err
	}
	f.mu.Lock()
	f.feedback = append(model.Feedback(nil), feedback...)
	f.mu.Unlock()
	return nil
}

// Submit runs the engine's submit pipeline.
func (f *Form) Submit(ctx context.Context) error {
	err := f.engine.SubmitForm(ctx)
	f.mu.Lock()
	f.lastSubmit = err
	f.mu.Unlock()

	switch {
	case err == nil:
		f.logger.Debug("form submitted", slog.String("form", f.testID))
	case errors.Is(err, formstate.ErrInvalid):
		f.logger.Debug("form submission blocked by validation", slog.String("form", f.testID))
	case errors.Is(err, formstate.ErrSubmitInFlight):
		f.logger.Debug("form submission already in flight", slog.String("form", f.testID))
	default:
		f.logger.Warn("form submission failed", slog.String("form", f.testID), slog.Any("error", err))
	}
	return err
}

// LastSubmitError returns the outcome of the most recent submission.
func (f *Form) LastSubmitError() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastSubmit
}

func (f *Form) submitFromEvent() {
	_ = f.Submit(f.ctx)
}

// Render produces the current tree. When any feedback entry is visible the
// result holds only the visible feedback entries; otherwise it holds the form
// and no feedback.
func (f *Form) Render() *view.Node {
	if feedback := f.Feedback(); feedback.AnyVisible() {
		return f.feedbackView(feedback)
	}

	formAttrs := view.Attrs{"class": "dynamic-form", "novalidate": ""}
	if id := strings.TrimSpace(f.cfg.ID); id != "" {
		formAttrs["id"] = id
	}
	formNode := view.El("form", formAttrs, f.layout(f.cfg.Fields)...)
	formNode.Append(f.actionBar(f.cfg.Actions))
	formNode.On(view.EventSubmit, func(evt *view.Event) {
		evt.PreventDefault()
		f.submitFromEvent()
	})

	container := view.El("div", view.Attrs{
		"class":       "dynamic-form__container",
		"data-testid": f.testID + "--container",
		"aria-label":  f.label,
	}, formNode)
	if style := view.Style(f.cfg.Style); style != "" {
		container.SetAttr("style", style)
	}
	return container
}

// Document returns an interactive document over Render.
func (f *Form) Document() *view.Document {
	return view.NewDocument(f.Render)
}

// HTML renders the current tree as markup.
func (f *Form) HTML() string {
	return view.HTML(f.Render())
}
