package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

// Renderer implements render.Renderer for prompt-driven terminal sessions.
// It asks for every enabled control in document order, feeds each answer to
// the rendered tree as a change followed by a blur, asks again while the
// field reports an error, then submits the form and serialises the values.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	logger            *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a renderer with the survey driver and JSON output.
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme(),
		maxAttempts:  3,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialisation format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render runs the session. A blocked submission returns an error matching
// formstate.ErrInvalid; an interrupted prompt returns ErrAborted.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if f == nil {
		return nil, errors.New("tui: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	formErrors := render.Apply(f, opts)

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = f.Config().ResolvedLabel()
	}
	if err := r.driver.Info(ctx, r.theme.Title.Render(title)); err != nil {
		return nil, err
	}
	for _, msg := range formErrors {
		if err := r.driver.Info(ctx, r.theme.Error.Render(msg)); err != nil {
			return nil, err
		}
	}

	s := &session{renderer: r, form: f, driver: f.Driver()}
	byName := make(map[string]form.Control)
	for _, ctl := range f.Controls() {
		byName[ctl.Field.Name] = ctl
	}
	for _, field := range f.Config().AllFields() {
		if heading := strings.TrimSpace(field.Heading); heading != "" {
			if err := r.driver.Info(ctx, r.theme.Heading.Render(heading)); err != nil {
				return nil, err
			}
		}
		ctl, ok := byName[field.Name]
		if !ok || field.Type == model.FieldTypeHeader {
			continue
		}
		if field.Disabled {
			r.logger.Debug("skipping disabled field", slog.String("field", field.Name))
			continue
		}
		if err := s.ask(ctx, ctl); err != nil {
			return nil, err
		}
	}

	if err := f.Submit(ctx); err != nil {
		return nil, fmt.Errorf("tui: submit: %w", err)
	}
	for _, entry := range f.Feedback().Visible() {
		if entry.Title == "" {
			continue
		}
		if err := r.driver.Info(ctx, r.theme.Info.Render(entry.Title)); err != nil {
			return nil, err
		}
	}

	values := f.Engine().Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func promptMessage(field model.Field) string {
	label := strings.TrimSpace(field.Label)
	if label == "" {
		label = field.Name
	}
	if field.Required {
		label += " *"
	}
	return label
}

func kindOf(ctl form.Control) controls.Kind {
	return ctl.Resolution.Kind
}
