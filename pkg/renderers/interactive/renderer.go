package interactive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/render"
)

// ErrAborted is returned when the user leaves the session without
// submitting.
var ErrAborted = errors.New("interactive: aborted")

// Run drives f in a bubbletea program until it is submitted or abandoned
// and returns the submitted values.
func Run(ctx context.Context, f *form.Form, options ...Option) (map[string]any, error) {
	if f == nil {
		return nil, errors.New("interactive: form is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.input != nil {
		progOpts = append(progOpts, tea.WithInput(cfg.input))
	}
	if cfg.output != nil {
		progOpts = append(progOpts, tea.WithOutput(cfg.output))
	}
	if cfg.altScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	m := NewModel(ctx, f, options...)
	final, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		return nil, fmt.Errorf("interactive: %w", err)
	}
	result, ok := final.(*Model)
	if !ok || result.Aborted() || !result.Submitted() {
		cfg.logger.Debug("session left without submitting", slog.String("form", f.TestID()))
		return nil, ErrAborted
	}
	cfg.logger.Debug("session submitted", slog.String("form", f.TestID()))
	return f.Engine().Values(), nil
}

// Renderer adapts Run to render.Renderer. The output is the submitted
// values as JSON.
type Renderer struct {
	options []Option
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a renderer passing options to every session.
func New(options ...Option) *Renderer {
	return &Renderer{options: options}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "interactive"
}

// ContentType reports the output format.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render applies opts to f, runs a session and encodes the values.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if f == nil {
		return nil, errors.New("interactive: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	notes := render.Apply(f, opts)
	options := append([]Option{WithNotes(notes...)}, r.options...)
	if opts.Title != "" {
		options = append(options, WithTitle(opts.Title))
	}
	values, err := Run(ctx, f, options...)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("interactive: encode values: %w", err)
	}
	return data, nil
}
