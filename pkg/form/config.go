package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/formstate"
	"github.com/goliatone/go-dynform/pkg/model"
)

// Config is the caller-facing description of a form: the descriptor data
// plus the submit handler and the theme used for styling.
type Config struct {
	model.Form

	// OnSubmit runs after every field validated. It may be nil.
	OnSubmit formstate.SubmitFunc `json:"-" yaml:"-"`
	// Theme supplies tokens for the inline styles. Nil uses the defaults.
	Theme *theme.RendererConfig `json:"-" yaml:"-"`
}

// ErrConfig is matched by every ConfigError.
var ErrConfig = errors.New("form: invalid configuration")

// ConfigError reports a programming error in a Config. Path locates the
// offending entry, e.g. "fields[2][1]" or "actions[0]".
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return "form: " + e.Message
	}
	return fmt.Sprintf("form: %s: %s", e.Path, e.Message)
}

// Unwrap lets callers match ErrConfig.
func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// Option customises a Form.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	widgets     *controls.Registry
	strictTypes bool
	ctx         context.Context
}

// WithLogger attaches a structured logger shared with the form-state engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWidgets replaces the widget registry used to render controls.
func WithWidgets(registry *controls.Registry) Option {
	return func(o *options) {
		if registry != nil {
			o.widgets = registry
		}
	}
}

// WithStrictTypes turns unrecognised field types into configuration errors
// instead of rendering no control.
func WithStrictTypes() Option {
	return func(o *options) {
		o.strictTypes = true
	}
}

// WithContext sets the context handed to the submit handler when a
// submission is triggered by an event.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

func defaultOptions() options {
	return options{
		logger:  slog.New(slog.DiscardHandler),
		widgets: controls.NewDefaultRegistry(),
		ctx:     context.Background(),
	}
}

// check collects every configuration problem of cfg.
func check(cfg Config, strict bool) error {
	var errs []error
	fail := func(path, format string, args ...any) {
		errs = append(errs, &ConfigError{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	names := make(map[string]string)
	groupKeys := make(map[string]string)
	checkField := func(path string, field model.Field) {
		if !field.Type.Valid() {
			if strict {
				fail(path, "unknown field type %q", field.Type)
			}
			return
		}
		if !field.Type.DataBearing() {
			return
		}
		name := strings.TrimSpace(field.Name)
		if name == "" {
			fail(path, "%s field requires a name", field.Type.Normalize())
			return
		}
		if prev, ok := names[name]; ok {
			fail(path, "duplicate field name %q (first declared at %s)", name, prev)
			return
		}
		names[name] = path
	}

	for i, entry := range cfg.Fields {
		path := fmt.Sprintf("fields[%d]", i)
		if !entry.IsGroup() {
			field, ok := entry.Field()
			if !ok {
				fail(path, "entry is empty")
				continue
			}
			checkField(path, field)
			continue
		}
		group := entry.Group()
		if len(group) == 0 {
			fail(path, "group has no fields")
			continue
		}
		key := group.Key()
		if prev, ok := groupKeys[key]; ok {
			fail(path, "duplicate group key %q (first declared at %s)", key, prev)
		} else {
			groupKeys[key] = path
		}
		for j, field := range group {
			checkField(fmt.Sprintf("%s[%d]", path, j), field)
		}
	}

	for i, action := range cfg.Actions {
		if action.Kind() == model.ActionButton && action.OnClick == nil {
			fail(fmt.Sprintf("actions[%d]", i), "button action %q requires OnClick", action.Title)
		}
	}

	if err := checkFeedback(cfg.Feedback); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func checkFeedback(feedback model.Feedback) error {
	var errs []error
	seen := make(map[model.FeedbackKind]int)
	for i, entry := range feedback {
		path := fmt.Sprintf("feedback[%d]", i)
		if strings.TrimSpace(string(entry.Kind)) == "" {
			errs = append(errs, &ConfigError{Path: path, Message: "feedback entry requires a kind"})
			continue
		}
		if prev, ok := seen[entry.Kind]; ok {
			errs = append(errs, &ConfigError{Path: path, Message: fmt.Sprintf("duplicate feedback kind %q (first declared at feedback[%d])", entry.Kind, prev)})
			continue
		}
		seen[entry.Kind] = i
	}
	return errors.Join(errs...)
}
