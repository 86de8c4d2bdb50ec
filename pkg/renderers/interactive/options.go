package interactive

import (
	"io"
	"log/slog"
)

type config struct {
	theme     Theme
	title     string
	notes     []string
	input     io.Reader
	output    io.Writer
	altScreen bool
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		theme:  DefaultTheme(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// Option configures a session.
type Option func(*config)

// WithTheme replaces the session styles.
func WithTheme(theme Theme) Option {
	return func(c *config) {
		c.theme = theme
	}
}

// WithTitle overrides the heading, which defaults to the form label.
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = title
	}
}

// WithNotes prints messages under the title, such as form-level errors
// returned by a server.
func WithNotes(notes ...string) Option {
	return func(c *config) {
		c.notes = append(c.notes, notes...)
	}
}

// WithInput reads keys from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(c *config) {
		c.input = r
	}
}

// WithOutput draws to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithAltScreen runs the session in the terminal's alternate screen.
func WithAltScreen() Option {
	return func(c *config) {
		c.altScreen = true
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
