package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/render"
	rendertemplate "github.com/goliatone/go-dynform/pkg/render/template"
	gotemplate "github.com/goliatone/go-dynform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-dynform/pkg/view"
)

// PageTemplate is the template rendered for every form. A theme can name
// another template under the PagePartial key of its partials.
const PageTemplate = "page"

// PagePartial is the theme partial key selecting the page template.
const PagePartial = "forms.page"

// Option customises the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       *string
	assetPrefix      string
	logger           *slog.Logger
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// page.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet replaces the inlined base stylesheet. An empty string
// disables it.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

// WithAssetPrefix resolves widget stylesheets under prefix when the theme
// has no asset resolver.
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetPrefix = prefix
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer renders a form as a standalone HTML page.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	stylesheet  string
	assetPrefix string
	logger      *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer with the embedded templates unless overridden.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	engine := cfg.templateRenderer
	if engine == nil {
		var err error
		engine, err = gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
	}

	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}
	return &Renderer{
		templates:   engine,
		stylesheet:  stylesheet,
		assetPrefix: strings.TrimSuffix(cfg.assetPrefix, "/"),
		logger:      cfg.logger,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render applies values and server errors from opts, renders the form tree,
// decorates it with the submission target and hidden fields, and wraps it in
// the page template.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if f == nil {
		return nil, errors.New("vanilla renderer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	formErrors := render.Apply(f, opts)
	root := render.Decorate(f.Render(), opts)

	th := opts.Theme
	if th == nil {
		th = f.Config().Theme
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = f.Config().ResolvedLabel()
	}

	data := map[string]any{
		"title":       title,
		"form_html":   view.HTML(root),
		"form_errors": formErrors,
		"stylesheets": r.stylesheetLinks(th, f.Stylesheets()),
		"css_vars":    cssVars(th),
		"theme":       themeName(th),
		"inline_css":  r.stylesheet,
	}
	out, err := r.templates.RenderTemplate(pageTemplate(th), data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	r.logger.Debug("form rendered",
		slog.String("renderer", r.Name()),
		slog.String("form", f.TestID()),
		slog.Int("form_errors", len(formErrors)),
	)
	return []byte(out), nil
}

func pageTemplate(th *theme.RendererConfig) string {
	if th != nil {
		if name := strings.TrimSpace(th.Partials[PagePartial]); name != "" {
			return name
		}
	}
	return PageTemplate
}

func (r *Renderer) stylesheetLinks(th *theme.RendererConfig, sheets []string) []string {
	links := make([]string, 0, len(sheets))
	for _, sheet := range sheets {
		switch {
		case th != nil && th.AssetURL != nil:
			if href := th.AssetURL(sheet); href != "" {
				links = append(links, href)
			}
		case r.assetPrefix != "":
			links = append(links, r.assetPrefix+"/"+strings.TrimPrefix(sheet, "/"))
		default:
			links = append(links, sheet)
		}
	}
	return links
}

// cssVars merges theme tokens with explicit CSS variables, the latter
// winning.
func cssVars(th *theme.RendererConfig) map[string]string {
	if th == nil {
		return nil
	}
	out := make(map[string]string, len(th.Tokens)+len(th.CSSVars))
	for k, v := range th.Tokens {
		out[k] = v
	}
	for k, v := range th.CSSVars {
		out[strings.TrimPrefix(k, "--")] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func themeName(th *theme.RendererConfig) string {
	if th == nil {
		return ""
	}
	if th.Variant != "" {
		return th.Theme + "/" + th.Variant
	}
	return th.Theme
}
