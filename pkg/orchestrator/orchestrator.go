package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-dynform/internal/openapi/loader"
	internalParser "github.com/goliatone/go-dynform/internal/openapi/parser"
	"github.com/goliatone/go-dynform/pkg/form"
	pkgopenapi "github.com/goliatone/go-dynform/pkg/openapi"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
	"github.com/goliatone/go-dynform/pkg/schema"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaStore serves declarative form documents from store.
func WithSchemaStore(store *schema.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithSchemaFS loads declarative form documents from fsys.
func WithSchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		store, err := schema.LoadFS(fsys)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load form documents: %w", err)
			return
		}
		o.store = store
	}
}

// WithSchemaTransformer registers a Transformer that can rewrite the
// descriptors before the form is built.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithFormOptions forwards options to form.New.
func WithFormOptions(options ...form.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, options...)
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from a form source to rendered
// output. It applies defaults (file and fs loader, reference-resolving
// parser, vanilla renderer) while remaining open to injection.
type Orchestrator struct {
	loader          pkgopenapi.Loader
	parser          pkgopenapi.Parser
	registry        *render.Registry
	defaultRenderer string
	store           *schema.Store
	transformer     Transformer
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	formOptions     []form.Option
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes which form to build and how to render it. Exactly one
// of FormID and OperationID selects the form.
type Request struct {
	// FormID selects a declarative form document from the schema store.
	FormID string

	// OperationID selects an OpenAPI operation. Source or Document must be
	// set.
	OperationID string
	Source      pkgopenapi.Source
	Document    *pkgopenapi.Document

	// Bindings supply the submit handler and button callbacks.
	Bindings schema.Bindings

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant are passed to the theme selector.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request values, server errors and
	// submission settings.
	RenderOptions render.RenderOptions
}

// Generate builds the requested form and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	f, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}
	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		opts.Theme = f.Config().Theme
	}
	output, err := renderer.Render(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("form generated",
		slog.String("form", f.TestID()),
		slog.String("renderer", renderer.Name()),
		slog.Int("bytes", len(output)),
	)
	return output, nil
}

// Form builds the configured form for req without rendering it. Terminal
// sessions and servers that keep forms alive between requests start here.
func (o *Orchestrator) Form(ctx context.Context, req Request) (*form.Form, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	cfg, err := o.config(ctx, req)
	if err != nil {
		return nil, err
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &cfg.Form); err != nil {
			return nil, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	th, err := o.resolveTheme(req)
	if err != nil {
		return nil, err
	}
	if th != nil {
		cfg.Theme = th
	}

	opts := append([]form.Option{form.WithLogger(o.logger), form.WithContext(ctx)}, o.formOptions...)
	f, err := form.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form: %w", err)
	}
	return f, nil
}

func (o *Orchestrator) config(ctx context.Context, req Request) (form.Config, error) {
	switch {
	case req.FormID != "" && req.OperationID != "":
		return form.Config{}, errors.New("orchestrator: form id and operation id are mutually exclusive")
	case req.FormID != "":
		doc, ok := o.store.Form(req.FormID)
		if !ok {
			return form.Config{}, fmt.Errorf("orchestrator: form %q not found", req.FormID)
		}
		return doc.Config(req.Bindings), nil
	case req.OperationID != "":
		op, err := o.operation(ctx, req)
		if err != nil {
			return form.Config{}, err
		}
		descriptors, err := pkgopenapi.Descriptors(op)
		if err != nil {
			return form.Config{}, fmt.Errorf("orchestrator: build descriptors: %w", err)
		}
		return schema.Document{ID: op.ID, Form: descriptors}.Config(req.Bindings), nil
	default:
		return form.Config{}, errors.New("orchestrator: form id or operation id is required")
	}
}

func (o *Orchestrator) operation(ctx context.Context, req Request) (pkgopenapi.Operation, error) {
	operations, err := o.operations(ctx, req)
	if err != nil {
		return pkgopenapi.Operation{}, err
	}
	op, ok := operations[req.OperationID]
	if !ok {
		return pkgopenapi.Operation{}, fmt.Errorf("orchestrator: operation %q not found", req.OperationID)
	}
	return op, nil
}

func (o *Orchestrator) operations(ctx context.Context, req Request) (map[string]pkgopenapi.Operation, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	return operations, nil
}

// Operations lists the operation ids of the document named by req's
// Source or Document, in lexical order.
func (o *Orchestrator) Operations(ctx context.Context, req Request) ([]string, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	operations, err := o.operations(ctx, req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Forms lists the ids of the declarative form documents.
func (o *Orchestrator) Forms() []string {
	return o.store.IDs()
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

// Renderer returns the named renderer, or the default one when name is
// empty.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(vanilla.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}
}
