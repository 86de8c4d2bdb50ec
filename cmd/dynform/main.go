package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-dynform"
	"github.com/goliatone/go-dynform/pkg/formstate"
	"github.com/goliatone/go-dynform/pkg/model"
	pkgopenapi "github.com/goliatone/go-dynform/pkg/openapi"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/interactive"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
	"github.com/goliatone/go-dynform/pkg/schema"
)

const usage = `Usage: dynform <command> [flags]

Commands:
  render        render a form to HTML (or any registered renderer)
  tui           collect values through terminal prompts
  interactive   collect values in a full-screen terminal form
  list          list form ids and OpenAPI operation ids
  lint          report unsupported x-dynform hints in OpenAPI documents

Run "dynform <command> -h" for the flags of a command.
`

type options struct {
	openapi   string
	operation string
	formsDir  string
	formID    string
	renderer  string
	output    string
	values    string
	errors    string
	format    string
	title     string
	themeFile string
	theme     string
	variant   string
	verbose   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "dynform: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("command is required")
	}
	command, rest := args[0], args[1:]
	switch command {
	case "render", "tui", "interactive":
		return runGenerate(ctx, command, rest, stdin, stdout, stderr)
	case "list":
		return runList(ctx, rest, stdout, stderr)
	case "lint":
		return runLint(ctx, rest, stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func parseFlags(command string, args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("dynform "+command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.openapi, "openapi", "", "OpenAPI document path or URL")
	fs.StringVar(&opts.operation, "operation", "", "operation ID to render")
	fs.StringVar(&opts.formsDir, "forms", "", "directory of form documents")
	fs.StringVar(&opts.formID, "form", "", "form ID to render from -forms")
	fs.BoolVar(&opts.verbose, "v", false, "log debug messages to stderr")
	if command == "list" {
		return opts, fs.Parse(args)
	}
	fs.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&opts.values, "values", "", "JSON file of initial values")
	fs.StringVar(&opts.errors, "errors", "", "JSON file of server errors keyed by field path")
	fs.StringVar(&opts.title, "title", "", "page or session title")
	fs.StringVar(&opts.themeFile, "theme-file", "", "theme manifest (YAML or JSON)")
	fs.StringVar(&opts.theme, "theme", "", "theme name")
	fs.StringVar(&opts.variant, "variant", "", "theme variant")
	switch command {
	case "render":
		fs.StringVar(&opts.renderer, "renderer", "vanilla", "renderer to use")
	case "tui":
		fs.StringVar(&opts.format, "format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if command != "render" {
		opts.renderer = command
	}
	switch tui.OutputFormat(opts.format) {
	case "", tui.OutputFormatJSON, tui.OutputFormatFormURLEncoded, tui.OutputFormatPrettyText:
	default:
		return opts, fmt.Errorf("unsupported output format %q", opts.format)
	}
	return opts, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runGenerate(ctx context.Context, command string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(command, args, stderr)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, opts.verbose)

	orch, err := newOrchestrator(opts, stdin, stderr, logger)
	if err != nil {
		return err
	}
	req, err := newRequest(opts, logger)
	if err != nil {
		return err
	}
	output, err := orch.Generate(ctx, req)
	if err != nil {
		return err
	}
	return writeOutput(stdout, stderr, opts.output, output)
}

func newOrchestrator(opts options, stdin io.Reader, ui io.Writer, logger *slog.Logger) (*orchestrator.Orchestrator, error) {
	html, err := vanilla.New(vanilla.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(tui.New(
		tui.WithPromptDriver(tui.NewSurveyDriver(ui)),
		tui.WithOutputFormat(tui.OutputFormat(opts.format)),
		tui.WithLogger(logger),
	))
	registry.MustRegister(interactive.New(
		interactive.WithInput(stdin),
		interactive.WithOutput(ui),
		interactive.WithLogger(logger),
	))

	orchOpts := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithLoader(dynform.NewLoader(pkgopenapi.WithHTTPFallback(30 * time.Second))),
		orchestrator.WithLogger(logger),
	}
	if opts.formsDir != "" {
		orchOpts = append(orchOpts, dynform.WithSchemaFS(os.DirFS(opts.formsDir)))
	}
	if opts.themeFile != "" {
		manifest, err := orchestrator.LoadManifest(os.DirFS(filepath.Dir(opts.themeFile)), filepath.Base(opts.themeFile))
		if err != nil {
			return nil, err
		}
		orchOpts = append(orchOpts, dynform.WithThemes(manifest.Name, "", manifest))
	}
	return dynform.NewOrchestrator(orchOpts...), nil
}

func newRequest(opts options, logger *slog.Logger) (orchestrator.Request, error) {
	req := orchestrator.Request{
		FormID:       opts.formID,
		OperationID:  opts.operation,
		Renderer:     opts.renderer,
		ThemeName:    opts.theme,
		ThemeVariant: opts.variant,
		Bindings: schema.Bindings{
			OnSubmit: func(_ context.Context, values map[string]any, _ *formstate.Helpers) error {
				logger.Debug("form submitted", slog.Int("values", len(values)))
				return nil
			},
			Fallback: func(action model.Action) {
				logger.Info("action activated", slog.String("action", action.Title))
			},
		},
		RenderOptions: render.RenderOptions{Title: opts.title},
	}
	if opts.formID != "" && opts.formsDir == "" {
		return req, errors.New("-form requires -forms")
	}
	if opts.operation != "" {
		src, err := parseSource(opts.openapi)
		if err != nil {
			return req, err
		}
		req.Source = src
	}
	if opts.values != "" {
		if err := readJSON(opts.values, &req.RenderOptions.Values); err != nil {
			return req, err
		}
	}
	if opts.errors != "" {
		if err := readJSON(opts.errors, &req.RenderOptions.Errors); err != nil {
			return req, err
		}
	}
	return req, nil
}

func parseSource(raw string) (pkgopenapi.Source, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil, errors.New("-operation requires -openapi")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgopenapi.SourceFromURL(path)
	}
	return pkgopenapi.SourceFromFile(path), nil
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeOutput(stdout, stderr io.Writer, path string, output []byte) error {
	if path == "" {
		if _, err := stdout.Write(output); err != nil {
			return err
		}
		if len(output) > 0 && output[len(output)-1] != '\n' {
			_, err := io.WriteString(stdout, "\n")
			return err
		}
		return nil
	}
	if err := os.WriteFile(path, output, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(stderr, "Form written to %s\n", path)
	return nil
}

func runList(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags("list", args, stderr)
	if err != nil {
		return err
	}
	if opts.formsDir == "" && opts.openapi == "" {
		return errors.New("list requires -forms or -openapi")
	}
	logger := newLogger(stderr, opts.verbose)
	orch, err := newOrchestrator(opts, nil, stderr, logger)
	if err != nil {
		return err
	}
	if opts.formsDir != "" {
		for _, id := range orch.Forms() {
			fmt.Fprintf(stdout, "form\t%s\n", id)
		}
	}
	if opts.openapi != "" {
		src, err := parseSource(opts.openapi)
		if err != nil {
			return err
		}
		ids, err := orch.Operations(ctx, orchestrator.Request{Source: src})
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintf(stdout, "operation\t%s\n", id)
		}
	}
	return nil
}

func runLint(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dynform lint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: dynform lint <paths...>\n\nLint OpenAPI documents for unsupported x-dynform hints.\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		fs.Usage()
		return errors.New("lint requires at least one path")
	}

	parser := dynform.NewParser(
		pkgopenapi.WithPartialDocuments(true),
		pkgopenapi.WithReferenceResolution(false),
	)
	count := 0
	for _, path := range paths {
		violations, err := lintFile(ctx, parser, path)
		if err != nil {
			return fmt.Errorf("lint %s: %w", path, err)
		}
		for _, v := range violations {
			fmt.Fprintf(stdout, "%s: %s\n", path, v)
		}
		count += len(violations)
	}
	if count > 0 {
		return fmt.Errorf("%d hint violation(s)", count)
	}
	return nil
}

func lintFile(ctx context.Context, parser pkgopenapi.Parser, path string) ([]pkgopenapi.Violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), raw)
	if err != nil {
		return nil, fmt.Errorf("construct document: %w", err)
	}
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse operations: %w", err)
	}
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []pkgopenapi.Violation
	for _, id := range ids {
		out = append(out, pkgopenapi.Lint(operations[id])...)
	}
	return out, nil
}
