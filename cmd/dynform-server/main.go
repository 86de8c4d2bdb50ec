package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-dynform"
	"github.com/goliatone/go-dynform/internal/server"
	pkgopenapi "github.com/goliatone/go-dynform/pkg/openapi"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
	"github.com/goliatone/go-dynform/pkg/render"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		fmt.Fprintf(os.Stdout, "Usage: %s\n\nEnvironment:\n%s", filepath.Base(os.Args[0]), server.Usage())
		return
	}

	cfg, err := server.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dynform-server: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(os.Stdout, cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(w io.Writer, cfg *server.Config) *slog.Logger {
	level, _ := cfg.Level()
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func serve(ctx context.Context, cfg *server.Config, logger *slog.Logger) error {
	srv, err := build(cfg, logger)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", cfg.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}

func build(cfg *server.Config, logger *slog.Logger) (*server.Server, error) {
	html, err := vanilla.New(vanilla.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)

	orchOpts := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithLoader(dynform.NewLoader(pkgopenapi.WithHTTPFallback(30 * time.Second))),
		orchestrator.WithLogger(logger),
	}
	if cfg.FormsDir != "" {
		if _, err := os.Stat(cfg.FormsDir); err == nil {
			orchOpts = append(orchOpts, dynform.WithSchemaFS(os.DirFS(cfg.FormsDir)))
		} else {
			logger.Warn("forms directory unavailable", slog.String("dir", cfg.FormsDir), slog.Any("error", err))
		}
	}
	if cfg.ThemeFile != "" {
		manifest, err := orchestrator.LoadManifest(os.DirFS(filepath.Dir(cfg.ThemeFile)), filepath.Base(cfg.ThemeFile))
		if err != nil {
			return nil, err
		}
		orchOpts = append(orchOpts, dynform.WithThemes(manifest.Name, cfg.Variant, manifest))
	}

	options := []server.Option{
		server.WithLogger(logger),
		server.WithSessionTTL(cfg.SessionTTL),
		server.WithTheme(cfg.ThemeName, cfg.Variant),
	}
	if raw := strings.TrimSpace(cfg.OpenAPI); raw != "" {
		var src pkgopenapi.Source
		if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
			src, err = pkgopenapi.SourceFromURL(raw)
			if err != nil {
				return nil, err
			}
		} else {
			src = pkgopenapi.SourceFromFile(raw)
		}
		options = append(options, server.WithOpenAPI(src))
	}
	return server.New(dynform.NewOrchestrator(orchOpts...), options...)
}
