// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pstaylor-patrick/substack2remarkable/internal/library"
	"github.com/pstaylor-patrick/substack2remarkable/internal/render"
	"github.com/pstaylor-patrick/substack2remarkable/internal/sse"
	"github.com/pstaylor-patrick/substack2remarkable/internal/storage"
	"github.com/pstaylor-patrick/substack2remarkable/internal/watch"
	"github.com/pstaylor-patrick/substack2remarkable/internal/web"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("library_path", cfg.Library.Path),
		slog.Bool("livereload", cfg.LiveReload.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize read-only storage over the article tree.
	store, err := storage.NewFS(cfg.Library.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	lib := library.New(store)
	renderer := render.New(cfg.LiveReload.Enabled)

	// SSE broker for live reload, only when enabled.
	var broker *sse.Broker
	var reloadHandler http.Handler
	if cfg.LiveReload.Enabled {
		broker = sse.NewBroker()
		defer broker.Close()
		reloadHandler = broker
	}

	h := web.NewHandler(lib, renderer, store.Root())
	r := web.NewRouter(h, reloadHandler)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start file watcher feeding the reload stream.
	if cfg.LiveReload.Enabled {
		g.Go(func() error {
			if watchErr := watch.Watch(gCtx, store.Root(), logger, broker.PublishReload); watchErr != nil {
				logger.Warn("watcher failed", slog.String("error", watchErr.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
