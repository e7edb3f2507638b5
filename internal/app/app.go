package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bherrmann7/shell-mcp-server/internal/dsl"
	"github.com/bherrmann7/shell-mcp-server/internal/http/health"
	"github.com/bherrmann7/shell-mcp-server/internal/timeutil"
)

// Default HTTP server timeouts. Writes are unbounded unless configured,
// because a tool call lasts as long as its command.
const (
	DefaultReadTimeout     = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// App controls the HTTP server lifecycle.
type App struct {
	baseCtx         context.Context
	server          *http.Server
	health          *health.Handler
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// New mounts the MCP handler on the configured path next to the health endpoints.
// A zero shutdownTimeout falls back to the server config, then DefaultShutdownTimeout.
func New(baseCtx context.Context, serverCfg dsl.ServerConfig, handler http.Handler, logger *slog.Logger, shutdownTimeout time.Duration) (*App, error) {
	if handler == nil {
		return nil, fmt.Errorf("handler is nil")
	}
	if baseCtx == nil {
		return nil, fmt.Errorf("base context is nil")
	}

	healthHandler := health.New()
	mux := http.NewServeMux()
	mux.Handle(serverCfg.HTTP.Path, handler)
	mux.HandleFunc("/healthz", healthHandler.Healthz)
	mux.HandleFunc("/readyz", healthHandler.Readyz)

	srv := &http.Server{
		Addr:         serverCfg.HTTP.Listen,
		Handler:      mux,
		ReadTimeout:  timeutil.ParseDurationOrDefault(serverCfg.HTTP.ReadTimeout, DefaultReadTimeout),
		WriteTimeout: timeutil.ParseDurationOrDefault(serverCfg.HTTP.WriteTimeout, 0),
		IdleTimeout:  timeutil.ParseDurationOrDefault(serverCfg.HTTP.IdleTimeout, DefaultIdleTimeout),
	}

	if shutdownTimeout == 0 {
		shutdownTimeout = timeutil.ParseDurationOrDefault(serverCfg.ShutdownTimeout, DefaultShutdownTimeout)
	}

	return &App{
		baseCtx:         baseCtx,
		server:          srv,
		health:          healthHandler,
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run starts the HTTP server and blocks until ctx is done or the server fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.health.SetReady()
		if a.logger != nil {
			a.logger.Info("http server started", "addr", a.server.Addr)
		}
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		if a.logger != nil {
			a.logger.Info("shutdown requested")
		}
		return a.shutdown()
	case err := <-errCh:
		a.health.SetNotReady()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		if a.logger != nil {
			a.logger.Error("http server error", "error", err)
		}
		return fmt.Errorf("http server: %w", err)
	}
}

func (a *App) shutdown() error {
	a.health.SetNotReady()
	ctx, cancel := context.WithTimeout(context.WithoutCancel(a.baseCtx), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
