// Package server exposes the experiment designer over HTTP with gin.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-taguchi/pkg/orchestrator"
)

const defaultMaxBodyBytes = 1 << 20

// Options configures the router.
type Options struct {
	Orchestrator *orchestrator.Orchestrator
	Logger       *slog.Logger
	// MaxBodyBytes caps definition uploads. Zero means 1 MiB.
	MaxBodyBytes int64
	// DefaultFormat names the renderer used by /api/generate when the request
	// has no ?format=.
	DefaultFormat string
}

// SetupRouter wires the API routes onto a fresh gin engine.
func SetupRouter(opts Options) *gin.Engine {
	if opts.Orchestrator == nil {
		opts.Orchestrator = orchestrator.New()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(opts.Logger), cors())

	h := newHandler(opts)

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET("/arrays", h.ListArrays)
		api.POST("/validate", h.Validate)
		api.POST("/suggest", h.Suggest)
		api.POST("/generate", h.Generate)
	}

	return r
}

// ListenAndServe runs handler on addr until ctx is cancelled, then shuts the
// server down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("server shutting down", "addr", addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
