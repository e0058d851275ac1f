package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/swimlane/pkg/adapters/http"
	"github.com/aretw0/swimlane/pkg/adapters/mcp"
)

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Addr            string
	SessionTTL      time.Duration
	ShutdownTimeout time.Duration
}

// NewHTTPHandler mounts the board API, the SSE stream and, when enabled, /metrics.
func NewHTTPHandler(rt *Runtime, logger *slog.Logger) http.Handler {
	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithStreams(rt.Streams),
	}
	if h := rt.MetricsHandler(); h != nil {
		opts = append(opts, httpAdapter.WithMetricsHandler(h))
	}
	return httpAdapter.NewHandler(rt.Board, opts...)
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, rt *Runtime, opts ServeOptions, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           NewHTTPHandler(rt, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting Swimlane Server", "addr", srv.Addr, "board", rt.Board.Name)
		serverErrors <- srv.ListenAndServe()
	}()

	if opts.SessionTTL > 0 {
		go pruneSessions(ctx, rt, opts.SessionTTL)
	}

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Start shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
	defer cancel()

	// Asking listener to shut down and shed load.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown did not complete", "timeout", opts.ShutdownTimeout, "err", err)
		if err := srv.Close(); err != nil {
			return fmt.Errorf("error killing server: %w", err)
		}
	}
	logger.Info("Swimlane Server stopped gracefully")
	return nil
}

// pruneSessions closes idle API sessions, checking a few times per TTL.
func pruneSessions(ctx context.Context, rt *Runtime, ttl time.Duration) {
	ticker := time.NewTicker(max(ttl/4, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rt.Board.Sessions().Prune(ctx, ttl)
		}
	}
}

// ServeMCP exposes the board to MCP clients over stdio or SSE.
func ServeMCP(ctx context.Context, rt *Runtime, transport string, port int, logger *slog.Logger) error {
	srv := mcp.NewServer(rt.Board, logger)

	switch transport {
	case "stdio":
		logger.Info("Starting Swimlane MCP Server (Stdio)...")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting Swimlane MCP Server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	}
}
