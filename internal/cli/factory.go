// Package cli wires configuration, logging and adapters into runnable
// swimlane commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/swimlane"
	"github.com/aretw0/swimlane/internal/config"
	httpAdapter "github.com/aretw0/swimlane/pkg/adapters/http"
	redisAdapter "github.com/aretw0/swimlane/pkg/adapters/redis"
	"github.com/aretw0/swimlane/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	backend "github.com/redis/go-redis/v9"
)

// Runtime is a fully wired board plus the infrastructure it depends on.
type Runtime struct {
	Board    *swimlane.Board
	Metrics  *observability.Metrics
	Registry *prometheus.Registry
	Streams  *httpAdapter.StreamManager

	logger *slog.Logger
	redis  *backend.Client
}

// NewRuntime builds a Board following the configuration:
// the definition file (or the default board), debug hooks, Prometheus
// collectors, the SSE stream and, when an address is set, the Redis commit lock.
func NewRuntime(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{logger: logger}
	opts := []swimlane.Option{swimlane.WithLogger(logger)}

	// 1. Board definition
	if cfg.Board.Definition != "" {
		opts = append(opts, swimlane.WithDefinitionFile(cfg.Board.Definition))
	}
	if !cfg.Board.Seed {
		opts = append(opts, swimlane.WithSeed(false))
	}

	// 2. Logger & Hooks
	if logger.Enabled(ctx, slog.LevelDebug) {
		opts = append(opts, swimlane.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}

	// 3. Metrics
	if cfg.Metrics.Enabled {
		rt.Registry = prometheus.NewRegistry()
		rt.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m, err := observability.NewMetrics(rt.Registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		rt.Metrics = m
		opts = append(opts, swimlane.WithLifecycleHooks(m.Hooks()))
	}

	// 4. Event stream, fed by every commit the engine makes
	rt.Streams = httpAdapter.NewStreamManager(logger)
	opts = append(opts, swimlane.WithLifecycleHooks(rt.Streams.Hooks()))

	// 5. Distributed commit lock
	if cfg.Redis.Addr != "" {
		client := redisAdapter.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisAdapter.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		rt.redis = client
		locker := redisAdapter.NewLocker(client, cfg.Redis.Prefix)
		opts = append(opts, swimlane.WithLocker(locker, cfg.Redis.LockTTL))
		logger.Info("Using Redis commit lock", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
	}

	board, err := swimlane.New(opts...)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("error initializing board: %w", err)
	}
	rt.Board = board
	return rt, nil
}

// MetricsHandler exposes the runtime's registry, or nil when metrics are off.
func (rt *Runtime) MetricsHandler() http.Handler {
	if rt.Registry == nil {
		return nil
	}
	return promhttp.HandlerFor(rt.Registry, promhttp.HandlerOpts{})
}

// Close releases the Redis connection, if any.
func (rt *Runtime) Close() error {
	if rt.redis == nil {
		return nil
	}
	err := rt.redis.Close()
	rt.redis = nil
	if err != nil && !errors.Is(err, backend.ErrClosed) {
		return err
	}
	return nil
}
