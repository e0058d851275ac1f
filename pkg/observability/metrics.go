package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by the engine hooks.
type Metrics struct {
	requested *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	committed *prometheus.CounterVec
	cancelled prometheus.Counter
	decision  *prometheus.HistogramVec
	awaiting  prometheus.Gauge

	mu      sync.Mutex
	pending map[pendingKey]time.Time // time of the last allowed request
}

type pendingKey struct {
	blockID string
	to      domain.LaneID
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requested: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swimlane_moves_requested_total",
				Help: "Total number of allowed move requests",
			},
			[]string{"from", "to"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swimlane_moves_rejected_total",
				Help: "Total number of move requests rejected by the transition rules",
			},
			[]string{"from", "to"},
		),
		committed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swimlane_moves_committed_total",
				Help: "Total number of committed moves",
			},
			[]string{"from", "to"},
		),
		cancelled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "swimlane_moves_cancelled_total",
				Help: "Total number of pending moves discarded by the user",
			},
		),
		decision: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "swimlane_move_decision_seconds",
				Help:    "Time between an allowed move request and its commit or cancellation",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 300},
			},
			[]string{"result"},
		),
		awaiting: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "swimlane_moves_pending",
				Help: "Allowed move requests still waiting for a commit or cancellation",
			},
		),
		pending: make(map[pendingKey]time.Time),
	}

	for _, c := range []prometheus.Collector{m.requested, m.rejected, m.committed, m.cancelled, m.decision, m.awaiting} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMoveRequested: func(_ context.Context, e *domain.MoveEvent) {
			m.requested.WithLabelValues(string(e.From), string(e.To)).Inc()
			m.mu.Lock()
			m.pending[pendingKey{e.BlockID, e.To}] = e.Timestamp
			m.awaiting.Set(float64(len(m.pending)))
			m.mu.Unlock()
		},
		OnMoveRejected: func(_ context.Context, e *domain.MoveEvent) {
			m.rejected.WithLabelValues(string(e.From), string(e.To)).Inc()
		},
		OnMoveCommitted: func(_ context.Context, e *domain.MoveEvent) {
			m.committed.WithLabelValues(string(e.From), string(e.To)).Inc()
			m.observeDecision(e, "committed")
		},
		OnMoveCancelled: func(_ context.Context, e *domain.MoveEvent) {
			m.cancelled.Inc()
			m.observeDecision(e, "cancelled")
		},
	}
}

func (m *Metrics) observeDecision(e *domain.MoveEvent, result string) {
	m.mu.Lock()
	key := pendingKey{e.BlockID, e.To}
	start, ok := m.pending[key]
	delete(m.pending, key)
	m.awaiting.Set(float64(len(m.pending)))
	m.mu.Unlock()

	if ok && !e.Timestamp.Before(start) {
		m.decision.WithLabelValues(result).Observe(e.Timestamp.Sub(start).Seconds())
	}
}
