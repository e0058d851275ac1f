package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/swimlane/internal/logging"
	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/google/uuid"
)

// Manager keeps one Session per connected client.
type Manager struct {
	engine Engine

	mu       sync.RWMutex
	sessions map[string]*Session

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager driving the given engine.
func NewManager(engine Engine, opts ...Option) *Manager {
	m := &Manager{
		engine:   engine,
		sessions: make(map[string]*Session),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open creates a new idle session with a random ID.
func (m *Manager) Open() *Session {
	s := New(uuid.NewString(), m.engine)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.logger.Debug("session opened", "session_id", s.ID())
	return s
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Close cancels any pending move and forgets the session.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	s.Cancel(ctx)
	m.logger.Debug("session closed", "session_id", id)
	return nil
}

// List returns the IDs of open sessions, sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Prune closes sessions idle for longer than maxIdle and returns how many were closed.
func (m *Manager) Prune(ctx context.Context, maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.RLock()
	var stale []string
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	closed := 0
	for _, id := range stale {
		if err := m.Close(ctx, id); err == nil {
			closed++
		}
	}
	if closed > 0 {
		m.logger.Info("pruned idle sessions", "count", closed)
	}
	return closed
}
