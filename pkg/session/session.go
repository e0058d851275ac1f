package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/swimlane/pkg/domain"
)

// NoticeNotAllowed is the banner shown for a rejected move.
const NoticeNotAllowed = "This transition is not allowed"

// Engine is the subset of the transition engine a session drives.
type Engine interface {
	RequestMove(ctx context.Context, blockID string, to domain.LaneID) (domain.Outcome, error)
	CommitMove(ctx context.Context, blockID string, to domain.LaneID, values map[string]string) (domain.Block, error)
}

// CancelNotifier is implemented by engines that report discarded moves to their hooks.
type CancelNotifier interface {
	NotifyCancelled(ctx context.Context, pending domain.PendingTransition)
}

// Session holds at most one pending transition. Safe for concurrent use.
type Session struct {
	id     string
	engine Engine

	mu       sync.Mutex
	state    domain.SessionState
	lastSeen time.Time
}

// New creates an idle session.
func New(id string, engine Engine) *Session {
	return &Session{
		id:       id,
		engine:   engine,
		state:    domain.Idle(),
		lastSeen: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns a copy of the current state. Reading the state counts as
// activity, so a polling client keeps its session alive.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.snapshot()
}

func (s *Session) snapshot() domain.SessionState {
	st := s.state
	if st.Candidate != nil {
		c := *st.Candidate
		c.Fields = append([]domain.TransitionField(nil), c.Fields...)
		st.Candidate = &c
	}
	return st
}

// Pending returns the candidate transition, if any.
func (s *Session) Pending() (domain.PendingTransition, bool) {
	st := s.State()
	if st.Candidate == nil {
		return domain.PendingTransition{}, false
	}
	return *st.Candidate, true
}

// Notice returns the current error banner text, empty if none.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.state.Notice
}

// DismissNotice clears the error banner.
func (s *Session) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	s.state.Notice = ""
}

// RequestMove asks the engine to validate a move and updates the session:
// Pending replaces any previous candidate (reporting the replaced one as
// cancelled), Rejected raises the notice, and NoOp / NotFound leave the
// session untouched.
func (s *Session) RequestMove(ctx context.Context, blockID string, to domain.LaneID) (domain.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	out, err := s.engine.RequestMove(ctx, blockID, to)
	if err != nil {
		return out, err
	}

	switch out.Kind {
	case domain.OutcomePending:
		candidate, _ := out.Pending()
		if prev := s.state.Candidate; prev != nil && (prev.BlockID != candidate.BlockID || prev.To != candidate.To) {
			s.notifyCancelled(ctx, *prev)
		}
		s.state = domain.Pending(candidate)
	case domain.OutcomeRejected:
		s.state.Notice = NoticeNotAllowed
	}
	return out, nil
}

// Confirm commits the pending candidate with the user's field values.
// The session returns to Idle once the engine has settled the move; only an
// infrastructure failure (context, lock, store) keeps the candidate for a retry.
func (s *Session) Confirm(ctx context.Context, values map[string]string) (domain.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	if s.state.Candidate == nil {
		return domain.Block{}, domain.ErrNoPendingTransition
	}
	candidate := *s.state.Candidate

	block, err := s.engine.CommitMove(ctx, candidate.BlockID, candidate.To, values)
	if err != nil {
		if !settles(err) {
			return domain.Block{}, fmt.Errorf("commit %s: %w", candidate.BlockID, err)
		}
		s.state = domain.Idle()
		if errors.Is(err, domain.ErrTransitionRejected) {
			s.state.Notice = NoticeNotAllowed
		}
		return domain.Block{}, err
	}

	s.state = domain.Idle()
	return block, nil
}

// settles reports whether a commit error ends the pending transition.
func settles(err error) bool {
	return errors.Is(err, domain.ErrTransitionRejected) ||
		errors.Is(err, domain.ErrNoOpMove) ||
		errors.Is(err, domain.ErrBlockNotFound)
}

// Cancel discards the pending candidate. It is idempotent and never touches blocks.
func (s *Session) Cancel(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	if s.state.Candidate == nil {
		return
	}
	candidate := *s.state.Candidate
	s.state = domain.Idle()
	s.notifyCancelled(ctx, candidate)
}

func (s *Session) notifyCancelled(ctx context.Context, candidate domain.PendingTransition) {
	if n, ok := s.engine.(CancelNotifier); ok {
		n.NotifyCancelled(ctx, candidate)
	}
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
