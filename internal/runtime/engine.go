// Package runtime implements the transition engine: it validates moves
// against the lane registry, and commits them to the block store together
// with a history record.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/swimlane/internal/logging"
	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/aretw0/swimlane/pkg/ports"
	"github.com/aretw0/swimlane/pkg/registry"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a distributed block lock is held.
const DefaultLockTTL = 30 * time.Second

// Engine is the core transition state machine.
// Each block is an independent FSM whose state is its lane.
type Engine struct {
	registry *registry.Registry
	store    ports.BlockStore
	locks    *blockLocks
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLocker enables cross-replica serialization of commits.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) EngineOption {
	return func(e *Engine) {
		e.locks.locker = locker
		if ttl > 0 {
			e.locks.ttl = ttl
		}
	}
}

// WithClock overrides the timestamp source of history records.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides how new block IDs are minted.
func WithIDGenerator(gen func() string) EngineOption {
	return func(e *Engine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// NewEngine creates a new engine over a registry and a block store.
func NewEngine(reg *registry.Registry, store ports.BlockStore, opts ...EngineOption) *Engine {
	e := &Engine{
		registry: reg,
		store:    store,
		locks:    newBlockLocks(),
		logger:   logging.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.locks.logger = e.logger
	return e
}

// Registry returns the lane registry the engine validates against.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Lanes returns the board lanes in display order.
func (e *Engine) Lanes() []domain.Lane {
	return e.registry.Lanes()
}

// Blocks returns the blocks whose content contains filter, ignoring case.
// Filtering is purely a read; it never touches lanes or history.
func (e *Engine) Blocks(ctx context.Context, filter string) ([]domain.Block, error) {
	all, err := e.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	return domain.FilterBlocks(all, filter), nil
}

// Block returns a single block.
func (e *Engine) Block(ctx context.Context, id string) (domain.Block, error) {
	b, err := e.store.Get(ctx, id)
	if err != nil {
		return domain.Block{}, fmt.Errorf("block %s: %w", id, err)
	}
	return b, nil
}

// History returns the transition records of a block, oldest first.
func (e *Engine) History(ctx context.Context, blockID string) ([]domain.TransitionRecord, error) {
	b, err := e.Block(ctx, blockID)
	if err != nil {
		return nil, err
	}
	return b.History, nil
}

// RequestMove validates moving blockID to the destination lane.
// It never mutates the block: an allowed move comes back as a Pending outcome
// carrying the fields to collect before CommitMove.
func (e *Engine) RequestMove(ctx context.Context, blockID string, to domain.LaneID) (domain.Outcome, error) {
	out := domain.Outcome{BlockID: blockID, To: to}

	block, err := e.store.Get(ctx, blockID)
	if err != nil {
		if errors.Is(err, domain.ErrBlockNotFound) {
			e.logger.Warn("move requested for unknown block", "block_id", blockID, "to", to)
			out.Kind = domain.OutcomeNotFound
			return out, nil
		}
		return out, fmt.Errorf("failed to load block %s: %w", blockID, err)
	}
	out.From = block.Lane

	// Dropping a block on its own lane is not an event.
	if block.Lane == to {
		out.Kind = domain.OutcomeNoOp
		return out, nil
	}

	event := &domain.MoveEvent{Timestamp: e.now(), BlockID: blockID, From: block.Lane, To: to}

	if !e.registry.HasLane(to) || !e.registry.IsTransitionAllowed(block.Lane, to) {
		out.Kind = domain.OutcomeRejected
		out.Reason = domain.ReasonNotAllowed
		e.logger.Info("move rejected", "block_id", blockID, "from", block.Lane, "to", to)
		event.Type = domain.EventMoveRejected
		e.emit(ctx, e.hooks.OnMoveRejected, event)
		return out, nil
	}

	out.Kind = domain.OutcomePending
	out.Fields = e.registry.FieldsFor(block.Lane, to)
	e.logger.Debug("move pending", "block_id", blockID, "from", block.Lane, "to", to, "fields", len(out.Fields))
	event.Type = domain.EventMoveRequested
	e.emit(ctx, e.hooks.OnMoveRequested, event)
	return out, nil
}

// CommitMove moves the block to the destination lane and appends a history record.
// The source lane is re-derived from the block at commit time, under the block lock,
// so a record never claims a lane the block had already left.
func (e *Engine) CommitMove(ctx context.Context, blockID string, to domain.LaneID, values map[string]string) (domain.Block, error) {
	var updated domain.Block
	var record domain.TransitionRecord

	err := e.locks.WithLock(ctx, blockID, func(ctx context.Context) error {
		block, err := e.store.Get(ctx, blockID)
		if err != nil {
			return fmt.Errorf("block %s: %w", blockID, err)
		}

		from := block.Lane
		if from == to {
			return fmt.Errorf("block %s: %w '%s'", blockID, domain.ErrNoOpMove, to)
		}
		if !e.registry.IsTransitionAllowed(from, to) {
			return fmt.Errorf("block %s: %w: %s -> %s", blockID, domain.ErrTransitionRejected, from, to)
		}

		record = domain.TransitionRecord{
			From:      from,
			To:        to,
			Data:      e.registry.FieldValues(from, to, values),
			Timestamp: e.now(),
		}

		updated, err = e.store.Apply(ctx, ports.Mutation{BlockID: blockID, Lane: to, Record: record})
		if err != nil {
			return fmt.Errorf("failed to apply transition to %s: %w", blockID, err)
		}
		return nil
	})
	if err != nil {
		return domain.Block{}, err
	}

	e.logger.Info("move committed", "block_id", blockID, "from", record.From, "to", record.To, "history_len", len(updated.History))
	e.emit(ctx, e.hooks.OnMoveCommitted, &domain.MoveEvent{
		Timestamp: record.Timestamp,
		Type:      domain.EventMoveCommitted,
		BlockID:   blockID,
		From:      record.From,
		To:        record.To,
		Record:    &record,
	})
	return updated, nil
}

// NotifyCancelled reports a discarded pending transition to the hooks.
// The engine holds no pending state itself; sessions do.
func (e *Engine) NotifyCancelled(ctx context.Context, pending domain.PendingTransition) {
	e.emit(ctx, e.hooks.OnMoveCancelled, &domain.MoveEvent{
		Timestamp: e.now(),
		Type:      domain.EventMoveCancelled,
		BlockID:   pending.BlockID,
		From:      pending.From,
		To:        pending.To,
	})
}

// CreateBlock adds a new block to the board. An empty lane means the first lane.
func (e *Engine) CreateBlock(ctx context.Context, content string, lane domain.LaneID) (domain.Block, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Block{}, fmt.Errorf("%w: content is required", domain.ErrInvalidBlock)
	}
	if lane == "" {
		lane = e.registry.Lanes()[0].ID
	}
	if !e.registry.HasLane(lane) {
		return domain.Block{}, fmt.Errorf("%w: unknown lane '%s'", domain.ErrInvalidBlock, lane)
	}

	block := domain.NewBlock(e.newID(), content, lane)
	if err := e.store.Insert(ctx, block); err != nil {
		return domain.Block{}, fmt.Errorf("failed to insert block: %w", err)
	}
	e.logger.Info("block created", "block_id", block.ID, "lane", lane)
	return block, nil
}

func (e *Engine) emit(ctx context.Context, hook func(context.Context, *domain.MoveEvent), event *domain.MoveEvent) {
	if hook != nil {
		hook(ctx, event)
	}
}
