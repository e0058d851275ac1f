package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventMoveRequested EventType = "move_requested"
	EventMoveRejected  EventType = "move_rejected"
	EventMoveCommitted EventType = "move_committed"
	EventMoveCancelled EventType = "move_cancelled"
)

// MoveEvent describes one step of a block's trip through the engine.
type MoveEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      EventType         `json:"type"`
	BlockID   string            `json:"block_id"`
	From      LaneID            `json:"from,omitempty"`
	To        LaneID            `json:"to"`
	Record    *TransitionRecord `json:"record,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil hooks are skipped.
type LifecycleHooks struct {
	OnMoveRequested func(context.Context, *MoveEvent)
	OnMoveRejected  func(context.Context, *MoveEvent)
	OnMoveCommitted func(context.Context, *MoveEvent)
	OnMoveCancelled func(context.Context, *MoveEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnMoveRequested: chain(h.OnMoveRequested, other.OnMoveRequested),
		OnMoveRejected:  chain(h.OnMoveRejected, other.OnMoveRejected),
		OnMoveCommitted: chain(h.OnMoveCommitted, other.OnMoveCommitted),
		OnMoveCancelled: chain(h.OnMoveCancelled, other.OnMoveCancelled),
	}
}

func chain(a, b func(context.Context, *MoveEvent)) func(context.Context, *MoveEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *MoveEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
