package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/swimlane/pkg/domain"
)

// LoggingHooks logs every lifecycle event on logger.
// Commits are logged at info level with the collected field values.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMoveRequested: func(ctx context.Context, e *domain.MoveEvent) {
			logger.DebugContext(ctx, string(e.Type), "block_id", e.BlockID, "from", e.From, "to", e.To)
		},
		OnMoveRejected: func(ctx context.Context, e *domain.MoveEvent) {
			logger.InfoContext(ctx, string(e.Type), "block_id", e.BlockID, "from", e.From, "to", e.To)
		},
		OnMoveCommitted: func(ctx context.Context, e *domain.MoveEvent) {
			attrs := []any{"block_id", e.BlockID, "from", e.From, "to", e.To}
			if e.Record != nil && len(e.Record.Data) > 0 {
				attrs = append(attrs, "data", e.Record.Data)
			}
			logger.InfoContext(ctx, string(e.Type), attrs...)
		},
		OnMoveCancelled: func(ctx context.Context, e *domain.MoveEvent) {
			logger.DebugContext(ctx, string(e.Type), "block_id", e.BlockID, "from", e.From, "to", e.To)
		},
	}
}
