package ports

import (
	"context"

	"github.com/aretw0/swimlane/pkg/domain"
)

// Engine is the surface presentation adapters drive.
// Expected conditions of RequestMove are reported in the Outcome, not as errors.
type Engine interface {
	// Lanes returns the board lanes in display order.
	Lanes() []domain.Lane

	// Blocks returns the blocks whose content contains filter (case-insensitive).
	Blocks(ctx context.Context, filter string) ([]domain.Block, error)

	// Block returns a single block.
	Block(ctx context.Context, id string) (domain.Block, error)

	// RequestMove validates a move without mutating anything.
	RequestMove(ctx context.Context, blockID string, to domain.LaneID) (domain.Outcome, error)

	// CommitMove moves the block and appends a history record.
	CommitMove(ctx context.Context, blockID string, to domain.LaneID, values map[string]string) (domain.Block, error)

	// History returns the transition records of a block, oldest first.
	History(ctx context.Context, blockID string) ([]domain.TransitionRecord, error)
}
