package ports

import (
	"context"

	"github.com/aretw0/swimlane/pkg/domain"
)

// Mutation is the only change a committed transition makes to a block:
// a new lane plus one record appended to its history.
type Mutation struct {
	BlockID string
	Lane    domain.LaneID
	Record  domain.TransitionRecord
}

// BlockStore defines the interface for holding board blocks.
// Implementations must copy blocks in and out so callers never alias history.
type BlockStore interface {
	// All returns every block in insertion order.
	All(ctx context.Context) ([]domain.Block, error)

	// Get retrieves a block by ID.
	// Returns domain.ErrBlockNotFound if the block does not exist.
	Get(ctx context.Context, id string) (domain.Block, error)

	// Insert adds a new block.
	// Returns domain.ErrBlockExists if the ID is already taken.
	Insert(ctx context.Context, block domain.Block) error

	// Apply sets the block lane and appends the record in one step,
	// returning the updated block. No intermediate state is observable.
	Apply(ctx context.Context, m Mutation) (domain.Block, error)
}
