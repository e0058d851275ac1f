package swimlane

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/swimlane/internal/logging"
	"github.com/aretw0/swimlane/internal/runtime"
	"github.com/aretw0/swimlane/pkg/adapters/memory"
	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/aretw0/swimlane/pkg/ports"
	"github.com/aretw0/swimlane/pkg/registry"
	"github.com/aretw0/swimlane/pkg/session"
)

// Board is the high-level entry point for the Swimlane library.
// It wraps the internal runtime and a default UI session, and provides a
// simplified API for single-user consumers.
type Board struct {
	engine   *runtime.Engine
	registry *registry.Registry
	store    ports.BlockStore
	sessions *session.Manager
	session  *session.Session

	hooks          domain.LifecycleHooks
	logger         *slog.Logger
	locker         ports.DistributedLocker
	lockTTL        time.Duration
	clock          func() time.Time
	seed           *bool
	definitionFile string

	Name string
}

// Option defines a functional option for configuring the Board.
type Option func(*Board)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Board) {
		b.hooks = b.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the board.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Board) {
		b.logger = logger
	}
}

// WithRegistry injects a prebuilt lane registry, bypassing the default board.
func WithRegistry(reg *registry.Registry) Option {
	return func(b *Board) {
		b.registry = reg
	}
}

// WithDefinitionFile loads the lane registry from a YAML board definition.
func WithDefinitionFile(path string) Option {
	return func(b *Board) {
		b.definitionFile = path
	}
}

// WithStore injects a custom BlockStore (default: in-memory).
func WithStore(store ports.BlockStore) Option {
	return func(b *Board) {
		b.store = store
	}
}

// WithSeed controls whether the reference blocks are inserted on start.
// By default they are, but only for the default board.
func WithSeed(enabled bool) Option {
	return func(b *Board) {
		b.seed = &enabled
	}
}

// WithLocker serializes commits across processes sharing a store.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(b *Board) {
		b.locker = locker
		b.lockTTL = ttl
	}
}

// WithClock overrides the timestamp source of history records.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.clock = now
	}
}

// New initializes a new Board.
func New(opts ...Option) (*Board, error) {
	b := &Board{}
	for _, opt := range opts {
		opt(b)
	}

	defaultBoard := false
	switch {
	case b.registry != nil:
	case b.definitionFile != "":
		reg, err := registry.LoadFile(b.definitionFile)
		if err != nil {
			return nil, err
		}
		b.registry = reg
	default:
		b.registry = registry.Default()
		defaultBoard = true
	}
	b.Name = b.registry.Name()

	if b.store == nil {
		b.store = memory.NewStore()
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	if b.Name != "" {
		b.logger = b.logger.With("board", b.Name)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(b.hooks),
		runtime.WithLogger(b.logger),
		runtime.WithClock(b.clock),
	}
	if b.locker != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithLocker(b.locker, b.lockTTL))
	}
	b.engine = runtime.NewEngine(b.registry, b.store, runtimeOpts...)

	seed := defaultBoard
	if b.seed != nil {
		seed = *b.seed
	}
	if seed {
		if err := b.seedBlocks(context.Background()); err != nil {
			return nil, err
		}
	}

	b.sessions = session.NewManager(b.engine, session.WithLogger(b.logger))
	b.session = session.New("default", b.engine)
	return b, nil
}

// seedBlocks inserts the reference blocks. Blocks already present are kept,
// so several boards may share one store.
func (b *Board) seedBlocks(ctx context.Context) error {
	for _, block := range registry.SeedBlocks() {
		if !b.registry.HasLane(block.Lane) {
			return fmt.Errorf("%w: seed block %s sits on unknown lane '%s'", domain.ErrInvalidDefinition, block.ID, block.Lane)
		}
		if err := b.store.Insert(ctx, block); err != nil && !errors.Is(err, domain.ErrBlockExists) {
			return fmt.Errorf("failed to seed block %s: %w", block.ID, err)
		}
	}
	return nil
}

// ListLanes returns the board lanes in display order.
func (b *Board) ListLanes() []domain.Lane {
	return b.engine.Lanes()
}

// ListBlocks returns blocks whose content contains filter (case-insensitive).
// An empty filter returns every block.
func (b *Board) ListBlocks(ctx context.Context, filter string) ([]domain.Block, error) {
	return b.engine.Blocks(ctx, filter)
}

// Block returns a single block.
func (b *Board) Block(ctx context.Context, id string) (domain.Block, error) {
	return b.engine.Block(ctx, id)
}

// CreateBlock adds a block to the given lane (empty lane: the first lane).
func (b *Board) CreateBlock(ctx context.Context, content string, lane domain.LaneID) (domain.Block, error) {
	return b.engine.CreateBlock(ctx, content, lane)
}

// RequestMove validates a move on the board's default session.
// An allowed move becomes the session's pending transition.
func (b *Board) RequestMove(ctx context.Context, blockID string, to domain.LaneID) (domain.Outcome, error) {
	return b.session.RequestMove(ctx, blockID, to)
}

// CommitMove moves a block and records the transition.
// When the move matches the default session's pending transition, the
// session is settled as well.
func (b *Board) CommitMove(ctx context.Context, blockID string, to domain.LaneID, values map[string]string) (domain.Block, error) {
	if p, ok := b.session.Pending(); ok && p.BlockID == blockID && p.To == to {
		return b.session.Confirm(ctx, values)
	}
	return b.engine.CommitMove(ctx, blockID, to, values)
}

// CancelMove discards the default session's pending transition. Idempotent.
func (b *Board) CancelMove(ctx context.Context) {
	b.session.Cancel(ctx)
}

// Pending returns the default session's pending transition, if any.
func (b *Board) Pending() (domain.PendingTransition, bool) {
	return b.session.Pending()
}

// Notice returns the default session's error banner text.
func (b *Board) Notice() string {
	return b.session.Notice()
}

// DismissNotice clears the default session's error banner.
func (b *Board) DismissNotice() {
	b.session.DismissNotice()
}

// GetHistory returns the transition records of a block, oldest first.
func (b *Board) GetHistory(ctx context.Context, blockID string) ([]domain.TransitionRecord, error) {
	return b.engine.History(ctx, blockID)
}

// NewSession opens an independent UI session over the same engine.
func (b *Board) NewSession() *session.Session {
	return b.sessions.Open()
}

// Sessions returns the manager of the sessions opened with NewSession.
func (b *Board) Sessions() *session.Manager {
	return b.sessions
}

// Registry returns the lane registry.
func (b *Board) Registry() *registry.Registry {
	return b.registry
}

// Engine returns the underlying transition engine.
func (b *Board) Engine() ports.Engine {
	return b.engine
}

// Logger returns the board's logger.
func (b *Board) Logger() *slog.Logger {
	return b.logger
}
