package swimlane_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/swimlane"
	"github.com/aretw0/swimlane/pkg/adapters/memory"
	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/aretw0/swimlane/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newBoard(t *testing.T, opts ...swimlane.Option) *swimlane.Board {
	t.Helper()
	opts = append([]swimlane.Option{swimlane.WithClock(func() time.Time { return fixedNow })}, opts...)
	board, err := swimlane.New(opts...)
	require.NoError(t, err)
	return board
}

func TestNew_DefaultBoard(t *testing.T) {
	board := newBoard(t)

	assert.Equal(t, "default", board.Name)
	lanes := board.ListLanes()
	require.Len(t, lanes, 4)
	assert.Equal(t, []domain.LaneID{domain.LaneTodo, domain.LaneInProgress, domain.LaneReview, domain.LaneDone},
		[]domain.LaneID{lanes[0].ID, lanes[1].ID, lanes[2].ID, lanes[3].ID})

	blocks, err := board.ListBlocks(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, "block-1", blocks[0].ID)
	assert.Equal(t, domain.LaneDone, blocks[2].Lane)
}

func TestScenarioA_MoveWithMetadata(t *testing.T) {
	board := newBoard(t)
	ctx := context.Background()

	out, err := board.RequestMove(ctx, "block-1", domain.LaneInProgress)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomePending, out.Kind)
	require.Len(t, out.Fields, 1)
	assert.Equal(t, "assignee", out.Fields[0].Name)

	block, err := board.CommitMove(ctx, "block-1", domain.LaneInProgress, map[string]string{"assignee": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, domain.LaneInProgress, block.Lane)
	assert.Equal(t, []domain.TransitionRecord{{
		From:      domain.LaneTodo,
		To:        domain.LaneInProgress,
		Data:      map[string]string{"assignee": "Alice"},
		Timestamp: fixedNow,
	}}, block.History)

	_, pending := board.Pending()
	assert.False(t, pending)
}

func TestScenarioB_RejectedMove(t *testing.T) {
	board := newBoard(t)
	ctx := context.Background()

	out, err := board.RequestMove(ctx, "block-1", domain.LaneReview)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, out.Kind)
	assert.Equal(t, domain.ReasonNotAllowed, out.Reason)
	assert.NotEmpty(t, board.Notice())

	block, err := board.Block(ctx, "block-1")
	require.NoError(t, err)
	assert.Equal(t, domain.LaneTodo, block.Lane)
	assert.Empty(t, block.History)

	board.DismissNotice()
	assert.Empty(t, board.Notice())
}

func TestScenarioC_EmptyMetadataIsAccepted(t *testing.T) {
	board := newBoard(t)
	ctx := context.Background()

	out, err := board.RequestMove(ctx, "block-3", domain.LaneTodo)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomePending, out.Kind)
	assert.Equal(t, "reason", out.Fields[0].Name)

	block, err := board.CommitMove(ctx, "block-3", domain.LaneTodo, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.LaneTodo, block.Lane)
	require.Len(t, block.History, 1)
	assert.Empty(t, block.History[0].Data)
	assert.NotNil(t, block.History[0].Data)
}

func TestScenarioD_FilterIsReadOnly(t *testing.T) {
	board := newBoard(t)
	ctx := context.Background()

	before, err := board.ListBlocks(ctx, "")
	require.NoError(t, err)

	matched, err := board.ListBlocks(ctx, "lock")
	require.NoError(t, err)
	assert.Len(t, matched, 3)

	none, err := board.ListBlocks(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)

	after, err := board.ListBlocks(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCancelMove_Idempotent(t *testing.T) {
	board := newBoard(t)
	ctx := context.Background()

	_, err := board.RequestMove(ctx, "block-2", domain.LaneReview)
	require.NoError(t, err)
	_, pending := board.Pending()
	require.True(t, pending)

	board.CancelMove(ctx)
	board.CancelMove(ctx)

	_, pending = board.Pending()
	assert.False(t, pending)
	block, err := board.Block(ctx, "block-2")
	require.NoError(t, err)
	assert.Equal(t, domain.LaneInProgress, block.Lane)
	assert.Empty(t, block.History)
}

func TestCommitMove_WithoutRequest(t *testing.T) {
	board := newBoard(t)
	ctx := context.Background()

	block, err := board.CommitMove(ctx, "block-2", domain.LaneReview, map[string]string{"reviewer": "Eve"})
	require.NoError(t, err)
	assert.Equal(t, domain.LaneReview, block.Lane)

	_, err = board.CommitMove(ctx, "block-2", domain.LaneTodo, nil)
	assert.ErrorIs(t, err, domain.ErrTransitionRejected)

	history, err := board.GetHistory(ctx, "block-2")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestCommitMove_OtherBlockKeepsSessionPending(t *testing.T) {
	board := newBoard(t)
	ctx := context.Background()

	_, err := board.RequestMove(ctx, "block-1", domain.LaneInProgress)
	require.NoError(t, err)

	_, err = board.CommitMove(ctx, "block-3", domain.LaneTodo, nil)
	require.NoError(t, err)

	p, ok := board.Pending()
	require.True(t, ok)
	assert.Equal(t, "block-1", p.BlockID)
}

func TestNewSession_IsIndependent(t *testing.T) {
	board := newBoard(t)
	ctx := context.Background()

	s := board.NewSession()
	_, err := s.RequestMove(ctx, "block-1", domain.LaneInProgress)
	require.NoError(t, err)

	_, pending := board.Pending()
	assert.False(t, pending, "default session is untouched")

	got, err := board.Sessions().Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestCreateBlock(t *testing.T) {
	board := newBoard(t)
	ctx := context.Background()

	b, err := board.CreateBlock(ctx, "Write release notes", "")
	require.NoError(t, err)
	assert.Equal(t, domain.LaneTodo, b.Lane)

	_, err = board.CreateBlock(ctx, "", domain.LaneTodo)
	assert.ErrorIs(t, err, domain.ErrInvalidBlock)
}

func TestNew_DefinitionFile(t *testing.T) {
	board := newBoard(t, swimlane.WithDefinitionFile(filepath.Join("pkg", "registry", "testdata", "support.yaml")))

	assert.Equal(t, "support", board.Name)
	assert.Len(t, board.ListLanes(), 3)

	blocks, err := board.ListBlocks(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, blocks, "custom boards are not seeded by default")
}

func TestNew_SeedOnCustomBoardFails(t *testing.T) {
	_, err := swimlane.New(
		swimlane.WithDefinitionFile(filepath.Join("pkg", "registry", "testdata", "support.yaml")),
		swimlane.WithSeed(true),
	)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
}

func TestNew_InvalidDefinitionFile(t *testing.T) {
	_, err := swimlane.New(swimlane.WithDefinitionFile(filepath.Join("pkg", "registry", "testdata", "dangling.yaml")))
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
}

func TestNew_SharedStoreSeedsOnce(t *testing.T) {
	store := memory.NewStore()

	_, err := swimlane.New(swimlane.WithStore(store))
	require.NoError(t, err)
	_, err = swimlane.New(swimlane.WithStore(store), swimlane.WithRegistry(registry.Default()), swimlane.WithSeed(true))
	require.NoError(t, err)

	assert.Equal(t, 3, store.Len())
}

func TestLifecycleHooks_AreMerged(t *testing.T) {
	var first, second int
	board := newBoard(t,
		swimlane.WithLifecycleHooks(domain.LifecycleHooks{
			OnMoveCommitted: func(context.Context, *domain.MoveEvent) { first++ },
		}),
		swimlane.WithLifecycleHooks(domain.LifecycleHooks{
			OnMoveCommitted: func(context.Context, *domain.MoveEvent) { second++ },
		}),
	)

	_, err := board.CommitMove(context.Background(), "block-1", domain.LaneInProgress, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}
