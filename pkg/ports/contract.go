package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunBlockStoreContract runs a suite of tests to verify that a BlockStore implementation
// adheres to the defined interface contract. newStore must return an empty store.
func RunBlockStoreContract(t *testing.T, newStore func() BlockStore) {
	ctx := context.Background()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Insert and Get", func(t *testing.T) {
		store := newStore()
		block := domain.NewBlock("block-1", "Block 1", domain.LaneTodo)

		require.NoError(t, store.Insert(ctx, block))

		loaded, err := store.Get(ctx, "block-1")
		require.NoError(t, err)
		assert.Equal(t, "Block 1", loaded.Content)
		assert.Equal(t, domain.LaneTodo, loaded.Lane)
		assert.Empty(t, loaded.History)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		store := newStore()
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrBlockNotFound)
	})

	t.Run("Insert Duplicate", func(t *testing.T) {
		store := newStore()
		require.NoError(t, store.Insert(ctx, domain.NewBlock("dup", "first", domain.LaneTodo)))

		err := store.Insert(ctx, domain.NewBlock("dup", "second", domain.LaneDone))
		assert.ErrorIs(t, err, domain.ErrBlockExists)

		loaded, err := store.Get(ctx, "dup")
		require.NoError(t, err)
		assert.Equal(t, "first", loaded.Content, "duplicate insert must not overwrite")
	})

	t.Run("All Preserves Insertion Order", func(t *testing.T) {
		store := newStore()
		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, store.Insert(ctx, domain.NewBlock(id, "content "+id, domain.LaneTodo)))
		}

		all, err := store.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "c", all[0].ID)
		assert.Equal(t, "a", all[1].ID)
		assert.Equal(t, "b", all[2].ID)
	})

	t.Run("Apply Appends History", func(t *testing.T) {
		store := newStore()
		require.NoError(t, store.Insert(ctx, domain.NewBlock("block-1", "Block 1", domain.LaneTodo)))

		first := domain.TransitionRecord{From: domain.LaneTodo, To: domain.LaneInProgress, Data: map[string]string{"assignee": "Alice"}, Timestamp: ts}
		updated, err := store.Apply(ctx, Mutation{BlockID: "block-1", Lane: domain.LaneInProgress, Record: first})
		require.NoError(t, err)
		assert.Equal(t, domain.LaneInProgress, updated.Lane)
		require.Len(t, updated.History, 1)

		second := domain.TransitionRecord{From: domain.LaneInProgress, To: domain.LaneDone, Data: map[string]string{}, Timestamp: ts.Add(time.Hour)}
		_, err = store.Apply(ctx, Mutation{BlockID: "block-1", Lane: domain.LaneDone, Record: second})
		require.NoError(t, err)

		loaded, err := store.Get(ctx, "block-1")
		require.NoError(t, err)
		assert.Equal(t, domain.LaneDone, loaded.Lane)
		require.Len(t, loaded.History, 2)
		assert.Equal(t, "Alice", loaded.History[0].Data["assignee"], "prior records are never altered")
		assert.True(t, loaded.History[0].Timestamp.Equal(ts))
		assert.Equal(t, domain.LaneDone, loaded.History[1].To)
		assert.Equal(t, "Block 1", loaded.Content, "content is immutable")
	})

	t.Run("Apply Non-Existent", func(t *testing.T) {
		store := newStore()
		_, err := store.Apply(ctx, Mutation{BlockID: "missing", Lane: domain.LaneDone})
		assert.ErrorIs(t, err, domain.ErrBlockNotFound)
	})

	t.Run("Isolation", func(t *testing.T) {
		store := newStore()
		require.NoError(t, store.Insert(ctx, domain.NewBlock("block-1", "Block 1", domain.LaneTodo)))
		data := map[string]string{"assignee": "Alice"}
		_, err := store.Apply(ctx, Mutation{
			BlockID: "block-1",
			Lane:    domain.LaneInProgress,
			Record:  domain.TransitionRecord{From: domain.LaneTodo, To: domain.LaneInProgress, Data: data, Timestamp: ts},
		})
		require.NoError(t, err)

		// Mutating inputs and outputs must not reach the store.
		data["assignee"] = "Mallory"
		loaded, err := store.Get(ctx, "block-1")
		require.NoError(t, err)
		loaded.History[0].Data["assignee"] = "Eve"
		loaded.Lane = domain.LaneDone

		again, err := store.Get(ctx, "block-1")
		require.NoError(t, err)
		assert.Equal(t, "Alice", again.History[0].Data["assignee"])
		assert.Equal(t, domain.LaneInProgress, again.Lane)
	})

	t.Run("Concurrent Apply", func(t *testing.T) {
		store := newStore()
		require.NoError(t, store.Insert(ctx, domain.NewBlock("hot", "Hot", domain.LaneTodo)))

		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := store.Apply(ctx, Mutation{
					BlockID: "hot",
					Lane:    domain.LaneInProgress,
					Record:  domain.TransitionRecord{Data: map[string]string{"n": fmt.Sprint(i)}, Timestamp: ts},
				})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		loaded, err := store.Get(ctx, "hot")
		require.NoError(t, err)
		assert.Len(t, loaded.History, n, "no append may be lost")
	})
}
