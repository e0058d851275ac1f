package memory_test

import (
	"testing"

	"github.com/aretw0/swimlane/pkg/adapters/memory"
	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/aretw0/swimlane/pkg/ports"
	"github.com/aretw0/swimlane/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunBlockStoreContract(t, func() ports.BlockStore { return memory.NewStore() })
}

func TestNewSeededStore(t *testing.T) {
	store, err := memory.NewSeededStore(registry.SeedBlocks()...)
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len())

	_, err = memory.NewSeededStore(
		domain.NewBlock("x", "one", domain.LaneTodo),
		domain.NewBlock("x", "two", domain.LaneTodo),
	)
	assert.ErrorIs(t, err, domain.ErrBlockExists)
}
