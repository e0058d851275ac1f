package ports_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/aretw0/swimlane/pkg/ports"
)

// MockStore is a minimal slice-backed BlockStore used to check the contract suite itself.
type MockStore struct {
	mu     sync.Mutex
	blocks []domain.Block
}

func (m *MockStore) find(id string) int {
	for i, b := range m.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (m *MockStore) All(ctx context.Context) ([]domain.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Block, len(m.blocks))
	for i, b := range m.blocks {
		out[i] = b.Snapshot()
	}
	return out, nil
}

func (m *MockStore) Get(ctx context.Context, id string) (domain.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return domain.Block{}, domain.ErrBlockNotFound
	}
	return m.blocks[i].Snapshot(), nil
}

func (m *MockStore) Insert(ctx context.Context, block domain.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(block.ID) >= 0 {
		return domain.ErrBlockExists
	}
	m.blocks = append(m.blocks, block.Snapshot())
	return nil
}

func (m *MockStore) Apply(ctx context.Context, mut ports.Mutation) (domain.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(mut.BlockID)
	if i < 0 {
		return domain.Block{}, domain.ErrBlockNotFound
	}
	m.blocks[i].Lane = mut.Lane
	m.blocks[i].History = append(m.blocks[i].History, mut.Record.Clone())
	return m.blocks[i].Snapshot(), nil
}

func TestBlockStore_Contract(t *testing.T) {
	ports.RunBlockStoreContract(t, func() ports.BlockStore { return &MockStore{} })
}
