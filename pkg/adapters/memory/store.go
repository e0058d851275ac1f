// Package memory provides an in-process BlockStore.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/aretw0/swimlane/pkg/ports"
)

// Store implements ports.BlockStore in memory.
// Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	order []string
	data  map[string]*domain.Block
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Block),
	}
}

// NewSeededStore creates a store holding the given blocks, in order.
func NewSeededStore(blocks ...domain.Block) (*Store, error) {
	s := NewStore()
	for _, b := range blocks {
		if err := s.Insert(context.Background(), b); err != nil {
			return nil, fmt.Errorf("failed to seed block %s: %w", b.ID, err)
		}
	}
	return s, nil
}

// All returns a copy of every block in insertion order.
func (s *Store) All(ctx context.Context) ([]domain.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Block, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id].Snapshot())
	}
	return out, nil
}

// Get retrieves a copy of the block so the caller can't mutate the store by pointer.
func (s *Store) Get(ctx context.Context, id string) (domain.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.data[id]
	if !ok {
		return domain.Block{}, domain.ErrBlockNotFound
	}
	return b.Snapshot(), nil
}

// Insert adds a deep copy of block.
func (s *Store) Insert(ctx context.Context, block domain.Block) error {
	copied := block.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[block.ID]; exists {
		return domain.ErrBlockExists
	}
	s.data[block.ID] = &copied
	s.order = append(s.order, block.ID)
	return nil
}

// Apply moves the block and appends the record under the write lock.
func (s *Store) Apply(ctx context.Context, m ports.Mutation) (domain.Block, error) {
	record := m.Record.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.data[m.BlockID]
	if !ok {
		return domain.Block{}, domain.ErrBlockNotFound
	}
	b.Lane = m.Lane
	b.History = append(b.History, record)
	return b.Snapshot(), nil
}

// Len returns the number of blocks held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
