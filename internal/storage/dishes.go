package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/logger"
)

// Compile-time interface check.
var _ domain.DishStore = (*MemoryDishStore)(nil)

// MemoryDishStore keeps encoded dishes in memory, keyed by UUID. Safe for
// concurrent access.
type MemoryDishStore struct {
	mu     sync.RWMutex
	dishes map[uuid.UUID][]byte
	log    *logger.Logger
}

// NewMemoryDishStore creates an empty dish store.
func NewMemoryDishStore(log *logger.Logger) *MemoryDishStore {
	return &MemoryDishStore{
		dishes: make(map[uuid.UUID][]byte),
		log:    log,
	}
}

// Put stores a copy of data under id, replacing any previous payload.
func (s *MemoryDishStore) Put(ctx context.Context, id string, data []byte) error {
	key, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("dish id %q: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dishes[key] = slices.Clone(data)
	s.log.Debug("stored dish %s (%d bytes)", key, len(data))
	return nil
}

// Get returns a copy of the payload stored under id.
func (s *MemoryDishStore) Get(ctx context.Context, id string) ([]byte, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("dish id %q: %w", id, domain.ErrNotFound)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.dishes[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(data), nil
}

// Delete removes the dish stored under id.
func (s *MemoryDishStore) Delete(ctx context.Context, id string) error {
	key, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("dish id %q: %w", id, domain.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.dishes[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.dishes, key)
	s.log.Debug("deleted dish %s", key)
	return nil
}

// List returns every stored dish ID in sorted order.
func (s *MemoryDishStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.dishes))
	for key := range s.dishes {
		out = append(out, key.String())
	}
	slices.Sort(out)
	return out, nil
}
