package store

import (
	"context"
	"sort"
	"sync"

	"github.com/example/cafe-backend/internal/domain/item"
)

// MemoryItemStore keeps the catalog in process memory.
type MemoryItemStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*item.Item
}

func NewMemoryItemStore() *MemoryItemStore {
	return &MemoryItemStore{items: make(map[int64]*item.Item)}
}

func (s *MemoryItemStore) CreateItem(ctx context.Context, it *item.Item) (*item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	stored := *it
	stored.ID = s.nextID
	s.items[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *MemoryItemStore) FindItem(ctx context.Context, itemID int64) (*item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[itemID]
	if !ok {
		return nil, item.ErrItemNotFound
	}
	out := *it
	return &out, nil
}

func (s *MemoryItemStore) ListItems(ctx context.Context) ([]*item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*item.Item, 0, len(s.items))
	for _, it := range s.items {
		c := *it
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
