package store

import (
	"context"
	"sort"
	"sync"

	"github.com/example/cafe-backend/internal/domain/cart"
)

// MemoryCartStore keeps carts in process memory. Mutations are
// serialized per member with keyed mutexes, so concurrent operations on
// one member's cart cannot lose updates while different members never
// contend.
type MemoryCartStore struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
	carts map[int64]map[int64]cart.Line // memberID -> itemID -> line
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		locks: make(map[int64]*sync.Mutex),
		carts: make(map[int64]map[int64]cart.Line),
	}
}

// memberLock returns the mutex serializing this member's cart.
func (s *MemoryCartStore) memberLock(memberID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[memberID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[memberID] = l
	}
	return l
}

func (s *MemoryCartStore) lines(memberID int64) map[int64]cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.carts[memberID]
	if !ok {
		m = make(map[int64]cart.Line)
		s.carts[memberID] = m
	}
	return m
}

func (s *MemoryCartStore) Lines(ctx context.Context, memberID int64) ([]cart.Line, error) {
	l := s.memberLock(memberID)
	l.Lock()
	defer l.Unlock()

	m := s.lines(memberID)
	out := make([]cart.Line, 0, len(m))
	for _, line := range m {
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (s *MemoryCartStore) AddLine(ctx context.Context, memberID, itemID int64, quantity int, unitPrice int64) (cart.Line, error) {
	l := s.memberLock(memberID)
	l.Lock()
	defer l.Unlock()

	m := s.lines(memberID)
	line, ok := m[itemID]
	if ok {
		line.Quantity += quantity
	} else {
		line = cart.Line{ItemID: itemID, Quantity: quantity, UnitPrice: unitPrice}
	}
	m[itemID] = line
	return line, nil
}

func (s *MemoryCartStore) SetLineQuantity(ctx context.Context, memberID, itemID int64, quantity int) (cart.Line, error) {
	l := s.memberLock(memberID)
	l.Lock()
	defer l.Unlock()

	m := s.lines(memberID)
	line, ok := m[itemID]
	if !ok {
		return cart.Line{}, cart.ErrItemNotInCart
	}
	line.Quantity = quantity
	m[itemID] = line
	return line, nil
}

func (s *MemoryCartStore) RemoveLine(ctx context.Context, memberID, itemID int64) error {
	l := s.memberLock(memberID)
	l.Lock()
	defer l.Unlock()

	m := s.lines(memberID)
	if _, ok := m[itemID]; !ok {
		return cart.ErrItemNotInCart
	}
	delete(m, itemID)
	return nil
}

func (s *MemoryCartStore) Clear(ctx context.Context, memberID int64) error {
	l := s.memberLock(memberID)
	l.Lock()
	defer l.Unlock()

	s.clearLocked(memberID)
	return nil
}

// clearLocked empties the member's cart. Caller holds the member lock.
func (s *MemoryCartStore) clearLocked(memberID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, memberID)
}
