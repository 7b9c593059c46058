package store

import (
	"context"
	"sort"
	"sync"

	"github.com/example/cafe-backend/internal/domain/trade"
)

// MemoryTradeStore keeps trades in process memory. It shares the cart
// store's per-member locks so a checkout inserts the trade and clears
// the cart as one atomic unit, exactly like the Postgres transaction.
type MemoryTradeStore struct {
	carts *MemoryCartStore

	mu     sync.RWMutex
	nextID int64
	byUUID map[string]*trade.Trade
	byID   []*trade.Trade
}

func NewMemoryTradeStore(carts *MemoryCartStore) *MemoryTradeStore {
	return &MemoryTradeStore{
		carts:  carts,
		byUUID: make(map[string]*trade.Trade),
	}
}

func (s *MemoryTradeStore) CreateTrade(ctx context.Context, t *trade.Trade) error {
	memberLock := s.carts.memberLock(t.MemberID)
	memberLock.Lock()
	defer memberLock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUUID[t.TradeUUID]; exists {
		return trade.ErrDuplicateTradeUUID
	}

	s.nextID++
	t.ID = s.nextID

	stored := copyTrade(t)
	s.byUUID[stored.TradeUUID] = stored
	s.byID = append(s.byID, stored)

	s.carts.clearLocked(t.MemberID)
	return nil
}

func (s *MemoryTradeStore) FindByTradeUUID(ctx context.Context, tradeUUID string) (*trade.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byUUID[tradeUUID]
	if !ok {
		return nil, trade.ErrTradeNotFound
	}
	return copyTrade(t), nil
}

func (s *MemoryTradeStore) ListByMember(ctx context.Context, memberID int64) ([]*trade.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*trade.Trade
	for _, t := range s.byID {
		if t.MemberID == memberID {
			out = append(out, copyTrade(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemoryTradeStore) ExistsPurchase(ctx context.Context, memberID, itemID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.byID {
		if t.MemberID != memberID {
			continue
		}
		for _, it := range t.Items {
			if it.ItemID == itemID {
				return true, nil
			}
		}
	}
	return false, nil
}

// copyTrade returns a deep copy so callers cannot mutate ledger state.
func copyTrade(t *trade.Trade) *trade.Trade {
	c := *t
	c.Items = make([]trade.Item, len(t.Items))
	copy(c.Items, t.Items)
	return &c
}
