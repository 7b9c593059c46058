package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cafe-backend/internal/domain/cart"
	"github.com/example/cafe-backend/internal/domain/trade"
)

type stubTradeStore struct {
	trades []*trade.Trade
}

func (s *stubTradeStore) CreateTrade(_ context.Context, t *trade.Trade) error {
	t.ID = int64(len(s.trades) + 1)
	s.trades = append(s.trades, t)
	return nil
}

func (s *stubTradeStore) FindByTradeUUID(_ context.Context, tradeUUID string) (*trade.Trade, error) {
	for _, t := range s.trades {
		if t.TradeUUID == tradeUUID {
			return t, nil
		}
	}
	return nil, trade.ErrTradeNotFound
}

func (s *stubTradeStore) ListByMember(_ context.Context, memberID int64) ([]*trade.Trade, error) {
	var out []*trade.Trade
	for _, t := range s.trades {
		if t.MemberID == memberID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubTradeStore) ExistsPurchase(_ context.Context, memberID, itemID int64) (bool, error) {
	for _, t := range s.trades {
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

func TestHasPurchased(t *testing.T) {
	store := &stubTradeStore{}
	ledger := trade.NewLedger(store, nil, nil)
	gate := NewGate(ledger)
	ctx := context.Background()

	purchased, err := gate.HasPurchased(ctx, 7, 1)
	require.NoError(t, err)
	assert.False(t, purchased)

	_, err = ledger.CreateTrade(ctx, 7, []cart.Line{{ItemID: 1, Quantity: 1, UnitPrice: 500}})
	require.NoError(t, err)

	purchased, err = gate.HasPurchased(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, purchased)

	purchased, err = gate.HasPurchased(ctx, 7, 2)
	require.NoError(t, err)
	assert.False(t, purchased, "buying item 1 grants nothing for item 2")
}
