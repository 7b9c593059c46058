// Package purchase answers the single question "has this member
// purchased this item". Review eligibility and promotional entitlement
// both depend on it; keeping it a named component stops callers from
// duplicating the ledger query.
package purchase

import (
	"context"

	"github.com/example/cafe-backend/internal/domain/trade"
)

// Gate is a stateless pass-through to the trade ledger.
type Gate struct {
	ledger *trade.Ledger
}

func NewGate(ledger *trade.Ledger) *Gate {
	return &Gate{ledger: ledger}
}

// HasPurchased reports whether some trade owned by the member contains
// the item.
func (g *Gate) HasPurchased(ctx context.Context, memberID, itemID int64) (bool, error) {
	return g.ledger.ExistsPurchase(ctx, memberID, itemID)
}
