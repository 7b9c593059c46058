package trade

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmptyTrade          = errors.New("trade must have at least one item")
	ErrTradeNotFound       = errors.New("trade not found")
	ErrTradeCreationFailed = errors.New("trade creation failed")

	// ErrDuplicateTradeUUID is returned by stores when the uniqueness
	// constraint on trade_uuid trips. The ledger retries with a fresh
	// identifier; this error never reaches callers.
	ErrDuplicateTradeUUID = errors.New("duplicate trade uuid")
)

// Item is an immutable snapshot of a cart line at checkout time,
// decoupled from later catalog price changes.
type Item struct {
	ItemID    int64 `json:"item_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

// Trade is a completed purchase. Once created it is never updated or
// deleted; TradeUUID is its globally unique external identifier.
type Trade struct {
	ID        int64     `json:"id"`
	TradeUUID string    `json:"trade_uuid"`
	MemberID  int64     `json:"member_id"`
	Items     []Item    `json:"items"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists trades. CreateTrade must be atomic: the trade, its
// items, and the clearing of the member's cart commit together or not
// at all. A partial trade must never be observable.
type Store interface {
	// CreateTrade persists t with all its items, clears the member's
	// cart in the same transaction, and fills t.ID. Returns
	// ErrDuplicateTradeUUID if t.TradeUUID is already taken.
	CreateTrade(ctx context.Context, t *Trade) error

	FindByTradeUUID(ctx context.Context, tradeUUID string) (*Trade, error)

	ListByMember(ctx context.Context, memberID int64) ([]*Trade, error)

	// ExistsPurchase reports whether any trade owned by the member
	// contains the item. Pure read.
	ExistsPurchase(ctx context.Context, memberID, itemID int64) (bool, error)
}
