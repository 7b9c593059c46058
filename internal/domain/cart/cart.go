package cart

import (
	"context"
	"errors"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrItemNotInCart   = errors.New("item is not in the cart")
	ErrCacheMiss       = errors.New("cache miss")
)

// Line is one pending item in a member's cart. UnitPrice is the catalog
// price snapshotted when the line was first added.
type Line struct {
	ItemID    int64 `json:"item_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

// Cart holds a member's pending lines. An absent cart and an empty cart
// are the same thing.
type Cart struct {
	MemberID int64  `json:"member_id"`
	Lines    []Line `json:"lines"`
}

// Total returns the cart value in the smallest currency unit.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}

// Store owns persisted cart state. Implementations must linearize
// operations per member: concurrent mutations for the same member must
// not lose updates, while different members never block each other.
type Store interface {
	// Lines returns the member's current lines, ordered by item id.
	// A member with no cart yields an empty slice, not an error.
	Lines(ctx context.Context, memberID int64) ([]Line, error)

	// AddLine merges quantity into an existing line for the item, or
	// creates the line with the given price snapshot. Returns the
	// resulting line.
	AddLine(ctx context.Context, memberID, itemID int64, quantity int, unitPrice int64) (Line, error)

	// SetLineQuantity sets the quantity absolutely. The line must
	// already exist; otherwise ErrItemNotInCart.
	SetLineQuantity(ctx context.Context, memberID, itemID int64, quantity int) (Line, error)

	// RemoveLine deletes the line, or ErrItemNotInCart if absent.
	RemoveLine(ctx context.Context, memberID, itemID int64) error

	// Clear removes every line for the member.
	Clear(ctx context.Context, memberID int64) error
}

// Catalog is the slice of the item catalog the cart needs: the current
// unit price to snapshot into a new line.
type Catalog interface {
	UnitPrice(ctx context.Context, itemID int64) (int64, error)
}

// Cache is a read-aside cache for whole carts. Implementations return
// ErrCacheMiss when the member's cart is not cached.
type Cache interface {
	Get(ctx context.Context, memberID int64) (*Cart, error)
	Set(ctx context.Context, memberID int64, cart *Cart) error
	Delete(ctx context.Context, memberID int64) error
}
