package cart

import (
	"context"
	"log"
)

// Service applies cart mutation rules on top of a Store. All operations
// are keyed by the owning member; ownership checks happen upstream when
// the member id is resolved from a credential.
type Service struct {
	store   Store
	catalog Catalog
	cache   Cache // optional
}

func NewService(store Store, catalog Catalog, cache Cache) *Service {
	return &Service{store: store, catalog: catalog, cache: cache}
}

// Show returns the member's current cart. Absence yields an empty cart;
// Show never fails for a member who has not added anything.
func (s *Service) Show(ctx context.Context, memberID int64) (*Cart, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, memberID); err == nil {
			return cached, nil
		}
	}

	lines, err := s.store.Lines(ctx, memberID)
	if err != nil {
		return nil, err
	}

	c := &Cart{MemberID: memberID, Lines: lines}
	if s.cache != nil {
		if err := s.cache.Set(ctx, memberID, c); err != nil {
			log.Printf("[Cart] Failed to cache cart for member %d: %v", memberID, err)
		}
	}
	return c, nil
}

// AddItem adds quantity of an item to the member's cart. If the item is
// already present the quantities are summed, never overwritten. Adding a
// non-positive quantity is rejected.
func (s *Service) AddItem(ctx context.Context, memberID, itemID int64, quantity int) (Line, error) {
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}

	unitPrice, err := s.catalog.UnitPrice(ctx, itemID)
	if err != nil {
		return Line{}, err
	}

	line, err := s.store.AddLine(ctx, memberID, itemID, quantity, unitPrice)
	if err != nil {
		return Line{}, err
	}

	s.dropCache(ctx, memberID)
	return line, nil
}

// EditItem sets a line's quantity absolutely. Quantity 0 deletes the
// line and reports removed=true; this edit-to-zero contract is relied on
// by existing callers. Negative quantities are rejected, and editing an
// item that is not in the cart fails without creating a line.
func (s *Service) EditItem(ctx context.Context, memberID, itemID int64, quantity int) (line Line, removed bool, err error) {
	if quantity < 0 {
		return Line{}, false, ErrInvalidQuantity
	}

	if quantity == 0 {
		if err := s.store.RemoveLine(ctx, memberID, itemID); err != nil {
			return Line{}, false, err
		}
		s.dropCache(ctx, memberID)
		return Line{}, true, nil
	}

	line, err = s.store.SetLineQuantity(ctx, memberID, itemID, quantity)
	if err != nil {
		return Line{}, false, err
	}

	s.dropCache(ctx, memberID)
	return line, false, nil
}

// Clear empties the member's cart.
func (s *Service) Clear(ctx context.Context, memberID int64) error {
	if err := s.store.Clear(ctx, memberID); err != nil {
		return err
	}
	s.dropCache(ctx, memberID)
	return nil
}

func (s *Service) dropCache(ctx context.Context, memberID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, memberID); err != nil {
		log.Printf("[Cart] Failed to invalidate cache for member %d: %v", memberID, err)
	}
}
