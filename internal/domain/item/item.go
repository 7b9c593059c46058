package item

import (
	"context"
	"errors"
	"time"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrInvalidName  = errors.New("item name is required")
	ErrInvalidPrice = errors.New("item price must not be negative")
)

// Item is a catalog entry. Price is in the smallest currency unit.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store persists catalog entries.
type Store interface {
	CreateItem(ctx context.Context, it *Item) (*Item, error)
	FindItem(ctx context.Context, itemID int64) (*Item, error)
	ListItems(ctx context.Context) ([]*Item, error)
}

// Service exposes the catalog to handlers and to the cart, which
// snapshots the current unit price when a line is added.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, name, description string, price int64) (*Item, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}

	return s.store.CreateItem(ctx, &Item{
		Name:        name,
		Description: description,
		Price:       price,
		CreatedAt:   time.Now(),
	})
}

func (s *Service) Find(ctx context.Context, itemID int64) (*Item, error) {
	return s.store.FindItem(ctx, itemID)
}

func (s *Service) List(ctx context.Context) ([]*Item, error) {
	return s.store.ListItems(ctx)
}

// UnitPrice returns the item's current price. Satisfies cart.Catalog.
func (s *Service) UnitPrice(ctx context.Context, itemID int64) (int64, error) {
	it, err := s.store.FindItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return it.Price, nil
}
