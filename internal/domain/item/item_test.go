package item

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItemStore struct {
	nextID int64
	items  map[int64]*Item
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: make(map[int64]*Item)}
}

func (s *fakeItemStore) CreateItem(_ context.Context, it *Item) (*Item, error) {
	s.nextID++
	it.ID = s.nextID
	s.items[it.ID] = it
	return it, nil
}

func (s *fakeItemStore) FindItem(_ context.Context, itemID int64) (*Item, error) {
	it, ok := s.items[itemID]
	if !ok {
		return nil, ErrItemNotFound
	}
	return it, nil
}

func (s *fakeItemStore) ListItems(_ context.Context) ([]*Item, error) {
	out := make([]*Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	return out, nil
}

func TestCreate(t *testing.T) {
	svc := NewService(newFakeItemStore())

	it, err := svc.Create(context.Background(), "Espresso", "double shot", 500)
	require.NoError(t, err)
	assert.NotZero(t, it.ID)
	assert.Equal(t, int64(500), it.Price)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakeItemStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "", 500)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.Create(ctx, "Espresso", "", -1)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestUnitPrice(t *testing.T) {
	svc := NewService(newFakeItemStore())
	ctx := context.Background()

	it, err := svc.Create(ctx, "Latte", "", 650)
	require.NoError(t, err)

	price, err := svc.UnitPrice(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(650), price)

	_, err = svc.UnitPrice(ctx, 999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
