package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/cafe-backend/internal/domain/item"
)

// PostgresItemStore persists the catalog in PostgreSQL.
type PostgresItemStore struct {
	db *sql.DB
}

func NewPostgresItemStore(db *sql.DB) *PostgresItemStore {
	return &PostgresItemStore{db: db}
}

func (s *PostgresItemStore) CreateItem(ctx context.Context, it *item.Item) (*item.Item, error) {
	stored := *it
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO items (name, description, price, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		it.Name, it.Description, it.Price, it.CreatedAt,
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return &stored, nil
}

func (s *PostgresItemStore) FindItem(ctx context.Context, itemID int64) (*item.Item, error) {
	it := &item.Item{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, price, created_at
		 FROM items WHERE id = $1`,
		itemID,
	).Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, item.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	return it, nil
}

func (s *PostgresItemStore) ListItems(ctx context.Context) ([]*item.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, price, created_at
		 FROM items ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*item.Item
	for rows.Next() {
		it := &item.Item{}
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
