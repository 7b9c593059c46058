package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/cafe-backend/internal/domain/cart"
)

// PostgresCartStore persists cart lines in PostgreSQL. Each mutation is
// a single atomic statement keyed on (member_id, item_id), which gives
// the per-member linearization the cart contract requires without any
// application-side locking.
type PostgresCartStore struct {
	db *sql.DB
}

func NewPostgresCartStore(db *sql.DB) *PostgresCartStore {
	return &PostgresCartStore{db: db}
}

func (s *PostgresCartStore) Lines(ctx context.Context, memberID int64) ([]cart.Line, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, quantity, unit_price
		 FROM cart_lines
		 WHERE member_id = $1
		 ORDER BY item_id`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	defer rows.Close()

	lines := []cart.Line{}
	for rows.Next() {
		var l cart.Line
		if err := rows.Scan(&l.ItemID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// AddLine merges the quantity into an existing line via upsert. The
// unit price snapshot is kept from the first add.
func (s *PostgresCartStore) AddLine(ctx context.Context, memberID, itemID int64, quantity int, unitPrice int64) (cart.Line, error) {
	var l cart.Line
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO cart_lines (member_id, item_id, quantity, unit_price)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (member_id, item_id)
		 DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
		 RETURNING item_id, quantity, unit_price`,
		memberID, itemID, quantity, unitPrice,
	).Scan(&l.ItemID, &l.Quantity, &l.UnitPrice)
	if err != nil {
		return cart.Line{}, fmt.Errorf("add cart line: %w", err)
	}
	return l, nil
}

func (s *PostgresCartStore) SetLineQuantity(ctx context.Context, memberID, itemID int64, quantity int) (cart.Line, error) {
	var l cart.Line
	err := s.db.QueryRowContext(ctx,
		`UPDATE cart_lines
		 SET quantity = $3
		 WHERE member_id = $1 AND item_id = $2
		 RETURNING item_id, quantity, unit_price`,
		memberID, itemID, quantity,
	).Scan(&l.ItemID, &l.Quantity, &l.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return cart.Line{}, cart.ErrItemNotInCart
	}
	if err != nil {
		return cart.Line{}, fmt.Errorf("set cart line quantity: %w", err)
	}
	return l, nil
}

func (s *PostgresCartStore) RemoveLine(ctx context.Context, memberID, itemID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_lines WHERE member_id = $1 AND item_id = $2`,
		memberID, itemID,
	)
	if err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return cart.ErrItemNotInCart
	}
	return nil
}

func (s *PostgresCartStore) Clear(ctx context.Context, memberID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_lines WHERE member_id = $1`,
		memberID,
	)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
