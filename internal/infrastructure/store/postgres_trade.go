package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/cafe-backend/internal/domain/trade"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// PostgresTradeStore persists trades in PostgreSQL. CreateTrade runs
// the trade insert, the item inserts, and the cart clear in a single
// transaction so a crash can never leave a trade without its cart
// cleared, or the other way around.
type PostgresTradeStore struct {
	db *sql.DB
}

func NewPostgresTradeStore(db *sql.DB) *PostgresTradeStore {
	return &PostgresTradeStore{db: db}
}

func (s *PostgresTradeStore) CreateTrade(ctx context.Context, t *trade.Trade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin trade tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO trades (trade_uuid, member_id, total, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		t.TradeUUID, t.MemberID, t.Total, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return trade.ErrDuplicateTradeUUID
		}
		return fmt.Errorf("insert trade: %w", err)
	}

	for seq, it := range t.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO trade_items (trade_id, seq, item_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			t.ID, seq, it.ItemID, it.Quantity, it.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert trade item: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_lines WHERE member_id = $1`,
		t.MemberID,
	); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit trade: %w", err)
	}
	return nil
}

func (s *PostgresTradeStore) FindByTradeUUID(ctx context.Context, tradeUUID string) (*trade.Trade, error) {
	t := &trade.Trade{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trade_uuid, member_id, total, created_at
		 FROM trades
		 WHERE trade_uuid = $1`,
		tradeUUID,
	).Scan(&t.ID, &t.TradeUUID, &t.MemberID, &t.Total, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, trade.ErrTradeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find trade: %w", err)
	}

	if t.Items, err = s.tradeItems(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *PostgresTradeStore) ListByMember(ctx context.Context, memberID int64) ([]*trade.Trade, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trade_uuid, member_id, total, created_at
		 FROM trades
		 WHERE member_id = $1
		 ORDER BY id DESC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	var trades []*trade.Trade
	for rows.Next() {
		t := &trade.Trade{}
		if err := rows.Scan(&t.ID, &t.TradeUUID, &t.MemberID, &t.Total, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range trades {
		if t.Items, err = s.tradeItems(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return trades, nil
}

func (s *PostgresTradeStore) ExistsPurchase(ctx context.Context, memberID, itemID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1
			FROM trades t
			JOIN trade_items ti ON ti.trade_id = t.id
			WHERE t.member_id = $1 AND ti.item_id = $2
		 )`,
		memberID, itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists purchase: %w", err)
	}
	return exists, nil
}

func (s *PostgresTradeStore) tradeItems(ctx context.Context, tradeID int64) ([]trade.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, quantity, unit_price
		 FROM trade_items
		 WHERE trade_id = $1
		 ORDER BY seq`,
		tradeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query trade items: %w", err)
	}
	defer rows.Close()

	var items []trade.Item
	for rows.Next() {
		var it trade.Item
		if err := rows.Scan(&it.ItemID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan trade item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
