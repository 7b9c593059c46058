package store

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres establishes a pooled connection to PostgreSQL.
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// schema is idempotent DDL executed at startup.
const schema = `
CREATE TABLE IF NOT EXISTS members (
	id            BIGSERIAL PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'customer',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS items (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price       BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS cart_lines (
	member_id  BIGINT NOT NULL,
	item_id    BIGINT NOT NULL,
	quantity   INT NOT NULL CHECK (quantity > 0),
	unit_price BIGINT NOT NULL,
	PRIMARY KEY (member_id, item_id)
);

CREATE TABLE IF NOT EXISTS trades (
	id         BIGSERIAL PRIMARY KEY,
	trade_uuid TEXT NOT NULL UNIQUE,
	member_id  BIGINT NOT NULL,
	total      BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS trade_items (
	trade_id   BIGINT NOT NULL REFERENCES trades(id),
	seq        INT NOT NULL,
	item_id    BIGINT NOT NULL,
	quantity   INT NOT NULL,
	unit_price BIGINT NOT NULL,
	PRIMARY KEY (trade_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_trades_member ON trades (member_id);
CREATE INDEX IF NOT EXISTS idx_trade_items_item ON trade_items (item_id);

CREATE TABLE IF NOT EXISTS reviews (
	id         BIGSERIAL PRIMARY KEY,
	member_id  BIGINT NOT NULL,
	item_id    BIGINT NOT NULL,
	content    TEXT NOT NULL,
	rating     DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_item ON reviews (item_id);
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
