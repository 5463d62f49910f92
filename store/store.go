// Package store persists transactions, market data and computed records in sqlite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	source        TEXT    NOT NULL,
	seq           INTEGER NOT NULL,
	activity_date TEXT    NOT NULL,
	instrument    TEXT    NOT NULL,
	event_type    TEXT    NOT NULL,
	trans_code    TEXT    NOT NULL DEFAULT '',
	quantity      TEXT    NOT NULL,
	amount        TEXT    NOT NULL,
	UNIQUE (source, seq)
);
CREATE INDEX IF NOT EXISTS idx_transactions_instrument ON transactions (instrument, activity_date);

CREATE TABLE IF NOT EXISTS market_data (
	instrument  TEXT NOT NULL,
	price_date  TEXT NOT NULL,
	close_price TEXT NOT NULL,
	PRIMARY KEY (instrument, price_date)
);

CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	created_at  TEXT    NOT NULL,
	instruments INTEGER NOT NULL,
	records     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS asset_value (
	as_of_date      TEXT NOT NULL,
	instrument      TEXT NOT NULL,
	period_start    TEXT NOT NULL,
	shares_bom      TEXT NOT NULL,
	shares_eom      TEXT NOT NULL,
	price_bom       TEXT NOT NULL,
	price_eom       TEXT NOT NULL,
	nav_bom         TEXT NOT NULL,
	nav_eom         TEXT NOT NULL,
	net_cash_flow   TEXT NOT NULL,
	wcf             TEXT NOT NULL,
	average_capital TEXT NOT NULL,
	pnl             TEXT NOT NULL,
	realized_pnl    TEXT NOT NULL,
	unrealized_pnl  TEXT NOT NULL,
	md_return       TEXT,
	linked_return   TEXT,
	ltd_return      TEXT,
	run_id          TEXT NOT NULL REFERENCES runs (id),
	PRIMARY KEY (as_of_date, instrument)
);
`

// Store wraps the database connection
type Store struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// Open opens (creating it if needed) the database at path and migrates its schema.
func Open(ctx context.Context, path string, log zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, path: path, log: log.With().Str("component", "store").Str("path", path).Logger()}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	s.log.Debug().Msg("database ready")
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error { return s.db.Close() }

// inTx runs fn in a transaction, committed when fn succeeds.
func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
