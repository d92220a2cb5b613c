// Package storage is the concrete, non-core (§6) persistence adapter:
// a SQLite implementation of ports.Store over the nine logical tables of
// §6, using database/sql and a schema-as-const in the same style as the
// teacher's adapters/storage/sqlite.go. Queries are issued directly on
// the handle; no statements are prepared ahead of time.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riskcore/tradecore/internal/ports"
	_ "modernc.org/sqlite"
)

var _ ports.Store = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id                  TEXT PRIMARY KEY,
    name                TEXT NOT NULL,
    description         TEXT NOT NULL DEFAULT '',
    environment         TEXT NOT NULL,
    taxes_percentage    TEXT NOT NULL,
    earnings_percentage TEXT NOT NULL,
    created_at          DATETIME NOT NULL,
    updated_at          DATETIME NOT NULL,
    deleted_at          DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_name ON accounts(name COLLATE NOCASE) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS accounts_balances (
    id              TEXT PRIMARY KEY,
    account_id      TEXT NOT NULL REFERENCES accounts(id),
    currency        TEXT NOT NULL,
    total_balance   TEXT NOT NULL,
    total_in_trade  TEXT NOT NULL,
    total_available TEXT NOT NULL,
    taxed           TEXT NOT NULL,
    total_earnings  TEXT NOT NULL,
    created_at      DATETIME NOT NULL,
    updated_at      DATETIME NOT NULL,
    deleted_at      DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_balances_account_currency ON accounts_balances(account_id, currency);

CREATE TABLE IF NOT EXISTS rules (
    id         TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES accounts(id),
    name       TEXT NOT NULL,
    kind       TEXT NOT NULL,
    percentage TEXT NOT NULL,
    level      TEXT NOT NULL,
    active     INTEGER NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    deleted_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_rules_account ON rules(account_id) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS trading_vehicles (
    id         TEXT PRIMARY KEY,
    symbol     TEXT NOT NULL,
    isin       TEXT NOT NULL,
    category   TEXT NOT NULL,
    broker     TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    deleted_at DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_vehicles_isin ON trading_vehicles(isin) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS orders (
    id                 TEXT PRIMARY KEY,
    trading_vehicle_id TEXT NOT NULL REFERENCES trading_vehicles(id),
    unit_price         TEXT NOT NULL,
    currency           TEXT NOT NULL,
    quantity           INTEGER NOT NULL,
    category           TEXT NOT NULL,
    action             TEXT NOT NULL,
    status             TEXT NOT NULL,
    time_in_force      TEXT NOT NULL,
    filled_quantity    INTEGER NOT NULL DEFAULT 0,
    average_fill_price TEXT NOT NULL DEFAULT '0',
    broker_order_id    TEXT NOT NULL DEFAULT '',
    submitted_at       DATETIME,
    filled_at          DATETIME,
    expired_at         DATETIME,
    cancelled_at       DATETIME,
    closed_at          DATETIME,
    created_at         DATETIME NOT NULL,
    updated_at         DATETIME NOT NULL,
    deleted_at         DATETIME
);

CREATE TABLE IF NOT EXISTS trades (
    id                 TEXT PRIMARY KEY,
    account_id         TEXT NOT NULL REFERENCES accounts(id),
    trading_vehicle_id TEXT NOT NULL REFERENCES trading_vehicles(id),
    entry_id           TEXT NOT NULL REFERENCES orders(id),
    stop_id            TEXT NOT NULL REFERENCES orders(id),
    target_id          TEXT NOT NULL REFERENCES orders(id),
    trade_balance_id   TEXT NOT NULL DEFAULT '',
    category           TEXT NOT NULL,
    status             TEXT NOT NULL,
    currency           TEXT NOT NULL,
    created_at         DATETIME NOT NULL,
    updated_at         DATETIME NOT NULL,
    deleted_at         DATETIME
);
CREATE INDEX IF NOT EXISTS idx_trades_account_status ON trades(account_id, status) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS trades_balances (
    id                 TEXT PRIMARY KEY,
    trade_id           TEXT NOT NULL,
    funding            TEXT NOT NULL,
    capital_in_market  TEXT NOT NULL,
    capital_out_market TEXT NOT NULL,
    taxed              TEXT NOT NULL,
    total_performance  TEXT NOT NULL,
    created_at         DATETIME NOT NULL,
    updated_at         DATETIME NOT NULL,
    deleted_at         DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_trade_balances_trade ON trades_balances(trade_id);

CREATE TABLE IF NOT EXISTS transactions (
    id         TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES accounts(id),
    currency   TEXT NOT NULL,
    amount     TEXT NOT NULL,
    category   TEXT NOT NULL,
    trade_id   TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    deleted_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_transactions_account_currency ON transactions(account_id, currency, created_at);
CREATE INDEX IF NOT EXISTS idx_transactions_trade ON transactions(trade_id);

CREATE TABLE IF NOT EXISTS logs (
    id         TEXT PRIMARY KEY,
    trade_id   TEXT NOT NULL,
    log        TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    deleted_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_logs_trade ON logs(trade_id, created_at DESC);
`

// dbtx is satisfied by both *sql.DB and *sql.Tx, letting every CRUD method
// on SQLiteStore run unchanged whether it is the top-level handle or the
// transaction-scoped handle Atomic hands to its callback.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore implements ports.Store over a single SQLite connection.
// SQLite is single-writer, so the pool is capped at one connection exactly
// as the teacher's NewSQLiteStorage does.
type SQLiteStore struct {
	db  dbtx
	raw *sql.DB // non-nil only on the top-level handle; nil on a tx-scoped handle
}

// New opens (or creates) the database at path and applies the schema.
func New(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.New: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.New: apply schema: %w", err)
	}

	return &SQLiteStore{db: db, raw: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}

// Atomic runs fn against a handle scoped to a single SQLite transaction,
// committing on success and rolling back on error or panic. A nested
// Atomic call (fn itself holds a Store whose raw is nil) reuses the
// already-open transaction instead of opening a second one.
func (s *SQLiteStore) Atomic(ctx context.Context, fn func(ctx context.Context, tx ports.Store) error) error {
	if s.raw == nil {
		return fn(ctx, s)
	}

	tx, err := s.raw.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.Atomic: begin: %w", err)
	}

	scoped := &SQLiteStore{db: tx}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, scoped); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("storage.Atomic: %w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.Atomic: commit: %w", err)
	}
	return nil
}
