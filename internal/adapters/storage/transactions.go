package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
)

func (s *SQLiteStore) SearchTransactions(ctx context.Context, accountID domain.ID, currency string) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, currency, amount, category, trade_id, created_at, updated_at, deleted_at
		FROM transactions WHERE account_id = ? AND currency = ? AND deleted_at IS NULL ORDER BY created_at`, accountID, currency)
	if err != nil {
		return nil, fmt.Errorf("storage.SearchTransactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (s *SQLiteStore) SearchTransactionsBefore(ctx context.Context, accountID domain.ID, currency string, before time.Time) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, currency, amount, category, trade_id, created_at, updated_at, deleted_at
		FROM transactions WHERE account_id = ? AND currency = ? AND created_at < ? AND deleted_at IS NULL ORDER BY created_at`,
		accountID, currency, before)
	if err != nil {
		return nil, fmt.Errorf("storage.SearchTransactionsBefore: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (s *SQLiteStore) SearchTradeTransactions(ctx context.Context, tradeID domain.ID) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, currency, amount, category, trade_id, created_at, updated_at, deleted_at
		FROM transactions WHERE trade_id = ? AND deleted_at IS NULL ORDER BY created_at`, tradeID)
	if err != nil {
		return nil, fmt.Errorf("storage.SearchTradeTransactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// CreateTransactions appends one or more ledger rows in a single batch.
// The ledger is append-only (§4.3); callers that need the batch committed
// atomically with balance updates wrap this call inside Store.Atomic.
func (s *SQLiteStore) CreateTransactions(ctx context.Context, transactions []domain.Transaction) error {
	for _, tx := range transactions {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO transactions (id, account_id, currency, amount, category, trade_id, created_at, updated_at, deleted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tx.ID, tx.AccountID, tx.Currency, tx.Amount, tx.Category.Kind().String(), tx.Category.TradeID(),
			tx.CreatedAt, tx.UpdatedAt, nullTime(tx.DeletedAt))
		if err != nil {
			return fmt.Errorf("storage.CreateTransactions: %w", err)
		}
	}
	return nil
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var categoryKind string
		var tradeID domain.ID
		var deletedAt sql.NullTime
		err := rows.Scan(&tx.ID, &tx.AccountID, &tx.Currency, &tx.Amount, &categoryKind, &tradeID, &tx.CreatedAt, &tx.UpdatedAt, &deletedAt)
		if err != nil {
			return nil, fmt.Errorf("storage: scan transaction: %w", err)
		}
		tx.Category, err = domain.ParseTransactionCategory(categoryKind, tradeID)
		if err != nil {
			return nil, fmt.Errorf("storage: scan transaction: %w", err)
		}
		tx.DeletedAt = fromNullTime(deletedAt)
		out = append(out, tx)
	}
	return out, rows.Err()
}
