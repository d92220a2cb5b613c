package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
)

func (s *SQLiteStore) FindAccountBalance(ctx context.Context, accountID domain.ID, currency string) (domain.AccountBalance, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, account_id, currency, total_balance, total_in_trade, total_available, taxed, total_earnings, created_at, updated_at, deleted_at
		FROM accounts_balances WHERE account_id = ? AND currency = ? AND deleted_at IS NULL`, accountID, currency)
	return scanAccountBalance(row)
}

func (s *SQLiteStore) SearchAccountBalances(ctx context.Context, accountID domain.ID) ([]domain.AccountBalance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, currency, total_balance, total_in_trade, total_available, taxed, total_earnings, created_at, updated_at, deleted_at
		FROM accounts_balances WHERE account_id = ? AND deleted_at IS NULL ORDER BY currency`, accountID)
	if err != nil {
		return nil, fmt.Errorf("storage.SearchAccountBalances: %w", err)
	}
	defer rows.Close()

	var out []domain.AccountBalance
	for rows.Next() {
		b, err := scanAccountBalanceRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpsertAccountBalance overwrites the (accountID, currency) row, creating
// it on first write. The ledger recomputes the whole row from scratch on
// every commit (§4.3), so this is a pure replace, not a merge.
func (s *SQLiteStore) UpsertAccountBalance(ctx context.Context, balance domain.AccountBalance) (domain.AccountBalance, error) {
	if balance.ID.IsNil() {
		balance.ID = domain.NewID()
	}
	if balance.CreatedAt.IsZero() {
		balance.CreatedAt = time.Now()
	}
	balance.UpdatedAt = time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts_balances (id, account_id, currency, total_balance, total_in_trade, total_available, taxed, total_earnings, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, currency) DO UPDATE SET
			total_balance = excluded.total_balance,
			total_in_trade = excluded.total_in_trade,
			total_available = excluded.total_available,
			taxed = excluded.taxed,
			total_earnings = excluded.total_earnings,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at`,
		balance.ID, balance.AccountID, balance.Currency, balance.TotalBalance, balance.TotalInTrade,
		balance.TotalAvailable, balance.Taxed, balance.TotalEarnings, balance.CreatedAt, balance.UpdatedAt, nullTime(balance.DeletedAt))
	if err != nil {
		return domain.AccountBalance{}, fmt.Errorf("storage.UpsertAccountBalance: %w", err)
	}
	return s.FindAccountBalance(ctx, balance.AccountID, balance.Currency)
}

func (s *SQLiteStore) FindTradeBalance(ctx context.Context, tradeID domain.ID) (domain.TradeBalance, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, trade_id, funding, capital_in_market, capital_out_market, taxed, total_performance, created_at, updated_at, deleted_at
		FROM trades_balances WHERE trade_id = ? AND deleted_at IS NULL`, tradeID)
	var b domain.TradeBalance
	var deletedAt sql.NullTime
	err := row.Scan(&b.ID, &b.TradeID, &b.Funding, &b.CapitalInMarket, &b.CapitalOutMarket, &b.Taxed, &b.TotalPerformance, &b.CreatedAt, &b.UpdatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TradeBalance{}, domain.NewError(domain.ErrNotFound, "trade balance not found for trade %s", tradeID)
	}
	if err != nil {
		return domain.TradeBalance{}, fmt.Errorf("storage.FindTradeBalance: %w", err)
	}
	b.DeletedAt = fromNullTime(deletedAt)
	return b, nil
}

func (s *SQLiteStore) UpsertTradeBalance(ctx context.Context, balance domain.TradeBalance) (domain.TradeBalance, error) {
	if balance.ID.IsNil() {
		balance.ID = domain.NewID()
	}
	if balance.CreatedAt.IsZero() {
		balance.CreatedAt = time.Now()
	}
	balance.UpdatedAt = time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trades_balances (id, trade_id, funding, capital_in_market, capital_out_market, taxed, total_performance, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(trade_id) DO UPDATE SET
			funding = excluded.funding,
			capital_in_market = excluded.capital_in_market,
			capital_out_market = excluded.capital_out_market,
			taxed = excluded.taxed,
			total_performance = excluded.total_performance,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at`,
		balance.ID, balance.TradeID, balance.Funding, balance.CapitalInMarket, balance.CapitalOutMarket,
		balance.Taxed, balance.TotalPerformance, balance.CreatedAt, balance.UpdatedAt, nullTime(balance.DeletedAt))
	if err != nil {
		return domain.TradeBalance{}, fmt.Errorf("storage.UpsertTradeBalance: %w", err)
	}
	return s.FindTradeBalance(ctx, balance.TradeID)
}

func scanAccountBalance(row *sql.Row) (domain.AccountBalance, error) {
	return scanAccountBalanceRow(row)
}

func scanAccountBalanceRow(row rowScanner) (domain.AccountBalance, error) {
	var b domain.AccountBalance
	var deletedAt sql.NullTime
	err := row.Scan(&b.ID, &b.AccountID, &b.Currency, &b.TotalBalance, &b.TotalInTrade, &b.TotalAvailable, &b.Taxed, &b.TotalEarnings, &b.CreatedAt, &b.UpdatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AccountBalance{}, domain.NewError(domain.ErrNotFound, "account balance not found")
	}
	if err != nil {
		return domain.AccountBalance{}, fmt.Errorf("storage: scan account balance: %w", err)
	}
	b.DeletedAt = fromNullTime(deletedAt)
	return b, nil
}
