package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/riskcore/tradecore/internal/domain"
)

func (s *SQLiteStore) FindTrade(ctx context.Context, id domain.ID) (domain.Trade, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, account_id, trading_vehicle_id, entry_id, stop_id, target_id, trade_balance_id, category, status, currency, created_at, updated_at, deleted_at
		FROM trades WHERE id = ? AND deleted_at IS NULL`, id)
	return scanTrade(row)
}

// SearchTrades returns trades for an account, optionally filtered by
// status. An empty statuses slice returns every non-deleted trade,
// matching ports.TradeReader's contract.
func (s *SQLiteStore) SearchTrades(ctx context.Context, accountID domain.ID, statuses []domain.TradeStatus) ([]domain.Trade, error) {
	query := `
		SELECT id, account_id, trading_vehicle_id, entry_id, stop_id, target_id, trade_balance_id, category, status, currency, created_at, updated_at, deleted_at
		FROM trades WHERE account_id = ? AND deleted_at IS NULL`
	args := []any{accountID}

	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, st := range statuses {
			placeholders[i] = "?"
			args = append(args, st.String())
		}
		query += " AND status IN (" + strings.Join(placeholders, ",") + ")"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage.SearchTrades: %w", err)
	}
	defer rows.Close()

	var out []domain.Trade
	for rows.Next() {
		t, err := scanTradeRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CreateTrade(ctx context.Context, trade domain.Trade) (domain.Trade, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trades (id, account_id, trading_vehicle_id, entry_id, stop_id, target_id, trade_balance_id, category, status, currency, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trade.ID, trade.AccountID, trade.TradingVehicleID, trade.EntryID, trade.StopID, trade.TargetID,
		trade.TradeBalanceID, trade.Category.String(), trade.Status.String(), trade.Currency,
		trade.CreatedAt, trade.UpdatedAt, nullTime(trade.DeletedAt))
	if err != nil {
		return domain.Trade{}, fmt.Errorf("storage.CreateTrade: %w", err)
	}
	return trade, nil
}

func (s *SQLiteStore) UpdateTrade(ctx context.Context, trade domain.Trade) (domain.Trade, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE trades SET trade_balance_id = ?, status = ?, updated_at = ?, deleted_at = ? WHERE id = ?`,
		trade.TradeBalanceID, trade.Status.String(), trade.UpdatedAt, nullTime(trade.DeletedAt), trade.ID)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("storage.UpdateTrade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Trade{}, fmt.Errorf("storage.UpdateTrade: %w", err)
	}
	if n == 0 {
		return domain.Trade{}, domain.NewError(domain.ErrNotFound, "trade %s not found", trade.ID)
	}
	return trade, nil
}

func scanTrade(row *sql.Row) (domain.Trade, error) {
	return scanTradeRow(row)
}

func scanTradeRow(row rowScanner) (domain.Trade, error) {
	var t domain.Trade
	var category, status string
	var deletedAt sql.NullTime
	err := row.Scan(&t.ID, &t.AccountID, &t.TradingVehicleID, &t.EntryID, &t.StopID, &t.TargetID,
		&t.TradeBalanceID, &category, &status, &t.Currency, &t.CreatedAt, &t.UpdatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Trade{}, domain.NewError(domain.ErrNotFound, "trade not found")
	}
	if err != nil {
		return domain.Trade{}, fmt.Errorf("storage: scan trade: %w", err)
	}
	if t.Category, err = domain.ParseTradeCategory(category); err != nil {
		return domain.Trade{}, fmt.Errorf("storage: scan trade: %w", err)
	}
	if t.Status, err = domain.ParseTradeStatus(status); err != nil {
		return domain.Trade{}, fmt.Errorf("storage: scan trade: %w", err)
	}
	t.DeletedAt = fromNullTime(deletedAt)
	return t, nil
}
