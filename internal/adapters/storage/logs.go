package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
)

// ListBrokerLogs returns the broker-reply audit trail for a trade, newest
// first, matching the teacher's "most recent activity on top" display
// convention.
func (s *SQLiteStore) ListBrokerLogs(ctx context.Context, tradeID domain.ID) ([]domain.BrokerLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, trade_id, log, created_at, updated_at, deleted_at
		FROM logs WHERE trade_id = ? AND deleted_at IS NULL ORDER BY created_at DESC`, tradeID)
	if err != nil {
		return nil, fmt.Errorf("storage.ListBrokerLogs: %w", err)
	}
	defer rows.Close()

	var out []domain.BrokerLog
	for rows.Next() {
		var l domain.BrokerLog
		var deletedAt sql.NullTime
		if err := rows.Scan(&l.ID, &l.TradeID, &l.Log, &l.CreatedAt, &l.UpdatedAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("storage: scan broker log: %w", err)
		}
		l.DeletedAt = fromNullTime(deletedAt)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CreateBrokerLog(ctx context.Context, log domain.BrokerLog) (domain.BrokerLog, error) {
	if log.ID.IsNil() {
		log.ID = domain.NewID()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
		log.UpdatedAt = log.CreatedAt
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO logs (id, trade_id, log, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		log.ID, log.TradeID, log.Log, log.CreatedAt, log.UpdatedAt, nullTime(log.DeletedAt))
	if err != nil {
		return domain.BrokerLog{}, fmt.Errorf("storage.CreateBrokerLog: %w", err)
	}
	return log, nil
}
