package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/riskcore/tradecore/internal/domain"
)

func (s *SQLiteStore) FindOrder(ctx context.Context, id domain.ID) (domain.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, trading_vehicle_id, unit_price, currency, quantity, category, action, status, time_in_force,
		       filled_quantity, average_fill_price, broker_order_id,
		       submitted_at, filled_at, expired_at, cancelled_at, closed_at, created_at, updated_at, deleted_at
		FROM orders WHERE id = ? AND deleted_at IS NULL`, id)
	return scanOrder(row)
}

func (s *SQLiteStore) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (id, trading_vehicle_id, unit_price, currency, quantity, category, action, status, time_in_force,
		                     filled_quantity, average_fill_price, broker_order_id,
		                     submitted_at, filled_at, expired_at, cancelled_at, closed_at, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.TradingVehicleID, order.UnitPrice, order.Currency, order.Quantity,
		order.Category.String(), order.Action.String(), order.Status.String(), order.TimeInForce.String(),
		order.FilledQuantity, order.AverageFillPrice, order.BrokerOrderID,
		nullTime(order.SubmittedAt), nullTime(order.FilledAt), nullTime(order.ExpiredAt),
		nullTime(order.CancelledAt), nullTime(order.ClosedAt), order.CreatedAt, order.UpdatedAt, nullTime(order.DeletedAt))
	if err != nil {
		return domain.Order{}, fmt.Errorf("storage.CreateOrder: %w", err)
	}
	return order, nil
}

func (s *SQLiteStore) UpdateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders SET
			unit_price = ?, quantity = ?, status = ?, time_in_force = ?,
			filled_quantity = ?, average_fill_price = ?, broker_order_id = ?,
			submitted_at = ?, filled_at = ?, expired_at = ?, cancelled_at = ?, closed_at = ?,
			updated_at = ?, deleted_at = ?
		WHERE id = ?`,
		order.UnitPrice, order.Quantity, order.Status.String(), order.TimeInForce.String(),
		order.FilledQuantity, order.AverageFillPrice, order.BrokerOrderID,
		nullTime(order.SubmittedAt), nullTime(order.FilledAt), nullTime(order.ExpiredAt),
		nullTime(order.CancelledAt), nullTime(order.ClosedAt),
		order.UpdatedAt, nullTime(order.DeletedAt), order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("storage.UpdateOrder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Order{}, fmt.Errorf("storage.UpdateOrder: %w", err)
	}
	if n == 0 {
		return domain.Order{}, domain.NewError(domain.ErrNotFound, "order %s not found", order.ID)
	}
	return order, nil
}

func scanOrder(row *sql.Row) (domain.Order, error) {
	var o domain.Order
	var category, action, status, tif string
	var submittedAt, filledAt, expiredAt, cancelledAt, closedAt, deletedAt sql.NullTime
	err := row.Scan(&o.ID, &o.TradingVehicleID, &o.UnitPrice, &o.Currency, &o.Quantity,
		&category, &action, &status, &tif,
		&o.FilledQuantity, &o.AverageFillPrice, &o.BrokerOrderID,
		&submittedAt, &filledAt, &expiredAt, &cancelledAt, &closedAt, &o.CreatedAt, &o.UpdatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.NewError(domain.ErrNotFound, "order not found")
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("storage: scan order: %w", err)
	}

	if o.Category, err = domain.ParseOrderCategory(category); err != nil {
		return domain.Order{}, fmt.Errorf("storage: scan order: %w", err)
	}
	if o.Action, err = domain.ParseOrderAction(action); err != nil {
		return domain.Order{}, fmt.Errorf("storage: scan order: %w", err)
	}
	if o.Status, err = domain.ParseOrderStatus(status); err != nil {
		return domain.Order{}, fmt.Errorf("storage: scan order: %w", err)
	}
	if o.TimeInForce, err = domain.ParseTimeInForce(tif); err != nil {
		return domain.Order{}, fmt.Errorf("storage: scan order: %w", err)
	}

	o.SubmittedAt = fromNullTime(submittedAt)
	o.FilledAt = fromNullTime(filledAt)
	o.ExpiredAt = fromNullTime(expiredAt)
	o.CancelledAt = fromNullTime(cancelledAt)
	o.ClosedAt = fromNullTime(closedAt)
	o.DeletedAt = fromNullTime(deletedAt)
	return o, nil
}
