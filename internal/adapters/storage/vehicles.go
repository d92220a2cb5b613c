package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/riskcore/tradecore/internal/domain"
)

func (s *SQLiteStore) FindTradingVehicle(ctx context.Context, id domain.ID) (domain.TradingVehicle, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, symbol, isin, category, broker, created_at, updated_at, deleted_at
		FROM trading_vehicles WHERE id = ? AND deleted_at IS NULL`, id)
	return scanVehicle(row)
}

func (s *SQLiteStore) FindTradingVehicleByISIN(ctx context.Context, isin string) (domain.TradingVehicle, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, symbol, isin, category, broker, created_at, updated_at, deleted_at
		FROM trading_vehicles WHERE isin = ? AND deleted_at IS NULL`, isin)
	return scanVehicle(row)
}

func (s *SQLiteStore) CreateTradingVehicle(ctx context.Context, vehicle domain.TradingVehicle) (domain.TradingVehicle, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trading_vehicles (id, symbol, isin, category, broker, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		vehicle.ID, vehicle.Symbol, vehicle.ISIN, vehicle.Category.String(), vehicle.Broker,
		vehicle.CreatedAt, vehicle.UpdatedAt, nullTime(vehicle.DeletedAt))
	if err != nil {
		return domain.TradingVehicle{}, fmt.Errorf("storage.CreateTradingVehicle: %w", err)
	}
	return vehicle, nil
}

func scanVehicle(row *sql.Row) (domain.TradingVehicle, error) {
	var v domain.TradingVehicle
	var category string
	var deletedAt sql.NullTime
	err := row.Scan(&v.ID, &v.Symbol, &v.ISIN, &category, &v.Broker, &v.CreatedAt, &v.UpdatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TradingVehicle{}, domain.NewError(domain.ErrNotFound, "trading vehicle not found")
	}
	if err != nil {
		return domain.TradingVehicle{}, fmt.Errorf("storage: scan trading vehicle: %w", err)
	}
	if v.Category, err = domain.ParseVehicleCategory(category); err != nil {
		return domain.TradingVehicle{}, fmt.Errorf("storage: scan trading vehicle: %w", err)
	}
	v.DeletedAt = fromNullTime(deletedAt)
	return v, nil
}
