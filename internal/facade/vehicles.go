package facade

import (
	"context"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
)

// CreateTradingVehicle persists a new traded instrument. ISIN uniqueness
// is enforced by the store (§3).
func (f *Facade) CreateTradingVehicle(ctx context.Context, vehicle domain.TradingVehicle, now time.Time) (domain.TradingVehicle, error) {
	vehicle.ID = domain.NewID()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now
	return f.Store.CreateTradingVehicle(ctx, vehicle)
}

// TradingVehicle returns the vehicle with the given ID.
func (f *Facade) TradingVehicle(ctx context.Context, id domain.ID) (domain.TradingVehicle, error) {
	return f.Store.FindTradingVehicle(ctx, id)
}

// TradingVehicleByISIN looks up a vehicle by its unique ISIN.
func (f *Facade) TradingVehicleByISIN(ctx context.Context, isin string) (domain.TradingVehicle, error) {
	return f.Store.FindTradingVehicleByISIN(ctx, isin)
}
