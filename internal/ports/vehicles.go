package ports

import (
	"context"

	"github.com/riskcore/tradecore/internal/domain"
)

// TradingVehicleReader is the read capability set for TradingVehicle.
type TradingVehicleReader interface {
	FindTradingVehicle(ctx context.Context, id domain.ID) (domain.TradingVehicle, error)
	FindTradingVehicleByISIN(ctx context.Context, isin string) (domain.TradingVehicle, error)
}

// TradingVehicleWriter is the write capability set for TradingVehicle.
type TradingVehicleWriter interface {
	CreateTradingVehicle(ctx context.Context, vehicle domain.TradingVehicle) (domain.TradingVehicle, error)
}
