package ports

import (
	"context"

	"github.com/riskcore/tradecore/internal/domain"
)

// TradeReader is the read capability set for Trade.
type TradeReader interface {
	FindTrade(ctx context.Context, id domain.ID) (domain.Trade, error)
	// SearchTrades returns trades for an account filtered by status.
	// An empty statuses slice returns every non-deleted trade.
	SearchTrades(ctx context.Context, accountID domain.ID, statuses []domain.TradeStatus) ([]domain.Trade, error)
}

// TradeWriter is the write capability set for Trade.
type TradeWriter interface {
	CreateTrade(ctx context.Context, trade domain.Trade) (domain.Trade, error)
	UpdateTrade(ctx context.Context, trade domain.Trade) (domain.Trade, error)
}
