package ports

import (
	"context"

	"github.com/riskcore/tradecore/internal/domain"
)

// OrderReader is the read capability set for Order.
type OrderReader interface {
	FindOrder(ctx context.Context, id domain.ID) (domain.Order, error)
}

// OrderWriter is the write capability set for Order.
type OrderWriter interface {
	// CreateOrder persists a newly created order leg.
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	// UpdateOrder overwrites the mutable fields of an existing order leg.
	UpdateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
}
