package domain

import (
	"time"

	"github.com/riskcore/tradecore/internal/money"
)

// Order is one leg of a trade (entry, safety-stop, or target). It is
// owned by exactly one Trade for its lifetime (§3).
type Order struct {
	ID              ID
	TradingVehicleID ID
	UnitPrice       money.Amount
	Currency        string
	Quantity        uint64
	Category        OrderCategory
	Action          OrderAction
	Status          OrderStatus
	TimeInForce     TimeInForce
	FilledQuantity  uint64
	AverageFillPrice money.Amount
	BrokerOrderID    string // empty until submitted

	SubmittedAt *time.Time
	FilledAt    *time.Time
	ExpiredAt   *time.Time
	CancelledAt *time.Time
	ClosedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsFilled reports whether the order's broker-reported status is Filled.
func (o Order) IsFilled() bool {
	return o.Status == OrderStatusFilled
}

// Clone returns a value copy, so callers can snapshot an Order before
// mutating it in place when classifying a sync change set (§4.1).
func (o Order) Clone() Order {
	return o
}
