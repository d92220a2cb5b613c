package ports

import (
	"context"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
)

// OrderIDs carries the broker-assigned identifiers for a submitted
// bracket order's three legs (§4.5/§6).
type OrderIDs struct {
	EntryBrokerOrderID  string
	StopBrokerOrderID   string
	TargetBrokerOrderID string
}

// BrokerOrderUpdate is the broker's reported view of a single order leg,
// mapped into local fields by the caller (Lifecycle.SyncTrade, §4.1 step 2).
type BrokerOrderUpdate struct {
	BrokerOrderID    string
	Status           domain.OrderStatus
	FilledQuantity   uint64
	AverageFillPrice money.Amount
}

// Broker is the capability set a brokerage adapter must provide (§4.5).
// Every operation may fail; a failure is reported with an error and never
// mutates local state — the core treats the attempt as never-happened
// (§5 "Cancellation & timeouts").
type Broker interface {
	// SubmitTrade submits the bracket order (one parent entry, two OCO
	// exits) for a Funded trade and returns the broker-assigned leg IDs
	// plus an opaque log of the broker's reply.
	SubmitTrade(ctx context.Context, trade domain.Trade, account domain.Account) (domain.BrokerLog, OrderIDs, error)

	// SyncTrade fetches the broker's current view of every order leg for
	// this trade and returns it for the caller to reconcile (§4.1).
	SyncTrade(ctx context.Context, trade domain.Trade, account domain.Account) (domain.TradeStatus, []BrokerOrderUpdate, domain.BrokerLog, error)

	// CloseTrade market-closes a Filled trade's open position, reusing
	// the target order as the market exit, and returns the resulting
	// update for the target leg.
	CloseTrade(ctx context.Context, trade domain.Trade, account domain.Account) (BrokerOrderUpdate, domain.BrokerLog, error)

	// CancelTrade cancels every resting broker order for this trade.
	CancelTrade(ctx context.Context, trade domain.Trade, account domain.Account) error

	// ModifyStop replaces the stop leg's price and returns the new
	// broker-assigned order ID.
	ModifyStop(ctx context.Context, trade domain.Trade, account domain.Account, price money.Amount) (string, error)

	// ModifyTarget replaces the target leg's price and returns the new
	// broker-assigned order ID.
	ModifyTarget(ctx context.Context, trade domain.Trade, account domain.Account, price money.Amount) (string, error)
}
