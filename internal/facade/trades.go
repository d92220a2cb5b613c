package facade

import (
	"context"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
)

// CreateTrade opens a new trade in the New state from its three leg
// orders (§4.1).
func (f *Facade) CreateTrade(ctx context.Context, trade domain.Trade, entry, stop, target domain.Order, now time.Time) (domain.Trade, error) {
	return f.Lifecycle.CreateTrade(ctx, trade, entry, stop, target, now)
}

// FundTrade transitions New -> Funded, reserving capital against the
// account's active risk rules (§4.1, §4.2).
func (f *Facade) FundTrade(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error) {
	return f.Lifecycle.FundTrade(ctx, tradeID, now)
}

// SubmitTrade transitions Funded -> Submitted by handing the bracket
// order to the broker (§4.1).
func (f *Facade) SubmitTrade(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error) {
	return f.Lifecycle.SubmitTrade(ctx, tradeID, now)
}

// SyncTrade reconciles a trade against the broker's current view of its
// order legs, applying any fill side effects (§4.1).
func (f *Facade) SyncTrade(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error) {
	return f.Lifecycle.SyncTrade(ctx, tradeID, now)
}

// CloseTrade market-closes a Filled trade (§4.1).
func (f *Facade) CloseTrade(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error) {
	return f.Lifecycle.CloseTrade(ctx, tradeID, now)
}

// CancelFundedTrade cancels a New or Funded trade, reversing any reserved
// funding (§4.1).
func (f *Facade) CancelFundedTrade(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error) {
	return f.Lifecycle.CancelFundedTrade(ctx, tradeID, now)
}

// CancelSubmittedTrade cancels the resting broker orders of a Submitted
// trade and reverses its reserved funding (§4.1).
func (f *Facade) CancelSubmittedTrade(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error) {
	return f.Lifecycle.CancelSubmittedTrade(ctx, tradeID, now)
}

// ModifyStop replaces a Filled trade's stop price without widening risk
// (§4.2 CanModifyStop).
func (f *Facade) ModifyStop(ctx context.Context, tradeID domain.ID, newPrice money.Amount, now time.Time) (domain.Trade, error) {
	return f.Lifecycle.ModifyStop(ctx, tradeID, newPrice, now)
}

// ModifyTarget replaces a Filled trade's target price (§4.2 CanModifyTarget).
func (f *Facade) ModifyTarget(ctx context.Context, tradeID domain.ID, newPrice money.Amount, now time.Time) (domain.Trade, error) {
	return f.Lifecycle.ModifyTarget(ctx, tradeID, newPrice, now)
}

// Trade returns the trade with the given ID.
func (f *Facade) Trade(ctx context.Context, id domain.ID) (domain.Trade, error) {
	return f.Store.FindTrade(ctx, id)
}

// SearchTrades returns trades for an account filtered by status. An
// empty statuses slice returns every non-deleted trade.
func (f *Facade) SearchTrades(ctx context.Context, accountID domain.ID, statuses []domain.TradeStatus) ([]domain.Trade, error) {
	return f.Store.SearchTrades(ctx, accountID, statuses)
}

// TradeBalance returns the balance row owned by a trade.
func (f *Facade) TradeBalance(ctx context.Context, tradeID domain.ID) (domain.TradeBalance, error) {
	return f.Store.FindTradeBalance(ctx, tradeID)
}

// BrokerLogs returns the broker-reply audit trail for a trade, newest first.
func (f *Facade) BrokerLogs(ctx context.Context, tradeID domain.ID) ([]domain.BrokerLog, error) {
	return f.Store.ListBrokerLogs(ctx, tradeID)
}
