package lifecycle

import (
	"context"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/ledger"
	"github.com/riskcore/tradecore/internal/ports"
	"github.com/riskcore/tradecore/internal/risk"
)

// SubmitTrade transitions Funded -> Submitted: hands the bracket order to
// the broker and stores the assigned leg IDs plus an audit log (§4.1).
func (l *Lifecycle) SubmitTrade(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error) {
	var result domain.Trade
	err := l.Store.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		trade, err := tx.FindTrade(ctx, tradeID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.SubmitTrade: load trade")
		}
		if err := risk.CanSubmit(trade); err != nil {
			return err
		}

		account, err := tx.FindAccount(ctx, trade.AccountID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.SubmitTrade: load account")
		}

		brokerLog, ids, err := l.Broker.SubmitTrade(ctx, trade, account)
		if err != nil {
			return domain.WrapError(domain.ErrBroker, err, "lifecycle.SubmitTrade: broker submit")
		}

		if err := attachBrokerOrderID(ctx, tx, trade.EntryID, ids.EntryBrokerOrderID, domain.OrderStatusSubmitted, now); err != nil {
			return err
		}
		if err := attachBrokerOrderID(ctx, tx, trade.StopID, ids.StopBrokerOrderID, domain.OrderStatusSubmitted, now); err != nil {
			return err
		}
		if err := attachBrokerOrderID(ctx, tx, trade.TargetID, ids.TargetBrokerOrderID, domain.OrderStatusSubmitted, now); err != nil {
			return err
		}

		brokerLog.TradeID = trade.ID
		if _, err := tx.CreateBrokerLog(ctx, brokerLog); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.SubmitTrade: persist broker log")
		}

		trade.Status = domain.TradeStatusSubmitted
		trade.UpdatedAt = now
		updated, err := tx.UpdateTrade(ctx, trade)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.SubmitTrade: update trade status")
		}
		result = updated
		return nil
	})
	return result, err
}

func attachBrokerOrderID(ctx context.Context, tx ports.Store, orderID domain.ID, brokerOrderID string, status domain.OrderStatus, now time.Time) error {
	order, err := tx.FindOrder(ctx, orderID)
	if err != nil {
		return domain.WrapError(domain.ErrNotFound, err, "lifecycle: load order leg")
	}
	order.BrokerOrderID = brokerOrderID
	order.Status = status
	order.SubmittedAt = &now
	order.UpdatedAt = now
	if _, err := tx.UpdateOrder(ctx, order); err != nil {
		return domain.WrapError(domain.ErrStorage, err, "lifecycle: persist order leg")
	}
	return nil
}

// CancelFundedTrade transitions {New, Funded} -> Canceled, reversing any
// reserved funding with a PaymentFromTrade (§4.1).
func (l *Lifecycle) CancelFundedTrade(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error) {
	var result domain.Trade
	err := l.Store.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		trade, err := tx.FindTrade(ctx, tradeID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.CancelFundedTrade: load trade")
		}
		if err := risk.CanCancelFunded(trade); err != nil {
			return err
		}

		tb, err := tx.FindTradeBalance(ctx, trade.ID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.CancelFundedTrade: load trade balance")
		}

		if tb.Funding.IsPositive() {
			if err := tx.CreateTransactions(ctx, []domain.Transaction{
				ledger.PaymentFromTrade(trade.AccountID, trade.ID, trade.Currency, tb.Funding, now),
			}); err != nil {
				return domain.WrapError(domain.ErrStorage, err, "lifecycle.CancelFundedTrade: write reversal")
			}
		}

		trade.Status = domain.TradeStatusCanceled
		trade.UpdatedAt = now
		updated, err := tx.UpdateTrade(ctx, trade)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.CancelFundedTrade: update trade status")
		}

		if err := recomputeBalances(ctx, tx, updated, now); err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

// CancelSubmittedTrade transitions Submitted -> Canceled: cancels the
// resting broker orders, then reverses the reserved funding (§4.1).
func (l *Lifecycle) CancelSubmittedTrade(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error) {
	var result domain.Trade
	err := l.Store.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		trade, err := tx.FindTrade(ctx, tradeID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.CancelSubmittedTrade: load trade")
		}
		if err := risk.CanCancelSubmitted(trade); err != nil {
			return err
		}

		account, err := tx.FindAccount(ctx, trade.AccountID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.CancelSubmittedTrade: load account")
		}
		if err := l.Broker.CancelTrade(ctx, trade, account); err != nil {
			return domain.WrapError(domain.ErrBroker, err, "lifecycle.CancelSubmittedTrade: broker cancel")
		}

		tb, err := tx.FindTradeBalance(ctx, trade.ID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.CancelSubmittedTrade: load trade balance")
		}
		if tb.Funding.IsPositive() {
			if err := tx.CreateTransactions(ctx, []domain.Transaction{
				ledger.PaymentFromTrade(trade.AccountID, trade.ID, trade.Currency, tb.Funding, now),
			}); err != nil {
				return domain.WrapError(domain.ErrStorage, err, "lifecycle.CancelSubmittedTrade: write reversal")
			}
		}

		trade.Status = domain.TradeStatusCanceled
		trade.UpdatedAt = now
		updated, err := tx.UpdateTrade(ctx, trade)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.CancelSubmittedTrade: update trade status")
		}

		if err := recomputeBalances(ctx, tx, updated, now); err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}
