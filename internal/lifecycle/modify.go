package lifecycle

import (
	"context"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/ledger"
	"github.com/riskcore/tradecore/internal/money"
	"github.com/riskcore/tradecore/internal/ports"
	"github.com/riskcore/tradecore/internal/risk"
)

// ModifyStop replaces the stop leg's price, after validating the new
// price does not widen risk (§4.2 CanModifyStop, §4.1 Filled -> Filled).
func (l *Lifecycle) ModifyStop(ctx context.Context, tradeID domain.ID, newPrice money.Amount, now time.Time) (domain.Trade, error) {
	var result domain.Trade
	err := l.Store.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		trade, err := tx.FindTrade(ctx, tradeID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.ModifyStop: load trade")
		}
		stop, err := tx.FindOrder(ctx, trade.StopID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.ModifyStop: load stop order")
		}
		if err := risk.CanModifyStop(trade, stop.UnitPrice, newPrice); err != nil {
			return err
		}

		account, err := tx.FindAccount(ctx, trade.AccountID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.ModifyStop: load account")
		}
		brokerOrderID, err := l.Broker.ModifyStop(ctx, trade, account, newPrice)
		if err != nil {
			return domain.WrapError(domain.ErrBroker, err, "lifecycle.ModifyStop: broker modify")
		}

		stop.UnitPrice = newPrice
		stop.BrokerOrderID = brokerOrderID
		stop.UpdatedAt = now
		if _, err := tx.UpdateOrder(ctx, stop); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.ModifyStop: persist stop order")
		}

		trade.UpdatedAt = now
		updated, err := tx.UpdateTrade(ctx, trade)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.ModifyStop: touch trade")
		}
		result = updated
		return nil
	})
	return result, err
}

// ModifyTarget replaces the target leg's price (§4.2 CanModifyTarget,
// §4.1 Filled -> Filled).
func (l *Lifecycle) ModifyTarget(ctx context.Context, tradeID domain.ID, newPrice money.Amount, now time.Time) (domain.Trade, error) {
	var result domain.Trade
	err := l.Store.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		trade, err := tx.FindTrade(ctx, tradeID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.ModifyTarget: load trade")
		}
		if err := risk.CanModifyTarget(trade); err != nil {
			return err
		}

		target, err := tx.FindOrder(ctx, trade.TargetID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.ModifyTarget: load target order")
		}

		account, err := tx.FindAccount(ctx, trade.AccountID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.ModifyTarget: load account")
		}
		brokerOrderID, err := l.Broker.ModifyTarget(ctx, trade, account, newPrice)
		if err != nil {
			return domain.WrapError(domain.ErrBroker, err, "lifecycle.ModifyTarget: broker modify")
		}

		target.UnitPrice = newPrice
		target.BrokerOrderID = brokerOrderID
		target.UpdatedAt = now
		if _, err := tx.UpdateOrder(ctx, target); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.ModifyTarget: persist target order")
		}

		trade.UpdatedAt = now
		updated, err := tx.UpdateTrade(ctx, trade)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.ModifyTarget: touch trade")
		}
		result = updated
		return nil
	})
	return result, err
}

// CloseTrade transitions Filled -> Canceled (§4.1's transition table):
// the broker market-closes the open position, reusing the target order
// as the market exit, and the stop leg is canceled.
func (l *Lifecycle) CloseTrade(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error) {
	var result domain.Trade
	err := l.Store.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		trade, err := tx.FindTrade(ctx, tradeID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.CloseTrade: load trade")
		}
		if err := risk.CanClose(trade); err != nil {
			return err
		}

		account, err := tx.FindAccount(ctx, trade.AccountID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.CloseTrade: load account")
		}
		update, brokerLog, err := l.Broker.CloseTrade(ctx, trade, account)
		if err != nil {
			return domain.WrapError(domain.ErrBroker, err, "lifecycle.CloseTrade: broker close")
		}

		target, err := tx.FindOrder(ctx, trade.TargetID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.CloseTrade: load target order")
		}
		target.Status = update.Status
		target.FilledQuantity = update.FilledQuantity
		target.AverageFillPrice = update.AverageFillPrice
		target.ClosedAt = &now
		target.UpdatedAt = now
		if _, err := tx.UpdateOrder(ctx, target); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.CloseTrade: persist target order")
		}

		stop, err := tx.FindOrder(ctx, trade.StopID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.CloseTrade: load stop order")
		}
		stop.Status = domain.OrderStatusCanceled
		stop.CancelledAt = &now
		stop.UpdatedAt = now
		if _, err := tx.UpdateOrder(ctx, stop); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.CloseTrade: cancel stop order")
		}

		brokerLog.TradeID = trade.ID
		if _, err := tx.CreateBrokerLog(ctx, brokerLog); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.CloseTrade: persist broker log")
		}

		proceeds, err := update.AverageFillPrice.MulInt64(int64(update.FilledQuantity))
		if err != nil {
			return err
		}
		if proceeds.IsPositive() {
			if err := risk.CanTransferClose(proceeds); err != nil {
				return err
			}
			if err := tx.CreateTransactions(ctx, []domain.Transaction{
				ledger.CloseTarget(trade.AccountID, trade.ID, trade.Currency, proceeds, now),
				ledger.PaymentFromTrade(trade.AccountID, trade.ID, trade.Currency, proceeds, now),
			}); err != nil {
				return domain.WrapError(domain.ErrStorage, err, "lifecycle.CloseTrade: write proceeds")
			}
		}

		trade.Status = domain.TradeStatusCanceled
		trade.UpdatedAt = now
		updatedTrade, err := tx.UpdateTrade(ctx, trade)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.CloseTrade: update trade status")
		}

		if err := recomputeBalances(ctx, tx, updatedTrade, now); err != nil {
			return err
		}
		result = updatedTrade
		return nil
	})
	return result, err
}
