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

// SyncTrade reconciles a trade against the broker's current view of its
// order legs (§4.1). It is the most subtle operation in the lifecycle:
//
//  1. fetch the broker's view of every leg,
//  2. overwrite only the mutable fields of the local Order records,
//  3. classify each leg as newly filled, newly unfilled, or unchanged,
//  4. derive the trade status with stop > target > entry priority,
//  5. apply ledger side effects only for the transitions just classified.
//
// A second sync of an already-settled trade finds every leg's status
// unchanged and applies no further side effects (idempotence, §8
// property 6).
func (l *Lifecycle) SyncTrade(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error) {
	var result domain.Trade
	err := l.Store.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		trade, err := tx.FindTrade(ctx, tradeID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.SyncTrade: load trade")
		}
		account, err := tx.FindAccount(ctx, trade.AccountID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.SyncTrade: load account")
		}

		_, updates, brokerLog, err := l.Broker.SyncTrade(ctx, trade, account)
		if err != nil {
			return domain.WrapError(domain.ErrBroker, err, "lifecycle.SyncTrade: broker sync")
		}

		entry, err := tx.FindOrder(ctx, trade.EntryID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.SyncTrade: load entry order")
		}
		stop, err := tx.FindOrder(ctx, trade.StopID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.SyncTrade: load stop order")
		}
		target, err := tx.FindOrder(ctx, trade.TargetID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.SyncTrade: load target order")
		}

		entryWasFilled, stopWasFilled, targetWasFilled := entry.IsFilled(), stop.IsFilled(), target.IsFilled()

		for _, u := range updates {
			switch u.BrokerOrderID {
			case entry.BrokerOrderID:
				applyBrokerUpdate(&entry, u, now)
			case stop.BrokerOrderID:
				applyBrokerUpdate(&stop, u, now)
			case target.BrokerOrderID:
				applyBrokerUpdate(&target, u, now)
			}
		}

		entryNowFilled, stopNowFilled, targetNowFilled := entry.IsFilled(), stop.IsFilled(), target.IsFilled()

		stopNewlyFilled := stopNowFilled && !stopWasFilled
		targetNewlyFilled := targetNowFilled && !targetWasFilled
		entryNewlyFilled := entryNowFilled && !entryWasFilled
		entryNewlyUnfilled := !entryNowFilled && entryWasFilled

		tb, err := tx.FindTradeBalance(ctx, trade.ID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.SyncTrade: load trade balance")
		}

		var txns []domain.Transaction
		switch {
		case stopNewlyFilled:
			closeAmount, err := stop.AverageFillPrice.MulInt64(int64(stop.FilledQuantity))
			if err != nil {
				return err
			}
			if err := risk.CanTransferClose(closeAmount); err != nil {
				return err
			}
			slipped := stopIsSlippage(trade.Category, stop.UnitPrice, stop.AverageFillPrice)
			if slipped {
				txns = append(txns, ledger.CloseSafetyStopSlippage(trade.AccountID, trade.ID, trade.Currency, closeAmount, now))
			} else {
				txns = append(txns, ledger.CloseSafetyStop(trade.AccountID, trade.ID, trade.Currency, closeAmount, now))
			}
			if closeAmount.IsPositive() {
				txns = append(txns, ledger.PaymentFromTrade(trade.AccountID, trade.ID, trade.Currency, closeAmount, now))
			}
			target.Status = domain.OrderStatusCanceled
			target.CancelledAt = &now
			target.UpdatedAt = now
			trade.Status = domain.TradeStatusClosedStopLoss

		case targetNewlyFilled:
			closeAmount, err := target.AverageFillPrice.MulInt64(int64(target.FilledQuantity))
			if err != nil {
				return err
			}
			if err := risk.CanTransferClose(closeAmount); err != nil {
				return err
			}
			txns = append(txns, ledger.CloseTarget(trade.AccountID, trade.ID, trade.Currency, closeAmount, now))
			if closeAmount.IsPositive() {
				txns = append(txns, ledger.PaymentFromTrade(trade.AccountID, trade.ID, trade.Currency, closeAmount, now))
			}
			stop.Status = domain.OrderStatusCanceled
			stop.CancelledAt = &now
			stop.UpdatedAt = now
			trade.Status = domain.TradeStatusClosedTarget

		case entryNewlyFilled:
			openAmount, err := entry.AverageFillPrice.MulInt64(int64(entry.FilledQuantity))
			if err != nil {
				return err
			}
			txns = append(txns, ledger.OpenTrade(trade.AccountID, trade.ID, trade.Currency, openAmount, now))
			residual, err := tb.Funding.Sub(openAmount)
			if err != nil {
				return err
			}
			if residual.IsPositive() {
				if err := risk.CanTransferFill(trade, residual, tb); err != nil {
					return err
				}
				txns = append(txns, ledger.PaymentFromTrade(trade.AccountID, trade.ID, trade.Currency, residual, now))
			}
			stop.Status = domain.OrderStatusAccepted
			stop.UpdatedAt = now
			target.Status = domain.OrderStatusAccepted
			target.UpdatedAt = now
			trade.Status = domain.TradeStatusFilled

		case entryNewlyUnfilled:
			trade.Status = domain.TradeStatusSubmitted

		default:
			trade.Status = projectTradeStatus(trade.Status, stopNowFilled, targetNowFilled, entryNowFilled)
		}

		if len(txns) > 0 {
			if err := tx.CreateTransactions(ctx, txns); err != nil {
				return domain.WrapError(domain.ErrStorage, err, "lifecycle.SyncTrade: write side-effect transactions")
			}
		}

		if _, err := tx.UpdateOrder(ctx, entry); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.SyncTrade: persist entry order")
		}
		if _, err := tx.UpdateOrder(ctx, stop); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.SyncTrade: persist stop order")
		}
		if _, err := tx.UpdateOrder(ctx, target); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.SyncTrade: persist target order")
		}

		brokerLog.TradeID = trade.ID
		if _, err := tx.CreateBrokerLog(ctx, brokerLog); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.SyncTrade: persist broker log")
		}

		trade.UpdatedAt = now
		updated, err := tx.UpdateTrade(ctx, trade)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.SyncTrade: update trade status")
		}

		if len(txns) > 0 {
			if err := recomputeBalances(ctx, tx, updated, now); err != nil {
				return err
			}
		}

		result = updated
		return nil
	})
	return result, err
}

func applyBrokerUpdate(order *domain.Order, u ports.BrokerOrderUpdate, now time.Time) {
	order.Status = u.Status
	order.FilledQuantity = u.FilledQuantity
	order.AverageFillPrice = u.AverageFillPrice
	order.UpdatedAt = now
	if u.Status == domain.OrderStatusFilled && order.FilledAt == nil {
		order.FilledAt = &now
	}
}

// stopIsSlippage reports whether the stop filled worse than its planned
// price: below plan for a long (sell) stop, above plan for a short (buy)
// stop (§4.1's "stop filled below plan" / mirrored for short).
func stopIsSlippage(category domain.TradeCategory, plannedStop, averageFill money.Amount) bool {
	switch category {
	case domain.TradeCategoryLong:
		return averageFill.LessThan(plannedStop)
	case domain.TradeCategoryShort:
		return averageFill.GreaterThan(plannedStop)
	default:
		return false
	}
}

// projectTradeStatus re-derives a trade's status from the legs' current
// filled state when this sync produced no new transition, with the same
// stop > target > entry priority used for live classification (§4.1 step 4).
func projectTradeStatus(current domain.TradeStatus, stopFilled, targetFilled, entryFilled bool) domain.TradeStatus {
	switch {
	case stopFilled:
		return domain.TradeStatusClosedStopLoss
	case targetFilled:
		return domain.TradeStatusClosedTarget
	case entryFilled:
		return domain.TradeStatusFilled
	default:
		return current
	}
}
