// Package lifecycle implements the ten-state trade state machine of §4.1:
// funding, submission, broker-sync reconciliation, closing, cancellation,
// and leg modification, each a single atomic unit over a ports.Store.
package lifecycle

import (
	"context"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/ledger"
	"github.com/riskcore/tradecore/internal/ports"
	"github.com/riskcore/tradecore/internal/risk"
)

// Lifecycle drives trade transitions against a storage backend and a
// brokerage adapter. It holds no state of its own; every operation
// re-reads what it needs from Store inside one Atomic unit.
type Lifecycle struct {
	Store  ports.Store
	Broker ports.Broker
}

// New builds a Lifecycle bound to a store and broker.
func New(store ports.Store, broker ports.Broker) *Lifecycle {
	return &Lifecycle{Store: store, Broker: broker}
}

// CreateTrade persists a New trade and its three leg orders, after
// validating the entry/stop/target ordering invariant (§3/§8).
func (l *Lifecycle) CreateTrade(ctx context.Context, trade domain.Trade, entry, stop, target domain.Order, now time.Time) (domain.Trade, error) {
	if err := trade.ValidateLegs(entry, stop, target); err != nil {
		return domain.Trade{}, err
	}

	trade.ID = domain.NewID()
	entry.ID, stop.ID, target.ID = domain.NewID(), domain.NewID(), domain.NewID()
	trade.Status = domain.TradeStatusNew
	trade.CreatedAt = now
	trade.UpdatedAt = now

	var result domain.Trade
	err := l.Store.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		createdEntry, err := tx.CreateOrder(ctx, entry)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.CreateTrade: create entry order")
		}
		createdStop, err := tx.CreateOrder(ctx, stop)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.CreateTrade: create stop order")
		}
		createdTarget, err := tx.CreateOrder(ctx, target)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.CreateTrade: create target order")
		}

		trade.EntryID = createdEntry.ID
		trade.StopID = createdStop.ID
		trade.TargetID = createdTarget.ID

		created, err := tx.CreateTrade(ctx, trade)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.CreateTrade: create trade")
		}

		tb, err := tx.UpsertTradeBalance(ctx, domain.TradeBalance{TradeID: created.ID})
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.CreateTrade: create trade balance")
		}
		created.TradeBalanceID = tb.ID

		updated, err := tx.UpdateTrade(ctx, created)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.CreateTrade: attach trade balance id")
		}
		result = updated
		return nil
	})
	return result, err
}

// FundTrade transitions New -> Funded: validates capital requirements and
// active rules via internal/risk, writes the FundTrade transaction, and
// recomputes both the account and trade balances (§4.1, §4.3 write
// discipline).
func (l *Lifecycle) FundTrade(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error) {
	var result domain.Trade
	err := l.Store.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		trade, err := tx.FindTrade(ctx, tradeID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.FundTrade: load trade")
		}
		if trade.Status != domain.TradeStatusNew {
			return domain.NewError(domain.ErrWrongTradeStatus,
				"trade %s is %s, expected New to fund", trade.ID, trade.Status)
		}

		entry, err := tx.FindOrder(ctx, trade.EntryID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.FundTrade: load entry order")
		}
		stop, err := tx.FindOrder(ctx, trade.StopID)
		if err != nil {
			return domain.WrapError(domain.ErrNotFound, err, "lifecycle.FundTrade: load stop order")
		}

		balance, err := tx.FindAccountBalance(ctx, trade.AccountID, trade.Currency)
		if err != nil {
			return domain.NewError(domain.ErrOverviewNotFound,
				"no balance row for account %s currency %s", trade.AccountID, trade.Currency)
		}

		rules, err := tx.SearchActiveRules(ctx, trade.AccountID)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.FundTrade: load rules")
		}

		monthStart, err := monthStartCapital(ctx, tx, trade.AccountID, trade.Currency, now)
		if err != nil {
			return err
		}

		if err := risk.CanFund(trade.Category, entry.Quantity, entry.UnitPrice, stop.UnitPrice, balance, rules, monthStart); err != nil {
			return err
		}

		required, err := risk.RequiredCapital(trade.Category, entry.Quantity, entry.UnitPrice, stop.UnitPrice)
		if err != nil {
			return err
		}

		if err := tx.CreateTransactions(ctx, []domain.Transaction{
			ledger.FundTrade(trade.AccountID, trade.ID, trade.Currency, required, now),
		}); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.FundTrade: write transaction")
		}

		trade.Status = domain.TradeStatusFunded
		trade.UpdatedAt = now
		updated, err := tx.UpdateTrade(ctx, trade)
		if err != nil {
			return domain.WrapError(domain.ErrStorage, err, "lifecycle.FundTrade: update trade status")
		}

		if err := recomputeBalances(ctx, tx, updated, now); err != nil {
			return err
		}

		result = updated
		return nil
	})
	return result, err
}

