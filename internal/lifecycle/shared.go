package lifecycle

import (
	"context"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/ledger"
	"github.com/riskcore/tradecore/internal/money"
	"github.com/riskcore/tradecore/internal/ports"
)

// monthStartCapital loads every transaction for (accountID, currency) and
// projects the §4.2 month-start capital figure as of now.
func monthStartCapital(ctx context.Context, store ports.Store, accountID domain.ID, currency string, now time.Time) (money.Amount, error) {
	transactions, err := store.SearchTransactions(ctx, accountID, currency)
	if err != nil {
		return money.Zero, domain.WrapError(domain.ErrStorage, err, "lifecycle: load transactions for month-start capital")
	}
	statuses, err := ledger.TradeStatuses(ctx, store, transactions)
	if err != nil {
		return money.Zero, err
	}
	return ledger.MonthStartCapital(accountID, currency, transactions, statuses, now)
}

// recomputeBalances rebuilds and persists both the account balance and the
// trade balance affected by a trade's transactions, satisfying §4.3's
// write-discipline requirement that every side effect recompute derived
// state inside the same atomic unit that wrote the transactions.
func recomputeBalances(ctx context.Context, store ports.Store, trade domain.Trade, now time.Time) error {
	if _, err := ledger.Rebuild(ctx, store, trade.AccountID, trade.Currency); err != nil {
		return err
	}

	txs, err := store.SearchTradeTransactions(ctx, trade.ID)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, err, "lifecycle: load trade transactions")
	}
	closed := trade.Status.IsTerminal()
	projected, err := ledger.ProjectTradeBalance(trade.ID, txs, closed)
	if err != nil {
		return err
	}

	existing, err := store.FindTradeBalance(ctx, trade.ID)
	if err == nil {
		projected.ID = existing.ID
		projected.CreatedAt = existing.CreatedAt
	}
	projected.TradeID = trade.ID
	projected.UpdatedAt = now

	if _, err := store.UpsertTradeBalance(ctx, projected); err != nil {
		return domain.WrapError(domain.ErrStorage, err, "lifecycle: persist trade balance")
	}
	return nil
}
