package ledger

import (
	"context"
	"fmt"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/ports"
)

// Rebuild recomputes an AccountBalance entirely from the transaction log
// and persists it, supplementing §3's "AccountBalance... may be rebuilt
// from Transactions and Orders alone" requirement with a callable
// operation (SPEC_FULL.md's balance-rebuild command).
//
// A rebuild must be bit-equivalent to any incrementally maintained value
// (§8 property 1); Rebuild and the incremental path in internal/lifecycle
// both funnel through ProjectAccountBalance, so they cannot diverge.
func Rebuild(ctx context.Context, store ports.Store, accountID domain.ID, currency string) (domain.AccountBalance, error) {
	transactions, err := store.SearchTransactions(ctx, accountID, currency)
	if err != nil {
		return domain.AccountBalance{}, domain.WrapError(domain.ErrStorage, err, "ledger.Rebuild: load transactions")
	}

	statuses, err := TradeStatuses(ctx, store, transactions)
	if err != nil {
		return domain.AccountBalance{}, err
	}

	projected, err := ProjectAccountBalance(accountID, currency, transactions, statuses)
	if err != nil {
		return domain.AccountBalance{}, err
	}

	existing, err := store.FindAccountBalance(ctx, accountID, currency)
	if err == nil {
		projected.ID = existing.ID
		projected.CreatedAt = existing.CreatedAt
	}

	saved, err := store.UpsertAccountBalance(ctx, projected)
	if err != nil {
		return domain.AccountBalance{}, domain.WrapError(domain.ErrStorage, err, "ledger.Rebuild: persist balance")
	}
	return saved, nil
}

// TradeStatuses loads the current status of every trade referenced by the
// given transactions, needed for the total_in_trade projection. Exported
// so callers outside this package (internal/lifecycle, internal/risk
// callers assembling a month-start projection) can reuse it without
// duplicating the lookup.
func TradeStatuses(ctx context.Context, store ports.TradeReader, transactions []domain.Transaction) (map[domain.ID]domain.TradeStatus, error) {
	seen := make(map[domain.ID]bool)
	statuses := make(map[domain.ID]domain.TradeStatus)
	for _, tx := range transactions {
		id := tx.Category.TradeID()
		if id.IsNil() || seen[id] {
			continue
		}
		seen[id] = true
		trade, err := store.FindTrade(ctx, id)
		if err != nil {
			return nil, domain.WrapError(domain.ErrStorage, err, fmt.Sprintf("ledger.Rebuild: load trade %s", id))
		}
		statuses[id] = trade.Status
	}
	return statuses, nil
}
