package facade

import (
	"context"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/ledger"
	"github.com/riskcore/tradecore/internal/money"
	"github.com/riskcore/tradecore/internal/risk"
)

// MaxQuantity computes a position size for a candidate entry/stop from
// the account's current balance and active risk rules (§4.2), using
// risk.MaxQuantity. The result is not checked against CanFund: capital is
// sized from the entry price for short trades too (FundTrade reserves the
// stop notional for them), and a RiskPerMonth rule only affects the result
// through its ratio when a RiskPerTrade rule is also active. FundTrade can
// therefore still reject a trade of the returned size.
func (f *Facade) MaxQuantity(ctx context.Context, accountID domain.ID, category domain.TradeCategory, currency string, entryPrice, stopPrice money.Amount, now time.Time) (int64, error) {
	balance, rules, monthStart, err := f.loadQuantityInputs(ctx, accountID, currency, now)
	if err != nil {
		return 0, err
	}

	in := risk.MaxQuantityInput{
		Category:       category,
		EntryPrice:     entryPrice,
		StopPrice:      stopPrice,
		TotalAvailable: balance.TotalAvailable,
	}

	for _, rule := range rules {
		switch rule.Kind {
		case domain.RuleKindRiskPerTrade:
			pct := rule.Percentage
			in.RiskPerTradePct = &pct
		case domain.RuleKindRiskPerMonth:
			ma, err := risk.ComputeMonthlyAllowance(rule.Percentage, monthStart, balance.TotalBalance, balance.TotalInTrade)
			if err != nil {
				return 0, err
			}
			in.MonthlyAllowance = &ma
		}
	}

	return risk.MaxQuantity(in)
}

func (f *Facade) loadQuantityInputs(ctx context.Context, accountID domain.ID, currency string, now time.Time) (domain.AccountBalance, []domain.Rule, money.Amount, error) {
	balance, err := f.Store.FindAccountBalance(ctx, accountID, currency)
	if err != nil {
		return domain.AccountBalance{}, nil, money.Zero, domain.WrapError(domain.ErrOverviewNotFound, err, "facade.MaxQuantity: load balance")
	}
	rules, err := f.Store.SearchActiveRules(ctx, accountID)
	if err != nil {
		return domain.AccountBalance{}, nil, money.Zero, domain.WrapError(domain.ErrStorage, err, "facade.MaxQuantity: load rules")
	}
	transactions, err := f.Store.SearchTransactions(ctx, accountID, currency)
	if err != nil {
		return domain.AccountBalance{}, nil, money.Zero, domain.WrapError(domain.ErrStorage, err, "facade.MaxQuantity: load transactions")
	}
	statuses, err := ledger.TradeStatuses(ctx, f.Store, transactions)
	if err != nil {
		return domain.AccountBalance{}, nil, money.Zero, err
	}
	monthStart, err := ledger.MonthStartCapital(accountID, currency, transactions, statuses, now)
	if err != nil {
		return domain.AccountBalance{}, nil, money.Zero, err
	}
	return balance, rules, monthStart, nil
}
