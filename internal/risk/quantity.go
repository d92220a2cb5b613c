package risk

import (
	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
)

// MaxQuantityInput bundles the inputs to the §4.2 maximum-quantity
// calculator: the account's available capital, the candidate entry/stop
// prices, and the active rules (already resolved into an active
// RiskPerTrade percentage and, if present, the current monthly allowance).
type MaxQuantityInput struct {
	Category         domain.TradeCategory
	EntryPrice       money.Amount
	StopPrice        money.Amount
	TotalAvailable   money.Amount
	RiskPerTradePct  *money.Amount     // nil if no active RiskPerTrade rule
	MonthlyAllowance *MonthlyAllowance // nil if no active RiskPerMonth rule
}

// MaxQuantity computes a position size by the §4.2 sizing formulas. In
// the absence of a RiskPerTrade rule, q = floor(total available / entry
// price), for short trades as well. With a RiskPerTrade rule, q is cut to
// floor(total available * p / per-share risk) when the unconstrained size
// would risk more than that. A monthly allowance whose ratio is below the
// per-trade percentage caps q at zero; a monthly allowance without a
// RiskPerTrade rule does not affect q.
func MaxQuantity(in MaxQuantityInput) (int64, error) {
	perShareRisk, err := PerShareRisk(in.Category, in.EntryPrice, in.StopPrice)
	if err != nil {
		return 0, err
	}

	baseQ, err := in.TotalAvailable.FloorDiv(in.EntryPrice)
	if err != nil {
		return 0, err
	}

	q := baseQ
	if in.RiskPerTradePct != nil {
		maxRisk, err := in.TotalAvailable.Mul(*in.RiskPerTradePct)
		if err != nil {
			return 0, err
		}
		baseRisk, err := money.NewFromInt(baseQ).Mul(perShareRisk)
		if err != nil {
			return 0, err
		}
		if maxRisk.GreaterThanOrEqual(baseRisk) {
			q = baseQ
		} else {
			riskBudget, err := in.TotalAvailable.Mul(*in.RiskPerTradePct)
			if err != nil {
				return 0, err
			}
			q, err = riskBudget.FloorDiv(perShareRisk)
			if err != nil {
				return 0, err
			}
		}
	}

	if in.RiskPerTradePct != nil && in.MonthlyAllowance != nil &&
		in.MonthlyAllowance.Ratio.LessThan(*in.RiskPerTradePct) {
		q = 0
	}

	return q, nil
}
