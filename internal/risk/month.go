package risk

import "github.com/riskcore/tradecore/internal/money"

// MonthlyAllowance is the result of the §4.2 RiskPerMonth calculation: the
// absolute amount of capital still permitted to be put at risk this month,
// and that amount expressed as a ratio of beginning-of-month capital so it
// can be compared directly against a RiskPerTrade percentage (§4.2's
// "the monthly allowance computed above is ≥ p%").
type MonthlyAllowance struct {
	Amount money.Amount
	Ratio  money.Amount // Amount / beginningOfMonth; zero if beginningOfMonth <= 0
}

// ComputeMonthlyAllowance implements the §4.2 case analysis:
//
//   - performance := beginningOfMonth - currentBalance - capitalNotAtRisk
//   - performance == 0:        allowed = p% * beginningOfMonth
//   - performance < 0:         allowed = p% * (currentBalance + capitalNotAtRisk)
//   - 0 < performance < p%*beginningOfMonth: allowed = p%*beginningOfMonth - performance
//   - performance >= p%*beginningOfMonth:    allowed = 0
//
// capitalNotAtRisk is the account's current total_in_trade: capital
// already committed to open trades, which this month's envelope does not
// re-risk.
func ComputeMonthlyAllowance(percentage, beginningOfMonth, currentBalance, capitalNotAtRisk money.Amount) (MonthlyAllowance, error) {
	envelope, err := beginningOfMonth.Mul(percentage)
	if err != nil {
		return MonthlyAllowance{}, err
	}

	perf, err := beginningOfMonth.Sub(currentBalance)
	if err != nil {
		return MonthlyAllowance{}, err
	}
	perf, err = perf.Sub(capitalNotAtRisk)
	if err != nil {
		return MonthlyAllowance{}, err
	}

	var allowed money.Amount
	switch {
	case perf.IsZero():
		allowed = envelope
	case perf.IsNegative():
		base, err := currentBalance.Add(capitalNotAtRisk)
		if err != nil {
			return MonthlyAllowance{}, err
		}
		allowed, err = base.Mul(percentage)
		if err != nil {
			return MonthlyAllowance{}, err
		}
	case perf.LessThan(envelope):
		allowed, err = envelope.Sub(perf)
		if err != nil {
			return MonthlyAllowance{}, err
		}
	default:
		allowed = money.Zero
	}

	if allowed.IsNegative() {
		allowed = money.Zero
	}

	ratio := money.Zero
	if beginningOfMonth.IsPositive() {
		ratio, err = allowed.Div(beginningOfMonth)
		if err != nil {
			return MonthlyAllowance{}, err
		}
	}

	return MonthlyAllowance{Amount: allowed, Ratio: ratio}, nil
}
