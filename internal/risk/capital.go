// Package risk implements the §4.2 risk & funding engine: validators
// that gate every capital-committing operation, and the calculators that
// size a trade before it is funded.
package risk

import (
	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
)

// RequiredCapital computes the per-trade capital requirement (§4.2).
// Long trades reserve the entry notional; short trades reserve the
// worst-case buy-back notional at the stop price (§9's short-funding
// rationale: the sale proceeds are not assumed, the repurchase cost is).
func RequiredCapital(category domain.TradeCategory, quantity uint64, entryPrice, stopPrice money.Amount) (money.Amount, error) {
	switch category {
	case domain.TradeCategoryLong:
		return entryPrice.MulInt64(int64(quantity))
	case domain.TradeCategoryShort:
		return stopPrice.MulInt64(int64(quantity))
	default:
		return money.Zero, domain.NewError(domain.ErrWrongTradeStatus, "unknown trade category %v", category)
	}
}

// PerShareRisk returns the worst-case loss per share: entry - stop for a
// long trade, stop - entry for a short one. It returns an error
// (ErrStopPriceNotValid) unless that value is strictly positive, so a stop
// equal to the entry or on the wrong side of it is rejected.
func PerShareRisk(category domain.TradeCategory, entryPrice, stopPrice money.Amount) (money.Amount, error) {
	var risk money.Amount
	var err error
	switch category {
	case domain.TradeCategoryLong:
		risk, err = entryPrice.Sub(stopPrice)
	case domain.TradeCategoryShort:
		risk, err = stopPrice.Sub(entryPrice)
	default:
		return money.Zero, domain.NewError(domain.ErrWrongTradeStatus, "unknown trade category %v", category)
	}
	if err != nil {
		return money.Zero, err
	}
	if !risk.IsPositive() {
		return money.Zero, domain.NewError(domain.ErrStopPriceNotValid,
			"per-share risk must be strictly positive, got entry=%s stop=%s", entryPrice, stopPrice)
	}
	return risk, nil
}

// TradeRisk returns per_share_risk * quantity, the worst-case loss of the
// whole trade (the glossary's "risk per trade").
func TradeRisk(category domain.TradeCategory, quantity uint64, entryPrice, stopPrice money.Amount) (money.Amount, error) {
	perShare, err := PerShareRisk(category, entryPrice, stopPrice)
	if err != nil {
		return money.Zero, err
	}
	return perShare.MulInt64(int64(quantity))
}
