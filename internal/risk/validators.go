package risk

import (
	"sort"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
)

// CanFund implements §4.2's can_fund: the account must carry a balance
// row for the trade's currency with enough total_available, and every
// active rule, evaluated in ascending-priority order (RiskPerMonth
// before RiskPerTrade, via domain.RuleKind.Priority), must pass.
//
// monthStartCapital is the signed transaction sum described in §4.2,
// computed by the caller via ledger.MonthStartCapital.
func CanFund(category domain.TradeCategory, quantity uint64, entryPrice, stopPrice money.Amount, balance domain.AccountBalance, rules []domain.Rule, monthStartCapital money.Amount) error {
	required, err := RequiredCapital(category, quantity, entryPrice, stopPrice)
	if err != nil {
		return err
	}
	if balance.TotalAvailable.LessThan(required) {
		return domain.NewError(domain.ErrNotEnoughFunds,
			"required capital %s exceeds available %s", required, balance.TotalAvailable)
	}

	ordered := make([]domain.Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Priority() < ordered[j].Priority() })

	tradeRisk, err := TradeRisk(category, quantity, entryPrice, stopPrice)
	if err != nil {
		return err
	}

	var monthly *MonthlyAllowance
	for _, rule := range ordered {
		switch rule.Kind {
		case domain.RuleKindRiskPerMonth:
			ma, err := ComputeMonthlyAllowance(rule.Percentage, monthStartCapital, balance.TotalBalance, balance.TotalInTrade)
			if err != nil {
				return err
			}
			if tradeRisk.GreaterThan(ma.Amount) {
				return domain.NewError(domain.ErrRiskPerMonthExceeded,
					"trade risk %s exceeds monthly allowance %s", tradeRisk, ma.Amount)
			}
			monthly = &ma

		case domain.RuleKindRiskPerTrade:
			maxRisk, err := balance.TotalAvailable.Mul(rule.Percentage)
			if err != nil {
				return err
			}
			if tradeRisk.GreaterThan(maxRisk) {
				return domain.NewError(domain.ErrRiskPerTradeExceeded,
					"trade risk %s exceeds max risk %s", tradeRisk, maxRisk)
			}
			if monthly != nil && monthly.Ratio.LessThan(rule.Percentage) {
				return domain.NewError(domain.ErrRiskPerMonthExceeded,
					"monthly allowance ratio %s is below rule percentage %s", monthly.Ratio, rule.Percentage)
			}
		}
	}
	return nil
}

// CanSubmit implements §4.2's can_submit: the trade must be Funded.
func CanSubmit(trade domain.Trade) error {
	return requireStatus(trade, domain.TradeStatusFunded)
}

// CanClose implements §4.2's can_close: the trade must be Filled.
func CanClose(trade domain.Trade) error {
	return requireStatus(trade, domain.TradeStatusFilled)
}

// CanCancelFunded implements §4.2's can_cancel_funded. §4.1's transition
// table accepts this from New or Funded (a never-funded trade must still
// be cancelable), so both statuses pass.
func CanCancelFunded(trade domain.Trade) error {
	if trade.Status == domain.TradeStatusNew || trade.Status == domain.TradeStatusFunded {
		return nil
	}
	return domain.NewError(domain.ErrWrongTradeStatus,
		"trade %s is %s, expected New or Funded", trade.ID, trade.Status)
}

// CanCancelSubmitted implements §4.2's can_cancel_submitted.
func CanCancelSubmitted(trade domain.Trade) error {
	return requireStatus(trade, domain.TradeStatusSubmitted)
}

// CanModifyStop implements §4.2's can_modify_stop(p): the trade must be
// Filled and the new stop price must not widen risk — for a long trade
// the stop may only move up (p >= current), for a short trade only down
// (p <= current).
func CanModifyStop(trade domain.Trade, currentStopPrice, newStopPrice money.Amount) error {
	if err := requireStatus(trade, domain.TradeStatusFilled); err != nil {
		return err
	}
	switch trade.Category {
	case domain.TradeCategoryLong:
		if newStopPrice.LessThan(currentStopPrice) {
			return domain.NewError(domain.ErrStopPriceNotValid,
				"new stop %s would widen risk on a long trade below current stop %s", newStopPrice, currentStopPrice)
		}
	case domain.TradeCategoryShort:
		if newStopPrice.GreaterThan(currentStopPrice) {
			return domain.NewError(domain.ErrStopPriceNotValid,
				"new stop %s would widen risk on a short trade above current stop %s", newStopPrice, currentStopPrice)
		}
	default:
		return domain.NewError(domain.ErrWrongTradeStatus, "unknown trade category %v", trade.Category)
	}
	return nil
}

// CanModifyTarget implements §4.2's can_modify_target: the trade must be Filled.
func CanModifyTarget(trade domain.Trade) error {
	return requireStatus(trade, domain.TradeStatusFilled)
}

// CanTransferDeposit implements §4.2's can_transfer_deposit: amount > 0.
func CanTransferDeposit(amount money.Amount) error {
	return requirePositive(amount)
}

// CanTransferWithdraw implements §4.2's can_transfer_withdraw: amount > 0
// and the account's total_available covers it.
func CanTransferWithdraw(amount, totalAvailable money.Amount) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	if totalAvailable.LessThan(amount) {
		return domain.NewError(domain.ErrNotEnoughFunds,
			"withdrawal %s exceeds available %s", amount, totalAvailable)
	}
	return nil
}

// CanTransferFill implements §4.2's can_transfer_fill(total): the trade
// must be Submitted or Funded, total must be positive, and must not
// exceed the trade's reserved funding.
func CanTransferFill(trade domain.Trade, total money.Amount, balance domain.TradeBalance) error {
	if trade.Status != domain.TradeStatusSubmitted && trade.Status != domain.TradeStatusFunded {
		return domain.NewError(domain.ErrWrongTradeStatus,
			"trade %s is %s, expected Submitted or Funded", trade.ID, trade.Status)
	}
	if !total.IsPositive() {
		return domain.NewError(domain.ErrFillingMustBePositive, "fill total %s must be positive", total)
	}
	if total.GreaterThan(balance.Funding) {
		return domain.NewError(domain.ErrFillingMustBePositive,
			"fill total %s exceeds trade funding %s", total, balance.Funding)
	}
	return nil
}

// CanTransferFee implements §4.2's can_transfer_fee(fee): 0 < fee <= total_available.
func CanTransferFee(fee, totalAvailable money.Amount) error {
	if err := requirePositive(fee); err != nil {
		return err
	}
	if fee.GreaterThan(totalAvailable) {
		return domain.NewError(domain.ErrNotEnoughFunds,
			"fee %s exceeds available %s", fee, totalAvailable)
	}
	return nil
}

// CanTransferClose implements §4.2's can_transfer_close(total): total > 0.
func CanTransferClose(total money.Amount) error {
	return requirePositive(total)
}

func requireStatus(trade domain.Trade, want domain.TradeStatus) error {
	if trade.Status != want {
		return domain.NewError(domain.ErrWrongTradeStatus,
			"trade %s is %s, expected %s", trade.ID, trade.Status, want)
	}
	return nil
}

func requirePositive(amount money.Amount) error {
	if !amount.IsPositive() {
		return domain.NewError(domain.ErrAmountMustBePositive, "amount %s must be positive", amount)
	}
	return nil
}
