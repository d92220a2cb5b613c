// Package ledger implements the append-only, transaction-categorized
// double-entry record of §3/§4.3: transaction construction and the
// derived-balance projections recomputed on every mutation.
package ledger

import (
	"fmt"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
)

// fundInTradeStatuses are the statuses where a trade's FundTrade amount
// still represents locked capital: before the entry has filled, the
// reservation is the only figure on record (§4.3).
var fundInTradeStatuses = map[domain.TradeStatus]bool{
	domain.TradeStatusFunded:    true,
	domain.TradeStatusSubmitted: true,
}

// openInTradeStatuses are the statuses where a trade's OpenTrade amount
// has superseded its FundTrade reservation as the figure representing
// locked capital — counting both would double the same dollars.
var openInTradeStatuses = map[domain.TradeStatus]bool{
	domain.TradeStatusFilled: true,
}

// ProjectAccountBalance recomputes an AccountBalance from the full
// transaction log of one (account, currency), per the §4.3 contribution
// table. tradeStatus supplies the current status of every trade referenced
// by a FundTrade/OpenTrade transaction, needed for total_in_trade.
//
// A rebuild from this function must be bit-equivalent to any incrementally
// maintained value (§3 invariant, §8 property 1).
func ProjectAccountBalance(accountID domain.ID, currency string, transactions []domain.Transaction, tradeStatus map[domain.ID]domain.TradeStatus) (domain.AccountBalance, error) {
	total := money.Zero
	available := money.Zero
	inTrade := money.Zero
	taxed := money.Zero
	earnings := money.Zero

	var err error
	for _, tx := range transactions {
		if tx.DeletedAt != nil {
			continue
		}
		k := tx.Category.Kind()

		switch k {
		case domain.TxDeposit:
			total, err = total.Add(tx.Amount)
			available, _ = available.Add(tx.Amount)
		case domain.TxWithdrawal:
			total, err = total.Sub(tx.Amount)
			available, _ = available.Sub(tx.Amount)
		case domain.TxWithdrawalTax:
			total, err = total.Sub(tx.Amount)
			taxed, _ = taxed.Sub(tx.Amount)
		case domain.TxWithdrawalEarnings:
			total, err = total.Sub(tx.Amount)
			earnings, _ = earnings.Sub(tx.Amount)
		case domain.TxFeeOpen, domain.TxFeeClose:
			total, err = total.Sub(tx.Amount)
			available, _ = available.Sub(tx.Amount)
		case domain.TxOpenTrade:
			total, err = total.Sub(tx.Amount)
			if openInTradeStatuses[tradeStatus[tx.Category.TradeID()]] {
				inTrade, _ = inTrade.Add(tx.Amount)
			}
		case domain.TxCloseTarget, domain.TxCloseSafetyStop, domain.TxCloseSafetyStopSlippage:
			total, err = total.Add(tx.Amount)
		case domain.TxFundTrade:
			available, _ = available.Sub(tx.Amount)
			if fundInTradeStatuses[tradeStatus[tx.Category.TradeID()]] {
				inTrade, _ = inTrade.Add(tx.Amount)
			}
		case domain.TxPaymentFromTrade:
			available, _ = available.Add(tx.Amount)
		case domain.TxPaymentTax:
			taxed, _ = taxed.Add(tx.Amount)
		case domain.TxPaymentEarnings:
			earnings, _ = earnings.Add(tx.Amount)
		default:
			return domain.AccountBalance{}, fmt.Errorf("ledger.ProjectAccountBalance: unknown category kind %v", k)
		}
		if err != nil {
			return domain.AccountBalance{}, domain.WrapError(domain.ErrArithmeticOverflow, err, "projecting account balance")
		}
	}

	if available.IsNegative() {
		return domain.AccountBalance{}, domain.NewError(domain.ErrArithmeticOverflow,
			"total_available projected negative (%s) for account %s currency %s", available, accountID, currency)
	}

	return domain.AccountBalance{
		AccountID:      accountID,
		Currency:       currency,
		TotalBalance:   total,
		TotalInTrade:   inTrade,
		TotalAvailable: available,
		Taxed:          taxed,
		TotalEarnings:  earnings,
	}, nil
}

// ProjectTradeBalance recomputes a TradeBalance from the transactions
// tagged with one trade's ID, per §4.3.
func ProjectTradeBalance(tradeID domain.ID, transactions []domain.Transaction, closed bool) (domain.TradeBalance, error) {
	funding := money.Zero
	openTrade := money.Zero
	closeSum := money.Zero
	paymentFromTrade := money.Zero
	feeOpen := money.Zero
	feeClose := money.Zero
	paymentTax := money.Zero

	var err error
	for _, tx := range transactions {
		if tx.DeletedAt != nil || tx.Category.TradeID() != tradeID {
			continue
		}
		switch tx.Category.Kind() {
		case domain.TxFundTrade:
			funding, err = funding.Add(tx.Amount)
		case domain.TxOpenTrade:
			openTrade, err = openTrade.Add(tx.Amount)
		case domain.TxCloseTarget, domain.TxCloseSafetyStop, domain.TxCloseSafetyStopSlippage:
			closeSum, err = closeSum.Add(tx.Amount)
		case domain.TxPaymentFromTrade:
			paymentFromTrade, err = paymentFromTrade.Add(tx.Amount)
		case domain.TxFeeOpen:
			feeOpen, err = feeOpen.Add(tx.Amount)
		case domain.TxFeeClose:
			feeClose, err = feeClose.Add(tx.Amount)
		case domain.TxPaymentTax:
			paymentTax, err = paymentTax.Add(tx.Amount)
		}
		if err != nil {
			return domain.TradeBalance{}, domain.WrapError(domain.ErrArithmeticOverflow, err, "projecting trade balance")
		}
	}

	capitalInMarket := money.Zero
	if !closed {
		capitalInMarket, _ = openTrade.Sub(closeSum)
	}

	capitalOutMarket, err := funding.Sub(paymentFromTrade)
	if err != nil {
		return domain.TradeBalance{}, err
	}
	capitalOutMarket, err = capitalOutMarket.Sub(openTrade)
	if err != nil {
		return domain.TradeBalance{}, err
	}
	capitalOutMarket, err = capitalOutMarket.Add(closeSum)
	if err != nil {
		return domain.TradeBalance{}, err
	}

	performance, err := closeSum.Sub(openTrade)
	if err != nil {
		return domain.TradeBalance{}, err
	}
	performance, err = performance.Sub(feeOpen)
	if err != nil {
		return domain.TradeBalance{}, err
	}
	performance, err = performance.Sub(feeClose)
	if err != nil {
		return domain.TradeBalance{}, err
	}
	performance, err = performance.Sub(paymentTax)
	if err != nil {
		return domain.TradeBalance{}, err
	}

	return domain.TradeBalance{
		TradeID:          tradeID,
		Funding:          funding,
		CapitalInMarket:  capitalInMarket,
		CapitalOutMarket: capitalOutMarket,
		Taxed:            paymentTax,
		TotalPerformance: performance,
	}, nil
}

// MonthStartCapital computes the signed sum of every transaction
// timestamped strictly before the first of the current month, excluding
// tax transactions, with the same signs used in the balance projection
// (§4.2's RiskPerMonth definition).
func MonthStartCapital(accountID domain.ID, currency string, transactions []domain.Transaction, tradeStatus map[domain.ID]domain.TradeStatus, asOf time.Time) (money.Amount, error) {
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.UTC().Location())
	var before []domain.Transaction
	for _, tx := range transactions {
		if tx.CreatedAt.Before(monthStart) && tx.Category.Kind() != domain.TxPaymentTax && tx.Category.Kind() != domain.TxWithdrawalTax {
			before = append(before, tx)
		}
	}
	bal, err := ProjectAccountBalance(accountID, currency, before, tradeStatus)
	if err != nil {
		return money.Zero, err
	}
	return bal.TotalBalance, nil
}
