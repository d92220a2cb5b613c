package ledger

import (
	"time"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
)

// Deposit builds a Deposit transaction. amount must be positive; callers
// validate this via internal/risk.CanTransferDeposit before calling.
func Deposit(accountID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryDeposit, now)
}

// Withdrawal builds a Withdrawal transaction.
func Withdrawal(accountID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryWithdrawal, now)
}

// WithdrawalTax builds a WithdrawalTax transaction.
func WithdrawalTax(accountID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryWithdrawalTax, now)
}

// WithdrawalEarnings builds a WithdrawalEarnings transaction.
func WithdrawalEarnings(accountID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryWithdrawalEarnings, now)
}

// FundTrade builds a FundTrade transaction reserving capital against a trade.
func FundTrade(accountID, tradeID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryFundTrade(tradeID), now)
}

// PaymentFromTrade builds a PaymentFromTrade transaction, releasing
// reserved or realized capital back to total_available.
func PaymentFromTrade(accountID, tradeID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryPaymentFromTrade(tradeID), now)
}

// OpenTrade builds an OpenTrade transaction for the entry fill's notional.
func OpenTrade(accountID, tradeID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryOpenTrade(tradeID), now)
}

// CloseTarget builds a CloseTarget transaction for a target-hit exit.
func CloseTarget(accountID, tradeID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryCloseTarget(tradeID), now)
}

// CloseSafetyStop builds a CloseSafetyStop transaction for an at-plan stop-out.
func CloseSafetyStop(accountID, tradeID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryCloseSafetyStop(tradeID), now)
}

// CloseSafetyStopSlippage builds a CloseSafetyStopSlippage transaction for
// a stop-out filled below the planned stop price.
func CloseSafetyStopSlippage(accountID, tradeID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryCloseSafetyStopSlippage(tradeID), now)
}

// FeeOpen builds a FeeOpen transaction.
func FeeOpen(accountID, tradeID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryFeeOpen(tradeID), now)
}

// FeeClose builds a FeeClose transaction.
func FeeClose(accountID, tradeID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryFeeClose(tradeID), now)
}

// PaymentTax builds a PaymentTax transaction.
func PaymentTax(accountID, tradeID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryPaymentTax(tradeID), now)
}

// PaymentEarnings builds a PaymentEarnings transaction.
func PaymentEarnings(accountID, tradeID domain.ID, currency string, amount money.Amount, now time.Time) domain.Transaction {
	return domain.NewTransaction(accountID, currency, amount, domain.CategoryPaymentEarnings(tradeID), now)
}
