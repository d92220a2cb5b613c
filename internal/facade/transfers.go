package facade

import (
	"context"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/ledger"
	"github.com/riskcore/tradecore/internal/money"
	"github.com/riskcore/tradecore/internal/ports"
	"github.com/riskcore/tradecore/internal/risk"
)

// Deposit records a Deposit transaction against an account's currency
// balance and recomputes it, after validating §4.2's can_transfer_deposit.
func (f *Facade) Deposit(ctx context.Context, accountID domain.ID, currency string, amount money.Amount, now time.Time) (domain.AccountBalance, error) {
	if err := risk.CanTransferDeposit(amount); err != nil {
		return domain.AccountBalance{}, err
	}
	return f.writeTransferAndRebuild(ctx, accountID, currency,
		ledger.Deposit(accountID, currency, amount, now))
}

// Withdraw records a Withdrawal transaction, after validating §4.2's
// can_transfer_withdraw against the account's current total_available.
func (f *Facade) Withdraw(ctx context.Context, accountID domain.ID, currency string, amount money.Amount, now time.Time) (domain.AccountBalance, error) {
	var result domain.AccountBalance
	err := f.Store.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		balance, err := tx.FindAccountBalance(ctx, accountID, currency)
		if err != nil {
			return domain.WrapError(domain.ErrOverviewNotFound, err, "facade.Withdraw: load balance")
		}
		if err := risk.CanTransferWithdraw(amount, balance.TotalAvailable); err != nil {
			return err
		}
		if err := tx.CreateTransactions(ctx, []domain.Transaction{
			ledger.Withdrawal(accountID, currency, amount, now),
		}); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "facade.Withdraw: write transaction")
		}
		rebuilt, err := ledger.Rebuild(ctx, tx, accountID, currency)
		if err != nil {
			return err
		}
		result = rebuilt
		return nil
	})
	return result, err
}

// WithdrawTax records a WithdrawalTax transaction releasing the taxed
// reserve out of the account.
func (f *Facade) WithdrawTax(ctx context.Context, accountID domain.ID, currency string, amount money.Amount, now time.Time) (domain.AccountBalance, error) {
	if !amount.IsPositive() {
		return domain.AccountBalance{}, domain.NewError(domain.ErrAmountMustBePositive, "amount %s must be positive", amount)
	}
	return f.writeTransferAndRebuild(ctx, accountID, currency,
		ledger.WithdrawalTax(accountID, currency, amount, now))
}

// WithdrawEarnings records a WithdrawalEarnings transaction releasing the
// earnings reserve out of the account.
func (f *Facade) WithdrawEarnings(ctx context.Context, accountID domain.ID, currency string, amount money.Amount, now time.Time) (domain.AccountBalance, error) {
	if !amount.IsPositive() {
		return domain.AccountBalance{}, domain.NewError(domain.ErrAmountMustBePositive, "amount %s must be positive", amount)
	}
	return f.writeTransferAndRebuild(ctx, accountID, currency,
		ledger.WithdrawalEarnings(accountID, currency, amount, now))
}

// writeTransferAndRebuild commits a single account-level transaction and
// recomputes the affected balance inside one atomic unit, the same
// write discipline internal/lifecycle applies to trade-scoped transactions
// (§4.3).
func (f *Facade) writeTransferAndRebuild(ctx context.Context, accountID domain.ID, currency string, txn domain.Transaction) (domain.AccountBalance, error) {
	var result domain.AccountBalance
	err := f.Store.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		if err := tx.CreateTransactions(ctx, []domain.Transaction{txn}); err != nil {
			return domain.WrapError(domain.ErrStorage, err, "facade: write transaction")
		}
		rebuilt, err := ledger.Rebuild(ctx, tx, accountID, currency)
		if err != nil {
			return err
		}
		result = rebuilt
		return nil
	})
	return result, err
}

// RebuildAccountBalance recomputes an account's balance for a currency
// entirely from its transaction log (§4.3's rebuild operation).
func (f *Facade) RebuildAccountBalance(ctx context.Context, accountID domain.ID, currency string) (domain.AccountBalance, error) {
	return ledger.Rebuild(ctx, f.Store, accountID, currency)
}

// AccountBalance returns the balance row for (accountID, currency).
func (f *Facade) AccountBalance(ctx context.Context, accountID domain.ID, currency string) (domain.AccountBalance, error) {
	return f.Store.FindAccountBalance(ctx, accountID, currency)
}

// AccountBalances returns every balance row for an account.
func (f *Facade) AccountBalances(ctx context.Context, accountID domain.ID) ([]domain.AccountBalance, error) {
	return f.Store.SearchAccountBalances(ctx, accountID)
}

// Transactions returns every transaction for (accountID, currency), in
// creation order.
func (f *Facade) Transactions(ctx context.Context, accountID domain.ID, currency string) ([]domain.Transaction, error) {
	return f.Store.SearchTransactions(ctx, accountID, currency)
}
