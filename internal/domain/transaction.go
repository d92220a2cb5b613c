package domain

import (
	"time"

	"github.com/riskcore/tradecore/internal/money"
)

// Transaction is an atomic, append-only ledger entry (§3). Amount is
// always positive; the category and the projection rules in
// internal/ledger determine its sign's effect on derived balances.
// UpdatedAt exists only to record a soft-delete timestamp change.
type Transaction struct {
	ID        ID
	AccountID ID
	Currency  string
	Amount    money.Amount
	Category  TransactionCategory
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewTransaction builds a Transaction with CreatedAt/UpdatedAt set to now
// and a fresh ID. amount must be positive; neither this function nor the
// internal/ledger builders check it, so callers validate it (for transfers,
// with internal/risk's CanTransfer* validators) before committing.
func NewTransaction(accountID ID, currency string, amount money.Amount, category TransactionCategory, now time.Time) Transaction {
	return Transaction{
		ID:        NewID(),
		AccountID: accountID,
		Currency:  currency,
		Amount:    amount,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
