package domain

import (
	"time"

	"github.com/riskcore/tradecore/internal/money"
)

// Account is the top-level fiscal container (§3). It is mutated only at
// creation; name is unique case-insensitively per store.
type Account struct {
	ID                 ID
	Name               string
	Description        string
	Environment        Environment
	TaxesPercentage    money.Amount // e.g. 0.20 for 20%
	EarningsPercentage money.Amount // e.g. 0.10 for 10%
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// AccountBalance is one per (account, currency); a derived snapshot
// recomputed by the ledger on every transaction commit (§3/§4.3).
type AccountBalance struct {
	ID             ID
	AccountID      ID
	Currency       string
	TotalBalance   money.Amount
	TotalInTrade   money.Amount
	TotalAvailable money.Amount
	Taxed          money.Amount
	TotalEarnings  money.Amount
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}
