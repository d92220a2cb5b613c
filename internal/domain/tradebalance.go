package domain

import (
	"time"

	"github.com/riskcore/tradecore/internal/money"
)

// TradeBalance is the derived per-trade snapshot of §3/§4.3.
type TradeBalance struct {
	ID               ID
	TradeID          ID
	Funding          money.Amount
	CapitalInMarket  money.Amount
	CapitalOutMarket money.Amount
	Taxed            money.Amount
	TotalPerformance money.Amount
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}
