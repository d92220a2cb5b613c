package ports

import (
	"context"

	"github.com/riskcore/tradecore/internal/domain"
)

// AccountBalanceReader is the read capability set for AccountBalance.
type AccountBalanceReader interface {
	// FindAccountBalance returns the balance row for (accountID, currency).
	FindAccountBalance(ctx context.Context, accountID domain.ID, currency string) (domain.AccountBalance, error)
	// SearchAccountBalances returns every balance row for an account.
	SearchAccountBalances(ctx context.Context, accountID domain.ID) ([]domain.AccountBalance, error)
}

// AccountBalanceWriter is the write capability set for AccountBalance.
type AccountBalanceWriter interface {
	// UpsertAccountBalance creates or overwrites the (accountID, currency) balance row.
	UpsertAccountBalance(ctx context.Context, balance domain.AccountBalance) (domain.AccountBalance, error)
}

// TradeBalanceReader is the read capability set for TradeBalance.
type TradeBalanceReader interface {
	// FindTradeBalance returns the balance row owned by a trade.
	FindTradeBalance(ctx context.Context, tradeID domain.ID) (domain.TradeBalance, error)
}

// TradeBalanceWriter is the write capability set for TradeBalance.
type TradeBalanceWriter interface {
	// UpsertTradeBalance creates or overwrites a trade's balance row.
	UpsertTradeBalance(ctx context.Context, balance domain.TradeBalance) (domain.TradeBalance, error)
}
