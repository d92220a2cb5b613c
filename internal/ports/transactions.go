package ports

import (
	"context"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
)

// TransactionReader is the read capability set for Transaction.
type TransactionReader interface {
	// SearchTransactions returns every transaction for (accountID, currency),
	// in creation order, excluding soft-deleted rows.
	SearchTransactions(ctx context.Context, accountID domain.ID, currency string) ([]domain.Transaction, error)
	// SearchTransactionsBefore returns transactions for (accountID, currency)
	// created strictly before the given instant.
	SearchTransactionsBefore(ctx context.Context, accountID domain.ID, currency string, before time.Time) ([]domain.Transaction, error)
	// SearchTradeTransactions returns every transaction tagged with a trade's ID.
	SearchTradeTransactions(ctx context.Context, tradeID domain.ID) ([]domain.Transaction, error)
}

// TransactionWriter is the write capability set for Transaction.
// Transactions are append-only; there is no Update. A single call appends
// one or more transactions; the call opens no transaction of its own, so
// the batch is atomic (with itself and with other writes) only when the
// call runs inside Store.Atomic.
type TransactionWriter interface {
	CreateTransactions(ctx context.Context, transactions []domain.Transaction) error
}
