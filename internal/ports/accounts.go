package ports

import (
	"context"

	"github.com/riskcore/tradecore/internal/domain"
)

// AccountReader is the read capability set for Account (§4.5/§6).
type AccountReader interface {
	// FindAccount returns the account with the given ID, excluding soft-deleted rows.
	FindAccount(ctx context.Context, id domain.ID) (domain.Account, error)
	// FindAccountByName looks up an account by its case-insensitive unique name.
	FindAccountByName(ctx context.Context, name string) (domain.Account, error)
	// SearchAccounts returns all non-deleted accounts.
	SearchAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter is the write capability set for Account.
type AccountWriter interface {
	// CreateAccount persists a newly created account.
	CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error)
}
