package facade

import (
	"context"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
)

// CreateAccount persists a new account. Name uniqueness is enforced by
// the store (§3).
func (f *Facade) CreateAccount(ctx context.Context, account domain.Account, now time.Time) (domain.Account, error) {
	account.ID = domain.NewID()
	account.CreatedAt = now
	account.UpdatedAt = now
	return f.Store.CreateAccount(ctx, account)
}

// Account returns the account with the given ID.
func (f *Facade) Account(ctx context.Context, id domain.ID) (domain.Account, error) {
	return f.Store.FindAccount(ctx, id)
}

// AccountByName looks up an account by its case-insensitive unique name.
func (f *Facade) AccountByName(ctx context.Context, name string) (domain.Account, error) {
	return f.Store.FindAccountByName(ctx, name)
}

// Accounts returns every non-deleted account.
func (f *Facade) Accounts(ctx context.Context) ([]domain.Account, error) {
	return f.Store.SearchAccounts(ctx)
}
