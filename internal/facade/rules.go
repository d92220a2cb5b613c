package facade

import (
	"context"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
)

// CreateRule persists a new risk rule on an account.
func (f *Facade) CreateRule(ctx context.Context, rule domain.Rule, now time.Time) (domain.Rule, error) {
	rule.ID = domain.NewID()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	return f.Store.CreateRule(ctx, rule)
}

// Rule returns the rule with the given ID.
func (f *Facade) Rule(ctx context.Context, id domain.ID) (domain.Rule, error) {
	return f.Store.FindRule(ctx, id)
}

// ActiveRules returns every active rule for an account, ordered by
// ascending priority (§3).
func (f *Facade) ActiveRules(ctx context.Context, accountID domain.ID) ([]domain.Rule, error) {
	return f.Store.SearchActiveRules(ctx, accountID)
}

// DeleteRule soft-deletes a rule.
func (f *Facade) DeleteRule(ctx context.Context, id domain.ID) error {
	return f.Store.DeleteRule(ctx, id)
}
