package ports

import (
	"context"

	"github.com/riskcore/tradecore/internal/domain"
)

// RuleReader is the read capability set for Rule.
type RuleReader interface {
	// FindRule returns a rule by ID.
	FindRule(ctx context.Context, id domain.ID) (domain.Rule, error)
	// SearchActiveRules returns every active rule for an account, ordered
	// by ascending priority (§3: RiskPerMonth before RiskPerTrade).
	SearchActiveRules(ctx context.Context, accountID domain.ID) ([]domain.Rule, error)
}

// RuleWriter is the write capability set for Rule.
type RuleWriter interface {
	// CreateRule persists a newly created rule.
	CreateRule(ctx context.Context, rule domain.Rule) (domain.Rule, error)
	// DeleteRule soft-deletes a rule by ID.
	DeleteRule(ctx context.Context, id domain.ID) error
}
