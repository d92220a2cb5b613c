package domain

import (
	"time"

	"github.com/riskcore/tradecore/internal/money"
)

// Rule is a named risk policy attached to an account (§3). A given rule
// name is unique per account among active rules.
type Rule struct {
	ID         ID
	AccountID  ID
	Name       string
	Kind       RuleKind
	Percentage money.Amount // p, expressed as a decimal fraction (0.02 == 2%)
	Level      RuleLevel
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// Priority returns the rule kind's evaluation order (lower first, §3).
func (r Rule) Priority() int {
	return r.Kind.Priority()
}
