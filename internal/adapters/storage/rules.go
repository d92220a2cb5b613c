package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/riskcore/tradecore/internal/domain"
)

func (s *SQLiteStore) FindRule(ctx context.Context, id domain.ID) (domain.Rule, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, account_id, name, kind, percentage, level, active, created_at, updated_at, deleted_at
		FROM rules WHERE id = ? AND deleted_at IS NULL`, id)
	return scanRule(row)
}

func (s *SQLiteStore) SearchActiveRules(ctx context.Context, accountID domain.ID) ([]domain.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, name, kind, percentage, level, active, created_at, updated_at, deleted_at
		FROM rules WHERE account_id = ? AND active = 1 AND deleted_at IS NULL`, accountID)
	if err != nil {
		return nil, fmt.Errorf("storage.SearchActiveRules: %w", err)
	}
	defer rows.Close()

	var out []domain.Rule
	for rows.Next() {
		r, err := scanRuleRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortRulesByPriority(out)
	return out, nil
}

// sortRulesByPriority orders rules RiskPerMonth-first per §3, using a
// simple insertion sort since the result set is tiny (a handful of rules
// per account).
func sortRulesByPriority(rules []domain.Rule) {
	for i := 1; i < len(rules); i++ {
		for j := i; j > 0 && rules[j].Priority() < rules[j-1].Priority(); j-- {
			rules[j], rules[j-1] = rules[j-1], rules[j]
		}
	}
}

func (s *SQLiteStore) CreateRule(ctx context.Context, rule domain.Rule) (domain.Rule, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rules (id, account_id, name, kind, percentage, level, active, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID, rule.AccountID, rule.Name, rule.Kind.String(), rule.Percentage, rule.Level.String(),
		rule.Active, rule.CreatedAt, rule.UpdatedAt, nullTime(rule.DeletedAt))
	if err != nil {
		return domain.Rule{}, fmt.Errorf("storage.CreateRule: %w", err)
	}
	return rule, nil
}

func (s *SQLiteStore) DeleteRule(ctx context.Context, id domain.ID) error {
	res, err := s.db.ExecContext(ctx, `UPDATE rules SET deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("storage.DeleteRule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage.DeleteRule: %w", err)
	}
	if n == 0 {
		return domain.NewError(domain.ErrNotFound, "rule %s not found", id)
	}
	return nil
}

func scanRule(row *sql.Row) (domain.Rule, error) {
	return scanRuleRow(row)
}

func scanRuleRow(row rowScanner) (domain.Rule, error) {
	var r domain.Rule
	var kind, level string
	var deletedAt sql.NullTime
	err := row.Scan(&r.ID, &r.AccountID, &r.Name, &kind, &r.Percentage, &level, &r.Active, &r.CreatedAt, &r.UpdatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Rule{}, domain.NewError(domain.ErrNotFound, "rule not found")
	}
	if err != nil {
		return domain.Rule{}, fmt.Errorf("storage: scan rule: %w", err)
	}
	if r.Kind, err = domain.ParseRuleKind(kind); err != nil {
		return domain.Rule{}, fmt.Errorf("storage: scan rule: %w", err)
	}
	if r.Level, err = domain.ParseRuleLevel(level); err != nil {
		return domain.Rule{}, fmt.Errorf("storage: scan rule: %w", err)
	}
	r.DeletedAt = fromNullTime(deletedAt)
	return r, nil
}
