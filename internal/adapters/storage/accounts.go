package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
)

func (s *SQLiteStore) FindAccount(ctx context.Context, id domain.ID) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, environment, taxes_percentage, earnings_percentage, created_at, updated_at, deleted_at
		FROM accounts WHERE id = ? AND deleted_at IS NULL`, id)
	return scanAccount(row)
}

func (s *SQLiteStore) FindAccountByName(ctx context.Context, name string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, environment, taxes_percentage, earnings_percentage, created_at, updated_at, deleted_at
		FROM accounts WHERE name = ? COLLATE NOCASE AND deleted_at IS NULL`, name)
	return scanAccount(row)
}

func (s *SQLiteStore) SearchAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, environment, taxes_percentage, earnings_percentage, created_at, updated_at, deleted_at
		FROM accounts WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("storage.SearchAccounts: %w", err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, description, environment, taxes_percentage, earnings_percentage, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID, account.Name, account.Description, account.Environment.String(),
		account.TaxesPercentage, account.EarningsPercentage, account.CreatedAt, account.UpdatedAt, nullTime(account.DeletedAt))
	if err != nil {
		return domain.Account{}, fmt.Errorf("storage.CreateAccount: %w", err)
	}
	return account, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	return scanAccountRow(row)
}

func scanAccountRow(row rowScanner) (domain.Account, error) {
	var a domain.Account
	var env string
	var deletedAt sql.NullTime
	err := row.Scan(&a.ID, &a.Name, &a.Description, &env, &a.TaxesPercentage, &a.EarningsPercentage, &a.CreatedAt, &a.UpdatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, domain.NewError(domain.ErrNotFound, "account not found")
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("storage: scan account: %w", err)
	}
	a.Environment, err = domain.ParseEnvironment(env)
	if err != nil {
		return domain.Account{}, fmt.Errorf("storage: scan account: %w", err)
	}
	a.DeletedAt = fromNullTime(deletedAt)
	return a, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
