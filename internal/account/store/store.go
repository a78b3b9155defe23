package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/spendly/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListAccounts(ctx context.Context) ([]account.Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, type, balance FROM accounts ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []account.Account

	for rows.Next() {
		var (
			a       account.Account
			typeStr string
		)

		if err := rows.Scan(&a.ID, &a.Name, &typeStr, &a.Balance); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		a.Type = account.Type(typeStr)
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}

	return accounts, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (name, type, balance)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query, a.Name, a.Type, a.Balance).Scan(&a.ID); err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}
