// Package export writes stored transactions as CSV in the layout the
// importer reads back.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/spendly/internal/account"
	"github.com/MrJamesThe3rd/spendly/internal/category"
	"github.com/MrJamesThe3rd/spendly/internal/importer/csvtext"
	"github.com/MrJamesThe3rd/spendly/internal/importer/normalize"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

// Header is the first row of every export.
var Header = csvtext.Row{"Date", "Description", "Amount", "Category", "Account", "Status"}

type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type CategorySource interface {
	Directory(ctx context.Context) (category.Directory, error)
	UncategorizedID(dir category.Directory) string
}

type AccountLister interface {
	List(ctx context.Context) ([]account.Account, error)
}

// Service handles the export of transactions.
type Service struct {
	transactions TransactionLister
	categories   CategorySource
	accounts     AccountLister
}

func NewService(transactions TransactionLister, categories CategorySource, accounts AccountLister) *Service {
	return &Service{
		transactions: transactions,
		categories:   categories,
		accounts:     accounts,
	}
}

// WriteCSV writes the transactions matching filter to w and returns how many
// were written. Categories and accounts are written by name.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, filter transaction.ListFilter) (int, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	dir, err := s.categories.Directory(ctx)
	if err != nil {
		return 0, err
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return 0, err
	}

	accountNames := make(map[string]string, len(accounts))
	for _, a := range accounts {
		accountNames[a.ID] = a.Name
	}

	uncategorizedID := s.categories.UncategorizedID(dir)

	if err := writeRow(w, Header); err != nil {
		return 0, err
	}

	for i, tx := range txs {
		categoryName := tx.CategoryID
		if c, ok := dir.Get(tx.CategoryID); ok {
			categoryName = c.Name
		}

		accountName, ok := accountNames[tx.AccountID]
		if !ok {
			accountName = tx.AccountID
		}

		row := csvtext.Row{
			tx.Date.Format(normalize.DateLayout),
			tx.Description,
			tx.Amount.String(),
			categoryName,
			accountName,
			string(tx.Trust(uncategorizedID)),
		}

		if err := writeRow(w, row); err != nil {
			return i, err
		}
	}

	return len(txs), nil
}

func writeRow(w io.Writer, row csvtext.Row) error {
	if _, err := io.WriteString(w, csvtext.Serialize(row)+"\n"); err != nil {
		return fmt.Errorf("writing row: %w", err)
	}

	return nil
}
