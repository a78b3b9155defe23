package importer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendly/internal/account"
	"github.com/MrJamesThe3rd/spendly/internal/importer/normalize"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

// Candidate is one previewed row, not yet stored.
type Candidate struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	CategoryID  string `json:"category_id"`
	AccountID   string `json:"account_id"`
	// ImportedCategoryRaw holds the source label only when it matched a
	// category.
	ImportedCategoryRaw *string `json:"imported_category_raw,omitempty"`
	// TrustState is informational. Submission derives nothing from it and
	// stores every candidate unconfirmed.
	TrustState transaction.TrustState `json:"trust_state"`
}

// Reassign returns a copy of c moved to categoryID with its trust state
// derived again. A candidate never becomes confirmed before it is stored.
func (c Candidate) Reassign(categoryID, uncategorizedID string) Candidate {
	c.CategoryID = categoryID
	c.TrustState = transaction.DeriveTrust(false, c.ImportedCategoryRaw, c.CategoryID, uncategorizedID)

	return c
}

// Params converts c into the input of a transaction creation.
func (c Candidate) Params() (transaction.CreateParams, error) {
	date, err := time.Parse(normalize.DateLayout, c.Date)
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("%w: date %q", transaction.ErrValidation, c.Date)
	}

	amount, err := decimal.NewFromString(c.Amount)
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("%w: amount %q", transaction.ErrValidation, c.Amount)
	}

	return transaction.CreateParams{
		Amount:              amount,
		Description:         c.Description,
		Date:                date,
		CategoryID:          c.CategoryID,
		AccountID:           c.AccountID,
		ImportedCategoryRaw: c.ImportedCategoryRaw,
		// Only the confirm action marks a transaction confirmed.
		Confirmed: false,
	}, nil
}

// against checks c against the directories in snap. Unknown category or
// account ids are validation errors. A raw label that matches no category is
// dropped so that only matched labels are stored.
func (c Candidate) against(snap Snapshot) (Candidate, error) {
	if _, ok := snap.Categories.Get(c.CategoryID); !ok {
		return c, fmt.Errorf("%w: %w %q", transaction.ErrValidation, ErrUnknownCategory, c.CategoryID)
	}

	if !account.Contains(snap.Accounts, c.AccountID) {
		return c, fmt.Errorf("%w: %w %q", transaction.ErrValidation, ErrUnknownAccount, c.AccountID)
	}

	if c.ImportedCategoryRaw != nil {
		if _, ok := snap.Categories.Match(*c.ImportedCategoryRaw); !ok {
			c.ImportedCategoryRaw = nil
		}
	}

	return c, nil
}
