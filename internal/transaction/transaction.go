package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound   = errors.New("transaction not found")
	ErrValidation = errors.New("invalid transaction")
)

// Transaction represents a financial transaction. Expenses carry a negative
// amount.
type Transaction struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  string
	AccountID   string

	// ImportedCategoryRaw is the category label read from an import file. It
	// is only set when that label matched a category.
	ImportedCategoryRaw *string
	// Confirmed is true once a person has verified the category. Manual
	// entries are confirmed on creation; imported ones never are.
	Confirmed bool

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

// Trust returns the display state of the transaction's category.
func (t *Transaction) Trust(uncategorizedID string) TrustState {
	return DeriveTrust(t.Confirmed, t.ImportedCategoryRaw, t.CategoryID, uncategorizedID)
}
