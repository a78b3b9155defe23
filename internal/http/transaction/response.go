package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

type transactionResponse struct {
	ID                  uuid.UUID              `json:"id"`
	Amount              decimal.Decimal        `json:"amount"`
	Description         string                 `json:"description"`
	Date                string                 `json:"date"`
	CategoryID          string                 `json:"category_id"`
	AccountID           string                 `json:"account_id"`
	ImportedCategoryRaw *string                `json:"imported_category_raw,omitempty"`
	Confirmed           bool                   `json:"confirmed"`
	TrustState          transaction.TrustState `json:"trust_state"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           *time.Time             `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction, uncategorizedID string) transactionResponse {
	return transactionResponse{
		ID:                  tx.ID,
		Amount:              tx.Amount,
		Description:         tx.Description,
		Date:                tx.Date.Format(time.DateOnly),
		CategoryID:          tx.CategoryID,
		AccountID:           tx.AccountID,
		ImportedCategoryRaw: tx.ImportedCategoryRaw,
		Confirmed:           tx.Confirmed,
		TrustState:          tx.Trust(uncategorizedID),
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction, uncategorizedID string) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx, uncategorizedID)
	}

	return resp
}
