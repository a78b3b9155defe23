package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	ConfirmTransaction(ctx context.Context, id uuid.UUID, categoryID *string) error

	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Amount              decimal.Decimal
	Description         string
	Date                time.Time
	CategoryID          string
	AccountID           string
	ImportedCategoryRaw *string
	Confirmed           bool
}

type ListFilter struct {
	Confirmed  *bool
	CategoryID *string
	AccountID  *string
	StartDate  *time.Time
	EndDate    *time.Time
}

// Validate checks the fields every stored transaction needs.
func (p CreateParams) Validate() error {
	switch {
	case strings.TrimSpace(p.Description) == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	case p.CategoryID == "":
		return fmt.Errorf("%w: category is required", ErrValidation)
	case p.AccountID == "":
		return fmt.Errorf("%w: account is required", ErrValidation)
	case p.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrValidation)
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	tx := &Transaction{
		Amount:              params.Amount,
		Description:         strings.TrimSpace(params.Description),
		Date:                params.Date,
		CategoryID:          params.CategoryID,
		AccountID:           params.AccountID,
		ImportedCategoryRaw: params.ImportedCategoryRaw,
		Confirmed:           params.Confirmed,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	return s.repo.UpdateTransaction(ctx, tx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// Confirm marks the category of a transaction as verified, optionally moving
// it to categoryID first. This is the only way a transaction becomes
// confirmed after creation.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, categoryID *string) error {
	if categoryID != nil && *categoryID == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}

	return s.repo.ConfirmTransaction(ctx, id, categoryID)
}
