package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalid = errors.New("invalid account")

// Type is the kind of account.
type Type string

const (
	TypeChecking Type = "checking"
	TypeCredit   Type = "credit"
	TypeDebit    Type = "debit"
	TypeCash     Type = "cash"
)

// Account is a bank account, card or cash wallet transactions are booked to.
type Account struct {
	ID      string
	Name    string
	Type    Type
	Balance decimal.Decimal
}

type Repository interface {
	ListAccounts(ctx context.Context) ([]Account, error)
	CreateAccount(ctx context.Context, a *Account) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Account, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	return accounts, nil
}

func (s *Service) Create(ctx context.Context, name string, typ Type) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	switch typ {
	case TypeChecking, TypeCredit, TypeDebit, TypeCash:
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalid, typ)
	}

	a := &Account{Name: name, Type: typ}
	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Contains reports whether id is one of accounts.
func Contains(accounts []Account, id string) bool {
	for _, a := range accounts {
		if a.ID == id {
			return true
		}
	}

	return false
}
