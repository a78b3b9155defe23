package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid category")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) error
}

type Service struct {
	repo              Repository
	uncategorizedName string
}

// NewService creates a category service. uncategorizedName names the
// category that marks a transaction as not yet classified.
func NewService(repo Repository, uncategorizedName string) *Service {
	return &Service{repo: repo, uncategorizedName: uncategorizedName}
}

type CreateParams struct {
	Name          string
	LocalizedName *string
	Color         string
	Icon          string
}

// Directory returns a snapshot of all categories in directory order.
func (s *Service) Directory(ctx context.Context) (Directory, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	return Directory(cats), nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	c := &Category{
		Name:          name,
		LocalizedName: params.LocalizedName,
		Color:         params.Color,
		Icon:          params.Icon,
	}

	if c.Color == "" {
		c.Color = "#6B7280"
	}

	if c.Icon == "" {
		c.Icon = "fas fa-tag"
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// UncategorizedID returns the id of the uncategorized category in dir, or
// an empty string when the directory has none.
func (s *Service) UncategorizedID(dir Directory) string {
	c, ok := dir.Named(s.uncategorizedName)
	if !ok {
		return ""
	}

	return c.ID
}
