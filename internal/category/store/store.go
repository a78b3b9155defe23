package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/spendly/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListCategories returns categories ordered by creation time, then id. The
// import matcher relies on this order to break name ties.
func (s *Store) ListCategories(ctx context.Context) ([]category.Category, error) {
	query := `
		SELECT id, name, localized_name, color, icon, created_at
		FROM categories
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []category.Category

	for rows.Next() {
		var (
			c         category.Category
			localized sql.NullString
		)

		if err := rows.Scan(&c.ID, &c.Name, &localized, &c.Color, &c.Icon, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		if localized.Valid {
			c.LocalizedName = &localized.String
		}

		cats = append(cats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return cats, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (name, localized_name, color, icon, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.LocalizedName, c.Color, c.Icon).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}
