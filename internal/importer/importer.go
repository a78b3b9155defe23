// Package importer turns an uploaded CSV into a preview of candidate
// transactions and submits the accepted candidates.
package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/spendly/internal/importer/csvtext"
	"github.com/MrJamesThe3rd/spendly/internal/importer/normalize"
)

var (
	ErrEmptyInput        = errors.New("empty input")
	ErrNoDataRows        = errors.New("no data rows")
	ErrMappingIncomplete = errors.New("column mapping incomplete")
	ErrColumnNotFound    = errors.New("column not found")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrUnknownAccount    = errors.New("unknown account")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUploadTooLarge    = errors.New("upload too large")
)

// ColumnMapping is the user's choice of header cells for each field plus the
// fallback category and account applied to every row.
type ColumnMapping struct {
	DateColumn        string `json:"date_column"`
	DescriptionColumn string `json:"description_column"`
	AmountColumn      string `json:"amount_column"`
	// CategoryColumn is nil when no category column is selected.
	CategoryColumn    *string `json:"category_column,omitempty"`
	DefaultCategoryID string  `json:"default_category_id"`
	DefaultAccountID  string  `json:"default_account_id"`
}

// Validate checks that every required field of the mapping is set.
func (m ColumnMapping) Validate() error {
	var missing []string

	required := []struct {
		name  string
		value string
	}{
		{"date column", m.DateColumn},
		{"description column", m.DescriptionColumn},
		{"amount column", m.AmountColumn},
		{"default category", m.DefaultCategoryID},
		{"default account", m.DefaultAccountID},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMappingIncomplete, strings.Join(missing, ", "))
	}

	return nil
}

// ResolveMapping finds the header position of every mapped column. A
// selected category column that is not in the header is an error, unlike
// selecting no category column at all.
func ResolveMapping(header csvtext.Row, m ColumnMapping) (normalize.Columns, error) {
	if err := m.Validate(); err != nil {
		return normalize.Columns{}, err
	}

	lookup := func(name string) (int, error) {
		idx := csvtext.FindIndex(header, name)
		if idx < 0 {
			return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}

		return idx, nil
	}

	var (
		cols normalize.Columns
		err  error
	)

	if cols.Date, err = lookup(m.DateColumn); err != nil {
		return normalize.Columns{}, err
	}

	if cols.Description, err = lookup(m.DescriptionColumn); err != nil {
		return normalize.Columns{}, err
	}

	if cols.Amount, err = lookup(m.AmountColumn); err != nil {
		return normalize.Columns{}, err
	}

	cols.Category = normalize.NoColumn
	if m.CategoryColumn != nil {
		if cols.Category, err = lookup(*m.CategoryColumn); err != nil {
			return normalize.Columns{}, err
		}
	}

	return cols, nil
}
