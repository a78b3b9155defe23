// Package normalize turns raw CSV cells into candidate transaction fields.
//
// Nothing here fails on bad row data: dates fall back to today, empty
// descriptions get a numbered placeholder, and amounts that cannot be parsed
// are reported through Fields.AmountOK so the caller can drop the row once
// every field has been built.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/spendly/internal/importer/csvtext"
)

// NoColumn marks an optional column that is not mapped.
const NoColumn = -1

// Columns holds resolved header positions for one import.
type Columns struct {
	Date        int
	Description int
	Amount      int
	Category    int // NoColumn when no category column is mapped
}

// Fields is the normalized content of one data row.
type Fields struct {
	Date        string
	Description string
	Amount      string
	AmountOK    bool

	// CategoryLabel is the trimmed category cell, empty when the column is
	// not mapped or the cell is blank.
	CategoryLabel string
}

// Keep reports whether the row belongs in the preview.
func (f Fields) Keep() bool {
	return f.Description != "" && f.AmountOK
}

// Normalizer builds Fields from raw rows.
type Normalizer struct {
	// Placeholder prefixes the synthesized description of rows without one.
	Placeholder string
	Now         func() time.Time
}

// New returns a Normalizer using the wall clock.
func New(placeholder string) *Normalizer {
	return &Normalizer{
		Placeholder: placeholder,
		Now:         time.Now,
	}
}

// Row normalizes one data row. index is the 1-based position of the row
// among data rows and only feeds the placeholder description.
func (n *Normalizer) Row(row csvtext.Row, cols Columns, index int) Fields {
	amount, ok := Amount(cellValue(row, cols.Amount))

	f := Fields{
		Date:        Date(cellValue(row, cols.Date), n.Now()),
		Description: Description(cellValue(row, cols.Description), n.Placeholder, index),
		Amount:      amount,
		AmountOK:    ok,
	}

	if cols.Category != NoColumn {
		f.CategoryLabel = cellValue(row, cols.Category)
	}

	return f
}

// Description returns the trimmed cell, or "<placeholder> <index>" when blank.
func Description(raw, placeholder string, index int) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}

	return fmt.Sprintf("%s %d", placeholder, index)
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row csvtext.Row, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
