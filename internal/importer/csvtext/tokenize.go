// Package csvtext splits loosely structured CSV text into rows of cells.
//
// It is deliberately more lenient than encoding/csv: quotes only toggle whether
// a comma is a delimiter, cells are trimmed, and rows never span lines.
package csvtext

import (
	"strings"
)

// Row is an ordered sequence of cells from one non-blank line.
type Row []string

// Tokenize splits text into rows. Blank lines are skipped, so an empty or
// whitespace-only input yields no rows.
//
// Quoted fields may contain commas but not line breaks.
func Tokenize(text string) []Row {
	var rows []Row

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rows = append(rows, tokenizeLine(line))
	}

	return rows
}

func tokenizeLine(line string) Row {
	var (
		row      Row
		current  strings.Builder
		inQuotes bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ',' && !inQuotes:
			row = append(row, cleanCell(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	return append(row, cleanCell(current.String()))
}

// cleanCell trims whitespace and strips at most one quote from each end.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)

	return s
}

// Serialize joins cells with commas, quoting any cell that contains a comma.
// Tokenize(Serialize(row)) returns row for trimmed cells without line breaks.
func Serialize(row Row) string {
	cells := make([]string, len(row))

	for i, cell := range row {
		if strings.Contains(cell, ",") {
			cell = `"` + cell + `"`
		}

		cells[i] = cell
	}

	return strings.Join(cells, ",")
}

// FindIndex returns the position of the header cell equal to name, ignoring
// case, or -1 when no cell matches. Matching is exact, never fuzzy.
func FindIndex(header Row, name string) int {
	for i, cell := range header {
		if strings.EqualFold(cell, name) {
			return i
		}
	}

	return -1
}
