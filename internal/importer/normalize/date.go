package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the canonical output format of Date.
const DateLayout = time.DateOnly

var dateSeparators = strings.NewReplacer("-", "/", ".", "/")

// Date converts a raw date cell to YYYY-MM-DD. It never fails: input that
// cannot be read as a calendar date yields today's date.
//
// Numeric triples separated by '/', '-' or '.' are tried first:
// day-month-year when the last part has four characters, year-month-day when
// the first part does, otherwise day-month-year with a two digit year in the
// 2000s. Anything else goes through a general-purpose parser.
func Date(raw string, today time.Time) string {
	raw = strings.TrimSpace(raw)

	if s, ok := parseTriple(raw); ok {
		return s
	}

	if t, ok := parseAny(raw); ok {
		return t.Format(DateLayout)
	}

	return today.Format(DateLayout)
}

func parseTriple(raw string) (string, bool) {
	parts := strings.Split(dateSeparators.Replace(raw), "/")
	if len(parts) != 3 {
		return "", false
	}

	var year, month, day string

	switch {
	case len(parts[2]) == 4:
		day, month, year = parts[0], parts[1], parts[2]
	case len(parts[0]) == 4:
		year, month, day = parts[0], parts[1], parts[2]
	default:
		day, month, year = parts[0], parts[1], "20"+parts[2]
	}

	s := year + "-" + pad2(month) + "-" + pad2(day)

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", false
	}

	return t.Format(DateLayout), true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}

	return s
}

func parseAny(raw string) (t time.Time, ok bool) {
	if raw == "" {
		return time.Time{}, false
	}

	// dateparse has panicked on malformed input in the past.
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()

	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}

	if t.Year() < 1 || t.Year() > 9999 {
		return time.Time{}, false
	}

	return t, true
}
