package normalize

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// currencySymbols are removed from amount cells before parsing.
const currencySymbols = "€$£¥₹₽₩₺₪₫₱฿"

// Amount cleans a raw amount cell and returns it as an outflow: the absolute
// value, negated, keeping the scale written in the source ("45.20" -> "-45.20").
// An empty cell counts as zero. The second return is false when the cleaned
// text is not a decimal number.
//
// Only the first comma becomes a decimal point, so amounts with thousands
// separators such as "1.234,56" do not parse.
func Amount(raw string) (string, bool) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(currencySymbols, r) {
			return -1
		}

		return r
	}, raw)

	if clean == "" {
		clean = "0"
	}

	clean = strings.Replace(clean, ",", ".", 1)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return "", false
	}

	return formatOutflow(d), true
}

func formatOutflow(d decimal.Decimal) string {
	out := d.Abs().Neg()
	if exp := d.Exponent(); exp < 0 {
		return out.StringFixed(-exp)
	}

	return out.String()
}
