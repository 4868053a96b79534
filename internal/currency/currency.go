// Package currency converts between the localized "R$ 1.234,56" display
// representation used by the frontend and decimal values.
package currency

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Parse converts a localized amount string into a decimal value.
//
// Everything except digits and the decimal comma is stripped, so inputs
// like "R$ 1.234,56", "1234,56" and " 199,90 " are all accepted. Unparseable
// input yields a zero decimal, never an error, as the frontend treats empty
// and invalid amounts as zero.
func Parse(display string) decimal.Decimal {
	var b strings.Builder
	for _, r := range display {
		if unicode.IsDigit(r) || r == ',' {
			b.WriteRune(r)
		}
	}

	s := b.String()

	// Only the last comma is the decimal separator
	if i := strings.LastIndex(s, ","); i >= 0 {
		s = strings.ReplaceAll(s[:i], ",", "") + "." + s[i+1:]
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return value
}

// Format renders a decimal value as a localized amount string with exactly
// two decimal digits, e.g. "R$ 1.234,56".
func Format(value decimal.Decimal) string {
	f, _ := value.Round(2).Float64()
	return printer.Sprintf("R$ %v", number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
