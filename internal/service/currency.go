package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount as a US dollar string with thousands
// grouping: 1234.56 becomes "$1,234.56", -1234.56 becomes "-$1,234.56".
func FormatCurrency(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')

	// Insert a comma before every remaining group of three digits.
	lead := len(whole) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(whole[:lead])
	for i := lead; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}

	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
