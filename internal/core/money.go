// Package core holds the domain types for the cash-flow ledger plus the
// forgiving cell parsers shared by the sheet adapters. Amounts are
// decimal values; float arithmetic never touches a balance.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a currency cell. Currency symbols, thousands
// separators and surrounding whitespace are stripped; an empty cell is
// worth zero. This mirrors how the historical ledger treats blanks:
// malformed money is coerced, not raised.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	neg := false
	// Accountant exports wrap negatives in parentheses.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// ParseRate parses a percentage cell ("4.5%" or "4.5") into its decimal
// rate (0.045). Empty cells are zero.
func ParseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Div(decimal.NewFromInt(100)), nil
}

// FormatAmount renders a decimal for a sheet cell with two fraction
// digits, the way the workbook formats currency.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
