package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount that tolerates the loose typing of records
// imported from the desktop app. JSON numbers, numeric strings, null,
// empty strings and unparsable garbage all decode; anything unreadable
// becomes zero rather than an error, so one bad field cannot abort a
// whole statement.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal as Money
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromInt creates Money from an integer amount
func MoneyFromInt(n int64) Money {
	return Money{Decimal: decimal.NewFromInt(n)}
}

// MoneyFromString parses a numeric string, returning zero on failure
func MoneyFromString(s string) Money {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{Decimal: decimal.Zero}
	}
	return Money{Decimal: d}
}

// UnmarshalJSON decodes a JSON number, numeric string, null or empty
// string. Unparsable input coerces to zero and never returns an error.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		m.Decimal = decimal.Zero
		return nil
	}
	m.Decimal = d
	return nil
}
