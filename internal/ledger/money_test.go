package ledger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoneyUnmarshalCoercesToZero(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json number", `1250.75`, "1250.75"},
		{"numeric string", `"950.50"`, "950.50"},
		{"numeric string with spaces", `" 400 "`, "400"},
		{"negative number", `-30`, "-30"},
		{"null", `null`, "0"},
		{"empty string", `""`, "0"},
		{"garbage string", `"12,000 rupees"`, "0"},
		{"boolean", `true`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Money
			require.NoError(t, json.Unmarshal([]byte(tt.input), &m))
			requireAmount(t, tt.want, m.Decimal)
		})
	}
}

func TestMoneySurvivesLooseBillPayload(t *testing.T) {
	// Payload shaped like a desktop app export where amounts arrive as a
	// mix of numbers, strings and nulls.
	payload := `{
		"id": "b1",
		"reference": "INV-0007",
		"total_amount": "1500",
		"amount_paid": null,
		"is_manual_balance": false
	}`

	var b Bill
	require.NoError(t, json.Unmarshal([]byte(payload), &b))

	requireAmount(t, "1500", b.TotalAmount.Decimal)
	requireAmount(t, "0", b.AmountPaid.Decimal)

	entries, _ := BuildAt(day(10), []Bill{b}, nil, nil)
	require.Len(t, entries, 1)
	requireAmount(t, "1500", entries[0].Balance.Decimal)
}

func TestMoneyFromString(t *testing.T) {
	requireAmount(t, "99.99", MoneyFromString("99.99").Decimal)
	requireAmount(t, "250", MoneyFromString("  250 ").Decimal)
	requireAmount(t, "0", MoneyFromString("not a number").Decimal)
	requireAmount(t, "0", MoneyFromString("").Decimal)
}
