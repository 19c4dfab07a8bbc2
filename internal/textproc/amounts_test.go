package textproc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amountStrings(amounts []decimal.Decimal) []string {
	out := make([]string, len(amounts))
	for i, a := range amounts {
		out[i] = a.Round(2).StringFixed(2)
	}
	return out
}

func TestExtractAmounts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "grouped thousands with decimals",
			text: "TOTAL 1,234.56",
			want: []string{"1234.56"},
		},
		{
			name: "duplicate amounts collapse to a set",
			text: "SUBTOTAL 45.00 TAX 0.00 TOTAL 45.00",
			want: []string{"45.00"},
		},
		{
			name: "multiple distinct amounts",
			text: "ITEM 12.50 ITEM 3.99 TOTAL 16.49",
			want: []string{"3.99", "12.50", "16.49"},
		},
		{
			name: "integer token without fraction",
			text: "QTY 2 TOTAL 150.00",
			want: []string{"2.00", "150.00"},
		},
		{
			name: "zero excluded",
			text: "BALANCE 0.00 DUE 0",
			want: []string{},
		},
		{
			name: "no amounts",
			text: "RANDOM UNRELATED TEXT",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAmounts(tt.text)
			assert.Equal(t, tt.want, amountStrings(got))
		})
	}
}

func TestExtractAmountsNeverNonPositive(t *testing.T) {
	texts := []string{
		"0.00 0 000",
		"TOTAL 45.00 VOID 0.00",
		"1,000.00 0",
	}

	for _, text := range texts {
		for _, amount := range ExtractAmounts(text) {
			assert.Positive(t, amount.Sign(), "extracted %s from %q", amount, text)
		}
	}
}

func TestNormalizeThenExtractRepairedDecimal(t *testing.T) {
	// OCR artifact: whitespace around the decimal point must yield a single
	// token, not two.
	got := ExtractAmounts(Normalize("AMOUNT DUE 150 . 00"))

	require.Len(t, got, 1)
	assert.Equal(t, "150.00", got[0].StringFixed(2))
}
