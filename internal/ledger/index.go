package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/eocodev/reviewstation/internal/common"
	"github.com/eocodev/reviewstation/internal/model"
)

// currencyStripper removes currency symbols, grouping separators, and inner
// whitespace before numeric conversion.
var currencyStripper = strings.NewReplacer("$", "", "€", "", "£", "", "¥", "", ",", "", " ", "")

// Index wraps the loaded transaction table with exact-equality lookup over
// the chosen amount column. Equality uses two-decimal-rounded keys so the
// currency-stripping step cannot introduce floating-point artifacts.
type Index struct {
	byAmount     map[string][]int
	amountColumn string
	vendorColumn string
	transactions []model.Transaction
}

// NewIndex builds an index over the table. amountColumn overrides the
// heuristic pick when non-empty; it must name an existing column. Any row
// whose amount cell fails numeric conversion fails the whole load before
// matching begins.
func NewIndex(t *Table, amountColumn string) (*Index, error) {
	if amountColumn == "" {
		amountColumn = t.AmountColumn()
	} else {
		amountColumn = strings.ToLower(strings.TrimSpace(amountColumn))
		if _, ok := t.columnIndex(amountColumn); !ok {
			return nil, common.NewColumnNotFoundError([]string{amountColumn})
		}
	}

	vendorColumn, err := t.ResolveColumn(vendorColumnCandidates)
	if err != nil {
		// No vendor-ish column at all; every row displays the Unknown
		// sentinel and similarity scores run against an empty string.
		vendorColumn = ""
	}

	transactions := make([]model.Transaction, 0, t.Len())
	var badRows []string

	for row := 0; row < t.Len(); row++ {
		amount, convErr := ParseAmount(t.cell(row, amountColumn))
		if convErr != nil {
			badRows = append(badRows, fmt.Sprintf("row %d (%q)", row, t.cell(row, amountColumn)))
			continue
		}

		vendor := ""
		if vendorColumn != "" {
			vendor = t.cell(row, vendorColumn)
		}

		transactions = append(transactions, model.Transaction{
			Index:  row,
			Amount: amount,
			Vendor: vendor,
			Date:   t.cell(row, "date"),
		})
	}

	if len(badRows) > 0 {
		return nil, fmt.Errorf("%w: column %q, %s",
			common.ErrNonNumericAmount, amountColumn, strings.Join(badRows, ", "))
	}

	idx := newIndexFromTransactions(transactions)
	idx.amountColumn = amountColumn
	idx.vendorColumn = vendorColumn
	return idx, nil
}

// NewIndexFromTransactions builds an index directly from transaction rows,
// used by non-tabular ledger sources such as OFX statements.
func NewIndexFromTransactions(transactions []model.Transaction) *Index {
	return newIndexFromTransactions(transactions)
}

func newIndexFromTransactions(transactions []model.Transaction) *Index {
	byAmount := make(map[string][]int, len(transactions))
	for i, tx := range transactions {
		key := tx.AmountKey()
		byAmount[key] = append(byAmount[key], i)
	}
	return &Index{byAmount: byAmount, transactions: transactions}
}

// Lookup returns every transaction whose normalized amount equals the query
// value at two-decimal precision. All matching rows are surfaced; callers
// disambiguate with the confidence score.
func (idx *Index) Lookup(amount decimal.Decimal) []model.Transaction {
	positions := idx.byAmount[amount.Round(2).StringFixed(2)]
	if len(positions) == 0 {
		return nil
	}

	matches := make([]model.Transaction, len(positions))
	for i, pos := range positions {
		matches[i] = idx.transactions[pos]
	}
	return matches
}

// Transactions returns all rows in ledger order.
func (idx *Index) Transactions() []model.Transaction {
	return idx.transactions
}

// Len returns the number of indexed transactions.
func (idx *Index) Len() int {
	return len(idx.transactions)
}

// AmountColumn reports which column the index was built over.
func (idx *Index) AmountColumn() string {
	return idx.amountColumn
}

// ParseAmount normalizes a currency-formatted cell to a decimal value.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := currencyStripper.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return value, nil
}
