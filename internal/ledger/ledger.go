// Package ledger loads the transaction table and indexes it by normalized
// amount for receipt matching.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/eocodev/reviewstation/internal/common"
)

// amountColumnHints are the substrings that mark a header as amount-bearing.
var amountColumnHints = []string{"amt", "amount", "total"}

// vendorColumnCandidates is the ordered list of headers tried for the
// vendor/description field.
var vendorColumnCandidates = []string{"vendor", "description", "memo"}

// Table is a parsed ledger file with normalized column names. Rows are
// immutable once loaded.
type Table struct {
	columns []string
	rows    [][]string
}

// Load parses a delimited ledger file. Column names are trimmed and
// lowercased so later lookups are case and whitespace insensitive. A ledger
// without at least a header and one data row is a load error.
func Load(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse ledger: %w", err)
	}

	if len(records) < 2 {
		return nil, common.ErrEmptyLedger
	}

	columns := make([]string, len(records[0]))
	for i, name := range records[0] {
		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}

	return &Table{columns: columns, rows: records[1:]}, nil
}

// Columns returns the normalized column names in file order.
func (t *Table) Columns() []string {
	return t.columns
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// columnIndex finds the position of a normalized column name.
func (t *Table) columnIndex(name string) (int, bool) {
	for i, col := range t.columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// ResolveColumn returns the first candidate name present in the header.
// Candidates are tried in priority order; a miss on all of them yields a
// typed ColumnNotFoundError rather than an implicit default.
func (t *Table) ResolveColumn(candidates []string) (string, error) {
	for _, candidate := range candidates {
		if _, ok := t.columnIndex(candidate); ok {
			return candidate, nil
		}
	}
	return "", common.NewColumnNotFoundError(candidates)
}

// AmountColumn picks the amount-bearing column: the first header containing
// a currency-related substring, else the first column.
func (t *Table) AmountColumn() string {
	for _, col := range t.columns {
		for _, hint := range amountColumnHints {
			if strings.Contains(col, hint) {
				return col
			}
		}
	}
	return t.columns[0]
}

// cell returns the value at a row for a named column, or "" when the column
// is absent.
func (t *Table) cell(row int, name string) string {
	i, ok := t.columnIndex(name)
	if !ok || i >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][i])
}
