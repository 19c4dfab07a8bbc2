// Package compile assembles the final audit document from the selected
// receipts, in ledger order.
package compile

import (
	"github.com/eocodev/reviewstation/internal/model"
)

// Order produces the compilation sequence for a selection: receipt names
// by ascending transaction index. The output length always equals the
// selection size; a receipt selected for two transactions appears twice,
// deliberately undeduplicated, since one scanned page occasionally covers
// two line items.
func Order(selection *model.Selection) []string {
	indices := selection.Indices()
	names := make([]string, 0, len(indices))
	for _, idx := range indices {
		name, _ := selection.Receipt(idx)
		names = append(names, name)
	}
	return names
}
