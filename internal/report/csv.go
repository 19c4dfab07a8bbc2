// Package report exports reconciliation outcomes as a delimited file for
// human review.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/eocodev/reviewstation/internal/engine"
	"github.com/eocodev/reviewstation/internal/model"
)

var header = []string{"receipt", "matched_amount", "vendor", "confidence", "status"}

// Write renders the batch report as CSV: one row per match candidate,
// plus one row for each unmatched or skipped receipt. Consumed by a human
// reviewer, not machine-parsed downstream.
func Write(w io.Writer, batch *engine.BatchReport, transactions []model.Transaction) error {
	vendors := make(map[int]string, len(transactions))
	for _, tx := range transactions {
		vendors[tx.Index] = tx.DisplayVendor()
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, result := range batch.Results {
		rows := resultRows(result, vendors)
		for _, row := range rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write report row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

func resultRows(result model.ReceiptResult, vendors map[int]string) [][]string {
	if result.Skipped {
		return [][]string{{result.ReceiptName, "", "", "", "SKIPPED: " + result.SkipReason}}
	}
	if len(result.Candidates) == 0 {
		return [][]string{{result.ReceiptName, "", "", "", "UNMATCHED"}}
	}

	rows := make([][]string, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		rows = append(rows, []string{
			c.ReceiptName,
			c.Amount.Round(2).StringFixed(2),
			vendors[c.TransactionIndex],
			strconv.FormatFloat(c.Confidence, 'f', 3, 64),
			string(c.Status),
		})
	}
	return rows
}
