package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eocodev/reviewstation/internal/cli"
	"github.com/eocodev/reviewstation/internal/report"
)

func init() {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Export reconciliation results as CSV",
		Long: `Run the reconciliation batch and export every match candidate plus the
unmatched and skipped receipts as a CSV for human review.`,
		RunE: runReport,
	}

	reportCmd.Flags().String("ledger", "", "ledger file (CSV, OFX, or QFX)")
	reportCmd.Flags().String("receipts", "", "receipt bundle (ZIP of PDFs)")
	reportCmd.Flags().String("amount-column", "", "ledger column holding amounts (default: heuristic)")
	reportCmd.Flags().StringP("output", "o", "", "output CSV path (default: stdout)")
	_ = reportCmd.MarkFlagRequired("ledger")
	_ = reportCmd.MarkFlagRequired("receipts")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	ledgerPath, _ := cmd.Flags().GetString("ledger")
	receiptsPath, _ := cmd.Flags().GetString("receipts")
	amountColumn, _ := cmd.Flags().GetString("amount-column")
	outputPath, _ := cmd.Flags().GetString("output")

	idx, err := loadLedgerIndex(ledgerPath, amountColumn)
	if err != nil {
		return err
	}

	b, err := openBundle(receiptsPath)
	if err != nil {
		return err
	}
	defer b.Close()

	batch, err := runBatch(cmd.Context(), idx, b)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := report.Write(out, batch, idx.Transactions()); err != nil {
		return err
	}

	if outputPath != "" {
		fmt.Println(cli.FormatSuccess("Report written to " + outputPath))
	}
	return nil
}
