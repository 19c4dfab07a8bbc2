package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eocodev/reviewstation/internal/cli"
	"github.com/eocodev/reviewstation/internal/report"
)

func init() {
	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Reconcile a receipt bundle against a ledger",
		Long: `Run the reconciliation batch: OCR every receipt, extract candidate
amounts, look them up in the ledger, and score vendor similarity.

Examples:
  # Reconcile and print a summary
  eoco match --ledger transactions.csv --receipts receipts.zip

  # Automatically select the top candidate for each receipt
  eoco match --ledger transactions.csv --receipts receipts.zip --auto

  # Override the heuristic amount column pick
  eoco match --ledger txns.csv --receipts receipts.zip --amount-column "charged total"`,
		RunE: runMatch,
	}

	matchCmd.Flags().String("ledger", "", "ledger file (CSV, OFX, or QFX)")
	matchCmd.Flags().String("receipts", "", "receipt bundle (ZIP of PDFs)")
	matchCmd.Flags().String("amount-column", "", "ledger column holding amounts (default: heuristic)")
	matchCmd.Flags().Bool("auto", false, "select the top candidate per receipt into the session")
	matchCmd.Flags().String("report", "", "also write a CSV report to this path")
	_ = matchCmd.MarkFlagRequired("ledger")
	_ = matchCmd.MarkFlagRequired("receipts")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ledgerPath, _ := cmd.Flags().GetString("ledger")
	receiptsPath, _ := cmd.Flags().GetString("receipts")
	amountColumn, _ := cmd.Flags().GetString("amount-column")
	auto, _ := cmd.Flags().GetBool("auto")
	reportPath, _ := cmd.Flags().GetString("report")

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

	fmt.Println(cli.FormatTitle("Reconciliation Summary"))
	fmt.Printf("  Receipts:  %d\n", b.Len())
	fmt.Printf("  Matched:   %d\n", batch.MatchedCount())
	fmt.Printf("  Unmatched: %d\n", len(batch.Unmatched()))
	fmt.Printf("  Skipped:   %d\n", len(batch.Skipped()))

	for _, name := range batch.Unmatched() {
		fmt.Println(cli.SubtleStyle.Render("  no amount hit: " + name))
	}
	for _, skipped := range batch.Skipped() {
		fmt.Println(cli.WarningStyle.Render(
			fmt.Sprintf("  skipped %s: %s", skipped.ReceiptName, skipped.SkipReason)))
	}

	if auto {
		sess, path, err := loadSession()
		if err != nil {
			return err
		}
		if !sess.MatchesInputs(ledgerPath, receiptsPath) {
			sess.Reset()
			sess.LedgerPath = ledgerPath
			sess.BundlePath = receiptsPath
		}

		// Auto-selection fills gaps only; manual picks win.
		autoPicks := batch.AutoSelect()
		selected := 0
		for _, txIndex := range autoPicks.Indices() {
			if _, taken := sess.Selection.Receipt(txIndex); taken {
				continue
			}
			name, _ := autoPicks.Receipt(txIndex)
			sess.Selection.Select(txIndex, name)
			selected++
		}
		sess.Unmatched = batch.Unmatched()

		if err := sess.Save(path); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Auto-selected %d matches into session", selected)))
	}

	if reportPath != "" {
		f, err := os.Create(reportPath)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		if err := report.Write(f, batch, idx.Transactions()); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess("Report written to " + reportPath))
	}

	return nil
}
