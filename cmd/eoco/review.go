package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eocodev/reviewstation/internal/cli"
)

func init() {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Interactively match receipts to transactions",
		Long: `Walk the ledger transaction by transaction, choosing the matching
receipt for each. Suggestions come from the reconciliation engine ranked by
confidence; any bundle document can be picked manually. Progress is saved
to the session file so review can resume later.`,
		RunE: runReview,
	}

	reviewCmd.Flags().String("ledger", "", "ledger file (CSV, OFX, or QFX)")
	reviewCmd.Flags().String("receipts", "", "receipt bundle (ZIP of PDFs)")
	reviewCmd.Flags().String("amount-column", "", "ledger column holding amounts (default: heuristic)")
	_ = reviewCmd.MarkFlagRequired("ledger")
	_ = reviewCmd.MarkFlagRequired("receipts")

	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, _ []string) error {
	ledgerPath, _ := cmd.Flags().GetString("ledger")
	receiptsPath, _ := cmd.Flags().GetString("receipts")
	amountColumn, _ := cmd.Flags().GetString("amount-column")

	idx, err := loadLedgerIndex(ledgerPath, amountColumn)
	if err != nil {
		return err
	}

	b, err := openBundle(receiptsPath)
	if err != nil {
		return err
	}
	defer b.Close()

	sess, path, err := loadSession()
	if err != nil {
		return err
	}
	if !sess.MatchesInputs(ledgerPath, receiptsPath) {
		sess.Reset()
		sess.LedgerPath = ledgerPath
		sess.BundlePath = receiptsPath
	}

	batch, err := runBatch(cmd.Context(), idx, b)
	if err != nil {
		return err
	}
	sess.Unmatched = batch.Unmatched()

	prompter := cli.NewReviewPrompter(nil, nil)
	runErr := prompter.Run(cmd.Context(), idx.Transactions(), b.Receipts(), batch, sess)

	// Persist whatever progress was made, even on interrupt.
	if saveErr := sess.Save(path); saveErr != nil {
		return saveErr
	}
	if runErr != nil {
		return runErr
	}

	fmt.Println(cli.FormatSuccess(
		fmt.Sprintf("Session saved: %d of %d transactions matched", sess.Selection.Len(), idx.Len())))
	return nil
}
