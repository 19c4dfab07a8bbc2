package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eocodev/reviewstation/internal/cli"
	"github.com/eocodev/reviewstation/internal/common"
	"github.com/eocodev/reviewstation/internal/compile"
)

func init() {
	compileCmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile selected receipts into one audit PDF",
		Long: `Merge the receipts chosen during review into a single PDF, ordered by
ledger position rather than upload or matching order.`,
		RunE: runCompile,
	}

	compileCmd.Flags().String("receipts", "", "receipt bundle (default: bundle recorded in the session)")
	compileCmd.Flags().StringP("output", "o", "audit_package.pdf", "output PDF path")

	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, _ []string) error {
	receiptsPath, _ := cmd.Flags().GetString("receipts")
	outputPath, _ := cmd.Flags().GetString("output")

	sess, _, err := loadSession()
	if err != nil {
		return err
	}
	if sess.Selection.Len() == 0 {
		return common.NewUserError("no matches made yet", common.ErrEmptySelection)
	}

	if receiptsPath == "" {
		receiptsPath = sess.BundlePath
	}
	if receiptsPath == "" {
		return common.NewUserError("no receipt bundle recorded; pass --receipts", nil)
	}

	b, err := openBundle(receiptsPath)
	if err != nil {
		return err
	}
	defer b.Close()

	ordered := compile.Order(sess.Selection)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := compile.Merge(b, ordered, out); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(
		fmt.Sprintf("Compiled %d receipts into %s", len(ordered), outputPath)))
	return nil
}
