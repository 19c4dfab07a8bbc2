package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eocodev/reviewstation/internal/cli"
)

var resetForce bool

func init() {
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all review progress",
		Long: `Reset removes every transaction-to-receipt assignment and rewinds the
review cursor. The recorded ledger and bundle paths are kept so the same
inputs can be re-reviewed; re-deriving matches from them reproduces
identical results.`,
		RunE: runReset,
	}

	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")

	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	sess, path, err := loadSession()
	if err != nil {
		return err
	}

	if sess.Selection.Len() == 0 && sess.Cursor == 0 {
		fmt.Println("No review progress found. Nothing to reset.")
		return nil
	}

	if !resetForce {
		fmt.Printf("This will clear %d matches. Continue? [y/N] ", sess.Selection.Len())
		var answer string
		_, _ = fmt.Fscanln(os.Stdin, &answer)
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	sess.Reset()
	if err := sess.Save(path); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Review progress cleared."))
	return nil
}
