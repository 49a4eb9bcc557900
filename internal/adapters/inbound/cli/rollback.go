package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talowa/remedy/internal/domain"
)

func newRollbackCmd() *cobra.Command {
	var testName string

	cmd := &cobra.Command{
		Use:   "rollback [path]",
		Short: "Undo previously applied fixes",
		Long:  "Undo restore points recorded by earlier fix runs, newest first. Safe to call with nothing recorded.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := targetFromArgs(args)
			if err != nil {
				return err
			}

			eng, err := newEngine(target)
			if err != nil {
				return err
			}

			var summary domain.RollbackSummary
			if testName != "" {
				summary = eng.rollback.RollbackTest(testName)
			} else {
				summary = eng.rollback.RollbackAllFixes()
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(summary); err != nil {
				return err
			}

			if summary.Failed() {
				return fmt.Errorf("rollback incomplete: %d chain(s) failed", len(summary.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&testName, "test", "", "Roll back only the chain recorded for this test name")
	return cmd
}
