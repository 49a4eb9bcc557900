package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talowa/remedy/internal/application"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Run the validation suite without fixing anything",
		Long:  "Run every check against the target checkout and print the report as JSON. Exits non-zero when any check fails.",
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

			outcome, err := eng.suite.RunSuite(cmd.Context(), application.SuiteOptions{
				TargetPath: target,
				SkipCases:  eng.skipCases(),
			})
			if err != nil {
				return fmt.Errorf("validate failed: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(outcome.Report); err != nil {
				return err
			}

			if failed := outcome.Report.FailedTests(); len(failed) > 0 {
				return fmt.Errorf("validation failed: %d check(s) failing", len(failed))
			}
			return nil
		},
	}
	return cmd
}
