package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talowa/remedy/internal/application"
	"github.com/talowa/remedy/internal/domain"
)

func newFixCmd() *cobra.Command {
	var (
		dryRun         bool
		enableRollback bool
	)

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Apply remediation plans for failing checks",
		Long:  "Run the validation suite, map failures to remediation plans, and apply them. Use --dry-run to preview and --rollback to capture restore points before each step.",
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
				ApplyFixes: true,
				Apply: domain.ApplyOptions{
					DryRun:         dryRun,
					EnableRollback: enableRollback,
				},
			})
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(outcome.FixSummary)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview fix steps without touching the target")
	cmd.Flags().BoolVar(&enableRollback, "rollback", false, "Capture restore points before each destructive step")
	return cmd
}
