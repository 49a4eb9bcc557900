package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talowa/remedy/internal/adapters/outbound/tui"
	"github.com/talowa/remedy/internal/application"
	"github.com/talowa/remedy/internal/domain"
)

func newRunCmd() *cobra.Command {
	var (
		applyFixes     bool
		dryRun         bool
		enableRollback bool
		reportPath     string
	)

	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Run the full session: validate, suggest, fix, re-validate",
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
				ApplyFixes: applyFixes,
				Apply: domain.ApplyOptions{
					DryRun:         dryRun,
					EnableRollback: enableRollback,
				},
			})
			if err != nil {
				return fmt.Errorf("session failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tui.RenderReport(outcome.Report))
			if outcome.FixSummary != nil {
				fmt.Fprintln(out, tui.RenderFixSummary(outcome.FixSummary))
			}

			if reportPath != "" {
				md := eng.suite.RenderSessionReport(outcome)
				if err := os.WriteFile(reportPath, []byte(md), 0644); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				eng.logger.Info("wrote session report", "path", reportPath)
			}

			if !outcome.Report.AllTestsPassed() {
				return fmt.Errorf("session finished with %d check(s) failing", len(outcome.Report.FailedTests()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&applyFixes, "fix", false, "Apply remediation plans for failing checks")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview fixes without touching the target")
	cmd.Flags().BoolVar(&enableRollback, "rollback", false, "Capture restore points before each destructive step")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write the markdown session report to this file")
	return cmd
}
