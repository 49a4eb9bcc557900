package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talowa/remedy/internal/application"
)

func newSuggestCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest [path]",
		Short: "Generate fix suggestions for failing checks",
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
				return fmt.Errorf("suggest failed: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(outcome.Suggestions)
			}

			fmt.Fprint(cmd.OutOrStdout(), eng.suggest.GenerateFixSuggestionsReport(outcome.Report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output suggestions as JSON")
	return cmd
}
