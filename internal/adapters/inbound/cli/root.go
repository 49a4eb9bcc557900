package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remedy",
		Short: "Validate the TALOWA app and remediate what fails",
		Long:  "Remedy runs the validation suite against a TALOWA checkout, maps failures to remediation plans, and applies them under dry-run/backup/rollback discipline.",

		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newSuggestCmd())
	cmd.AddCommand(newFixCmd())
	cmd.AddCommand(newRollbackCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
