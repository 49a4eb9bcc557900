package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/talowa/remedy/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the remedy MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the remedy MCP server (stdio)",
		Long:  "Start the remedy MCP server using stdio transport so AI coding assistants can validate the target, inspect suggestions, and drive fixes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetPath == "" {
				targetPath = "."
			}
			s := mcpadapter.NewRemedyMCPServer(targetPath)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&targetPath, "path", "", "Target path (defaults to current working directory)")
	return cmd
}
