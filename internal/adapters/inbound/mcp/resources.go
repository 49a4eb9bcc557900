package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/talowa/remedy/internal/domain"
)

// registerResources registers the remediation MCP resources.
func registerResources(s *server.MCPServer, targetPath string) {
	// 1. remedy://report - current validation report
	s.AddResource(
		mcplib.NewResource(
			"remedy://report",
			"Validation Report",
			mcplib.WithResourceDescription("Current validation report for the target checkout"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(targetPath),
	)

	// 2. remedy://stats - session statistics surface
	s.AddResource(
		mcplib.NewResource(
			"remedy://stats",
			"Session Statistics",
			mcplib.WithResourceDescription("Statistics surface for the latest validation pass"),
			mcplib.WithMIMEType("application/json"),
		),
		handleStatsResource(targetPath),
	)
}

func handleReportResource(targetPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		_, outcome, err := runSuite(ctx, targetPath, false, domain.ApplyOptions{})
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(outcome.Report, "", "  ")
		if err != nil {
			return nil, err
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleStatsResource(targetPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		_, outcome, err := runSuite(ctx, targetPath, false, domain.ApplyOptions{})
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(outcome.Stats.AsMap(), "", "  ")
		if err != nil {
			return nil, err
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
