package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewRemedyMCPServer creates a new MCP server with the remediation
// tools and resources registered. targetPath is the root of the
// application checkout to validate and fix.
func NewRemedyMCPServer(targetPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"remedy",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, targetPath)
	registerResources(s, targetPath)

	return s
}
