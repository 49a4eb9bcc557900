package mcp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talowa/remedy/internal/adapters/inbound/mcp"
)

func TestNewRemedyMCPServer(t *testing.T) {
	s := mcp.NewRemedyMCPServer(t.TempDir())
	require.NotNil(t, s)
}
