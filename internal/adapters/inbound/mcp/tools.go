package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	configAdapter "github.com/talowa/remedy/internal/adapters/outbound/config"
	"github.com/talowa/remedy/internal/adapters/outbound/gitinfo"
	"github.com/talowa/remedy/internal/adapters/outbound/journal"
	"github.com/talowa/remedy/internal/adapters/outbound/patcher"
	"github.com/talowa/remedy/internal/adapters/outbound/probes"
	"github.com/talowa/remedy/internal/application"
	"github.com/talowa/remedy/internal/domain"
)

// registerTools registers the remediation MCP tools on the server.
func registerTools(s *server.MCPServer, targetPath string) {
	// 1. remedy_validate
	s.AddTool(
		mcplib.NewTool("remedy_validate",
			mcplib.WithDescription("Run the validation suite against the target checkout and return the report as JSON"),
		),
		handleValidate(targetPath),
	)

	// 2. remedy_suggest
	s.AddTool(
		mcplib.NewTool("remedy_suggest",
			mcplib.WithDescription("Generate fix suggestions for failing checks"),
			mcplib.WithString("format", mcplib.Description("Output format: md or json (default: json)")),
		),
		handleSuggest(targetPath),
	)

	// 3. remedy_fix
	s.AddTool(
		mcplib.NewTool("remedy_fix",
			mcplib.WithDescription("Apply remediation plans for failing checks and return the fix application summary"),
			mcplib.WithBoolean("dry_run", mcplib.Description("Preview fix steps without touching the target")),
			mcplib.WithBoolean("rollback", mcplib.Description("Capture restore points before each destructive step")),
		),
		handleFix(targetPath),
	)

	// 4. remedy_rollback
	s.AddTool(
		mcplib.NewTool("remedy_rollback",
			mcplib.WithDescription("Undo previously applied fixes, newest first"),
			mcplib.WithString("test", mcplib.Description("Roll back only the chain recorded for this test name")),
		),
		handleRollback(targetPath),
	)

	// 5. remedy_report
	s.AddTool(
		mcplib.NewTool("remedy_report",
			mcplib.WithDescription("Run the suite and return the full markdown session report"),
		),
		handleReport(targetPath),
	)
}

// engine bundles the wired services for one tool invocation. MCP
// clients hold long-lived sessions, so each call wires fresh services
// against the current on-disk state.
type engine struct {
	cfg      domain.EngineConfig
	suggest  *application.SuggestService
	rollback *application.RollbackManager
	suite    *application.SuiteService
}

func newEngine(targetPath string) (*engine, error) {
	logger := log.New(io.Discard)

	cfg, err := configAdapter.New().Load(targetPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	rules, err := cfg.ResolveRules()
	if err != nil {
		return nil, fmt.Errorf("resolving rules: %w", err)
	}
	patch, err := patcher.New(targetPath, cfg.Patches, logger)
	if err != nil {
		return nil, fmt.Errorf("building patcher: %w", err)
	}

	jr := journal.New(filepath.Join(targetPath, filepath.FromSlash(cfg.JournalPath)))
	rollback := application.NewRollbackManager(patch, jr, logger)
	registry := probes.NewRegistry(targetPath)
	suggest := application.NewSuggestService(rules, logger)
	apply := application.NewApplyService(suggest, patch, rollback, registry, logger)
	suite := application.NewSuiteService(registry.Validators(), suggest, apply, gitinfo.New(), logger)

	return &engine{cfg: cfg, suggest: suggest, rollback: rollback, suite: suite}, nil
}

func (e *engine) skipCases() map[domain.TestCase]bool {
	skip := make(map[domain.TestCase]bool)
	for _, key := range e.cfg.SkipCases {
		if c, err := domain.ParseTestCase(key); err == nil {
			skip[c] = true
		}
	}
	return skip
}

func runSuite(ctx context.Context, targetPath string, apply bool, opts domain.ApplyOptions) (*engine, *application.SessionOutcome, error) {
	eng, err := newEngine(targetPath)
	if err != nil {
		return nil, nil, err
	}
	outcome, err := eng.suite.RunSuite(ctx, application.SuiteOptions{
		TargetPath: targetPath,
		SkipCases:  eng.skipCases(),
		ApplyFixes: apply,
		Apply:      opts,
	})
	if err != nil {
		return nil, nil, err
	}
	return eng, outcome, nil
}

func handleValidate(targetPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		_, outcome, err := runSuite(ctx, targetPath, false, domain.ApplyOptions{})
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		return jsonResult(outcome.Report)
	}
}

func handleSuggest(targetPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		eng, outcome, err := runSuite(ctx, targetPath, false, domain.ApplyOptions{})
		if err != nil {
			return errorResult(fmt.Sprintf("suggest failed: %v", err)), nil
		}
		if request.GetString("format", "json") == "md" {
			return textResult(eng.suggest.GenerateFixSuggestionsReport(outcome.Report)), nil
		}
		return jsonResult(outcome.Suggestions)
	}
}

func handleFix(targetPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		opts := domain.ApplyOptions{
			DryRun:         request.GetBool("dry_run", false),
			EnableRollback: request.GetBool("rollback", false),
		}
		_, outcome, err := runSuite(ctx, targetPath, true, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(outcome.FixSummary)
	}
}

func handleRollback(targetPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		eng, err := newEngine(targetPath)
		if err != nil {
			return errorResult(fmt.Sprintf("rollback failed: %v", err)), nil
		}

		var summary domain.RollbackSummary
		if test := request.GetString("test", ""); test != "" {
			summary = eng.rollback.RollbackTest(test)
		} else {
			summary = eng.rollback.RollbackAllFixes()
		}
		return jsonResult(summary)
	}
}

func handleReport(targetPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		eng, outcome, err := runSuite(ctx, targetPath, false, domain.ApplyOptions{})
		if err != nil {
			return errorResult(fmt.Sprintf("report failed: %v", err)), nil
		}
		return textResult(eng.suite.RenderSessionReport(outcome)), nil
	}
}

// jsonResult marshals v as indented JSON tool output.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
