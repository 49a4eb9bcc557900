package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	configAdapter "github.com/talowa/remedy/internal/adapters/outbound/config"
	"github.com/talowa/remedy/internal/adapters/outbound/gitinfo"
	"github.com/talowa/remedy/internal/adapters/outbound/journal"
	"github.com/talowa/remedy/internal/adapters/outbound/patcher"
	"github.com/talowa/remedy/internal/adapters/outbound/probes"
	"github.com/talowa/remedy/internal/application"
	"github.com/talowa/remedy/internal/domain"
)

// engine bundles the wired services for one target tree.
type engine struct {
	cfg      domain.EngineConfig
	registry *probes.Registry
	suggest  *application.SuggestService
	apply    *application.ApplyService
	rollback *application.RollbackManager
	suite    *application.SuiteService
	logger   *log.Logger
}

// newEngine loads config for targetPath and wires the standard adapter
// set behind the application services.
func newEngine(targetPath string) (*engine, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "remedy"})

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

	return &engine{
		cfg:      cfg,
		registry: registry,
		suggest:  suggest,
		apply:    apply,
		rollback: rollback,
		suite:    suite,
		logger:   logger,
	}, nil
}

// skipCases resolves the configured skip keys to test cases.
func (e *engine) skipCases() map[domain.TestCase]bool {
	skip := make(map[domain.TestCase]bool)
	for _, key := range e.cfg.SkipCases {
		if c, err := domain.ParseTestCase(key); err == nil {
			skip[c] = true
		}
	}
	return skip
}

func targetFromArgs(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}
