package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/talowa/remedy/internal/domain"
)

// SuiteOptions controls one orchestrated session.
type SuiteOptions struct {
	TargetPath string
	ApplyFixes bool
	Apply      domain.ApplyOptions
	SkipCases  map[domain.TestCase]bool
}

// SessionOutcome bundles everything a session produced.
type SessionOutcome struct {
	Report      *domain.ValidationReport        `json:"report"`
	Suggestions map[string]domain.FixSuggestion `json:"suggestions,omitempty"`
	FixSummary  *domain.FixApplicationSummary   `json:"fix_summary,omitempty"`
	Stats       domain.SessionStats             `json:"stats"`
}

// SuiteService drives a full session: run validators, generate
// suggestions, optionally apply fixes, fold re-validation results back
// into the report, and compute the statistics surface.
type SuiteService struct {
	validators []domain.Validator
	suggest    *SuggestService
	apply      *ApplyService
	git        domain.GitInfo
	logger     *log.Logger
}

// NewSuiteService creates the orchestrator. Validators run in the
// order given. git may be nil.
func NewSuiteService(
	validators []domain.Validator,
	suggest *SuggestService,
	apply *ApplyService,
	git domain.GitInfo,
	logger *log.Logger,
) *SuiteService {
	if logger == nil {
		logger = log.Default()
	}
	return &SuiteService{
		validators: validators,
		suggest:    suggest,
		apply:      apply,
		git:        git,
		logger:     logger,
	}
}

// RunSuite executes the session.
func (s *SuiteService) RunSuite(ctx context.Context, opts SuiteOptions) (*SessionOutcome, error) {
	start := time.Now()

	report := domain.NewValidationReport()
	report.SessionID = uuid.NewString()
	report.StartedAt = start
	if s.git != nil && s.git.IsGitRepo(opts.TargetPath) {
		if hash, err := s.git.CommitHash(opts.TargetPath); err == nil {
			report.CommitHash = hash
		}
	}

	for _, v := range s.validators {
		if opts.SkipCases[v.Case()] {
			s.logger.Debug("skipping test case", "case", v.Case().Key())
			continue
		}
		result := v.Run(ctx)
		report.AddResult(v.Case().Name(), result)
		if v.Case() == domain.TestCaseAdminBootstrap && result.Passed {
			report.AdminBootstrapVerified = true
		}
		s.logger.Info("check finished", "case", v.Case().Key(), "passed", result.Passed)
	}

	outcome := &SessionOutcome{
		Report:      report,
		Suggestions: s.suggest.GenerateFixSuggestions(report),
	}

	if opts.ApplyFixes {
		fixSummary, err := s.apply.ApplyFixesForFailedTests(ctx, report, opts.Apply)
		if err != nil {
			return nil, fmt.Errorf("applying fixes: %w", err)
		}
		outcome.FixSummary = fixSummary

		// Fold re-validation outcomes back into the report so the
		// statistics reflect the post-fix state.
		for _, nf := range fixSummary.Results() {
			if nf.Result.Revalidation == nil {
				continue
			}
			report.AddResult(nf.TestName, *nf.Result.Revalidation)
			if nf.TestName == domain.TestCaseAdminBootstrap.Name() {
				report.AdminBootstrapVerified = nf.Result.Revalidation.Passed
			}
		}
	}

	outcome.Stats = domain.ComputeSessionStats(report, time.Since(start))
	return outcome, nil
}

// RenderSessionReport renders the outcome as markdown for external
// sinks. The fix-suggestions section keeps its contractual heading.
func (s *SuiteService) RenderSessionReport(outcome *SessionOutcome) string {
	var b strings.Builder

	b.WriteString("# Validation Session Report\n\n")
	if outcome.Report.SessionID != "" {
		b.WriteString(fmt.Sprintf("Session: %s\n", outcome.Report.SessionID))
	}
	if outcome.Report.CommitHash != "" {
		b.WriteString(fmt.Sprintf("Commit: %s\n", outcome.Report.CommitHash))
	}
	b.WriteString("\n## Results\n\n")
	for _, entry := range outcome.Report.Results() {
		status := "PASS"
		if !entry.Result.Passed {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("- [%s] %s: %s\n", status, entry.TestName, entry.Result.Message))
	}

	b.WriteString("\n")
	b.WriteString(s.suggest.GenerateFixSuggestionsReport(outcome.Report))

	stats := outcome.Stats
	b.WriteString("\n## Session Statistics\n\n")
	b.WriteString(fmt.Sprintf("- Total tests: %d\n", stats.TotalTests))
	b.WriteString(fmt.Sprintf("- Passed: %d\n", stats.PassedTests))
	b.WriteString(fmt.Sprintf("- Failed: %d\n", stats.FailedTests))
	b.WriteString(fmt.Sprintf("- Success rate: %.1f%%\n", stats.SuccessRate))
	b.WriteString(fmt.Sprintf("- Execution time: %.3fs\n", stats.ExecutionTime))
	b.WriteString(fmt.Sprintf("- Admin bootstrap verified: %t\n", stats.AdminBootstrapVerified))
	b.WriteString(fmt.Sprintf("- Flow matches spec: %t\n", stats.FlowMatchesSpec))

	return b.String()
}
