package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/talowa/remedy/internal/domain"
)

// ErrNilReport is the one session-level failure of an apply pass: a
// report the engine cannot iterate. Everything else is recovered into
// structured per-test results.
var ErrNilReport = errors.New("cannot apply fixes: nil validation report")

// ApplyService executes remediation plans against the target
// application: preview in dry-run mode, backup/apply/rollback in real
// mode, and post-fix re-validation for chains that completed cleanly.
type ApplyService struct {
	suggest     *SuggestService
	executor    domain.FixExecutor
	rollback    *RollbackManager
	revalidator domain.Revalidator
	logger      *log.Logger
}

// NewApplyService wires the engine. revalidator may be nil, in which
// case no post-fix validation runs.
func NewApplyService(
	suggest *SuggestService,
	executor domain.FixExecutor,
	rollback *RollbackManager,
	revalidator domain.Revalidator,
	logger *log.Logger,
) *ApplyService {
	if logger == nil {
		logger = log.Default()
	}
	return &ApplyService{
		suggest:     suggest,
		executor:    executor,
		rollback:    rollback,
		revalidator: revalidator,
		logger:      logger,
	}
}

// ApplyFixesForFailedTests runs the full apply pass over the report's
// failures. A summary is always produced for a well-formed report,
// even when zero suggestions matched or every step failed.
func (s *ApplyService) ApplyFixesForFailedTests(ctx context.Context, report *domain.ValidationReport, opts domain.ApplyOptions) (*domain.FixApplicationSummary, error) {
	if report == nil {
		return nil, ErrNilReport
	}

	summary := domain.NewFixApplicationSummary()
	suggestions := s.suggest.OrderedSuggestions(report)
	summary.TotalFixes = len(suggestions)

	if opts.DryRun {
		// Dry run simulates every step and never touches the rollback
		// manager or the target application.
		for _, sg := range suggestions {
			summary.AddResult(sg.TestName, s.previewFix(sg))
		}
		return summary, nil
	}

	var clean []string
	for _, sg := range suggestions {
		result, ok := s.applyFix(ctx, sg, opts.EnableRollback)
		summary.AddResult(sg.TestName, result)
		if ok {
			clean = append(clean, sg.TestName)
		}
	}

	if s.revalidator != nil && len(clean) > 0 {
		s.revalidate(ctx, summary, clean)
	}

	return summary, nil
}

// previewFix evaluates one suggestion's steps without mutating the
// target.
func (s *ApplyService) previewFix(sg domain.FixSuggestion) domain.FixApplicationResult {
	var actions []string
	wouldFail := false
	for _, step := range sg.FixSteps {
		desc, err := s.executor.Preview(step)
		if err != nil {
			actions = append(actions, fmt.Sprintf("would fail at %s: %v", step.Locator(), err))
			wouldFail = true
			continue
		}
		actions = append(actions, "would apply: "+desc)
	}

	msg := fmt.Sprintf("Dry run: would apply %d fix step(s) for %s", len(sg.FixSteps), sg.TestName)
	if wouldFail {
		msg = fmt.Sprintf("Dry run: %s has step(s) that would fail", sg.TestName)
	}
	return domain.FixApplicationResult{Message: msg, AppliedActions: actions}
}

// applyFix executes one suggestion's steps in order, fail-fast within
// the chain. It reports whether the chain completed without error.
func (s *ApplyService) applyFix(ctx context.Context, sg domain.FixSuggestion, enableRollback bool) (domain.FixApplicationResult, bool) {
	var (
		actions []string
		stepErr error
	)

	for i, step := range sg.FixSteps {
		if enableRollback {
			state, err := s.executor.Capture(step)
			if err != nil {
				actions = append(actions, fmt.Sprintf("attempted %s (capture failed: %v)", step.Locator(), err))
				stepErr = fmt.Errorf("capturing restore point for %s: %w", step.Locator(), err)
				break
			}
			if err := s.rollback.Record(sg.TestName, i, state); err != nil {
				actions = append(actions, fmt.Sprintf("attempted %s (restore point not persisted: %v)", step.Locator(), err))
				stepErr = err
				break
			}
		}

		desc, err := s.executor.Apply(ctx, step)
		if err != nil {
			actions = append(actions, fmt.Sprintf("attempted %s (failed: %v)", step.Locator(), err))
			stepErr = fmt.Errorf("applying %s: %w", step.Locator(), err)
			break
		}
		actions = append(actions, desc)
		s.logger.Info("applied fix step", "test", sg.TestName, "step", i, "locator", step.Locator())
	}

	result := domain.FixApplicationResult{AppliedActions: actions}
	if stepErr == nil {
		result.Message = fmt.Sprintf("Applied %d fix step(s) for %s", len(sg.FixSteps), sg.TestName)
		return result, true
	}

	result.Message = fmt.Sprintf("Fix failed for %s: %v", sg.TestName, stepErr)
	s.logger.Error("fix chain aborted", "test", sg.TestName, "err", stepErr)

	// Unwind whatever this chain already changed. Only a failure of
	// that unwind itself surfaces as RollbackError.
	if enableRollback {
		rb := s.rollback.RollbackTest(sg.TestName)
		if rb.Failed() {
			result.RollbackError = flattenRollbackErrors(rb)
		}
	}
	return result, false
}

// revalidate re-runs the original checks for cleanly fixed tests and
// attaches both per-test and aggregate outcomes. A failing outcome
// here means the fix did not resolve the underlying condition, which
// is distinct from a step-execution failure.
func (s *ApplyService) revalidate(ctx context.Context, summary *domain.FixApplicationSummary, tests []string) {
	nowPassing := 0
	for _, testName := range tests {
		res, err := s.revalidator.Revalidate(ctx, testName)
		if err != nil {
			res = domain.Fail(fmt.Sprintf("re-validation could not run: %v", err))
		}
		if res.Passed {
			nowPassing++
		}

		if r, ok := summary.Result(testName); ok {
			reval := res
			r.Revalidation = &reval
			if !res.Passed {
				r.Message += " (fix applied but re-validation still failing)"
			}
			summary.AddResult(testName, r)
		}
	}

	msg := fmt.Sprintf("Post-fix validation: %d/%d fixed test(s) now passing", nowPassing, len(tests))
	var aggregate domain.ValidationResult
	if nowPassing == len(tests) {
		aggregate = domain.Pass(msg)
	} else {
		aggregate = domain.Fail(msg)
	}
	summary.ValidationResult = &aggregate
}

func flattenRollbackErrors(rb domain.RollbackSummary) string {
	parts := make([]string, 0, len(rb.Errors))
	for test, msg := range rb.Errors {
		parts = append(parts, test+": "+msg)
	}
	return strings.Join(parts, "; ")
}
