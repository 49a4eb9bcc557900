package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talowa/remedy/internal/application"
	"github.com/talowa/remedy/internal/domain"
)

type applyHarness struct {
	svc      *application.ApplyService
	exec     *fakeExecutor
	reval    *fakeRevalidator
	rollback *application.RollbackManager
}

func newApplyHarness() *applyHarness {
	exec := newFakeExecutor()
	reval := newFakeRevalidator()
	rollback := application.NewRollbackManager(exec, nil, quietLogger())
	suggest := application.NewSuggestService(domain.DefaultRules(), quietLogger())
	svc := application.NewApplyService(suggest, exec, rollback, reval, quietLogger())
	return &applyHarness{svc: svc, exec: exec, reval: reval, rollback: rollback}
}

func TestApplyFixes_NilReport(t *testing.T) {
	h := newApplyHarness()
	_, err := h.svc.ApplyFixesForFailedTests(context.Background(), nil, domain.ApplyOptions{})
	assert.ErrorIs(t, err, application.ErrNilReport)
}

func TestApplyFixes_NoFailures(t *testing.T) {
	h := newApplyHarness()
	summary, err := h.svc.ApplyFixesForFailedTests(context.Background(), passingReport(), domain.ApplyOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalFixes)
	assert.Empty(t, summary.Results())
	assert.Nil(t, summary.ValidationResult)
}

func TestApplyFixes_DryRun(t *testing.T) {
	h := newApplyHarness()
	summary, err := h.svc.ApplyFixesForFailedTests(context.Background(), failingReport(), domain.ApplyOptions{
		DryRun:         true,
		EnableRollback: false,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, summary.TotalFixes, 1)

	result, ok := summary.Result("Admin Bootstrap")
	require.True(t, ok)
	assert.Contains(t, result.Message, "Dry run")

	// Dry run must not mutate the target or the rollback history.
	assert.Empty(t, h.exec.applied)
	assert.Equal(t, 0, h.rollback.HistoryLen())
	assert.Empty(t, h.reval.calls, "dry run must not revalidate")
}

func TestApplyFixes_DryRun_NeverGrowsHistory(t *testing.T) {
	h := newApplyHarness()

	report := domain.NewValidationReport()
	report.AddResult("Navigation Guards", domain.Fail("guards remain",
		domain.WithSuspectedModule("NavigationGuardService"),
	))
	report.AddResult("Admin Bootstrap", domain.Fail("admin account missing",
		domain.WithSuspectedModule("BootstrapService"),
	))

	for i := 0; i < 3; i++ {
		_, err := h.svc.ApplyFixesForFailedTests(context.Background(), report, domain.ApplyOptions{DryRun: true, EnableRollback: true})
		require.NoError(t, err)
	}
	assert.Equal(t, 0, h.rollback.HistoryLen())
}

func TestApplyFixes_RealWithRollback(t *testing.T) {
	h := newApplyHarness()
	summary, err := h.svc.ApplyFixesForFailedTests(context.Background(), failingReport(), domain.ApplyOptions{
		DryRun:         false,
		EnableRollback: true,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, summary.TotalFixes, 1)

	result, ok := summary.Result("Admin Bootstrap")
	require.True(t, ok)
	assert.NotEmpty(t, result.AppliedActions)
	assert.Empty(t, result.RollbackError)

	// One restore point per destructive step.
	assert.Equal(t, len(h.exec.applied), h.rollback.HistoryLen())
}

func TestApplyFixes_StepFailureIsPerTest(t *testing.T) {
	h := newApplyHarness()
	// First navigation step fails; the admin bootstrap chain must
	// still be processed.
	h.exec.failApply["lib/screens/home/community_screen.dart#build"] = errors.New("disk full")

	report := domain.NewValidationReport()
	report.AddResult("Navigation Guards", domain.Fail("guards remain",
		domain.WithSuspectedModule("NavigationGuardService"),
	))
	report.AddResult("Admin Bootstrap", domain.Fail("admin account missing",
		domain.WithSuspectedModule("BootstrapService"),
	))

	summary, err := h.svc.ApplyFixesForFailedTests(context.Background(), report, domain.ApplyOptions{EnableRollback: true})
	require.NoError(t, err, "a step failure must not abort the session")

	nav, ok := summary.Result("Navigation Guards")
	require.True(t, ok)
	assert.Contains(t, nav.Message, "Fix failed")
	assert.Empty(t, nav.RollbackError, "automatic rollback succeeded, so no rollback error")

	// Fail-fast within the chain: the second navigation step never ran.
	assert.NotContains(t, h.exec.applied, "lib/screens/home/profile_screen.dart#build")

	admin, ok := summary.Result("Admin Bootstrap")
	require.True(t, ok)
	assert.NotEmpty(t, admin.AppliedActions)
	assert.NotContains(t, admin.Message, "Fix failed")

	// Only the cleanly completed chain gets revalidated.
	assert.Equal(t, []string{"Admin Bootstrap"}, h.reval.calls)
}

func TestApplyFixes_RollbackErrorSurfaced(t *testing.T) {
	h := newApplyHarness()
	h.exec.failApply["lib/screens/home/community_screen.dart#build"] = errors.New("disk full")
	h.exec.failRevert["lib/screens/home/community_screen.dart#build"] = errors.New("backup corrupt")

	report := domain.NewValidationReport()
	report.AddResult("Navigation Guards", domain.Fail("guards remain",
		domain.WithSuspectedModule("NavigationGuardService"),
	))

	summary, err := h.svc.ApplyFixesForFailedTests(context.Background(), report, domain.ApplyOptions{EnableRollback: true})
	require.NoError(t, err)

	nav, ok := summary.Result("Navigation Guards")
	require.True(t, ok)
	assert.Contains(t, nav.Message, "Fix failed")
	assert.Contains(t, nav.RollbackError, "backup corrupt")
}

func TestApplyFixes_Revalidation(t *testing.T) {
	h := newApplyHarness()
	summary, err := h.svc.ApplyFixesForFailedTests(context.Background(), failingReport(), domain.ApplyOptions{})
	require.NoError(t, err)

	require.NotNil(t, summary.ValidationResult)
	assert.True(t, summary.ValidationResult.Passed)

	result, _ := summary.Result("Admin Bootstrap")
	require.NotNil(t, result.Revalidation)
	assert.True(t, result.Revalidation.Passed)
}

func TestApplyFixes_RevalidationStillFailing(t *testing.T) {
	h := newApplyHarness()
	h.reval.results["Admin Bootstrap"] = domain.Fail("admin account still missing")

	summary, err := h.svc.ApplyFixesForFailedTests(context.Background(), failingReport(), domain.ApplyOptions{})
	require.NoError(t, err)

	// Fix execution succeeded but the condition persists: a distinct
	// outcome from a step-execution failure.
	result, _ := summary.Result("Admin Bootstrap")
	require.NotNil(t, result.Revalidation)
	assert.False(t, result.Revalidation.Passed)
	assert.Contains(t, result.Message, "re-validation still failing")
	assert.NotContains(t, result.Message, "Fix failed")

	require.NotNil(t, summary.ValidationResult)
	assert.False(t, summary.ValidationResult.Passed)
}

func TestApplyFixes_CaptureFailureAbortsChain(t *testing.T) {
	h := newApplyHarness()
	h.exec.failCapture["assets/config/admin_bootstrap.yaml#seedAdminAccount"] = errors.New("permission denied")

	summary, err := h.svc.ApplyFixesForFailedTests(context.Background(), failingReport(), domain.ApplyOptions{EnableRollback: true})
	require.NoError(t, err)

	result, _ := summary.Result("Admin Bootstrap")
	assert.Contains(t, result.Message, "Fix failed")
	assert.Empty(t, h.exec.applied, "step must not run without its restore point")

	// The attempt is still on record even though no step executed.
	require.NotEmpty(t, result.AppliedActions)
	assert.Contains(t, result.AppliedActions[0], "capture failed")
}
