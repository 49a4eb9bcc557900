package application_test

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/talowa/remedy/internal/domain"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// fakeExecutor records applied and reverted locators and can be
// programmed to fail specific steps.
type fakeExecutor struct {
	applied  []string
	reverted []string

	failApply   map[string]error
	failCapture map[string]error
	failRevert  map[string]error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		failApply:   map[string]error{},
		failCapture: map[string]error{},
		failRevert:  map[string]error{},
	}
}

func (f *fakeExecutor) Preview(step domain.FixStep) (string, error) {
	if err := f.failApply[step.Locator()]; err != nil {
		return "", err
	}
	return "rewrite " + step.Locator(), nil
}

func (f *fakeExecutor) Capture(step domain.FixStep) (domain.RestoreState, error) {
	if err := f.failCapture[step.Locator()]; err != nil {
		return domain.RestoreState{}, err
	}
	return domain.RestoreState{
		Locator: step.Locator(),
		Before:  []byte("before " + step.Locator()),
		Existed: true,
	}, nil
}

func (f *fakeExecutor) Apply(ctx context.Context, step domain.FixStep) (string, error) {
	if err := f.failApply[step.Locator()]; err != nil {
		return "", err
	}
	f.applied = append(f.applied, step.Locator())
	return "patched " + step.Locator(), nil
}

func (f *fakeExecutor) Revert(state domain.RestoreState) error {
	if err := f.failRevert[state.Locator]; err != nil {
		return err
	}
	f.reverted = append(f.reverted, state.Locator)
	return nil
}

// fakeRevalidator returns programmed results per test name.
type fakeRevalidator struct {
	results map[string]domain.ValidationResult
	errs    map[string]error
	calls   []string
}

func newFakeRevalidator() *fakeRevalidator {
	return &fakeRevalidator{
		results: map[string]domain.ValidationResult{},
		errs:    map[string]error{},
	}
}

func (f *fakeRevalidator) Revalidate(ctx context.Context, testName string) (domain.ValidationResult, error) {
	f.calls = append(f.calls, testName)
	if err := f.errs[testName]; err != nil {
		return domain.ValidationResult{}, err
	}
	if res, ok := f.results[testName]; ok {
		return res, nil
	}
	return domain.Pass("revalidated " + testName), nil
}

// failingReport builds a report with one failing Admin Bootstrap entry
// attributed to BootstrapService.
func failingReport() *domain.ValidationReport {
	report := domain.NewValidationReport()
	report.AddResult("Admin Bootstrap", domain.Fail("admin account missing",
		domain.WithSuspectedModule("BootstrapService"),
	))
	return report
}

func passingReport() *domain.ValidationReport {
	report := domain.NewValidationReport()
	report.AddResult("Auth Flow", domain.Pass("ok"))
	report.AddResult("Admin Bootstrap", domain.Pass("ok"))
	return report
}
