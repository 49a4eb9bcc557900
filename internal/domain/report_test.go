package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talowa/remedy/internal/domain"
)

func TestReport_InsertionOrder(t *testing.T) {
	report := domain.NewValidationReport()
	report.AddResult("Auth Flow", domain.Pass("ok"))
	report.AddResult("Registration Flow", domain.Fail("broken"))
	report.AddResult("Admin Bootstrap", domain.Pass("ok"))

	results := report.Results()
	require.Len(t, results, 3)
	assert.Equal(t, "Auth Flow", results[0].TestName)
	assert.Equal(t, "Registration Flow", results[1].TestName)
	assert.Equal(t, "Admin Bootstrap", results[2].TestName)
}

func TestReport_LastWriteWins(t *testing.T) {
	report := domain.NewValidationReport()
	report.AddResult("Auth Flow", domain.Fail("first attempt"))
	report.AddResult("Registration Flow", domain.Pass("ok"))
	report.AddResult("Auth Flow", domain.Pass("second attempt"))

	require.Equal(t, 2, report.Len())

	// The overwrite keeps the original position.
	results := report.Results()
	assert.Equal(t, "Auth Flow", results[0].TestName)
	assert.True(t, results[0].Result.Passed)
	assert.Equal(t, "second attempt", results[0].Result.Message)

	assert.True(t, report.AllTestsPassed())
}

func TestReport_FailedTests(t *testing.T) {
	report := domain.NewValidationReport()
	report.AddResult("Auth Flow", domain.Pass("ok"))
	report.AddResult("Navigation Guards", domain.Fail("guard references remain"))
	report.AddResult("Admin Bootstrap", domain.Fail("not provisioned"))

	failed := report.FailedTests()
	require.Len(t, failed, 2)
	assert.Equal(t, "Navigation Guards", failed[0].TestName)
	assert.Equal(t, "Admin Bootstrap", failed[1].TestName)
	assert.False(t, report.AllTestsPassed())
}

func TestReport_AllTestsPassed_Empty(t *testing.T) {
	report := domain.NewValidationReport()
	assert.False(t, report.AllTestsPassed(), "empty report must not count as passing")
	assert.Empty(t, report.FailedTests())
}
