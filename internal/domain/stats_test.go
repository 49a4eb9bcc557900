package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talowa/remedy/internal/domain"
)

func TestComputeSessionStats(t *testing.T) {
	report := domain.NewValidationReport()
	report.AddResult("Auth Flow", domain.Pass("ok"))
	report.AddResult("Registration Flow", domain.Pass("ok"))
	report.AddResult("Navigation Guards", domain.Fail("guards remain"))
	report.AdminBootstrapVerified = true

	stats := domain.ComputeSessionStats(report, 1500*time.Millisecond)
	assert.Equal(t, 3, stats.TotalTests)
	assert.Equal(t, 2, stats.PassedTests)
	assert.Equal(t, 1, stats.FailedTests)
	assert.InDelta(t, 66.7, stats.SuccessRate, 0.001, "success rate keeps one decimal")
	assert.InDelta(t, 1.5, stats.ExecutionTime, 0.001)
	assert.True(t, stats.AdminBootstrapVerified)
	assert.False(t, stats.FlowMatchesSpec)
}

func TestComputeSessionStats_EmptyReport(t *testing.T) {
	stats := domain.ComputeSessionStats(domain.NewValidationReport(), 0)
	assert.Equal(t, 0, stats.TotalTests)
	assert.Zero(t, stats.SuccessRate)
	assert.False(t, stats.FlowMatchesSpec)
}

func TestSessionStats_AsMapKeys(t *testing.T) {
	report := domain.NewValidationReport()
	report.AddResult("Auth Flow", domain.Pass("ok"))

	m := domain.ComputeSessionStats(report, time.Second).AsMap()
	for _, key := range []string{
		"totalTests", "passedTests", "failedTests", "successRate",
		"executionTime", "adminBootstrapVerified", "flowMatchesSpec",
	} {
		_, ok := m[key]
		require.True(t, ok, "missing key %s", key)
	}
	assert.Equal(t, true, m["flowMatchesSpec"])
	assert.Equal(t, 100.0, m["successRate"])
}
