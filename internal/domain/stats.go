package domain

import (
	"math"
	"time"
)

// SessionStats is the statistics surface the orchestrator exposes to
// callers after a session.
type SessionStats struct {
	TotalTests             int     `json:"totalTests"`
	PassedTests            int     `json:"passedTests"`
	FailedTests            int     `json:"failedTests"`
	SuccessRate            float64 `json:"successRate"`
	ExecutionTime          float64 `json:"executionTime"`
	AdminBootstrapVerified bool    `json:"adminBootstrapVerified"`
	FlowMatchesSpec        bool    `json:"flowMatchesSpec"`
}

// ComputeSessionStats derives the stats surface from a finalized
// report. SuccessRate is a 0-100 percentage with one decimal.
func ComputeSessionStats(report *ValidationReport, elapsed time.Duration) SessionStats {
	total := report.Len()
	failed := len(report.FailedTests())
	passed := total - failed

	var rate float64
	if total > 0 {
		rate = math.Round(float64(passed)/float64(total)*1000) / 10
	}

	return SessionStats{
		TotalTests:             total,
		PassedTests:            passed,
		FailedTests:            failed,
		SuccessRate:            rate,
		ExecutionTime:          math.Round(elapsed.Seconds()*1000) / 1000,
		AdminBootstrapVerified: report.AdminBootstrapVerified,
		FlowMatchesSpec:        report.AllTestsPassed(),
	}
}

// AsMap returns the stats as the key set consumed by report sinks.
func (s SessionStats) AsMap() map[string]any {
	return map[string]any{
		"totalTests":             s.TotalTests,
		"passedTests":            s.PassedTests,
		"failedTests":            s.FailedTests,
		"successRate":            s.SuccessRate,
		"executionTime":          s.ExecutionTime,
		"adminBootstrapVerified": s.AdminBootstrapVerified,
		"flowMatchesSpec":        s.FlowMatchesSpec,
	}
}
