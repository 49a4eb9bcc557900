package domain

import (
	"encoding/json"
	"time"
)

// MarshalJSON serializes the report with its results in insertion
// order, which a plain map would not preserve.
func (r *ValidationReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SessionID              string        `json:"session_id,omitempty"`
		StartedAt              time.Time     `json:"started_at,omitempty"`
		CommitHash             string        `json:"commit_hash,omitempty"`
		AdminBootstrapVerified bool          `json:"admin_bootstrap_verified"`
		AllTestsPassed         bool          `json:"all_tests_passed"`
		Results                []NamedResult `json:"results"`
	}{
		SessionID:              r.SessionID,
		StartedAt:              r.StartedAt,
		CommitHash:             r.CommitHash,
		AdminBootstrapVerified: r.AdminBootstrapVerified,
		AllTestsPassed:         r.AllTestsPassed(),
		Results:                r.Results(),
	})
}

// MarshalJSON serializes the summary with per-test results in report
// order.
func (s *FixApplicationSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalFixes       int               `json:"total_fixes"`
		ValidationResult *ValidationResult `json:"validation_result,omitempty"`
		Results          []NamedFixResult  `json:"results"`
	}{
		TotalFixes:       s.TotalFixes,
		ValidationResult: s.ValidationResult,
		Results:          s.Results(),
	})
}
