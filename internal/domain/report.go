package domain

import "time"

// ValidationReport aggregates the results of one validation session.
// Results are keyed by test name with insertion order preserved, so
// downstream consumers (suggestion generation, fix application,
// rendering) see tests in the order they ran.
type ValidationReport struct {
	SessionID              string    `json:"session_id,omitempty"`
	StartedAt              time.Time `json:"started_at,omitempty"`
	CommitHash             string    `json:"commit_hash,omitempty"`
	AdminBootstrapVerified bool      `json:"admin_bootstrap_verified"`

	order   []string
	results map[string]ValidationResult
}

// NamedResult pairs a test name with its result, preserving report order.
type NamedResult struct {
	TestName string           `json:"test_name"`
	Result   ValidationResult `json:"result"`
}

// NewValidationReport creates an empty report.
func NewValidationReport() *ValidationReport {
	return &ValidationReport{results: make(map[string]ValidationResult)}
}

// AddResult records a result under name. A later write for the same
// name replaces the earlier one but keeps its original position.
func (r *ValidationReport) AddResult(name string, result ValidationResult) {
	if r.results == nil {
		r.results = make(map[string]ValidationResult)
	}
	if _, seen := r.results[name]; !seen {
		r.order = append(r.order, name)
	}
	r.results[name] = result
}

// Result returns the result recorded under name.
func (r *ValidationReport) Result(name string) (ValidationResult, bool) {
	res, ok := r.results[name]
	return res, ok
}

// Len returns the number of distinct test names recorded.
func (r *ValidationReport) Len() int { return len(r.order) }

// Results returns all results in insertion order.
func (r *ValidationReport) Results() []NamedResult {
	out := make([]NamedResult, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, NamedResult{TestName: name, Result: r.results[name]})
	}
	return out
}

// FailedTests returns the failing entries in insertion order.
func (r *ValidationReport) FailedTests() []NamedResult {
	var out []NamedResult
	for _, name := range r.order {
		if res := r.results[name]; !res.Passed {
			out = append(out, NamedResult{TestName: name, Result: res})
		}
	}
	return out
}

// AllTestsPassed reports whether the report is non-empty and every
// recorded result passed.
func (r *ValidationReport) AllTestsPassed() bool {
	if len(r.order) == 0 {
		return false
	}
	for _, name := range r.order {
		if !r.results[name].Passed {
			return false
		}
	}
	return true
}
