package domain

import "time"

// ApplyOptions controls one fix application pass.
type ApplyOptions struct {
	DryRun         bool `json:"dry_run"`
	EnableRollback bool `json:"enable_rollback"`
}

// FixApplicationResult is the per-test outcome of an apply pass.
// AppliedActions records every attempted step in execution order, not
// only the ones whose effect turned out to be correct.
type FixApplicationResult struct {
	Message        string            `json:"message"`
	AppliedActions []string          `json:"applied_actions,omitempty"`
	RollbackError  string            `json:"rollback_error,omitempty"`
	Revalidation   *ValidationResult `json:"revalidation,omitempty"`
}

// FixApplicationSummary is the whole-session outcome of one apply
// invocation. Results preserve report order. ValidationResult is set
// only when post-fix re-validation actually executed.
type FixApplicationSummary struct {
	TotalFixes       int               `json:"total_fixes"`
	ValidationResult *ValidationResult `json:"validation_result,omitempty"`

	order   []string
	results map[string]FixApplicationResult
}

// NewFixApplicationSummary creates an empty summary.
func NewFixApplicationSummary() *FixApplicationSummary {
	return &FixApplicationSummary{results: make(map[string]FixApplicationResult)}
}

// AddResult records the outcome for one test.
func (s *FixApplicationSummary) AddResult(testName string, result FixApplicationResult) {
	if s.results == nil {
		s.results = make(map[string]FixApplicationResult)
	}
	if _, seen := s.results[testName]; !seen {
		s.order = append(s.order, testName)
	}
	s.results[testName] = result
}

// Result returns the recorded outcome for testName.
func (s *FixApplicationSummary) Result(testName string) (FixApplicationResult, bool) {
	r, ok := s.results[testName]
	return r, ok
}

// Results returns all outcomes in report order.
func (s *FixApplicationSummary) Results() []NamedFixResult {
	out := make([]NamedFixResult, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, NamedFixResult{TestName: name, Result: s.results[name]})
	}
	return out
}

// NamedFixResult pairs a test name with its fix outcome.
type NamedFixResult struct {
	TestName string               `json:"test_name"`
	Result   FixApplicationResult `json:"result"`
}

// RestoreState is the captured pre-change state for one fix step.
type RestoreState struct {
	Locator string `json:"locator"`
	Before  []byte `json:"before"`
	Existed bool   `json:"existed"`
}

// RestorePoint ties a restore state to the test and step that produced
// it. The rollback manager undoes points in reverse insertion order.
type RestorePoint struct {
	TestName    string       `json:"test_name"`
	ActionIndex int          `json:"action_index"`
	State       RestoreState `json:"state"`
	At          time.Time    `json:"at"`
}

// RollbackSummary reports one rollback pass. Partial success is
// representable: Errors holds the first undo failure per test chain.
type RollbackSummary struct {
	Attempted  int               `json:"attempted"`
	RolledBack int               `json:"rolled_back"`
	Remaining  int               `json:"remaining"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// Failed reports whether any chain failed to unwind.
func (s RollbackSummary) Failed() bool { return len(s.Errors) > 0 }
