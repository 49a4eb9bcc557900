package domain

import (
	"errors"
	"fmt"
)

// FixStep is one remediation action. FileReference and
// FunctionReference locate where in the target application the change
// applies; they are opaque locators resolved by the fix executor, not
// paths this engine interprets itself.
type FixStep struct {
	FileReference     string `json:"file_reference" yaml:"file"`
	FunctionReference string `json:"function_reference" yaml:"function"`
	Description       string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Locator returns the executor lookup key for the step.
func (s FixStep) Locator() string {
	return s.FileReference + "#" + s.FunctionReference
}

// Validate checks that both locator halves are present.
func (s FixStep) Validate() error {
	if s.FileReference == "" {
		return errors.New("fix step missing file reference")
	}
	if s.FunctionReference == "" {
		return errors.New("fix step missing function reference")
	}
	return nil
}

// FixSuggestion is the generated remediation plan for one failing test.
type FixSuggestion struct {
	TestName          string    `json:"test_name"`
	FixSteps          []FixStep `json:"fix_steps"`
	VerificationSteps []string  `json:"verification_steps"`
}

// Validate rejects suggestions with no steps, no verification steps,
// or incomplete locators. The generator drops anything that fails here
// rather than emitting it.
func (s FixSuggestion) Validate() error {
	if s.TestName == "" {
		return errors.New("fix suggestion missing test name")
	}
	if len(s.FixSteps) == 0 {
		return fmt.Errorf("fix suggestion for %q has no fix steps", s.TestName)
	}
	if len(s.VerificationSteps) == 0 {
		return fmt.Errorf("fix suggestion for %q has no verification steps", s.TestName)
	}
	for i, step := range s.FixSteps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("fix suggestion for %q step %d: %w", s.TestName, i, err)
		}
	}
	return nil
}
