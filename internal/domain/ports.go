package domain

import "context"

// Validator is one external check against the target application.
type Validator interface {
	Case() TestCase
	Run(ctx context.Context) ValidationResult
}

// Revalidator re-runs the check that originally produced a result for
// testName. The fix application engine uses it after a fix chain
// completes cleanly in real mode.
type Revalidator interface {
	Revalidate(ctx context.Context, testName string) (ValidationResult, error)
}

// FixExecutor applies fix steps to the target application.
type FixExecutor interface {
	// Preview evaluates a step without mutating anything and describes
	// what applying it would do.
	Preview(step FixStep) (string, error)
	// Capture reads the pre-change state for a step so it can be
	// reverted later.
	Capture(step FixStep) (RestoreState, error)
	// Apply executes the step and returns an applied-action
	// description for the audit trail.
	Apply(ctx context.Context, step FixStep) (string, error)
	// Revert restores previously captured state.
	Revert(state RestoreState) error
}

// RestoreJournal persists restore points across the process boundary.
type RestoreJournal interface {
	Append(point RestorePoint) error
	Load() ([]RestorePoint, error)
	Replace(points []RestorePoint) error
}

// ConfigLoader loads the engine configuration for a target path.
type ConfigLoader interface {
	Load(targetPath string) (EngineConfig, error)
}

// GitInfo reports version-control metadata for the target tree.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}
