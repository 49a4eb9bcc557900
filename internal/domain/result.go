package domain

// ValidationResult is the outcome of a single check against the target
// application. Values are immutable once constructed: use Pass or Fail.
type ValidationResult struct {
	Passed          bool   `json:"passed"`
	Message         string `json:"message"`
	ErrorDetails    string `json:"error_details,omitempty"`
	SuspectedModule string `json:"suspected_module,omitempty"`
	SuggestedFix    string `json:"suggested_fix,omitempty"`
}

// FailOption attaches optional diagnostic context to a failing result.
type FailOption func(*ValidationResult)

// WithErrorDetails records the raw error text behind the failure.
func WithErrorDetails(details string) FailOption {
	return func(r *ValidationResult) { r.ErrorDetails = details }
}

// WithSuspectedModule names the component most likely at fault. The
// suggestion generator uses it as the primary rule-matching key.
func WithSuspectedModule(module string) FailOption {
	return func(r *ValidationResult) { r.SuspectedModule = module }
}

// WithSuggestedFix records a human-readable remediation hint.
func WithSuggestedFix(hint string) FailOption {
	return func(r *ValidationResult) { r.SuggestedFix = hint }
}

// Pass constructs a passing result.
func Pass(message string) ValidationResult {
	return ValidationResult{Passed: true, Message: message}
}

// Fail constructs a failing result with optional diagnostic fields.
func Fail(message string, opts ...FailOption) ValidationResult {
	r := ValidationResult{Passed: false, Message: message}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
