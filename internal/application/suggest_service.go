package application

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/camelcase"

	"github.com/talowa/remedy/internal/domain"
)

// SuggestService maps failed checks to remediation plans using the
// engine's rule table. Generation is pure: it never touches the target
// application.
type SuggestService struct {
	rules  *domain.RuleSet
	logger *log.Logger
}

// NewSuggestService creates a SuggestService over the given rule table.
func NewSuggestService(rules *domain.RuleSet, logger *log.Logger) *SuggestService {
	if logger == nil {
		logger = log.Default()
	}
	return &SuggestService{rules: rules, logger: logger}
}

// GenerateFixSuggestions returns one suggestion per fixable failed
// test, keyed by test name. Failures with no matching rule are simply
// omitted; a rule that instantiates to an invalid suggestion is
// dropped before it can reach the application engine.
func (s *SuggestService) GenerateFixSuggestions(report *domain.ValidationReport) map[string]domain.FixSuggestion {
	out := make(map[string]domain.FixSuggestion)
	for _, sg := range s.OrderedSuggestions(report) {
		out[sg.TestName] = sg
	}
	return out
}

// OrderedSuggestions returns the same suggestions in report order. The
// application engine iterates this form so fixes run in the order the
// checks ran.
func (s *SuggestService) OrderedSuggestions(report *domain.ValidationReport) []domain.FixSuggestion {
	if report == nil {
		return nil
	}

	var out []domain.FixSuggestion
	for _, entry := range report.FailedTests() {
		cat := domain.Classify(entry.TestName, entry.Result)
		rule, ok := s.rules.Match(cat)
		if !ok {
			s.logger.Debug("no remediation rule", "test", entry.TestName, "category", cat.String())
			continue
		}

		suggestion := rule.Suggestion(entry.TestName)
		if err := suggestion.Validate(); err != nil {
			s.logger.Warn("dropping invalid fix suggestion", "test", entry.TestName, "err", err)
			continue
		}
		out = append(out, suggestion)
	}
	return out
}

// GenerateFixSuggestionsReport renders the suggestions as plain text
// suitable for embedding in a larger session report. The "Fix
// Suggestions" heading is part of the contract with external renderers.
func (s *SuggestService) GenerateFixSuggestionsReport(report *domain.ValidationReport) string {
	suggestions := s.OrderedSuggestions(report)
	if len(suggestions) == 0 {
		return "No automatic fix suggestions available.\n"
	}

	var b strings.Builder
	b.WriteString("## Fix Suggestions\n\n")

	for _, sg := range suggestions {
		b.WriteString(fmt.Sprintf("### %s\n", sg.TestName))

		if result, ok := report.Result(sg.TestName); ok {
			if result.SuspectedModule != "" {
				b.WriteString(fmt.Sprintf("Suspected module: %s\n", humanizeIdentifier(result.SuspectedModule)))
			}
			if result.ErrorDetails != "" {
				b.WriteString(fmt.Sprintf("Details: %s\n", result.ErrorDetails))
			}
		}

		b.WriteString("Fix steps:\n")
		for i, step := range sg.FixSteps {
			b.WriteString(fmt.Sprintf("  %d. %s :: %s", i+1, step.FileReference, step.FunctionReference))
			if step.Description != "" {
				b.WriteString(" - " + step.Description)
			}
			b.WriteString("\n")
		}

		b.WriteString("Verification:\n")
		for i, v := range sg.VerificationSteps {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, v))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// humanizeIdentifier turns a code identifier like "BootstrapService"
// into "Bootstrap Service" for report output.
func humanizeIdentifier(ident string) string {
	return strings.Join(camelcase.Split(ident), " ")
}
