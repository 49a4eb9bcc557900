package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/talowa/remedy/internal/adapters/outbound/gitinfo"
	"github.com/talowa/remedy/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle           = lipgloss.NewStyle().Foreground(dim)
	faintStyle         = lipgloss.NewStyle().Foreground(faint)
	passStyle          = lipgloss.NewStyle().Foreground(success)
	failStyle          = lipgloss.NewStyle().Foreground(danger)
	warnStyle          = lipgloss.NewStyle().Foreground(warning)
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderReport renders a validation report as a styled TUI string.
func RenderReport(report *domain.ValidationReport) string {
	var b strings.Builder

	title := headerStyle.Render("remedy")
	subtitle := dimStyle.Render("Validation Report")
	status := passStyle.Render("ALL CHECKS PASSING")
	if !report.AllTestsPassed() {
		status = failStyle.Render(fmt.Sprintf("%d CHECK(S) FAILING", len(report.FailedTests())))
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + status))
	b.WriteString("\n\n")

	for _, entry := range report.Results() {
		marker := passStyle.Render("✓")
		if !entry.Result.Passed {
			marker = failStyle.Render("✗")
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", marker, titleStyle.Render(entry.TestName), dimStyle.Render(entry.Result.Message)))
		if entry.Result.SuspectedModule != "" {
			b.WriteString("      " + faintStyle.Render("suspect: "+entry.Result.SuspectedModule) + "\n")
		}
	}

	if report.CommitHash != "" {
		b.WriteString("\n  " + faintStyle.Render("commit "+gitinfo.ShortHash(report.CommitHash)) + "\n")
	}
	return b.String()
}

// RenderFixSummary renders a fix application summary.
func RenderFixSummary(summary *domain.FixApplicationSummary) string {
	var b strings.Builder

	b.WriteString("\n  " + sectionHeaderStyle.Render("Fix Application") +
		dimStyle.Render(fmt.Sprintf("  (%d fix(es) attempted)", summary.TotalFixes)) + "\n")

	for _, nf := range summary.Results() {
		marker := passStyle.Render("●")
		if nf.Result.RollbackError != "" || strings.HasPrefix(nf.Result.Message, "Fix failed") {
			marker = failStyle.Render("●")
		} else if nf.Result.Revalidation != nil && !nf.Result.Revalidation.Passed {
			marker = warnStyle.Render("●")
		}
		b.WriteString(fmt.Sprintf("    %s %s  %s\n", marker, titleStyle.Render(nf.TestName), dimStyle.Render(nf.Result.Message)))
		for _, action := range nf.Result.AppliedActions {
			b.WriteString("        " + faintStyle.Render(action) + "\n")
		}
		if nf.Result.RollbackError != "" {
			b.WriteString("        " + failStyle.Render("rollback error: "+nf.Result.RollbackError) + "\n")
		}
	}

	if summary.ValidationResult != nil {
		style := passStyle
		if !summary.ValidationResult.Passed {
			style = warnStyle
		}
		b.WriteString("\n    " + style.Render(summary.ValidationResult.Message) + "\n")
	}
	return b.String()
}

// RenderRollbackSummary renders the outcome of a rollback pass.
func RenderRollbackSummary(rb domain.RollbackSummary) string {
	var b strings.Builder

	b.WriteString("\n  " + sectionHeaderStyle.Render("Rollback") + "\n")
	b.WriteString(fmt.Sprintf("    attempted %d, rolled back %d, remaining %d\n",
		rb.Attempted, rb.RolledBack, rb.Remaining))

	for test, msg := range rb.Errors {
		b.WriteString("    " + failStyle.Render("● "+test) + "  " + dimStyle.Render(msg) + "\n")
	}
	if !rb.Failed() && rb.Attempted == 0 {
		b.WriteString("    " + hintStyle.Render("nothing to roll back") + "\n")
	}
	return b.String()
}
