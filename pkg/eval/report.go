package eval

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Report Styles
// =============================================================================

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	reportGoalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	reportPassStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	reportFailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	reportNearStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	reportDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	severityStyles = map[Severity]lipgloss.Style{
		SeverityCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("167")),
		SeverityMajor:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		SeverityMinor:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
)

// =============================================================================
// Formatting
// =============================================================================

// FormatResult renders one archetype's evaluation as a human-readable report.
// Failure lines name the constraint, its description, the required versus
// actual value, and the percentage deviation, so a failing automated test's
// output explains itself.
func FormatResult(r Result) string {
	var b strings.Builder

	verdict := reportPassStyle.Render("satisfied")
	if !r.Satisfied {
		verdict = reportFailStyle.Render("not satisfied")
	}
	fmt.Fprintf(&b, "%s  %s  (score %.0f%%)\n",
		reportTitleStyle.Render(r.Archetype.Name), verdict, r.Score*100)
	if r.Archetype.Goal != "" {
		fmt.Fprintf(&b, "%s\n", reportGoalStyle.Render(r.Archetype.Goal))
	}

	for _, f := range r.Failures {
		sev := severityStyles[f.Constraint.Severity].Render(string(f.Constraint.Severity))
		fmt.Fprintf(&b, "  %s %s [%s]\n", reportFailStyle.Render("✗"), f.Constraint.Name, sev)
		if f.Constraint.Description != "" {
			fmt.Fprintf(&b, "    %s\n", reportDimStyle.Render(f.Constraint.Description))
		}
		if f.Missing {
			fmt.Fprintf(&b, "    %s\n", reportDimStyle.Render(
				fmt.Sprintf("fact %q is missing from the measurement", f.Constraint.Fact)))
			continue
		}
		fmt.Fprintf(&b, "    required %s %s %s, got %s (%s off)\n",
			f.Constraint.Fact,
			f.Constraint.Op,
			formatNum(f.Constraint.Threshold),
			formatNum(f.Actual),
			formatPct(f.GapFraction))
	}

	for _, nm := range r.NearMisses {
		fmt.Fprintf(&b, "  %s %s passes with only %s margin (%s %s %s, got %s)\n",
			reportNearStyle.Render("!"),
			nm.Constraint.Name,
			formatPct(nm.GapFraction),
			nm.Constraint.Fact,
			nm.Constraint.Op,
			formatNum(nm.Constraint.Threshold),
			formatNum(nm.Actual))
	}

	if r.Satisfied && len(r.NearMisses) == 0 {
		fmt.Fprintf(&b, "  %s all %d constraints pass\n",
			reportPassStyle.Render("✓"), len(r.Passing))
	}
	return b.String()
}

// FormatSummary renders one comparison line per archetype.
func FormatSummary(rows []SummaryRow) string {
	var b strings.Builder
	for _, row := range rows {
		icon := reportPassStyle.Render("✓")
		detail := ""
		if !row.Satisfied {
			icon = reportFailStyle.Render("✗")
			detail = reportDimStyle.Render(
				fmt.Sprintf("  %d failing, worst: %s", row.Failures, row.TopFailure))
		}
		fmt.Fprintf(&b, "%s %-22s %3.0f%%%s\n", icon, row.Archetype.Name, row.Score*100, detail)
	}
	return b.String()
}

func formatNum(v float64) string {
	if v == float64(int64(v)) && v > -1e9 && v < 1e9 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.3g", v)
}

func formatPct(frac float64) string {
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%.1f%%", frac*100)
}
