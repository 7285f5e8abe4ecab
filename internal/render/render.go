// Package render writes engine output to a terminal in human-readable form.
// JSON output bypasses this package entirely.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/viableos/viableos/pkg/models"
)

// Renderer writes styled reports to a single writer.
type Renderer struct {
	w io.Writer

	headerStyle lipgloss.Style
	scoreFull   lipgloss.Style
	scoreEmpty  lipgloss.Style
}

// New creates a Renderer. When colorEnabled is false all output is plain text.
func New(w io.Writer, colorEnabled bool) *Renderer {
	if !colorEnabled {
		color.NoColor = true
	}
	r := &Renderer{
		w: w,
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),
		scoreFull:  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		scoreEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
	if !colorEnabled {
		r.headerStyle = lipgloss.NewStyle()
		r.scoreFull = lipgloss.NewStyle()
		r.scoreEmpty = lipgloss.NewStyle()
	}
	return r
}

// Report renders a viability report: score, per-check status, then warnings
// ordered critical first.
func (r *Renderer) Report(name string, report *models.ViabilityReport) {
	title := "Viability Report"
	if name != "" {
		title = fmt.Sprintf("Viability Report: %s", name)
	}
	fmt.Fprintln(r.w, r.headerStyle.Render(title))
	fmt.Fprintf(r.w, "Score: %d/%d %s\n\n", report.Score, report.Total, r.scoreBar(report.Score, report.Total))

	for _, check := range report.Checks {
		if check.Present {
			fmt.Fprintf(r.w, "%s %s %s\n", color.GreenString("✓"), check.System, check.Name)
		} else {
			fmt.Fprintf(r.w, "%s %s %s\n", color.RedString("✗"), check.System, check.Name)
		}
		if check.Details != "" {
			fmt.Fprintf(r.w, "    %s\n", check.Details)
		}
		for _, s := range check.Suggestions {
			fmt.Fprintf(r.w, "    %s %s\n", color.CyanString("→"), s)
		}
	}

	r.warnings(report.Warnings)
}

func (r *Renderer) warnings(warnings []models.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(r.w, "\n%s\n", r.headerStyle.Render("Warnings"))

	// Criticals surface first; within a severity the engine order holds.
	for _, sev := range []models.Severity{models.SeverityCritical, models.SeverityWarning, models.SeverityInfo} {
		for _, w := range warnings {
			if w.Severity != sev {
				continue
			}
			fmt.Fprintf(r.w, "%s [%s] %s\n", severityTag(w.Severity), w.Category, w.Message)
			if w.Suggestion != "" {
				fmt.Fprintf(r.w, "    %s %s\n", color.CyanString("→"), w.Suggestion)
			}
		}
	}
}

// Plan renders a budget plan as a per-agent table followed by the routing map.
func (r *Renderer) Plan(plan *models.BudgetPlan) {
	fmt.Fprintln(r.w, r.headerStyle.Render(fmt.Sprintf("Budget Plan: $%.2f/month (%s)", plan.TotalMonthlyUSD, plan.Strategy)))
	fmt.Fprintln(r.w)

	nameWidth := len("Agent")
	for _, a := range plan.Allocations {
		if len(a.FriendlyName) > nameWidth {
			nameWidth = len(a.FriendlyName)
		}
	}

	fmt.Fprintf(r.w, "  %-*s  %8s  %4s  %s\n", nameWidth, "Agent", "Monthly", "%", "Model")
	for _, a := range plan.Allocations {
		line := fmt.Sprintf("  %-*s  %8s  %3d%%  %s",
			nameWidth, a.FriendlyName, fmt.Sprintf("$%.2f", a.MonthlyUSD), a.Percentage, a.Model)
		if strings.HasPrefix(a.System, "S1:") {
			fmt.Fprintln(r.w, line)
		} else {
			fmt.Fprintln(r.w, color.New(color.Faint).Sprint(line))
		}
	}

	fmt.Fprintf(r.w, "\n%s\n", r.headerStyle.Render("Model Routing"))
	for _, slot := range models.RoutingSlots {
		if m, ok := plan.ModelRouting[slot]; ok {
			fmt.Fprintf(r.w, "  %-18s %s\n", slot, m)
		}
	}
}

// Rules renders coordination rules grouped by scope.
func (r *Renderer) Rules(rules []models.CoordinationRule) {
	if len(rules) == 0 {
		fmt.Fprintln(r.w, "No coordination rules. Add operational units to generate some.")
		return
	}
	fmt.Fprintln(r.w, r.headerStyle.Render(fmt.Sprintf("Coordination Rules (%d)", len(rules))))
	for _, rule := range rules {
		scope := rule.Scope
		if scope == "" {
			scope = "global"
		}
		fmt.Fprintf(r.w, "  %s %s\n", color.YellowString("when"), rule.Trigger)
		fmt.Fprintf(r.w, "  %s %s  %s\n", color.GreenString("then"), rule.Action, color.New(color.Faint).Sprintf("(%s)", scope))
	}
}

func (r *Renderer) scoreBar(score, total int) string {
	if total <= 0 {
		return ""
	}
	return "[" + r.scoreFull.Render(strings.Repeat("█", score)) +
		r.scoreEmpty.Render(strings.Repeat("░", total-score)) + "]"
}

func severityTag(s models.Severity) string {
	switch s {
	case models.SeverityCritical:
		return color.RedString("CRITICAL")
	case models.SeverityWarning:
		return color.YellowString("WARNING ")
	default:
		return color.CyanString("INFO    ")
	}
}
