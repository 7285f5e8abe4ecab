// Package checker evaluates a Config against the six-function viable system
// model. It produces a scored presence report plus an independent set of
// pathology warnings; the two are never folded into one verdict.
package checker

import (
	"fmt"
	"strings"

	"github.com/viableos/viableos/internal/catalog"
	"github.com/viableos/viableos/pkg/models"
)

// Checker runs viability checks against an injected catalog.
type Checker struct {
	catalog *catalog.Catalog
}

// NewChecker creates a Checker backed by the given catalog.
func NewChecker(c *catalog.Catalog) *Checker {
	return &Checker{catalog: c}
}

// Check evaluates the config. It is total: any structurally valid Config
// produces a report, absent optional sections count as "not configured".
// The provider-diversity warning needs a computed BudgetPlan and is skipped
// here; use CheckWithPlan when one is available.
func (c *Checker) Check(cfg *models.Config) *models.ViabilityReport {
	return c.CheckWithPlan(cfg, nil)
}

// CheckWithPlan evaluates the config, additionally running the warning rules
// that need a computed BudgetPlan. plan may be nil.
func (c *Checker) CheckWithPlan(cfg *models.Config, plan *models.BudgetPlan) *models.ViabilityReport {
	vs := &cfg.ViableSystem

	checks := []models.CheckResult{
		checkS1(vs),
		checkS2(vs),
		checkS3(vs),
		checkS3Star(vs),
		checkS4(vs),
		checkS5(vs),
	}

	score := 0
	for _, ck := range checks {
		if ck.Present {
			score++
		}
	}

	return &models.ViabilityReport{
		Score:    score,
		Total:    6,
		Checks:   checks,
		Warnings: c.warnings(vs, plan),
	}
}

func checkS1(vs *models.ViableSystem) models.CheckResult {
	units := vs.System1
	if len(units) == 0 {
		return models.CheckResult{
			System:      "S1",
			Name:        "Operations",
			Details:     "No operational units defined",
			Suggestions: []string{"Define at least one operational unit"},
		}
	}

	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name
	}
	return models.CheckResult{
		System:  "S1",
		Name:    "Operations",
		Present: true,
		Details: fmt.Sprintf("%d %s: %s", len(units), plural(len(units), "unit"), strings.Join(names, ", ")),
	}
}

func checkS2(vs *models.ViableSystem) models.CheckResult {
	var rules []models.CoordinationRule
	if vs.System2 != nil {
		rules = vs.System2.CoordinationRules
	}
	if len(rules) == 0 {
		return models.CheckResult{
			System:      "S2",
			Name:        "Coordination",
			Details:     "No coordination rules defined",
			Suggestions: []string{"Add at least one coordination rule to prevent agent conflicts"},
		}
	}
	return models.CheckResult{
		System:  "S2",
		Name:    "Coordination",
		Present: true,
		Details: fmt.Sprintf("%d %s defined", len(rules), plural(len(rules), "rule")),
	}
}

func checkS3(vs *models.ViableSystem) models.CheckResult {
	s3 := vs.System3
	if s3 == nil || (s3.ReportingRhythm == "" && s3.ResourceAllocation == "") {
		return models.CheckResult{
			System:      "S3",
			Name:        "Optimization",
			Details:     "No optimization configuration defined",
			Suggestions: []string{"Add a resource allocation policy or a reporting rhythm"},
		}
	}

	var parts []string
	if s3.ReportingRhythm != "" {
		parts = append(parts, capitalize(s3.ReportingRhythm)+" reporting")
	}
	if s3.ResourceAllocation != "" {
		parts = append(parts, "resource allocation set")
	}
	return models.CheckResult{
		System:  "S3",
		Name:    "Optimization",
		Present: true,
		Details: strings.Join(parts, ", "),
	}
}

func checkS3Star(vs *models.ViableSystem) models.CheckResult {
	var audits []models.AuditCheck
	if vs.System3Star != nil {
		audits = vs.System3Star.Checks
	}
	if len(audits) == 0 {
		return models.CheckResult{
			System:      "S3*",
			Name:        "Audit",
			Details:     "No audit checks defined",
			Suggestions: []string{"Add audit checks — don't trust agent self-reports"},
		}
	}

	names := make([]string, len(audits))
	for i, a := range audits {
		names[i] = a.Name
	}
	return models.CheckResult{
		System:  "S3*",
		Name:    "Audit",
		Present: true,
		Details: fmt.Sprintf("%d %s: %s", len(audits), plural(len(audits), "check"), strings.Join(names, ", ")),
	}
}

func checkS4(vs *models.ViableSystem) models.CheckResult {
	var populated []string
	if vs.System4 != nil {
		m := vs.System4.Monitoring
		if len(m.Competitors) > 0 {
			populated = append(populated, "competitors")
		}
		if len(m.Technology) > 0 {
			populated = append(populated, "technology")
		}
		if len(m.Regulation) > 0 {
			populated = append(populated, "regulation")
		}
	}
	if len(populated) == 0 {
		return models.CheckResult{
			System:      "S4",
			Name:        "Intelligence",
			Details:     "No environment monitoring defined",
			Suggestions: []string{"Add environment monitoring (competitors, technology, regulation)"},
		}
	}
	return models.CheckResult{
		System:  "S4",
		Name:    "Intelligence",
		Present: true,
		Details: "Monitoring: " + strings.Join(populated, ", "),
	}
}

func checkS5(vs *models.ViableSystem) models.CheckResult {
	purpose := strings.TrimSpace(vs.Identity.Purpose)
	if purpose == "" {
		return models.CheckResult{
			System:      "S5",
			Name:        "Identity",
			Details:     "No purpose defined",
			Suggestions: []string{"Define your system's purpose and values"},
		}
	}
	return models.CheckResult{
		System:  "S5",
		Name:    "Identity",
		Present: true,
		Details: fmt.Sprintf("Purpose: %q", purpose),
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
