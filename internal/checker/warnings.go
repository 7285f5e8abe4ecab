package checker

import (
	"fmt"
	"strings"

	"github.com/viableos/viableos/pkg/models"
)

// sensitiveTools are tool scopes that demand independent audit coverage.
var sensitiveTools = map[string]bool{
	"ssh":                true,
	"deployment":         true,
	"docker":             true,
	"payment-processing": true,
	"customer-data":      true,
	"database":           true,
}

// maxStartingUnits is the unit count beyond which an unruled rollout draws a
// warning: community experience says start with one or two units.
const maxStartingUnits = 3

// warnings runs every pathology rule. The rules are independent of each other
// and of the presence checks; each appends zero or more warnings.
func (c *Checker) warnings(vs *models.ViableSystem, plan *models.BudgetPlan) []models.Warning {
	var out []models.Warning
	out = append(out, c.operationsWarnings(vs)...)
	out = append(out, c.auditWarnings(vs)...)
	out = append(out, c.identityWarnings(vs)...)
	out = append(out, c.budgetWarnings(vs)...)
	out = append(out, c.coordinationWarnings(vs)...)
	out = append(out, c.modelWarnings(vs)...)
	out = append(out, c.persistenceWarnings(vs)...)
	out = append(out, c.rolloutWarnings(vs)...)
	out = append(out, c.providerDiversityWarnings(vs, plan)...)
	return out
}

func (c *Checker) operationsWarnings(vs *models.ViableSystem) []models.Warning {
	if len(vs.System1) == 1 && vs.System1[0].Autonomy == models.AutonomyFull {
		return []models.Warning{{
			Category: "operations",
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("%q is your only operational unit and runs at full autonomy — a single point of failure.",
				vs.System1[0].Name),
			Suggestion: "Split the work across units, or lower autonomy so a human catches its mistakes.",
		}}
	}
	return nil
}

func (c *Checker) auditWarnings(vs *models.ViableSystem) []models.Warning {
	hasAudit := vs.System3Star != nil && len(vs.System3Star.Checks) > 0
	var warnings []models.Warning

	if !hasAudit {
		var highAutonomy []string
		for _, u := range vs.System1 {
			if u.Autonomy == models.AutonomyFull {
				highAutonomy = append(highAutonomy, u.Name)
			}
		}
		if len(highAutonomy) > 0 {
			warnings = append(warnings, models.Warning{
				Category: "audit",
				Severity: models.SeverityCritical,
				Message: fmt.Sprintf("Full-autonomy %s (%s) with no audit checks: nothing verifies their output.",
					plural(len(highAutonomy), "unit"), strings.Join(highAutonomy, ", ")),
				Suggestion: "Add audit checks before granting full autonomy — agents cannot audit themselves.",
			})
		}
	}

	// Sensitive tool scopes need independent verification regardless of
	// autonomy level.
	if !hasAudit {
		var exposed []string
		for _, u := range vs.System1 {
			var risky []string
			for _, tool := range u.Tools {
				if sensitiveTools[strings.ToLower(tool)] {
					risky = append(risky, tool)
				}
			}
			if len(risky) > 0 {
				exposed = append(exposed, fmt.Sprintf("%s (%s)", u.Name, strings.Join(risky, ", ")))
			}
		}
		if len(exposed) > 0 {
			warnings = append(warnings, models.Warning{
				Category:   "security",
				Severity:   models.SeverityCritical,
				Message:    "Units hold sensitive tools with no audit coverage: " + strings.Join(exposed, "; "),
				Suggestion: "Add audit checks — agents with sensitive tool access need independent verification.",
			})
		}
	}

	return warnings
}

func (c *Checker) identityWarnings(vs *models.ViableSystem) []models.Warning {
	if len(vs.Identity.NeverDo) == 0 {
		return []models.Warning{{
			Category:   "identity",
			Severity:   models.SeverityInfo,
			Message:    "No 'never do' boundaries defined for agents.",
			Suggestion: "Define what agents must never do (e.g. 'delete production data', 'send emails without approval').",
		}}
	}
	return nil
}

func (c *Checker) budgetWarnings(vs *models.ViableSystem) []models.Warning {
	var warnings []models.Warning
	monthly := vs.Budget.MonthlyUSD

	switch {
	case monthly <= 0:
		warnings = append(warnings, models.Warning{
			Category:   "budget",
			Severity:   models.SeverityCritical,
			Message:    "No monthly budget defined. Without limits, costs can spiral out of control.",
			Suggestion: "Set a monthly budget — even $50/month with the frugal strategy is better than nothing.",
		})
	case monthly < c.catalog.ViableFloor(len(vs.System1)):
		warnings = append(warnings, models.Warning{
			Category: "budget",
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("Budget of $%.2f/month is below the $%.0f floor needed to give every unit a paid-tier model.",
				monthly, c.catalog.ViableFloor(len(vs.System1))),
			Suggestion: "Raise the budget or reduce the number of operational units.",
		})
	}

	if monthly > 0 && vs.Budget.Alerts == nil {
		warnings = append(warnings, models.Warning{
			Category:   "budget",
			Severity:   models.SeverityWarning,
			Message:    "Budget set but no alerts configured. You won't know when you're overspending.",
			Suggestion: "Add budget alerts (e.g. warn at 80%, auto-downgrade at 95%).",
		})
	}

	return warnings
}

func (c *Checker) coordinationWarnings(vs *models.ViableSystem) []models.Warning {
	hasRules := vs.System2 != nil && len(vs.System2.CoordinationRules) > 0
	if hasRules && len(vs.System1) == 0 {
		return []models.Warning{{
			Category:   "coordination",
			Severity:   models.SeverityInfo,
			Message:    "Coordination rules exist but there are no operational units to coordinate.",
			Suggestion: "Define the operational units the rules are meant to govern.",
		}}
	}
	return nil
}

func (c *Checker) modelWarnings(vs *models.ViableSystem) []models.Warning {
	inUse := make(map[string]bool)
	for _, u := range vs.System1 {
		if u.Model != "" {
			inUse[u.Model] = true
		}
	}
	for key, model := range vs.ModelRouting {
		if key != "provider_preference" && model != "" {
			inUse[model] = true
		}
	}

	var warnings []models.Warning
	// Deterministic order: walk the catalog's sorted ids, not the map.
	for _, id := range c.catalog.AllModels() {
		if !inUse[id] {
			continue
		}
		m, _ := c.catalog.Lookup(id)
		if m.Warning == "" {
			continue
		}
		warnings = append(warnings, models.Warning{
			Category:   "models",
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("%s: %s", id, m.Warning),
			Suggestion: "Consider a model with excellent agent reliability for production use.",
		})
	}
	return warnings
}

func (c *Checker) persistenceWarnings(vs *models.ViableSystem) []models.Warning {
	if vs.Persistence == nil || vs.Persistence.Strategy == "" || vs.Persistence.Strategy == "none" {
		return []models.Warning{{
			Category:   "persistence",
			Severity:   models.SeverityWarning,
			Message:    "No persistence strategy defined. Agent state is lost when sessions end.",
			Suggestion: "Configure persistence (sqlite or file) so agents can resume work across sessions.",
		}}
	}
	return nil
}

func (c *Checker) rolloutWarnings(vs *models.ViableSystem) []models.Warning {
	var warnings []models.Warning
	hasRules := vs.System2 != nil && len(vs.System2.CoordinationRules) > 0

	if len(vs.System1) > maxStartingUnits && !hasRules {
		warnings = append(warnings, models.Warning{
			Category: "rollout",
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("Starting with %d agents at once and no coordination rules. Community experience: start with 1-2.",
				len(vs.System1)),
			Suggestion: "Get your most important unit working end-to-end, then add more.",
		})
	}

	if vs.HumanInTheLoop == nil || len(vs.HumanInTheLoop.ApprovalRequired) == 0 {
		warnings = append(warnings, models.Warning{
			Category:   "rollout",
			Severity:   models.SeverityWarning,
			Message:    "No human-in-the-loop approvals configured.",
			Suggestion: "Define which actions need your approval. Start strict, loosen as you build trust.",
		})
	}

	return warnings
}

// providerDiversityWarnings needs a computed plan; without one the rule is
// skipped entirely.
func (c *Checker) providerDiversityWarnings(vs *models.ViableSystem, plan *models.BudgetPlan) []models.Warning {
	if plan == nil {
		return nil
	}

	s1Provider := c.catalog.Provider(plan.ModelRouting[models.RouteS1Routine])
	auditProvider := c.catalog.Provider(plan.ModelRouting[models.RouteS3StarAudit])
	if s1Provider != "" && s1Provider == auditProvider {
		return []models.Warning{{
			Category: "security",
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("Operations and the Auditor both use %s models. Correlated errors are likely.",
				s1Provider),
			Suggestion: "Route the Auditor through a different provider to catch mistakes the S1 models share.",
		}}
	}
	return nil
}
