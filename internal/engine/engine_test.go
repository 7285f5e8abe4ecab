package engine

import (
	"errors"
	"testing"

	"github.com/viableos/viableos/internal/budget"
	"github.com/viableos/viableos/internal/catalog"
	"github.com/viableos/viableos/pkg/models"
)

func growthConfig(monthly float64) *models.Config {
	return &models.Config{
		ViableSystem: models.ViableSystem{
			Name:     "Growth Co",
			Identity: models.Identity{Purpose: "Grow the business"},
			System1: []models.S1Unit{
				{Name: "Growth", Purpose: "Find and convert customers", Autonomy: models.AutonomyFull},
			},
			Budget: models.Budget{MonthlyUSD: monthly, Strategy: models.StrategyBalanced},
		},
	}
}

func TestEvaluate_PlanFeedsCheck(t *testing.T) {
	e := New(catalog.Default())
	cfg := growthConfig(150)
	// Pin the auditor to the S1 provider so the diversity rule fires.
	cfg.ViableSystem.ModelRouting = map[string]string{
		models.RouteS3StarAudit: "anthropic/claude-opus-4-6",
	}

	report, plan, err := e.Evaluate(cfg)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if plan == nil {
		t.Fatal("Evaluate() returned nil plan")
	}

	found := false
	for _, w := range report.Warnings {
		if w.Category == "security" && w.Severity == models.SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Error("expected single-provider audit warning when plan is available")
	}
}

func TestEvaluate_InvalidBudgetStillChecks(t *testing.T) {
	e := New(catalog.Default())

	report, plan, err := e.Evaluate(growthConfig(0))
	var invalid *budget.InvalidBudgetError
	if !errors.As(err, &invalid) {
		t.Fatalf("Evaluate() error = %v, want *InvalidBudgetError", err)
	}
	if plan != nil {
		t.Error("Evaluate() returned a plan despite invalid budget")
	}
	if report == nil || len(report.Checks) != 6 {
		t.Fatal("Evaluate() must still produce a full report")
	}
}

func TestCheck_DoesNotRunPlanRules(t *testing.T) {
	e := New(catalog.Default())
	cfg := growthConfig(150)
	cfg.ViableSystem.ModelRouting = map[string]string{
		models.RouteS3StarAudit: "anthropic/claude-opus-4-6",
	}

	for _, w := range e.Check(cfg).Warnings {
		if w.Category == "security" {
			t.Errorf("Check() ran a plan-dependent rule: %s", w.Message)
		}
	}
}

func TestRules_UsesConfigUnits(t *testing.T) {
	e := New(catalog.Default())
	cfg := growthConfig(150)

	rules := e.Rules(cfg)
	if len(rules) == 0 {
		t.Fatal("expected generated rules for one unit")
	}
	if e.Rules(&models.Config{}) != nil {
		t.Error("expected no rules for empty config")
	}
}

func TestEngine_ScenarioNoUnits(t *testing.T) {
	e := New(catalog.Default())
	cfg := &models.Config{
		ViableSystem: models.ViableSystem{
			Name:   "Managers Only",
			Budget: models.Budget{MonthlyUSD: 150, Strategy: models.StrategyBalanced},
		},
	}

	report, plan, err := e.Evaluate(cfg)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(plan.Allocations) != 5 {
		t.Errorf("len(allocations) = %d, want 5 management functions", len(plan.Allocations))
	}
	if s1 := report.Checks[0]; s1.System != "S1" || s1.Present {
		t.Errorf("S1 check = %+v, want absent", s1)
	}
	if report.Score > 5 {
		t.Errorf("score = %d, want <= 5", report.Score)
	}
}
