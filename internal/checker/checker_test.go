package checker

import (
	"reflect"
	"strings"
	"testing"

	"github.com/viableos/viableos/internal/catalog"
	"github.com/viableos/viableos/pkg/models"
)

func fullConfig() *models.Config {
	return &models.Config{
		ViableSystem: models.ViableSystem{
			Name: "Full System",
			Identity: models.Identity{
				Purpose: "Ship great software",
				NeverDo: []string{"delete production data"},
			},
			System1: []models.S1Unit{
				{Name: "Product", Purpose: "Build the product", Autonomy: models.AutonomySupervised},
				{Name: "Support", Purpose: "Help customers", Autonomy: models.AutonomySuggest},
			},
			System2: &models.System2{
				CoordinationRules: []models.CoordinationRule{
					{Trigger: "Agent repeats output 3+ times", Action: "Escalate to Coordinator"},
				},
			},
			System3:     &models.System3{ReportingRhythm: "weekly"},
			System3Star: &models.System3Star{Checks: []models.AuditCheck{{Name: "Spot-check tickets", Target: "Support"}}},
			System4:     &models.System4{Monitoring: models.Monitoring{Technology: []string{"LLM releases"}}},
			Budget: models.Budget{
				MonthlyUSD: 200,
				Strategy:   models.StrategyBalanced,
				Alerts:     &models.BudgetAlerts{WarnAtPercent: 80, AutoDowngradeAtPercent: 95},
			},
			HumanInTheLoop: &models.HumanInTheLoop{ApprovalRequired: []string{"deploys"}},
			Persistence:    &models.Persistence{Strategy: "sqlite"},
		},
	}
}

func findCheck(t *testing.T, report *models.ViabilityReport, system string) models.CheckResult {
	t.Helper()
	for _, ck := range report.Checks {
		if ck.System == system {
			return ck
		}
	}
	t.Fatalf("no check for system %q", system)
	return models.CheckResult{}
}

func hasWarning(report *models.ViabilityReport, category string, severity models.Severity) bool {
	for _, w := range report.Warnings {
		if w.Category == category && w.Severity == severity {
			return true
		}
	}
	return false
}

func TestCheck_FullConfigScoresSix(t *testing.T) {
	report := NewChecker(catalog.Default()).Check(fullConfig())

	if report.Score != 6 || report.Total != 6 {
		t.Errorf("score = %d/%d, want 6/6", report.Score, report.Total)
	}
	for _, ck := range report.Checks {
		if !ck.Present {
			t.Errorf("check %s not present: %s", ck.System, ck.Details)
		}
		if len(ck.Suggestions) != 0 {
			t.Errorf("check %s has suggestions despite being present", ck.System)
		}
	}
}

func TestCheck_EmptyConfigScoresZero(t *testing.T) {
	report := NewChecker(catalog.Default()).Check(&models.Config{})

	if report.Score != 0 {
		t.Errorf("score = %d, want 0", report.Score)
	}
	for _, ck := range report.Checks {
		if ck.Present {
			t.Errorf("check %s present on empty config", ck.System)
		}
		if len(ck.Suggestions) == 0 {
			t.Errorf("check %s missing remediation suggestions", ck.System)
		}
	}
}

func TestCheck_CanonicalOrder(t *testing.T) {
	report := NewChecker(catalog.Default()).Check(&models.Config{})

	want := []string{"S1", "S2", "S3", "S3*", "S4", "S5"}
	if len(report.Checks) != len(want) {
		t.Fatalf("len(checks) = %d, want %d", len(report.Checks), len(want))
	}
	for i, ck := range report.Checks {
		if ck.System != want[i] {
			t.Errorf("checks[%d].System = %q, want %q", i, ck.System, want[i])
		}
	}
}

func TestCheck_PresenceRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Config)
		system  string
		present bool
	}{
		{"no units fails S1", func(c *models.Config) { c.ViableSystem.System1 = nil }, "S1", false},
		{"no rules fails S2", func(c *models.Config) { c.ViableSystem.System2 = nil }, "S2", false},
		{"empty rules fails S2", func(c *models.Config) { c.ViableSystem.System2 = &models.System2{} }, "S2", false},
		{"reporting rhythm alone passes S3", func(c *models.Config) {
			c.ViableSystem.System3 = &models.System3{ReportingRhythm: "daily"}
		}, "S3", true},
		{"resource allocation alone passes S3", func(c *models.Config) {
			c.ViableSystem.System3 = &models.System3{ResourceAllocation: "quarterly review"}
		}, "S3", true},
		{"empty S3 fails", func(c *models.Config) { c.ViableSystem.System3 = &models.System3{} }, "S3", false},
		{"no audit checks fails S3*", func(c *models.Config) { c.ViableSystem.System3Star = &models.System3Star{} }, "S3*", false},
		{"regulation monitoring alone passes S4", func(c *models.Config) {
			c.ViableSystem.System4 = &models.System4{Monitoring: models.Monitoring{Regulation: []string{"EU AI Act"}}}
		}, "S4", true},
		{"empty monitoring fails S4", func(c *models.Config) { c.ViableSystem.System4 = &models.System4{} }, "S4", false},
		{"blank purpose fails S5", func(c *models.Config) { c.ViableSystem.Identity.Purpose = "   " }, "S5", false},
	}

	ch := NewChecker(catalog.Default())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fullConfig()
			tt.mutate(cfg)
			report := ch.Check(cfg)
			if got := findCheck(t, report, tt.system).Present; got != tt.present {
				t.Errorf("%s present = %v, want %v", tt.system, got, tt.present)
			}
			if got := report.Score; got != countPresent(report) {
				t.Errorf("score = %d, want %d", got, countPresent(report))
			}
		})
	}
}

func countPresent(r *models.ViabilityReport) int {
	n := 0
	for _, ck := range r.Checks {
		if ck.Present {
			n++
		}
	}
	return n
}

func TestCheck_S1DetailsListUnitNames(t *testing.T) {
	report := NewChecker(catalog.Default()).Check(fullConfig())
	details := findCheck(t, report, "S1").Details

	for _, want := range []string{"2 units", "Product", "Support"} {
		if !strings.Contains(details, want) {
			t.Errorf("S1 details %q missing %q", details, want)
		}
	}
}

func TestCheck_MissingAuditOnHighAutonomyIsCritical(t *testing.T) {
	cfg := &models.Config{
		ViableSystem: models.ViableSystem{
			Name:     "Growth Co",
			Identity: models.Identity{Purpose: "Grow"},
			System1: []models.S1Unit{
				{Name: "Growth", Purpose: "Find customers", Autonomy: models.AutonomyFull},
			},
			Budget: models.Budget{MonthlyUSD: 100, Strategy: models.StrategyBalanced},
		},
	}

	report := NewChecker(catalog.Default()).Check(cfg)
	if !hasWarning(report, "audit", models.SeverityCritical) {
		t.Error("expected critical audit warning for full-autonomy unit without audit checks")
	}
}

func TestCheck_HighScoreStillCarriesCriticalWarnings(t *testing.T) {
	cfg := fullConfig()
	cfg.ViableSystem.System1[0].Autonomy = models.AutonomyFull
	cfg.ViableSystem.System3Star = nil

	report := NewChecker(catalog.Default()).Check(cfg)
	if report.Score != 5 {
		t.Errorf("score = %d, want 5", report.Score)
	}
	if len(report.Critical()) == 0 {
		t.Error("expected critical warnings alongside a high score")
	}
}

func TestCheck_SinglePointOfFailure(t *testing.T) {
	tests := []struct {
		name  string
		units []models.S1Unit
		want  bool
	}{
		{"one full-autonomy unit", []models.S1Unit{{Name: "Solo", Autonomy: models.AutonomyFull}}, true},
		{"one supervised unit", []models.S1Unit{{Name: "Solo", Autonomy: models.AutonomySupervised}}, false},
		{"two full-autonomy units", []models.S1Unit{
			{Name: "A", Autonomy: models.AutonomyFull},
			{Name: "B", Autonomy: models.AutonomyFull},
		}, false},
	}

	ch := NewChecker(catalog.Default())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fullConfig()
			cfg.ViableSystem.System1 = tt.units
			report := ch.Check(cfg)
			if got := hasWarning(report, "operations", models.SeverityWarning); got != tt.want {
				t.Errorf("single point of failure warning = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheck_BudgetWarnings(t *testing.T) {
	ch := NewChecker(catalog.Default())

	t.Run("missing budget is critical", func(t *testing.T) {
		cfg := fullConfig()
		cfg.ViableSystem.Budget = models.Budget{}
		if !hasWarning(ch.Check(cfg), "budget", models.SeverityCritical) {
			t.Error("expected critical warning for missing budget")
		}
	})

	t.Run("below viable floor", func(t *testing.T) {
		cfg := fullConfig() // 2 units, floor $40
		cfg.ViableSystem.Budget.MonthlyUSD = 25
		if !hasWarning(ch.Check(cfg), "budget", models.SeverityWarning) {
			t.Error("expected warning for budget below viable floor")
		}
	})

	t.Run("no alerts", func(t *testing.T) {
		cfg := fullConfig()
		cfg.ViableSystem.Budget.Alerts = nil
		if !hasWarning(ch.Check(cfg), "budget", models.SeverityWarning) {
			t.Error("expected warning for budget without alerts")
		}
	})

	t.Run("healthy budget is quiet", func(t *testing.T) {
		report := ch.Check(fullConfig())
		for _, w := range report.Warnings {
			if w.Category == "budget" {
				t.Errorf("unexpected budget warning: %s", w.Message)
			}
		}
	})
}

func TestCheck_CoordinationWithoutOperations(t *testing.T) {
	cfg := fullConfig()
	cfg.ViableSystem.System1 = nil

	report := NewChecker(catalog.Default()).Check(cfg)
	if !hasWarning(report, "coordination", models.SeverityInfo) {
		t.Error("expected info warning for coordination rules without operations")
	}
}

func TestCheck_NoBoundariesIsInfo(t *testing.T) {
	cfg := fullConfig()
	cfg.ViableSystem.Identity.NeverDo = nil

	report := NewChecker(catalog.Default()).Check(cfg)
	if !hasWarning(report, "identity", models.SeverityInfo) {
		t.Error("expected info warning for empty never_do list")
	}
}

func TestCheck_SensitiveToolsWithoutAudit(t *testing.T) {
	cfg := fullConfig()
	cfg.ViableSystem.System3Star = nil
	cfg.ViableSystem.System1[0].Tools = []string{"github", "deployment"}

	report := NewChecker(catalog.Default()).Check(cfg)
	if !hasWarning(report, "security", models.SeverityCritical) {
		t.Error("expected critical security warning for sensitive tools without audit")
	}
}

func TestCheck_ModelReliabilityWarnings(t *testing.T) {
	cfg := fullConfig()
	cfg.ViableSystem.System1[0].Model = "google/gemini-2.5-flash-lite"

	report := NewChecker(catalog.Default()).Check(cfg)
	if !hasWarning(report, "models", models.SeverityWarning) {
		t.Error("expected model reliability warning for flash-lite")
	}
}

func TestCheckWithPlan_ProviderDiversity(t *testing.T) {
	ch := NewChecker(catalog.Default())
	cfg := fullConfig()

	samePlan := &models.BudgetPlan{ModelRouting: map[string]string{
		models.RouteS1Routine:   "anthropic/claude-haiku-4-5",
		models.RouteS3StarAudit: "anthropic/claude-opus-4-6",
	}}
	diversePlan := &models.BudgetPlan{ModelRouting: map[string]string{
		models.RouteS1Routine:   "anthropic/claude-haiku-4-5",
		models.RouteS3StarAudit: "openai/gpt-5.1",
	}}

	if !hasWarning(ch.CheckWithPlan(cfg, samePlan), "security", models.SeverityWarning) {
		t.Error("expected warning when auditor shares the S1 provider")
	}
	if hasWarning(ch.CheckWithPlan(cfg, diversePlan), "security", models.SeverityWarning) {
		t.Error("unexpected warning for cross-provider audit")
	}
	// Rule is skipped without a plan.
	if hasWarning(ch.Check(cfg), "security", models.SeverityWarning) {
		t.Error("provider diversity rule should be skipped without a plan")
	}
}

func TestCheck_Deterministic(t *testing.T) {
	ch := NewChecker(catalog.Default())
	cfg := fullConfig()
	cfg.ViableSystem.System1[0].Model = "google/gemini-2.5-flash-lite"
	cfg.ViableSystem.ModelRouting = map[string]string{
		"s4_intelligence": "meta/llama-4",
		"s1_complex":      "ollama/llama-4",
	}

	first := ch.Check(cfg)
	second := ch.Check(cfg)
	if !reflect.DeepEqual(first, second) {
		t.Error("two checks of the same config differ")
	}
}

func TestCheck_AllocateFailureDoesNotAffectCheck(t *testing.T) {
	// monthly_usd = 0 makes allocation fail, but checking still succeeds.
	cfg := fullConfig()
	cfg.ViableSystem.Budget.MonthlyUSD = 0

	report := NewChecker(catalog.Default()).Check(cfg)
	if report == nil || len(report.Checks) != 6 {
		t.Fatal("check must succeed independently of budget validity")
	}
}
