package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/viableos/viableos/pkg/models"
)

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `defaults:
  strategy: frugal
  provider: openai
server:
  addr: "0.0.0.0:9000"
output:
  color: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if settings.Defaults.Strategy != "frugal" {
		t.Errorf("Strategy = %q, want frugal", settings.Defaults.Strategy)
	}
	if settings.Defaults.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", settings.Defaults.Provider)
	}
	if settings.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("Addr = %q, want 0.0.0.0:9000", settings.Server.Addr)
	}
	if settings.Output.Color {
		t.Error("Color = true, want false")
	}
	// Unset keys keep their defaults.
	if settings.Defaults.MonthlyUSD != 150 {
		t.Errorf("MonthlyUSD = %v, want default 150", settings.Defaults.MonthlyUSD)
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFromPath() on missing file succeeded, want error")
	}
}

func TestLoadAndSaveOrg_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viableos.yaml")
	weight := 7.0
	cfg := &models.Config{
		ViableSystem: models.ViableSystem{
			Name:     "Round Trip Co",
			Identity: models.Identity{Purpose: "Testing", NeverDo: []string{"lose data"}},
			System1: []models.S1Unit{
				{Name: "Dev", Purpose: "Build", Autonomy: models.AutonomySupervised, Weight: &weight},
			},
			Budget: models.Budget{MonthlyUSD: 120, Strategy: models.StrategyFrugal},
		},
	}

	if err := SaveOrg(path, cfg); err != nil {
		t.Fatalf("SaveOrg() error = %v", err)
	}
	loaded, err := LoadOrg(path)
	if err != nil {
		t.Fatalf("LoadOrg() error = %v", err)
	}

	if loaded.ViableSystem.Name != "Round Trip Co" {
		t.Errorf("Name = %q", loaded.ViableSystem.Name)
	}
	if len(loaded.ViableSystem.System1) != 1 || loaded.ViableSystem.System1[0].Autonomy != models.AutonomySupervised {
		t.Errorf("System1 = %+v", loaded.ViableSystem.System1)
	}
	if w := loaded.ViableSystem.System1[0].Weight; w == nil || *w != 7 {
		t.Errorf("Weight = %v, want 7", w)
	}
	if loaded.ViableSystem.Budget.Strategy != models.StrategyFrugal {
		t.Errorf("Strategy = %q", loaded.ViableSystem.Budget.Strategy)
	}
}

func TestLoadOrg_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("viable_system: [not: a: mapping"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrg(path); err == nil {
		t.Error("LoadOrg() on broken YAML succeeded, want error")
	}
}

func TestValidateOrg(t *testing.T) {
	valid := func() *models.Config {
		return &models.Config{
			ViableSystem: models.ViableSystem{
				Name:     "Valid Co",
				Identity: models.Identity{Purpose: "Be valid"},
				System1: []models.S1Unit{
					{Name: "Dev", Purpose: "Build", Autonomy: models.AutonomyFull},
				},
				Budget: models.Budget{MonthlyUSD: 100, Strategy: models.StrategyBalanced},
			},
		}
	}

	tests := []struct {
		name     string
		mutate   func(*models.Config)
		wantHits int
	}{
		{"valid config", func(c *models.Config) {}, 0},
		{"missing name", func(c *models.Config) { c.ViableSystem.Name = "" }, 1},
		{"missing purpose", func(c *models.Config) { c.ViableSystem.Identity.Purpose = "" }, 1},
		{"duplicate unit names", func(c *models.Config) {
			c.ViableSystem.System1 = append(c.ViableSystem.System1, models.S1Unit{Name: "Dev", Purpose: "Again"})
		}, 1},
		{"unit without purpose", func(c *models.Config) { c.ViableSystem.System1[0].Purpose = "" }, 1},
		{"unknown autonomy", func(c *models.Config) { c.ViableSystem.System1[0].Autonomy = "boundless" }, 1},
		{"unknown strategy", func(c *models.Config) { c.ViableSystem.Budget.Strategy = "cheap" }, 1},
		{"rule without action", func(c *models.Config) {
			c.ViableSystem.System2 = &models.System2{CoordinationRules: []models.CoordinationRule{{Trigger: "x"}}}
		}, 1},
		{"audit check without target", func(c *models.Config) {
			c.ViableSystem.System3Star = &models.System3Star{Checks: []models.AuditCheck{{Name: "x"}}}
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if got := ValidateOrg(cfg); len(got) != tt.wantHits {
				t.Errorf("ValidateOrg() = %v, want %d problems", got, tt.wantHits)
			}
		})
	}
}
