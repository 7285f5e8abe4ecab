package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/viableos/viableos/pkg/models"
)

// LoadOrg reads and parses an organization config file.
func LoadOrg(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &models.Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// SaveOrg serializes an organization config to a YAML file.
func SaveOrg(path string, cfg *models.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ValidateOrg runs structural validation of an organization config and
// returns a list of problems, empty when the config is well-formed. This is
// boundary-layer validation: the engine itself assumes a structurally valid
// Config and stays total.
func ValidateOrg(cfg *models.Config) []string {
	var problems []string
	vs := &cfg.ViableSystem

	if vs.Name == "" {
		problems = append(problems, "viable_system.name is required")
	}
	if vs.Identity.Purpose == "" {
		problems = append(problems, "viable_system.identity.purpose is required")
	}

	seen := make(map[string]bool)
	for i, unit := range vs.System1 {
		if unit.Name == "" {
			problems = append(problems, fmt.Sprintf("system_1[%d].name is required", i))
			continue
		}
		if seen[unit.Name] {
			problems = append(problems, fmt.Sprintf("system_1[%d]: duplicate unit name %q", i, unit.Name))
		}
		seen[unit.Name] = true
		if unit.Purpose == "" {
			problems = append(problems, fmt.Sprintf("system_1[%d] (%s): purpose is required", i, unit.Name))
		}
		if unit.Autonomy != "" && !unit.Autonomy.Valid() {
			problems = append(problems, fmt.Sprintf("system_1[%d] (%s): unknown autonomy level %q", i, unit.Name, unit.Autonomy))
		}
	}

	if vs.Budget.Strategy != "" && !vs.Budget.Strategy.Valid() {
		problems = append(problems, fmt.Sprintf("budget.strategy: unknown strategy %q", vs.Budget.Strategy))
	}

	if vs.System2 != nil {
		for i, rule := range vs.System2.CoordinationRules {
			if rule.Trigger == "" || rule.Action == "" {
				problems = append(problems, fmt.Sprintf("system_2.coordination_rules[%d]: trigger and action are required", i))
			}
		}
	}

	if vs.System3Star != nil {
		for i, check := range vs.System3Star.Checks {
			if check.Name == "" || check.Target == "" {
				problems = append(problems, fmt.Sprintf("system_3_star.checks[%d]: name and target are required", i))
			}
		}
	}

	return problems
}
