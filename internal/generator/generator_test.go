package generator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/viableos/viableos/internal/catalog"
	"github.com/viableos/viableos/internal/engine"
	"github.com/viableos/viableos/pkg/models"
)

func testConfig() *models.Config {
	return &models.Config{
		ViableSystem: models.ViableSystem{
			Name: "Acme Corp",
			Identity: models.Identity{
				Purpose: "Sell widgets profitably",
				Values:  []string{"quality over speed"},
				NeverDo: []string{"delete customer data"},
			},
			System1: []models.S1Unit{
				{Name: "Sales & Marketing", Purpose: "Find and convert customers", Autonomy: models.AutonomySupervised, Tools: []string{"email", "crm"}},
				{Name: "Fulfillment", Purpose: "Ship orders on time", Autonomy: models.AutonomySupervised},
			},
			System4: &models.System4{
				Monitoring: models.Monitoring{Competitors: []string{"WidgetCo"}},
			},
			Budget: models.Budget{MonthlyUSD: 150, Strategy: models.StrategyBalanced},
			HumanInTheLoop: &models.HumanInTheLoop{
				ApprovalRequired:     []string{"spending above threshold"},
				NotificationChannels: []string{"slack"},
			},
		},
	}
}

func generatePackage(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "pkg")
	g := New(engine.New(catalog.Default()))
	if err := g.Generate(testConfig(), dir); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return dir
}

func TestGenerateWorkspaceLayout(t *testing.T) {
	dir := generatePackage(t)

	wantWorkspaces := []string{
		"s1-sales-and-marketing", "s1-fulfillment",
		"s2-coordination", "s3-optimization", "s3star-audit", "s4-intelligence", "s5-policy",
	}
	for _, ws := range wantWorkspaces {
		for _, file := range []string{"SOUL.md", "SKILL.md", "HEARTBEAT.md", "USER.md", "MEMORY.md", "AGENTS.md"} {
			path := filepath.Join(dir, "workspaces", ws, file)
			if _, err := os.Stat(path); err != nil {
				t.Errorf("missing %s/%s: %v", ws, file, err)
			}
		}
	}

	for _, shared := range []string{"org_memory.md", "coordination_rules.md"} {
		if _, err := os.Stat(filepath.Join(dir, "shared", shared)); err != nil {
			t.Errorf("missing shared/%s: %v", shared, err)
		}
	}
}

func TestGenerateSoulContent(t *testing.T) {
	dir := generatePackage(t)

	soul, err := os.ReadFile(filepath.Join(dir, "workspaces", "s1-sales-and-marketing", "SOUL.md"))
	if err != nil {
		t.Fatalf("read SOUL.md: %v", err)
	}
	for _, want := range []string{
		"# Sales & Marketing",
		"Find and convert customers",
		"Sell widgets profitably",
		"delete customer data",
		"Fulfillment", // other units listed
	} {
		if !strings.Contains(string(soul), want) {
			t.Errorf("SOUL.md missing %q", want)
		}
	}
}

func TestGenerateManifest(t *testing.T) {
	dir := generatePackage(t)

	data, err := os.ReadFile(filepath.Join(dir, "openclaw.json"))
	if err != nil {
		t.Fatalf("read openclaw.json: %v", err)
	}

	var m struct {
		Agents struct {
			List []struct {
				ID    string `json:"id"`
				Model string `json:"model"`
				Tools *struct {
					Allow []string `json:"allow"`
					Deny  []string `json:"deny"`
				} `json:"tools"`
			} `json:"list"`
		} `json:"agents"`
		Bindings []struct {
			AgentID string `json:"agentId"`
			Match   struct {
				Channel string `json:"channel"`
			} `json:"match"`
		} `json:"bindings"`
		AgentToAgent struct {
			Enabled bool                `json:"enabled"`
			Allow   map[string][]string `json:"allow"`
		} `json:"agentToAgent"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("parse openclaw.json: %v", err)
	}

	if len(m.Agents.List) != 7 {
		t.Fatalf("got %d agents, want 7", len(m.Agents.List))
	}
	if m.Agents.List[0].ID != "s1-sales-and-marketing" {
		t.Errorf("first agent = %s, want first S1 unit", m.Agents.List[0].ID)
	}

	if len(m.Bindings) != 1 || m.Bindings[0].AgentID != "s1-sales-and-marketing" {
		t.Errorf("unexpected bindings: %+v", m.Bindings)
	}
	if m.Bindings[0].Match.Channel != "slack" {
		t.Errorf("binding channel = %q, want slack", m.Bindings[0].Match.Channel)
	}

	var auditor, routine string
	for _, a := range m.Agents.List {
		switch a.ID {
		case "s3star-audit":
			auditor = a.Model
			if a.Tools == nil || len(a.Tools.Deny) == 0 {
				t.Error("auditor has no deny list")
			}
		case "s1-fulfillment":
			routine = a.Model
		}
	}
	cat := catalog.Default()
	if cat.Provider(auditor) == cat.Provider(routine) {
		t.Errorf("auditor %s shares provider with S1 %s", auditor, routine)
	}

	if !m.AgentToAgent.Enabled {
		t.Error("agentToAgent not enabled")
	}
	if got := m.AgentToAgent.Allow["s1-fulfillment"]; len(got) != 1 || got[0] != "s2-coordination" {
		t.Errorf("S1 allow list = %v, want coordinator only", got)
	}
}

func TestGenerateInstallScript(t *testing.T) {
	dir := generatePackage(t)

	path := filepath.Join(dir, "install.sh")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat install.sh: %v", err)
	}
	if info.Mode()&0100 == 0 {
		t.Error("install.sh not executable")
	}

	data, _ := os.ReadFile(path)
	script := string(data)
	for _, want := range []string{
		"Phase 1: Core",
		"Phase 2: Additional S1 units",
		"Phase 3: Management systems",
		"openclaw agents add s1-sales-and-marketing",
		"openclaw agents add s3star-audit",
		"Acme Corp",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("install.sh missing %q", want)
		}
	}

	// Phase ordering: first S1 unit and Coordinator before everything else.
	core := strings.Index(script, "agents add s1-sales-and-marketing")
	second := strings.Index(script, "agents add s1-fulfillment")
	mgmt := strings.Index(script, "agents add s3-optimization")
	if !(core < second && second < mgmt) {
		t.Error("rollout phases out of order")
	}
}

func TestGenerateReplacesExistingOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pkg")
	if err := os.MkdirAll(filepath.Join(dir, "stale"), 0755); err != nil {
		t.Fatal(err)
	}

	g := New(engine.New(catalog.Default()))
	if err := g.Generate(testConfig(), dir); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "stale")); !os.IsNotExist(err) {
		t.Error("stale output not removed")
	}
}

func TestGenerateInvalidBudget(t *testing.T) {
	cfg := testConfig()
	cfg.ViableSystem.Budget.MonthlyUSD = 0

	g := New(engine.New(catalog.Default()))
	if err := g.Generate(cfg, filepath.Join(t.TempDir(), "pkg")); err == nil {
		t.Error("expected error for zero budget")
	}
}
