// Package generator turns a checked organization config into a deployable
// OpenClaw package: one workspace per agent with SOUL/SKILL/HEARTBEAT/USER/
// MEMORY/AGENTS documents, shared memory files, the runtime manifest, and an
// install script with a phased rollout.
package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viableos/viableos/internal/catalog"
	"github.com/viableos/viableos/internal/coordination"
	"github.com/viableos/viableos/internal/engine"
	"github.com/viableos/viableos/pkg/models"
)

// Generator writes deployment packages. It derives the budget plan and
// coordination rules through the engine so generated output always matches
// what check and budget report.
type Generator struct {
	engine *engine.Engine
}

// New creates a Generator on top of an engine.
func New(e *engine.Engine) *Generator {
	return &Generator{engine: e}
}

// agentEntry is one agent in the openclaw.json manifest.
type agentEntry struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Workspace      string      `json:"workspace"`
	Model          string      `json:"model"`
	Fallbacks      []string    `json:"fallbacks,omitempty"`
	HeartbeatModel string      `json:"heartbeat_model,omitempty"`
	Tools          *agentTools `json:"tools,omitempty"`
}

type agentTools struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// manifest is the root openclaw.json document.
type manifest struct {
	Agents   manifestAgents             `json:"agents"`
	Bindings []manifestBinding          `json:"bindings"`
	A2A      coordination.AgentToAgent  `json:"agentToAgent"`
	Sub      coordination.Subagents     `json:"subagents"`
}

type manifestAgents struct {
	List []agentEntry `json:"list"`
}

type manifestBinding struct {
	AgentID string        `json:"agentId"`
	Match   bindingMatch  `json:"match"`
}

type bindingMatch struct {
	Channel string `json:"channel"`
}

// Generate writes a complete package for cfg into outputDir. An existing
// outputDir is replaced.
func (g *Generator) Generate(cfg *models.Config, outputDir string) error {
	vs := &cfg.ViableSystem
	cat := g.engine.Catalog()

	plan, err := g.engine.Allocate(cfg)
	if err != nil {
		return fmt.Errorf("allocate budget: %w", err)
	}
	rules := g.engine.Rules(cfg)
	if vs.System2 != nil {
		rules = coordination.Merge(rules, vs.System2.CoordinationRules)
	}

	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("clear output dir: %w", err)
	}
	workspacesDir := filepath.Join(outputDir, "workspaces")
	sharedDir := filepath.Join(outputDir, "shared")
	for _, dir := range []string{workspacesDir, sharedDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create package dirs: %w", err)
		}
	}

	s1Names := make([]string, len(vs.System1))
	for i, u := range vs.System1 {
		s1Names[i] = u.Name
	}
	user := userMD(vs)

	var roster []agentSummary
	var entries []agentEntry
	var s1IDs []string

	// Operational units first, in declaration order.
	for _, unit := range vs.System1 {
		id := "s1-" + coordination.Slugify(unit.Name)
		s1IDs = append(s1IDs, id)
		model := unitModel(unit, plan)

		others := make([]string, 0, len(s1Names)-1)
		for _, n := range s1Names {
			if n != unit.Name {
				others = append(others, n)
			}
		}

		files := map[string]string{
			"SOUL.md":      s1Soul(unit, vs.Identity, rules, vs.HumanInTheLoop, others),
			"SKILL.md":     s1Skill(unit, vs.Identity),
			"HEARTBEAT.md": s1Heartbeat(unit.Name),
			"USER.md":      user,
			"MEMORY.md":    memoryMD(unit.Name),
		}
		if err := writeWorkspace(workspacesDir, id, files); err != nil {
			return err
		}

		roster = append(roster, agentSummary{Name: unit.Name, Role: "Operations (S1)", Purpose: unit.Purpose})
		entry := agentEntry{
			ID:             id,
			Name:           unit.Name,
			Workspace:      "workspaces/" + id,
			Model:          model,
			Fallbacks:      cat.FallbackChain(model),
			HeartbeatModel: heartbeatFor(cat, model),
		}
		if len(unit.Tools) > 0 {
			entry.Tools = &agentTools{Allow: unit.Tools}
		}
		entries = append(entries, entry)
	}

	// The five management roles.
	mgmt := []struct {
		id      string
		name    string
		role    string
		purpose string
		slot    string
		soul    string
		skill   string
		beat    string
		tools   *agentTools
	}{
		{
			id: "s2-coordination", name: "Coordinator", role: "Coordination (S2)",
			purpose: "Prevent conflicts between units", slot: models.RouteS2Coordination,
			soul: s2Soul(rules, s1Names, vs.Identity), skill: s2Skill(s1Names), beat: s2Heartbeat(),
			tools: &agentTools{Allow: []string{"read", "sessions_list", "sessions_history", "sessions_send"}},
		},
		{
			id: "s3-optimization", name: "Optimizer", role: "Optimization (S3)",
			purpose: "Allocate resources, weekly digest", slot: models.RouteS3Optimization,
			soul: s3Soul(vs.Identity, s1Names, plan.TotalMonthlyUSD, vs.System3),
			skill: s3Skill(plan.TotalMonthlyUSD), beat: s3Heartbeat(),
			tools: &agentTools{Allow: []string{"read", "write", "sessions_list", "sessions_history", "sessions_send"}},
		},
		{
			id: "s3star-audit", name: "Auditor", role: "Audit (S3*)",
			purpose: "Independent quality verification", slot: models.RouteS3StarAudit,
			soul: s3StarSoul(vs.Identity, vs.System3Star, s1Names), skill: s3StarSkill(), beat: s3StarHeartbeat(),
			tools: &agentTools{
				Allow: []string{"read", "sessions_list", "sessions_history"},
				Deny:  []string{"write", "edit", "apply_patch"},
			},
		},
		{
			id: "s4-intelligence", name: "Scout", role: "Intelligence (S4)",
			purpose: "Monitor environment, strategic briefs", slot: models.RouteS4Intelligence,
			soul: s4Soul(vs.Identity, vs.System4), skill: s4Skill(vs.System4), beat: s4Heartbeat(),
		},
		{
			id: "s5-policy", name: "Policy Guardian", role: "Identity (S5)",
			purpose: "Enforce values and policies", slot: models.RouteS5Preparation,
			soul: s5Soul(vs.Identity, vs.HumanInTheLoop), skill: s5Skill(), beat: s5Heartbeat(),
			tools: &agentTools{Allow: []string{"read", "sessions_list", "sessions_history"}},
		},
	}

	for _, m := range mgmt {
		model := plan.ModelRouting[m.slot]
		files := map[string]string{
			"SOUL.md":      m.soul,
			"SKILL.md":     m.skill,
			"HEARTBEAT.md": m.beat,
			"USER.md":      user,
			"MEMORY.md":    memoryMD(m.name),
		}
		if err := writeWorkspace(workspacesDir, m.id, files); err != nil {
			return err
		}
		roster = append(roster, agentSummary{Name: m.name, Role: m.role, Purpose: m.purpose})
		entries = append(entries, agentEntry{
			ID:             m.id,
			Name:           m.name,
			Workspace:      "workspaces/" + m.id,
			Model:          model,
			Fallbacks:      cat.FallbackChain(model),
			HeartbeatModel: heartbeatFor(cat, model),
			Tools:          m.tools,
		})
	}

	// Every workspace gets the same roster.
	agents := agentsMD(roster)
	for _, e := range entries {
		path := filepath.Join(outputDir, e.Workspace, "AGENTS.md")
		if err := os.WriteFile(path, []byte(agents), 0644); err != nil {
			return fmt.Errorf("write AGENTS.md: %w", err)
		}
	}

	if err := os.WriteFile(filepath.Join(sharedDir, "org_memory.md"), []byte(orgMemoryMD(vs)), 0644); err != nil {
		return fmt.Errorf("write org memory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(sharedDir, "coordination_rules.md"), []byte(rulesMD(rules)), 0644); err != nil {
		return fmt.Errorf("write coordination rules: %w", err)
	}

	if err := g.writeManifest(outputDir, vs, entries, s1IDs); err != nil {
		return err
	}
	return writeInstallScript(outputDir, vs, entries)
}

func (g *Generator) writeManifest(outputDir string, vs *models.ViableSystem, entries []agentEntry, s1IDs []string) error {
	channel := "email"
	if vs.HumanInTheLoop != nil && len(vs.HumanInTheLoop.NotificationChannels) > 0 {
		channel = vs.HumanInTheLoop.NotificationChannels[0]
	}
	matrix := coordination.NewCommunicationMatrix(s1IDs)

	m := manifest{
		Agents: manifestAgents{List: entries},
		Bindings: []manifestBinding{
			{AgentID: entries[0].ID, Match: bindingMatch{Channel: channel}},
		},
		A2A: matrix.AgentToAgent,
		Sub: matrix.Subagents,
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(outputDir, "openclaw.json"), data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func unitModel(unit models.S1Unit, plan *models.BudgetPlan) string {
	if unit.Model != "" {
		return unit.Model
	}
	if alloc := plan.Allocation("S1:" + unit.Name); alloc != nil && alloc.Model != "" {
		return alloc.Model
	}
	return plan.ModelRouting[models.RouteS1Routine]
}

// heartbeatFor returns the heartbeat model only when it differs from the
// agent's primary model.
func heartbeatFor(cat *catalog.Catalog, model string) string {
	hb := cat.HeartbeatModel(model)
	if hb == model {
		return ""
	}
	return hb
}

func writeWorkspace(workspacesDir, id string, files map[string]string) error {
	dir := filepath.Join(workspacesDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create workspace %s: %w", id, err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s/%s: %w", id, name, err)
		}
	}
	return nil
}
