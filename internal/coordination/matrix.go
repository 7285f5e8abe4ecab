package coordination

import (
	"strings"

	"github.com/viableos/viableos/pkg/models"
)

// WorkspaceDirective asserts where one agent may operate.
type WorkspaceDirective struct {
	Agent     string `json:"agent"`
	Workspace string `json:"workspace"`
	Rule      string `json:"rule"`
}

// WorkspaceDirectives derives one isolation directive per unit for the
// package generator.
func WorkspaceDirectives(units []models.S1Unit) []WorkspaceDirective {
	directives := make([]WorkspaceDirective, 0, len(units))
	for _, u := range units {
		workspace := "workspaces/s1-" + Slugify(u.Name)
		directives = append(directives, WorkspaceDirective{
			Agent:     u.Name,
			Workspace: workspace,
			Rule:      u.Name + " operates ONLY in " + workspace + " — no access to other agent directories",
		})
	}
	return directives
}

// CommunicationMatrix is the agent-to-agent permission table written into the
// generated runtime config. Operational agents talk only to the Coordinator;
// the Coordinator routes to everyone; the Auditor has read-only reach into
// operations.
type CommunicationMatrix struct {
	AgentToAgent AgentToAgent `json:"agentToAgent"`
	Subagents    Subagents    `json:"subagents"`
}

// AgentToAgent holds the per-agent allow lists.
type AgentToAgent struct {
	Enabled bool                `json:"enabled"`
	Allow   map[string][]string `json:"allow"`
}

// Subagents lists which agents may spawn subagents.
type Subagents struct {
	AllowAgents []string `json:"allowAgents"`
}

// NewCommunicationMatrix builds the permission matrix for the given
// operational agent ids.
func NewCommunicationMatrix(s1AgentIDs []string) CommunicationMatrix {
	allow := map[string][]string{
		"s2-coordination": {"s1-*", "s3-optimization", "s3star-audit", "s4-intelligence", "s5-policy"},
		"s3-optimization": {"s1-*", "s2-coordination"},
		"s3star-audit":    {"s1-*"},
		"s4-intelligence": {"s2-coordination", "s5-policy"},
		"s5-policy":       {"s2-coordination", "s3-optimization", "s4-intelligence"},
	}
	for _, id := range s1AgentIDs {
		allow[id] = []string{"s2-coordination"}
	}

	return CommunicationMatrix{
		AgentToAgent: AgentToAgent{Enabled: true, Allow: allow},
		Subagents:    Subagents{AllowAgents: []string{"s2-coordination", "s3-optimization"}},
	}
}

// Slugify lowercases a unit name into a filesystem- and id-safe slug.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "&", "and")
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
