package generator

import (
	"fmt"
	"strings"

	"github.com/viableos/viableos/pkg/models"
)

func userMD(vs *models.ViableSystem) string {
	channel := "email"
	if vs.HumanInTheLoop != nil && len(vs.HumanInTheLoop.NotificationChannels) > 0 {
		channel = vs.HumanInTheLoop.NotificationChannels[0]
	}
	return fmt.Sprintf(`# About the Human

## Who you report to
The human is the owner/operator of **%s**.
They are the final decision-maker for all strategic and policy questions.

## How to reach them
- Primary channel: **%s**
- For emergencies: interrupt immediately via %s
- For routine updates: batch into daily/weekly reports

## Their preferences
- Be concise — they're busy
- Lead with the decision needed, then context
- Always present options, not just problems
- Respect their time: only escalate what truly needs their input

## What they care about
- The system works reliably without constant supervision
- Costs stay within budget
- No surprises — they want to know about problems early
- Quality of outputs matches their standards
`, vs.Name, channel, channel)
}

func memoryMD(agentName string) string {
	return fmt.Sprintf(`# %s — Memory

## About this file
This is your long-term memory. Update it after significant events, decisions,
or learnings. The Optimizer (S3) will periodically review and consolidate.

## Current Status
- Phase: Initial setup — not yet deployed
- Last active: (never)

## Key Learnings
- (none yet — record insights as you work)

## Important Decisions
- (none yet — log decisions with reasoning)

## Notes for Next Session
- (none yet — leave notes for your future self)
`, agentName)
}

// agentSummary is one row of the shared AGENTS.md roster.
type agentSummary struct {
	Name    string
	Role    string
	Purpose string
}

func agentsMD(agents []agentSummary) string {
	var b strings.Builder
	b.WriteString("# Agents in this system\n\n")
	for _, a := range agents {
		fmt.Fprintf(&b, "## %s\n- Role: %s\n- Purpose: %s\n\n", a.Name, a.Role, a.Purpose)
	}
	return b.String()
}

func orgMemoryMD(vs *models.ViableSystem) string {
	names := make([]string, len(vs.System1))
	for i, u := range vs.System1 {
		names[i] = u.Name
	}
	return fmt.Sprintf(`# Organizational Memory — %s

## Current Status
- Phase: Initial setup — agents not yet deployed
- Active units: %s
- System purpose: %s

## Recent Decisions
- (none yet — system just created)

## Current Priorities
- (to be set by the Optimizer after first week)

## Shared Standards
- All agents follow the values defined in the identity
- No customer data in agent prompts or logs
- When in doubt, escalate rather than guess
`, vs.Name, strings.Join(names, ", "), vs.Identity.Purpose)
}

func rulesMD(rules []models.CoordinationRule) string {
	var b strings.Builder
	b.WriteString("# Coordination Rules\n\nAuto-generated + manual rules for this system.\n\n")
	for _, r := range rules {
		fmt.Fprintf(&b, "- **When:** %s\n  **Then:** %s\n\n", r.Trigger, r.Action)
	}
	return b.String()
}
