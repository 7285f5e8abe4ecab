package generator

import "fmt"

func s1Heartbeat(name string) string {
	return fmt.Sprintf(`# %s — Heartbeat Schedule

## Every 30 minutes
- Check for new tasks assigned by Coordinator (S2)
- Check for approval responses from human
- Report: "Still working on [current task]" or "Idle — ready for tasks"

## Every 2 hours
- Run workspace cleanup (remove temp files older than 2h)
- Compact session history if > 5000 tokens

## Daily (8:00 AM)
- Status report to Optimizer (S3): tasks completed, in progress, blocked
- Token usage self-check: am I within my daily budget?

## On task completion
- Notify Coordinator (S2) with result summary
- Update MEMORY.md with key learnings
`, name)
}

func s2Heartbeat() string {
	return `# Coordinator — Heartbeat Schedule

## Every 15 minutes
- Check all S1 unit session statuses
- Detect: idle agents, stuck agents, conflicting work

## Every hour
- Routing summary: how many messages routed, any conflicts detected?
- Check for unresolved conflicts older than 1 hour

## Daily (8:30 AM)
- Coordination digest to Optimizer (S3): conflicts resolved, pending issues
- Refresh awareness of all active S1 units and their current tasks
`
}

func s3Heartbeat() string {
	return `# Optimizer — Heartbeat Schedule

## Every hour
- Check token usage across all agents
- Flag any agent exceeding daily budget allocation
- If total spend > 80% of monthly budget: alert human

## Weekly (Monday 9:00 AM)
- Generate weekly digest: all units, KPIs, blockers, trends
- Budget vs. actual comparison
- Agent performance ranking (tasks completed, quality, cost)

## Daily (6:00 PM)
- End-of-day summary: what was accomplished, what's blocked
- Token usage report for the day

## Monthly (1st of month)
- Full budget review and reallocation recommendations
- Model performance assessment: should any agent switch models?
`
}

func s3StarHeartbeat() string {
	return `# Auditor — Heartbeat Schedule

## Every 4 hours
- Sample 2 recent outputs from random S1 agents
- Cross-verify with independent provider
- Log audit results in workspace

## Daily (10:00 AM)
- Audit summary to Optimizer (S3): findings, pass rate, concerns
- Security check: any unauthorized tool usage or workspace violations?

## Weekly (Wednesday)
- Full audit report: all findings, trends, recommendations
- Cross-provider verification stats: agreement rate, discrepancies found
`
}

func s4Heartbeat() string {
	return `# Scout — Heartbeat Schedule

## Daily (7:00 AM)
- Scan all configured sources for relevant changes
- Summarize findings with relevance scores (1-5)
- Only report items with relevance >= 3

## Weekly (Monday)
- Strategic brief for human (via S5 Policy Guardian)
- Include: what changed, what it means for us, recommended actions

## Monthly
- Source review: are current sources still relevant? What's missing?
- Trend report: what patterns are emerging across multiple sources?
`
}

func s5Heartbeat() string {
	return `# Policy Guardian — Heartbeat Schedule

## Every 2 hours
- Check for pending human decisions
- Remind human of decisions older than 24h

## Daily (9:00 AM)
- Policy compliance check: scan agent outputs for value violations
- Identity refresh broadcast to all agents (prevents role drift)

## Weekly (Friday)
- Decision log summary for human: decisions made, pending, outcomes
- Values alignment report: are agents behaving consistently?

## Quarterly
- Values review: remind human to review and update organizational values
- Policy update: any standing policies need revision?
`
}
