// Package models defines the shared types exchanged between the ViableOS
// engine, the CLI, and the HTTP API. All types are JSON- and YAML-serializable
// and carry no behavior beyond validation helpers.
package models

// Strategy controls default model tier selection for budget allocation.
type Strategy string

const (
	// StrategyFrugal selects the cheapest-tier model in each provider family.
	StrategyFrugal Strategy = "frugal"
	// StrategyBalanced keeps routine work cheap and scales complex work up.
	StrategyBalanced Strategy = "balanced"
	// StrategyPerformance selects top-tier models across the board.
	StrategyPerformance Strategy = "performance"
)

// Valid returns true if the strategy is a known value.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyFrugal, StrategyBalanced, StrategyPerformance:
		return true
	default:
		return false
	}
}

// Autonomy is the level of independent action an operational unit is granted.
type Autonomy string

const (
	// AutonomySuggest means the unit only proposes actions for human approval.
	AutonomySuggest Autonomy = "suggest"
	// AutonomySupervised means the unit acts but destructive steps need approval.
	AutonomySupervised Autonomy = "supervised"
	// AutonomyFull is the least restricted level: the unit acts without
	// per-action approval.
	AutonomyFull Autonomy = "full"
)

// Valid returns true if the autonomy level is a known value.
func (a Autonomy) Valid() bool {
	switch a {
	case AutonomySuggest, AutonomySupervised, AutonomyFull:
		return true
	default:
		return false
	}
}

// Config is the root input to the engine. The engine never mutates it; all
// derived artifacts are new objects.
type Config struct {
	ViableSystem ViableSystem `json:"viable_system" yaml:"viable_system"`
}

// ViableSystem describes one multi-agent organization.
type ViableSystem struct {
	// Name of the organization. Required for any report to be meaningful.
	Name string `json:"name" yaml:"name"`
	// Identity is the S5 purpose/values/boundaries block.
	Identity Identity `json:"identity" yaml:"identity"`
	// System1 lists the operational units. Order is significant.
	System1 []S1Unit `json:"system_1" yaml:"system_1"`
	// System2 holds the coordination rules, if configured.
	System2 *System2 `json:"system_2,omitempty" yaml:"system_2,omitempty"`
	// System3 holds the optimization settings, if configured.
	System3 *System3 `json:"system_3,omitempty" yaml:"system_3,omitempty"`
	// System3Star holds the audit checks, if configured.
	System3Star *System3Star `json:"system_3_star,omitempty" yaml:"system_3_star,omitempty"`
	// System4 holds the environment monitoring lists, if configured.
	System4 *System4 `json:"system_4,omitempty" yaml:"system_4,omitempty"`
	// Budget is the monthly spend and strategy settings.
	Budget Budget `json:"budget" yaml:"budget"`
	// ModelRouting maps routing slot keys to explicit model overrides.
	// Unknown keys are ignored for forward compatibility.
	ModelRouting map[string]string `json:"model_routing,omitempty" yaml:"model_routing,omitempty"`
	// HumanInTheLoop is pass-through state not consumed by the engine.
	HumanInTheLoop *HumanInTheLoop `json:"human_in_the_loop,omitempty" yaml:"human_in_the_loop,omitempty"`
	// Persistence is pass-through state not consumed by the engine.
	Persistence *Persistence `json:"persistence,omitempty" yaml:"persistence,omitempty"`
}

// Identity is the System 5 block: who the organization is and what it must
// never do.
type Identity struct {
	Purpose string   `json:"purpose" yaml:"purpose"`
	Values  []string `json:"values,omitempty" yaml:"values,omitempty"`
	NeverDo []string `json:"never_do,omitempty" yaml:"never_do,omitempty"`
}

// S1Unit is a named, purpose-bound group of agent work with declared tools
// and an autonomy level.
type S1Unit struct {
	// Name must be unique within the unit list.
	Name string `json:"name" yaml:"name"`
	// Purpose is a short description of what the unit does.
	Purpose string `json:"purpose" yaml:"purpose"`
	// Autonomy is the unit's autonomy level.
	Autonomy Autonomy `json:"autonomy,omitempty" yaml:"autonomy,omitempty"`
	// Tools lists the tool scopes the unit may use.
	Tools []string `json:"tools,omitempty" yaml:"tools,omitempty"`
	// Model optionally pins the unit to a specific model id.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	// Weight is the unit's share weight for budget allocation, advisory
	// range 1-10. Nil means unset; the allocator defaults it to 5.
	// Zero and negative weights are floored to 1, never rejected.
	Weight *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// System2 holds inter-unit coordination rules.
type System2 struct {
	CoordinationRules []CoordinationRule `json:"coordination_rules,omitempty" yaml:"coordination_rules,omitempty"`
}

// CoordinationRule is a trigger/action pair. Rule sets from different sources
// are concatenated, not deduplicated; duplicates are acceptable.
type CoordinationRule struct {
	Trigger string `json:"trigger" yaml:"trigger"`
	Action  string `json:"action" yaml:"action"`
	Scope   string `json:"scope,omitempty" yaml:"scope,omitempty"`
}

// System3 holds resource optimization settings.
type System3 struct {
	ReportingRhythm    string `json:"reporting_rhythm,omitempty" yaml:"reporting_rhythm,omitempty"`
	ResourceAllocation string `json:"resource_allocation,omitempty" yaml:"resource_allocation,omitempty"`
}

// System3Star holds the audit configuration.
type System3Star struct {
	Schedule string       `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Checks   []AuditCheck `json:"checks,omitempty" yaml:"checks,omitempty"`
}

// AuditCheck is a single independent verification of operational output.
type AuditCheck struct {
	Name      string `json:"name" yaml:"name"`
	Target    string `json:"target" yaml:"target"`
	Method    string `json:"method,omitempty" yaml:"method,omitempty"`
	OnFailure string `json:"on_failure,omitempty" yaml:"on_failure,omitempty"`
}

// System4 holds environment monitoring lists.
type System4 struct {
	Monitoring Monitoring `json:"monitoring" yaml:"monitoring"`
}

// Monitoring lists what the Scout watches in the outside world.
type Monitoring struct {
	Competitors []string `json:"competitors,omitempty" yaml:"competitors,omitempty"`
	Technology  []string `json:"technology,omitempty" yaml:"technology,omitempty"`
	Regulation  []string `json:"regulation,omitempty" yaml:"regulation,omitempty"`
}

// Budget is the monthly spending figure and allocation strategy.
type Budget struct {
	// MonthlyUSD is the total monthly budget. Must be positive for allocation.
	MonthlyUSD float64 `json:"monthly_usd" yaml:"monthly_usd"`
	// Strategy selects the default model tier table.
	Strategy Strategy `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	// Alerts holds spend alert thresholds.
	Alerts *BudgetAlerts `json:"alerts,omitempty" yaml:"alerts,omitempty"`
}

// BudgetAlerts holds spend alert thresholds as percentages of the budget.
type BudgetAlerts struct {
	WarnAtPercent          int `json:"warn_at_percent,omitempty" yaml:"warn_at_percent,omitempty"`
	AutoDowngradeAtPercent int `json:"auto_downgrade_at_percent,omitempty" yaml:"auto_downgrade_at_percent,omitempty"`
}

// HumanInTheLoop lists which actions require human approval. The engine
// passes it through untouched; the checker only inspects whether it is set.
type HumanInTheLoop struct {
	ApprovalRequired     []string `json:"approval_required,omitempty" yaml:"approval_required,omitempty"`
	ReviewRhythm         string   `json:"review_rhythm,omitempty" yaml:"review_rhythm,omitempty"`
	EmergencyStop        string   `json:"emergency_stop,omitempty" yaml:"emergency_stop,omitempty"`
	NotificationChannels []string `json:"notification_channels,omitempty" yaml:"notification_channels,omitempty"`
}

// Persistence describes how agent state survives across sessions.
type Persistence struct {
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
}
