package models

// Routing slot keys. Every BudgetPlan's model_routing covers all of these
// plus one entry per named S1 unit.
const (
	RouteS1Routine      = "s1_routine"
	RouteS1Complex      = "s1_complex"
	RouteS2Coordination = "s2_coordination"
	RouteS3Optimization = "s3_optimization"
	RouteS3StarAudit    = "s3_star_audit"
	RouteS4Intelligence = "s4_intelligence"
	RouteS5Preparation  = "s5_preparation"
)

// RoutingSlots lists the fixed routing slot keys in canonical order.
var RoutingSlots = []string{
	RouteS1Routine,
	RouteS1Complex,
	RouteS2Coordination,
	RouteS3Optimization,
	RouteS3StarAudit,
	RouteS4Intelligence,
	RouteS5Preparation,
}

// ManagementFunction is one of the five fixed non-operational roles.
type ManagementFunction struct {
	// System is the VSM system key ("S2", "S3", "S3*", "S4", "S5").
	System string
	// FriendlyName is the human-facing role name.
	FriendlyName string
	// RoutingKey is the model routing slot the role resolves through.
	RoutingKey string
	// Share is the role's fixed fraction of the management pool.
	Share float64
}

// ManagementFunctions is the closed enumeration of management roles in
// canonical order. Shares sum to 1.
var ManagementFunctions = []ManagementFunction{
	{System: "S2", FriendlyName: "Coordinator", RoutingKey: RouteS2Coordination, Share: 0.15},
	{System: "S3", FriendlyName: "Optimizer", RoutingKey: RouteS3Optimization, Share: 0.34},
	{System: "S3*", FriendlyName: "Auditor", RoutingKey: RouteS3StarAudit, Share: 0.14},
	{System: "S4", FriendlyName: "Scout", RoutingKey: RouteS4Intelligence, Share: 0.28},
	{System: "S5", FriendlyName: "Policy Guardian", RoutingKey: RouteS5Preparation, Share: 0.09},
}

// BudgetAllocation is one line item of a BudgetPlan.
type BudgetAllocation struct {
	// System is the allocation key: "S1:<unit name>" for operational units,
	// or the management function's system key.
	System string `json:"system"`
	// FriendlyName is the unit name or management role name.
	FriendlyName string `json:"friendly_name"`
	// MonthlyUSD is the dollars per month assigned to this line.
	MonthlyUSD float64 `json:"monthly_usd"`
	// Model is the resolved model identifier.
	Model string `json:"model"`
	// Percentage is this line's integer share of the total budget.
	Percentage int `json:"percentage"`
}

// BudgetPlan maps a monthly spending figure onto per-agent model assignments.
type BudgetPlan struct {
	// TotalMonthlyUSD echoes the input budget.
	TotalMonthlyUSD float64 `json:"total_monthly_usd"`
	// Strategy is the strategy the plan was computed with.
	Strategy Strategy `json:"strategy"`
	// Allocations lists line items: operational units first (declaration
	// order), then the five management functions. Dollar amounts sum to
	// TotalMonthlyUSD; percentages sum to exactly 100.
	Allocations []BudgetAllocation `json:"allocations"`
	// ModelRouting maps every routing slot, plus one key per named unit,
	// to its resolved model id.
	ModelRouting map[string]string `json:"model_routing"`
}

// Allocation returns the allocation with the given system key, or nil.
func (p *BudgetPlan) Allocation(system string) *BudgetAllocation {
	for i := range p.Allocations {
		if p.Allocations[i].System == system {
			return &p.Allocations[i]
		}
	}
	return nil
}
