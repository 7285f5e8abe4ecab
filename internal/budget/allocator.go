// Package budget turns a Config's single monthly spending figure into
// per-agent model assignments: an operational pool split across S1 units by
// weight, a management pool split across the five fixed management functions,
// and a resolved model id for every allocation.
package budget

import (
	"fmt"
	"math"

	"github.com/viableos/viableos/internal/catalog"
	"github.com/viableos/viableos/pkg/models"
)

// ProviderPreferenceKey is the reserved model_routing key naming the
// preferred provider family. It is not a routing slot.
const ProviderPreferenceKey = "provider_preference"

const defaultUnitWeight = 5

// InvalidBudgetError reports a missing, zero, or negative monthly budget.
// The allocator never silently defaults the budget.
type InvalidBudgetError struct {
	MonthlyUSD float64
}

func (e *InvalidBudgetError) Error() string {
	return fmt.Sprintf("invalid monthly budget %.2f: must be positive", e.MonthlyUSD)
}

// Allocator computes budget plans against an injected catalog.
type Allocator struct {
	catalog *catalog.Catalog
}

// NewAllocator creates an Allocator backed by the given catalog.
func NewAllocator(c *catalog.Catalog) *Allocator {
	return &Allocator{catalog: c}
}

// Allocate distributes the monthly budget across operational units and the
// five management functions and resolves a model for each. It is pure and
// deterministic: the same Config always yields the same plan. The input is
// never mutated.
func (a *Allocator) Allocate(cfg *models.Config) (*models.BudgetPlan, error) {
	vs := &cfg.ViableSystem
	monthly := vs.Budget.MonthlyUSD
	if monthly <= 0 {
		return nil, &InvalidBudgetError{MonthlyUSD: monthly}
	}

	strategy := vs.Budget.Strategy
	if !strategy.Valid() {
		strategy = models.StrategyBalanced
	}

	routing := a.resolveRouting(vs, strategy)

	totalCents := toCents(monthly)
	units := vs.System1
	mgmtCents, opCents := splitPools(totalCents, len(units), strategy)

	allocations := make([]models.BudgetAllocation, 0, len(units)+len(models.ManagementFunctions))
	amounts := make([]int64, 0, cap(allocations))

	// Operational pool: weight-proportional unit shares.
	if len(units) > 0 {
		unitAmounts := distributeCents(opCents, unitWeights(units))
		for i, unit := range units {
			model := a.unitModel(vs, &unit, routing)
			routing[unit.Name] = model
			allocations = append(allocations, models.BudgetAllocation{
				System:       "S1:" + unit.Name,
				FriendlyName: unit.Name,
				MonthlyUSD:   fromCents(unitAmounts[i]),
				Model:        model,
			})
			amounts = append(amounts, unitAmounts[i])
		}
	}

	// Management pool: fixed shares, renormalized by largest remainder.
	shares := make([]float64, len(models.ManagementFunctions))
	for i, fn := range models.ManagementFunctions {
		shares[i] = fn.Share
	}
	mgmtAmounts := distributeCents(mgmtCents, shares)
	for i, fn := range models.ManagementFunctions {
		allocations = append(allocations, models.BudgetAllocation{
			System:       fn.System,
			FriendlyName: fn.FriendlyName,
			MonthlyUSD:   fromCents(mgmtAmounts[i]),
			Model:        routing[fn.RoutingKey],
		})
		amounts = append(amounts, mgmtAmounts[i])
	}

	for i, pct := range percentagesOf(amounts, totalCents) {
		allocations[i].Percentage = pct
	}

	return &models.BudgetPlan{
		TotalMonthlyUSD: monthly,
		Strategy:        strategy,
		Allocations:     allocations,
		ModelRouting:    routing,
	}, nil
}

// resolveRouting builds the routing slot table: explicit user overrides win,
// otherwise the strategy preset filtered through the provider preference,
// with the cross-provider audit constraint applied last.
func (a *Allocator) resolveRouting(vs *models.ViableSystem, strategy models.Strategy) map[string]string {
	provider := vs.ModelRouting[ProviderPreferenceKey]
	preset := a.catalog.Preset(strategy)

	routing := make(map[string]string, len(models.RoutingSlots)+len(vs.System1))
	for _, slot := range models.RoutingSlots {
		if explicit := vs.ModelRouting[slot]; explicit != "" {
			routing[slot] = explicit
			continue
		}
		routing[slot] = a.catalog.ApplyProviderPreference(preset[slot], provider)
	}

	// The Auditor must not share the default S1 provider unless the user
	// pinned it explicitly.
	if vs.ModelRouting[models.RouteS3StarAudit] == "" {
		s1Provider := a.catalog.Provider(routing[models.RouteS1Routine])
		if a.catalog.Provider(routing[models.RouteS3StarAudit]) == s1Provider {
			routing[models.RouteS3StarAudit] = a.catalog.AuditFallback(s1Provider)
		}
	}

	return routing
}

// unitModel resolves one unit's model: the unit's own pin, then a
// model_routing entry keyed by unit name, then the routine slot default.
func (a *Allocator) unitModel(vs *models.ViableSystem, unit *models.S1Unit, routing map[string]string) string {
	if unit.Model != "" {
		return unit.Model
	}
	if m := vs.ModelRouting[unit.Name]; m != "" {
		return m
	}
	return routing[models.RouteS1Routine]
}

// splitPools partitions the budget into management and operational pools.
// The management share is a pure function of unit count and strategy: a 35%
// base, widened 3 points per unit beyond the first (capped at 50%), shifted
// 5 points down for frugal and up for performance, clamped to [20%, 60%].
// With no units the entire budget is management.
func splitPools(totalCents int64, unitCount int, strategy models.Strategy) (mgmt, op int64) {
	if unitCount == 0 {
		return totalCents, 0
	}

	percent := 35 + 3*(unitCount-1)
	if percent > 50 {
		percent = 50
	}
	switch strategy {
	case models.StrategyFrugal:
		percent -= 5
	case models.StrategyPerformance:
		percent += 5
	}
	if percent < 20 {
		percent = 20
	}
	if percent > 60 {
		percent = 60
	}

	pools := distributeCents(totalCents, []float64{float64(percent), float64(100 - percent)})
	return pools[0], pools[1]
}

// unitWeights normalizes unit weights: nil means the default of 5, and
// explicit non-positive weights floor to 1 so every unit keeps a share.
func unitWeights(units []models.S1Unit) []float64 {
	weights := make([]float64, len(units))
	for i, u := range units {
		switch {
		case u.Weight == nil:
			weights[i] = defaultUnitWeight
		case *u.Weight < 1:
			weights[i] = 1
		default:
			weights[i] = *u.Weight
		}
	}
	return weights
}

func toCents(usd float64) int64 {
	return int64(math.Round(usd * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}
