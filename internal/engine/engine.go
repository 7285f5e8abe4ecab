// Package engine composes the viability checker, the budget allocator, and
// the coordination rule generator behind one facade. The two core
// computations are independent pure functions sharing only the Config type
// and the model catalog; the facade adds no state and may be used
// concurrently without coordination.
package engine

import (
	"github.com/viableos/viableos/internal/budget"
	"github.com/viableos/viableos/internal/catalog"
	"github.com/viableos/viableos/internal/checker"
	"github.com/viableos/viableos/internal/coordination"
	"github.com/viableos/viableos/pkg/models"
)

// Engine bundles the three core operations over one injected catalog.
type Engine struct {
	catalog   *catalog.Catalog
	checker   *checker.Checker
	allocator *budget.Allocator
	rules     *coordination.Generator
}

// New creates an Engine backed by the given catalog. Pass catalog.Default()
// outside of tests.
func New(c *catalog.Catalog) *Engine {
	return &Engine{
		catalog:   c,
		checker:   checker.NewChecker(c),
		allocator: budget.NewAllocator(c),
		rules:     coordination.NewGenerator(),
	}
}

// Catalog returns the engine's catalog for read-only lookups.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Check evaluates the config against the six-function model. Always succeeds
// for a structurally valid Config; the provider-diversity warning is skipped
// because no budget plan is in play.
func (e *Engine) Check(cfg *models.Config) *models.ViabilityReport {
	return e.checker.Check(cfg)
}

// Allocate computes a budget plan, or an InvalidBudgetError when the monthly
// budget is missing or non-positive.
func (e *Engine) Allocate(cfg *models.Config) (*models.BudgetPlan, error) {
	return e.allocator.Allocate(cfg)
}

// Rules derives the default coordination rule set from the config's units.
// The result is meant to be appended after any user-authored rules.
func (e *Engine) Rules(cfg *models.Config) []models.CoordinationRule {
	return e.rules.Generate(cfg.ViableSystem.System1)
}

// Evaluate runs both computations. The plan, when allocation succeeds, feeds
// back into the checker so the single-provider audit rule can run. A failed
// allocation never fails the check: the report is returned with a nil plan
// and the error.
func (e *Engine) Evaluate(cfg *models.Config) (*models.ViabilityReport, *models.BudgetPlan, error) {
	plan, err := e.allocator.Allocate(cfg)
	if err != nil {
		return e.checker.Check(cfg), nil, err
	}
	return e.checker.CheckWithPlan(cfg, plan), plan, nil
}
