package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viableos/viableos/internal/budget"
	"github.com/viableos/viableos/pkg/models"
)

var (
	budgetJSON     bool
	budgetOverride float64
	budgetStrategy string
)

var budgetCmd = &cobra.Command{
	Use:   "budget [config file]",
	Short: "Allocate the monthly budget across agents",
	Long: `Map the configured monthly budget onto per-agent model assignments.

The split between frontline units and the management layer depends on
unit count and strategy; each line gets the best model its share can
sustain. Use --monthly and --strategy to explore alternatives without
editing the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBudget,
}

func init() {
	budgetCmd.Flags().BoolVar(&budgetJSON, "json", false, "Emit the plan as JSON")
	budgetCmd.Flags().Float64Var(&budgetOverride, "monthly", 0, "Override the monthly budget (USD)")
	budgetCmd.Flags().StringVar(&budgetStrategy, "strategy", "", "Override the strategy (frugal|balanced|performance)")
}

func runBudget(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadOrg(args)
	if err != nil {
		return err
	}
	if budgetOverride > 0 {
		cfg.ViableSystem.Budget.MonthlyUSD = budgetOverride
	}
	if budgetStrategy != "" {
		s := models.Strategy(budgetStrategy)
		if !s.Valid() {
			return fmt.Errorf("invalid strategy %q (frugal|balanced|performance)", budgetStrategy)
		}
		cfg.ViableSystem.Budget.Strategy = s
	}

	plan, err := newEngine().Allocate(cfg)
	if err != nil {
		var invalid *budget.InvalidBudgetError
		if errors.As(err, &invalid) {
			return fmt.Errorf("%v; try --monthly with a higher amount", err)
		}
		return err
	}

	if budgetJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	newRenderer(loadSettings()).Plan(plan)
	return nil
}
