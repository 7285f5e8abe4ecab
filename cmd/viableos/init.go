package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/viableos/viableos/internal/config"
	"github.com/viableos/viableos/internal/templates"
	"github.com/viableos/viableos/pkg/models"
)

var (
	initTemplate string
	initMonthly  float64
	initStrategy string
	initForce    bool
	initList     bool
	initOutput   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an organization config from a template",
	Long: `Create a viableos.yaml starting point from one of the built-in
organization templates.

The generated file is a draft: edit the unit purposes, values, and
budget to match your organization, then run ` + "`viableos check`" + `.

Examples:
  viableos init --list                    # List available templates
  viableos init --template saas-startup   # SaaS starting point
  viableos init --template custom         # Minimal skeleton
  viableos init --template law-firm --monthly 400 --strategy performance`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "custom", "Template key (see --list)")
	initCmd.Flags().Float64Var(&initMonthly, "monthly", 0, "Monthly budget in USD (default from settings)")
	initCmd.Flags().StringVar(&initStrategy, "strategy", "", "Budget strategy (default from settings)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	initCmd.Flags().BoolVar(&initList, "list", false, "List available templates and exit")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", defaultOrgFile, "Output file path")
}

func runInit(cmd *cobra.Command, args []string) error {
	if initList {
		listTemplates()
		return nil
	}

	settings := loadSettings()
	monthly := initMonthly
	if monthly <= 0 {
		monthly = settings.Defaults.MonthlyUSD
	}
	strategy := models.Strategy(initStrategy)
	if strategy == "" {
		strategy = models.Strategy(settings.Defaults.Strategy)
	}

	cfg, ok := templates.Build(initTemplate, monthly, strategy)
	if !ok {
		return fmt.Errorf("unknown template %q; run `viableos init --list`", initTemplate)
	}

	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("%s already exists; use --force to overwrite", initOutput)
	}

	if err := config.SaveOrg(initOutput, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	printStatus("✓", fmt.Sprintf("Created %s from template %q", initOutput, initTemplate), color.FgGreen)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. Edit %s (unit purposes, values, budget)\n", initOutput)
	fmt.Println("  2. Run `viableos check` to score viability")
	fmt.Println("  3. Run `viableos budget` to see the model assignments")
	return nil
}

func listTemplates() {
	fmt.Println("Available templates:")
	fmt.Println()
	for _, t := range templates.All() {
		fmt.Printf("  %-22s %-22s %s\n", t.Key, t.Name, t.Tagline)
	}
	fmt.Println()
	fmt.Println("Use with: viableos init --template <key>")
}

func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}
