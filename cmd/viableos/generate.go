package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/viableos/viableos/internal/config"
	"github.com/viableos/viableos/internal/generator"
)

var (
	generateOutput string
	generateSkip   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [config file]",
	Short: "Generate a deployable OpenClaw agent package",
	Long: `Generate a complete OpenClaw agent package from the config: one
workspace per agent (SOUL, SKILL, HEARTBEAT, USER, MEMORY, AGENTS),
shared organization memory, the openclaw.json manifest, and a phased
install script.

The config must validate and the budget must cover the organization.
Critical viability warnings block generation unless --skip-checks is
set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "openclaw-package", "Output directory")
	generateCmd.Flags().BoolVar(&generateSkip, "skip-checks", false, "Generate despite critical viability warnings")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadOrg(args)
	if err != nil {
		return err
	}

	if problems := config.ValidateOrg(cfg); len(problems) > 0 {
		printStatus("✗", fmt.Sprintf("%s has problems:", path), color.FgRed)
		for _, p := range problems {
			fmt.Printf("  - %s\n", p)
		}
		return fmt.Errorf("fix the config before generating")
	}

	eng := newEngine()
	report := eng.Check(cfg)
	if critical := report.Critical(); len(critical) > 0 && !generateSkip {
		printStatus("✗", "Critical viability warnings:", color.FgRed)
		for _, w := range critical {
			fmt.Printf("  - %s\n", w.Message)
		}
		return fmt.Errorf("fix the warnings or pass --skip-checks")
	}

	if err := generator.New(eng).Generate(cfg, generateOutput); err != nil {
		return err
	}

	printStatus("✓", fmt.Sprintf("Package written to %s/", generateOutput), color.FgGreen)
	fmt.Println()
	fmt.Println("Deploy with:")
	fmt.Printf("  cd %s && ./install.sh\n", generateOutput)
	return nil
}
