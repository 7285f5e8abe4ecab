package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viableos/viableos/internal/catalog"
	"github.com/viableos/viableos/internal/config"
	"github.com/viableos/viableos/internal/engine"
	"github.com/viableos/viableos/internal/render"
	"github.com/viableos/viableos/internal/wizard"
	"github.com/viableos/viableos/pkg/models"
)

const defaultOrgFile = "viableos.yaml"

var rootCmd = &cobra.Command{
	Use:   "viableos",
	Short: "Viability checks and budget plans for multi-agent organizations",
	Long: `ViableOS turns an organization config into viability reports, budget
plans, and deployable agent packages, structured after the Viable System
Model (VSM).

With no arguments, launches the interactive setup wizard.

Core capabilities:
- Checks a config against the six VSM presence criteria
- Flags structural pathologies before they cost money
- Maps a monthly budget onto per-agent model assignments
- Generates inter-unit coordination rules
- Emits a deployable OpenClaw agent package`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings loads tool settings, falling back to defaults on error.
func loadSettings() *config.Settings {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
		return &config.Settings{
			Defaults: config.DefaultsSettings{Strategy: "balanced", MonthlyUSD: 150},
			Output:   config.OutputSettings{Color: true},
		}
	}
	return settings
}

func newEngine() *engine.Engine {
	return engine.New(catalog.Default())
}

func newRenderer(settings *config.Settings) *render.Renderer {
	return render.New(os.Stdout, settings.Output.Color)
}

// orgPath resolves the config file argument, defaulting to viableos.yaml in
// the working directory.
func orgPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultOrgFile
}

func loadOrg(args []string) (*models.Config, string, error) {
	path := orgPath(args)
	cfg, err := config.LoadOrg(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && len(args) == 0 {
			return nil, path, fmt.Errorf("no %s in the current directory; run `viableos init` to create one", defaultOrgFile)
		}
		return nil, path, err
	}
	return cfg, path, nil
}

func runWizard() error {
	cfg, err := wizard.Run(newEngine())
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}

	if err := config.SaveOrg(defaultOrgFile, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Printf("\nSaved %s. Next: `viableos check` or `viableos generate`.\n", defaultOrgFile)
	return nil
}
