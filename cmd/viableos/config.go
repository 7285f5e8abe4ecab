package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viableos/viableos/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage tool settings",
	Long: `View or modify viableos tool settings.

Without arguments, displays current settings.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the value.

Settings are stored at ~/.config/viableos/config.yaml
Project-specific overrides can be placed in .viableos.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllSettings(settings)
		case 1:
			displaySettingsKey(settings, args[0])
		default:
			setSettingsKey(settings, args[0], args[1])
		}
	},
}

func displayAllSettings(settings *config.Settings) {
	fmt.Printf("defaults.strategy: %s\n", settings.Defaults.Strategy)
	fmt.Printf("defaults.provider: %s\n", settings.Defaults.Provider)
	fmt.Printf("defaults.monthly_usd: %g\n", settings.Defaults.MonthlyUSD)
	fmt.Printf("server.addr: %s\n", settings.Server.Addr)
	fmt.Printf("output.color: %t\n", settings.Output.Color)
}

func displaySettingsKey(settings *config.Settings, key string) {
	value, err := getSettingsValue(settings, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

func setSettingsKey(settings *config.Settings, key, value string) {
	if err := setSettingsValue(settings, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getSettingsValue retrieves a settings value by dot-notation key.
func getSettingsValue(settings *config.Settings, key string) (string, error) {
	switch strings.ToLower(key) {
	case "defaults.strategy":
		return settings.Defaults.Strategy, nil
	case "defaults.provider":
		return settings.Defaults.Provider, nil
	case "defaults.monthly_usd":
		return strconv.FormatFloat(settings.Defaults.MonthlyUSD, 'g', -1, 64), nil
	case "server.addr":
		return settings.Server.Addr, nil
	case "output.color":
		return strconv.FormatBool(settings.Output.Color), nil
	default:
		return "", fmt.Errorf("unknown settings key: %s", key)
	}
}

// setSettingsValue sets a settings value by dot-notation key.
func setSettingsValue(settings *config.Settings, key, value string) error {
	switch strings.ToLower(key) {
	case "defaults.strategy":
		switch value {
		case "frugal", "balanced", "performance":
		default:
			return fmt.Errorf("invalid strategy %q (frugal|balanced|performance)", value)
		}
		settings.Defaults.Strategy = value
	case "defaults.provider":
		settings.Defaults.Provider = value
	case "defaults.monthly_usd":
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid value for monthly_usd: %s", value)
		}
		settings.Defaults.MonthlyUSD = n
	case "server.addr":
		settings.Server.Addr = value
	case "output.color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for output.color: %w", err)
		}
		settings.Output.Color = b
	default:
		return fmt.Errorf("unknown settings key: %s", key)
	}
	return nil
}
