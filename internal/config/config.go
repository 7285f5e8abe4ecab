// Package config handles configuration for the viableos tool itself and
// loading/validation of organization config files. It supports XDG config
// paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings holds tool-level preferences, distinct from the organization
// config the engine consumes.
type Settings struct {
	Defaults DefaultsSettings `mapstructure:"defaults"`
	Server   ServerSettings   `mapstructure:"server"`
	Output   OutputSettings   `mapstructure:"output"`
}

// DefaultsSettings holds default values applied when an organization config
// leaves them unset.
type DefaultsSettings struct {
	// Strategy is the default budget strategy for new configs.
	Strategy string `mapstructure:"strategy"`
	// Provider is the default provider preference for new configs.
	Provider string `mapstructure:"provider"`
	// MonthlyUSD is the starter budget written by `viableos init`.
	MonthlyUSD float64 `mapstructure:"monthly_usd"`
}

// ServerSettings holds HTTP API settings.
type ServerSettings struct {
	Addr string `mapstructure:"addr"`
}

// OutputSettings holds terminal output settings.
type OutputSettings struct {
	Color bool `mapstructure:"color"`
}

// Load loads tool settings from XDG paths, project overrides, and
// environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (VIABLEOS_*)
// 2. Project config (.viableos.yaml in current directory or a parent)
// 3. User config (~/.config/viableos/config.yaml)
// 4. Built-in defaults
func Load() (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("VIABLEOS")
	v.AutomaticEnv()

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}

	return settings, nil
}

// LoadFromPath loads settings from a specific file (for testing).
func LoadFromPath(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}

	return settings, nil
}

// Save writes the settings to the user config file.
func Save(settings *Settings) error {
	dir := userConfigDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, "config.yaml"))

	v.Set("defaults.strategy", settings.Defaults.Strategy)
	v.Set("defaults.provider", settings.Defaults.Provider)
	v.Set("defaults.monthly_usd", settings.Defaults.MonthlyUSD)
	v.Set("server.addr", settings.Server.Addr)
	v.Set("output.color", settings.Output.Color)

	return v.WriteConfig()
}

// UserConfigPath returns the path to the user config file.
func UserConfigPath() string {
	return filepath.Join(userConfigDir(), "config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("defaults.strategy", "balanced")
	v.SetDefault("defaults.provider", "anthropic")
	v.SetDefault("defaults.monthly_usd", 150.0)
	v.SetDefault("server.addr", "127.0.0.1:8420")
	v.SetDefault("output.color", true)
}

func userConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "viableos")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "viableos")
	}
	return filepath.Join(home, ".config", "viableos")
}

// findProjectConfig searches for .viableos.yaml in the current directory and
// parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".viableos.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
