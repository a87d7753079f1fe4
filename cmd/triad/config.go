package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/triadhq/triad/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify triad configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/triad/config.yaml
Project-specific overrides can be placed in .triad.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("coordination.high_complexity_threshold: %g\n", cfg.Coordination.HighComplexityThreshold)
	fmt.Printf("coordination.default_transition_cost: %g\n", cfg.Coordination.DefaultTransitionCost)
	fmt.Printf("coordination.strategy: %s\n", cfg.Coordination.Strategy)
	fmt.Printf("harness.command: %s\n", cfg.Harness.Command)
	fmt.Printf("harness.work_dir: %s\n", displayString(cfg.Harness.WorkDir))
	fmt.Printf("harness.timeout: %s\n", cfg.Harness.Timeout)
	fmt.Printf("harness.max_steps: %d\n", cfg.Harness.MaxSteps)
	fmt.Printf("store.path: %s\n", displayString(cfg.Store.Path))
	fmt.Printf("tui.refresh_rate: %s\n", cfg.TUI.RefreshRate)
}

// displayString renders empty values explicitly.
func displayString(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "coordination.high_complexity_threshold":
		return strconv.FormatFloat(cfg.Coordination.HighComplexityThreshold, 'g', -1, 64), nil
	case "coordination.default_transition_cost":
		return strconv.FormatFloat(cfg.Coordination.DefaultTransitionCost, 'g', -1, 64), nil
	case "coordination.strategy":
		return cfg.Coordination.Strategy, nil
	case "harness.command":
		return cfg.Harness.Command, nil
	case "harness.work_dir":
		return displayString(cfg.Harness.WorkDir), nil
	case "harness.timeout":
		return cfg.Harness.Timeout.String(), nil
	case "harness.max_steps":
		return strconv.Itoa(cfg.Harness.MaxSteps), nil
	case "store.path":
		return displayString(cfg.Store.Path), nil
	case "tui.refresh_rate":
		return cfg.TUI.RefreshRate.String(), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "coordination.high_complexity_threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for high_complexity_threshold: %w", err)
		}
		cfg.Coordination.HighComplexityThreshold = f
	case "coordination.default_transition_cost":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for default_transition_cost: %w", err)
		}
		if f < 0 {
			return fmt.Errorf("default_transition_cost must be non-negative")
		}
		cfg.Coordination.DefaultTransitionCost = f
	case "coordination.strategy":
		if value != "greedy" && value != "global" {
			return fmt.Errorf("invalid strategy %q (want greedy or global)", value)
		}
		cfg.Coordination.Strategy = value
	case "harness.command":
		cfg.Harness.Command = value
	case "harness.work_dir":
		cfg.Harness.WorkDir = value
	case "harness.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for harness.timeout: %w", err)
		}
		cfg.Harness.Timeout = d
	case "harness.max_steps":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_steps: %w", err)
		}
		if n < 1 {
			return fmt.Errorf("max_steps must be at least 1")
		}
		cfg.Harness.MaxSteps = n
	case "store.path":
		cfg.Store.Path = value
	case "tui.refresh_rate":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for refresh_rate: %w", err)
		}
		cfg.TUI.RefreshRate = d
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
