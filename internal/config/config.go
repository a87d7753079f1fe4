// Package config handles configuration loading and management for triad.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for triad.
type Config struct {
	Coordination CoordinationConfig `mapstructure:"coordination"`
	Harness      HarnessConfig      `mapstructure:"harness"`
	Store        StoreConfig        `mapstructure:"store"`
	TUI          TUIConfig          `mapstructure:"tui"`
}

// CoordinationConfig holds decomposition and assignment settings.
type CoordinationConfig struct {
	// HighComplexityThreshold is the mean complexity above which tasks get
	// the four-phase decomposition.
	HighComplexityThreshold float64 `mapstructure:"high_complexity_threshold"`
	// DefaultTransitionCost is the hand-off cost for worker pairs without an
	// explicit entry.
	DefaultTransitionCost float64 `mapstructure:"default_transition_cost"`
	// Strategy selects the assignment strategy: "greedy" or "global".
	Strategy string `mapstructure:"strategy"`
	// CapabilityMatrix overrides the built-in worker capability scores when
	// non-empty. Rows are workers, columns are requirement dimensions.
	CapabilityMatrix [][]float64 `mapstructure:"capability_matrix"`
}

// HarnessConfig holds external framework settings.
type HarnessConfig struct {
	// Command is the framework entry point run for each episode.
	Command string `mapstructure:"command"`
	// WorkDir is the framework checkout to run in.
	WorkDir string `mapstructure:"work_dir"`
	// Timeout bounds a single framework run.
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxSteps is the per-episode step budget passed to the framework.
	MaxSteps int `mapstructure:"max_steps"`
}

// StoreConfig holds episode persistence settings.
type StoreConfig struct {
	// Path is the SQLite database file. Empty means the global database.
	Path string `mapstructure:"path"`
}

// TUIConfig holds TUI display settings.
type TUIConfig struct {
	RefreshRate time.Duration `mapstructure:"refresh_rate"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (TRIAD_*)
// 2. Project config (.triad.yaml in current directory or parent)
// 3. User config (~/.config/triad/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Project config takes precedence over the user config.
	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("TRIAD")
	v.BindEnv("harness.command", "TRIAD_HARNESS_COMMAND")
	v.BindEnv("harness.work_dir", "TRIAD_HARNESS_WORK_DIR")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Harness.WorkDir = os.ExpandEnv(cfg.Harness.WorkDir)
	cfg.Store.Path = os.ExpandEnv(cfg.Store.Path)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Harness.WorkDir = os.ExpandEnv(cfg.Harness.WorkDir)
	cfg.Store.Path = os.ExpandEnv(cfg.Store.Path)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(userConfigDir, "config.yaml"))

	v.Set("coordination.high_complexity_threshold", cfg.Coordination.HighComplexityThreshold)
	v.Set("coordination.default_transition_cost", cfg.Coordination.DefaultTransitionCost)
	v.Set("coordination.strategy", cfg.Coordination.Strategy)
	v.Set("harness.command", cfg.Harness.Command)
	v.Set("harness.work_dir", cfg.Harness.WorkDir)
	v.Set("harness.timeout", cfg.Harness.Timeout.String())
	v.Set("harness.max_steps", cfg.Harness.MaxSteps)
	v.Set("store.path", cfg.Store.Path)
	v.Set("tui.refresh_rate", cfg.TUI.RefreshRate.String())

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("coordination.high_complexity_threshold", 2.0)
	v.SetDefault("coordination.default_transition_cost", 0.2)
	v.SetDefault("coordination.strategy", "greedy")

	v.SetDefault("harness.command", "python src/main.py")
	v.SetDefault("harness.work_dir", "")
	v.SetDefault("harness.timeout", "5m")
	v.SetDefault("harness.max_steps", 10)

	v.SetDefault("store.path", "")

	v.SetDefault("tui.refresh_rate", "100ms")
}

// getUserConfigDir returns the XDG config directory for triad.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "triad")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "triad")
	}
	return filepath.Join(home, ".config", "triad")
}

// findProjectConfig searches for .triad.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".triad.yaml")
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

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Coordination: CoordinationConfig{
			HighComplexityThreshold: 2.0,
			DefaultTransitionCost:   0.2,
			Strategy:                "greedy",
		},
		Harness: HarnessConfig{
			Command:  "python src/main.py",
			Timeout:  5 * time.Minute,
			MaxSteps: 10,
		},
		TUI: TUIConfig{
			RefreshRate: 100 * time.Millisecond,
		},
	}
}
