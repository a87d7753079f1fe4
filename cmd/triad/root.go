package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/triadhq/triad/internal/config"
	"github.com/triadhq/triad/internal/coord"
)

var rootCmd = &cobra.Command{
	Use:   "triad",
	Short: "Complexity-driven task decomposition for mobile-UI automation",
	Long: `Triad decomposes mobile-UI automation tasks by estimated complexity and
assigns each subtask to the specialist it fits best: a planner, an
executor, or a verifier.

Core capabilities:
- Estimates planning, execution and verification complexity from a UI snapshot
- Splits high-complexity tasks into a four-phase pipeline
- Assigns subtasks via a capability matrix with hand-off costs
- Runs episodes against an external automation framework and records results
- Projects multi-agent performance over measured single-agent baselines`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(decomposeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the effective configuration, preferring an explicit path.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// decomposerOptions converts coordination config into decomposer options.
func decomposerOptions(cfg *config.Config, strategyFlag string) ([]coord.Option, error) {
	opts := []coord.Option{
		coord.WithThreshold(cfg.Coordination.HighComplexityThreshold),
	}

	if len(cfg.Coordination.CapabilityMatrix) > 0 {
		matrix, err := matrixFromConfig(cfg.Coordination.CapabilityMatrix)
		if err != nil {
			return nil, err
		}
		opts = append(opts, coord.WithCapabilityMatrix(matrix))
	}

	strategy := cfg.Coordination.Strategy
	if strategyFlag != "" {
		strategy = strategyFlag
	}
	switch strategy {
	case "", "greedy":
		opts = append(opts, coord.WithMatchingStrategy(coord.StrategyGreedy))
	case "global":
		opts = append(opts, coord.WithMatchingStrategy(coord.StrategyGlobal))
	default:
		return nil, fmt.Errorf("unknown strategy %q (want greedy or global)", strategy)
	}

	if cfg.Coordination.DefaultTransitionCost != coord.DefaultCrossTransitionCost {
		table, err := coord.DefaultTransitionTable().WithFallback(cfg.Coordination.DefaultTransitionCost)
		if err != nil {
			return nil, err
		}
		opts = append(opts, coord.WithTransitionTable(table))
	}

	return opts, nil
}

// matrixFromConfig converts a config matrix into a CapabilityMatrix.
func matrixFromConfig(rows [][]float64) (coord.CapabilityMatrix, error) {
	var matrix coord.CapabilityMatrix
	if len(rows) != len(matrix) {
		return matrix, fmt.Errorf("capability matrix needs %d rows, got %d", len(matrix), len(rows))
	}
	for i, row := range rows {
		if len(row) != len(matrix[i]) {
			return matrix, fmt.Errorf("capability matrix row %d needs %d values, got %d", i, len(matrix[i]), len(row))
		}
		copy(matrix[i][:], row)
	}
	return matrix, nil
}
