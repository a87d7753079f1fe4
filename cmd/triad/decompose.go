package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/triadhq/triad/internal/coord"
	"github.com/triadhq/triad/internal/harness"
	"github.com/triadhq/triad/pkg/models"
)

var (
	decomposeConfigPath   string
	decomposeScenarioFile string
	decomposeStrategy     string
)

var decomposeCmd = &cobra.Command{
	Use:   "decompose [scenario]",
	Short: "Decompose tasks and show worker assignments",
	Long: `Decompose one or more scenarios into subtasks and show how each subtask
is assigned to a worker.

Without arguments, all scenarios are decomposed. With a scenario name,
only that scenario is decomposed. Scenarios come from --scenarios when
given, otherwise from the built-in demo set.

Examples:
  triad decompose
  triad decompose ContactsAdd
  triad decompose --scenarios tasks.yaml --strategy global`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecompose,
}

func init() {
	decomposeCmd.Flags().StringVar(&decomposeConfigPath, "config", "", "Config file path (defaults to user/project config)")
	decomposeCmd.Flags().StringVar(&decomposeScenarioFile, "scenarios", "", "YAML file with scenarios to decompose")
	decomposeCmd.Flags().StringVar(&decomposeStrategy, "strategy", "", "Assignment strategy: greedy or global")
}

func runDecompose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(decomposeConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	opts, err := decomposerOptions(cfg, decomposeStrategy)
	if err != nil {
		return err
	}
	decomposer, err := coord.New(opts...)
	if err != nil {
		return err
	}

	scenarios, err := resolveScenarios(decomposeScenarioFile, args)
	if err != nil {
		return err
	}

	for _, scenario := range scenarios {
		assignments, err := decomposer.Decompose(scenario.Name, scenario.UIState)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		printAssignments(scenario, assignments)
	}
	return nil
}

// resolveScenarios loads scenarios and filters to the named one if given.
func resolveScenarios(file string, args []string) ([]harness.Scenario, error) {
	var scenarios []harness.Scenario
	if file != "" {
		loaded, err := harness.LoadScenarios(file)
		if err != nil {
			return nil, err
		}
		scenarios = loaded
	} else {
		scenarios = harness.DefaultScenarios()
	}

	if len(args) == 0 {
		return scenarios, nil
	}
	for _, s := range scenarios {
		if s.Name == args[0] {
			return []harness.Scenario{s}, nil
		}
	}
	return nil, fmt.Errorf("unknown scenario %q", args[0])
}

// printAssignments renders one scenario's decomposition.
func printAssignments(scenario harness.Scenario, assignments []models.Assignment) {
	header := color.New(color.FgCyan, color.Bold)
	header.Printf("%s", scenario.Name)
	fmt.Printf("  (depth %d, %d elements)\n", scenario.UIState.HierarchyDepth, len(scenario.UIState.Elements))

	for _, a := range assignments {
		workerColor := workerColor(a.Worker)
		fmt.Printf("  %d. %-18s → %s  confidence %.2f  hand-off %.2f",
			a.Subtask.Priority, a.Subtask.Kind, workerColor.Sprint(a.Worker), a.Confidence, a.CoordinationCost)
		if a.LowConfidence {
			fmt.Printf("  %s", color.YellowString("(low confidence)"))
		}
		fmt.Println()
	}

	fmt.Printf("  coordination overhead: %.2f\n\n", coord.CoordinationOverhead(assignments))
}

// workerColor maps each worker to a stable display color.
func workerColor(w models.Worker) *color.Color {
	switch w {
	case models.WorkerPlanning:
		return color.New(color.FgBlue)
	case models.WorkerExecution:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgMagenta)
	}
}
