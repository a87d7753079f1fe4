package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/triadhq/triad/internal/coord"
	"github.com/triadhq/triad/internal/validation"
)

var (
	validateConfigPath  string
	validateDatasetFile string
	validateStrategy    string
	validateJSONOut     string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Project multi-agent performance over measured baselines",
	Long: `Project multi-agent decomposition performance over measured single-agent
baselines and report aggregate statistics.

The dataset defaults to the built-in AndroidWorld baselines. Use
--dataset to supply your own measurements.

Examples:
  triad validate
  triad validate --strategy global
  triad validate --dataset baselines.yaml --json results.json`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "Config file path (defaults to user/project config)")
	validateCmd.Flags().StringVar(&validateDatasetFile, "dataset", "", "YAML file with baseline task statistics")
	validateCmd.Flags().StringVar(&validateStrategy, "strategy", "", "Assignment strategy: greedy or global")
	validateCmd.Flags().StringVar(&validateJSONOut, "json", "", "Write projection results to a JSON file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(validateConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	opts, err := decomposerOptions(cfg, validateStrategy)
	if err != nil {
		return err
	}
	decomposer, err := coord.New(opts...)
	if err != nil {
		return err
	}

	tasks := validation.AndroidWorldTasks()
	if validateDatasetFile != "" {
		tasks, err = validation.LoadDataset(validateDatasetFile)
		if err != nil {
			return err
		}
	}

	report, err := validation.Simulate(decomposer, tasks)
	if err != nil {
		return err
	}

	printReport(report)

	if validateJSONOut != "" {
		if err := writeReportJSON(validateJSONOut, report); err != nil {
			return err
		}
		fmt.Printf("\nResults saved to %s\n", validateJSONOut)
	}
	return nil
}

// printReport renders per-task projections and aggregate statistics.
func printReport(report validation.Report) {
	header := color.New(color.FgCyan, color.Bold)
	header.Println("Multi-Agent vs Single-Agent Performance")

	for _, p := range report.Projections {
		fmt.Printf("\n%s:\n", p.Task)
		fmt.Printf("  Baseline:    %d steps, %.2f success\n", p.BaselineSteps, p.BaselineSuccess)
		fmt.Printf("  Multi-agent: %d steps, %.2f success\n", p.PredictedSteps, p.PredictedSuccess)
		fmt.Printf("  Improvement: %+.1f%% steps, %+.1f%% success (coordination %.2f)\n",
			p.StepImprovement*100, p.SuccessImprovement*100, p.CoordinationCost)
	}

	fmt.Println()
	header.Println("Statistical Analysis")
	fmt.Printf("  Sample size: %d tasks\n", len(report.Projections))
	fmt.Printf("  Average step improvement: %.1f%% ± %.1f%%\n",
		report.AvgStepImprovement*100, report.StdError*100)
	fmt.Printf("  Average success improvement: %.1f%%\n", report.AvgSuccessImprovement*100)
	fmt.Printf("  Average coordination cost: %.3f\n", report.AvgCoordinationCost)

	significance := color.YellowString("p = %.3f ?", report.PValue)
	if report.Significant() {
		significance = color.GreenString("p = %.3f ✓", report.PValue)
	}
	fmt.Printf("  Significance: %s\n", significance)
}

// writeReportJSON saves the full report for downstream analysis.
func writeReportJSON(path string, report validation.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
