package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/triadhq/triad/internal/store"
)

var (
	reportConfigPath string
	reportTask       string
	reportLimit      int
	reportPurge      time.Duration
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize recorded episodes",
	Long: `Summarize episodes recorded by previous runs.

Shows aggregate success rate, step counts and coordination cost, plus
the most recent episodes. Use --task to focus on one task.

Examples:
  triad report
  triad report --task ContactsAdd --limit 5
  triad report --purge 720h   # drop episodes older than 30 days first`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportConfigPath, "config", "", "Config file path (defaults to user/project config)")
	reportCmd.Flags().StringVar(&reportTask, "task", "", "Restrict the report to one task")
	reportCmd.Flags().IntVar(&reportLimit, "limit", 10, "Number of recent episodes to list")
	reportCmd.Flags().DurationVar(&reportPurge, "purge", 0, "Delete episodes older than this before reporting")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(reportConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if reportPurge > 0 {
		if err := purgeEpisodes(db, reportPurge); err != nil {
			return err
		}
	}

	summary, err := db.Summary(reportTask)
	if err != nil {
		return err
	}
	if summary.Episodes == 0 {
		fmt.Println("No recorded episodes. Run 'triad run' first.")
		return nil
	}

	header := color.New(color.FgCyan, color.Bold)
	if reportTask != "" {
		header.Printf("Episode summary for %s\n", reportTask)
	} else {
		header.Println("Episode summary")
	}
	fmt.Printf("  Episodes: %d\n", summary.Episodes)
	fmt.Printf("  Success rate: %.0f%% (%d/%d)\n", summary.SuccessRate*100, summary.Successes, summary.Episodes)
	fmt.Printf("  Average steps: %.1f\n", summary.AvgSteps)
	fmt.Printf("  Average step efficiency: %+.2f\n", summary.AvgStepEfficiency)
	fmt.Printf("  Average coordination cost: %.3f\n", summary.AvgCoordinationCost)

	episodes, err := db.ListEpisodes(reportTask, reportLimit)
	if err != nil {
		return err
	}

	fmt.Println("\nRecent episodes:")
	for _, ep := range episodes {
		mark := color.GreenString("✓")
		if !ep.Success {
			mark = color.RedString("✗")
		}
		fmt.Printf("  %s %s  %s  %d steps (predicted %d)\n",
			mark, ep.StartedAt.Format("2006-01-02 15:04"), ep.Task, ep.Steps, ep.PredictedSteps)
	}
	return nil
}

// purgeEpisodes drops episodes older than the cutoff and reports the count.
func purgeEpisodes(db *store.DB, olderThan time.Duration) error {
	deleted, err := db.PurgeOldEpisodes(olderThan)
	if err != nil {
		return err
	}
	if deleted > 0 {
		fmt.Printf("Purged %d episodes older than %s\n", deleted, olderThan)
	}
	return nil
}
