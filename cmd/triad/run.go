package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/triadhq/triad/internal/config"
	"github.com/triadhq/triad/internal/coord"
	"github.com/triadhq/triad/internal/exec"
	"github.com/triadhq/triad/internal/harness"
	"github.com/triadhq/triad/internal/reward"
	"github.com/triadhq/triad/internal/store"
	"github.com/triadhq/triad/pkg/models"
)

var (
	runConfigPath   string
	runScenarioFile string
	runStrategy     string
	runHeadless     bool
	runWatch        bool
	runNoStore      bool
)

var runCmd = &cobra.Command{
	Use:   "run [task...]",
	Short: "Run episodes against the automation framework",
	Long: `Run automation episodes against the external framework and record the
results alongside the decomposer's predictions.

Tasks default to the built-in demo scenarios. Named tasks must exist in
the scenario set (built-in or --scenarios). Episode results are stored
in the episode database unless --no-store is given.

Examples:
  triad run
  triad run SystemBrightnessMax FilesDeleteFile
  triad run --scenarios tasks.yaml --headless
  triad run --watch   # reload config on change between episodes`,
	RunE: runEpisodes,
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "Config file path (defaults to user/project config)")
	runCmd.Flags().StringVar(&runScenarioFile, "scenarios", "", "YAML file with scenarios to run")
	runCmd.Flags().StringVar(&runStrategy, "strategy", "", "Assignment strategy: greedy or global")
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "Run without TUI (headless mode)")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "Reload config when its file changes")
	runCmd.Flags().BoolVar(&runNoStore, "no-store", false, "Skip recording episodes to the database")
}

// runner drives a sequence of episodes with shared wiring. The config is
// held behind an atomic pointer because the --watch reload callback swaps
// it from the watcher goroutine while episodes read it.
type runner struct {
	cfg       atomic.Pointer[config.Config]
	scenarios []harness.Scenario
	db        *store.DB
	tracker   *reward.Tracker
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(runConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	scenarios, err := selectScenarios(runScenarioFile, args)
	if err != nil {
		return err
	}

	var db *store.DB
	if !runNoStore {
		db, err = openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	r := &runner{
		scenarios: scenarios,
		db:        db,
		tracker:   reward.NewTracker(),
	}
	r.cfg.Store(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if runWatch {
		watcher, err := r.watchConfig(watchPath(runConfigPath))
		if err != nil {
			return fmt.Errorf("watching config: %w", err)
		}
		defer watcher.Close()
	}

	if runHeadless {
		return r.runHeadless(ctx)
	}
	return r.runWithTUI(ctx)
}

// watchConfig swaps the runner's config whenever the file at path changes.
func (r *runner) watchConfig(path string) (*config.Watcher, error) {
	return config.Watch(path, func(updated *config.Config) {
		r.cfg.Store(updated)
	}, nil)
}

// watchPath resolves the config file --watch follows: the explicit --config
// path when given, otherwise the project config, otherwise the user config.
func watchPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if project := config.GetProjectConfigPath(); project != "" {
		return project
	}
	return config.GetUserConfigPath()
}

// selectScenarios resolves the scenario set and filters it to the named
// tasks, preserving argument order.
func selectScenarios(file string, names []string) ([]harness.Scenario, error) {
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

	if len(names) == 0 {
		return scenarios, nil
	}

	byName := make(map[string]harness.Scenario, len(scenarios))
	for _, s := range scenarios {
		byName[s.Name] = s
	}

	selected := make([]harness.Scenario, 0, len(names))
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		selected = append(selected, s)
	}
	return selected, nil
}

// openStore opens the configured episode database. Without an explicit
// path, a directory with a .triad.yaml gets a project-local store and
// everything else shares the global one.
func openStore(cfg *config.Config) (*store.DB, error) {
	var db *store.DB
	var err error
	switch {
	case cfg.Store.Path != "":
		db, err = store.Open(cfg.Store.Path)
	case config.GetProjectConfigPath() != "":
		db, err = store.OpenProject(filepath.Dir(config.GetProjectConfigPath()))
	default:
		db, err = store.OpenGlobal()
	}
	if err != nil {
		return nil, fmt.Errorf("opening episode store: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating episode store: %w", err)
	}
	return db, nil
}

// newHarness builds a harness from the current config.
func (r *runner) newHarness() (*harness.Harness, *coord.Decomposer, error) {
	cfg := r.cfg.Load()
	opts, err := decomposerOptions(cfg, runStrategy)
	if err != nil {
		return nil, nil, err
	}
	decomposer, err := coord.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	h := harness.New(exec.NewRunner(), decomposer, harness.Config{
		Command:  cfg.Harness.Command,
		WorkDir:  cfg.Harness.WorkDir,
		Timeout:  cfg.Harness.Timeout,
		MaxSteps: cfg.Harness.MaxSteps,
	})
	return h, decomposer, nil
}

// runOne executes a single episode and records it.
func (r *runner) runOne(ctx context.Context, scenario harness.Scenario) (models.EpisodeResult, error) {
	// Rebuilt per episode so --watch config updates take effect.
	h, decomposer, err := r.newHarness()
	if err != nil {
		return models.EpisodeResult{}, err
	}

	result, err := h.RunTask(ctx, scenario.Name, scenario.UIState)
	if err != nil {
		return models.EpisodeResult{}, err
	}

	r.observe(decomposer, scenario, result)

	if r.db != nil {
		if err := r.db.SaveEpisode(result); err != nil {
			return result, err
		}
	}
	return result, nil
}

// observe feeds the reward tracker one observation per predicted subtask,
// using assignment confidence as the reasoning quality signal.
func (r *runner) observe(decomposer *coord.Decomposer, scenario harness.Scenario, result models.EpisodeResult) {
	assignments, err := decomposer.Decompose(scenario.Name, scenario.UIState)
	if err != nil {
		return
	}
	for _, a := range assignments {
		r.tracker.Observe(models.StepObservation{
			ReasoningQuality: a.Confidence,
			ActionSuccess:    result.Success,
			StateValidated:   result.Success,
		})
	}
}

// runHeadless runs episodes with plain line output.
func (r *runner) runHeadless(ctx context.Context) error {
	var failures int
	for _, scenario := range r.scenarios {
		result, err := r.runOne(ctx, scenario)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Printf("%s %s: %v\n", color.RedString("✗"), scenario.Name, err)
			failures++
			continue
		}
		printEpisode(result)
		if !result.Success {
			failures++
		}
	}

	printBreakdown(r.tracker.Breakdown())

	if failures > 0 {
		return fmt.Errorf("%d of %d episodes failed", failures, len(r.scenarios))
	}
	return nil
}

// printEpisode renders one finished episode.
func printEpisode(result models.EpisodeResult) {
	mark := color.GreenString("✓")
	if !result.Success {
		mark = color.RedString("✗")
	}
	fmt.Printf("%s %s: %d steps (predicted %d), efficiency %+.2f, cost %.2f, %s\n",
		mark, result.Task, result.Steps, result.PredictedSteps,
		result.StepEfficiency, result.CoordinationCost, result.Duration.Round(10*time.Millisecond))
}

// printBreakdown renders the accumulated agent reward breakdown.
func printBreakdown(b reward.Breakdown) {
	if b.Steps == 0 {
		return
	}
	fmt.Printf("\nAgent breakdown over %d predicted steps (total %.2f):\n", b.Steps, b.Total)
	fmt.Printf("  planning effectiveness: +%.2f\n", b.PlanningEffectiveness)
	fmt.Printf("  execution accuracy:     +%.2f\n", b.ExecutionAccuracy)
	fmt.Printf("  verification precision: +%.2f\n", b.VerificationPrecision)
	fmt.Printf("  %s\n", color.CyanString(b.Insight))
}
