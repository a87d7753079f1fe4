// Package harness drives an external mobile-UI automation framework over a
// subprocess boundary and pairs each measured episode with the decomposer's
// prediction for the same task.
package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/triadhq/triad/internal/coord"
	"github.com/triadhq/triad/internal/exec"
	"github.com/triadhq/triad/pkg/models"
)

// Config holds harness settings.
type Config struct {
	// Command is the framework entry point, run through the shell with
	// --task/--num-episodes/--max-steps appended.
	Command string
	// WorkDir is the framework checkout to run in. Empty means the current
	// directory.
	WorkDir string
	// Timeout bounds one framework run.
	Timeout time.Duration
	// MaxSteps is passed to the framework as its per-episode step budget.
	MaxSteps int
}

// Harness runs episodes against the external framework.
type Harness struct {
	runner     exec.CommandRunner
	decomposer *coord.Decomposer
	cfg        Config
}

// New creates a Harness. The runner is injected so tests can fake the
// framework.
func New(runner exec.CommandRunner, decomposer *coord.Decomposer, cfg Config) *Harness {
	return &Harness{runner: runner, decomposer: decomposer, cfg: cfg}
}

// RunTask executes one framework episode for the task and returns it paired
// with the decomposer's prediction. The framework's exit status is ignored:
// success is parsed from its output, since the frameworks under test report
// per-episode results on stdout regardless of exit code.
func (h *Harness) RunTask(ctx context.Context, task string, ui models.UIState) (models.EpisodeResult, error) {
	assignments, err := h.decomposer.Decompose(task, ui)
	if err != nil {
		return models.EpisodeResult{}, fmt.Errorf("predict %s: %w", task, err)
	}

	if h.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.Timeout)
		defer cancel()
	}

	command := fmt.Sprintf("%s --task %s --num-episodes 1 --max-steps %d", h.cfg.Command, task, h.cfg.MaxSteps)
	startedAt := time.Now()
	out, runErr := h.runner.RunShell(ctx, h.cfg.WorkDir, command)
	duration := time.Since(startedAt)

	if ctx.Err() != nil {
		return models.EpisodeResult{}, fmt.Errorf("run %s: %w", task, ctx.Err())
	}
	if runErr != nil && len(out) == 0 {
		return models.EpisodeResult{}, fmt.Errorf("run %s: %w", task, runErr)
	}

	steps := ParseSteps(string(out))
	result := models.EpisodeResult{
		ID:               uuid.NewString(),
		Task:             task,
		Success:          ParseSuccess(string(out)),
		Steps:            steps,
		PredictedSteps:   len(assignments),
		CoordinationCost: coord.CoordinationOverhead(assignments),
		Duration:         duration,
		StartedAt:        startedAt,
	}
	if steps > 0 {
		result.StepEfficiency = float64(steps-result.PredictedSteps) / float64(steps)
	}
	return result, nil
}
