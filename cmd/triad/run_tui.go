package main

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/triadhq/triad/internal/tui"
)

// runWithTUI runs episodes behind an interactive TUI.
func (r *runner) runWithTUI(ctx context.Context) (retErr error) {
	// Suppress log output while TUI is active (it corrupts the display)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	defer func() {
		if rec := recover(); rec != nil {
			retErr = fmt.Errorf("PANIC in runWithTUI: %v", rec)
		}
	}()

	names := make([]string, len(r.scenarios))
	for i, s := range r.scenarios {
		names[i] = s.Name
	}
	program, _ := tui.NewProgram(names)

	episodesDone := make(chan error, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				episodesDone <- fmt.Errorf("PANIC running episodes: %v", rec)
			}
		}()
		episodesDone <- r.feedTUI(ctx, program)
	}()

	tuiDone := make(chan error, 1)
	go func() {
		_, err := program.Run()
		tuiDone <- err
	}()

	select {
	case err := <-episodesDone:
		program.Send(tui.RunDoneMsg{})
		// Wait for the user to quit so they can read the results.
		<-tuiDone
		printBreakdown(r.tracker.Breakdown())
		return err

	case err := <-tuiDone:
		return err
	}
}

// feedTUI runs each episode and streams status messages to the program.
func (r *runner) feedTUI(ctx context.Context, program *tea.Program) error {
	var firstErr error
	for _, scenario := range r.scenarios {
		program.Send(tui.TaskStartedMsg{Task: scenario.Name})

		result, err := r.runOne(ctx, scenario)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			result.Task = scenario.Name
			program.Send(tui.TaskFinishedMsg{Result: result, Err: err})
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		program.Send(tui.TaskFinishedMsg{Result: result})
	}
	return firstErr
}
