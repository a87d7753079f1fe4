// Package tui provides the terminal user interface for triad episode runs.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/triadhq/triad/pkg/models"
)

// Task status constants.
const (
	StatusPending = iota
	StatusRunning
	StatusDone
	StatusFailed
)

// TaskStartedMsg is sent when an episode begins running.
type TaskStartedMsg struct {
	Task string
}

// TaskFinishedMsg is sent when an episode completes.
type TaskFinishedMsg struct {
	Result models.EpisodeResult
	Err    error
}

// RunDoneMsg signals that all queued episodes have completed.
type RunDoneMsg struct{}

// taskRow tracks display state for one queued task.
type taskRow struct {
	name   string
	status int
	result models.EpisodeResult
	err    error
}

// App is the main bubbletea model for the triad run TUI.
type App struct {
	// rows holds one entry per queued task, in run order.
	rows []taskRow
	// spinner animates next to the running task.
	spinner spinner.Model
	// width is the terminal width.
	width int
	// quitting indicates the app is shutting down.
	quitting bool
	// runDone indicates all episodes have finished.
	runDone bool
	// startedAt is when the run began.
	startedAt time.Time
}

// New creates a new App instance for the given task queue.
func New(tasks []string) *App {
	rows := make([]taskRow, len(tasks))
	for i, name := range tasks {
		rows[i] = taskRow{name: name, status: StatusPending}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return &App{
		rows:      rows,
		spinner:   s,
		startedAt: time.Now(),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.spinner.Tick
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			a.quitting = true
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width

	case TaskStartedMsg:
		a.setStatus(msg.Task, StatusRunning)

	case TaskFinishedMsg:
		a.finishTask(msg)

	case RunDoneMsg:
		a.runDone = true

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}
	return fmt.Sprintf("%s\n\n%s\n%s", a.viewHeader(), a.viewTasks(), a.viewFooter())
}

// viewTasks renders one line per queued task.
func (a *App) viewTasks() string {
	var view string
	for _, row := range a.rows {
		switch row.status {
		case StatusRunning:
			view += fmt.Sprintf("  %s %s\n", a.spinner.View(), row.name)
		case StatusDone:
			view += fmt.Sprintf("  %s %s  %d steps (predicted %d)  cost %.2f\n",
				doneMark, row.name, row.result.Steps, row.result.PredictedSteps, row.result.CoordinationCost)
		case StatusFailed:
			detail := "task not completed"
			if row.err != nil {
				detail = row.err.Error()
			}
			view += fmt.Sprintf("  %s %s  %s\n", failMark, row.name, detail)
		default:
			view += fmt.Sprintf("  %s %s\n", pendingMark, row.name)
		}
	}
	return view
}

// viewFooter renders run progress and help text.
func (a *App) viewFooter() string {
	if a.runDone {
		done, failed := a.counts()
		return footerStyle.Render(fmt.Sprintf(
			"%d succeeded, %d failed in %s | Press q to exit",
			done, failed, time.Since(a.startedAt).Round(time.Second)))
	}
	return footerStyle.Render("Running episodes | q to quit")
}

// counts returns completed and failed task totals.
func (a *App) counts() (done, failed int) {
	for _, row := range a.rows {
		switch row.status {
		case StatusDone:
			done++
		case StatusFailed:
			failed++
		}
	}
	return done, failed
}

// setStatus updates the status of the named task.
func (a *App) setStatus(task string, status int) {
	for i := range a.rows {
		if a.rows[i].name == task {
			a.rows[i].status = status
			return
		}
	}
	a.rows = append(a.rows, taskRow{name: task, status: status})
}

// finishTask records an episode result against its task row.
func (a *App) finishTask(msg TaskFinishedMsg) {
	status := StatusDone
	if msg.Err != nil || !msg.Result.Success {
		status = StatusFailed
	}
	for i := range a.rows {
		if a.rows[i].name == msg.Result.Task {
			a.rows[i].status = status
			a.rows[i].result = msg.Result
			a.rows[i].err = msg.Err
			return
		}
	}
}

// Done reports whether the run has completed.
func (a *App) Done() bool {
	return a.runDone
}

// NewProgram creates a Bubbletea program that can receive messages via Send().
func NewProgram(tasks []string) (*tea.Program, *App) {
	app := New(tasks)
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}
