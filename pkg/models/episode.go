package models

import "time"

// StepObservation reports the outcome of a single automation step. It feeds
// the reward tracker only; the assignment algorithm never sees it.
type StepObservation struct {
	// ReasoningQuality rates the planning reasoning for the step, in [0,1].
	ReasoningQuality float64 `json:"reasoning_quality"`
	// ActionSuccess reports whether the step's action landed.
	ActionSuccess bool `json:"action_success"`
	// StateValidated reports whether the post-action state check passed.
	StateValidated bool `json:"state_validated"`
}

// EpisodeResult captures one harness episode: a real framework run paired
// with the decomposer's prediction for the same task.
type EpisodeResult struct {
	// ID is the unique identifier for this episode.
	ID string `json:"id"`
	// Task is the automation task label (e.g. SystemBrightnessMax).
	Task string `json:"task"`
	// Success reports whether the framework completed the task.
	Success bool `json:"success"`
	// Steps is the number of steps the framework took.
	Steps int `json:"steps"`
	// PredictedSteps is the number of subtasks the decomposer produced.
	PredictedSteps int `json:"predicted_steps"`
	// CoordinationCost is the summed hand-off cost over the predicted
	// assignments.
	CoordinationCost float64 `json:"coordination_cost"`
	// StepEfficiency is (Steps-PredictedSteps)/Steps, zero when Steps is 0.
	StepEfficiency float64 `json:"step_efficiency"`
	// Duration is the wall-clock time of the framework run.
	Duration time.Duration `json:"duration"`
	// StartedAt is when the episode began.
	StartedAt time.Time `json:"started_at"`
}
