package models

// Assignment routes one subtask to one worker. Assignments are immutable
// once produced and are collected in subtask priority order.
type Assignment struct {
	// Subtask is the unit of work being assigned.
	Subtask Subtask `json:"subtask"`
	// Worker is the selected specialist.
	Worker Worker `json:"worker"`
	// Confidence is the selected worker's share of the total capability
	// score, in [0,1]. Zero when the assignment is degenerate.
	Confidence float64 `json:"confidence"`
	// CoordinationCost is the hand-off penalty relative to the previous
	// assignment in the sequence. Zero for the first assignment.
	CoordinationCost float64 `json:"coordination_cost"`
	// LowConfidence marks a degenerate assignment where every worker scored
	// zero (a zero-complexity subtask). The worker selection is then the
	// deterministic fallback and Confidence is 0.
	LowConfidence bool `json:"low_confidence,omitempty"`
}
