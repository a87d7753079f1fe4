package models

// SubtaskKind categorizes a unit of decomposed work. The vocabulary is
// fixed: the planner only emits these six kinds.
type SubtaskKind string

const (
	// KindAnalyzeUI inspects the current UI hierarchy.
	KindAnalyzeUI SubtaskKind = "analyze_ui"
	// KindPlanActions derives an action sequence for the goal.
	KindPlanActions SubtaskKind = "plan_actions"
	// KindExecuteGesture performs a planned gesture.
	KindExecuteGesture SubtaskKind = "execute_gesture"
	// KindVerifyState checks the UI state after a gesture.
	KindVerifyState SubtaskKind = "verify_state"
	// KindDirectExecution performs a simple goal without a planning phase.
	KindDirectExecution SubtaskKind = "direct_execution"
	// KindVerifyCompletion checks that a simple goal completed.
	KindVerifyCompletion SubtaskKind = "verify_completion"
)

// Valid returns true if the kind is a known value.
func (k SubtaskKind) Valid() bool {
	switch k {
	case KindAnalyzeUI, KindPlanActions, KindExecuteGesture,
		KindVerifyState, KindDirectExecution, KindVerifyCompletion:
		return true
	default:
		return false
	}
}

// Dimension returns the requirement dimension this kind loads. A subtask's
// complexity is placed into exactly this dimension when building its
// requirement vector; the other two dimensions stay zero.
func (k SubtaskKind) Dimension() Dimension {
	switch k {
	case KindAnalyzeUI, KindPlanActions:
		return DimensionPlanning
	case KindExecuteGesture, KindDirectExecution:
		return DimensionExecution
	default:
		return DimensionVerification
	}
}

// Subtask is an atomic unit of decomposed work.
type Subtask struct {
	// Kind is the subtask category.
	Kind SubtaskKind `json:"kind"`
	// Complexity is the scalar complexity relevant to this subtask's
	// requirement dimension.
	Complexity float64 `json:"complexity"`
	// Priority defines execution order within one decomposition. Priorities
	// are contiguous starting at 1.
	Priority int `json:"priority"`
}
