package coord

import "github.com/triadhq/triad/pkg/models"

// DefaultHighComplexityThreshold separates fine-grained from coarse-grained
// decomposition. Goals whose mean complexity exceeds it are split into four
// subtasks instead of two. A calibration constant, not a derived value.
const DefaultHighComplexityThreshold = 2.0

// Planner turns a goal and a complexity profile into an ordered subtask
// list. Priorities are contiguous starting at 1.
type Planner struct {
	// HighComplexityThreshold is the mean-complexity cutoff for the
	// fine-grained branch.
	HighComplexityThreshold float64
}

// NewPlanner creates a Planner with the default threshold.
func NewPlanner() *Planner {
	return &Planner{HighComplexityThreshold: DefaultHighComplexityThreshold}
}

// Plan generates subtasks for the goal. The goal label does not influence
// the split; it is carried by the caller for traceability. High-complexity
// goals get the analyze/plan/execute/verify sequence; everything else gets
// direct execution plus a completion check.
func (p *Planner) Plan(goal string, profile models.ComplexityProfile) []models.Subtask {
	_ = goal

	if profile.Mean() > p.HighComplexityThreshold {
		return []models.Subtask{
			{Kind: models.KindAnalyzeUI, Complexity: profile.Planning, Priority: 1},
			{Kind: models.KindPlanActions, Complexity: profile.Planning, Priority: 2},
			{Kind: models.KindExecuteGesture, Complexity: profile.Execution, Priority: 3},
			{Kind: models.KindVerifyState, Complexity: profile.Verification, Priority: 4},
		}
	}
	return []models.Subtask{
		{Kind: models.KindDirectExecution, Complexity: profile.Mean(), Priority: 1},
		{Kind: models.KindVerifyCompletion, Complexity: profile.Verification, Priority: 2},
	}
}
