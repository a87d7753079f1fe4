package coord

import (
	"testing"

	"github.com/triadhq/triad/pkg/models"
)

func newTestAssigner(t *testing.T, opts ...AssignerOption) *Assigner {
	t.Helper()
	a, err := NewAssigner(DefaultCapabilityMatrix(), DefaultTransitionTable(), opts...)
	if err != nil {
		t.Fatalf("NewAssigner failed: %v", err)
	}
	return a
}

func TestAssign_WorkerSelectionReference(t *testing.T) {
	// execute_gesture with complexity c>0 gives requirement (0, c, 0),
	// scores (0.3c, 0.9c, 0.2c): Execution wins with confidence 0.9/1.4.
	a := newTestAssigner(t)
	assignments := a.Assign([]models.Subtask{
		{Kind: models.KindExecuteGesture, Complexity: 2.5, Priority: 1},
	})
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}
	got := assignments[0]
	if got.Worker != models.WorkerExecution {
		t.Errorf("worker = %s, want execution", got.Worker)
	}
	if !almostEqual(got.Confidence, 0.9/1.4, 1e-9) {
		t.Errorf("confidence = %v, want %v", got.Confidence, 0.9/1.4)
	}
	if got.CoordinationCost != 0 {
		t.Errorf("first assignment coordination cost = %v, want 0", got.CoordinationCost)
	}
	if got.LowConfidence {
		t.Error("assignment should not be flagged low-confidence")
	}
}

func TestAssign_HighComplexitySequence(t *testing.T) {
	a := newTestAssigner(t)
	subtasks := []models.Subtask{
		{Kind: models.KindAnalyzeUI, Complexity: 3.1, Priority: 1},
		{Kind: models.KindPlanActions, Complexity: 3.1, Priority: 2},
		{Kind: models.KindExecuteGesture, Complexity: 2.4, Priority: 3},
		{Kind: models.KindVerifyState, Complexity: 2.3, Priority: 4},
	}
	assignments := a.Assign(subtasks)
	if len(assignments) != 4 {
		t.Fatalf("expected 4 assignments, got %d", len(assignments))
	}

	wantWorkers := []models.Worker{
		models.WorkerPlanning, models.WorkerPlanning,
		models.WorkerExecution, models.WorkerVerification,
	}
	wantCosts := []float64{0, 0, 0.10, 0.05}
	for i, got := range assignments {
		if got.Worker != wantWorkers[i] {
			t.Errorf("assignment %d worker = %s, want %s", i, got.Worker, wantWorkers[i])
		}
		if !almostEqual(got.CoordinationCost, wantCosts[i], 1e-12) {
			t.Errorf("assignment %d cost = %v, want %v", i, got.CoordinationCost, wantCosts[i])
		}
		if got.Subtask.Priority != i+1 {
			t.Errorf("assignment %d out of priority order: %d", i, got.Subtask.Priority)
		}
	}
}

func TestAssign_SelfTransitionIsFree(t *testing.T) {
	a := newTestAssigner(t)
	assignments := a.Assign([]models.Subtask{
		{Kind: models.KindAnalyzeUI, Complexity: 2, Priority: 1},
		{Kind: models.KindPlanActions, Complexity: 2, Priority: 2},
	})
	if assignments[0].Worker != assignments[1].Worker {
		t.Fatalf("both planning subtasks should go to the same worker")
	}
	if assignments[1].CoordinationCost != 0 {
		t.Errorf("self-transition cost = %v, want 0", assignments[1].CoordinationCost)
	}
}

func TestAssign_DegenerateZeroComplexity(t *testing.T) {
	a := newTestAssigner(t)
	assignments := a.Assign([]models.Subtask{
		{Kind: models.KindDirectExecution, Complexity: 0, Priority: 1},
		{Kind: models.KindVerifyCompletion, Complexity: 0, Priority: 2},
	})
	for i, got := range assignments {
		if !got.LowConfidence {
			t.Errorf("assignment %d should be flagged low-confidence", i)
		}
		if got.Confidence != 0 {
			t.Errorf("assignment %d confidence = %v, want 0", i, got.Confidence)
		}
		if got.Worker != models.WorkerPlanning {
			t.Errorf("assignment %d worker = %s, want lowest-index fallback", i, got.Worker)
		}
	}
	// Same fallback worker twice: self-transition, cost 0.
	if assignments[1].CoordinationCost != 0 {
		t.Errorf("cost = %v, want 0", assignments[1].CoordinationCost)
	}
}

func TestAssign_TieBreaksToLowestIndex(t *testing.T) {
	// A symmetric matrix makes every worker score identically; the lowest
	// worker index must win deterministically.
	matrix, err := NewCapabilityMatrix([models.NumWorkers][models.NumDimensions]float64{
		{0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5},
	})
	if err != nil {
		t.Fatalf("NewCapabilityMatrix failed: %v", err)
	}
	a, err := NewAssigner(matrix, DefaultTransitionTable())
	if err != nil {
		t.Fatalf("NewAssigner failed: %v", err)
	}
	assignments := a.Assign([]models.Subtask{
		{Kind: models.KindExecuteGesture, Complexity: 1, Priority: 1},
	})
	if assignments[0].Worker != models.WorkerPlanning {
		t.Errorf("tie should break to planning, got %s", assignments[0].Worker)
	}
}

func TestAssign_EmptyInput(t *testing.T) {
	a := newTestAssigner(t)
	if got := a.Assign(nil); len(got) != 0 {
		t.Errorf("empty input should give empty output, got %d", len(got))
	}
}

func TestAssign_ConfidenceBounds(t *testing.T) {
	a := newTestAssigner(t)
	kinds := []models.SubtaskKind{
		models.KindAnalyzeUI, models.KindPlanActions, models.KindExecuteGesture,
		models.KindVerifyState, models.KindDirectExecution, models.KindVerifyCompletion,
	}
	for _, kind := range kinds {
		for _, c := range []float64{0.1, 1, 7.5} {
			got := a.Assign([]models.Subtask{{Kind: kind, Complexity: c, Priority: 1}})[0]
			if got.Confidence < 0 || got.Confidence > 1 {
				t.Errorf("confidence %v out of [0,1] for kind %q complexity %v", got.Confidence, kind, c)
			}
		}
	}
}

func TestNewAssigner_RejectsBadMatrix(t *testing.T) {
	var zero CapabilityMatrix
	if _, err := NewAssigner(zero, DefaultTransitionTable()); err == nil {
		t.Error("expected error for all-zero matrix")
	}
}
