package coord

import (
	"errors"
	"math"
	"testing"

	"github.com/triadhq/triad/pkg/models"
)

func TestNewCapabilityMatrix_Valid(t *testing.T) {
	m, err := NewCapabilityMatrix([models.NumWorkers][models.NumDimensions]float64{
		{0.9, 0.3, 0.2},
		{0.2, 0.9, 0.3},
		{0.3, 0.2, 0.9},
	})
	if err != nil {
		t.Fatalf("NewCapabilityMatrix failed: %v", err)
	}
	if m != DefaultCapabilityMatrix() {
		t.Error("reference rows should equal the default matrix")
	}
}

func TestNewCapabilityMatrix_ZeroRow(t *testing.T) {
	_, err := NewCapabilityMatrix([models.NumWorkers][models.NumDimensions]float64{
		{0.9, 0.3, 0.2},
		{0, 0, 0},
		{0.3, 0.2, 0.9},
	})
	if err == nil {
		t.Fatal("expected error for zero worker row")
	}
	if !errors.Is(err, ErrBadMatrix) {
		t.Errorf("error = %v, want ErrBadMatrix", err)
	}
}

func TestNewCapabilityMatrix_NegativeEntry(t *testing.T) {
	_, err := NewCapabilityMatrix([models.NumWorkers][models.NumDimensions]float64{
		{0.9, -0.3, 0.2},
		{0.2, 0.9, 0.3},
		{0.3, 0.2, 0.9},
	})
	if !errors.Is(err, ErrBadMatrix) {
		t.Errorf("error = %v, want ErrBadMatrix", err)
	}
}

func TestNewCapabilityMatrix_NonFiniteEntry(t *testing.T) {
	_, err := NewCapabilityMatrix([models.NumWorkers][models.NumDimensions]float64{
		{0.9, math.NaN(), 0.2},
		{0.2, 0.9, 0.3},
		{0.3, 0.2, 0.9},
	})
	if !errors.Is(err, ErrBadMatrix) {
		t.Errorf("error = %v, want ErrBadMatrix", err)
	}
}

func TestCapabilityMatrixScores(t *testing.T) {
	m := DefaultCapabilityMatrix()
	scores := m.Scores([models.NumDimensions]float64{0, 2, 0})
	want := [models.NumWorkers]float64{0.6, 1.8, 0.4}
	for w := range scores {
		if !almostEqual(scores[w], want[w], 1e-12) {
			t.Errorf("scores[%d] = %v, want %v", w, scores[w], want[w])
		}
	}
}

func TestTransitionTable_DefinedPairs(t *testing.T) {
	table := DefaultTransitionTable()
	tests := []struct {
		from, to models.Worker
		want     float64
	}{
		{models.WorkerPlanning, models.WorkerExecution, 0.10},
		{models.WorkerExecution, models.WorkerVerification, 0.05},
		{models.WorkerVerification, models.WorkerPlanning, 0.15},
		{models.WorkerPlanning, models.WorkerPlanning, 0.00},
		{models.WorkerExecution, models.WorkerExecution, 0.00},
		{models.WorkerVerification, models.WorkerVerification, 0.00},
	}
	for _, tt := range tests {
		if got := table.Cost(tt.from, tt.to); got != tt.want {
			t.Errorf("Cost(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTransitionTable_UndefinedPairsFallThrough(t *testing.T) {
	table := DefaultTransitionTable()
	// The three reverse directions are deliberately undefined.
	reverses := [][2]models.Worker{
		{models.WorkerExecution, models.WorkerPlanning},
		{models.WorkerVerification, models.WorkerExecution},
		{models.WorkerPlanning, models.WorkerVerification},
	}
	for _, pair := range reverses {
		if got := table.Cost(pair[0], pair[1]); got != DefaultCrossTransitionCost {
			t.Errorf("Cost(%s, %s) = %v, want catch-all %v", pair[0], pair[1], got, DefaultCrossTransitionCost)
		}
	}
}

func TestNewTransitionTable_RejectsNegative(t *testing.T) {
	_, err := NewTransitionTable(map[[2]models.Worker]float64{
		{models.WorkerPlanning, models.WorkerExecution}: -0.1,
	}, 0.2)
	if !errors.Is(err, ErrBadTransition) {
		t.Errorf("error = %v, want ErrBadTransition", err)
	}

	_, err = NewTransitionTable(nil, math.Inf(1))
	if !errors.Is(err, ErrBadTransition) {
		t.Errorf("error = %v, want ErrBadTransition", err)
	}
}

func TestNewTransitionTable_CustomFallback(t *testing.T) {
	table, err := NewTransitionTable(nil, 0.5)
	if err != nil {
		t.Fatalf("NewTransitionTable failed: %v", err)
	}
	if got := table.Cost(models.WorkerPlanning, models.WorkerExecution); got != 0.5 {
		t.Errorf("Cost = %v, want fallback 0.5", got)
	}
}

func TestTransitionTable_WithFallback(t *testing.T) {
	table, err := DefaultTransitionTable().WithFallback(0.35)
	if err != nil {
		t.Fatalf("WithFallback failed: %v", err)
	}

	// Explicit pipeline costs are kept.
	if got := table.Cost(models.WorkerPlanning, models.WorkerExecution); got != 0.10 {
		t.Errorf("Cost(planning, execution) = %v, want 0.10", got)
	}
	// Undefined pairs use the new catch-all.
	if got := table.Cost(models.WorkerExecution, models.WorkerPlanning); got != 0.35 {
		t.Errorf("Cost(execution, planning) = %v, want 0.35", got)
	}

	if _, err := DefaultTransitionTable().WithFallback(-1); !errors.Is(err, ErrBadTransition) {
		t.Errorf("error = %v, want ErrBadTransition", err)
	}
}
