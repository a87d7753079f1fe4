package reward

import (
	"math"
	"strings"
	"testing"

	"github.com/triadhq/triad/pkg/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestObserve_Increments(t *testing.T) {
	tr := NewTracker()
	tr.Observe(models.StepObservation{ReasoningQuality: 0.8, ActionSuccess: true, StateValidated: true})
	tr.Observe(models.StepObservation{ReasoningQuality: 0.6, ActionSuccess: false, StateValidated: true})

	b := tr.Breakdown()
	if !almostEqual(b.PlanningEffectiveness, 0.1) {
		t.Errorf("PlanningEffectiveness = %v, want 0.1", b.PlanningEffectiveness)
	}
	if !almostEqual(b.ExecutionAccuracy, 0.15) {
		t.Errorf("ExecutionAccuracy = %v, want 0.15", b.ExecutionAccuracy)
	}
	if !almostEqual(b.VerificationPrecision, 0.2) {
		t.Errorf("VerificationPrecision = %v, want 0.2", b.VerificationPrecision)
	}
	if !almostEqual(b.Total, 0.45) {
		t.Errorf("Total = %v, want 0.45", b.Total)
	}
	if b.Steps != 2 {
		t.Errorf("Steps = %d, want 2", b.Steps)
	}
}

func TestObserve_ReasoningQualityBarIsExclusive(t *testing.T) {
	tr := NewTracker()
	tr.Observe(models.StepObservation{ReasoningQuality: 0.7})
	if b := tr.Breakdown(); b.PlanningEffectiveness != 0 {
		t.Errorf("quality exactly at the bar should not count, got %v", b.PlanningEffectiveness)
	}
}

func TestBreakdown_BottleneckInsight(t *testing.T) {
	tr := NewTracker()
	// Execution succeeds every step, planning reasoning never clears the
	// bar: planning becomes the bottleneck.
	for i := 0; i < 4; i++ {
		tr.Observe(models.StepObservation{ReasoningQuality: 0.5, ActionSuccess: true, StateValidated: true})
	}
	b := tr.Breakdown()
	if !strings.Contains(b.Insight, "Bottleneck") || !strings.Contains(b.Insight, "planning") {
		t.Errorf("Insight = %q, want planning bottleneck", b.Insight)
	}
}

func TestBreakdown_BalancedInsight(t *testing.T) {
	tr := NewTracker()
	if got := tr.Breakdown().Insight; got != "Balanced performance across agents" {
		t.Errorf("empty tracker insight = %q, want balanced", got)
	}

	tr.Observe(models.StepObservation{ReasoningQuality: 0.9, ActionSuccess: true, StateValidated: true})
	b := tr.Breakdown()
	// 0.15 vs 0.1: within the 2x band.
	if b.Insight != "Balanced performance across agents" {
		t.Errorf("Insight = %q, want balanced", b.Insight)
	}
}
