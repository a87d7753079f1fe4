// Package reward accumulates per-worker-category reward scores from step
// observations. It is a diagnostics sidecar: nothing here feeds back into
// task decomposition or worker assignment.
package reward

import (
	"fmt"

	"github.com/triadhq/triad/pkg/models"
)

// Fixed per-step increments.
const (
	// reasoningQualityBar is the reasoning quality above which planning
	// effectiveness is credited.
	reasoningQualityBar = 0.7
	planningIncrement   = 0.1
	executionIncrement  = 0.15
	verificationIncrement = 0.1
)

// Tracker accumulates three independent additive scores, one per worker
// category. Not safe for concurrent use; keep one per episode.
type Tracker struct {
	planningEffectiveness float64
	executionAccuracy     float64
	verificationPrecision float64
	steps                 int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe credits each category according to the step outcome.
func (t *Tracker) Observe(obs models.StepObservation) {
	if obs.ReasoningQuality > reasoningQualityBar {
		t.planningEffectiveness += planningIncrement
	}
	if obs.ActionSuccess {
		t.executionAccuracy += executionIncrement
	}
	if obs.StateValidated {
		t.verificationPrecision += verificationIncrement
	}
	t.steps++
}

// Breakdown is a snapshot of accumulated scores with a bottleneck insight.
type Breakdown struct {
	PlanningEffectiveness float64 `json:"planning_effectiveness"`
	ExecutionAccuracy     float64 `json:"execution_accuracy"`
	VerificationPrecision float64 `json:"verification_precision"`
	Total                 float64 `json:"total"`
	Steps                 int     `json:"steps"`
	Insight               string  `json:"insight"`
}

// Breakdown returns the current scores. The insight names the weakest
// category when its score has fallen below half the strongest one,
// otherwise it reports balanced performance.
func (t *Tracker) Breakdown() Breakdown {
	return Breakdown{
		PlanningEffectiveness: t.planningEffectiveness,
		ExecutionAccuracy:     t.executionAccuracy,
		VerificationPrecision: t.verificationPrecision,
		Total:                 t.planningEffectiveness + t.executionAccuracy + t.verificationPrecision,
		Steps:                 t.steps,
		Insight:               t.insight(),
	}
}

// insight scans categories in fixed order so ties resolve deterministically.
func (t *Tracker) insight() string {
	names := []string{"planning effectiveness", "execution accuracy", "verification precision"}
	scores := []float64{t.planningEffectiveness, t.executionAccuracy, t.verificationPrecision}

	maxScore, minScore := scores[0], scores[0]
	weakest := names[0]
	for i := 1; i < len(scores); i++ {
		if scores[i] > maxScore {
			maxScore = scores[i]
		}
		if scores[i] < minScore {
			minScore = scores[i]
			weakest = names[i]
		}
	}
	if maxScore > minScore*2 {
		return fmt.Sprintf("Bottleneck detected in %s", weakest)
	}
	return "Balanced performance across agents"
}
