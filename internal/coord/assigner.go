package coord

import (
	"github.com/triadhq/triad/pkg/models"
)

// Strategy selects how the assigner matches subtasks to workers.
type Strategy int

const (
	// StrategyGreedy assigns each subtask independently to its argmax
	// worker. No global reassignment or conflict resolution happens.
	StrategyGreedy Strategy = iota
	// StrategyGlobal maximizes total capability score minus total hand-off
	// cost over the whole subtask sequence.
	StrategyGlobal
)

// Assigner routes subtasks to workers using an injected capability matrix
// and transition cost table. Safe for concurrent use: both inputs are
// immutable after construction.
type Assigner struct {
	matrix      CapabilityMatrix
	transitions TransitionTable
	strategy    Strategy
}

// AssignerOption configures an Assigner.
type AssignerOption func(*Assigner)

// WithStrategy selects the matching strategy.
func WithStrategy(s Strategy) AssignerOption {
	return func(a *Assigner) { a.strategy = s }
}

// NewAssigner creates an Assigner. The matrix is validated here so that a
// misconfigured worker set fails at construction, not mid-assignment.
func NewAssigner(matrix CapabilityMatrix, transitions TransitionTable, opts ...AssignerOption) (*Assigner, error) {
	if err := matrix.validate(); err != nil {
		return nil, err
	}
	a := &Assigner{
		matrix:      matrix,
		transitions: transitions,
		strategy:    StrategyGreedy,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Assign produces one assignment per subtask, in input order. An empty
// subtask list yields an empty assignment list.
func (a *Assigner) Assign(subtasks []models.Subtask) []models.Assignment {
	if a.strategy == StrategyGlobal {
		return a.assignGlobal(subtasks)
	}
	return a.assignGreedy(subtasks)
}

// assignGreedy picks the argmax worker per subtask, charging the hand-off
// cost against whichever worker got the previous subtask.
func (a *Assigner) assignGreedy(subtasks []models.Subtask) []models.Assignment {
	assignments := make([]models.Assignment, 0, len(subtasks))
	for i, st := range subtasks {
		scores := a.matrix.Scores(requirement(st))
		worker, confidence, degenerate := selectWorker(scores)

		cost := 0.0
		if i > 0 {
			cost = a.transitions.Cost(assignments[i-1].Worker, worker)
		}
		assignments = append(assignments, models.Assignment{
			Subtask:          st,
			Worker:           worker,
			Confidence:       confidence,
			CoordinationCost: cost,
			LowConfidence:    degenerate,
		})
	}
	return assignments
}

// requirement builds the task-requirement vector: the subtask's complexity
// in its kind's dimension, zero elsewhere.
func requirement(st models.Subtask) [models.NumDimensions]float64 {
	var req [models.NumDimensions]float64
	req[st.Kind.Dimension()] = st.Complexity
	return req
}

// selectWorker returns the argmax worker, its normalized confidence, and
// whether the selection was degenerate. Ties break toward the lowest worker
// index. When every score is zero (a zero-complexity subtask) the division
// is undefined; the fallback is the lowest-index worker with confidence 0
// and the degenerate flag set, never NaN.
func selectWorker(scores [models.NumWorkers]float64) (models.Worker, float64, bool) {
	best := 0
	sum := scores[0]
	for w := 1; w < models.NumWorkers; w++ {
		sum += scores[w]
		if scores[w] > scores[best] {
			best = w
		}
	}
	if sum == 0 {
		return models.Worker(best), 0, true
	}
	return models.Worker(best), scores[best] / sum, false
}
