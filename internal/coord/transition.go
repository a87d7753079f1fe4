package coord

import (
	"errors"
	"fmt"
	"math"

	"github.com/triadhq/triad/pkg/models"
)

// ErrBadTransition indicates an unusable transition cost table.
var ErrBadTransition = errors.New("bad transition table")

// DefaultCrossTransitionCost is the catch-all hand-off penalty for ordered
// worker pairs without an explicit entry. The table is directional on
// purpose: a hand-off models a one-way communication cost. The catch-all is
// a calibration constant; the three reverse directions it currently covers
// are flagged for calibration review rather than given invented values.
const DefaultCrossTransitionCost = 0.20

type transition struct {
	from, to models.Worker
}

// TransitionTable is the fixed hand-off cost table keyed by the ordered
// pair (previous worker, current worker). Immutable after construction.
type TransitionTable struct {
	costs    map[transition]float64
	fallback float64
}

// NewTransitionTable builds a table from explicit ordered-pair costs and a
// fallback for undefined pairs. All costs must be finite and non-negative.
func NewTransitionTable(costs map[[2]models.Worker]float64, fallback float64) (TransitionTable, error) {
	if math.IsNaN(fallback) || math.IsInf(fallback, 0) || fallback < 0 {
		return TransitionTable{}, fmt.Errorf("%w: fallback cost %v", ErrBadTransition, fallback)
	}
	t := TransitionTable{
		costs:    make(map[transition]float64, len(costs)),
		fallback: fallback,
	}
	for pair, c := range costs {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return TransitionTable{}, fmt.Errorf("%w: cost %v for %s->%s", ErrBadTransition, c, pair[0], pair[1])
		}
		t.costs[transition{from: pair[0], to: pair[1]}] = c
	}
	return t, nil
}

// DefaultTransitionTable returns the reference hand-off costs: the natural
// pipeline directions are cheap, same-worker continuation is free, and
// everything else falls through to DefaultCrossTransitionCost.
func DefaultTransitionTable() TransitionTable {
	return TransitionTable{
		costs: map[transition]float64{
			{models.WorkerPlanning, models.WorkerExecution}:        0.10,
			{models.WorkerExecution, models.WorkerVerification}:    0.05,
			{models.WorkerVerification, models.WorkerPlanning}:     0.15,
			{models.WorkerPlanning, models.WorkerPlanning}:         0.00,
			{models.WorkerExecution, models.WorkerExecution}:       0.00,
			{models.WorkerVerification, models.WorkerVerification}: 0.00,
		},
		fallback: DefaultCrossTransitionCost,
	}
}

// WithFallback returns a copy of the table with a different catch-all cost.
// Explicit pair costs are kept as-is.
func (t TransitionTable) WithFallback(fallback float64) (TransitionTable, error) {
	if math.IsNaN(fallback) || math.IsInf(fallback, 0) || fallback < 0 {
		return TransitionTable{}, fmt.Errorf("%w: fallback cost %v", ErrBadTransition, fallback)
	}
	out := TransitionTable{
		costs:    make(map[transition]float64, len(t.costs)),
		fallback: fallback,
	}
	for pair, c := range t.costs {
		out.costs[pair] = c
	}
	return out, nil
}

// Cost looks up the hand-off penalty for switching from one worker to
// another between consecutive subtasks.
func (t TransitionTable) Cost(from, to models.Worker) float64 {
	if c, ok := t.costs[transition{from: from, to: to}]; ok {
		return c
	}
	return t.fallback
}
