package coord

import (
	"fmt"

	"github.com/triadhq/triad/pkg/models"
)

// Decomposer wires complexity estimation, subtask planning and worker
// assignment into a single decompose operation.
type Decomposer struct {
	planner  *Planner
	assigner *Assigner
}

// Option configures a Decomposer.
type Option func(*settings)

type settings struct {
	threshold   float64
	matrix      CapabilityMatrix
	transitions TransitionTable
	strategy    Strategy
}

// WithThreshold overrides the high-complexity threshold.
func WithThreshold(threshold float64) Option {
	return func(s *settings) { s.threshold = threshold }
}

// WithCapabilityMatrix overrides the capability matrix.
func WithCapabilityMatrix(m CapabilityMatrix) Option {
	return func(s *settings) { s.matrix = m }
}

// WithTransitionTable overrides the hand-off cost table.
func WithTransitionTable(t TransitionTable) Option {
	return func(s *settings) { s.transitions = t }
}

// WithMatchingStrategy selects greedy or global matching.
func WithMatchingStrategy(strategy Strategy) Option {
	return func(s *settings) { s.strategy = strategy }
}

// New creates a Decomposer with the reference calibration, applying any
// overrides. The capability matrix is validated here.
func New(opts ...Option) (*Decomposer, error) {
	s := settings{
		threshold:   DefaultHighComplexityThreshold,
		matrix:      DefaultCapabilityMatrix(),
		transitions: DefaultTransitionTable(),
		strategy:    StrategyGreedy,
	}
	for _, opt := range opts {
		opt(&s)
	}

	assigner, err := NewAssigner(s.matrix, s.transitions, WithStrategy(s.strategy))
	if err != nil {
		return nil, err
	}
	return &Decomposer{
		planner:  &Planner{HighComplexityThreshold: s.threshold},
		assigner: assigner,
	}, nil
}

// Decompose splits a goal into subtasks based on the UI state's complexity
// profile and assigns each subtask to a worker. The returned assignments
// are in subtask priority order, one per subtask.
func (d *Decomposer) Decompose(goal string, ui models.UIState) ([]models.Assignment, error) {
	profile, err := EstimateComplexity(ui)
	if err != nil {
		return nil, fmt.Errorf("decompose %q: %w", goal, err)
	}
	subtasks := d.planner.Plan(goal, profile)
	return d.assigner.Assign(subtasks), nil
}

// CoordinationOverhead sums the hand-off costs of an assignment sequence.
func CoordinationOverhead(assignments []models.Assignment) float64 {
	total := 0.0
	for _, a := range assignments {
		total += a.CoordinationCost
	}
	return total
}
