package coord

import (
	"github.com/triadhq/triad/pkg/models"
)

// assignGlobal chooses the worker sequence maximizing the summed capability
// scores minus the summed hand-off costs, via dynamic programming over
// (position, previous worker). With at most four subtasks and three workers
// the state space is tiny. Per-assignment confidence keeps the same
// normalization as the greedy strategy, so the two strategies stay
// comparable subtask by subtask.
func (a *Assigner) assignGlobal(subtasks []models.Subtask) []models.Assignment {
	n := len(subtasks)
	if n == 0 {
		return []models.Assignment{}
	}

	scores := make([][models.NumWorkers]float64, n)
	for i, st := range subtasks {
		scores[i] = a.matrix.Scores(requirement(st))
	}

	// value[i][w] is the best achievable total for subtasks i..n-1 given
	// that subtask i goes to worker w; choice[i][w] is the worker taking
	// subtask i+1 on that best path.
	value := make([][models.NumWorkers]float64, n)
	choice := make([][models.NumWorkers]models.Worker, n)

	for w := 0; w < models.NumWorkers; w++ {
		value[n-1][w] = scores[n-1][w]
	}
	for i := n - 2; i >= 0; i-- {
		for w := 0; w < models.NumWorkers; w++ {
			bestNext := 0
			bestVal := value[i+1][0] - a.transitions.Cost(models.Worker(w), models.Worker(0))
			for next := 1; next < models.NumWorkers; next++ {
				v := value[i+1][next] - a.transitions.Cost(models.Worker(w), models.Worker(next))
				if v > bestVal {
					bestVal = v
					bestNext = next
				}
			}
			value[i][w] = scores[i][w] + bestVal
			choice[i][w] = models.Worker(bestNext)
		}
	}

	first := 0
	for w := 1; w < models.NumWorkers; w++ {
		if value[0][w] > value[0][first] {
			first = w
		}
	}

	assignments := make([]models.Assignment, 0, n)
	current := models.Worker(first)
	for i := 0; i < n; i++ {
		cost := 0.0
		if i > 0 {
			cost = a.transitions.Cost(assignments[i-1].Worker, current)
		}
		confidence, degenerate := normalizedConfidence(scores[i], current)
		assignments = append(assignments, models.Assignment{
			Subtask:          subtasks[i],
			Worker:           current,
			Confidence:       confidence,
			CoordinationCost: cost,
			LowConfidence:    degenerate,
		})
		if i < n-1 {
			current = choice[i][current]
		}
	}
	return assignments
}

// normalizedConfidence is the chosen worker's share of the total score,
// with the same degenerate handling as the greedy path.
func normalizedConfidence(scores [models.NumWorkers]float64, w models.Worker) (float64, bool) {
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	if sum == 0 {
		return 0, true
	}
	return scores[w] / sum, false
}
