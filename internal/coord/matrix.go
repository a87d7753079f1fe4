package coord

import (
	"errors"
	"fmt"
	"math"

	"github.com/triadhq/triad/pkg/models"
)

// ErrBadMatrix indicates a capability matrix that cannot be used for
// assignment.
var ErrBadMatrix = errors.New("bad capability matrix")

// CapabilityMatrix encodes how strongly each worker is suited to each
// requirement dimension. Rows are workers, columns are dimensions. The
// matrix is constructed once, validated, and shared read-only.
type CapabilityMatrix [models.NumWorkers][models.NumDimensions]float64

// NewCapabilityMatrix validates and returns a capability matrix. Entries
// must be finite and non-negative, and no worker row may be all zero: a
// worker with no capability for any dimension is a configuration error, not
// something to discover mid-assignment.
func NewCapabilityMatrix(rows [models.NumWorkers][models.NumDimensions]float64) (CapabilityMatrix, error) {
	m := CapabilityMatrix(rows)
	if err := m.validate(); err != nil {
		return CapabilityMatrix{}, err
	}
	return m, nil
}

// DefaultCapabilityMatrix returns the reference specialization weights.
func DefaultCapabilityMatrix() CapabilityMatrix {
	return CapabilityMatrix{
		{0.9, 0.3, 0.2}, // planning worker
		{0.2, 0.9, 0.3}, // execution worker
		{0.3, 0.2, 0.9}, // verification worker
	}
}

func (m CapabilityMatrix) validate() error {
	for w, row := range m {
		zeroRow := true
		for d, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: non-finite entry at row %d col %d", ErrBadMatrix, w, d)
			}
			if v < 0 {
				return fmt.Errorf("%w: negative entry %v at row %d col %d", ErrBadMatrix, v, w, d)
			}
			if v != 0 {
				zeroRow = false
			}
		}
		if zeroRow {
			return fmt.Errorf("%w: worker %s has no capability in any dimension", ErrBadMatrix, models.Worker(w))
		}
	}
	return nil
}

// Scores returns the matrix-vector product of the capability matrix and a
// requirement vector: one capability-weighted fit score per worker.
func (m CapabilityMatrix) Scores(req [models.NumDimensions]float64) [models.NumWorkers]float64 {
	var scores [models.NumWorkers]float64
	for w := range m {
		for d, v := range m[w] {
			scores[w] += v * req[d]
		}
	}
	return scores
}
