package coord

import (
	"errors"
	"fmt"
	"math"

	"github.com/triadhq/triad/pkg/models"
)

// ErrInvalidInput indicates a UI state that cannot be estimated.
var ErrInvalidInput = errors.New("invalid input")

// Exponents of the weighted geometric complexity model. The planning
// dimension leans on hierarchy depth, execution on element count, and
// verification on the variety of element types.
const (
	planningDepthExp     = 0.5
	planningTypesExp     = 0.3
	executionCountExp    = 0.4
	executionDepthExp    = 0.2
	verificationTypesExp = 0.6
	verificationDepthExp = 0.1
)

// EstimateComplexity derives a complexity profile from a UI snapshot.
//
// A hierarchy depth of zero means the depth was not reported and defaults
// to 1; a negative depth is rejected. An empty element list collapses the
// execution and verification dimensions to zero, which is valid: the
// planner then takes the low-complexity branch with zero-complexity
// subtasks.
func EstimateComplexity(ui models.UIState) (models.ComplexityProfile, error) {
	depth := ui.HierarchyDepth
	if depth < 0 {
		return models.ComplexityProfile{}, fmt.Errorf("%w: hierarchy depth %d is negative", ErrInvalidInput, ui.HierarchyDepth)
	}
	if depth == 0 {
		depth = 1
	}

	types := make(map[string]struct{}, len(ui.Elements))
	for _, el := range ui.Elements {
		types[el.Label()] = struct{}{}
	}
	distinctTypes := float64(len(types))
	elementCount := float64(len(ui.Elements))
	d := float64(depth)

	profile := models.ComplexityProfile{
		Planning:     math.Pow(d, planningDepthExp) * math.Pow(distinctTypes, planningTypesExp),
		Execution:    math.Pow(elementCount, executionCountExp) * math.Pow(d, executionDepthExp),
		Verification: math.Pow(distinctTypes, verificationTypesExp) * math.Pow(d, verificationDepthExp),
	}
	if !finiteProfile(profile) {
		return models.ComplexityProfile{}, fmt.Errorf("%w: non-finite complexity for depth %d, %d elements", ErrInvalidInput, ui.HierarchyDepth, len(ui.Elements))
	}
	return profile, nil
}

func finiteProfile(p models.ComplexityProfile) bool {
	for _, v := range []float64{p.Planning, p.Execution, p.Verification} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}
