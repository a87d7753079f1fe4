package models

// UIElement is a single element in a UI snapshot. Only the type label is
// relevant to complexity estimation.
type UIElement struct {
	// Type is the element type label (button, slider, list, ...). An empty
	// label is treated as "unknown".
	Type string `json:"type" yaml:"type"`
}

// UnknownElementType is the label assumed for elements without a type.
const UnknownElementType = "unknown"

// Label returns the element type, defaulting to UnknownElementType.
func (e UIElement) Label() string {
	if e.Type == "" {
		return UnknownElementType
	}
	return e.Type
}

// UIState is a read-only snapshot of a device UI, supplied by the caller.
type UIState struct {
	// HierarchyDepth is the depth of the UI view tree. Zero means the depth
	// was not reported and defaults to 1 during estimation; negative values
	// are rejected.
	HierarchyDepth int `json:"hierarchy_depth" yaml:"hierarchy_depth"`
	// Elements is the ordered list of visible elements. May be empty.
	Elements []UIElement `json:"elements" yaml:"elements"`
}

// ComplexityProfile summarizes the expected planning, execution and
// verification difficulty of a UI state. Values are non-negative.
type ComplexityProfile struct {
	Planning     float64 `json:"planning"`
	Execution    float64 `json:"execution"`
	Verification float64 `json:"verification"`
}

// Mean returns the arithmetic mean of the three dimensions.
func (p ComplexityProfile) Mean() float64 {
	return (p.Planning + p.Execution + p.Verification) / 3
}

// Dim returns the value for the given requirement dimension.
func (p ComplexityProfile) Dim(d Dimension) float64 {
	switch d {
	case DimensionPlanning:
		return p.Planning
	case DimensionExecution:
		return p.Execution
	default:
		return p.Verification
	}
}
