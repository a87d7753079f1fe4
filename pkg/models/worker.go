// Package models defines the shared data types for task decomposition
// and worker assignment.
package models

// Worker identifies one of the three fixed specialist roles that subtasks
// are routed to. The set is closed: capability matrices and transition
// tables are sized by NumWorkers.
type Worker int

const (
	// WorkerPlanning analyzes UI state and plans action sequences.
	WorkerPlanning Worker = iota
	// WorkerExecution performs gestures and direct actions.
	WorkerExecution
	// WorkerVerification validates UI state after actions.
	WorkerVerification
)

// NumWorkers is the size of the fixed worker set.
const NumWorkers = 3

// Workers lists all workers in index order.
var Workers = [NumWorkers]Worker{WorkerPlanning, WorkerExecution, WorkerVerification}

// Valid returns true if the worker is a known value.
func (w Worker) Valid() bool {
	return w >= WorkerPlanning && w <= WorkerVerification
}

// String returns the worker name.
func (w Worker) String() string {
	switch w {
	case WorkerPlanning:
		return "planning"
	case WorkerExecution:
		return "execution"
	case WorkerVerification:
		return "verification"
	default:
		return "unknown"
	}
}

// Dimension identifies one of the three task-requirement dimensions a
// subtask can load. Dimensions index capability matrix columns the same
// way workers index its rows.
type Dimension int

const (
	// DimensionPlanning is the planning requirement dimension.
	DimensionPlanning Dimension = iota
	// DimensionExecution is the execution requirement dimension.
	DimensionExecution
	// DimensionVerification is the verification requirement dimension.
	DimensionVerification
)

// NumDimensions is the size of the fixed dimension set.
const NumDimensions = 3

// Valid returns true if the dimension is a known value.
func (d Dimension) Valid() bool {
	return d >= DimensionPlanning && d <= DimensionVerification
}

// String returns the dimension name.
func (d Dimension) String() string {
	switch d {
	case DimensionPlanning:
		return "planning"
	case DimensionExecution:
		return "execution"
	case DimensionVerification:
		return "verification"
	default:
		return "unknown"
	}
}
