// Package coord implements complexity-driven task decomposition and
// capability-weighted worker assignment for mobile-UI automation goals.
//
// A decomposition is a three-stage pipeline: EstimateComplexity turns a UI
// snapshot into a three-dimensional complexity profile, Planner splits the
// goal into ordered subtasks based on the profile mean, and Assigner routes
// each subtask to the best-matching worker while charging a hand-off cost
// between consecutive assignments. Decomposer wires the stages together.
//
// The pipeline is pure: one Decompose call holds no state beyond the
// sequential dependency of coordination cost on the immediately preceding
// assignment, so independent calls can run concurrently against the same
// Decomposer.
package coord
