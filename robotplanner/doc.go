// Package robotplanner runs one robot's planning loop over its factor
// graph: it advances waypoints, lays lookahead variables along the segment
// toward the next waypoint, clamps the current-state variable, executes the
// configured interleave of internal and external GBP iterations, and reads
// the next control target off the first future variable.
//
// A Planner owns its FactorGraph outright; peers never touch it directly.
// Inter-robot coupling happens through factor pairs addressed by
// (FactorGraphID, VariableID), created and retired as the radio layer
// reports peers entering and leaving range. The planner's per-tick methods
// are split (BeginTick, RunInternal, RunExternal, Deliver, EndTick) so an
// orchestrator can interleave all robots' iterations within one tick while
// each graph is still mutated by exactly one caller at a time.
package robotplanner
