// Package orchestrator drives the planning core: it owns the robot
// planners, the radio network, and the simulation clock, and advances them
// together one tick at a time.
//
// Within a tick the orchestrator is the single caller into every planner,
// in ascending robot-id order. External messages produced during an
// iteration are collected from all robots first, passed through the radio
// loss filter, and only then delivered, so no robot observes a half-swept
// tick. Between ticks the orchestrator can pause, single-step, rescale
// time, or load a fresh scenario, which resets all planner state.
package orchestrator
