package robotplanner

import "errors"

// Sentinel errors for planner construction and per-tick operation.
var (
	// ErrTooFewWaypoints indicates a planner was built with no waypoints
	// to head for.
	ErrTooFewWaypoints = errors.New("robotplanner: at least one waypoint is required")

	// ErrUnknownPeer indicates a peer-link operation referenced a graph
	// this planner has no link records for.
	ErrUnknownPeer = errors.New("robotplanner: unknown peer graph")

	// ErrBadTimeStep indicates Tick was driven with a non-positive dt.
	ErrBadTimeStep = errors.New("robotplanner: time step must be positive")

	// ErrNilEnvironment indicates construction without the SDF or path
	// collaborators the obstacle and tracking factors sample.
	ErrNilEnvironment = errors.New("robotplanner: environment samplers must be non-nil")
)
