package orchestrator

import "errors"

// Sentinel errors for orchestration and scenario loading.
var (
	// ErrNoScenario indicates Tick was driven before any scenario was
	// loaded.
	ErrNoScenario = errors.New("orchestrator: no scenario loaded")

	// ErrUnknownScenario indicates a scenario name matched neither a
	// built-in environment nor a file in the simulations directory.
	ErrUnknownScenario = errors.New("orchestrator: unknown scenario")

	// ErrUnknownRobot indicates an operation referenced a robot id that
	// is not part of the loaded scenario.
	ErrUnknownRobot = errors.New("orchestrator: unknown robot")

	// ErrBadScenario indicates a scenario file failed to decode or
	// violated a structural requirement (no robots, no waypoints, bad
	// grid).
	ErrBadScenario = errors.New("orchestrator: malformed scenario")

	// ErrTimeScaleOutOfRange indicates SetTimeScale was called outside
	// the documented bounds.
	ErrTimeScaleOutOfRange = errors.New("orchestrator: time scale out of range")
)
