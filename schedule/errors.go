package schedule

import "errors"

// Sentinel errors for schedule construction.
var (
	// ErrNegativeCount indicates Internal or External was negative.
	ErrNegativeCount = errors.New("schedule: iteration count must be non-negative")

	// ErrUnknownPolicy indicates Build was called with a Policy value none
	// of the named policies recognize.
	ErrUnknownPolicy = errors.New("schedule: unknown policy")
)
