package radio

import "errors"

// Sentinel errors for radio operations.
var (
	// ErrInvalidRange indicates a non-positive antenna range was supplied.
	ErrInvalidRange = errors.New("radio: antenna range must be positive")

	// ErrUnknownAntenna indicates an operation referenced an AntennaID that
	// was never registered with this Network.
	ErrUnknownAntenna = errors.New("radio: unknown antenna")

	// ErrSelfLink indicates an operation tried to link an antenna to
	// itself.
	ErrSelfLink = errors.New("radio: an antenna cannot link to itself")
)
