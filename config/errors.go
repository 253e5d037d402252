package config

import "errors"

// Sentinel errors for configuration resolution.
var (
	// ErrOutOfRange indicates a configuration value fell outside its
	// documented bounds. The wrapping error names the offending field and
	// the bound it violated; the scenario is not loaded.
	ErrOutOfRange = errors.New("config: value out of range")

	// ErrUnknownPolicy indicates gbp.iteration_schedule.schedule named
	// none of the known schedule policies.
	ErrUnknownPolicy = errors.New("config: unknown schedule policy name")
)
