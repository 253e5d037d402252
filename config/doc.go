// Package config defines the immutable per-tick configuration consumed by
// the planning core: iteration-schedule counts and policy, per-factor-kind
// noise and enable flags, lookahead geometry, radio parameters, and
// simulation pacing.
//
// A Config is resolved once (defaults, then options, then validation) and
// passed by value into the core each tick; no component reads process-global
// state. Out-of-bounds values are rejected at resolution time with errors
// wrapping ErrOutOfRange, so a bad configuration never reaches a running
// scenario.
package config
