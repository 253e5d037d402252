package schedule

import "fmt"

// Entry is one tick-iteration's instruction: whether to run the internal
// sweep, the external sweep, neither, or both.
type Entry struct {
	Internal bool
	External bool
}

// Params is the (internal_count, external_count) pair a policy schedules
// over. Both fields must be non-negative.
type Params struct {
	Internal int
	External int
}

func (p Params) max() int {
	if p.Internal > p.External {
		return p.Internal
	}

	return p.External
}

func (p Params) validate() error {
	if p.Internal < 0 || p.External < 0 {
		return ErrNegativeCount
	}

	return nil
}

// Policy names one of the named iteration-schedule policies.
type Policy int

const (
	// SoonAsPossible runs all of a channel's iterations as early as
	// possible: true for the first n positions, false for the rest.
	SoonAsPossible Policy = iota
	// LateAsPossible runs all of a channel's iterations as late as
	// possible: false for the first (max-n) positions, true for the rest.
	LateAsPossible
	// Centered places a channel's n true positions as a contiguous block
	// centered on max/2.
	Centered
	// HalfBeginningHalfEnd splits a channel's n true positions
	// approximately in half, the first half at the start and the second
	// at the end.
	HalfBeginningHalfEnd
	// InterleaveEvenly distributes a channel's n true positions among max
	// slots as uniformly as possible (Bresenham-style stepping).
	InterleaveEvenly
)

// String returns the policy's configuration name, as it would appear in
// gbp.iteration_schedule.schedule.
func (p Policy) String() string {
	switch p {
	case SoonAsPossible:
		return "soon_as_possible"
	case LateAsPossible:
		return "late_as_possible"
	case Centered:
		return "centered"
	case HalfBeginningHalfEnd:
		return "half_beginning_half_end"
	case InterleaveEvenly:
		return "interleave_evenly"
	default:
		return fmt.Sprintf("schedule.Policy(%d)", int(p))
	}
}

// Build constructs the full per-tick sequence of Entry values for the given
// policy and params. Returns ErrNegativeCount if either count is negative,
// or ErrUnknownPolicy for an unrecognized policy. Per-channel counts can
// never exceed max(Internal, External) since max is derived from them.
//
// Edge cases: Params{0,0} yields an empty, non-nil slice; Internal ==
// External == max yields every entry all-true.
func Build(policy Policy, params Params) ([]Entry, error) {
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("schedule.Build: %w", err)
	}

	var channel func(n, max int) []bool
	switch policy {
	case SoonAsPossible:
		channel = soonAsPossible
	case LateAsPossible:
		channel = lateAsPossible
	case Centered:
		channel = centered
	case HalfBeginningHalfEnd:
		channel = halfBeginningHalfEnd
	case InterleaveEvenly:
		channel = interleaveEvenly
	default:
		return nil, fmt.Errorf("schedule.Build: %w: %v", ErrUnknownPolicy, policy)
	}

	max := params.max()
	internal := channel(params.Internal, max)
	external := channel(params.External, max)

	entries := make([]Entry, max)
	for i := 0; i < max; i++ {
		entries[i] = Entry{Internal: internal[i], External: external[i]}
	}

	return entries, nil
}
