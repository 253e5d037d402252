package schedule_test

import (
	"testing"

	"github.com/katalvlaran/gbpplanner/schedule"
	"github.com/stretchr/testify/require"
)

func ts(internal, external bool) schedule.Entry {
	return schedule.Entry{Internal: internal, External: external}
}

// Centered schedule with counts (10, 5).
func TestBuild_Centered_E1(t *testing.T) {
	got, err := schedule.Build(schedule.Centered, schedule.Params{Internal: 10, External: 5})
	require.NoError(t, err)
	want := []schedule.Entry{
		ts(true, false), ts(true, false), ts(true, false),
		ts(true, true), ts(true, true), ts(true, true), ts(true, true), ts(true, true),
		ts(true, false), ts(true, false),
	}
	require.Equal(t, want, got)
}

// Centered schedule with counts (4, 6).
func TestBuild_Centered_E2(t *testing.T) {
	got, err := schedule.Build(schedule.Centered, schedule.Params{Internal: 4, External: 6})
	require.NoError(t, err)
	want := []schedule.Entry{
		ts(false, true), ts(true, true), ts(true, true), ts(true, true), ts(true, true), ts(false, true),
	}
	require.Equal(t, want, got)
}

// Both counts zero: an empty schedule.
func TestBuild_BothZero_E3(t *testing.T) {
	for _, p := range []schedule.Policy{
		schedule.SoonAsPossible, schedule.LateAsPossible, schedule.Centered,
		schedule.HalfBeginningHalfEnd, schedule.InterleaveEvenly,
	} {
		got, err := schedule.Build(p, schedule.Params{})
		require.NoError(t, err)
		require.Empty(t, got)
	}
}

func TestBuild_RejectsNegative(t *testing.T) {
	_, err := schedule.Build(schedule.SoonAsPossible, schedule.Params{Internal: -1})
	require.ErrorIs(t, err, schedule.ErrNegativeCount)
}

func TestBuild_UnknownPolicy(t *testing.T) {
	_, err := schedule.Build(schedule.Policy(99), schedule.Params{Internal: 1, External: 1})
	require.ErrorIs(t, err, schedule.ErrUnknownPolicy)
}

// Every policy yields exactly max(n_i, n_e) entries.
func TestBuild_LengthProperty(t *testing.T) {
	policies := []schedule.Policy{
		schedule.SoonAsPossible, schedule.LateAsPossible, schedule.Centered,
		schedule.HalfBeginningHalfEnd, schedule.InterleaveEvenly,
	}
	for _, p := range policies {
		for ni := 0; ni <= 12; ni++ {
			for ne := 0; ne <= 12; ne++ {
				got, err := schedule.Build(p, schedule.Params{Internal: ni, External: ne})
				require.NoError(t, err)
				want := ni
				if ne > want {
					want = ne
				}
				require.Lenf(t, got, want, "policy=%v ni=%d ne=%d", p, ni, ne)
			}
		}
	}
}

// The count of true positions in each channel equals exactly n.
func TestBuild_CardinalityProperty(t *testing.T) {
	policies := []schedule.Policy{
		schedule.SoonAsPossible, schedule.LateAsPossible, schedule.Centered,
		schedule.HalfBeginningHalfEnd, schedule.InterleaveEvenly,
	}
	for _, p := range policies {
		for ni := 0; ni <= 12; ni++ {
			for ne := 0; ne <= 12; ne++ {
				got, err := schedule.Build(p, schedule.Params{Internal: ni, External: ne})
				require.NoError(t, err)

				internalCount, externalCount := 0, 0
				for _, e := range got {
					if e.Internal {
						internalCount++
					}
					if e.External {
						externalCount++
					}
				}
				require.Equalf(t, ni, internalCount, "policy=%v ni=%d ne=%d", p, ni, ne)
				require.Equalf(t, ne, externalCount, "policy=%v ni=%d ne=%d", p, ni, ne)
			}
		}
	}
}

func TestPolicy_String(t *testing.T) {
	require.Equal(t, "centered", schedule.Centered.String())
	require.Equal(t, "interleave_evenly", schedule.InterleaveEvenly.String())
}
