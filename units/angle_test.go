package units_test

import (
	"testing"

	"github.com/katalvlaran/gbpplanner/units"
	"github.com/stretchr/testify/require"
)

func TestAngle_NewOutOfRange(t *testing.T) {
	_, err := units.NewAngle(-1.0)
	require.ErrorIs(t, err, units.ErrAngleOutOfRange)

	_, err = units.NewAngle(0.0)
	require.NoError(t, err)
}

func TestAngle_FromDegreesOutOfRange(t *testing.T) {
	_, err := units.NewAngleFromDegrees(-1.0)
	require.ErrorIs(t, err, units.ErrAngleOutOfRange)

	_, err = units.NewAngleFromDegrees(361.0)
	require.ErrorIs(t, err, units.ErrAngleOutOfRange)

	a, err := units.NewAngleFromDegrees(360.0)
	require.NoError(t, err)
	require.InDelta(t, 360.0, a.Degrees(), 1e-6)
}

// TestAngle_WrapAround: 180 + 100 = 280, then +100 wraps to ~20.
func TestAngle_WrapAround(t *testing.T) {
	a, err := units.NewAngleFromDegrees(180)
	require.NoError(t, err)
	b, err := units.NewAngleFromDegrees(100)
	require.NoError(t, err)

	sum := a.Add(b)
	require.InDelta(t, 280.0, sum.Degrees(), 1e-6)

	sum = sum.Add(b)
	require.InDelta(t, 20.0, sum.Degrees(), 1e-6)
}

func TestAngle_Sub(t *testing.T) {
	a, _ := units.NewAngleFromDegrees(180)
	b, _ := units.NewAngleFromDegrees(100)
	diff := a.Sub(b)
	require.InDelta(t, 80.0, diff.Degrees(), 1e-6)

	diff = diff.Sub(b)
	require.InDelta(t, 340.0, diff.Degrees(), 1e-6)
}
