package radio_test

import (
	"testing"

	"github.com/katalvlaran/gbpplanner/radio"
	"github.com/katalvlaran/gbpplanner/units"
	"github.com/stretchr/testify/require"
)

func TestLoss_ZeroFailureRateNeverDrops(t *testing.T) {
	rate, err := units.NewUnitInterval(0)
	require.NoError(t, err)
	l := radio.NewLoss(42, rate)
	for i := 0; i < 1000; i++ {
		require.False(t, l.ShouldDrop())
	}
}

func TestLoss_OneFailureRateAlwaysDrops(t *testing.T) {
	rate, err := units.NewUnitInterval(1)
	require.NoError(t, err)
	l := radio.NewLoss(42, rate)
	for i := 0; i < 1000; i++ {
		require.True(t, l.ShouldDrop())
	}
}

func TestLoss_SameSeedIsReproducible(t *testing.T) {
	rate, err := units.NewUnitInterval(0.5)
	require.NoError(t, err)
	a := radio.NewLoss(7, rate)
	b := radio.NewLoss(7, rate)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.ShouldDrop(), b.ShouldDrop())
	}
}

func TestLoss_ApproximatesFailureRate(t *testing.T) {
	rate, err := units.NewUnitInterval(0.3)
	require.NoError(t, err)
	l := radio.NewLoss(123, rate)
	drops := 0
	const trials = 20000
	for i := 0; i < trials; i++ {
		if l.ShouldDrop() {
			drops++
		}
	}
	require.InDelta(t, 0.3, float64(drops)/trials, 0.02)
}
