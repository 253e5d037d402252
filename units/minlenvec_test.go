package units_test

import (
	"testing"

	"github.com/katalvlaran/gbpplanner/units"
	"github.com/stretchr/testify/require"
)

// TestMinLenVec_PopFloor: a 5-element vector pops twice, then
// fails with NotEnoughElements{min: 3, actual: 3}.
func TestMinLenVec_PopFloor(t *testing.T) {
	v, err := units.NewMinLenVec([]int{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	require.Equal(t, 5, v.Len())

	x, err := v.Pop()
	require.NoError(t, err)
	require.Equal(t, 5, x)
	require.Equal(t, 4, v.Len())

	x, err = v.Pop()
	require.NoError(t, err)
	require.Equal(t, 4, x)
	require.Equal(t, 3, v.Len())

	_, err = v.Pop()
	require.ErrorIs(t, err, units.ErrNotEnoughElements)
	require.Equal(t, 3, v.Len())
}

func TestMinLenVec_NewRejectsShortSlice(t *testing.T) {
	_, err := units.NewMinLenVec([]int{1, 2}, 3)
	require.ErrorIs(t, err, units.ErrNotEnoughElements)
}

func TestMinLenVec_PushGrows(t *testing.T) {
	v, err := units.NewMinLenVec([]int{1, 2, 3}, 3)
	require.NoError(t, err)
	v.Push(4)
	require.Equal(t, 4, v.Len())
	require.Equal(t, 4, v.Last())
	require.Equal(t, 1, v.First())
}
