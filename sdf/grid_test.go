package sdf_test

import (
	"testing"

	"github.com/katalvlaran/gbpplanner/sdf"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_RejectsEmpty(t *testing.T) {
	_, err := sdf.NewGrid(nil, 1.0, sdf.Point{})
	require.ErrorIs(t, err, sdf.ErrEmptyGrid)

	_, err = sdf.NewGrid([][]float64{{}}, 1.0, sdf.Point{})
	require.ErrorIs(t, err, sdf.ErrEmptyGrid)
}

func TestNewGrid_RejectsNonRectangular(t *testing.T) {
	_, err := sdf.NewGrid([][]float64{{0, 1}, {0}}, 1.0, sdf.Point{})
	require.ErrorIs(t, err, sdf.ErrNonRectangular)
}

func TestNewGrid_RejectsBadCellSize(t *testing.T) {
	_, err := sdf.NewGrid([][]float64{{0, 1}, {1, 2}}, 0, sdf.Point{})
	require.ErrorIs(t, err, sdf.ErrInvalidCellSize)
}

func TestGrid_Sample_BilinearInterpolation(t *testing.T) {
	// A flat plane z = x, sampled at unit spacing.
	values := [][]float64{
		{0, 1, 2},
		{0, 1, 2},
		{0, 1, 2},
	}
	g, err := sdf.NewGrid(values, 1.0, sdf.Point{X: 0, Y: 0})
	require.NoError(t, err)

	v, gx, gy, err := g.Sample(1.5, 1.0)
	require.NoError(t, err)
	require.InDelta(t, 1.5, v, 1e-9)
	require.InDelta(t, 1.0, gx, 1e-9)
	require.InDelta(t, 0.0, gy, 1e-9)
}

func TestGrid_Sample_OutOfBounds(t *testing.T) {
	values := [][]float64{{0, 1}, {1, 2}}
	g, err := sdf.NewGrid(values, 1.0, sdf.Point{})
	require.NoError(t, err)

	_, _, _, err = g.Sample(-5, -5)
	require.ErrorIs(t, err, sdf.ErrOutOfBounds)
}

func TestGrid_ImmutableAfterConstruction(t *testing.T) {
	values := [][]float64{{0, 1}, {1, 2}}
	g, err := sdf.NewGrid(values, 1.0, sdf.Point{})
	require.NoError(t, err)

	values[0][0] = 99
	v, _, _, err := g.Sample(0, 0)
	require.NoError(t, err)
	require.InDelta(t, 0.0, v, 1e-9)
}
