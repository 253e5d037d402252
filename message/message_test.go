package message_test

import (
	"testing"

	"github.com/katalvlaran/gbpplanner/gaussian"
	"github.com/katalvlaran/gbpplanner/matrix"
	"github.com/katalvlaran/gbpplanner/message"
	"github.com/stretchr/testify/require"
)

func twoDimGaussian(t *testing.T) gaussian.Gaussian {
	t.Helper()
	lambda, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, lambda.Fill([]float64{1, 0, 0, 1}))
	g, err := gaussian.FromCanonical([]float64{1, 2}, lambda)
	require.NoError(t, err)

	return g
}

func TestEmpty_ResolvesToIdentity(t *testing.T) {
	m := message.Empty(2)
	require.True(t, m.IsEmpty())
	g, err := m.Gaussian()
	require.NoError(t, err)
	require.True(t, g.IsZero())
}

func TestProduct_EmptyIsNeutral(t *testing.T) {
	proper := message.FromGaussian(twoDimGaussian(t))
	empty := message.Empty(2)

	got, err := message.Product(proper, empty)
	require.NoError(t, err)
	require.False(t, got.IsEmpty())

	gotG, err := got.Gaussian()
	require.NoError(t, err)
	wantG, err := proper.Gaussian()
	require.NoError(t, err)
	require.Equal(t, wantG.Eta(), gotG.Eta())
}

func TestProduct_BothEmptyStaysEmpty(t *testing.T) {
	got, err := message.Product(message.Empty(3), message.Empty(3))
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
	require.Equal(t, 3, got.Dim())
}

func TestProduct_DimensionMismatch(t *testing.T) {
	_, err := message.Product(message.Empty(2), message.Empty(3))
	require.ErrorIs(t, err, message.ErrDimensionMismatch)
}
