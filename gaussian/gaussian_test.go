package gaussian_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/gbpplanner/gaussian"
	"github.com/katalvlaran/gbpplanner/matrix"
	"github.com/stretchr/testify/require"
)

func denseFromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(len(rows), len(rows[0]))
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, d.Set(i, j, v))
		}
	}

	return d
}

func mustGaussian(t *testing.T, eta []float64, lambdaRows [][]float64) gaussian.Gaussian {
	t.Helper()
	g, err := gaussian.FromCanonical(eta, denseFromRows(t, lambdaRows))
	require.NoError(t, err)

	return g
}

func assertClose(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDeltaf(t, want[i], got[i], tol, "index %d", i)
	}
}

// Empty message is identity.
func TestProduct_IdentityIsNeutral(t *testing.T) {
	g := mustGaussian(t, []float64{1, 2}, [][]float64{{2, 0}, {0, 2}})
	id, err := gaussian.Identity(2)
	require.NoError(t, err)

	got, err := gaussian.Product(g, id)
	require.NoError(t, err)
	assertClose(t, got.Eta(), g.Eta(), 1e-12)

	gotLambda, wantLambda := got.Lambda(), g.Lambda()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			gv, _ := gotLambda.At(i, j)
			wv, _ := wantLambda.At(i, j)
			require.InDelta(t, wv, gv, 1e-12)
		}
	}
}

// Product is commutative and associative.
func TestProduct_CommutativeAndAssociative(t *testing.T) {
	a := mustGaussian(t, []float64{1, 0}, [][]float64{{2, 0}, {0, 1}})
	b := mustGaussian(t, []float64{0, 1}, [][]float64{{1, 0}, {0, 3}})
	c := mustGaussian(t, []float64{2, 2}, [][]float64{{4, 1}, {1, 4}})

	ab, err := gaussian.Product(a, b)
	require.NoError(t, err)
	ba, err := gaussian.Product(b, a)
	require.NoError(t, err)
	assertClose(t, ab.Eta(), ba.Eta(), 1e-9)

	abc1, err := gaussian.Product(a, mustProduct(t, b, c))
	require.NoError(t, err)
	abc2, err := gaussian.Product(mustProduct(t, a, b), c)
	require.NoError(t, err)
	assertClose(t, abc1.Eta(), abc2.Eta(), 1e-9)
}

func mustProduct(t *testing.T, a, b gaussian.Gaussian) gaussian.Gaussian {
	t.Helper()
	g, err := gaussian.Product(a, b)
	require.NoError(t, err)

	return g
}

func TestProduct_DimensionMismatch(t *testing.T) {
	a := mustGaussian(t, []float64{1}, [][]float64{{1}})
	b := mustGaussian(t, []float64{1, 2}, [][]float64{{1, 0}, {0, 1}})
	_, err := gaussian.Product(a, b)
	require.ErrorIs(t, err, gaussian.ErrDimensionMismatch)
}

func TestFromMeanCov_RoundTrip(t *testing.T) {
	sigma := denseFromRows(t, [][]float64{{2, 0}, {0, 4}})
	mu := []float64{1, -2}

	g, err := gaussian.FromMeanCov(mu, sigma)
	require.NoError(t, err)

	gotMu, err := g.Mean()
	require.NoError(t, err)
	assertClose(t, gotMu, mu, 1e-9)

	gotSigma, err := g.Covariance()
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want, _ := sigma.At(i, j)
			got, _ := gotSigma.At(i, j)
			require.InDelta(t, want, got, 1e-9)
		}
	}
}

func TestMean_SingularPrecision(t *testing.T) {
	g := mustGaussian(t, []float64{0, 0}, [][]float64{{0, 0}, {0, 0}})
	_, err := g.Mean()
	require.ErrorIs(t, err, gaussian.ErrSingularPrecision)
}

// Marginalization must agree with partitioning the moment form
// directly.
func TestMarginalize_ConsistentWithMoments(t *testing.T) {
	sigma := denseFromRows(t, [][]float64{
		{4, 1, 0.5},
		{1, 3, 0.2},
		{0.5, 0.2, 2},
	})
	mu := []float64{1, 2, 3}

	joint, err := gaussian.FromMeanCov(mu, sigma)
	require.NoError(t, err)

	marginal, err := gaussian.Marginalize(joint, []int{0, 1})
	require.NoError(t, err)

	gotMu, err := marginal.Mean()
	require.NoError(t, err)
	assertClose(t, gotMu, mu[:2], 1e-6)

	gotSigma, err := marginal.Covariance()
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want, _ := sigma.At(i, j)
			got, _ := gotSigma.At(i, j)
			require.InDelta(t, want, got, 1e-6)
		}
	}
}

func TestMarginalize_NoDropIsIdentity(t *testing.T) {
	g := mustGaussian(t, []float64{1, 2}, [][]float64{{2, 0}, {0, 2}})
	m, err := gaussian.Marginalize(g, []int{0, 1})
	require.NoError(t, err)
	assertClose(t, m.Eta(), g.Eta(), 1e-12)
}

func TestMarginalize_SingularBlock(t *testing.T) {
	// Λ_BB (index 1) is exactly zero: no information to eliminate, so the
	// Schur complement's inner inverse fails.
	g := mustGaussian(t, []float64{1, 0}, [][]float64{{2, 0}, {0, 0}})
	_, err := gaussian.Marginalize(g, []int{0})
	require.ErrorIs(t, err, gaussian.ErrSingularBlock)
}

func TestMarginalize_EmptyKeepSet(t *testing.T) {
	g := mustGaussian(t, []float64{1}, [][]float64{{1}})
	_, err := gaussian.Marginalize(g, nil)
	require.ErrorIs(t, err, gaussian.ErrEmptyKeepSet)
}

func TestMarginalize_IndexOutOfRange(t *testing.T) {
	g := mustGaussian(t, []float64{1}, [][]float64{{1}})
	_, err := gaussian.Marginalize(g, []int{5})
	require.ErrorIs(t, err, gaussian.ErrIndexOutOfRange)
}

func TestIdentity_IsZero(t *testing.T) {
	id, err := gaussian.Identity(3)
	require.NoError(t, err)
	require.True(t, id.IsZero())
	require.Equal(t, 3, id.Dim())
}

func TestIdentity_InvalidDimension(t *testing.T) {
	_, err := gaussian.Identity(0)
	require.ErrorIs(t, err, gaussian.ErrInvalidDimension)
}

func TestMain_NaNNeverLeaksIntoEta(t *testing.T) {
	// Sanity check that our helper construction never silently produces NaN.
	g := mustGaussian(t, []float64{1, 2}, [][]float64{{2, 0}, {0, 2}})
	for _, v := range g.Eta() {
		require.False(t, math.IsNaN(v))
	}
}
