// Package matrix_test provides unit tests for the dense storage and
// linear-algebra kernels, covering nil guards, dimension mismatches,
// numeric policy, and happy paths.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gbpplanner/matrix"
)

// filled builds an r×c Dense from row-major vals, failing the test on any
// construction error.
func filled(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)
	require.NoError(t, m.Fill(vals))

	return m
}

// at reads one element, failing the test on a bounds error.
func at(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func TestNewDense_ShapeValidation(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDense(3, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
}

func TestDense_AtSet_Bounds(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 1, 4.5))
	require.Equal(t, 4.5, at(t, m, 1, 1))

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	err = m.Set(0, -1, 1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_NaNInfPolicy(t *testing.T) {
	t.Parallel()

	// Default policy rejects NaN and both infinities.
	m, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)

	// Disabled validation lets anything through.
	loose, err := matrix.NewPreparedDense(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, loose.Set(0, 0, math.NaN()))

	// AllowInfDistances disables the check for this matrix as well.
	inf, err := matrix.NewPreparedDense(1, 1, matrix.WithAllowInfDistances())
	require.NoError(t, err)
	require.NoError(t, inf.Set(0, 0, math.Inf(1)))
}

func TestDense_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig := filled(t, 2, 2, []float64{1, 2, 3, 4})
	clone := orig.Clone()

	require.NoError(t, clone.Set(0, 0, 99))
	require.Equal(t, 1.0, at(t, orig, 0, 0), "mutating the clone must not touch the original")
	require.Equal(t, 99.0, at(t, clone, 0, 0))
}

func TestDense_Fill_LengthMismatch(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, m.Fill([]float64{1, 2, 3}), matrix.ErrDimensionMismatch)
}

func TestDense_Induced(t *testing.T) {
	t.Parallel()

	m := filled(t, 3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	sub, err := m.Induced([]int{0, 2}, []int{1, 2})
	require.NoError(t, err)
	require.Equal(t, 2.0, at(t, sub, 0, 0))
	require.Equal(t, 3.0, at(t, sub, 0, 1))
	require.Equal(t, 8.0, at(t, sub, 1, 0))
	require.Equal(t, 9.0, at(t, sub, 1, 1))

	_, err = m.Induced([]int{3}, []int{0})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestMethods_NilGuards(t *testing.T) {
	t.Parallel()

	a, _ := matrix.NewDense(1, 1)
	_, err := matrix.Add(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Sub(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Mul(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Scale(nil, 2.0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.MatVec(nil, []float64{1})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Inverse(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMethods_DimensionMismatch(t *testing.T) {
	t.Parallel()

	m1, _ := matrix.NewDense(3, 4)
	m2, _ := matrix.NewDense(4, 3)

	_, err := matrix.Add(m1, m2)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(m1, m2)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	// Mul(3×4, 3×4): inner dimensions disagree.
	m3, _ := matrix.NewDense(3, 4)
	_, err = matrix.Mul(m1, m3)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	// MatVec with a short vector.
	_, err = matrix.MatVec(m1, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	// Inverse requires square input.
	_, err = matrix.Inverse(m1)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestAddSubScale_Elementwise(t *testing.T) {
	t.Parallel()

	a := filled(t, 2, 2, []float64{1, 2, 3, 4})
	b := filled(t, 2, 2, []float64{5, 6, 7, 8})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	require.Equal(t, 6.0, at(t, sum, 0, 0))
	require.Equal(t, 12.0, at(t, sum, 1, 1))

	diff, err := matrix.Sub(b, a)
	require.NoError(t, err)
	require.Equal(t, 4.0, at(t, diff, 0, 0))
	require.Equal(t, 4.0, at(t, diff, 1, 1))

	scaled, err := matrix.Scale(a, 2.0)
	require.NoError(t, err)
	require.Equal(t, 2.0, at(t, scaled, 0, 0))
	require.Equal(t, 8.0, at(t, scaled, 1, 1))
}

func TestMulTransposeMatVec(t *testing.T) {
	t.Parallel()

	a := filled(t, 2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	b := filled(t, 3, 2, []float64{
		7, 8,
		9, 10,
		11, 12,
	})

	prod, err := matrix.Mul(a, b)
	require.NoError(t, err)
	require.Equal(t, 58.0, at(t, prod, 0, 0))
	require.Equal(t, 64.0, at(t, prod, 0, 1))
	require.Equal(t, 139.0, at(t, prod, 1, 0))
	require.Equal(t, 154.0, at(t, prod, 1, 1))

	tr, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, 3, tr.Rows())
	require.Equal(t, 2, tr.Cols())
	require.Equal(t, 4.0, at(t, tr, 0, 1))

	y, err := matrix.MatVec(a, []float64{1, 1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{6, 15}, y)
}

func TestInverse_KnownMatrix(t *testing.T) {
	t.Parallel()

	// [[4, 7], [2, 6]] has inverse [[0.6, -0.7], [-0.2, 0.4]].
	m := filled(t, 2, 2, []float64{4, 7, 2, 6})
	inv, err := matrix.Inverse(m)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, at(t, inv, 0, 0), 1e-12)
	assert.InDelta(t, -0.7, at(t, inv, 0, 1), 1e-12)
	assert.InDelta(t, -0.2, at(t, inv, 1, 0), 1e-12)
	assert.InDelta(t, 0.4, at(t, inv, 1, 1), 1e-12)

	// A * A^{-1} == I within tolerance.
	prod, err := matrix.Mul(m, inv)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, at(t, prod, 0, 0), 1e-12)
	assert.InDelta(t, 0.0, at(t, prod, 0, 1), 1e-12)
}

func TestInverse_Singular(t *testing.T) {
	t.Parallel()

	// Rank-1 matrix: second row is a multiple of the first.
	m := filled(t, 2, 2, []float64{1, 2, 2, 4})
	_, err := matrix.Inverse(m)
	require.ErrorIs(t, err, matrix.ErrSingular)

	// The all-zero matrix is singular too.
	z, err := matrix.NewZeros(3, 3)
	require.NoError(t, err)
	_, err = matrix.Inverse(z)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestLU_Reconstructs(t *testing.T) {
	t.Parallel()

	m := filled(t, 3, 3, []float64{
		2, 1, 1,
		4, 3, 3,
		8, 7, 9,
	})
	l, u, err := matrix.LU(m)
	require.NoError(t, err)

	// L must be unit lower triangular, U upper triangular.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.0, at(t, l, i, i), 1e-12)
		for j := i + 1; j < 3; j++ {
			assert.InDelta(t, 0.0, at(t, l, i, j), 1e-12)
			assert.InDelta(t, 0.0, at(t, u, j, i), 1e-12)
		}
	}

	// L*U must reproduce the input.
	prod, err := matrix.Mul(l, u)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, at(t, m, i, j), at(t, prod, i, j), 1e-9)
		}
	}
}

func TestSymmetrize(t *testing.T) {
	t.Parallel()

	m := filled(t, 2, 2, []float64{1, 4, 2, 1})
	sym, err := matrix.Symmetrize(m)
	require.NoError(t, err)
	require.Equal(t, 3.0, at(t, sym, 0, 1))
	require.Equal(t, 3.0, at(t, sym, 1, 0))
	require.Equal(t, 1.0, at(t, sym, 0, 0))
}
