package gaussian

import (
	"fmt"

	"github.com/katalvlaran/gbpplanner/matrix"
)

// Marginalize eliminates every dimension of g not listed in keep (indices
// into [0, g.Dim())), returning the Schur-complement marginal over the kept
// dimensions:
//
//	Λ' = Λ_AA − Λ_AB Λ_BB⁻¹ Λ_BA
//	η' = η_A − Λ_AB Λ_BB⁻¹ η_B
//
// where A is the kept block and B the dropped block. If nothing is dropped
// (len(keep) == g.Dim()), the joint itself is returned unchanged.
//
// Returns ErrEmptyKeepSet if keep is empty, ErrIndexOutOfRange if any index
// falls outside [0, g.Dim()), and ErrSingularBlock if Λ_BB has no inverse —
// the caller is expected to substitute an identity (empty) message
// in that case rather than treat it as fatal.
func Marginalize(g Gaussian, keep []int) (Gaussian, error) {
	if len(keep) == 0 {
		return Gaussian{}, ErrEmptyKeepSet
	}
	kept := make(map[int]bool, len(keep))
	for _, i := range keep {
		if i < 0 || i >= g.dim {
			return Gaussian{}, fmt.Errorf("gaussian.Marginalize: %w: %d", ErrIndexOutOfRange, i)
		}
		kept[i] = true
	}

	drop := make([]int, 0, g.dim-len(kept))
	for i := 0; i < g.dim; i++ {
		if !kept[i] {
			drop = append(drop, i)
		}
	}

	lambdaAA, err := submatrix(g.lambda, keep, keep)
	if err != nil {
		return Gaussian{}, err
	}
	etaA := subvector(g.eta, keep)

	if len(drop) == 0 {
		return FromCanonical(etaA, lambdaAA)
	}

	lambdaAB, err := submatrix(g.lambda, keep, drop)
	if err != nil {
		return Gaussian{}, err
	}
	lambdaBA, err := submatrix(g.lambda, drop, keep)
	if err != nil {
		return Gaussian{}, err
	}
	lambdaBB, err := submatrix(g.lambda, drop, drop)
	if err != nil {
		return Gaussian{}, err
	}
	etaB := subvector(g.eta, drop)

	lambdaBBInv, err := matrix.Inverse(lambdaBB)
	if err != nil {
		return Gaussian{}, fmt.Errorf("gaussian.Marginalize: %w: %w", ErrSingularBlock, err)
	}

	// temp = Λ_AB Λ_BB⁻¹
	temp, err := matrix.Mul(lambdaAB, lambdaBBInv)
	if err != nil {
		return Gaussian{}, fmt.Errorf("gaussian.Marginalize: %w", err)
	}

	correction, err := matrix.Mul(temp, lambdaBA)
	if err != nil {
		return Gaussian{}, fmt.Errorf("gaussian.Marginalize: %w", err)
	}
	lambdaPrime, err := matrix.Sub(lambdaAA, correction)
	if err != nil {
		return Gaussian{}, fmt.Errorf("gaussian.Marginalize: %w", err)
	}
	// Λ_AB Λ_BB⁻¹ Λ_BA is symmetric in exact arithmetic but not in floats;
	// repair the drift so the marginal's Λ stays exactly symmetric.
	lambdaPrime, err = matrix.Symmetrize(lambdaPrime)
	if err != nil {
		return Gaussian{}, fmt.Errorf("gaussian.Marginalize: %w", err)
	}

	shift, err := matrix.MatVec(temp, etaB)
	if err != nil {
		return Gaussian{}, fmt.Errorf("gaussian.Marginalize: %w", err)
	}
	etaPrime := make([]float64, len(keep))
	for i := range etaPrime {
		etaPrime[i] = etaA[i] - shift[i]
	}

	lambdaDense, err := denseOf(lambdaPrime)
	if err != nil {
		return Gaussian{}, err
	}

	return FromCanonical(etaPrime, lambdaDense)
}

// submatrix extracts the sub-block of m at the given row/column index sets,
// preserving their order.
func submatrix(m *matrix.Dense, rows, cols []int) (*matrix.Dense, error) {
	out, err := m.Induced(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("gaussian: submatrix: %w", err)
	}

	return out, nil
}

// subvector extracts the entries of v at the given indices, preserving order.
func subvector(v []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = v[j]
	}

	return out
}
