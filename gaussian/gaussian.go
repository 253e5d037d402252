package gaussian

import (
	"fmt"

	"github.com/katalvlaran/gbpplanner/matrix"
)

// Gaussian is a multivariate Gaussian in canonical form over a vector of
// dimension Dim(): the pair (η, Λ) where η = Λμ is the information vector
// and Λ is the symmetric precision matrix. The moment form (μ, Σ) is
// derived on demand via Mean/Covariance.
//
// A Gaussian is immutable once constructed; every operation returns a new
// value.
type Gaussian struct {
	dim    int
	eta    []float64
	lambda *matrix.Dense
}

// Identity returns the zero-information Gaussian over dim variables: η = 0,
// Λ = 0. It is the identity element under Product and represents "no
// information" — exactly the contract of an absorbed/empty message.
func Identity(dim int) (Gaussian, error) {
	if dim <= 0 {
		return Gaussian{}, ErrInvalidDimension
	}
	lambda, err := matrix.NewZeros(dim, dim)
	if err != nil {
		return Gaussian{}, fmt.Errorf("gaussian.Identity: %w", err)
	}

	return Gaussian{dim: dim, eta: make([]float64, dim), lambda: lambda}, nil
}

// FromCanonical builds a Gaussian directly from an information vector and
// precision matrix. lambda must be square with side len(eta); dimension
// mismatches return ErrDimensionMismatch. lambda is cloned so the caller
// may keep mutating its own copy.
func FromCanonical(eta []float64, lambda *matrix.Dense) (Gaussian, error) {
	if lambda == nil {
		return Gaussian{}, fmt.Errorf("gaussian.FromCanonical: %w", ErrDimensionMismatch)
	}
	dim := len(eta)
	if dim == 0 || lambda.Rows() != dim || lambda.Cols() != dim {
		return Gaussian{}, fmt.Errorf("gaussian.FromCanonical: %w: eta has %d entries, lambda is %dx%d",
			ErrDimensionMismatch, dim, lambda.Rows(), lambda.Cols())
	}
	cp := make([]float64, dim)
	copy(cp, eta)

	return Gaussian{dim: dim, eta: cp, lambda: lambda.Clone().(*matrix.Dense)}, nil
}

// FromMeanCov builds a Gaussian from moment form: Λ = Σ⁻¹, η = Λμ. Returns
// ErrSingularPrecision (wrapping the underlying matrix.ErrSingular) if sigma
// has no inverse.
func FromMeanCov(mu []float64, sigma *matrix.Dense) (Gaussian, error) {
	if sigma == nil || sigma.Rows() != len(mu) || sigma.Cols() != len(mu) || len(mu) == 0 {
		return Gaussian{}, fmt.Errorf("gaussian.FromMeanCov: %w", ErrDimensionMismatch)
	}
	inv, err := matrix.Inverse(sigma)
	if err != nil {
		return Gaussian{}, fmt.Errorf("gaussian.FromMeanCov: %w: %w", ErrSingularPrecision, err)
	}
	// The non-pivoting inverse of a symmetric Σ drifts slightly asymmetric;
	// repair it so the Λ-symmetry invariant holds exactly.
	sym, err := matrix.Symmetrize(inv)
	if err != nil {
		return Gaussian{}, fmt.Errorf("gaussian.FromMeanCov: %w", err)
	}
	lambda, err := denseOf(sym)
	if err != nil {
		return Gaussian{}, err
	}
	eta, err := matrix.MatVec(lambda, mu)
	if err != nil {
		return Gaussian{}, fmt.Errorf("gaussian.FromMeanCov: %w", err)
	}

	return Gaussian{dim: len(mu), eta: eta, lambda: lambda}, nil
}

// Dim returns the dimension of the space this Gaussian is defined over.
func (g Gaussian) Dim() int { return g.dim }

// Eta returns a copy of the information vector.
func (g Gaussian) Eta() []float64 {
	cp := make([]float64, len(g.eta))
	copy(cp, g.eta)

	return cp
}

// Lambda returns a clone of the precision matrix.
func (g Gaussian) Lambda() *matrix.Dense {
	return g.lambda.Clone().(*matrix.Dense)
}

// IsZero reports whether g carries no information (the Identity value for
// its dimension): η is all zeros and Λ is all zeros.
func (g Gaussian) IsZero() bool {
	for _, v := range g.eta {
		if v != 0 {
			return false
		}
	}
	for i := 0; i < g.dim; i++ {
		for j := 0; j < g.dim; j++ {
			v, _ := g.lambda.At(i, j)
			if v != 0 {
				return false
			}
		}
	}

	return true
}

// Product combines two Gaussians over the same dimension by summing their
// canonical parameters: (η_a+η_b, Λ_a+Λ_b). This is the Gaussian-product
// rule; it is commutative and associative. Returns
// ErrDimensionMismatch if a and b differ in dimension.
func Product(a, b Gaussian) (Gaussian, error) {
	if a.dim != b.dim {
		return Gaussian{}, fmt.Errorf("gaussian.Product: %w: %d vs %d", ErrDimensionMismatch, a.dim, b.dim)
	}
	eta := make([]float64, a.dim)
	for i := range eta {
		eta[i] = a.eta[i] + b.eta[i]
	}
	lambda, err := matrix.Add(a.lambda, b.lambda)
	if err != nil {
		return Gaussian{}, fmt.Errorf("gaussian.Product: %w", err)
	}
	ld, err := denseOf(lambda)
	if err != nil {
		return Gaussian{}, err
	}

	return Gaussian{dim: a.dim, eta: eta, lambda: ld}, nil
}

// Mean projects g into moment form and returns μ = Σ η = Λ⁻¹ η. Returns
// ErrSingularPrecision if Λ has no valid inverse; callers fall back to a
// prior's mean.
func (g Gaussian) Mean() ([]float64, error) {
	inv, err := matrix.Inverse(g.lambda)
	if err != nil {
		return nil, fmt.Errorf("gaussian.Mean: %w: %w", ErrSingularPrecision, err)
	}
	mu, err := matrix.MatVec(inv, g.eta)
	if err != nil {
		return nil, fmt.Errorf("gaussian.Mean: %w", err)
	}

	return mu, nil
}

// Covariance projects g into moment form and returns Σ = Λ⁻¹. Returns
// ErrSingularPrecision if Λ has no valid inverse.
func (g Gaussian) Covariance() (*matrix.Dense, error) {
	inv, err := matrix.Inverse(g.lambda)
	if err != nil {
		return nil, fmt.Errorf("gaussian.Covariance: %w: %w", ErrSingularPrecision, err)
	}

	return denseOf(inv)
}

// denseOf coerces a matrix.Matrix known to be concretely *matrix.Dense
// (every constructor in this package only ever produces Dense values).
func denseOf(m matrix.Matrix) (*matrix.Dense, error) {
	d, ok := m.(*matrix.Dense)
	if !ok {
		return nil, fmt.Errorf("gaussian: expected *matrix.Dense, got %T", m)
	}

	return d, nil
}
