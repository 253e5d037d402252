package gaussian

import "errors"

// Sentinel errors for gaussian operations.
var (
	// ErrDimensionMismatch indicates an operation was given operands whose
	// dimensions disagree (e.g. Product of Gaussians over different-sized
	// spaces). This is always a construction bug, never a recoverable
	// numerical condition; callers should treat it as fatal.
	ErrDimensionMismatch = errors.New("gaussian: dimension mismatch")

	// ErrInvalidDimension indicates a non-positive dimension was requested
	// at construction.
	ErrInvalidDimension = errors.New("gaussian: dimension must be positive")

	// ErrSingularPrecision indicates Λ has no valid inverse, so mean() and
	// covariance() cannot be computed. Callers recover locally:
	// the variable reports its prior's mean instead.
	ErrSingularPrecision = errors.New("gaussian: precision matrix is singular")

	// ErrSingularBlock indicates the Λ_BB block selected for elimination
	// during marginalization is singular. The caller substitutes
	// an identity (empty) message for the result.
	ErrSingularBlock = errors.New("gaussian: marginalized block is singular")

	// ErrEmptyKeepSet indicates Marginalize was called with no indices to
	// keep.
	ErrEmptyKeepSet = errors.New("gaussian: marginalize requires at least one kept index")

	// ErrIndexOutOfRange indicates a kept index fell outside [0, dim).
	ErrIndexOutOfRange = errors.New("gaussian: keep index out of range")
)
