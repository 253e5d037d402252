package factorgraph

import (
	"fmt"

	"github.com/katalvlaran/gbpplanner/matrix"
)

// identityScaled builds a dim×dim diagonal matrix with scale on the
// diagonal, used to build tight/clamped priors and isotropic measurement
// precisions.
func identityScaled(dim int, scale float64) (*matrix.Dense, error) {
	d, err := matrix.NewZeros(dim, dim)
	if err != nil {
		return nil, fmt.Errorf("factorgraph: identityScaled: %w", err)
	}
	for i := 0; i < dim; i++ {
		if err := d.Set(i, i, scale); err != nil {
			return nil, fmt.Errorf("factorgraph: identityScaled: %w", err)
		}
	}

	return d, nil
}

// embedBlock places a small dxd block at (offset, offset) inside a
// jointDim x jointDim zero matrix, and a length-d vector at [offset:offset+d]
// inside a jointDim zero vector. Used to lift an adjacent variable's
// incoming message into the factor's joint space before summing it into
// the measurement joint.
func embedBlock(jointDim, offset, d int, vec []float64, block *matrix.Dense) ([]float64, *matrix.Dense, error) {
	etaFull := make([]float64, jointDim)
	copy(etaFull[offset:offset+d], vec)

	lambdaFull, err := matrix.NewZeros(jointDim, jointDim)
	if err != nil {
		return nil, nil, fmt.Errorf("factorgraph: embedBlock: %w", err)
	}
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			v, err := block.At(i, j)
			if err != nil {
				return nil, nil, fmt.Errorf("factorgraph: embedBlock: %w", err)
			}
			if err := lambdaFull.Set(offset+i, offset+j, v); err != nil {
				return nil, nil, fmt.Errorf("factorgraph: embedBlock: %w", err)
			}
		}
	}

	return etaFull, lambdaFull, nil
}
