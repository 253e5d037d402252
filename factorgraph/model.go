package factorgraph

import "github.com/katalvlaran/gbpplanner/matrix"

// Model is the small capability interface every factor kind implements:
// the measurement function, its Jacobian, the target measurement, the
// measurement precision, and the per-kind relinearization threshold. Every
// kind dispatches through this one small interface rather than a type
// hierarchy.
//
// H and J both receive the full joint state vector (the concatenation of
// every adjacent variable's mean, each VariableDim wide, in slot order).
type Model interface {
	// OutputDim is the dimension of H's result.
	OutputDim() int
	// H evaluates the measurement function at the joint state x.
	H(x []float64) ([]float64, error)
	// J evaluates H's Jacobian at the joint state x (OutputDim x len(x)).
	J(x []float64) (*matrix.Dense, error)
	// Z is the target measurement (constant, length OutputDim).
	Z() []float64
	// LambdaM is the measurement precision (OutputDim x OutputDim).
	LambdaM() *matrix.Dense
	// RelinearizationThreshold is the joint-state displacement beyond
	// which the factor relinearizes.
	RelinearizationThreshold() float64
}
