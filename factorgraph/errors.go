package factorgraph

import "errors"

// Sentinel errors for factorgraph operations.
var (
	// ErrVariableNotFound indicates an operation referenced a VariableID
	// that does not exist in this graph.
	ErrVariableNotFound = errors.New("factorgraph: variable not found")

	// ErrFactorNotFound indicates an operation referenced a FactorID that
	// does not exist in this graph.
	ErrFactorNotFound = errors.New("factorgraph: factor not found")

	// ErrDimensionMismatch indicates a constructed factor's state disagreed
	// with VariableDim, or a measurement model returned a vector of the
	// wrong length. This is fatal: it indicates a construction bug,
	// never a recoverable numerical condition.
	ErrDimensionMismatch = errors.New("factorgraph: dimension mismatch")

	// ErrGraphInvariant indicates a peer variable referenced by an
	// inter-robot factor no longer exists: the
	// affected factor should be removed and a warning emitted. It is also
	// returned for invalid measurement-model arguments and for malformed
	// DOT input to ParseDOT.
	ErrGraphInvariant = errors.New("factorgraph: peer variable no longer exists")

	// ErrNotInterRobot indicates an inter-robot-only operation (e.g.
	// SetActive, DeliverExternal) was called on a factor of another kind.
	ErrNotInterRobot = errors.New("factorgraph: factor is not an inter-robot factor")

	// ErrNoSuchPeerSlot indicates Factor.ReceiveAt was given a slot index
	// outside the factor's slots.
	ErrNoSuchPeerSlot = errors.New("factorgraph: no external slot at that index")
)
