package factorgraph

import (
	"fmt"

	"github.com/katalvlaran/gbpplanner/gaussian"
	"github.com/katalvlaran/gbpplanner/message"
)

// Variable holds a prior over its planar state, an inbox of the last
// message received from each adjacent factor, and the belief that
// combines them.
//
// Variable is mutated only by its owning FactorGraph, in the single
// logical-agent-thread-per-tick model; it carries no locking of its
// own.
type Variable struct {
	id   VariableID
	dim  int
	prior gaussian.Gaussian

	// inboxOrder preserves factor-insertion order so belief products are
	// computed deterministically.
	inboxOrder []FactorID
	inbox      map[FactorID]message.Message

	messagesSent     int
	messagesReceived int
}

// newVariable constructs a Variable with a loose (zero-information) prior.
// Callers needing a tight prior should follow with ClampTo.
func newVariable(id VariableID, dim int) (*Variable, error) {
	prior, err := gaussian.Identity(dim)
	if err != nil {
		return nil, fmt.Errorf("factorgraph: newVariable: %w", err)
	}

	return &Variable{
		id:    id,
		dim:   dim,
		prior: prior,
		inbox: make(map[FactorID]message.Message),
	}, nil
}

// ID returns this variable's handle.
func (v *Variable) ID() VariableID { return v.id }

// Dim returns the dimension of this variable's state (always VariableDim).
func (v *Variable) Dim() int { return v.dim }

// Prior returns the variable's current prior Gaussian.
func (v *Variable) Prior() gaussian.Gaussian { return v.prior }

// SetPrior replaces the prior outright (used by FromMeanCov-built loose
// priors toward a waypoint).
func (v *Variable) SetPrior(prior gaussian.Gaussian) error {
	if prior.Dim() != v.dim {
		return fmt.Errorf("factorgraph: Variable.SetPrior: %w", ErrDimensionMismatch)
	}
	v.prior = prior

	return nil
}

// ClampTo replaces the prior with a tight Gaussian centered at state, with
// precision precision*I. Used for the current-state variable each tick.
func (v *Variable) ClampTo(state []float64, precision float64) error {
	if len(state) != v.dim {
		return fmt.Errorf("factorgraph: Variable.ClampTo: %w", ErrDimensionMismatch)
	}
	eta := make([]float64, v.dim)
	lambda, err := identityScaled(v.dim, precision)
	if err != nil {
		return fmt.Errorf("factorgraph: Variable.ClampTo: %w", err)
	}
	for i, s := range state {
		eta[i] = precision * s
	}
	tight, err := gaussian.FromCanonical(eta, lambda)
	if err != nil {
		return fmt.Errorf("factorgraph: Variable.ClampTo: %w", err)
	}
	v.prior = tight

	return nil
}

// Receive stores msg as the last message sent by factorID, overwriting any
// previous entry. The first message from a given factor
// extends inboxOrder, preserving deterministic iteration.
func (v *Variable) Receive(factorID FactorID, msg message.Message) {
	if _, ok := v.inbox[factorID]; !ok {
		v.inboxOrder = append(v.inboxOrder, factorID)
	}
	v.inbox[factorID] = msg
	v.messagesReceived++
}

// Belief returns prior × Π inbox: the variable's current
// marginal estimate.
func (v *Variable) Belief() (gaussian.Gaussian, error) {
	acc := v.prior
	for _, fid := range v.inboxOrder {
		g, err := v.inbox[fid].Gaussian()
		if err != nil {
			return gaussian.Gaussian{}, err
		}
		acc, err = gaussian.Product(acc, g)
		if err != nil {
			return gaussian.Gaussian{}, fmt.Errorf("factorgraph: Variable.Belief: %w", err)
		}
	}

	return acc, nil
}

// MessageTo returns the belief-excluding-target message for factorID: the
// product of the prior and every inbox entry except the one last received
// from factorID itself. This is the standard
// sum-product "don't tell a neighbor what it told you" rule.
func (v *Variable) MessageTo(factorID FactorID) (message.Message, error) {
	acc := v.prior
	for _, fid := range v.inboxOrder {
		if fid == factorID {
			continue
		}
		g, err := v.inbox[fid].Gaussian()
		if err != nil {
			return message.Message{}, err
		}
		acc, err = gaussian.Product(acc, g)
		if err != nil {
			return message.Message{}, fmt.Errorf("factorgraph: Variable.MessageTo: %w", err)
		}
	}
	v.messagesSent++

	return message.FromGaussian(acc), nil
}

// Mean projects the current belief into moment form and returns its mean.
// If the belief's precision is singular, the variable falls back to the
// prior's mean.
func (v *Variable) Mean() ([]float64, error) {
	belief, err := v.Belief()
	if err != nil {
		return nil, err
	}
	mu, err := belief.Mean()
	if err != nil {
		return v.prior.Mean()
	}

	return mu, nil
}

// EstimatedPosition returns the (x, y) components of Mean().
func (v *Variable) EstimatedPosition() (x, y float64, err error) {
	mu, err := v.Mean()
	if err != nil {
		return 0, 0, err
	}

	return mu[0], mu[1], nil
}

// MessagesSent returns the running count of MessageTo calls served.
func (v *Variable) MessagesSent() int { return v.messagesSent }

// MessagesReceived returns the running count of Receive calls served.
func (v *Variable) MessagesReceived() int { return v.messagesReceived }

// ResetMessageCount zeroes the sent/received counters.
func (v *Variable) ResetMessageCount() {
	v.messagesSent = 0
	v.messagesReceived = 0
}
