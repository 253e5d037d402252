package message

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gbpplanner/gaussian"
)

// ErrDimensionMismatch indicates a message was asked to participate in an
// operation against a dimension it was not built for.
var ErrDimensionMismatch = errors.New("message: dimension mismatch")

// Message is a Gaussian sent from a factor to a variable, or vice versa.
// The zero value is not meaningful; construct via Empty or FromGaussian.
type Message struct {
	dim    int
	empty  bool
	g      gaussian.Gaussian
}

// Empty returns the absorbed/no-information message over dim dimensions:
// the identity Gaussian. Produced when a factor is disabled, a
// linearization degenerates (singular block/precision), or no message has
// arrived yet for a given inbox slot.
func Empty(dim int) Message {
	return Message{dim: dim, empty: true}
}

// FromGaussian wraps a proper Gaussian as a message. g.Dim() becomes the
// message's dimension.
func FromGaussian(g gaussian.Gaussian) Message {
	return Message{dim: g.Dim(), empty: false, g: g}
}

// Dim returns the dimension this message is defined over.
func (m Message) Dim() int { return m.dim }

// IsEmpty reports whether m is the absorbed/no-information sentinel.
func (m Message) IsEmpty() bool { return m.empty }

// Gaussian resolves m to a concrete Gaussian: the wrapped value if proper,
// or gaussian.Identity(m.Dim()) if empty.
func (m Message) Gaussian() (gaussian.Gaussian, error) {
	if m.empty {
		return gaussian.Identity(m.dim)
	}

	return m.g, nil
}

// Product combines two messages of the same dimension into the Gaussian
// product of their resolved forms. An empty message is the identity
// element, so Product(m, Empty(dim)) always yields m's resolved Gaussian
// unchanged.
func Product(a, b Message) (Message, error) {
	if a.dim != b.dim {
		return Message{}, fmt.Errorf("message.Product: %w: %d vs %d", ErrDimensionMismatch, a.dim, b.dim)
	}
	if a.empty && b.empty {
		return Empty(a.dim), nil
	}

	ga, err := a.Gaussian()
	if err != nil {
		return Message{}, err
	}
	gb, err := b.Gaussian()
	if err != nil {
		return Message{}, err
	}
	product, err := gaussian.Product(ga, gb)
	if err != nil {
		return Message{}, fmt.Errorf("message.Product: %w", err)
	}

	return FromGaussian(product), nil
}
