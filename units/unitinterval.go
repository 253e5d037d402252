package units

import (
	"errors"
	"fmt"
)

// ErrUnitIntervalOutOfBounds indicates a value outside the closed interval
// [0.0, 1.0] was supplied to NewUnitInterval.
var ErrUnitIntervalOutOfBounds = errors.New("units: value out of bounds for unit interval")

// UnitInterval holds a float64 constrained to the closed interval [0.0, 1.0].
// It is used for probabilities such as the radio's per-message failure rate.
type UnitInterval struct {
	value float64
}

// NewUnitInterval creates a UnitInterval from value.
// Returns ErrUnitIntervalOutOfBounds if value is not in [0.0, 1.0].
func NewUnitInterval(value float64) (UnitInterval, error) {
	if value < 0.0 || value > 1.0 {
		return UnitInterval{}, fmt.Errorf("%w: %g not in [0.0, 1.0]", ErrUnitIntervalOutOfBounds, value)
	}

	return UnitInterval{value: value}, nil
}

// Get returns the underlying float64 value.
func (u UnitInterval) Get() float64 { return u.value }

// Add returns u+other. Panics if the sum would leave [0.0, 1.0]; callers at
// a construction boundary should validate beforehand, exactly as they would
// before indexing a slice out of bounds.
func (u UnitInterval) Add(other UnitInterval) UnitInterval {
	sum := u.value + other.value
	if sum > 1.0 {
		panic(fmt.Sprintf("units: UnitInterval.Add overflow: %g + %g > 1.0", u.value, other.value))
	}

	return UnitInterval{value: sum}
}

// Sub returns u-other. Panics if the difference would leave [0.0, 1.0].
func (u UnitInterval) Sub(other UnitInterval) UnitInterval {
	diff := u.value - other.value
	if diff < 0.0 {
		panic(fmt.Sprintf("units: UnitInterval.Sub underflow: %g - %g < 0.0", u.value, other.value))
	}

	return UnitInterval{value: diff}
}
