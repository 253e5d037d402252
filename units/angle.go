package units

import (
	"errors"
	"fmt"
	"math"
)

// ErrAngleOutOfRange indicates a radians or degrees value fell outside the
// range Angle accepts at construction.
var ErrAngleOutOfRange = errors.New("units: angle value out of range")

// Angle represents an angle in radians, held in [0, 2π]: the constructors
// accept 2π itself, while Add and Sub wrap their results into [0, 2π).
type Angle struct {
	radians float64
}

// NewAngle creates an Angle from a value in radians.
// Returns ErrAngleOutOfRange if value is not in [0, 2π].
func NewAngle(radians float64) (Angle, error) {
	if radians < 0 || radians > 2*math.Pi {
		return Angle{}, fmt.Errorf("%w: %g radians not in [0,2π]", ErrAngleOutOfRange, radians)
	}

	return Angle{radians: radians}, nil
}

// NewAngleFromDegrees creates an Angle from a value in degrees.
// Returns ErrAngleOutOfRange if value is not in [0, 360].
func NewAngleFromDegrees(degrees float64) (Angle, error) {
	if degrees < 0 || degrees > 360 {
		return Angle{}, fmt.Errorf("%w: %g degrees not in [0,360]", ErrAngleOutOfRange, degrees)
	}

	return Angle{radians: degrees * math.Pi / 180}, nil
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 { return a.radians }

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 { return a.radians * 180 / math.Pi }

// Add returns a+b, wrapped to [0, 2π).
func (a Angle) Add(b Angle) Angle {
	sum := a.radians + b.radians
	return Angle{radians: math.Mod(sum, 2*math.Pi)}
}

// Sub returns a-b, wrapped to [0, 2π).
func (a Angle) Sub(b Angle) Angle {
	diff := a.radians - b.radians
	wrapped := math.Mod(diff+2*math.Pi, 2*math.Pi)
	return Angle{radians: wrapped}
}
