package sdf

import "errors"

// Sentinel errors for sdf operations.
var (
	// ErrEmptyGrid indicates a grid was constructed with zero rows or columns.
	ErrEmptyGrid = errors.New("sdf: grid must have at least one row and one column")
	// ErrNonRectangular indicates grid rows of differing lengths.
	ErrNonRectangular = errors.New("sdf: all grid rows must have the same length")
	// ErrOutOfBounds indicates a sample point falls outside the grid's covered area.
	ErrOutOfBounds = errors.New("sdf: sample point outside grid bounds")
	// ErrInvalidCellSize indicates a non-positive cell size.
	ErrInvalidCellSize = errors.New("sdf: cell size must be positive")
	// ErrEmptyPath indicates a polyline was constructed with fewer than two points.
	ErrEmptyPath = errors.New("sdf: path must have at least two points")
)
