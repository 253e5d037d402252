package sdf

import "math"

// Grid is a Sampler backed by a dense 2D array of signed-distance values,
// one per grid vertex, spaced CellSize apart starting at Origin. It
// deep-copies its input to remain immutable once built.
//
// Complexity: O(W×H) to construct; O(1) per Sample call.
type Grid struct {
	width, height int
	cellSize      float64
	origin        Point
	values        [][]float64
}

// NewGrid constructs a Grid from a non-empty, rectangular 2D slice of
// signed-distance values indexed [y][x]. cellSize must be positive; origin
// is the world-space position of values[0][0].
//
// Returns ErrEmptyGrid if values has no rows or no columns, ErrNonRectangular
// if any row length differs, or ErrInvalidCellSize if cellSize <= 0.
func NewGrid(values [][]float64, cellSize float64, origin Point) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	if cellSize <= 0 {
		return nil, ErrInvalidCellSize
	}

	// Deep copy to prevent external mutation.
	cp := make([][]float64, h)
	for y := 0; y < h; y++ {
		cp[y] = make([]float64, w)
		copy(cp[y], values[y])
	}

	return &Grid{
		width:    w,
		height:   h,
		cellSize: cellSize,
		origin:   origin,
		values:   cp,
	}, nil
}

// InBounds reports whether the grid-index pair (ix, iy) addresses a stored
// vertex. Complexity: O(1).
func (g *Grid) InBounds(ix, iy int) bool {
	return ix >= 0 && ix < g.width && iy >= 0 && iy < g.height
}

// cellCoords maps a world-space point to fractional grid coordinates.
func (g *Grid) cellCoords(x, y float64) (fx, fy float64) {
	return (x - g.origin.X) / g.cellSize, (y - g.origin.Y) / g.cellSize
}

// at fetches a stored value, clamping indices to the grid edge. Clamping
// (rather than rejecting) keeps gradients well-defined for sample points
// near the boundary.
func (g *Grid) at(ix, iy int) float64 {
	if ix < 0 {
		ix = 0
	} else if ix >= g.width {
		ix = g.width - 1
	}
	if iy < 0 {
		iy = 0
	} else if iy >= g.height {
		iy = g.height - 1
	}

	return g.values[iy][ix]
}

// Sample returns the bilinearly-interpolated signed-distance value at
// world-space (x, y) and its gradient via central finite differences on the
// surrounding cell. Points outside the grid's covered area return
// ErrOutOfBounds.
//
// Complexity: O(1).
func (g *Grid) Sample(x, y float64) (value, gradX, gradY float64, err error) {
	fx, fy := g.cellCoords(x, y)
	if fx < 0 || fy < 0 || fx > float64(g.width-1) || fy > float64(g.height-1) {
		return math.NaN(), math.NaN(), math.NaN(), ErrOutOfBounds
	}

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	v00 := g.at(x0, y0)
	v10 := g.at(x0+1, y0)
	v01 := g.at(x0, y0+1)
	v11 := g.at(x0+1, y0+1)

	// Bilinear interpolation of the four surrounding vertices.
	value = v00*(1-tx)*(1-ty) + v10*tx*(1-ty) + v01*(1-tx)*ty + v11*tx*ty

	// Central differences of the interpolated field, one cell-size step in
	// each axis, scaled back to world units.
	vxPlus := g.at(x0+1, y0)*(1-ty) + g.at(x0+1, y0+1)*ty
	vxMinus := g.at(x0-1, y0)*(1-ty) + g.at(x0-1, y0+1)*ty
	vyPlus := g.at(x0, y0+1)*(1-tx) + g.at(x0+1, y0+1)*tx
	vyMinus := g.at(x0, y0-1)*(1-tx) + g.at(x0+1, y0-1)*tx

	gradX = (vxPlus - vxMinus) / (2 * g.cellSize)
	gradY = (vyPlus - vyMinus) / (2 * g.cellSize)

	return value, gradX, gradY, nil
}
