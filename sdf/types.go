package sdf

// Sampler is the environment collaborator consumed by the obstacle
// factor: it reports the signed distance to the nearest obstacle surface
// at a world-space point, along with its gradient.
//
// Implementations may return (NaN, NaN, NaN, nil) for points where the
// field is undefined; callers treat that as "no measurement" rather than
// an error.
type Sampler interface {
	// Sample returns the signed-distance value at (x, y) and its gradient
	// (gradX, gradY). Negative values denote the interior of an obstacle.
	Sample(x, y float64) (value, gradX, gradY float64, err error)
}

// PathSampler is the environment collaborator consumed by the tracking
// factor: it reports the nearest point on the robot's current path
// to a given world-space point.
type PathSampler interface {
	// NearestPoint returns the closest point on the path to (x, y).
	NearestPoint(x, y float64) (nx, ny float64, err error)
}

// Point is a single 2D world-space coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
