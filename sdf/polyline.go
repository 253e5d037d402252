package sdf

import "math"

// Polyline is a PathSampler backed by an ordered sequence of waypoints; the
// robot's current path is the segment chain between consecutive points.
type Polyline struct {
	points []Point
}

// NewPolyline constructs a Polyline from at least two points. Returns
// ErrEmptyPath if fewer than two points are given.
func NewPolyline(points []Point) (*Polyline, error) {
	if len(points) < 2 {
		return nil, ErrEmptyPath
	}
	cp := make([]Point, len(points))
	copy(cp, points)

	return &Polyline{points: cp}, nil
}

// nearestSearch holds the running best match across the segment scan.
type nearestSearch struct {
	bestDistSq float64
	bestX      float64
	bestY      float64
}

// consider updates the running best if (x, y) is closer than anything seen
// so far.
func (s *nearestSearch) consider(x, y, px, py float64) {
	dx, dy := px-x, py-y
	distSq := dx*dx + dy*dy
	if distSq < s.bestDistSq {
		s.bestDistSq = distSq
		s.bestX, s.bestY = px, py
	}
}

// NearestPoint scans every segment of the path and returns the closest
// projected point to (x, y).
//
// Complexity: O(n) where n is the number of segments.
func (p *Polyline) NearestPoint(x, y float64) (nx, ny float64, err error) {
	search := &nearestSearch{bestDistSq: math.Inf(1)}

	for i := 0; i+1 < len(p.points); i++ {
		a, b := p.points[i], p.points[i+1]
		px, py := closestOnSegment(x, y, a, b)
		search.consider(x, y, px, py)
	}

	return search.bestX, search.bestY, nil
}

// closestOnSegment projects (x, y) onto the segment a-b, clamped to the
// segment's extent.
func closestOnSegment(x, y float64, a, b Point) (px, py float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a.X, a.Y
	}

	t := ((x-a.X)*dx + (y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return a.X + t*dx, a.Y + t*dy
}
