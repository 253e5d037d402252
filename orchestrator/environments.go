package orchestrator

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/gbpplanner/sdf"
)

// obstacle is one analytic shape a built-in environment rasterizes into
// its grid. Exactly one of the two kinds is used per entry.
type obstacle struct {
	circle bool
	cx, cy float64
	// radius for circles; half-extents for rectangles.
	r      float64
	hx, hy float64
}

func (o obstacle) distance(x, y float64) float64 {
	if o.circle {
		return math.Hypot(x-o.cx, y-o.cy) - o.r
	}
	dx := math.Abs(x-o.cx) - o.hx
	dy := math.Abs(y-o.cy) - o.hy
	ax, ay := math.Max(dx, 0), math.Max(dy, 0)
	outside := math.Hypot(ax, ay)
	inside := math.Min(math.Max(dx, dy), 0)

	return outside + inside
}

// rasterize samples the union signed-distance of obstacles onto a
// size×size vertex grid covering [0, extent]² with the given cell size.
func rasterize(obstacles []obstacle, extent, cellSize float64) GridSpec {
	n := int(extent/cellSize) + 1
	values := make([][]float64, n)
	for iy := 0; iy < n; iy++ {
		row := make([]float64, n)
		y := float64(iy) * cellSize
		for ix := 0; ix < n; ix++ {
			x := float64(ix) * cellSize
			d := extent // free space far from everything
			for _, o := range obstacles {
				if od := o.distance(x, y); od < d {
					d = od
				}
			}
			row[ix] = d
		}
		values[iy] = row
	}

	return GridSpec{Values: values, CellSize: cellSize, Origin: sdf.Point{X: 0, Y: 0}}
}

func circleRobots(count int, cx, cy, radius float64) []RobotSpec {
	robots := make([]RobotSpec, count)
	for i := 0; i < count; i++ {
		a := 2 * math.Pi * float64(i) / float64(count)
		start := sdf.Point{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
		goal := sdf.Point{X: cx - radius*math.Cos(a), Y: cy - radius*math.Sin(a)}
		robots[i] = RobotSpec{Start: start, Waypoints: []sdf.Point{start, goal}}
	}

	return robots
}

func environmentTest() Scenario {
	return Scenario{
		Name:        "test",
		SDF:         rasterize(nil, 20, 1),
		RobotRadius: 0.5,
		GoalRadius:  0.5,
		Robots: []RobotSpec{
			{Start: sdf.Point{X: 2, Y: 10}, Waypoints: []sdf.Point{{X: 2, Y: 10}, {X: 18, Y: 10}}},
			{Start: sdf.Point{X: 18, Y: 10}, Waypoints: []sdf.Point{{X: 18, Y: 10}, {X: 2, Y: 10}}},
		},
	}
}

func environmentCircle() Scenario {
	return Scenario{
		Name:        "circle",
		SDF:         rasterize(nil, 100, 2),
		RobotRadius: 1,
		GoalRadius:  1,
		Robots:      circleRobots(6, 50, 50, 35),
	}
}

func environmentIntersection() Scenario {
	// Four corner blocks leave two orthogonal corridors crossing at the
	// center.
	blocks := []obstacle{
		{cx: 20, cy: 20, hx: 16, hy: 16},
		{cx: 80, cy: 20, hx: 16, hy: 16},
		{cx: 20, cy: 80, hx: 16, hy: 16},
		{cx: 80, cy: 80, hx: 16, hy: 16},
	}

	return Scenario{
		Name:        "intersection",
		SDF:         rasterize(blocks, 100, 2),
		RobotRadius: 1,
		GoalRadius:  1.5,
		Robots: []RobotSpec{
			{Start: sdf.Point{X: 5, Y: 50}, Waypoints: []sdf.Point{{X: 5, Y: 50}, {X: 95, Y: 50}}},
			{Start: sdf.Point{X: 50, Y: 5}, Waypoints: []sdf.Point{{X: 50, Y: 5}, {X: 50, Y: 95}}},
			{Start: sdf.Point{X: 95, Y: 50}, Waypoints: []sdf.Point{{X: 95, Y: 50}, {X: 5, Y: 50}}},
		},
	}
}

func environmentIntermediate() Scenario {
	center := []obstacle{{circle: true, cx: 50, cy: 50, r: 12}}
	s := Scenario{
		Name:        "intermediate",
		SDF:         rasterize(center, 100, 2),
		RobotRadius: 1,
		GoalRadius:  1,
		Robots:      circleRobots(4, 50, 50, 35),
	}

	return s
}

func environmentComplex() Scenario {
	shapes := []obstacle{
		{circle: true, cx: 30, cy: 30, r: 8},
		{circle: true, cx: 70, cy: 70, r: 8},
		{cx: 70, cy: 30, hx: 8, hy: 6},
		{cx: 30, cy: 70, hx: 6, hy: 8},
		{cx: 50, cy: 50, hx: 4, hy: 4},
	}

	return Scenario{
		Name:        "complex",
		SDF:         rasterize(shapes, 100, 2),
		RobotRadius: 1,
		GoalRadius:  1,
		Robots:      circleRobots(8, 50, 50, 40),
	}
}

func environmentMaze() Scenario {
	// Two staggered walls force an S-shaped route.
	walls := []obstacle{
		{cx: 35, cy: 30, hx: 30, hy: 4},
		{cx: 65, cy: 70, hx: 30, hy: 4},
	}

	return Scenario{
		Name:        "maze",
		SDF:         rasterize(walls, 100, 2),
		RobotRadius: 1,
		GoalRadius:  1.5,
		Robots: []RobotSpec{
			{
				Start: sdf.Point{X: 10, Y: 10},
				Waypoints: []sdf.Point{
					{X: 10, Y: 10},
					{X: 85, Y: 15},
					{X: 85, Y: 50},
					{X: 15, Y: 55},
					{X: 15, Y: 90},
					{X: 90, Y: 90},
				},
			},
		},
	}
}

var builtinEnvironments = map[string]func() Scenario{
	"test":         environmentTest,
	"circle":       environmentCircle,
	"intersection": environmentIntersection,
	"intermediate": environmentIntermediate,
	"complex":      environmentComplex,
	"maze":         environmentMaze,
}

// BuiltinEnvironment returns one of the named built-in scenarios.
func BuiltinEnvironment(name string) (Scenario, error) {
	gen, ok := builtinEnvironments[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}

	return gen(), nil
}

// BuiltinEnvironmentNames returns the built-in scenario names, sorted.
func BuiltinEnvironmentNames() []string {
	names := make([]string, 0, len(builtinEnvironments))
	for name := range builtinEnvironments {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
