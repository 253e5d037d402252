package factorgraph

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/gbpplanner/matrix"
	"github.com/katalvlaran/gbpplanner/sdf"
)

// dynamicsModel implements the constant-velocity transition factor between
// two consecutive time-step variables: x_{k+1} = F(Δt) x_k, with
// F = [[I, Δt·I], [0, I]] over the planar state (x, y, vx, vy).
type dynamicsModel struct {
	dt        float64
	lambdaM   *matrix.Dense
	threshold float64
}

// NewDynamicsModel builds a dynamics model for step dt and measurement
// noise sigma (the transition is trusted to within sigma of exact).
func NewDynamicsModel(dt, sigma, relinThreshold float64) (Model, error) {
	if dt <= 0 || sigma <= 0 {
		return nil, fmt.Errorf("factorgraph: NewDynamicsModel: %w", ErrGraphInvariant)
	}
	lambdaM, err := identityScaled(VariableDim, 1/(sigma*sigma))
	if err != nil {
		return nil, fmt.Errorf("factorgraph: NewDynamicsModel: %w", err)
	}

	return &dynamicsModel{dt: dt, lambdaM: lambdaM, threshold: relinThreshold}, nil
}

func (m *dynamicsModel) OutputDim() int { return VariableDim }

// H evaluates the transition residual h(x) = F x_k - x_{k+1} over the
// 2*VariableDim joint state [x_k | x_{k+1}].
func (m *dynamicsModel) H(x []float64) ([]float64, error) {
	if len(x) != 2*VariableDim {
		return nil, fmt.Errorf("factorgraph: dynamicsModel.H: %w", ErrDimensionMismatch)
	}
	xk, xk1 := x[:VariableDim], x[VariableDim:]
	h := make([]float64, VariableDim)
	// position rows: x_k.pos + dt*x_k.vel - x_k1.pos
	h[0] = xk[0] + m.dt*xk[2] - xk1[0]
	h[1] = xk[1] + m.dt*xk[3] - xk1[1]
	// velocity rows: x_k.vel - x_k1.vel
	h[2] = xk[2] - xk1[2]
	h[3] = xk[3] - xk1[3]

	return h, nil
}

func (m *dynamicsModel) J(x []float64) (*matrix.Dense, error) {
	if len(x) != 2*VariableDim {
		return nil, fmt.Errorf("factorgraph: dynamicsModel.J: %w", ErrDimensionMismatch)
	}
	j, err := matrix.NewZeros(VariableDim, 2*VariableDim)
	if err != nil {
		return nil, fmt.Errorf("factorgraph: dynamicsModel.J: %w", err)
	}
	set := func(i, col int, v float64) error { return j.Set(i, col, v) }
	entries := [][3]float64{
		{0, 0, 1}, {0, 2, m.dt}, {0, 4, -1},
		{1, 1, 1}, {1, 3, m.dt}, {1, 5, -1},
		{2, 2, 1}, {2, 6, -1},
		{3, 3, 1}, {3, 7, -1},
	}
	for _, e := range entries {
		if err := set(int(e[0]), int(e[1]), e[2]); err != nil {
			return nil, fmt.Errorf("factorgraph: dynamicsModel.J: %w", err)
		}
	}

	return j, nil
}

func (m *dynamicsModel) Z() []float64                    { return make([]float64, VariableDim) }
func (m *dynamicsModel) LambdaM() *matrix.Dense           { return m.lambdaM.Clone().(*matrix.Dense) }
func (m *dynamicsModel) RelinearizationThreshold() float64 { return m.threshold }

// obstacleModel implements the unary signed-distance pushback factor. The
// measurement is a clearance hinge over the sampled signed distance: zero
// once the position is at least clearance away from the nearest surface,
// growing linearly as the position sinks below that. It samples the
// environment lazily at H-time, so its Jacobian always matches the last
// sample without caching the gradient separately.
type obstacleModel struct {
	field     sdf.Sampler
	clearance float64
	lambdaM   *matrix.Dense
	threshold float64
}

// NewObstacleModel builds an obstacle model reading distances from field.
// clearance is the minimum surface distance the factor tolerates (usually
// the robot radius); sigma is the measurement noise (small sigma makes
// obstacles harder walls).
func NewObstacleModel(field sdf.Sampler, clearance, sigma, relinThreshold float64) (Model, error) {
	if field == nil || clearance < 0 || sigma <= 0 {
		return nil, fmt.Errorf("factorgraph: NewObstacleModel: %w", ErrGraphInvariant)
	}
	lambdaM, err := identityScaled(1, 1/(sigma*sigma))
	if err != nil {
		return nil, fmt.Errorf("factorgraph: NewObstacleModel: %w", err)
	}

	return &obstacleModel{field: field, clearance: clearance, lambdaM: lambdaM, threshold: relinThreshold}, nil
}

func (m *obstacleModel) OutputDim() int { return 1 }

// H evaluates the hinge h(x) = max(0, clearance - sdf(x.xy)). A NaN sample
// (the field is undefined there) propagates unchanged; Factor.Update
// treats it as "no measurement".
func (m *obstacleModel) H(x []float64) ([]float64, error) {
	if len(x) != VariableDim {
		return nil, fmt.Errorf("factorgraph: obstacleModel.H: %w", ErrDimensionMismatch)
	}
	v, _, _, err := m.field.Sample(x[0], x[1])
	if errors.Is(err, sdf.ErrOutOfBounds) {
		// Off the mapped area there is nothing to measure.
		return []float64{math.NaN()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("factorgraph: obstacleModel.H: %w", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []float64{v}, nil
	}
	h := m.clearance - v
	if h < 0 {
		h = 0
	}

	return []float64{h}, nil
}

// J is the hinge subgradient: zero wherever the position already has full
// clearance, the negated field gradient inside the clearance band.
func (m *obstacleModel) J(x []float64) (*matrix.Dense, error) {
	if len(x) != VariableDim {
		return nil, fmt.Errorf("factorgraph: obstacleModel.J: %w", ErrDimensionMismatch)
	}
	v, gx, gy, err := m.field.Sample(x[0], x[1])
	if errors.Is(err, sdf.ErrOutOfBounds) {
		v, gx, gy = math.NaN(), 0, 0
	} else if err != nil {
		return nil, fmt.Errorf("factorgraph: obstacleModel.J: %w", err)
	}
	j, err := matrix.NewZeros(1, VariableDim)
	if err != nil {
		return nil, fmt.Errorf("factorgraph: obstacleModel.J: %w", err)
	}
	if !math.IsNaN(v) && v >= m.clearance {
		return j, nil
	}
	if err := j.Set(0, 0, -gx); err != nil {
		return nil, fmt.Errorf("factorgraph: obstacleModel.J: %w", err)
	}
	if err := j.Set(0, 1, -gy); err != nil {
		return nil, fmt.Errorf("factorgraph: obstacleModel.J: %w", err)
	}

	return j, nil
}

func (m *obstacleModel) Z() []float64                    { return []float64{0} }
func (m *obstacleModel) LambdaM() *matrix.Dense           { return m.lambdaM.Clone().(*matrix.Dense) }
func (m *obstacleModel) RelinearizationThreshold() float64 { return m.threshold }

// interRobotModel implements the soft safety-distance hinge between two
// robots' same-indexed variables. The hinge is zero (and its
// gradient zero) once the pair is outside r_safety, which is what keeps
// distant robots from influencing each other at all.
type interRobotModel struct {
	rSafety   float64
	lambdaM   *matrix.Dense
	threshold float64
}

// NewInterRobotModel builds an inter-robot safety model with the given
// safety radius and measurement noise sigma.
func NewInterRobotModel(rSafety, sigma, relinThreshold float64) (Model, error) {
	if rSafety <= 0 || sigma <= 0 {
		return nil, fmt.Errorf("factorgraph: NewInterRobotModel: %w", ErrGraphInvariant)
	}
	lambdaM, err := identityScaled(1, 1/(sigma*sigma))
	if err != nil {
		return nil, fmt.Errorf("factorgraph: NewInterRobotModel: %w", err)
	}

	return &interRobotModel{rSafety: rSafety, lambdaM: lambdaM, threshold: relinThreshold}, nil
}

func (m *interRobotModel) OutputDim() int { return 1 }

// interRobotGeometry computes the shared distance and displacement terms
// used by both H and J, avoiding a second sqrt in the Jacobian.
func (m *interRobotModel) interRobotGeometry(x []float64) (dx, dy, dist float64) {
	dx = x[0] - x[VariableDim+0]
	dy = x[1] - x[VariableDim+1]
	dist = math.Hypot(dx, dy)

	return dx, dy, dist
}

// H evaluates the smooth hinge h(x_i, x_j) = max(0, r_safety - ||xi.xy -
// xj.xy||) over the joint [x_i | x_j].
func (m *interRobotModel) H(x []float64) ([]float64, error) {
	if len(x) != 2*VariableDim {
		return nil, fmt.Errorf("factorgraph: interRobotModel.H: %w", ErrDimensionMismatch)
	}
	_, _, dist := m.interRobotGeometry(x)
	h := m.rSafety - dist
	if h < 0 {
		h = 0
	}

	return []float64{h}, nil
}

// J is the subgradient of H: zero outside the safety radius, and the unit
// vector from j to i (scaled by -1) inside it. At dist == 0 (coincident
// robots) the direction is taken along the x-axis to avoid a divide by
// zero; the hinge value is still r_safety, the maximum possible push.
func (m *interRobotModel) J(x []float64) (*matrix.Dense, error) {
	if len(x) != 2*VariableDim {
		return nil, fmt.Errorf("factorgraph: interRobotModel.J: %w", ErrDimensionMismatch)
	}
	j, err := matrix.NewZeros(1, 2*VariableDim)
	if err != nil {
		return nil, fmt.Errorf("factorgraph: interRobotModel.J: %w", err)
	}
	dx, dy, dist := m.interRobotGeometry(x)
	if dist >= m.rSafety {
		return j, nil
	}
	ux, uy := 1.0, 0.0
	if dist > 1e-9 {
		ux, uy = dx/dist, dy/dist
	}
	entries := [][2]float64{{0, -ux}, {1, -uy}, {VariableDim + 0, ux}, {VariableDim + 1, uy}}
	for _, e := range entries {
		if err := j.Set(0, int(e[0]), e[1]); err != nil {
			return nil, fmt.Errorf("factorgraph: interRobotModel.J: %w", err)
		}
	}

	return j, nil
}

func (m *interRobotModel) Z() []float64                    { return []float64{0} }
func (m *interRobotModel) LambdaM() *matrix.Dense           { return m.lambdaM.Clone().(*matrix.Dense) }
func (m *interRobotModel) RelinearizationThreshold() float64 { return m.threshold }

// trackingModel implements the unary pull toward the nearest point on the
// robot's current path. The nearest point is treated as fixed
// between relinearizations, so its Jacobian is the plain position
// projection; the pull direction updates whenever the factor relinearizes.
type trackingModel struct {
	path      sdf.PathSampler
	lambdaM   *matrix.Dense
	threshold float64
}

// NewTrackingModel builds a tracking model reading the nearest path point
// from path, with measurement noise sigma.
func NewTrackingModel(path sdf.PathSampler, sigma, relinThreshold float64) (Model, error) {
	if path == nil || sigma <= 0 {
		return nil, fmt.Errorf("factorgraph: NewTrackingModel: %w", ErrGraphInvariant)
	}
	lambdaM, err := identityScaled(2, 1/(sigma*sigma))
	if err != nil {
		return nil, fmt.Errorf("factorgraph: NewTrackingModel: %w", err)
	}

	return &trackingModel{path: path, lambdaM: lambdaM, threshold: relinThreshold}, nil
}

func (m *trackingModel) OutputDim() int { return 2 }

// H returns x.xy - nearest_on_path(x.xy).
func (m *trackingModel) H(x []float64) ([]float64, error) {
	if len(x) != VariableDim {
		return nil, fmt.Errorf("factorgraph: trackingModel.H: %w", ErrDimensionMismatch)
	}
	nx, ny, err := m.path.NearestPoint(x[0], x[1])
	if err != nil {
		return nil, fmt.Errorf("factorgraph: trackingModel.H: %w", err)
	}

	return []float64{x[0] - nx, x[1] - ny}, nil
}

func (m *trackingModel) J(x []float64) (*matrix.Dense, error) {
	if len(x) != VariableDim {
		return nil, fmt.Errorf("factorgraph: trackingModel.J: %w", ErrDimensionMismatch)
	}
	j, err := matrix.NewZeros(2, VariableDim)
	if err != nil {
		return nil, fmt.Errorf("factorgraph: trackingModel.J: %w", err)
	}
	if err := j.Set(0, 0, 1); err != nil {
		return nil, fmt.Errorf("factorgraph: trackingModel.J: %w", err)
	}
	if err := j.Set(1, 1, 1); err != nil {
		return nil, fmt.Errorf("factorgraph: trackingModel.J: %w", err)
	}

	return j, nil
}

func (m *trackingModel) Z() []float64                    { return []float64{0, 0} }
func (m *trackingModel) LambdaM() *matrix.Dense           { return m.lambdaM.Clone().(*matrix.Dense) }
func (m *trackingModel) RelinearizationThreshold() float64 { return m.threshold }
