package robotplanner

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gbpplanner/config"
	"github.com/katalvlaran/gbpplanner/factorgraph"
	"github.com/katalvlaran/gbpplanner/schedule"
	"github.com/katalvlaran/gbpplanner/sdf"
	"github.com/katalvlaran/gbpplanner/units"
)

// Prior precisions and per-kind relinearization thresholds. The clamp
// precision makes the current-state variable effectively immovable; the
// horizon precision is loose enough that message passing can still bend
// the endpoint around obstacles.
const (
	clampPrecision   = 1e6
	horizonPrecision = 0.1
	interpPrecision  = 0.01

	relinThresholdDynamics   = 0.1
	relinThresholdObstacle   = 0.01
	relinThresholdInterRobot = 0.01
	relinThresholdTracking   = 0.05
)

// Environment bundles the collaborators the obstacle and tracking factors
// sample, plus the two radii the planner reads from the world.
type Environment struct {
	Field       sdf.Sampler
	Path        sdf.PathSampler
	RobotRadius float64
	GoalRadius  float64
}

// State is a robot's planar kinematic state.
type State struct {
	X, Y   float64
	VX, VY float64
}

func (s State) vector() []float64 { return []float64{s.X, s.Y, s.VX, s.VY} }

// Planner owns one robot's factor graph and runs its per-tick planning
// loop. All mutation happens through the Begin/Run/Deliver/End methods,
// called by a single orchestrator goroutine per tick.
type Planner struct {
	id  factorgraph.FactorGraphID
	cfg config.Config
	env Environment

	graph *factorgraph.FactorGraph
	vars  []factorgraph.VariableID

	dynamicsFactors []factorgraph.FactorID
	obstacleFactors []factorgraph.FactorID
	trackingFactors []factorgraph.FactorID

	interModel factorgraph.Model
	peerLinks  map[factorgraph.FactorGraphID][]factorgraph.FactorID

	waypoints    units.MinLenVec[sdf.Point]
	nextWaypoint int

	state   State
	spacing float64
	entries []schedule.Entry
}

// New builds a planner with cfg.GBP.Variables lookahead variables chained
// by dynamics factors, plus an obstacle and a tracking factor on every
// future variable. cfg must already have passed Validate.
func New(id factorgraph.FactorGraphID, cfg config.Config, env Environment, start State, waypoints []sdf.Point) (*Planner, error) {
	if env.Field == nil || env.Path == nil {
		return nil, fmt.Errorf("robotplanner: New: %w", ErrNilEnvironment)
	}
	if len(waypoints) == 0 {
		return nil, fmt.Errorf("robotplanner: New: %w", ErrTooFewWaypoints)
	}
	wps, err := units.NewMinLenVec(waypoints, 1)
	if err != nil {
		return nil, fmt.Errorf("robotplanner: New: %w", err)
	}

	n := cfg.GBP.Variables
	spacing := cfg.Robot.PlanningHorizon / float64(n-1) * float64(cfg.GBP.LookaheadMultiple)

	entries, err := schedule.Build(cfg.GBP.IterationSchedule.Schedule, schedule.Params{
		Internal: cfg.GBP.IterationSchedule.Internal,
		External: cfg.GBP.IterationSchedule.External,
	})
	if err != nil {
		return nil, fmt.Errorf("robotplanner: New: %w", err)
	}

	p := &Planner{
		id:        id,
		cfg:       cfg,
		env:       env,
		graph:     factorgraph.New(id),
		peerLinks: make(map[factorgraph.FactorGraphID][]factorgraph.FactorID),
		waypoints: wps,
		state:     start,
		spacing:   spacing,
		entries:   entries,
	}

	for i := 0; i < n; i++ {
		vid, err := p.graph.AddVariable()
		if err != nil {
			return nil, fmt.Errorf("robotplanner: New: %w", err)
		}
		p.vars = append(p.vars, vid)
	}

	dynModel, err := factorgraph.NewDynamicsModel(spacing, cfg.GBP.SigmaFactorDynamics, relinThresholdDynamics)
	if err != nil {
		return nil, fmt.Errorf("robotplanner: New: %w", err)
	}
	obsModel, err := factorgraph.NewObstacleModel(env.Field, env.RobotRadius, cfg.GBP.SigmaFactorObstacle, relinThresholdObstacle)
	if err != nil {
		return nil, fmt.Errorf("robotplanner: New: %w", err)
	}
	trackModel, err := factorgraph.NewTrackingModel(env.Path, cfg.GBP.SigmaFactorTracking, relinThresholdTracking)
	if err != nil {
		return nil, fmt.Errorf("robotplanner: New: %w", err)
	}
	rSafety := cfg.Robot.InterRobotSafetyDistanceMultiplier * env.RobotRadius
	p.interModel, err = factorgraph.NewInterRobotModel(rSafety, cfg.GBP.SigmaFactorInterRobot, relinThresholdInterRobot)
	if err != nil {
		return nil, fmt.Errorf("robotplanner: New: %w", err)
	}

	for i := 0; i < n-1; i++ {
		fid, err := p.graph.AddDynamicsFactor(p.vars[i], p.vars[i+1], dynModel)
		if err != nil {
			return nil, fmt.Errorf("robotplanner: New: %w", err)
		}
		p.dynamicsFactors = append(p.dynamicsFactors, fid)
	}
	// The current-state variable is clamped, so pushing it around with
	// obstacle or tracking information would be wasted work.
	for i := 1; i < n; i++ {
		ofid, err := p.graph.AddObstacleFactor(p.vars[i], obsModel)
		if err != nil {
			return nil, fmt.Errorf("robotplanner: New: %w", err)
		}
		p.obstacleFactors = append(p.obstacleFactors, ofid)
		tfid, err := p.graph.AddTrackingFactor(p.vars[i], trackModel)
		if err != nil {
			return nil, fmt.Errorf("robotplanner: New: %w", err)
		}
		p.trackingFactors = append(p.trackingFactors, tfid)
	}

	p.applyEnableFlags()

	return p, nil
}

// ID returns the planner's graph handle.
func (p *Planner) ID() factorgraph.FactorGraphID { return p.id }

// Graph exposes the underlying factor graph, for snapshotting and export.
func (p *Planner) Graph() *factorgraph.FactorGraph { return p.graph }

// State returns the robot's current kinematic state.
func (p *Planner) State() State { return p.state }

// Schedule returns a copy of the per-tick iteration schedule.
func (p *Planner) Schedule() []schedule.Entry {
	out := make([]schedule.Entry, len(p.entries))
	copy(out, p.entries)

	return out
}

// NextWaypoint returns the waypoint the robot is currently heading for.
func (p *Planner) NextWaypoint() sdf.Point { return p.waypoints.At(p.nextWaypoint) }

// GoalReached reports whether the robot is within the goal radius of its
// final waypoint.
func (p *Planner) GoalReached() bool {
	last := p.waypoints.Last()

	return math.Hypot(p.state.X-last.X, p.state.Y-last.Y) <= p.env.GoalRadius
}

func (p *Planner) applyEnableFlags() {
	flags := p.cfg.GBP.FactorsEnabled
	setAll := func(ids []factorgraph.FactorID, enabled bool) {
		for _, id := range ids {
			if f, ok := p.graph.Factor(id); ok {
				f.SetEnabled(enabled)
			}
		}
	}
	setAll(p.dynamicsFactors, flags.Dynamic)
	setAll(p.obstacleFactors, flags.Obstacle)
	// Tracking deactivates once the robot is inside the goal radius of
	// its final waypoint, independent of the user flag.
	setAll(p.trackingFactors, flags.Tracking && !p.GoalReached())
	for _, ids := range p.peerLinks {
		setAll(ids, flags.InterRobot)
	}
}

// SetConfig swaps in a new validated configuration. Enable flags and the
// iteration schedule apply immediately; variable placement picks up the
// new speed and spacing from the next BeginTick. The variable count and
// the factor models (noises, dynamics step) are fixed at construction.
func (p *Planner) SetConfig(cfg config.Config) error {
	entries, err := schedule.Build(cfg.GBP.IterationSchedule.Schedule, schedule.Params{
		Internal: cfg.GBP.IterationSchedule.Internal,
		External: cfg.GBP.IterationSchedule.External,
	})
	if err != nil {
		return fmt.Errorf("robotplanner: SetConfig: %w", err)
	}
	p.cfg = cfg
	p.entries = entries
	p.spacing = cfg.Robot.PlanningHorizon / float64(len(p.vars)-1) * float64(cfg.GBP.LookaheadMultiple)
	p.applyEnableFlags()

	return nil
}

// BeginTick advances the waypoint index and re-seats every lookahead
// variable along the straight segment from the current position toward the
// next waypoint, under the constant-velocity assumption. Variable 0 is
// clamped to the current state; the horizon endpoint gets a loose prior
// toward the waypoint; everything between gets only a very weak prior at
// its interpolated pose and is shaped by message passing.
func (p *Planner) BeginTick() error {
	wp := p.waypoints.At(p.nextWaypoint)
	if math.Hypot(p.state.X-wp.X, p.state.Y-wp.Y) <= p.env.GoalRadius && p.nextWaypoint < p.waypoints.Len()-1 {
		p.nextWaypoint++
		wp = p.waypoints.At(p.nextWaypoint)
	}

	dx, dy := wp.X-p.state.X, wp.Y-p.state.Y
	dist := math.Hypot(dx, dy)
	ux, uy := 0.0, 0.0
	if dist > 1e-9 {
		ux, uy = dx/dist, dy/dist
	}
	speed := p.cfg.Robot.TargetSpeed
	vx, vy := ux*speed, uy*speed

	for k, vid := range p.vars {
		v, ok := p.graph.Variable(vid)
		if !ok {
			return fmt.Errorf("robotplanner: BeginTick: %w", factorgraph.ErrVariableNotFound)
		}
		t := float64(k) * p.spacing
		px, py := p.state.X+vx*t, p.state.Y+vy*t
		pvx, pvy := vx, vy
		if travel := speed * t; travel >= dist {
			// Do not plan past the waypoint; park the tail of the
			// horizon on it.
			px, py = wp.X, wp.Y
			pvx, pvy = 0, 0
		}

		switch k {
		case 0:
			if err := v.ClampTo(p.state.vector(), clampPrecision); err != nil {
				return fmt.Errorf("robotplanner: BeginTick: %w", err)
			}
		case len(p.vars) - 1:
			if err := v.ClampTo([]float64{px, py, pvx, pvy}, horizonPrecision); err != nil {
				return fmt.Errorf("robotplanner: BeginTick: %w", err)
			}
		default:
			// Intermediate variables start from a very weak prior at the
			// interpolated pose: enough information to linearize against,
			// weak enough for message passing to move them freely.
			if err := v.ClampTo([]float64{px, py, pvx, pvy}, interpPrecision); err != nil {
				return fmt.Errorf("robotplanner: BeginTick: %w", err)
			}
		}
	}

	p.applyEnableFlags()

	return nil
}

// RunInternal executes one internal GBP sweep.
func (p *Planner) RunInternal() error { return p.graph.InternalIteration() }

// RunExternal executes one external GBP sweep and returns the messages
// bound for peer graphs, for the comms layer to filter and deliver.
func (p *Planner) RunExternal() ([]factorgraph.OutgoingMessage, error) {
	return p.graph.ExternalIteration()
}

// Deliver deposits one peer-produced message into the matching local
// inter-robot factor's inbox.
func (p *Planner) Deliver(msg factorgraph.OutgoingMessage) error {
	return p.graph.DeliverExternal(msg)
}

// EndTick reads the first future variable's belief as the next control
// target and integrates the robot's state one dt toward it.
func (p *Planner) EndTick(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("robotplanner: EndTick: %w", ErrBadTimeStep)
	}
	v, ok := p.graph.Variable(p.vars[1])
	if !ok {
		return fmt.Errorf("robotplanner: EndTick: %w", factorgraph.ErrVariableNotFound)
	}
	mu, err := v.Mean()
	if err != nil {
		return fmt.Errorf("robotplanner: EndTick: %w", err)
	}

	// Steer toward the planned next state: adopt its velocity, stepping
	// the position forward by one dt of it.
	p.state.VX, p.state.VY = mu[2], mu[3]
	p.state.X += p.state.VX * dt
	p.state.Y += p.state.VY * dt

	return nil
}

// ConnectPeer creates (or reactivates) the matched inter-robot factors
// linking every future variable of this graph to the same-indexed variable
// of peer. Both planners are built from the same configuration, so the
// same index addresses the same lookahead offset on either side.
func (p *Planner) ConnectPeer(peer factorgraph.FactorGraphID) error {
	if ids, ok := p.peerLinks[peer]; ok {
		for _, id := range ids {
			if err := p.graph.SetFactorActive(id, true); err != nil {
				return fmt.Errorf("robotplanner: ConnectPeer: %w", err)
			}
		}

		return nil
	}

	ids := make([]factorgraph.FactorID, 0, len(p.vars)-1)
	for k := 1; k < len(p.vars); k++ {
		fid, err := p.graph.AddInterRobotFactor(p.vars[k], peer, p.vars[k], p.interModel)
		if err != nil {
			return fmt.Errorf("robotplanner: ConnectPeer: %w", err)
		}
		ids = append(ids, fid)
	}
	p.peerLinks[peer] = ids
	if !p.cfg.GBP.FactorsEnabled.InterRobot {
		p.applyEnableFlags()
	}

	return nil
}

// DeactivatePeer marks the peer's factors inactive; they stay in the graph
// emitting identity messages until the peer is definitively lost.
func (p *Planner) DeactivatePeer(peer factorgraph.FactorGraphID) error {
	ids, ok := p.peerLinks[peer]
	if !ok {
		return fmt.Errorf("robotplanner: DeactivatePeer: %w", ErrUnknownPeer)
	}
	for _, id := range ids {
		if err := p.graph.SetFactorActive(id, false); err != nil {
			return fmt.Errorf("robotplanner: DeactivatePeer: %w", err)
		}
	}

	return nil
}

// DisconnectPeer removes the peer's factors outright, for when the peer
// robot despawns.
func (p *Planner) DisconnectPeer(peer factorgraph.FactorGraphID) error {
	ids, ok := p.peerLinks[peer]
	if !ok {
		return fmt.Errorf("robotplanner: DisconnectPeer: %w", ErrUnknownPeer)
	}
	for _, id := range ids {
		if err := p.graph.RemoveFactor(id); err != nil {
			return fmt.Errorf("robotplanner: DisconnectPeer: %w", err)
		}
	}
	delete(p.peerLinks, peer)

	return nil
}

// Peers returns the graphs this planner currently holds links to.
func (p *Planner) Peers() []factorgraph.FactorGraphID {
	out := make([]factorgraph.FactorGraphID, 0, len(p.peerLinks))
	for peer := range p.peerLinks {
		out = append(out, peer)
	}

	return out
}
