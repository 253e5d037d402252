package orchestrator

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/gbpplanner/config"
	"github.com/katalvlaran/gbpplanner/factorgraph"
	"github.com/katalvlaran/gbpplanner/radio"
	"github.com/katalvlaran/gbpplanner/robotplanner"
	"github.com/katalvlaran/gbpplanner/sdf"
	"github.com/katalvlaran/gbpplanner/schedule"
)

// RobotID identifies one robot across the orchestrator, its planner's
// factor graph, and its radio antenna, which all share the numeric value.
type RobotID int

// Metrics is the running tally the orchestrator keeps for the metrics
// collaborator: lost messages are counted, never surfaced as errors.
type Metrics struct {
	Ticks             int
	SimTime           float64
	MessagesDelivered int
	MessagesLost      int
	MessagesOrphaned  int
}

// Orchestrator owns the loaded scenario's planners and radio network and
// advances them tick by tick.
type Orchestrator struct {
	cfg config.Config

	planners map[RobotID]*robotplanner.Planner
	order    []RobotID

	network *radio.Network
	loss    *radio.Loss

	entries []schedule.Entry
	metrics Metrics

	paused    bool
	timeScale float64
	loaded    bool
	done      bool
}

// New builds an orchestrator around a validated configuration. No scenario
// is loaded yet; Tick fails with ErrNoScenario until one is.
func New(cfg config.Config) (*Orchestrator, error) {
	entries, err := schedule.Build(cfg.GBP.IterationSchedule.Schedule, schedule.Params{
		Internal: cfg.GBP.IterationSchedule.Internal,
		External: cfg.GBP.IterationSchedule.External,
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: New: %w", err)
	}

	return &Orchestrator{
		cfg:       cfg,
		planners:  make(map[RobotID]*robotplanner.Planner),
		network:   radio.NewNetwork(),
		loss:      radio.NewLoss(cfg.Simulation.PRNGSeed, cfg.FailureRate()),
		entries:   entries,
		timeScale: cfg.Simulation.TimeScale,
	}, nil
}

// LoadScenario resets all planner and radio state and builds the world s
// describes. Robot ids are assigned 1..n in declaration order.
func (o *Orchestrator) LoadScenario(s Scenario) error {
	if err := s.validate(); err != nil {
		return err
	}
	field, err := sdf.NewGrid(s.SDF.Values, s.SDF.CellSize, s.SDF.Origin)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadScenario, err)
	}

	planners := make(map[RobotID]*robotplanner.Planner, len(s.Robots))
	order := make([]RobotID, 0, len(s.Robots))
	network := radio.NewNetwork()

	for i, spec := range s.Robots {
		id := RobotID(i + 1)
		path, err := sdf.NewPolyline(waypointsOrSegment(spec))
		if err != nil {
			return fmt.Errorf("%w: robot %d path: %v", ErrBadScenario, i, err)
		}
		env := robotplanner.Environment{
			Field:       field,
			Path:        path,
			RobotRadius: s.RobotRadius,
			GoalRadius:  s.GoalRadius,
		}
		start := robotplanner.State{X: spec.Start.X, Y: spec.Start.Y}
		p, err := robotplanner.New(factorgraph.FactorGraphID(id), o.cfg, env, start, spec.Waypoints)
		if err != nil {
			return fmt.Errorf("orchestrator: LoadScenario: %w", err)
		}
		planners[id] = p
		order = append(order, id)
		if err := network.Register(radio.AntennaID(id), o.cfg.Robot.Communication.Radius); err != nil {
			return fmt.Errorf("orchestrator: LoadScenario: %w", err)
		}
		if err := network.SetPosition(radio.AntennaID(id), start.X, start.Y); err != nil {
			return fmt.Errorf("orchestrator: LoadScenario: %w", err)
		}
	}

	o.planners = planners
	o.order = order
	o.network = network
	o.loss = radio.NewLoss(o.cfg.Simulation.PRNGSeed, o.cfg.FailureRate())
	o.metrics = Metrics{}
	o.paused = o.cfg.Simulation.PauseOnSpawn
	o.loaded = true
	o.done = false

	return nil
}

// waypointsOrSegment guarantees the tracking path has at least two points
// even for a single-waypoint robot.
func waypointsOrSegment(spec RobotSpec) []sdf.Point {
	if len(spec.Waypoints) >= 2 {
		return spec.Waypoints
	}

	return []sdf.Point{spec.Start, spec.Waypoints[0]}
}

// LoadScenarioByName resolves name against the built-in environments
// first, then against *.json files in simulationsDir (if non-empty).
func (o *Orchestrator) LoadScenarioByName(name, simulationsDir string) error {
	if s, err := BuiltinEnvironment(name); err == nil {
		return o.LoadScenario(s)
	}
	if simulationsDir != "" {
		s, err := LoadScenarioFile(simulationsDir + "/" + name + ".json")
		if err == nil {
			return o.LoadScenario(s)
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// Pause stops Tick from advancing until Resume or Step.
func (o *Orchestrator) Pause() { o.paused = true }

// Resume lifts a pause.
func (o *Orchestrator) Resume() { o.paused = false }

// Paused reports whether the simulation is paused.
func (o *Orchestrator) Paused() bool { return o.paused }

// Done reports whether the configured max simulation time was reached.
func (o *Orchestrator) Done() bool { return o.done }

// SetTimeScale adjusts the wall-clock-to-simulation time multiplier.
func (o *Orchestrator) SetTimeScale(s float64) error {
	if s < config.MinTimeScale || s > config.MaxTimeScale {
		return fmt.Errorf("%w: %v", ErrTimeScaleOutOfRange, s)
	}
	o.timeScale = s

	return nil
}

// TimeScale returns the current time multiplier.
func (o *Orchestrator) TimeScale() float64 { return o.timeScale }

// Metrics returns a copy of the running counters.
func (o *Orchestrator) Metrics() Metrics { return o.metrics }

// Robots returns the loaded robot ids in ascending order.
func (o *Orchestrator) Robots() []RobotID {
	out := make([]RobotID, len(o.order))
	copy(out, o.order)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Planner returns the planner for one robot.
func (o *Orchestrator) Planner(id RobotID) (*robotplanner.Planner, error) {
	p, ok := o.planners[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRobot, id)
	}

	return p, nil
}

// ExportGraph renders one robot's factor graph in GraphViz dot form.
func (o *Orchestrator) ExportGraph(id RobotID) (string, error) {
	p, err := o.Planner(id)
	if err != nil {
		return "", err
	}

	return factorgraph.Export(factorgraph.TakeSnapshot(p.Graph())), nil
}

// Step advances exactly one tick even while paused.
func (o *Orchestrator) Step(dt float64) error {
	wasPaused := o.paused
	o.paused = false
	err := o.Tick(dt)
	o.paused = wasPaused

	return err
}

// Tick advances the world one simulation step: it refreshes antenna
// positions, reconciles radio links into factor creation and
// (de)activation, re-seats every robot's lookahead, then walks the
// iteration schedule with all robots in lockstep. External messages are
// gathered from every robot before any delivery, filtered through the
// Bernoulli loss model, and delivered in the same iteration.
func (o *Orchestrator) Tick(dt float64) error {
	if !o.loaded {
		return ErrNoScenario
	}
	if o.paused || o.done || dt <= 0 {
		return nil
	}
	simDt := dt * o.timeScale
	if limit := o.cfg.Simulation.MaxTime; limit > 0 && o.metrics.SimTime+simDt > limit {
		o.done = true

		return nil
	}

	ids := o.Robots()
	for _, id := range ids {
		s := o.planners[id].State()
		if err := o.network.SetPosition(radio.AntennaID(id), s.X, s.Y); err != nil {
			return fmt.Errorf("orchestrator: Tick: %w", err)
		}
	}

	for _, ev := range o.network.Reconcile() {
		p := o.planners[RobotID(ev.From)]
		peer := factorgraph.FactorGraphID(ev.To)
		var err error
		switch ev.Kind {
		case radio.LinkCreated, radio.LinkReactivated:
			err = p.ConnectPeer(peer)
		case radio.LinkDeactivated:
			err = p.DeactivatePeer(peer)
		}
		if err != nil {
			return fmt.Errorf("orchestrator: Tick: %w", err)
		}
	}

	for _, id := range ids {
		if err := o.planners[id].BeginTick(); err != nil {
			return fmt.Errorf("orchestrator: Tick: %w", err)
		}
	}

	for _, entry := range o.entries {
		if entry.Internal {
			for _, id := range ids {
				if err := o.planners[id].RunInternal(); err != nil {
					return fmt.Errorf("orchestrator: Tick: %w", err)
				}
			}
		}
		if entry.External {
			var outbox []factorgraph.OutgoingMessage
			for _, id := range ids {
				msgs, err := o.planners[id].RunExternal()
				if err != nil {
					return fmt.Errorf("orchestrator: Tick: %w", err)
				}
				outbox = append(outbox, msgs...)
			}
			o.deliver(outbox)
		}
	}

	for _, id := range ids {
		if err := o.planners[id].EndTick(simDt); err != nil {
			return fmt.Errorf("orchestrator: Tick: %w", err)
		}
	}

	o.metrics.Ticks++
	o.metrics.SimTime += simDt

	return nil
}

// deliver routes one iteration's outbox through the loss filter into the
// receiving graphs. A failed lookup means the receiver retired the link
// mid-flight; the message is counted as orphaned and dropped.
func (o *Orchestrator) deliver(outbox []factorgraph.OutgoingMessage) {
	for _, msg := range outbox {
		if o.loss.ShouldDrop() {
			o.metrics.MessagesLost++

			continue
		}
		target, ok := o.planners[RobotID(msg.ToGraph)]
		if !ok {
			o.metrics.MessagesOrphaned++

			continue
		}
		if err := target.Deliver(msg); err != nil {
			o.metrics.MessagesOrphaned++

			continue
		}
		o.metrics.MessagesDelivered++
	}
}
