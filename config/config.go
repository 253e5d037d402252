package config

import (
	"fmt"

	"github.com/katalvlaran/gbpplanner/schedule"
	"github.com/katalvlaran/gbpplanner/units"
)

// Defaults - single source of truth for zero-option behavior. Every
// constant here must agree with what Default() builds.
const (
	// DefaultScheduleInternal is the number of internal GBP iterations
	// per tick.
	DefaultScheduleInternal = 10

	// DefaultScheduleExternal is the number of external (inter-robot) GBP
	// iterations per tick.
	DefaultScheduleExternal = 10

	// DefaultSchedulePolicy interleaves internal and external iterations
	// uniformly across the tick.
	DefaultSchedulePolicy = schedule.InterleaveEvenly

	// DefaultSigmaDynamics is the dynamics-factor measurement noise.
	DefaultSigmaDynamics = 0.1

	// DefaultSigmaInterRobot is the inter-robot-factor measurement noise.
	DefaultSigmaInterRobot = 0.005

	// DefaultSigmaObstacle is the obstacle-factor measurement noise.
	DefaultSigmaObstacle = 0.005

	// DefaultSigmaTracking is the tracking-factor measurement noise.
	DefaultSigmaTracking = 0.15

	// DefaultLookaheadMultiple stretches the spacing between successive
	// lookahead variables. Bounds: [MinLookaheadMultiple, MaxLookaheadMultiple].
	DefaultLookaheadMultiple = 3
	MinLookaheadMultiple     = 1
	MaxLookaheadMultiple     = 5

	// DefaultVariables is the number of lookahead variables per robot,
	// current state included. Must be at least MinVariables.
	DefaultVariables = 10
	MinVariables     = 2

	// DefaultPlanningHorizon is the lookahead window in seconds.
	DefaultPlanningHorizon = 5.0

	// DefaultTargetSpeed is the robot's cruise speed in m/s.
	DefaultTargetSpeed = 4.0

	// DefaultSafetyMultiplier scales robot radius into the inter-robot
	// safety distance. Must be at least MinSafetyMultiplier.
	DefaultSafetyMultiplier = 2.2
	MinSafetyMultiplier     = 1.0

	// DefaultCommsRadius is the antenna range in meters.
	DefaultCommsRadius = 20.0

	// DefaultFailureRate is the per-message Bernoulli drop probability.
	DefaultFailureRate = 0.0

	// DefaultMaxTime caps a run's simulated seconds (0 means unbounded).
	DefaultMaxTime = 0.0

	// DefaultTimeScale multiplies wall-clock dt into simulated dt.
	// Bounds: [MinTimeScale, MaxTimeScale].
	DefaultTimeScale = 1.0
	MinTimeScale     = 0.1
	MaxTimeScale     = 5.0

	// DefaultPRNGSeed seeds the radio-loss source.
	DefaultPRNGSeed = 0

	// DefaultPauseOnSpawn keeps the simulation running when robots spawn.
	DefaultPauseOnSpawn = false
)

// IterationSchedule holds the per-tick GBP iteration counts and the policy
// that interleaves them.
type IterationSchedule struct {
	Internal int             `json:"internal"`
	External int             `json:"external"`
	Schedule schedule.Policy `json:"-"`

	// ScheduleName mirrors Schedule for serialization; resolved back into
	// Schedule by Validate.
	ScheduleName string `json:"schedule"`
}

// FactorsEnabled toggles whole categories of factors at runtime.
type FactorsEnabled struct {
	Dynamic    bool `json:"dynamic"`
	InterRobot bool `json:"interrobot"`
	Obstacle   bool `json:"obstacle"`
	Tracking   bool `json:"tracking"`
}

// GBP groups the factor-graph options.
type GBP struct {
	IterationSchedule     IterationSchedule `json:"iteration_schedule"`
	SigmaFactorDynamics   float64           `json:"sigma_factor_dynamics"`
	SigmaFactorInterRobot float64           `json:"sigma_factor_interrobot"`
	SigmaFactorObstacle   float64           `json:"sigma_factor_obstacle"`
	SigmaFactorTracking   float64           `json:"sigma_factor_tracking"`
	FactorsEnabled        FactorsEnabled    `json:"factors_enabled"`
	LookaheadMultiple     int               `json:"lookahead_multiple"`
	Variables             int               `json:"variables"`
}

// Communication groups the radio options.
type Communication struct {
	Radius      float64 `json:"radius"`
	FailureRate float64 `json:"failure_rate"`
}

// Robot groups the per-robot planning options.
type Robot struct {
	PlanningHorizon                    float64       `json:"planning_horizon"`
	TargetSpeed                        float64       `json:"target_speed"`
	InterRobotSafetyDistanceMultiplier float64       `json:"inter_robot_safety_distance_multiplier"`
	Communication                      Communication `json:"communication"`
}

// Simulation groups run pacing and reproducibility options.
type Simulation struct {
	MaxTime      float64 `json:"max_time"`
	TimeScale    float64 `json:"time_scale"`
	PRNGSeed     uint64  `json:"prng_seed"`
	PauseOnSpawn bool    `json:"pause_on_spawn"`
}

// Config is the resolved, validated configuration the core consumes. Treat
// it as immutable once resolved; pass it by value.
type Config struct {
	GBP        GBP        `json:"gbp"`
	Robot      Robot      `json:"robot"`
	Simulation Simulation `json:"simulation"`
}

// Default returns the configuration every option resolution starts from.
func Default() Config {
	return Config{
		GBP: GBP{
			IterationSchedule: IterationSchedule{
				Internal:     DefaultScheduleInternal,
				External:     DefaultScheduleExternal,
				Schedule:     DefaultSchedulePolicy,
				ScheduleName: DefaultSchedulePolicy.String(),
			},
			SigmaFactorDynamics:   DefaultSigmaDynamics,
			SigmaFactorInterRobot: DefaultSigmaInterRobot,
			SigmaFactorObstacle:   DefaultSigmaObstacle,
			SigmaFactorTracking:   DefaultSigmaTracking,
			FactorsEnabled: FactorsEnabled{
				Dynamic:    true,
				InterRobot: true,
				Obstacle:   true,
				Tracking:   true,
			},
			LookaheadMultiple: DefaultLookaheadMultiple,
			Variables:         DefaultVariables,
		},
		Robot: Robot{
			PlanningHorizon:                    DefaultPlanningHorizon,
			TargetSpeed:                        DefaultTargetSpeed,
			InterRobotSafetyDistanceMultiplier: DefaultSafetyMultiplier,
			Communication: Communication{
				Radius:      DefaultCommsRadius,
				FailureRate: DefaultFailureRate,
			},
		},
		Simulation: Simulation{
			MaxTime:      DefaultMaxTime,
			TimeScale:    DefaultTimeScale,
			PRNGSeed:     DefaultPRNGSeed,
			PauseOnSpawn: DefaultPauseOnSpawn,
		},
	}
}

// ParsePolicy resolves a configuration-file policy name into its
// schedule.Policy value.
func ParsePolicy(name string) (schedule.Policy, error) {
	for _, p := range []schedule.Policy{
		schedule.SoonAsPossible,
		schedule.LateAsPossible,
		schedule.Centered,
		schedule.HalfBeginningHalfEnd,
		schedule.InterleaveEvenly,
	} {
		if p.String() == name {
			return p, nil
		}
	}

	return 0, fmt.Errorf("config: ParsePolicy(%q): %w", name, ErrUnknownPolicy)
}

// outOfRange builds the canonical field-and-bound violation error.
func outOfRange(field, bound string) error {
	return fmt.Errorf("%w: %s must be %s", ErrOutOfRange, field, bound)
}

// Validate checks every bounded field, resolves ScheduleName into the
// Schedule policy, and reports the first violation found. A Config that
// passes Validate is safe to hand to the core.
func (c *Config) Validate() error {
	if c.GBP.IterationSchedule.Internal < 0 || c.GBP.IterationSchedule.External < 0 {
		return outOfRange("gbp.iteration_schedule.{internal,external}", "non-negative")
	}
	if c.GBP.IterationSchedule.ScheduleName != "" {
		p, err := ParsePolicy(c.GBP.IterationSchedule.ScheduleName)
		if err != nil {
			return err
		}
		c.GBP.IterationSchedule.Schedule = p
	} else {
		c.GBP.IterationSchedule.ScheduleName = c.GBP.IterationSchedule.Schedule.String()
	}
	sigmas := []struct {
		name  string
		value float64
	}{
		{"gbp.sigma_factor_dynamics", c.GBP.SigmaFactorDynamics},
		{"gbp.sigma_factor_interrobot", c.GBP.SigmaFactorInterRobot},
		{"gbp.sigma_factor_obstacle", c.GBP.SigmaFactorObstacle},
		{"gbp.sigma_factor_tracking", c.GBP.SigmaFactorTracking},
	}
	for _, s := range sigmas {
		if s.value <= 0 {
			return outOfRange(s.name, "positive")
		}
	}
	if c.GBP.LookaheadMultiple < MinLookaheadMultiple || c.GBP.LookaheadMultiple > MaxLookaheadMultiple {
		return outOfRange("gbp.lookahead_multiple", fmt.Sprintf("in [%d, %d]", MinLookaheadMultiple, MaxLookaheadMultiple))
	}
	if c.GBP.Variables < MinVariables {
		return outOfRange("gbp.variables", fmt.Sprintf("at least %d", MinVariables))
	}
	if c.Robot.PlanningHorizon <= 0 {
		return outOfRange("robot.planning_horizon", "positive")
	}
	if c.Robot.TargetSpeed <= 0 {
		return outOfRange("robot.target_speed", "positive")
	}
	if c.Robot.InterRobotSafetyDistanceMultiplier < MinSafetyMultiplier {
		return outOfRange("robot.inter_robot_safety_distance_multiplier", fmt.Sprintf("at least %v", MinSafetyMultiplier))
	}
	if c.Robot.Communication.Radius <= 0 {
		return outOfRange("robot.communication.radius", "positive")
	}
	if _, err := units.NewUnitInterval(c.Robot.Communication.FailureRate); err != nil {
		return outOfRange("robot.communication.failure_rate", "in [0, 1]")
	}
	if c.Simulation.MaxTime < 0 {
		return outOfRange("simulation.max_time", "non-negative")
	}
	if c.Simulation.TimeScale < MinTimeScale || c.Simulation.TimeScale > MaxTimeScale {
		return outOfRange("simulation.time_scale", fmt.Sprintf("in [%v, %v]", MinTimeScale, MaxTimeScale))
	}

	return nil
}

// FailureRate returns robot.communication.failure_rate as the UnitInterval
// the radio layer consumes. Call only after Validate has accepted the
// Config.
func (c Config) FailureRate() units.UnitInterval {
	u, err := units.NewUnitInterval(c.Robot.Communication.FailureRate)
	if err != nil {
		panic(fmt.Sprintf("config: FailureRate on unvalidated Config: %v", err))
	}

	return u
}
