package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/gbpplanner/schedule"
)

// Option mutates a Config during resolution. Options apply over Default()
// in order; the result is validated once at the end, so an option may
// temporarily leave the Config inconsistent.
type Option func(*Config)

// WithIterationSchedule sets the per-tick iteration counts and policy.
func WithIterationSchedule(internal, external int, policy schedule.Policy) Option {
	return func(c *Config) {
		c.GBP.IterationSchedule.Internal = internal
		c.GBP.IterationSchedule.External = external
		c.GBP.IterationSchedule.Schedule = policy
		c.GBP.IterationSchedule.ScheduleName = policy.String()
	}
}

// WithSigmas sets the four per-kind measurement noises.
func WithSigmas(dynamics, interRobot, obstacle, tracking float64) Option {
	return func(c *Config) {
		c.GBP.SigmaFactorDynamics = dynamics
		c.GBP.SigmaFactorInterRobot = interRobot
		c.GBP.SigmaFactorObstacle = obstacle
		c.GBP.SigmaFactorTracking = tracking
	}
}

// WithFactorsEnabled sets the per-kind enable flags.
func WithFactorsEnabled(enabled FactorsEnabled) Option {
	return func(c *Config) { c.GBP.FactorsEnabled = enabled }
}

// WithLookahead sets the variable count, spacing multiple, and planning
// horizon together, since they jointly determine variable placement.
func WithLookahead(variables, multiple int, horizonSeconds float64) Option {
	return func(c *Config) {
		c.GBP.Variables = variables
		c.GBP.LookaheadMultiple = multiple
		c.Robot.PlanningHorizon = horizonSeconds
	}
}

// WithTargetSpeed sets the robot cruise speed in m/s.
func WithTargetSpeed(speed float64) Option {
	return func(c *Config) { c.Robot.TargetSpeed = speed }
}

// WithSafetyMultiplier sets the inter-robot safety-distance multiplier.
func WithSafetyMultiplier(m float64) Option {
	return func(c *Config) { c.Robot.InterRobotSafetyDistanceMultiplier = m }
}

// WithCommunication sets the antenna radius and per-message failure rate.
func WithCommunication(radius, failureRate float64) Option {
	return func(c *Config) {
		c.Robot.Communication.Radius = radius
		c.Robot.Communication.FailureRate = failureRate
	}
}

// WithSimulation sets run pacing and the PRNG seed.
func WithSimulation(maxTime, timeScale float64, seed uint64) Option {
	return func(c *Config) {
		c.Simulation.MaxTime = maxTime
		c.Simulation.TimeScale = timeScale
		c.Simulation.PRNGSeed = seed
	}
}

// WithPauseOnSpawn sets whether the simulation pauses when a robot spawns.
func WithPauseOnSpawn(pause bool) Option {
	return func(c *Config) { c.Simulation.PauseOnSpawn = pause }
}

// New resolves Default() through opts and validates the result.
func New(opts ...Option) (Config, error) {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// FromJSON decodes a Config from its JSON form (the same shape DumpJSON
// writes) over Default(), then validates. Unknown fields are rejected so a
// typoed option name fails loudly instead of silently using the default.
func FromJSON(data []byte) (Config, error) {
	c := Default()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("config: FromJSON: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// DumpJSON renders the Config in its canonical indented JSON form.
func (c Config) DumpJSON() ([]byte, error) {
	out, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("config: DumpJSON: %w", err)
	}

	return out, nil
}
