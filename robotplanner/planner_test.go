package robotplanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gbpplanner/config"
	"github.com/katalvlaran/gbpplanner/factorgraph"
	"github.com/katalvlaran/gbpplanner/robotplanner"
	"github.com/katalvlaran/gbpplanner/schedule"
	"github.com/katalvlaran/gbpplanner/sdf"
)

// openField is free space everywhere: a large positive signed distance
// with zero gradient, so obstacle factors never push.
type openField struct{}

func (openField) Sample(x, y float64) (value, gradX, gradY float64, err error) {
	return 100, 0, 0, nil
}

func testEnv(t *testing.T, waypoints []sdf.Point) robotplanner.Environment {
	t.Helper()
	path, err := sdf.NewPolyline(waypoints)
	require.NoError(t, err)

	return robotplanner.Environment{
		Field:       openField{},
		Path:        path,
		RobotRadius: 0.5,
		GoalRadius:  0.5,
	}
}

func smallConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.New(
		config.WithLookahead(5, 1, 4.0),
		config.WithTargetSpeed(2.0),
	)
	require.NoError(t, err)

	return cfg
}

func TestNew_BuildsExpectedTopology(t *testing.T) {
	cfg := smallConfig(t)
	wps := []sdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	p, err := robotplanner.New(1, cfg, testEnv(t, wps), robotplanner.State{}, wps)
	require.NoError(t, err)

	g := p.Graph()
	assert.Len(t, g.Variables(), 5)
	// 4 dynamics chains + (obstacle + tracking) on each of the 4 future
	// variables.
	assert.Len(t, g.Factors(), 4+4+4)
}

func TestNew_RejectsMissingCollaborators(t *testing.T) {
	cfg := smallConfig(t)
	wps := []sdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	env := testEnv(t, wps)
	env.Field = nil
	_, err := robotplanner.New(1, cfg, env, robotplanner.State{}, wps)
	assert.ErrorIs(t, err, robotplanner.ErrNilEnvironment)

	_, err = robotplanner.New(1, cfg, testEnv(t, wps), robotplanner.State{}, nil)
	assert.ErrorIs(t, err, robotplanner.ErrTooFewWaypoints)
}

func TestBeginTick_ClampsCurrentState(t *testing.T) {
	cfg := smallConfig(t)
	wps := []sdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	start := robotplanner.State{X: 1, Y: 2, VX: 0.5, VY: 0}
	p, err := robotplanner.New(1, cfg, testEnv(t, wps), start, wps)
	require.NoError(t, err)
	require.NoError(t, p.BeginTick())

	v, ok := p.Graph().Variable(p.Graph().Variables()[0])
	require.True(t, ok)
	mu, err := v.Mean()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, mu[0], 1e-6)
	assert.InDelta(t, 2.0, mu[1], 1e-6)
	assert.InDelta(t, 0.5, mu[2], 1e-6)
}

func TestBeginTick_AdvancesWaypointInsideGoalRadius(t *testing.T) {
	cfg := smallConfig(t)
	wps := []sdf.Point{{X: 0, Y: 0}, {X: 0.3, Y: 0}, {X: 10, Y: 0}}
	p, err := robotplanner.New(1, cfg, testEnv(t, wps), robotplanner.State{}, wps)
	require.NoError(t, err)

	assert.Equal(t, sdf.Point{X: 0, Y: 0}, p.NextWaypoint())
	require.NoError(t, p.BeginTick())
	// Both the first and second waypoints are within the goal radius;
	// advancement moves one index per tick.
	assert.Equal(t, sdf.Point{X: 0.3, Y: 0}, p.NextWaypoint())
	require.NoError(t, p.BeginTick())
	assert.Equal(t, sdf.Point{X: 10, Y: 0}, p.NextWaypoint())
}

func TestTickLoop_MovesTowardWaypoint(t *testing.T) {
	cfg := smallConfig(t)
	wps := []sdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	p, err := robotplanner.New(1, cfg, testEnv(t, wps), robotplanner.State{}, wps)
	require.NoError(t, err)

	const dt = 0.1
	for tick := 0; tick < 20; tick++ {
		require.NoError(t, p.BeginTick())
		for range p.Schedule() {
			require.NoError(t, p.RunInternal())
		}
		require.NoError(t, p.EndTick(dt))
	}

	s := p.State()
	assert.Greater(t, s.X, 1.0, "robot should make headway toward (10, 0)")
	assert.InDelta(t, 0.0, s.Y, 0.5)
	assert.Less(t, s.X, 10.0)
}

func TestEndTick_RejectsBadTimeStep(t *testing.T) {
	cfg := smallConfig(t)
	wps := []sdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	p, err := robotplanner.New(1, cfg, testEnv(t, wps), robotplanner.State{}, wps)
	require.NoError(t, err)
	assert.ErrorIs(t, p.EndTick(0), robotplanner.ErrBadTimeStep)
}

func TestSetConfig_RebuildsSchedule(t *testing.T) {
	cfg := smallConfig(t)
	wps := []sdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	p, err := robotplanner.New(1, cfg, testEnv(t, wps), robotplanner.State{}, wps)
	require.NoError(t, err)
	require.Len(t, p.Schedule(), 10)

	next, err := config.New(config.WithIterationSchedule(3, 2, schedule.SoonAsPossible))
	require.NoError(t, err)
	require.NoError(t, p.SetConfig(next))
	entries := p.Schedule()
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Internal)
	assert.True(t, entries[1].External)
	assert.False(t, entries[2].External)
}

func TestConnectPeer_CreatesMatchedFactors(t *testing.T) {
	cfg := smallConfig(t)
	wps := []sdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	p, err := robotplanner.New(1, cfg, testEnv(t, wps), robotplanner.State{}, wps)
	require.NoError(t, err)

	before := len(p.Graph().Factors())
	require.NoError(t, p.ConnectPeer(2))
	// One inter-robot factor per future variable.
	assert.Len(t, p.Graph().Factors(), before+4)
	assert.Equal(t, []factorgraph.FactorGraphID{2}, p.Peers())

	// Connecting again must not duplicate, only reactivate.
	require.NoError(t, p.ConnectPeer(2))
	assert.Len(t, p.Graph().Factors(), before+4)
}

func TestDeactivatePeer_MarksFactorsInactive(t *testing.T) {
	cfg := smallConfig(t)
	wps := []sdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	p, err := robotplanner.New(1, cfg, testEnv(t, wps), robotplanner.State{}, wps)
	require.NoError(t, err)
	require.NoError(t, p.ConnectPeer(2))
	require.NoError(t, p.DeactivatePeer(2))

	for _, fid := range p.Graph().Factors() {
		f, ok := p.Graph().Factor(fid)
		require.True(t, ok)
		if f.Kind() == factorgraph.InterRobot {
			assert.False(t, f.Active())
		}
	}

	assert.ErrorIs(t, p.DeactivatePeer(9), robotplanner.ErrUnknownPeer)
}

func TestDisconnectPeer_RemovesFactors(t *testing.T) {
	cfg := smallConfig(t)
	wps := []sdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	p, err := robotplanner.New(1, cfg, testEnv(t, wps), robotplanner.State{}, wps)
	require.NoError(t, err)

	before := len(p.Graph().Factors())
	require.NoError(t, p.ConnectPeer(2))
	require.NoError(t, p.DisconnectPeer(2))
	assert.Len(t, p.Graph().Factors(), before)
	assert.Empty(t, p.Peers())
}

func TestExternalExchange_TwoPlanners(t *testing.T) {
	cfg := smallConfig(t)
	wpsA := []sdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	wpsB := []sdf.Point{{X: 10, Y: 0.1}, {X: 0, Y: 0.1}}
	a, err := robotplanner.New(1, cfg, testEnv(t, wpsA), robotplanner.State{X: 0, Y: 0}, wpsA)
	require.NoError(t, err)
	b, err := robotplanner.New(2, cfg, testEnv(t, wpsB), robotplanner.State{X: 10, Y: 0.1}, wpsB)
	require.NoError(t, err)

	require.NoError(t, a.ConnectPeer(2))
	require.NoError(t, b.ConnectPeer(1))
	require.NoError(t, a.BeginTick())
	require.NoError(t, b.BeginTick())
	require.NoError(t, a.RunInternal())
	require.NoError(t, b.RunInternal())

	outA, err := a.RunExternal()
	require.NoError(t, err)
	require.NotEmpty(t, outA)
	for _, msg := range outA {
		assert.Equal(t, factorgraph.FactorGraphID(1), msg.FromGraph)
		assert.Equal(t, factorgraph.FactorGraphID(2), msg.ToGraph)
		require.NoError(t, b.Deliver(msg))
	}
}

func TestGoalReached_DisablesTracking(t *testing.T) {
	cfg := smallConfig(t)
	wps := []sdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	env := testEnv(t, wps)
	p, err := robotplanner.New(1, cfg, env, robotplanner.State{X: 10, Y: 0}, wps)
	require.NoError(t, err)
	require.True(t, p.GoalReached())
	require.NoError(t, p.BeginTick())

	for _, fid := range p.Graph().Factors() {
		f, ok := p.Graph().Factor(fid)
		require.True(t, ok)
		if f.Kind() == factorgraph.Tracking {
			assert.False(t, f.Enabled())
		}
	}
}
