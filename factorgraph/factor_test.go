package factorgraph_test

import (
	"testing"

	"github.com/katalvlaran/gbpplanner/factorgraph"
	"github.com/katalvlaran/gbpplanner/message"
	"github.com/stretchr/testify/require"
)

func TestFactor_InactiveInterRobotEmitsIdentity(t *testing.T) {
	g := factorgraph.New(0)
	v0, err := g.AddVariable()
	require.NoError(t, err)
	variable0, _ := g.Variable(v0)
	require.NoError(t, variable0.ClampTo([]float64{0, 0, 0, 0}, 1e6))

	model, err := factorgraph.NewInterRobotModel(5.0, 0.1, 0.01)
	require.NoError(t, err)
	fid, err := g.AddInterRobotFactor(v0, 1, 0, model)
	require.NoError(t, err)

	f, ok := g.Factor(fid)
	require.True(t, ok)
	require.NoError(t, f.SetActive(false))

	out, err := g.ExternalIteration()
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.True(t, out[0].Msg.IsEmpty())

	variable, _ := g.Variable(v0)
	belief, err := variable.Belief()
	require.NoError(t, err)
	require.Equal(t, variable.Prior().Eta(), belief.Eta())
	require.Equal(t, variable.Prior().Lambda(), belief.Lambda())
}

func TestFactor_ReceiveAtRejectsOutOfRangeSlot(t *testing.T) {
	g := factorgraph.New(0)
	v0, err := g.AddVariable()
	require.NoError(t, err)
	model, err := factorgraph.NewObstacleModel(fakeSampler{value: -1}, 0.5, 0.1, 0.1)
	require.NoError(t, err)
	fid, err := g.AddObstacleFactor(v0, model)
	require.NoError(t, err)
	f, _ := g.Factor(fid)

	err = f.ReceiveAt(5, message.Empty(factorgraph.VariableDim))
	require.Error(t, err)
}

func TestFactor_MessageCountersAdvance(t *testing.T) {
	g := factorgraph.New(0)
	v0, err := g.AddVariable()
	require.NoError(t, err)
	variable, _ := g.Variable(v0)
	require.NoError(t, variable.ClampTo([]float64{0, 0, 0, 0}, 1e6))

	model, err := factorgraph.NewObstacleModel(fakeSampler{value: -1, gx: 1}, 0.5, 0.1, 0.1)
	require.NoError(t, err)
	fid, err := g.AddObstacleFactor(v0, model)
	require.NoError(t, err)

	require.NoError(t, g.InternalIteration())

	f, _ := g.Factor(fid)
	require.Equal(t, 1, f.MessagesReceived())
	require.Equal(t, 1, f.MessagesSent())

	f.ResetMessageCount()
	require.Equal(t, 0, f.MessagesReceived())
	require.Equal(t, 0, f.MessagesSent())
}
