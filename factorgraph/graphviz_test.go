package factorgraph_test

import (
	"testing"

	"github.com/katalvlaran/gbpplanner/factorgraph"
	"github.com/stretchr/testify/require"
)

func buildSampleGraph(t *testing.T) *factorgraph.FactorGraph {
	t.Helper()
	g := factorgraph.New(7)
	v0, err := g.AddVariable()
	require.NoError(t, err)
	v1, err := g.AddVariable()
	require.NoError(t, err)

	dyn, err := factorgraph.NewDynamicsModel(1.0, 0.1, 0.1)
	require.NoError(t, err)
	_, err = g.AddDynamicsFactor(v0, v1, dyn)
	require.NoError(t, err)

	obs, err := factorgraph.NewObstacleModel(fakeSampler{value: -1}, 0.5, 0.1, 0.1)
	require.NoError(t, err)
	_, err = g.AddObstacleFactor(v0, obs)
	require.NoError(t, err)

	ir, err := factorgraph.NewInterRobotModel(1.0, 0.1, 0.1)
	require.NoError(t, err)
	_, err = g.AddInterRobotFactor(v1, 9, 3, ir)
	require.NoError(t, err)

	return g
}

func TestGraphviz_ExportParseRoundTrip(t *testing.T) {
	g := buildSampleGraph(t)
	snap := factorgraph.TakeSnapshot(g)

	dot := factorgraph.Export(snap)
	require.Contains(t, dot, "digraph factorgraph {")

	parsed, err := factorgraph.ParseDOT(dot)
	require.NoError(t, err)

	require.ElementsMatch(t, snap.Variables, parsed.Variables)
	require.Len(t, parsed.Factors, len(snap.Factors))

	byID := make(map[factorgraph.FactorID]factorgraph.FactorSnapshot)
	for _, fs := range parsed.Factors {
		byID[fs.ID] = fs
	}
	for _, want := range snap.Factors {
		got, ok := byID[want.ID]
		require.True(t, ok)
		require.Equal(t, want.Kind, got.Kind)
		require.Equal(t, want.Active, got.Active)
		require.Equal(t, want.HasPeer, got.HasPeer)
		require.ElementsMatch(t, want.LocalVariables, got.LocalVariables)
		if want.HasPeer {
			require.Equal(t, want.PeerGraph, got.PeerGraph)
			require.Equal(t, want.PeerVariable, got.PeerVariable)
		}
	}
}

func TestGraphviz_ParseRejectsMalformedLine(t *testing.T) {
	_, err := factorgraph.ParseDOT("digraph factorgraph {\n  garbage line\n}\n")
	require.Error(t, err)
}

func TestGraphviz_ParseRejectsUnknownKind(t *testing.T) {
	dot := "digraph factorgraph {\n  f0 [shape=square,color=\"#000\",kind=bogus,active=true,label=\"f0\"];\n}\n"
	_, err := factorgraph.ParseDOT(dot)
	require.Error(t, err)
}
