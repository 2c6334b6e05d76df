package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserGraph_AddEdgeTracksObservableCount(t *testing.T) {
	g := NewUserGraph()
	g.AddEdge(0, 1, []int{2}, 1.0, 0.1)
	assert.Equal(t, 3, g.NumObservables)
	assert.Equal(t, 2, g.GetNumNodes())
}

func TestUserGraph_SetBoundaryMarksNodes(t *testing.T) {
	g := NewUserGraph()
	g.AddEdge(0, 1, nil, 1.0, 0.1)
	g.SetBoundary([]int{1})
	assert.True(t, g.IsBoundaryNode(1))
	assert.False(t, g.IsBoundaryNode(0))
	assert.Equal(t, 1, g.GetNumDetectors())
}

func TestUserGraph_ToMatchingGraphIntegerWeightsUnscaled(t *testing.T) {
	g := NewUserGraph()
	g.AddEdge(0, 1, []int{0}, 3.0, 0.1)

	mg := g.ToMatchingGraph(NumDistinctWeights)
	require.Len(t, mg.Nodes[0].Neighbors, 1)
	assert.EqualValues(t, 6, mg.Nodes[0].NeighborWeights[0])
	assert.InDelta(t, 2.0, mg.NormalisingConstant, 1e-9)
}

func TestUserGraph_ToMatchingGraphBoundaryEdgeViaSetBoundary(t *testing.T) {
	g := NewUserGraph()
	g.AddEdge(0, 1, nil, 4.0, 0.1)
	g.SetBoundary([]int{1})

	mg := g.ToMatchingGraph(NumDistinctWeights)
	require.Len(t, mg.Nodes[0].Neighbors, 1)
	assert.False(t, mg.Nodes[0].Neighbors[0].Valid())
}

func TestUserGraph_HandleErrorRoutesByDetectorCount(t *testing.T) {
	g := NewUserGraph()
	g.HandleError(0.1, []int{0, 1}, []int{0})
	g.HandleError(0.2, []int{2}, nil)

	require.Len(t, g.Edges, 2)
	assert.True(t, g.Edges[0].HasNode2)
	assert.False(t, g.Edges[1].HasNode2)
}

func TestUserGraph_NonIntegralWeightsAreNormalised(t *testing.T) {
	g := NewUserGraph()
	g.AddEdge(0, 1, nil, 1.5, 0.1)

	mg := g.ToMatchingGraph(NumDistinctWeights)
	assert.InDelta(t, 22369620.0, mg.NormalisingConstant, 1e-6)
}
