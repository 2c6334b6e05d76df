package matchgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qecmatch/ids"
)

func TestGraph_AddEdgeIsSymmetric(t *testing.T) {
	g := New(3, 2)
	g.AddEdge(0, 1, 10, []int{0})

	require.Len(t, g.Nodes[0].Neighbors, 1)
	require.Len(t, g.Nodes[1].Neighbors, 1)
	assert.Equal(t, ids.NodeIndex(1), g.Nodes[0].Neighbors[0])
	assert.Equal(t, ids.NodeIndex(0), g.Nodes[1].Neighbors[0])
	assert.Equal(t, ids.Weight(10), g.Nodes[0].NeighborWeights[0])
	assert.Equal(t, ids.ObsMask(1), g.Nodes[0].NeighborObservables[0])
	assert.Equal(t, ids.ObsMask(1), g.Nodes[1].NeighborObservables[0])
}

func TestGraph_AddEdgeSelfLoopSkipsAdjacency(t *testing.T) {
	g := New(2, 1)
	g.AddEdge(0, 0, -5, []int{0})

	assert.Empty(t, g.Nodes[0].Neighbors)
	// Fixup still applies: obs toggled once, detection event toggled
	// twice at the same index (self-cancels), sum accumulates.
	_, obsSet := g.NegativeWeightObservables[0]
	assert.True(t, obsSet)
	assert.Empty(t, g.NegativeWeightDetectionEvents)
	assert.EqualValues(t, -5, g.NegativeWeightSum)
}

func TestGraph_AddEdgeNegativeWeightFixup(t *testing.T) {
	g := New(2, 1)
	g.AddEdge(0, 1, -3, []int{0})

	assert.Equal(t, ids.Weight(3), g.Nodes[0].NeighborWeights[0])
	_, uToggled := g.NegativeWeightDetectionEvents[0]
	_, vToggled := g.NegativeWeightDetectionEvents[1]
	assert.True(t, uToggled)
	assert.True(t, vToggled)
	assert.EqualValues(t, -3, g.NegativeWeightSum)
	assert.EqualValues(t, 1, g.NegativeWeightObsMask)
}

func TestGraph_AddBoundaryEdge(t *testing.T) {
	g := New(1, 0)
	g.AddBoundaryEdge(0, 7, nil)

	require.Len(t, g.Nodes[0].Neighbors, 1)
	assert.Equal(t, ids.Boundary, g.Nodes[0].Neighbors[0])
	assert.Equal(t, ids.Weight(7), g.Nodes[0].NeighborWeights[0])
}

func TestGraph_IndexOfNeighbor(t *testing.T) {
	g := New(3, 0)
	g.AddEdge(0, 1, 1, nil)
	g.AddEdge(0, 2, 1, nil)

	assert.Equal(t, 0, g.IndexOfNeighbor(0, 1))
	assert.Equal(t, 1, g.IndexOfNeighbor(0, 2))
	assert.Panics(t, func() { g.IndexOfNeighbor(1, ids.NodeIndex(2)) })
}

func TestDetectorNode_HasSameOwnerAs(t *testing.T) {
	a := NewDetectorNode()
	b := NewDetectorNode()
	assert.False(t, a.HasSameOwnerAs(&b))

	a.RegionThatArrivedTop = 5
	b.RegionThatArrivedTop = 5
	assert.True(t, a.HasSameOwnerAs(&b))
}

func TestGraph_Reset(t *testing.T) {
	g := New(1, 0)
	g.Nodes[0].RadiusOfArrival = 42
	g.Reset()
	assert.EqualValues(t, 0, g.Nodes[0].RadiusOfArrival)
}
