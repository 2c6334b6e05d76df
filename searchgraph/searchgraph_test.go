package searchgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qecmatch/ids"
)

func TestShortestPath_DirectEdge(t *testing.T) {
	g := New(2, 1)
	g.AddEdge(0, 1, 5, 1)

	p, err := g.ShortestPath(0, 1, false)
	require.NoError(t, err)
	assert.Equal(t, []ids.NodeIndex{0, 1}, p.Nodes)
	assert.EqualValues(t, 5, p.Weight)
	assert.EqualValues(t, 1, p.ObsMask)
}

func TestShortestPath_ThroughIntermediateNode(t *testing.T) {
	g := New(3, 0)
	g.AddEdge(0, 1, 1, 0)
	g.AddEdge(1, 2, 1, 0)
	g.AddEdge(0, 2, 10, 0)

	p, err := g.ShortestPath(0, 2, false)
	require.NoError(t, err)
	assert.Equal(t, []ids.NodeIndex{0, 1, 2}, p.Nodes)
	assert.EqualValues(t, 2, p.Weight)
}

func TestShortestPath_ToBoundary(t *testing.T) {
	g := New(2, 0)
	g.AddEdge(0, 1, 3, 0)
	g.AddBoundaryEdge(1, 4, 0)

	p, err := g.ShortestPath(0, -1, true)
	require.NoError(t, err)
	assert.Equal(t, []ids.NodeIndex{0, 1, ids.Boundary}, p.Nodes)
	assert.EqualValues(t, 7, p.Weight)
}

func TestShortestPath_ObservableXORAccumulatesAlongPath(t *testing.T) {
	g := New(3, 2)
	g.AddEdge(0, 1, 1, 1)
	g.AddEdge(1, 2, 1, 2)

	p, err := g.ShortestPath(0, 2, false)
	require.NoError(t, err)
	assert.EqualValues(t, 3, p.ObsMask)
}

func TestShortestPath_UnreachableReturnsError(t *testing.T) {
	g := New(2, 0)
	_, err := g.ShortestPath(0, 1, false)
	assert.Error(t, err)
}
