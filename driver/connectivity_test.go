package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserGraph_ConnectedComponents_SingleChainIsOneComponent(t *testing.T) {
	g := NewUserGraph()
	g.AddEdge(0, 1, nil, 1.0, 0.1)
	g.AddEdge(1, 2, nil, 1.0, 0.1)

	components := g.ConnectedComponents()
	assert.Len(t, components, 1)
	assert.Equal(t, []int{0, 1, 2}, components[0])
}

func TestUserGraph_ConnectedComponents_DisjointPairsAreSeparate(t *testing.T) {
	g := NewUserGraph()
	g.AddEdge(0, 1, nil, 1.0, 0.1)
	g.AddEdge(2, 3, nil, 1.0, 0.1)

	components := g.ConnectedComponents()
	assert.Len(t, components, 2)
}

func TestUserGraph_ConnectedComponents_IsolatedNodeIsItsOwnComponent(t *testing.T) {
	g := NewUserGraph()
	g.AddEdge(0, 1, nil, 1.0, 0.1)
	g.ensureNode(2)

	components := g.ConnectedComponents()
	assert.Len(t, components, 2)
	assert.Equal(t, []int{2}, components[1])
}
