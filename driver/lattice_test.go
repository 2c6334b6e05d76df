package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepetitionCodeGraph_BuildsChainWithBoundaries(t *testing.T) {
	ug, err := NewRepetitionCodeGraph(3, 1.0, 0.1)
	require.NoError(t, err)

	assert.Equal(t, 3, ug.GetNumNodes())
	assert.Equal(t, 2, ug.GetNumEdges())
	assert.True(t, ug.IsBoundaryNode(0))
	assert.True(t, ug.IsBoundaryNode(2))
	assert.False(t, ug.IsBoundaryNode(1))
	assert.Equal(t, 1, ug.NumObservables)
}

func TestNewRepetitionCodeGraph_RejectsTooSmallDistance(t *testing.T) {
	_, err := NewRepetitionCodeGraph(1, 1.0, 0.1)
	assert.Error(t, err)
}

func TestNewRepetitionCodeGraph_DecodesASingleFlip(t *testing.T) {
	ug, err := NewRepetitionCodeGraph(3, 1.0, 0.1)
	require.NoError(t, err)

	m := &Matching{userGraph: ug}
	predictions, err := m.Decode([]byte{0, 1, 1})
	require.NoError(t, err)
	require.Len(t, predictions, 1)
}

func TestNewSurfaceCodeGraph_BuildsExpectedLatticeSize(t *testing.T) {
	ug, err := NewSurfaceCodeGraph(3, 1.0, 0.1)
	require.NoError(t, err)

	assert.Equal(t, 6, ug.GetNumNodes())
	assert.Greater(t, ug.GetNumEdges(), 0)
}

func TestNewSurfaceCodeGraph_RejectsTooSmallDistance(t *testing.T) {
	_, err := NewSurfaceCodeGraph(1, 1.0, 0.1)
	assert.Error(t, err)
}
