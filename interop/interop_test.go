package interop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/qecmatch/ids"
)

func TestCompressedEdge_Reversed(t *testing.T) {
	e := CompressedEdge{LocFrom: 1, LocTo: 2, ObsMask: 0b101}
	r := e.Reversed()
	assert.Equal(t, ids.NodeIndex(2), r.LocFrom)
	assert.Equal(t, ids.NodeIndex(1), r.LocTo)
	assert.Equal(t, ids.ObsMask(0b101), r.ObsMask)
}

func TestCompressedEdge_MergedWith(t *testing.T) {
	a := CompressedEdge{LocFrom: 1, LocTo: 2, ObsMask: 0b01}
	b := CompressedEdge{LocFrom: 2, LocTo: 3, ObsMask: 0b11}
	m := a.MergedWith(b)
	assert.Equal(t, ids.NodeIndex(1), m.LocFrom)
	assert.Equal(t, ids.NodeIndex(3), m.LocTo)
	assert.Equal(t, ids.ObsMask(0b10), m.ObsMask)
}

func TestFloodCheckEvent_Time(t *testing.T) {
	e := FloodCheckEvent{Kind: LookAtNode, At: 1<<32 + 7}
	assert.EqualValues(t, 7, e.Time())
}
