package flooder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qecmatch/ids"
	"github.com/katalvlaran/qecmatch/interop"
	"github.com/katalvlaran/qecmatch/matchgraph"
)

func TestFlooder_TwoAdjacentDetectionsCollide(t *testing.T) {
	g := matchgraph.New(2, 0)
	g.AddEdge(0, 1, 10, nil)
	f := New(g)

	f.CreateDetectionEvent(0)
	f.CreateDetectionEvent(1)

	ev := f.RunUntilNextMwpmNotification()
	require.Equal(t, interop.RegionHitRegion, ev.Kind)
	assert.NotEqual(t, ev.Region1, ev.Region2)

	r1 := f.Region(ev.Region1)
	r2 := f.Region(ev.Region2)
	assert.EqualValues(t, 10, r1.Radius.Eval(f.CurTime())+r2.Radius.Eval(f.CurTime()))
}

func TestFlooder_DetectionHitsBoundary(t *testing.T) {
	g := matchgraph.New(1, 0)
	g.AddBoundaryEdge(0, 6, nil)
	f := New(g)

	f.CreateDetectionEvent(0)

	ev := f.RunUntilNextMwpmNotification()
	require.Equal(t, interop.RegionHitBoundary, ev.Kind)
	assert.Equal(t, ids.NodeIndex(0), ev.Edge.LocFrom)
	assert.Equal(t, ids.Boundary, ev.Edge.LocTo)

	r := f.Region(ev.Region1)
	assert.EqualValues(t, 6, r.Radius.Eval(f.CurTime()))
}

func TestFlooder_GrowthThroughEmptyNodeEventuallyCollides(t *testing.T) {
	g := matchgraph.New(3, 0)
	g.AddEdge(0, 1, 3, nil)
	g.AddEdge(1, 2, 5, nil)
	f := New(g)

	f.CreateDetectionEvent(0)
	f.CreateDetectionEvent(2)

	ev := f.RunUntilNextMwpmNotification()
	require.Equal(t, interop.RegionHitRegion, ev.Kind)

	r1 := f.Region(ev.Region1)
	r2 := f.Region(ev.Region2)
	assert.EqualValues(t, 8, r1.Radius.Eval(f.CurTime())+r2.Radius.Eval(f.CurTime()))
}

func TestFlooder_NoEventsReturnsNoEvent(t *testing.T) {
	g := matchgraph.New(1, 0)
	f := New(g)
	ev := f.RunUntilNextMwpmNotification()
	assert.Equal(t, interop.NoEvent, ev.Kind)
}

func TestFlooder_Reset(t *testing.T) {
	g := matchgraph.New(1, 0)
	g.AddBoundaryEdge(0, 4, nil)
	f := New(g)
	f.CreateDetectionEvent(0)
	f.RunUntilNextMwpmNotification()

	f.Reset()
	assert.EqualValues(t, 0, f.CurTime())
	assert.True(t, f.Queue.IsEmpty())
}
