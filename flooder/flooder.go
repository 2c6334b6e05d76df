package flooder

import (
	"github.com/katalvlaran/qecmatch/arena"
	"github.com/katalvlaran/qecmatch/eventtracker"
	"github.com/katalvlaran/qecmatch/ids"
	"github.com/katalvlaran/qecmatch/interop"
	"github.com/katalvlaran/qecmatch/matchgraph"
	"github.com/katalvlaran/qecmatch/radixheap"
	"github.com/katalvlaran/qecmatch/varying"
)

// Flooder runs the event-driven growth simulation over a matchgraph.Graph.
// The zero value is not usable; construct with New.
type Flooder struct {
	Graph       *matchgraph.Graph
	RegionArena *arena.Arena[FillRegion]
	Queue       *radixheap.Queue[interop.FloodCheckEvent]
	MatchEdges  []interop.CompressedEdge

	curTime varying.Time
}

// New returns a Flooder ready to run over graph.
func New(graph *matchgraph.Graph) *Flooder {
	return &Flooder{
		Graph:       graph,
		RegionArena: newRegionArena(),
		Queue:       radixheap.New[interop.FloodCheckEvent](),
	}
}

// CurTime is the simulation's current cumulative time: the At field of
// the most recently processed event.
func (f *Flooder) CurTime() varying.Time { return f.curTime }

// Region returns the FillRegion at idx.
func (f *Flooder) Region(idx ids.RegionIndex) *FillRegion { return f.region(idx) }

func (f *Flooder) region(idx ids.RegionIndex) *FillRegion {
	return f.RegionArena.Get(arena.Index(idx))
}

func (f *Flooder) regionRadiusVarying(idx ids.RegionIndex) varying.Varying {
	return f.region(idx).Radius
}

// CreateDetectionEvent allocates a new single-node FillRegion rooted at
// node and schedules its first growth events.
func (f *Flooder) CreateDetectionEvent(node ids.NodeIndex) ids.RegionIndex {
	regionIdx := allocRegion(f.RegionArena)
	r := f.region(regionIdx)
	r.Radius = varying.GrowingWithZeroDistanceAt(f.curTime)
	r.ShellArea = append(r.ShellArea, node)

	n := &f.Graph.Nodes[node]
	n.RegionThatArrived = regionIdx
	n.RegionThatArrivedTop = regionIdx
	n.ReachedFromSource = node
	n.ObservablesCrossed = 0
	n.RadiusOfArrival = 0
	n.WrappedRadiusCached = 0

	f.RescheduleEventsAtDetectorNode(node)

	return regionIdx
}

// CreateBlossomRegion allocates the FillRegion for a newly formed blossom
// whose child regions form cycle, transfers shell ownership to it, and
// reschedules every node in the new blossom's combined shell.
func (f *Flooder) CreateBlossomRegion(cycle []interop.RegionEdge) ids.RegionIndex {
	blossom := allocRegion(f.RegionArena)
	r := f.region(blossom)
	r.BlossomChildren = append(r.BlossomChildren, cycle...)
	r.Radius = varying.GrowingWithZeroDistanceAt(f.curTime)

	for _, c := range cycle {
		child := f.region(c.Region)
		child.BlossomParent = blossom
		child.BlossomParentTop = blossom
	}

	for _, c := range cycle {
		child := f.region(c.Region)
		for _, node := range child.ShellArea {
			nd := &f.Graph.Nodes[node]
			nd.RegionThatArrivedTop = blossom
			nd.WrappedRadiusCached = f.computeWrappedRadius(node)
		}
	}

	for _, c := range cycle {
		child := f.region(c.Region)
		shell := append([]ids.NodeIndex(nil), child.ShellArea...)
		for _, node := range shell {
			f.RescheduleEventsAtDetectorNode(node)
		}
	}

	return blossom
}

// RunUntilNextMwpmNotification advances the simulation until a
// RegionHitRegion, RegionHitBoundary or BlossomShatter event occurs, or
// the event queue is exhausted (NoEvent).
func (f *Flooder) RunUntilNextMwpmNotification() interop.MwpmEvent {
	for {
		ev, ok := f.dequeueValid()
		if !ok {
			return interop.MwpmEvent{}
		}

		notification := f.processTentativeEvent(ev)
		if notification.Kind != interop.NoEvent {
			return notification
		}
	}
}

func (f *Flooder) dequeueValid() (interop.FloodCheckEvent, bool) {
	for {
		ev, ok := f.Queue.Dequeue()
		if !ok {
			return interop.FloodCheckEvent{}, false
		}

		if f.dequeueDecision(ev) == eventtracker.Process {
			f.curTime = ev.At

			return ev, true
		}
	}
}

func (f *Flooder) dequeueDecision(ev interop.FloodCheckEvent) eventtracker.Decision {
	switch ev.Kind {
	case interop.LookAtNode:
		tr := &f.Graph.Nodes[ev.Node].Tracker

		return tr.DequeueDecision(ev.At, func(t varying.Time) {
			f.Queue.Enqueue(interop.FloodCheckEvent{Kind: interop.LookAtNode, Node: ev.Node, At: t})
		})
	case interop.LookAtShrinkingRegion:
		tr := &f.region(ev.Region).ShrinkEventTracker

		return tr.DequeueDecision(ev.At, func(t varying.Time) {
			f.Queue.Enqueue(interop.FloodCheckEvent{Kind: interop.LookAtShrinkingRegion, Region: ev.Region, At: t})
		})
	default:
		return eventtracker.Process
	}
}

func (f *Flooder) processTentativeEvent(ev interop.FloodCheckEvent) interop.MwpmEvent {
	switch ev.Kind {
	case interop.LookAtNode:
		return f.doLookAtNodeEvent(ev.Node)
	case interop.LookAtShrinkingRegion:
		return f.doRegionShrinking(ev.Region)
	default:
		return interop.MwpmEvent{}
	}
}

func (f *Flooder) setNodeDesired(node ids.NodeIndex, t varying.Time) {
	tr := &f.Graph.Nodes[node].Tracker
	tr.SetDesired(t, func(at varying.Time) {
		f.Queue.Enqueue(interop.FloodCheckEvent{Kind: interop.LookAtNode, Node: node, At: at})
	})
}

func (f *Flooder) doLookAtNodeEvent(node ids.NodeIndex) interop.MwpmEvent {
	pos, t, found := f.findNextEventAtNode(node)
	if found && t == f.curTime {
		// Re-arm this node at the same instant: other neighbors may also
		// be due now, and will be discovered on the next pass.
		f.setNodeDesired(node, f.curTime)

		neighbor := f.Graph.Nodes[node].Neighbors[pos]
		if neighbor == ids.Boundary {
			return f.doRegionHitBoundary(node, pos)
		}

		return f.doNeighborInteraction(node, pos, neighbor)
	}

	if found {
		f.setNodeDesired(node, t)
	}

	return interop.MwpmEvent{}
}

func (f *Flooder) doNeighborInteraction(src ids.NodeIndex, srcToDst int, dst ids.NodeIndex) interop.MwpmEvent {
	srcNode := &f.Graph.Nodes[src]
	dstNode := &f.Graph.Nodes[dst]
	srcOwned := srcNode.RegionThatArrivedTop.Valid()
	dstOwned := dstNode.RegionThatArrivedTop.Valid()

	switch {
	case srcOwned && !dstOwned:
		f.doRegionArrivingAtEmptyNode(dst, src, srcToDst)

		return interop.MwpmEvent{}
	case !srcOwned && dstOwned:
		dstToSrc := f.Graph.IndexOfNeighbor(dst, src)
		f.doRegionArrivingAtEmptyNode(src, dst, dstToSrc)

		return interop.MwpmEvent{}
	case srcOwned && dstOwned:
		obs := srcNode.ObservablesCrossed ^ dstNode.ObservablesCrossed ^ srcNode.NeighborObservables[srcToDst]
		edge := interop.CompressedEdge{LocFrom: srcNode.ReachedFromSource, LocTo: dstNode.ReachedFromSource, ObsMask: obs}

		return interop.MwpmEvent{
			Kind:    interop.RegionHitRegion,
			Region1: srcNode.RegionThatArrivedTop,
			Region2: dstNode.RegionThatArrivedTop,
			Edge:    edge,
		}
	default:
		return interop.MwpmEvent{}
	}
}

func (f *Flooder) doRegionHitBoundary(node ids.NodeIndex, boundaryPos int) interop.MwpmEvent {
	n := &f.Graph.Nodes[node]
	obs := n.ObservablesCrossed ^ n.NeighborObservables[boundaryPos]
	edge := interop.CompressedEdge{LocFrom: n.ReachedFromSource, LocTo: ids.Boundary, ObsMask: obs}

	return interop.MwpmEvent{Kind: interop.RegionHitBoundary, Region1: n.RegionThatArrivedTop, Edge: edge}
}

func (f *Flooder) doRegionArrivingAtEmptyNode(empty, from ids.NodeIndex, fromToEmpty int) {
	fromNode := &f.Graph.Nodes[from]
	top := fromNode.RegionThatArrivedTop

	var radiusOfArrival varying.Time
	if top.Valid() {
		radiusOfArrival = f.region(top).Radius.Eval(f.curTime)
	}

	emptyNode := &f.Graph.Nodes[empty]
	emptyNode.RegionThatArrived = fromNode.RegionThatArrived
	emptyNode.RegionThatArrivedTop = top
	emptyNode.ReachedFromSource = fromNode.ReachedFromSource
	emptyNode.ObservablesCrossed = fromNode.ObservablesCrossed ^ fromNode.NeighborObservables[fromToEmpty]
	emptyNode.RadiusOfArrival = radiusOfArrival
	emptyNode.WrappedRadiusCached = f.computeWrappedRadius(empty)

	if top.Valid() {
		r := f.region(top)
		r.ShellArea = append(r.ShellArea, empty)
	}

	f.RescheduleEventsAtDetectorNode(empty)
}

func (f *Flooder) computeWrappedRadius(node ids.NodeIndex) varying.Time {
	n := &f.Graph.Nodes[node]

	var sum varying.Time
	cur := n.RegionThatArrived
	top := n.RegionThatArrivedTop
	for cur.Valid() && cur != top {
		r := f.region(cur)
		sum += r.Radius.YIntercept()
		cur = r.BlossomParent
	}

	return sum - n.RadiusOfArrival
}

func (f *Flooder) findNextEventAtNode(node ids.NodeIndex) (pos int, t varying.Time, found bool) {
	n := &f.Graph.Nodes[node]
	rad1 := n.LocalRadius(f.regionRadiusVarying)
	if rad1.IsGrowing() {
		return f.findNextEventGrowing(node, rad1)
	}

	return f.findNextEventNotGrowing(node, rad1)
}

func (f *Flooder) findNextEventGrowing(node ids.NodeIndex, rad1 varying.Varying) (pos int, best varying.Time, found bool) {
	n := &f.Graph.Nodes[node]
	pos = -1

	for i, neighbor := range n.Neighbors {
		w := varying.Time(n.NeighborWeights[i])

		var other varying.Varying
		if neighbor == ids.Boundary {
			other = varying.Frozen(0)
		} else {
			nb := &f.Graph.Nodes[neighbor]
			if n.HasSameOwnerAs(nb) {
				continue
			}
			other = nb.LocalRadius(f.regionRadiusVarying)
			if other.IsShrinking() {
				continue
			}
		}

		ct := rad1.Minus(w).TimeOfXInterceptWhenAddedTo(other)
		if pos == -1 || ct < best {
			pos, best = i, ct
		}
	}

	return pos, best, pos != -1
}

func (f *Flooder) findNextEventNotGrowing(node ids.NodeIndex, rad1 varying.Varying) (pos int, best varying.Time, found bool) {
	n := &f.Graph.Nodes[node]
	pos = -1

	for i, neighbor := range n.Neighbors {
		if neighbor == ids.Boundary {
			continue
		}

		nb := &f.Graph.Nodes[neighbor]
		other := nb.LocalRadius(f.regionRadiusVarying)
		if !other.IsGrowing() {
			continue
		}

		w := varying.Time(n.NeighborWeights[i])
		ct := rad1.Minus(w).TimeOfXInterceptWhenAddedTo(other)
		if pos == -1 || ct < best {
			pos, best = i, ct
		}
	}

	return pos, best, pos != -1
}

// RescheduleEventsAtDetectorNode recomputes node's next tentative event
// and re-arms (or clears) its tracker accordingly. Exported because the
// matcher must call it after directly mutating shell ownership (blossom
// formation, sub-blossom shattering).
func (f *Flooder) RescheduleEventsAtDetectorNode(node ids.NodeIndex) {
	_, t, found := f.findNextEventAtNode(node)
	if !found {
		f.Graph.Nodes[node].Tracker.SetNoDesired()

		return
	}

	f.setNodeDesired(node, t)
}

// SetRegionGrowing switches region to growing from cur_time and
// reschedules every node in its shell.
func (f *Flooder) SetRegionGrowing(region ids.RegionIndex) {
	r := f.region(region)
	r.Radius = r.Radius.ThenGrowingAt(f.curTime)
	r.ShrinkEventTracker.SetNoDesired()
	for _, node := range r.ShellArea {
		f.RescheduleEventsAtDetectorNode(node)
	}
}

// SetRegionFrozen switches region to frozen from cur_time. Shell nodes
// are only rescheduled if the region was shrinking, since a growing
// region's shell nodes already have correct pending events for arriving
// at new neighbors.
func (f *Flooder) SetRegionFrozen(region ids.RegionIndex) {
	r := f.region(region)
	wasShrinking := r.Radius.IsShrinking()
	r.Radius = r.Radius.ThenFrozenAt(f.curTime)
	r.ShrinkEventTracker.SetNoDesired()
	if wasShrinking {
		for _, node := range r.ShellArea {
			f.RescheduleEventsAtDetectorNode(node)
		}
	}
}

// SetRegionShrinking switches region to shrinking from cur_time, arms its
// shrink-event tracker, and clears every shell node's own tracker: no
// node event fires while its owning region shrinks.
func (f *Flooder) SetRegionShrinking(region ids.RegionIndex) {
	r := f.region(region)
	r.Radius = r.Radius.ThenShrinkingAt(f.curTime)
	f.scheduleTentativeShrinkEvent(region)
	for _, node := range r.ShellArea {
		f.Graph.Nodes[node].Tracker.SetNoDesired()
	}
}

func (f *Flooder) scheduleTentativeShrinkEvent(region ids.RegionIndex) {
	r := f.region(region)

	var t varying.Time
	if len(r.ShellArea) == 0 {
		t = r.Radius.TimeOfXIntercept()
	} else {
		last := r.ShellArea[len(r.ShellArea)-1]
		t = f.Graph.Nodes[last].LocalRadius(f.regionRadiusVarying).TimeOfXIntercept()
	}

	r.ShrinkEventTracker.SetDesired(t, func(at varying.Time) {
		f.Queue.Enqueue(interop.FloodCheckEvent{Kind: interop.LookAtShrinkingRegion, Region: region, At: at})
	})
}

func (f *Flooder) doRegionShrinking(region ids.RegionIndex) interop.MwpmEvent {
	r := f.region(region)
	if len(r.ShellArea) == 0 {
		return f.doBlossomShattering(region)
	}

	last := r.ShellArea[len(r.ShellArea)-1]
	r.ShellArea = r.ShellArea[:len(r.ShellArea)-1]
	f.Graph.Nodes[last].Reset()
	f.RescheduleEventsAtDetectorNode(last)
	f.scheduleTentativeShrinkEvent(region)

	return interop.MwpmEvent{}
}

func (f *Flooder) doBlossomShattering(blossom ids.RegionIndex) interop.MwpmEvent {
	r := f.region(blossom)
	if len(r.BlossomChildren) == 0 {
		return interop.MwpmEvent{}
	}

	inParent := f.heirRegionOnShatter(r.BlossomInParentLoc, blossom)
	inChild := f.heirRegionOnShatter(r.BlossomInChildLoc, blossom)
	if !inParent.Valid() || !inChild.Valid() {
		return interop.MwpmEvent{}
	}

	return interop.MwpmEvent{Kind: interop.BlossomShatter, Region1: blossom, Region2: inParent, Region3: inChild}
}

// HeirRegionOnShatter exposes heirRegionOnShatter for the matcher's
// sub-blossom shattering, which needs the same "which child owns this
// location" query the flooder uses internally for whole-blossom
// shattering.
func (f *Flooder) HeirRegionOnShatter(loc ids.NodeIndex, blossom ids.RegionIndex) ids.RegionIndex {
	return f.heirRegionOnShatter(loc, blossom)
}

// heirRegionOnShatter walks the blossom-parent chain starting from loc's
// immediate owning region until it finds the direct child of blossom,
// i.e. the sub-region that sits on the path toward loc.
func (f *Flooder) heirRegionOnShatter(loc ids.NodeIndex, blossom ids.RegionIndex) ids.RegionIndex {
	if !loc.Valid() {
		return ids.NoRegion
	}

	cur := f.Graph.Nodes[loc].RegionThatArrived
	for cur.Valid() {
		r := f.region(cur)
		if r.BlossomParent == blossom {
			return cur
		}
		cur = r.BlossomParent
	}

	return ids.NoRegion
}

// Reset clears the graph, region arena, event queue and match-edge
// buffer for reuse across decodes.
func (f *Flooder) Reset() {
	f.Graph.Reset()
	f.RegionArena.Clear()
	f.Queue.Reset()
	f.MatchEdges = f.MatchEdges[:0]
	f.curTime = 0
}
