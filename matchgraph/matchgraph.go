package matchgraph

import (
	"github.com/katalvlaran/qecmatch/eventtracker"
	"github.com/katalvlaran/qecmatch/ids"
	"github.com/katalvlaran/qecmatch/varying"
)

// DetectorNode is one detector in the matching graph. The neighbor,
// neighbor weight and neighbor observable-mask slices are parallel
// arrays indexed by the same "neighbor index"; ids.Boundary in Neighbors
// marks a boundary edge.
//
// The remaining fields are ephemeral per-decode state written by the
// flooder while a region's growth front passes through this node, and
// zeroed by Reset between decodes.
type DetectorNode struct {
	Neighbors            []ids.NodeIndex
	NeighborWeights      []ids.Weight
	NeighborObservables  []ids.ObsMask

	RegionThatArrived    ids.RegionIndex
	RegionThatArrivedTop ids.RegionIndex
	ReachedFromSource    ids.NodeIndex
	ObservablesCrossed   ids.ObsMask
	RadiusOfArrival      varying.Time
	WrappedRadiusCached  varying.Time
	Tracker              eventtracker.Tracker
}

// NewDetectorNode returns a DetectorNode with no region owning it.
func NewDetectorNode() DetectorNode {
	return DetectorNode{
		RegionThatArrived:    ids.NoRegion,
		RegionThatArrivedTop: ids.NoRegion,
		ReachedFromSource:    ids.Boundary,
	}
}

// HasSameOwnerAs reports whether n and other are currently claimed by the
// same top-level region (ownership test used by the flooder to skip
// neighbor collisions within one region's own shell).
func (n *DetectorNode) HasSameOwnerAs(other *DetectorNode) bool {
	return n.RegionThatArrivedTop.Valid() && n.RegionThatArrivedTop == other.RegionThatArrivedTop
}

// LocalRadius is the radius of the node's owning region, adjusted by the
// node's WrappedRadiusCached offset so that nodes deep inside nested
// blossoms see a radius consistent with their owning region's growth.
func (n *DetectorNode) LocalRadius(regionRadius func(ids.RegionIndex) varying.Varying) varying.Varying {
	if !n.RegionThatArrivedTop.Valid() {
		return varying.Frozen(0)
	}

	return regionRadius(n.RegionThatArrivedTop).Plus(n.WrappedRadiusCached)
}

// Reset clears all ephemeral per-decode fields, for node recycling
// between decodes.
func (n *DetectorNode) Reset() {
	n.RegionThatArrived = ids.NoRegion
	n.RegionThatArrivedTop = ids.NoRegion
	n.ReachedFromSource = ids.Boundary
	n.ObservablesCrossed = 0
	n.RadiusOfArrival = 0
	n.WrappedRadiusCached = 0
	n.Tracker.Reset()
}

// Graph is the decoding graph: one DetectorNode per detector plus the
// negative-weight fixup accounting accumulated while edges were added.
type Graph struct {
	Nodes          []DetectorNode
	NumObservables int

	// NegativeWeightDetectionEvents and NegativeWeightObservables are the
	// XOR-accumulated fixup sets: a detector/observable index toggles in
	// or out each time a negative-weight edge touching it is added.
	NegativeWeightDetectionEvents map[int]struct{}
	NegativeWeightObservables     map[int]struct{}
	NegativeWeightObsMask         ids.ObsMask
	NegativeWeightSum             ids.TotalWeight

	IsUserGraphBoundaryNode []bool
	NormalisingConstant     float64
}

// New returns a Graph with numNodes detector nodes and no edges.
func New(numNodes, numObservables int) *Graph {
	nodes := make([]DetectorNode, numNodes)
	for i := range nodes {
		nodes[i] = NewDetectorNode()
	}

	return &Graph{
		Nodes:                         nodes,
		NumObservables:                numObservables,
		NegativeWeightDetectionEvents: make(map[int]struct{}),
		NegativeWeightObservables:     make(map[int]struct{}),
		NormalisingConstant:           1.0,
	}
}

func toggleSet(set map[int]struct{}, key int) {
	if _, ok := set[key]; ok {
		delete(set, key)
	} else {
		set[key] = struct{}{}
	}
}

func (g *Graph) applyNegativeWeightFixup(weight ids.SignedWeight, u, v int, hasV bool, observables []int) {
	if weight >= 0 {
		return
	}

	for _, obs := range observables {
		toggleSet(g.NegativeWeightObservables, obs)
		if obs < 64 {
			g.NegativeWeightObsMask ^= 1 << uint(obs)
		}
	}
	toggleSet(g.NegativeWeightDetectionEvents, u)
	if hasV {
		toggleSet(g.NegativeWeightDetectionEvents, v)
	}
	g.NegativeWeightSum += ids.TotalWeight(weight)
}

func (g *Graph) observableMask(observables []int) ids.ObsMask {
	var mask ids.ObsMask
	if g.NumObservables > 64 {
		return 0
	}
	for _, obs := range observables {
		mask ^= 1 << uint(obs)
	}

	return mask
}

// AddEdge adds a detector-to-detector edge. Negative-weight fixup is
// applied before the self-loop check: a negative-weight self-loop still
// toggles the observable fixup set and contributes to NegativeWeightSum,
// even though no adjacency is recorded for it (its own detection-event
// toggle at u and v self-cancels).
func (g *Graph) AddEdge(u, v int, weight ids.SignedWeight, observables []int) {
	g.applyNegativeWeightFixup(weight, u, v, true, observables)

	if u == v {
		return
	}

	absWeight := ids.Weight(abs32(int32(weight)))
	mask := g.observableMask(observables)

	g.Nodes[u].Neighbors = append(g.Nodes[u].Neighbors, ids.NodeIndex(v))
	g.Nodes[u].NeighborWeights = append(g.Nodes[u].NeighborWeights, absWeight)
	g.Nodes[u].NeighborObservables = append(g.Nodes[u].NeighborObservables, mask)

	g.Nodes[v].Neighbors = append(g.Nodes[v].Neighbors, ids.NodeIndex(u))
	g.Nodes[v].NeighborWeights = append(g.Nodes[v].NeighborWeights, absWeight)
	g.Nodes[v].NeighborObservables = append(g.Nodes[v].NeighborObservables, mask)
}

// AddBoundaryEdge adds an edge from u to the virtual boundary.
func (g *Graph) AddBoundaryEdge(u int, weight ids.SignedWeight, observables []int) {
	g.applyNegativeWeightFixup(weight, u, 0, false, observables)

	absWeight := ids.Weight(abs32(int32(weight)))
	mask := g.observableMask(observables)

	g.Nodes[u].Neighbors = append(g.Nodes[u].Neighbors, ids.Boundary)
	g.Nodes[u].NeighborWeights = append(g.Nodes[u].NeighborWeights, absWeight)
	g.Nodes[u].NeighborObservables = append(g.Nodes[u].NeighborObservables, mask)
}

// IndexOfNeighbor returns the position of to within from's Neighbors
// slice. It panics if to is not a neighbor of from: every call site
// already knows an edge exists, so a miss means the graph was built
// inconsistently.
func (g *Graph) IndexOfNeighbor(from, to ids.NodeIndex) int {
	neighbors := g.Nodes[from].Neighbors
	for i, n := range neighbors {
		if n == to {
			return i
		}
	}

	panic("matchgraph: neighbor not found")
}

// Reset clears every node's ephemeral state, for reuse across decodes.
func (g *Graph) Reset() {
	for i := range g.Nodes {
		g.Nodes[i].Reset()
	}
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}

	return x
}
