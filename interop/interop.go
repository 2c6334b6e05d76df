package interop

import (
	"github.com/katalvlaran/qecmatch/ids"
	"github.com/katalvlaran/qecmatch/radixheap"
	"github.com/katalvlaran/qecmatch/varying"
)

// CompressedEdge summarises a path through the graph by its endpoints and
// the XOR of every observable crossed along the way, discarding the
// intermediate nodes. LocFrom/LocTo are ids.Boundary when the path end is
// the virtual boundary rather than a real node.
type CompressedEdge struct {
	LocFrom ids.NodeIndex
	LocTo   ids.NodeIndex
	ObsMask ids.ObsMask
}

// EmptyEdge is the placeholder CompressedEdge, with both ends set to
// ids.Boundary, used where no edge has been computed yet. It is not the
// Go zero value, whose ends are node 0.
var EmptyEdge = CompressedEdge{LocFrom: ids.Boundary, LocTo: ids.Boundary}

// Reversed returns the same path walked the other way.
func (e CompressedEdge) Reversed() CompressedEdge {
	return CompressedEdge{LocFrom: e.LocTo, LocTo: e.LocFrom, ObsMask: e.ObsMask}
}

// MergedWith concatenates e and next into the path e.LocFrom -> next.LocTo,
// XORing the two observable masks.
func (e CompressedEdge) MergedWith(next CompressedEdge) CompressedEdge {
	return CompressedEdge{LocFrom: e.LocFrom, LocTo: next.LocTo, ObsMask: e.ObsMask ^ next.ObsMask}
}

// RegionEdge pairs a region with the CompressedEdge that leads to it,
// used to describe a blossom's cycle of child regions.
type RegionEdge struct {
	Region ids.RegionIndex
	Edge   CompressedEdge
}

// Match records that a region is matched to another region (or, when
// HasRegion is false, to the boundary) via Edge.
type Match struct {
	Region   ids.RegionIndex
	HasRegion bool
	Edge     CompressedEdge
}

// BoundaryMatch returns a Match to the boundary.
func BoundaryMatch(edge CompressedEdge) Match { return Match{Edge: edge} }

// RegionMatch returns a Match to another region.
func RegionMatch(region ids.RegionIndex, edge CompressedEdge) Match {
	return Match{Region: region, HasRegion: true, Edge: edge}
}

// MwpmEventKind discriminates MwpmEvent's payload.
type MwpmEventKind int

const (
	NoEvent MwpmEventKind = iota
	RegionHitRegion
	RegionHitBoundary
	BlossomShatter
)

// MwpmEvent is what the flooder reports to the matcher after running the
// simulation forward to the next interesting moment.
type MwpmEvent struct {
	Kind MwpmEventKind

	Region1 ids.RegionIndex // RegionHitRegion, RegionHitBoundary ("Region"), BlossomShatter ("blossom")
	Region2 ids.RegionIndex // RegionHitRegion ("region2"), BlossomShatter ("in_parent")
	Region3 ids.RegionIndex // BlossomShatter ("in_child")
	Edge    CompressedEdge  // RegionHitRegion, RegionHitBoundary
}

// FloodCheckEventKind discriminates FloodCheckEvent's payload.
type FloodCheckEventKind int

const (
	NoFloodEvent FloodCheckEventKind = iota
	LookAtNode
	LookAtShrinkingRegion
	LookAtSearchNode
)

// FloodCheckEvent is a tentative event scheduled on the flooder's radix
// heap: a moment at which a node or region may need attention, which may
// turn out to be stale once its owning eventtracker.Tracker is consulted.
type FloodCheckEvent struct {
	Kind   FloodCheckEventKind
	Node   ids.NodeIndex
	Region ids.RegionIndex
	At     varying.Time
}

// Time implements radixheap.Event via a truncation to the heap's 32-bit
// cyclic time; the full cumulative time stays in At, which the flooder
// reads directly on dequeue.
func (e FloodCheckEvent) Time() radixheap.CyclicTime { return radixheap.CyclicTime(uint32(e.At)) }
