package alttree

import (
	"github.com/katalvlaran/qecmatch/arena"
	"github.com/katalvlaran/qecmatch/ids"
	"github.com/katalvlaran/qecmatch/interop"
)

// Edge is a tree edge: the child/parent node reached, and the
// CompressedEdge connecting to it. An Edge whose AltTreeNode is
// ids.NoAltTreeNode (see EmptyEdge) means "no edge", the tree-edge
// equivalent of interop.EmptyEdge; the Go zero value points at node 0.
type Edge struct {
	AltTreeNode ids.AltTreeIndex
	Edge        interop.CompressedEdge
}

// EmptyEdge is the sentinel "no tree edge" value.
var EmptyEdge = Edge{AltTreeNode: ids.NoAltTreeNode, Edge: interop.EmptyEdge}

// NewEdge returns a populated Edge.
func NewEdge(node ids.AltTreeIndex, edge interop.CompressedEdge) Edge {
	return Edge{AltTreeNode: node, Edge: edge}
}

// IsEmpty reports whether e carries no tree edge.
func (e Edge) IsEmpty() bool { return e.AltTreeNode == ids.NoAltTreeNode }

// PruneResult is the outcome of pruning an upward path: the children
// left without a parent, and the region edges the pruned path used to
// traverse, in traversal order.
type PruneResult struct {
	OrphanEdges           []Edge
	PrunedPathRegionEdges []interop.RegionEdge
}

// Node is one node of an alternating tree. The root has InnerRegion ==
// ids.NoRegion.
type Node struct {
	InnerRegion      ids.RegionIndex
	OuterRegion      ids.RegionIndex
	InnerToOuterEdge interop.CompressedEdge
	Parent           Edge
	Children         []Edge
	Visited          bool
}

// NewRoot returns a tree root owning outer as its only region.
func NewRoot(outer ids.RegionIndex) Node {
	return Node{
		InnerRegion: ids.NoRegion,
		OuterRegion: outer,
		Parent:      EmptyEdge,
	}
}

// NewPair returns a non-root node pairing inner and outer.
func NewPair(inner, outer ids.RegionIndex, innerToOuter interop.CompressedEdge) Node {
	return Node{
		InnerRegion:      inner,
		OuterRegion:      outer,
		InnerToOuterEdge: innerToOuter,
		Parent:           EmptyEdge,
	}
}

func get(a *arena.Arena[Node], idx ids.AltTreeIndex) *Node {
	return a.Get(arena.Index(idx))
}

// Alloc allocates a fresh, zeroed-then-initialised node in a and returns
// its index.
func Alloc(a *arena.Arena[Node], n Node) ids.AltTreeIndex {
	idx := ids.AltTreeIndex(a.Alloc())
	*get(a, idx) = n

	return idx
}

// AddChild records child as a child of selfIdx and points child's parent
// pointer back, storing the reversed edge.
func AddChild(a *arena.Arena[Node], selfIdx ids.AltTreeIndex, child Edge) {
	reversed := child.Edge.Reversed()
	get(a, selfIdx).Children = append(get(a, selfIdx).Children, child)
	get(a, child.AltTreeNode).Parent = NewEdge(selfIdx, reversed)
}

// BecomeRoot performs a tree rotation making selfIdx the new root,
// recursively rotating its ancestors first.
func BecomeRoot(a *arena.Arena[Node], selfIdx ids.AltTreeIndex) {
	parentEdge := get(a, selfIdx).Parent
	if parentEdge.IsEmpty() {
		return
	}

	oldParentIdx := parentEdge.AltTreeNode
	BecomeRoot(a, oldParentIdx)

	selfInner := get(a, selfIdx).InnerRegion
	selfInnerToOuter := get(a, selfIdx).InnerToOuterEdge
	parentEdgeVal := get(a, selfIdx).Parent.Edge

	get(a, oldParentIdx).InnerRegion = selfInner
	get(a, oldParentIdx).InnerToOuterEdge = parentEdgeVal

	get(a, selfIdx).InnerRegion = ids.NoRegion

	UnstableEraseByNode(&get(a, oldParentIdx).Children, selfIdx)

	get(a, selfIdx).Parent = EmptyEdge

	edgeToOldParent := selfInnerToOuter.Reversed()
	get(a, selfIdx).Children = append(get(a, selfIdx).Children, NewEdge(oldParentIdx, edgeToOldParent))
	get(a, oldParentIdx).Parent = NewEdge(selfIdx, edgeToOldParent.Reversed())

	get(a, selfIdx).InnerToOuterEdge = interop.EmptyEdge
}

// MostRecentCommonAncestor walks both nodes' parent chains to find their
// lowest common ancestor, returning false if they belong to different
// trees.
func MostRecentCommonAncestor(a *arena.Arena[Node], nodeA, nodeB ids.AltTreeIndex) (ids.AltTreeIndex, bool) {
	get(a, nodeA).Visited = true
	get(a, nodeB).Visited = true

	aCur, bCur := nodeA, nodeB
	var common ids.AltTreeIndex

	for {
		aParentEdge := get(a, aCur).Parent
		bParentEdge := get(a, bCur).Parent
		aHasParent := !aParentEdge.IsEmpty()
		bHasParent := !bParentEdge.IsEmpty()

		if !aHasParent && !bHasParent {
			clearVisitedUpward(a, nodeA)
			clearVisitedUpward(a, nodeB)

			return ids.NoAltTreeNode, false
		}

		found := false
		if aHasParent {
			aCur = aParentEdge.AltTreeNode
			if get(a, aCur).Visited {
				common, found = aCur, true
			} else {
				get(a, aCur).Visited = true
			}
		}
		if !found && bHasParent {
			bCur = bParentEdge.AltTreeNode
			if get(a, bCur).Visited {
				common, found = bCur, true
			} else {
				get(a, bCur).Visited = true
			}
		}
		if found {
			break
		}
	}

	get(a, common).Visited = false
	cleanup := get(a, common).Parent
	for !cleanup.IsEmpty() && get(a, cleanup.AltTreeNode).Visited {
		idx := cleanup.AltTreeNode
		get(a, idx).Visited = false
		cleanup = get(a, idx).Parent
	}

	return common, true
}

func clearVisitedUpward(a *arena.Arena[Node], start ids.AltTreeIndex) {
	cur := start
	for get(a, cur).Visited {
		get(a, cur).Visited = false
		parent := get(a, cur).Parent
		if parent.IsEmpty() {
			return
		}
		cur = parent.AltTreeNode
	}
}

// PruneUpwardPathStoppingBefore removes the path from selfIdx up to (but
// not including) pruneParent, freeing the pruned nodes in a. back
// controls the orientation convention used when recording the region
// edges traversed, matching the two sides of a blossom-forming collision.
func PruneUpwardPathStoppingBefore(a *arena.Arena[Node], selfIdx, pruneParent ids.AltTreeIndex, back bool) PruneResult {
	var result PruneResult
	current := selfIdx

	for current != pruneParent {
		children := get(a, current).Children
		get(a, current).Children = nil
		result.OrphanEdges = append(result.OrphanEdges, children...)

		inner := get(a, current).InnerRegion
		outer := get(a, current).OuterRegion
		i2o := get(a, current).InnerToOuterEdge
		parentEdge := get(a, current).Parent
		parentIdx := parentEdge.AltTreeNode
		parentOuter := get(a, parentIdx).OuterRegion

		if back {
			result.PrunedPathRegionEdges = append(result.PrunedPathRegionEdges,
				interop.RegionEdge{Region: inner, Edge: i2o},
				interop.RegionEdge{Region: parentOuter, Edge: parentEdge.Edge.Reversed()},
			)
		} else {
			result.PrunedPathRegionEdges = append(result.PrunedPathRegionEdges,
				interop.RegionEdge{Region: outer, Edge: i2o.Reversed()},
				interop.RegionEdge{Region: inner, Edge: parentEdge.Edge},
			)
		}

		UnstableEraseByNode(&get(a, parentIdx).Children, current)

		toFree := current
		current = parentIdx
		a.Free(arena.Index(toFree))
	}

	return result
}

// UnstableEraseByNode removes the first edge whose AltTreeNode equals
// target from edges, swapping in the last element to avoid an O(n) shift.
// Returns false if target was not present.
func UnstableEraseByNode(edges *[]Edge, target ids.AltTreeIndex) bool {
	s := *edges
	for i, e := range s {
		if e.AltTreeNode == target {
			last := len(s) - 1
			s[i] = s[last]
			*edges = s[:last]

			return true
		}
	}

	return false
}
