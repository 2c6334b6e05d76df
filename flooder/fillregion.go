package flooder

import (
	"github.com/katalvlaran/qecmatch/arena"
	"github.com/katalvlaran/qecmatch/eventtracker"
	"github.com/katalvlaran/qecmatch/ids"
	"github.com/katalvlaran/qecmatch/interop"
	"github.com/katalvlaran/qecmatch/varying"
)

// FillRegion is one growing, frozen or shrinking region of the plane:
// either a single detection event's blossom-of-one, or a blossom formed
// by contracting an odd cycle of regions together.
type FillRegion struct {
	BlossomParent    ids.RegionIndex
	BlossomParentTop ids.RegionIndex
	AltTreeNode      ids.AltTreeIndex

	Radius             varying.Varying
	ShrinkEventTracker eventtracker.Tracker

	HasMatch bool
	Match    interop.Match

	BlossomChildren []interop.RegionEdge
	ShellArea       []ids.NodeIndex

	// BlossomInParentLoc and BlossomInChildLoc are the anchor node
	// locations recorded when a blossom forms, so that later shattering
	// can identify which child region sits on the path toward the
	// blossom's tree parent versus toward its own inner child.
	BlossomInParentLoc ids.NodeIndex
	BlossomInChildLoc  ids.NodeIndex
}

// reset zeroes r for arena reuse. Slices are truncated rather than
// discarded so repeated decodes reuse their backing arrays.
func (r *FillRegion) reset() {
	r.BlossomParent = ids.NoRegion
	r.BlossomParentTop = ids.NoRegion
	r.AltTreeNode = ids.NoAltTreeNode
	r.Radius = varying.Frozen(0)
	r.ShrinkEventTracker.Reset()
	r.HasMatch = false
	r.Match = interop.Match{}
	r.BlossomChildren = r.BlossomChildren[:0]
	r.ShellArea = r.ShellArea[:0]
	r.BlossomInParentLoc = ids.Boundary
	r.BlossomInChildLoc = ids.Boundary
}

// TreeEqual reports whether r and other belong to the same alternating
// tree node.
func (r *FillRegion) TreeEqual(other *FillRegion) bool {
	return r.AltTreeNode.Valid() && r.AltTreeNode == other.AltTreeNode
}

// newRegionArena returns an empty Arena of FillRegion. Slots are
// allocated through allocRegion, which resets each one, since
// arena.Alloc only zeroes Go's zero value (which leaves BlossomParent
// etc. at 0, not the NoRegion sentinel).
func newRegionArena() *arena.Arena[FillRegion] {
	return arena.New[FillRegion]()
}

func allocRegion(a *arena.Arena[FillRegion]) ids.RegionIndex {
	idx := a.Alloc()
	r := a.Get(idx)
	r.reset()

	return ids.RegionIndex(idx)
}
