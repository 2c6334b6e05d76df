package matcher

import (
	"github.com/katalvlaran/qecmatch/alttree"
	"github.com/katalvlaran/qecmatch/arena"
	"github.com/katalvlaran/qecmatch/flooder"
	"github.com/katalvlaran/qecmatch/ids"
	"github.com/katalvlaran/qecmatch/interop"
)

// MatchingResult is the accumulated outcome of extracting matches from
// a (possibly nested) blossom: the XOR of every crossed observable and
// the total weight of every edge used.
type MatchingResult struct {
	ObsMask ids.ObsMask
	Weight  ids.TotalWeight
}

// Add folds other into r, XORing observable masks and summing weight.
func (r *MatchingResult) Add(other MatchingResult) {
	r.ObsMask ^= other.ObsMask
	r.Weight += other.Weight
}

// Matcher drives a flooder.Flooder and the alternating tree formed over
// its fill regions. The zero value is not usable; construct with New.
type Matcher struct {
	Flooder   *flooder.Flooder
	NodeArena *arena.Arena[alttree.Node]
}

// New returns a Matcher running over fl.
func New(fl *flooder.Flooder) *Matcher {
	return &Matcher{Flooder: fl, NodeArena: arena.New[alttree.Node]()}
}

func (m *Matcher) region(idx ids.RegionIndex) *flooder.FillRegion { return m.Flooder.Region(idx) }
func (m *Matcher) node(idx ids.AltTreeIndex) *alttree.Node        { return m.NodeArena.Get(arena.Index(idx)) }

// CreateDetectionEvent starts a new single-node region at node and a new
// alternating-tree root growing it.
func (m *Matcher) CreateDetectionEvent(node ids.NodeIndex) {
	regionIdx := m.Flooder.CreateDetectionEvent(node)
	altIdx := alttree.Alloc(m.NodeArena, alttree.NewRoot(regionIdx))
	m.region(regionIdx).AltTreeNode = altIdx
	m.Flooder.SetRegionGrowing(regionIdx)
}

// ProcessEvent reacts to one notification from the flooder.
func (m *Matcher) ProcessEvent(event interop.MwpmEvent) {
	switch event.Kind {
	case interop.RegionHitRegion:
		m.handleRegionHitRegion(event.Region1, event.Region2, event.Edge)
	case interop.RegionHitBoundary:
		m.handleTreeHittingBoundary(event.Region1, event.Edge)
	case interop.BlossomShatter:
		m.handleBlossomShattering(event.Region1, event.Region2, event.Region3)
	case interop.NoEvent:
	}
}

func (m *Matcher) handleRegionHitRegion(region1, region2 ids.RegionIndex, edge interop.CompressedEdge) {
	alt1 := m.region(region1).AltTreeNode
	alt2 := m.region(region2).AltTreeNode

	switch {
	case alt1.Valid() && alt2.Valid():
		if ancestor, ok := alttree.MostRecentCommonAncestor(m.NodeArena, alt1, alt2); ok {
			m.handleTreeHittingSameTree(region1, region2, edge, ancestor)
		} else {
			m.handleTreeHittingOtherTree(region1, region2, edge)
		}
	case alt1.Valid() && !alt2.Valid():
		r2 := m.region(region2)
		if r2.HasMatch && r2.Match.HasRegion {
			m.handleTreeHittingMatch(region1, region2, edge)
		} else {
			m.handleTreeHittingBoundaryMatch(region1, region2, edge)
		}
	case !alt1.Valid() && alt2.Valid():
		r1 := m.region(region1)
		rev := edge.Reversed()
		if r1.HasMatch && r1.Match.HasRegion {
			m.handleTreeHittingMatch(region2, region1, rev)
		} else {
			m.handleTreeHittingBoundaryMatch(region2, region1, rev)
		}
	}
}

func (m *Matcher) handleTreeHittingBoundary(region ids.RegionIndex, edge interop.CompressedEdge) {
	altNode := m.region(region).AltTreeNode
	alttree.BecomeRoot(m.NodeArena, altNode)
	m.shatterDescendantsIntoMatchesAndFreeze(altNode)

	m.region(region).Match = interop.BoundaryMatch(edge)
	m.region(region).HasMatch = true
	m.Flooder.SetRegionFrozen(region)
}

func (m *Matcher) handleTreeHittingBoundaryMatch(unmatched, matched ids.RegionIndex, edge interop.CompressedEdge) {
	altNode := m.region(unmatched).AltTreeNode

	m.region(unmatched).Match = interop.RegionMatch(matched, edge)
	m.region(unmatched).HasMatch = true
	m.region(matched).Match = interop.RegionMatch(unmatched, edge.Reversed())
	m.region(matched).HasMatch = true
	m.Flooder.SetRegionFrozen(unmatched)

	alttree.BecomeRoot(m.NodeArena, altNode)
	m.shatterDescendantsIntoMatchesAndFreeze(altNode)
}

func (m *Matcher) handleTreeHittingOtherTree(region1, region2 ids.RegionIndex, edge interop.CompressedEdge) {
	alt1 := m.region(region1).AltTreeNode
	alt2 := m.region(region2).AltTreeNode

	alttree.BecomeRoot(m.NodeArena, alt1)
	alttree.BecomeRoot(m.NodeArena, alt2)
	m.shatterDescendantsIntoMatchesAndFreeze(alt1)
	m.shatterDescendantsIntoMatchesAndFreeze(alt2)

	m.region(region1).Match = interop.RegionMatch(region2, edge)
	m.region(region1).HasMatch = true
	m.region(region2).Match = interop.RegionMatch(region1, edge.Reversed())
	m.region(region2).HasMatch = true
	m.Flooder.SetRegionFrozen(region1)
	m.Flooder.SetRegionFrozen(region2)
}

func (m *Matcher) handleTreeHittingMatch(unmatched, matched ids.RegionIndex, edge interop.CompressedEdge) {
	altNode := m.region(unmatched).AltTreeNode

	mm := m.region(matched).Match
	otherMatch := mm.Region
	matchEdge := mm.Edge

	m.makeChild(altNode, matched, otherMatch, matchEdge, edge)

	m.region(otherMatch).HasMatch = false
	m.region(matched).HasMatch = false

	m.Flooder.SetRegionShrinking(matched)
	m.Flooder.SetRegionGrowing(otherMatch)
}

func (m *Matcher) handleTreeHittingSameTree(region1, region2 ids.RegionIndex, edge interop.CompressedEdge, commonAncestor ids.AltTreeIndex) {
	alt1 := m.region(region1).AltTreeNode
	alt2 := m.region(region2).AltTreeNode

	pr1 := alttree.PruneUpwardPathStoppingBefore(m.NodeArena, alt1, commonAncestor, true)
	pr2 := alttree.PruneUpwardPathStoppingBefore(m.NodeArena, alt2, commonAncestor, false)

	blossomCycle := append([]interop.RegionEdge{}, pr2.PrunedPathRegionEdges...)
	for i := len(pr1.PrunedPathRegionEdges) - 1; i >= 0; i-- {
		blossomCycle = append(blossomCycle, pr1.PrunedPathRegionEdges[i])
	}
	blossomCycle = append(blossomCycle, interop.RegionEdge{Region: region1, Edge: edge})

	oldOuter := m.node(commonAncestor).OuterRegion
	m.region(oldOuter).AltTreeNode = ids.NoAltTreeNode

	blossomRegion := m.Flooder.CreateBlossomRegion(blossomCycle)

	m.node(commonAncestor).OuterRegion = blossomRegion
	m.region(blossomRegion).AltTreeNode = commonAncestor

	innerToOuterLoc := m.node(commonAncestor).InnerToOuterEdge.LocFrom
	parentLoc := ids.Boundary
	if parent := m.node(commonAncestor).Parent; !parent.IsEmpty() {
		parentLoc = parent.Edge.LocFrom
	}
	m.region(blossomRegion).BlossomInParentLoc = parentLoc
	m.region(blossomRegion).BlossomInChildLoc = innerToOuterLoc

	for _, c := range pr1.OrphanEdges {
		m.reparent(commonAncestor, c)
	}
	for _, c := range pr2.OrphanEdges {
		m.reparent(commonAncestor, c)
	}
}

func (m *Matcher) reparent(parent ids.AltTreeIndex, c alttree.Edge) {
	childIdx := c.AltTreeNode
	edge := c.Edge
	m.node(parent).Children = append(m.node(parent).Children, alttree.NewEdge(childIdx, edge))
	m.node(childIdx).Parent = alttree.NewEdge(parent, edge.Reversed())
}

func (m *Matcher) handleBlossomShattering(blossomRegion, inParentRegion, inChildRegion ids.RegionIndex) {
	blossomChildren := m.region(blossomRegion).BlossomChildren
	m.region(blossomRegion).BlossomChildren = nil
	for _, c := range blossomChildren {
		m.region(c.Region).BlossomParent = ids.NoRegion
		m.region(c.Region).BlossomParentTop = ids.NoRegion
	}

	blossomAltNode := m.region(blossomRegion).AltTreeNode
	bsize := len(blossomChildren)

	parentIdx, childIdx := 0, 0
	for i, c := range blossomChildren {
		if c.Region == inParentRegion {
			parentIdx = i
		}
		if c.Region == inChildRegion {
			childIdx = i
		}
	}
	gap := (childIdx + bsize - parentIdx) % bsize

	blossomParentAlt := m.node(blossomAltNode).Parent.AltTreeNode
	alttree.UnstableEraseByNode(&m.node(blossomParentAlt).Children, blossomAltNode)
	childEdge := m.node(blossomAltNode).Parent.Edge.Reversed()

	currentAltNode := blossomParentAlt

	var evensStart, evensEnd int

	if gap%2 == 0 {
		evensStart = childIdx + 1
		evensEnd = childIdx + bsize - gap

		for i := parentIdx; i < parentIdx+gap; i += 2 {
			k1 := i % bsize
			k2 := (i + 1) % bsize
			currentAltNode = m.makeChild(currentAltNode, blossomChildren[k1].Region, blossomChildren[k2].Region, blossomChildren[k1].Edge, childEdge)
			childEdge = blossomChildren[k2].Edge
			m.freshenTreePair(currentAltNode)
		}
	} else {
		evensStart = parentIdx + 1
		evensEnd = parentIdx + gap

		for i := 0; i < bsize-gap; i += 2 {
			k1 := (parentIdx + bsize - i) % bsize
			k2 := (parentIdx + bsize - i - 1) % bsize
			k3 := (parentIdx + bsize - i - 2) % bsize
			currentAltNode = m.makeChild(currentAltNode, blossomChildren[k1].Region, blossomChildren[k2].Region, blossomChildren[k2].Edge.Reversed(), childEdge)
			childEdge = blossomChildren[k3].Edge.Reversed()
			m.freshenTreePair(currentAltNode)
		}
	}

	for j := evensStart; j < evensEnd; j += 2 {
		k1 := j % bsize
		k2 := (j + 1) % bsize
		r1 := blossomChildren[k1].Region
		r2 := blossomChildren[k2].Region
		e := blossomChildren[k1].Edge
		m.region(r1).Match = interop.RegionMatch(r2, e)
		m.region(r1).HasMatch = true
		m.region(r2).Match = interop.RegionMatch(r1, e.Reversed())
		m.region(r2).HasMatch = true
		m.rescheduleRegionNodes(r1)
		m.rescheduleRegionNodes(r2)
	}

	innerRegion := blossomChildren[childIdx].Region
	m.node(blossomAltNode).InnerRegion = innerRegion
	m.Flooder.SetRegionShrinking(innerRegion)
	m.region(innerRegion).AltTreeNode = blossomAltNode

	m.node(currentAltNode).Children = append(m.node(currentAltNode).Children, alttree.NewEdge(blossomAltNode, childEdge))
	m.node(blossomAltNode).Parent = alttree.NewEdge(currentAltNode, childEdge.Reversed())

	m.Flooder.RegionArena.Free(arena.Index(blossomRegion))
}

func (m *Matcher) freshenTreePair(altNode ids.AltTreeIndex) {
	inner := m.node(altNode).InnerRegion
	outer := m.node(altNode).OuterRegion
	m.Flooder.SetRegionShrinking(inner)
	m.Flooder.SetRegionGrowing(outer)
}

func (m *Matcher) shatterDescendantsIntoMatchesAndFreeze(altNode ids.AltTreeIndex) {
	children := m.node(altNode).Children
	m.node(altNode).Children = nil
	for _, c := range children {
		m.shatterDescendantsIntoMatchesAndFreeze(c.AltTreeNode)
	}

	if inner := m.node(altNode).InnerRegion; inner.Valid() {
		outer := m.node(altNode).OuterRegion
		i2o := m.node(altNode).InnerToOuterEdge

		m.region(inner).Match = interop.RegionMatch(outer, i2o)
		m.region(inner).HasMatch = true
		m.region(outer).Match = interop.RegionMatch(inner, i2o.Reversed())
		m.region(outer).HasMatch = true
		m.Flooder.SetRegionFrozen(inner)
		m.Flooder.SetRegionFrozen(outer)
		m.region(inner).AltTreeNode = ids.NoAltTreeNode
		m.region(outer).AltTreeNode = ids.NoAltTreeNode
	}

	if outer := m.node(altNode).OuterRegion; outer.Valid() {
		m.region(outer).AltTreeNode = ids.NoAltTreeNode
	}

	m.NodeArena.Free(arena.Index(altNode))
}

func (m *Matcher) makeChild(parent ids.AltTreeIndex, childInner, childOuter ids.RegionIndex, childInnerToOuterEdge, childCompressedEdge interop.CompressedEdge) ids.AltTreeIndex {
	childIdx := alttree.Alloc(m.NodeArena, alttree.NewPair(childInner, childOuter, childInnerToOuterEdge))
	m.region(childInner).AltTreeNode = childIdx
	m.region(childOuter).AltTreeNode = childIdx

	rev := childCompressedEdge.Reversed()
	m.node(parent).Children = append(m.node(parent).Children, alttree.NewEdge(childIdx, childCompressedEdge))
	m.node(childIdx).Parent = alttree.NewEdge(parent, rev)

	return childIdx
}

// ShatterBlossomAndExtractMatches recursively unwinds region (and its
// matched partner, and any sub-blossoms either contains) into base
// matched pairs, accumulating the crossed-observable mask and total
// weight of the whole chain. It frees every region it consumes.
func (m *Matcher) ShatterBlossomAndExtractMatches(region ids.RegionIndex) MatchingResult {
	r := m.region(region)
	hasMatchRegion := r.HasMatch && r.Match.HasRegion
	hasBlossomChildren := len(r.BlossomChildren) > 0

	if hasMatchRegion {
		matchRegion := r.Match.Region
		matchRegionHasBlossom := len(m.region(matchRegion).BlossomChildren) > 0

		if !hasBlossomChildren && !matchRegionHasBlossom {
			edge := r.Match.Edge
			w1 := r.Radius.YIntercept()
			w2 := m.region(matchRegion).Radius.YIntercept()
			m.Flooder.RegionArena.Free(arena.Index(matchRegion))
			m.Flooder.RegionArena.Free(arena.Index(region))

			return MatchingResult{ObsMask: edge.ObsMask, Weight: ids.TotalWeight(w1) + ids.TotalWeight(w2)}
		}
	} else if !hasBlossomChildren {
		edge := r.Match.Edge
		w := r.Radius.YIntercept()
		m.Flooder.RegionArena.Free(arena.Index(region))

		return MatchingResult{ObsMask: edge.ObsMask, Weight: ids.TotalWeight(w)}
	}

	var res MatchingResult
	cur := region
	if len(m.region(cur).BlossomChildren) > 0 {
		cur = m.pairAndShatterSubblossoms(cur, &res)
	}

	matchRegion := ids.NoRegion
	if m.region(cur).HasMatch && m.region(cur).Match.HasRegion {
		matchRegion = m.region(cur).Match.Region
	}
	if matchRegion.Valid() && len(m.region(matchRegion).BlossomChildren) > 0 {
		m.pairAndShatterSubblossoms(matchRegion, &res)
	}

	res.Add(m.ShatterBlossomAndExtractMatches(cur))

	return res
}

func (m *Matcher) pairAndShatterSubblossoms(region ids.RegionIndex, res *MatchingResult) ids.RegionIndex {
	children := append([]interop.RegionEdge(nil), m.region(region).BlossomChildren...)

	matchEdge := m.region(region).Match.Edge
	subblossom := m.Flooder.HeirRegionOnShatter(matchEdge.LocFrom, region)
	if !subblossom.Valid() {
		panic("matcher: match edge source has no region under this blossom")
	}

	for _, c := range children {
		m.region(c.Region).BlossomParent = ids.NoRegion
		m.region(c.Region).BlossomParentTop = ids.NoRegion
	}

	blossomMatch := m.region(region).Match
	m.region(subblossom).Match = blossomMatch
	m.region(subblossom).HasMatch = true
	if blossomMatch.HasRegion {
		other := blossomMatch.Region
		m.region(other).Match = interop.RegionMatch(subblossom, blossomMatch.Edge.Reversed())
		m.region(other).HasMatch = true
	}

	res.Weight += ids.TotalWeight(m.region(region).Radius.YIntercept())

	index := 0
	for i, c := range children {
		if c.Region == subblossom {
			index = i

			break
		}
	}
	numChildren := len(children)

	for i := 0; i < numChildren-1; i += 2 {
		re1 := children[(index+i+1)%numChildren]
		re2 := children[(index+i+2)%numChildren]
		r1, r2, e := re1.Region, re2.Region, re1.Edge

		m.region(r1).Match = interop.RegionMatch(r2, e)
		m.region(r1).HasMatch = true
		m.region(r2).Match = interop.RegionMatch(r1, e.Reversed())
		m.region(r2).HasMatch = true

		res.Add(m.ShatterBlossomAndExtractMatches(r1))
	}

	m.Flooder.RegionArena.Free(arena.Index(region))

	return subblossom
}

func (m *Matcher) rescheduleRegionNodes(region ids.RegionIndex) {
	for _, node := range m.region(region).ShellArea {
		m.Flooder.RescheduleEventsAtDetectorNode(node)
	}
}

// Reset clears the flooder and the alternating-tree arena, for reuse
// across decodes.
func (m *Matcher) Reset() {
	m.Flooder.Reset()
	m.NodeArena.Clear()
}
