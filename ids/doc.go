// Package ids collects the small index and mask types shared across
// matchgraph, flooder, alttree, matcher and searchgraph. They live in one
// leaf package, independent of arena, so that those packages can refer to
// each other's index types (a DetectorNode needs to name the RegionIndex
// that owns it; a FillRegion needs to name the AltTreeIndex pairing
// it) without an import cycle.
package ids
