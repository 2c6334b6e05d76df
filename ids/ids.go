package ids

// NodeIndex addresses a detector node in a matchgraph.Graph. Boundary is
// the sentinel used for an edge that connects a node to the virtual
// boundary rather than to another detector.
type NodeIndex int32

// Boundary is the sentinel NodeIndex standing in for "the boundary", used
// as a neighbor entry rather than as a real slot in Graph.Nodes.
const Boundary NodeIndex = -1

// Valid reports whether n addresses a real node (neither Boundary nor the
// zero value of an absent optional).
func (n NodeIndex) Valid() bool { return n >= 0 }

// RegionIndex addresses a flooder.FillRegion in a flooder's region arena.
type RegionIndex int32

// NoRegion is the sentinel RegionIndex meaning "no region", mirroring
// arena.None so it can be stored directly in arena-backed slices.
const NoRegion RegionIndex = -1

// Valid reports whether r addresses an allocated region.
func (r RegionIndex) Valid() bool { return r >= 0 }

// AltTreeIndex addresses an alttree.Node in a matcher's node arena.
type AltTreeIndex int32

// NoAltTreeNode is the sentinel AltTreeIndex meaning "not in any tree".
const NoAltTreeNode AltTreeIndex = -1

// Valid reports whether a addresses an allocated alternating-tree node.
func (a AltTreeIndex) Valid() bool { return a >= 0 }

// ObsMask is a bitmask over observable indices, XOR-accumulated along
// paths through the graph. For a graph with more than 64 observables,
// matchgraph records a zero mask on every edge, so no observable's
// crossing parity is tracked and every prediction reads 0.
type ObsMask uint64

// Weight is a non-negative edge weight after negative-weight fixup.
type Weight uint32

// SignedWeight is an edge weight as given by the detector error model,
// before fixup, which may be negative.
type SignedWeight int32

// TotalWeight accumulates Weight values (and the negative-weight
// correction) across an entire decode; it must not overflow for the
// weight ranges matching graphs use in practice.
type TotalWeight int64
