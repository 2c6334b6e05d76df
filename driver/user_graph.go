package driver

import (
	"math"

	"github.com/katalvlaran/qecmatch/ids"
	"github.com/katalvlaran/qecmatch/matchgraph"
	"github.com/katalvlaran/qecmatch/searchgraph"
)

// NumDistinctWeights bounds the discretized weight range, matching
// PyMatching's NUM_DISTINCT_WEIGHTS = 1 << (sizeof(weight_int)*8 - 8)
// for a 32-bit weight integer.
const NumDistinctWeights ids.Weight = 1 << 24

// UserNode carries per-node metadata a UserGraph tracks on top of the
// bare node count: whether this node has been marked a boundary by
// SetBoundary.
type UserNode struct {
	IsBoundary bool
}

// UserEdge is a user-facing edge between two detectors, or between one
// detector and the boundary when HasNode2 is false.
type UserEdge struct {
	Node1             int
	Node2             int
	HasNode2          bool
	ObservableIndices []int
	Weight            float64
	ErrorProbability  float64
}

// UserGraph accumulates edges from manual calls or a parsed detector
// error model (it implements dem.Builder), and converts them on demand
// into a matchgraph.Graph or searchgraph.Graph with discretized
// integer weights.
type UserGraph struct {
	Nodes          []UserNode
	Edges          []UserEdge
	BoundaryNodes  map[int]struct{}
	NumObservables int

	allEdgesHaveErrorProbabilities bool
}

// NewUserGraph returns an empty UserGraph.
func NewUserGraph() *UserGraph {
	return &UserGraph{
		BoundaryNodes:                  make(map[int]struct{}),
		allEdgesHaveErrorProbabilities: true,
	}
}

func (g *UserGraph) ensureNode(id int) {
	for id >= len(g.Nodes) {
		g.Nodes = append(g.Nodes, UserNode{})
	}
}

func (g *UserGraph) updateNumObservables(observables []int) {
	for _, obs := range observables {
		if obs+1 > g.NumObservables {
			g.NumObservables = obs + 1
		}
	}
}

// AddEdge adds an edge between two detector nodes.
func (g *UserGraph) AddEdge(node1, node2 int, observables []int, weight, errorProbability float64) {
	n := node1
	if node2 > n {
		n = node2
	}
	g.ensureNode(n)
	g.updateNumObservables(observables)
	if errorProbability < 0 || errorProbability > 1 {
		g.allEdgesHaveErrorProbabilities = false
	}
	g.Edges = append(g.Edges, UserEdge{
		Node1: node1, Node2: node2, HasNode2: true,
		ObservableIndices: observables, Weight: weight, ErrorProbability: errorProbability,
	})
}

// AddBoundaryEdge adds an edge from a detector node to the boundary.
func (g *UserGraph) AddBoundaryEdge(node int, observables []int, weight, errorProbability float64) {
	g.ensureNode(node)
	g.updateNumObservables(observables)
	if errorProbability < 0 || errorProbability > 1 {
		g.allEdgesHaveErrorProbabilities = false
	}
	g.Edges = append(g.Edges, UserEdge{
		Node1: node, HasNode2: false,
		ObservableIndices: observables, Weight: weight, ErrorProbability: errorProbability,
	})
}

// SetBoundary replaces the set of nodes treated as boundary nodes.
func (g *UserGraph) SetBoundary(nodes []int) {
	for n := range g.BoundaryNodes {
		if n < len(g.Nodes) {
			g.Nodes[n].IsBoundary = false
		}
	}

	g.BoundaryNodes = make(map[int]struct{}, len(nodes))
	maxBoundary := -1
	for _, n := range nodes {
		g.BoundaryNodes[n] = struct{}{}
		if n > maxBoundary {
			maxBoundary = n
		}
	}
	if maxBoundary >= 0 {
		g.ensureNode(maxBoundary)
	}
	for n := range g.BoundaryNodes {
		g.Nodes[n].IsBoundary = true
	}
}

// IsBoundaryNode reports whether nodeID has been marked a boundary node.
func (g *UserGraph) IsBoundaryNode(nodeID int) bool {
	return nodeID < len(g.Nodes) && g.Nodes[nodeID].IsBoundary
}

func (g *UserGraph) edgeEndpointIsBoundary(node int, present bool) bool {
	if !present {
		return true
	}

	return g.IsBoundaryNode(node)
}

func (g *UserGraph) maxAbsWeight() float64 {
	max := 0.0
	for _, e := range g.Edges {
		if w := math.Abs(e.Weight); w > max {
			max = w
		}
	}

	return max
}

// normalisingConstant returns 1.0 when every edge weight is already
// integral, and otherwise the scale factor that maps the largest-
// magnitude weight onto numDistinctWeights-1.
func (g *UserGraph) normalisingConstant(numDistinctWeights ids.Weight) float64 {
	maxAbs := g.maxAbsWeight()
	allIntegral := true
	for _, e := range g.Edges {
		if math.Round(e.Weight) != e.Weight {
			allIntegral = false
			break
		}
	}
	if allIntegral {
		return 1.0
	}

	return float64(numDistinctWeights-1) / maxAbs
}

func obsMaskOf(observables []int) ids.ObsMask {
	var mask ids.ObsMask
	for _, obs := range observables {
		mask ^= 1 << uint(obs)
	}

	return mask
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}

	return x
}

// ToMatchingGraph discretizes every edge weight (doubled, so that two
// regions growing toward each other still collide at an integer time)
// and builds the matchgraph.Graph the flooder runs over.
func (g *UserGraph) ToMatchingGraph(numDistinctWeights ids.Weight) *matchgraph.Graph {
	mg := matchgraph.New(len(g.Nodes), g.NumObservables)
	norm := g.normalisingConstant(numDistinctWeights)

	for _, e := range g.Edges {
		w := ids.SignedWeight(math.Round(e.Weight*norm)) * 2
		n1Boundary := g.edgeEndpointIsBoundary(e.Node1, true)
		n2Boundary := g.edgeEndpointIsBoundary(e.Node2, e.HasNode2)

		switch {
		case n2Boundary && !n1Boundary:
			mg.AddBoundaryEdge(e.Node1, w, e.ObservableIndices)
		case n1Boundary && !n2Boundary:
			mg.AddBoundaryEdge(e.Node2, w, e.ObservableIndices)
		case !n1Boundary && !n2Boundary:
			mg.AddEdge(e.Node1, e.Node2, w, e.ObservableIndices)
		}
	}

	mg.NormalisingConstant = norm * 2.0

	if len(g.BoundaryNodes) > 0 {
		mg.IsUserGraphBoundaryNode = make([]bool, len(g.Nodes))
		for n := range g.BoundaryNodes {
			mg.IsUserGraphBoundaryNode[n] = true
		}
	}

	return mg
}

// ToSearchGraph builds the static searchgraph.Graph used for physical
// path reconstruction, with the same discretized weights (as
// magnitudes, since search distances are never negative).
func (g *UserGraph) ToSearchGraph(numDistinctWeights ids.Weight) *searchgraph.Graph {
	sg := searchgraph.New(len(g.Nodes), g.NumObservables)
	norm := g.normalisingConstant(numDistinctWeights)

	for _, e := range g.Edges {
		wSigned := ids.SignedWeight(math.Round(e.Weight*norm)) * 2
		w := ids.Weight(abs32(int32(wSigned)))
		mask := obsMaskOf(e.ObservableIndices)
		n1Boundary := g.edgeEndpointIsBoundary(e.Node1, true)
		n2Boundary := g.edgeEndpointIsBoundary(e.Node2, e.HasNode2)

		switch {
		case n2Boundary && !n1Boundary:
			sg.AddBoundaryEdge(e.Node1, w, mask)
		case n1Boundary && !n2Boundary:
			sg.AddBoundaryEdge(e.Node2, w, mask)
		case !n1Boundary && !n2Boundary:
			sg.AddEdge(e.Node1, e.Node2, w, mask)
		}
	}

	return sg
}

// EnsureNode implements dem.Builder.
func (g *UserGraph) EnsureNode(idx int) { g.ensureNode(idx) }

// HandleError implements dem.Builder: it converts an error probability
// into a weight via the log-likelihood-ratio ln((1-p)/p) and adds the
// corresponding detector-to-detector or boundary edge.
func (g *UserGraph) HandleError(p float64, detectors, observables []int) {
	weight := math.Log((1 - p) / p)
	switch len(detectors) {
	case 2:
		g.AddEdge(detectors[0], detectors[1], observables, weight, p)
	case 1:
		g.AddBoundaryEdge(detectors[0], observables, weight, p)
	}
}

// GetNumEdges returns the number of edges added so far.
func (g *UserGraph) GetNumEdges() int { return len(g.Edges) }

// GetNumNodes returns the number of nodes the graph currently spans.
func (g *UserGraph) GetNumNodes() int { return len(g.Nodes) }

// GetNumDetectors returns the number of non-boundary nodes.
func (g *UserGraph) GetNumDetectors() int { return len(g.Nodes) - len(g.BoundaryNodes) }
