package searchgraph

import (
	"container/heap"
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/qecmatch/ids"
)

// ErrNoPath is returned when no path exists between the requested
// source and target.
var ErrNoPath = errors.New("searchgraph: no path between requested nodes")

// edge is one directed half of an undirected adjacency entry.
type edge struct {
	to      ids.NodeIndex
	weight  ids.Weight
	obsMask ids.ObsMask
}

// Graph is a static weighted adjacency list over detector nodes plus
// the synthetic ids.Boundary node, used only to recover the physical
// path a matched pair of detectors corresponds to.
type Graph struct {
	adjacency      map[ids.NodeIndex][]edge
	numObservables int
}

// New returns an empty Graph over numNodes detectors.
func New(numNodes, numObservables int) *Graph {
	g := &Graph{
		adjacency:      make(map[ids.NodeIndex][]edge, numNodes+1),
		numObservables: numObservables,
	}
	for i := 0; i < numNodes; i++ {
		g.adjacency[ids.NodeIndex(i)] = nil
	}

	return g
}

// AddEdge adds an edge between two detector nodes. Self-loops are
// ignored: they contribute nothing to any shortest path.
func (g *Graph) AddEdge(u, v int, weight ids.Weight, obsMask ids.ObsMask) {
	if u == v {
		return
	}
	a, b := ids.NodeIndex(u), ids.NodeIndex(v)
	g.adjacency[a] = append(g.adjacency[a], edge{to: b, weight: weight, obsMask: obsMask})
	g.adjacency[b] = append(g.adjacency[b], edge{to: a, weight: weight, obsMask: obsMask})
}

// AddBoundaryEdge adds an edge from u to the synthetic ids.Boundary node.
func (g *Graph) AddBoundaryEdge(u int, weight ids.Weight, obsMask ids.ObsMask) {
	a := ids.NodeIndex(u)
	g.adjacency[a] = append(g.adjacency[a], edge{to: ids.Boundary, weight: weight, obsMask: obsMask})
	g.adjacency[ids.Boundary] = append(g.adjacency[ids.Boundary], edge{to: a, weight: weight, obsMask: obsMask})
}

// Path is the result of a shortest-path query: the detector nodes
// visited in order (ids.Boundary standing in for the boundary node),
// the XOR of every observable crossed, and the total weight.
type Path struct {
	Nodes   []ids.NodeIndex
	ObsMask ids.ObsMask
	Weight  ids.TotalWeight
}

// ShortestPath finds the minimum-weight path from detector "from" to
// either detector "to" or, if toIsBoundary is true, ids.Boundary.
func (g *Graph) ShortestPath(from, to int, toIsBoundary bool) (Path, error) {
	source := ids.NodeIndex(from)
	target := ids.Boundary
	if !toIsBoundary {
		target = ids.NodeIndex(to)
	}

	dist, prev, obsToHere := g.dijkstra(source)

	d, ok := dist[target]
	if !ok || d == math.MaxInt64 {
		return Path{}, errors.Wrapf(ErrNoPath, "from %d to %d (boundary=%v)", from, to, toIsBoundary)
	}

	var nodes []ids.NodeIndex
	cur := target
	for cur != source {
		nodes = append([]ids.NodeIndex{cur}, nodes...)
		p, ok := prev[cur]
		if !ok {
			return Path{}, errors.Errorf("searchgraph: broken predecessor chain at %d", cur)
		}
		cur = p
	}
	nodes = append([]ids.NodeIndex{source}, nodes...)

	return Path{Nodes: nodes, ObsMask: obsToHere[target], Weight: ids.TotalWeight(d)}, nil
}

// dijkstra runs a single-source shortest-path relaxation from source
// over the graph's adjacency list using a lazy-decrease-key min-heap,
// returning distance, predecessor, and accumulated-observable-mask
// maps keyed by node.
func (g *Graph) dijkstra(source ids.NodeIndex) (dist map[ids.NodeIndex]int64, prev map[ids.NodeIndex]ids.NodeIndex, obs map[ids.NodeIndex]ids.ObsMask) {
	dist = make(map[ids.NodeIndex]int64, len(g.adjacency))
	prev = make(map[ids.NodeIndex]ids.NodeIndex, len(g.adjacency))
	obs = make(map[ids.NodeIndex]ids.ObsMask, len(g.adjacency))
	visited := make(map[ids.NodeIndex]bool, len(g.adjacency))

	for n := range g.adjacency {
		dist[n] = math.MaxInt64
	}
	dist[source] = 0

	pq := make(nodePQ, 0, len(g.adjacency))
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{node: source, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		if visited[item.node] {
			continue
		}
		visited[item.node] = true

		for _, e := range g.adjacency[item.node] {
			if visited[e.to] {
				continue
			}
			nd := dist[item.node] + int64(e.weight)
			if nd < dist[e.to] {
				dist[e.to] = nd
				prev[e.to] = item.node
				obs[e.to] = obs[item.node] ^ e.obsMask
				heap.Push(&pq, &nodeItem{node: e.to, dist: nd})
			}
		}
	}

	return dist, prev, obs
}

// nodeItem is one entry in the priority queue: a node and its
// currently-known tentative distance from the source.
type nodeItem struct {
	node ids.NodeIndex
	dist int64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, used for Dijkstra's
// lazy-decrease-key relaxation.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
