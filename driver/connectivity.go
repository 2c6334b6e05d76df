package driver

import "sort"

// ConnectedComponents partitions the graph's node indices into
// connectivity components, ignoring edge weight and the distinction
// between boundary and non-boundary nodes. A matching graph that
// splits into more than one component away from the boundary cannot
// pair detectors across components, which usually signals a malformed
// detector error model rather than an intentional topology.
func (g *UserGraph) ConnectedComponents() [][]int {
	adjacency := make([][]int, len(g.Nodes))
	for _, e := range g.Edges {
		if !e.HasNode2 {
			continue
		}
		adjacency[e.Node1] = append(adjacency[e.Node1], e.Node2)
		adjacency[e.Node2] = append(adjacency[e.Node2], e.Node1)
	}

	visited := make([]bool, len(g.Nodes))
	var components [][]int
	for start := range g.Nodes {
		if visited[start] {
			continue
		}

		component := bfsComponent(adjacency, visited, start)
		sort.Ints(component)
		components = append(components, component)
	}

	return components
}

// bfsComponent explores every node reachable from start and marks it
// visited, returning the set of reached node indices.
func bfsComponent(adjacency [][]int, visited []bool, start int) []int {
	visited[start] = true
	queue := []int{start}
	component := []int{start}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, next := range adjacency[node] {
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
			component = append(component, next)
		}
	}

	return component
}
