// Package searchgraph reconstructs the physical node path (and the
// observables it crosses) between two detectors the matcher has already
// paired. It runs a dedicated Dijkstra relaxation loop over a static
// adjacency list keyed by ids.NodeIndex, not over a general-purpose
// graph type: the matcher's own matchgraph.Graph carries per-decode
// event-driven state, while path reconstruction needs only a plain
// one-shot shortest-path query over the same discretized (doubled,
// non-negative) weights, so it gets its own minimal graph
// representation sized to exactly that job.
package searchgraph
