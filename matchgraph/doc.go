// Package matchgraph holds the decoding graph the flooder runs over: one
// DetectorNode per detector, parallel adjacency arrays of neighbor, weight
// and observable-mask, and a boundary sentinel instead of a real node.
//
// Edge weights arrive from the detector error model as signed; negative
// weights are folded into a graph-wide additive constant and an
// observable/detection-event toggle set at edge-insertion time, following
// the same "min-weight perfect matching over a graph with only
// non-negative weights" reduction used by PyMatching and fusion-blossom.
// Graph holds the resulting accounting fields: the driver applies the
// toggle sets to each syndrome and prediction, while the additive
// constant (NegativeWeightSum) is recorded but not read by the driver.
package matchgraph
