// Package qecmatch implements a minimum-weight perfect-matching decoder
// for quantum error correction syndromes.
//
// A detector error model (parsed by the dem package) or a manually
// built graph (driver.UserGraph) describes which error mechanisms
// connect which detectors and with what weight. driver.Matching
// compiles that description into an event-driven matching graph
// (matchgraph) and decodes syndromes by running a continuous-time
// blossom algorithm: nodes grow outward at unit rate (flooder),
// colliding regions fuse into alternating trees and blossoms
// (alttree, matcher), and a radix heap (radixheap) schedules the next
// event across the whole graph in expected O(1) per step.
//
// searchgraph offers a separate, static shortest-path view of the
// same topology for post-hoc edge/path reconstruction between two
// detectors, independent of the solver's event timeline.
//
// cmd/mwpmdecode wraps driver in a line-oriented CLI for decoding
// syndromes read from stdin against a DEM file.
package qecmatch
