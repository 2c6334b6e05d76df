// Package driver is the user-facing layer: UserGraph accumulates edges
// from either manual calls or a parsed detector error model, discretizes
// their floating-point weights into the integer weights the matcher
// works with, and builds the matchgraph.Graph / searchgraph.Graph pair
// on demand. Matching wraps a UserGraph plus a cached matcher.Matcher
// and exposes the decode entry points (Decode, DecodeBatch,
// DecodeToEdges) a caller actually wants.
package driver
