// Package varying implements a bit-packed, piecewise-linear value of
// time: the radius of a growing, frozen, or shrinking fill region.
//
// A Varying encodes f(t) = y + s·t as a single int64: the low two bits
// carry the slope s ∈ {shrinking, frozen, growing}, the remaining bits
// carry y, the value the line would take at time zero. This keeps a
// region's radius — looked up on every collision check in the graph
// flooder's hot loop — to one int64 comparison-free load, at the cost
// of restricting y to 62 bits of range (ample for the doubled integer
// weights this decoder uses; see the driver's edge-normalisation
// doubling).
//
// All operations are constant-time arithmetic; there is no allocation
// and no branch beyond the 2-bit slope tag.
package varying
