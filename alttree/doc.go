// Package alttree implements the alternating tree: the structure the
// matcher grows over fill regions as it searches for augmenting paths.
// Each Node pairs an inner (shrinking) region with an outer
// (growing) region; the tree root has no inner region. Package matcher
// owns the arena and drives rotation (BecomeRoot), common-ancestor
// queries and path pruning to form and later shatter blossoms.
package alttree
