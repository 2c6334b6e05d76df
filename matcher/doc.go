// Package matcher drives a flooder.Flooder forward one MwpmEvent at a
// time and reacts to each notification by growing, rotating and pruning
// an alternating tree (package alttree): region-hits-boundary freezes a
// tree into matches, region-hits-region either forms a blossom (same
// tree) or augments the global matching (different trees or an existing
// match), and blossom-shatter un-contracts a blossom back into its
// cycle of child regions, matching the even-length arcs and re-rooting
// the tree at whichever child sits between the blossom's former parent
// and child tree edges.
//
// This is the one part of the decoder the original Rust implementation
// this project is grounded on left as an explicit placeholder; the
// algorithm here (blossom formation in handleTreeHittingSameTree,
// shattering in handleBlossomShattering, match-weight extraction in
// ShatterBlossomAndExtractMatches) is a complete implementation of it.
package matcher
