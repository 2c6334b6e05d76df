// Package flooder runs the continuous-time growth simulation at the
// heart of the decoder: detection events grow fill regions outward
// across the graph at unit speed, shrink when the matcher decides to
// absorb a match back into a tree, and report RegionHitRegion,
// RegionHitBoundary and BlossomShatter notifications up to package
// matcher whenever something interesting happens.
//
// Flooder owns the arena of FillRegion values and the radix
// heap of tentative FloodCheckEvent entries; it never decides how to
// respond to a notification (blossom formation, tree augmentation) —
// that belongs to package matcher, which drives the flooder forward one
// notification at a time via RunUntilNextMwpmNotification.
package flooder
