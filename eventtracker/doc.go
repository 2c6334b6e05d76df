// Package eventtracker implements the "desired/queued" latch each
// detector node and each fill region uses to keep the radix heap free
// of random-access cancellation.
//
// The radix heap (package radixheap) has no remove-by-key operation:
// once an event is enqueued it can only be popped in time order. When
// a node or region's next event changes — a neighbor arrives earlier
// than expected, a shrink gets reordered — the old queue entry cannot
// be deleted, only superseded. Tracker records what the owner
// currently *wants* (desired) separately from what is currently
// *sitting in the queue* (queued), and on dequeue decides whether the
// popped entry is still authoritative or must be discarded as stale,
// possibly re-enqueuing the real desired time in its place.
//
// SetDesired only enqueues when there is no queued entry or the new
// time is strictly earlier, so a later desired time never creates a
// second queue entry — it waits to be discovered stale when the earlier
// one is dequeued. Each strictly earlier desired time does enqueue a new
// entry and leaves the previous one in the queue, to be dropped as stale
// when it is dequeued.
package eventtracker
