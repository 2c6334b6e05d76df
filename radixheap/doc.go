// Package radixheap implements a 33-bucket monotonic radix-heap
// priority queue keyed on a 32-bit cyclic time.
//
// The graph flooder's event timeline only ever enqueues events at or
// after the queue's current time, and only ever needs the minimum;
// a radix heap exploits that monotonicity for amortised O(1)
// enqueue/dequeue instead of a general O(log n) binary heap, at the
// cost of giving up arbitrary insertion order (see lvlath/dijkstra's
// container/heap-based priority queue for the general-purpose
// counterpart this package intentionally does not reuse: Dijkstra's
// relaxation can decrease a key to any future time, the flooder's
// events cannot move backward once enqueued).
//
// Bucket i holds every pending event whose time, XORed with the
// queue's current time, has its highest set bit at position i-1
// (bucket 0 is reserved for events exactly at the current time).
// Dequeue drains the lowest non-empty bucket above 0 into lower
// buckets exactly once per redistribution, which bounds the total
// redistribution work across the queue's lifetime by the number of
// significant bits each event's time spans.
package radixheap
