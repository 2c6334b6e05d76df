// Package arena implements an index-addressed object pool with a free list.
//
// The blossom matcher and graph flooder both manage graphs of objects
// (fill regions, alternating-tree nodes) that reference each other by
// stable index rather than by pointer: regions point at parent blossoms,
// alt-tree nodes point at parent/child nodes, and every such reference
// must keep working across repeated create/free cycles within a single
// decode and across decodes. Arena gives both subsystems the same
// allocate/free/reset primitive instead of hand-rolling free lists twice.
//
// Contract:
//   - Alloc reuses a freed slot if one exists, resetting its content to
//     the type's zero value; otherwise it grows the backing slice.
//   - Free pushes the slot onto the free list without touching its
//     content; the slot is not valid to read until it is re-allocated.
//   - Indices are stable for the lifetime of the slot's current
//     allocation only — once Free(i) is called, any other holder of i
//     must not read or write through it again. Arena does not detect
//     this; it is an auditable invariant on callers, not a runtime check
//     (see spec's "Cyclic structures" design note).
//   - Clear empties both the backing slice and the free list.
package arena
