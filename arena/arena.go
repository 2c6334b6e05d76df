package arena

// Index addresses a single slot in an Arena. None is never a valid
// allocation; callers use it as the sentinel for "no such region" /
// "no such alt-tree node".
type Index int32

// None is the sentinel Index meaning "absent".
const None Index = -1

// Valid reports whether i refers to a real slot (i.e. is not None).
func (i Index) Valid() bool { return i >= 0 }

// Arena is an index-addressed pool of T with O(1) allocate/free.
//
// The zero value is ready to use. Arena is not safe for concurrent use;
// callers (flooder, matcher) already serialize access to their arenas
// as part of the single-threaded decode model.
type Arena[T any] struct {
	slots []T
	free  []Index
}

// New returns an empty Arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Alloc returns the index of a fresh, zero-valued T, reusing a freed
// slot if the free list is non-empty.
//
// Complexity: amortised O(1).
func (a *Arena[T]) Alloc() Index {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		var zero T
		a.slots[idx] = zero
		return idx
	}

	var zero T
	a.slots = append(a.slots, zero)

	return Index(len(a.slots) - 1)
}

// Free returns slot i to the free list for later reuse. It does not
// zero or otherwise touch the slot's current content; readers must
// have already dropped any index into i before calling Free.
//
// Complexity: O(1).
func (a *Arena[T]) Free(i Index) {
	a.free = append(a.free, i)
}

// Get returns a pointer to slot i's content. i must be a live index
// returned by Alloc and not yet passed to Free.
//
// Complexity: O(1).
func (a *Arena[T]) Get(i Index) *T {
	return &a.slots[i]
}

// Len returns the number of slots ever allocated, including freed
// ones still occupying backing storage.
func (a *Arena[T]) Len() int {
	return len(a.slots)
}

// Clear empties the arena: both the backing storage and the free
// list are reset to length zero. Capacity is retained so that a
// solver reused across decodes (per spec's reset contract) does not
// re-allocate on every decode.
//
// Complexity: O(1).
func (a *Arena[T]) Clear() {
	a.slots = a.slots[:0]
	a.free = a.free[:0]
}
