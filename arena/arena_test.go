package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_AllocGrows(t *testing.T) {
	a := New[int]()

	i0 := a.Alloc()
	i1 := a.Alloc()
	i2 := a.Alloc()

	assert.Equal(t, Index(0), i0)
	assert.Equal(t, Index(1), i1)
	assert.Equal(t, Index(2), i2)
	assert.Equal(t, 3, a.Len())
}

func TestArena_FreeReusesSlot(t *testing.T) {
	a := New[int]()

	i0 := a.Alloc()
	*a.Get(i0) = 42

	i1 := a.Alloc()
	a.Free(i0)

	i2 := a.Alloc()
	require.Equal(t, i0, i2, "freed slot should be reused before growing")
	assert.Equal(t, 0, *a.Get(i2), "reused slot must be zeroed")
	assert.Equal(t, 2, a.Len(), "freeing then reallocating must not grow the backing slice")

	_ = i1
}

func TestArena_FreeDoesNotTouchContentUntilRealloc(t *testing.T) {
	a := New[string]()

	i0 := a.Alloc()
	*a.Get(i0) = "hello"
	a.Free(i0)

	// Free must not zero the slot in place; only the next Alloc does.
	assert.Equal(t, "hello", *a.Get(i0))
}

func TestArena_Clear(t *testing.T) {
	a := New[int]()
	a.Alloc()
	a.Alloc()
	a.Free(Index(0))

	a.Clear()

	assert.Equal(t, 0, a.Len())
	i := a.Alloc()
	assert.Equal(t, Index(0), i, "clear must reset both storage and free list")
}

func TestIndex_Valid(t *testing.T) {
	assert.False(t, None.Valid())
	assert.True(t, Index(0).Valid())
}
