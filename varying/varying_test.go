package varying

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVarying_FrozenEval(t *testing.T) {
	v := Frozen(5)
	assert.True(t, v.IsFrozen())
	assert.Equal(t, Time(5), v.Eval(0))
	assert.Equal(t, Time(5), v.Eval(100))
	assert.Equal(t, Time(5), v.YIntercept())
}

func TestVarying_GrowingWithZeroDistanceAt(t *testing.T) {
	v := GrowingWithZeroDistanceAt(10)
	assert.True(t, v.IsGrowing())
	assert.Equal(t, Time(0), v.Eval(10))
	assert.Equal(t, Time(5), v.Eval(15))
	assert.Equal(t, Time(-5), v.Eval(5))
}

func TestVarying_TimeOfXIntercept(t *testing.T) {
	growing := GrowingWithZeroDistanceAt(10)
	assert.Equal(t, Time(10), growing.TimeOfXIntercept())

	shrinking := growing.ThenShrinkingAt(10) // value 0 at t=10, now shrinking
	assert.Equal(t, Time(10), shrinking.TimeOfXIntercept())
}

func TestVarying_TimeOfXIntercept_FrozenPanics(t *testing.T) {
	v := Frozen(3)
	assert.Panics(t, func() { v.TimeOfXIntercept() })
}

func TestVarying_StateTransitionsPreserveContinuity(t *testing.T) {
	v := GrowingWithZeroDistanceAt(0) // value t at time t

	for _, at := range []Time{0, 3, 7, 20} {
		before := v.Eval(at)

		frozen := v.ThenFrozenAt(at)
		assert.Equal(t, before, frozen.Eval(at), "freeze must preserve value at transition time")

		grown := frozen.ThenGrowingAt(at)
		assert.Equal(t, before, grown.Eval(at), "re-grow must preserve value at transition time")

		shrunk := grown.ThenShrinkingAt(at)
		assert.Equal(t, before, shrunk.Eval(at), "shrink must preserve value at transition time")
	}
}

func TestVarying_TimeOfXInterceptWhenAddedTo(t *testing.T) {
	// Two regions both growing from zero at t=0, connected by an edge of
	// weight w=20 (already doubled per the driver's convention): the
	// flooder computes the collision time as r1.Minus(w).TimeOfXInterceptWhenAddedTo(r2),
	// which should land at w/2 == 10 (combined slope 2).
	const w = Time(20)
	r1 := GrowingWithZeroDistanceAt(0)
	r2 := GrowingWithZeroDistanceAt(0)

	collide := r1.Minus(w).TimeOfXInterceptWhenAddedTo(r2)
	assert.Equal(t, Time(10), collide)
	assert.Equal(t, w, r1.Eval(collide)+r2.Eval(collide), "radii should jointly span the edge weight at collision time")
}

func TestVarying_TimeOfXInterceptWhenAddedTo_OneFrozen(t *testing.T) {
	// r1 growing from zero, r2 frozen at value 4, edge weight w=10: they
	// meet when r1(t) + 4 == 10, i.e. t == 6 (combined slope 1).
	const w = Time(10)
	r1 := GrowingWithZeroDistanceAt(0)
	r2 := Frozen(4)

	collide := r1.Minus(w).TimeOfXInterceptWhenAddedTo(r2)
	assert.Equal(t, Time(6), collide)
}

func TestVarying_CollidingWith(t *testing.T) {
	growing := GrowingWithZeroDistanceAt(0)
	frozen := Frozen(5)
	shrinking := growing.ThenShrinkingAt(0)

	assert.True(t, growing.CollidingWith(frozen))
	assert.True(t, growing.CollidingWith(growing))
	assert.False(t, shrinking.CollidingWith(shrinking))
	assert.False(t, frozen.CollidingWith(frozen))
	assert.False(t, growing.CollidingWith(shrinking), "growing vs shrinking never collide: the gap only widens")
}
