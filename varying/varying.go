package varying

// Time is the signed 64-bit cumulative virtual clock used throughout
// the solver (spec's "cumulative time T"). Time only ever moves
// forward within a single decode.
type Time int64

const (
	slopeFrozen   Time = 0b00
	slopeGrowing  Time = 0b01
	slopeShrinking Time = 0b10
	slopeMask     Time = 0b11
)

// Varying is a bit-packed linear function of Time: the low two bits
// hold the slope, the rest hold the y-intercept (the value the line
// takes at t=0).
//
// The zero value is a frozen Varying with y-intercept 0; it is not
// generally a useful starting point (use Frozen or
// GrowingWithZeroDistanceAt to build one explicitly).
type Varying struct {
	bits Time
}

// Frozen returns a Varying with constant value base.
func Frozen(base Time) Varying {
	return Varying{bits: base << 2}
}

// GrowingWithZeroDistanceAt returns a Varying that is growing (slope
// +1) and evaluates to zero at time t. This is how create_detection_event
// seeds a freshly-allocated region's radius.
func GrowingWithZeroDistanceAt(t Time) Varying {
	return Varying{bits: (-t)<<2 | slopeGrowing}
}

// YIntercept returns the value this Varying would take at time zero.
func (v Varying) YIntercept() Time {
	return v.bits >> 2
}

// IsGrowing reports whether the slope is +1.
func (v Varying) IsGrowing() bool { return v.bits&slopeGrowing != 0 }

// IsShrinking reports whether the slope is -1.
func (v Varying) IsShrinking() bool { return v.bits&slopeShrinking != 0 }

// IsFrozen reports whether the slope is 0.
func (v Varying) IsFrozen() bool { return v.bits&slopeMask == slopeFrozen }

// Eval returns f(t) = y + s·t.
func (v Varying) Eval(t Time) Time {
	switch {
	case v.IsGrowing():
		return v.YIntercept() + t
	case v.IsShrinking():
		return v.YIntercept() - t
	default:
		return v.YIntercept()
	}
}

// TimeOfXIntercept returns the time at which f(t) == 0.
//
// Panics if v is frozen: a constant line has no zero crossing unless
// its value already is zero, and callers (the flooder, when scheduling
// a shrink-to-zero event) never need that degenerate case — a frozen
// varying reaching this call is a programmer error, not an input
// error.
func (v Varying) TimeOfXIntercept() Time {
	switch {
	case v.IsGrowing():
		return -v.YIntercept()
	case v.IsShrinking():
		return v.YIntercept()
	default:
		panic("varying: time_of_x_intercept on a frozen varying")
	}
}

// TimeOfXInterceptWhenAddedTo returns the time at which (v + other)
// evaluates to zero, i.e. the collision time of two approaching
// radii. Both v and other must not be shrinking-vs-shrinking (the
// flooder never calls this for two mutually-receding regions).
func (v Varying) TimeOfXInterceptWhenAddedTo(other Varying) Time {
	negSum := -v.YIntercept() - other.YIntercept()
	if v.IsGrowing() && other.IsGrowing() {
		return negSum >> 1 // combined slope 2: halve (weights are pre-doubled, see driver)
	}

	return negSum // combined slope 1: one side growing, the other frozen
}

// CollidingWith reports whether at least one of v, other is growing
// and neither is shrinking — i.e. whether the pair is approaching
// each other and a finite collision time exists.
func (v Varying) CollidingWith(other Varying) bool {
	return (v.bits|other.bits)&slopeMask == slopeGrowing
}

// ThenGrowingAt returns a Varying that is growing from time t onward,
// continuous with v: result.Eval(t) == v.Eval(t).
func (v Varying) ThenGrowingAt(t Time) Varying {
	return Varying{bits: (v.Eval(t)-t)<<2 | slopeGrowing}
}

// ThenShrinkingAt returns a Varying that is shrinking from time t
// onward, continuous with v.
func (v Varying) ThenShrinkingAt(t Time) Varying {
	return Varying{bits: (v.Eval(t)+t)<<2 | slopeShrinking}
}

// ThenFrozenAt returns a Varying frozen at v's value at time t.
func (v Varying) ThenFrozenAt(t Time) Varying {
	return Varying{bits: v.Eval(t) << 2}
}

// Plus shifts v's y-intercept by delta, leaving its slope unchanged.
// Used when a node inherits a blossom's wrapped radius offset.
func (v Varying) Plus(delta Time) Varying {
	return Varying{bits: v.bits + delta<<2}
}

// Minus shifts v's y-intercept by -delta.
func (v Varying) Minus(delta Time) Varying {
	return Varying{bits: v.bits - delta<<2}
}
