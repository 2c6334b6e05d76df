package eventtracker

import "github.com/katalvlaran/qecmatch/varying"

// Decision is the outcome of processing a dequeued event against its
// Tracker.
type Decision int

const (
	// Stale means the dequeued event must be discarded without acting
	// on it: either it was superseded, or another copy is already
	// pending.
	Stale Decision = iota
	// Process means the dequeued event is authoritative and the owner
	// should act on it now.
	Process
)

// Tracker is the desired/queued event latch for one owner (a detector
// node or a fill region). The zero value has no desired and no queued
// event.
//
// Times are reasoned about in cumulative time (varying.Time), not the
// radix heap's 32-bit cyclic time, since deciding "strictly earlier"
// requires a total order without wraparound.
type Tracker struct {
	desiredTime varying.Time
	hasDesired  bool
	queuedTime  varying.Time
	hasQueued   bool
}

// SetDesired records that the owner now wants an event at time t. If
// there is no event currently queued, or the queued one is later than
// t, a new queue entry is created via enqueue and becomes the queued
// time. An older, now-superseded queue entry is deliberately left in
// place — it will be recognised and dropped by DequeueDecision.
func (tr *Tracker) SetDesired(t varying.Time, enqueue func(varying.Time)) {
	tr.hasDesired = true
	tr.desiredTime = t

	if !tr.hasQueued || t < tr.queuedTime {
		tr.hasQueued = true
		tr.queuedTime = t
		enqueue(t)
	}
}

// SetNoDesired clears the desired flag without touching the queue.
// The next dequeue of this owner's queued entry (if any) will then
// resolve to Stale.
func (tr *Tracker) SetNoDesired() {
	tr.hasDesired = false
}

// DequeueDecision is called when an event claiming to belong to this
// tracker has just been popped from the queue at eventTime. It
// returns Process exactly once per authoritative event; every other
// dequeue for this tracker returns Stale, re-enqueuing the real
// desired time via enqueue if one exists and differs from eventTime.
func (tr *Tracker) DequeueDecision(eventTime varying.Time, enqueue func(varying.Time)) Decision {
	if !tr.hasQueued || tr.queuedTime != eventTime {
		return Stale
	}
	tr.hasQueued = false

	if !tr.hasDesired {
		return Stale
	}

	if tr.desiredTime != eventTime {
		tr.hasQueued = true
		tr.queuedTime = tr.desiredTime
		enqueue(tr.desiredTime)

		return Stale
	}

	tr.hasDesired = false

	return Process
}

// Reset clears both the desired and queued flags, for node/region
// recycling between decodes.
func (tr *Tracker) Reset() {
	*tr = Tracker{}
}
