package eventtracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qecmatch/varying"
)

func TestTracker_SetDesiredThenDequeueProcesses(t *testing.T) {
	var tr Tracker
	var enqueued []varying.Time
	enqueue := func(tm varying.Time) { enqueued = append(enqueued, tm) }

	tr.SetDesired(10, enqueue)
	require.Equal(t, []varying.Time{10}, enqueued)

	decision := tr.DequeueDecision(10, enqueue)
	assert.Equal(t, Process, decision)

	// A second dequeue at the same time must not re-process.
	decision = tr.DequeueDecision(10, enqueue)
	assert.Equal(t, Stale, decision)
}

func TestTracker_EarlierDesiredSupersedesLater(t *testing.T) {
	var tr Tracker
	var enqueued []varying.Time
	enqueue := func(tm varying.Time) { enqueued = append(enqueued, tm) }

	tr.SetDesired(10, enqueue)
	tr.SetDesired(5, enqueue) // earlier: must enqueue a second entry
	assert.Equal(t, []varying.Time{10, 5}, enqueued)

	// The earlier entry (5) dequeues first and is authoritative.
	decision := tr.DequeueDecision(5, enqueue)
	assert.Equal(t, Process, decision)

	// The stale entry at 10 dequeues later and must be dropped, with
	// no further desired time to re-enqueue.
	decision = tr.DequeueDecision(10, enqueue)
	assert.Equal(t, Stale, decision)
}

func TestTracker_LaterDesiredDoesNotEnqueueASecondEntry(t *testing.T) {
	var tr Tracker
	var enqueued []varying.Time
	enqueue := func(tm varying.Time) { enqueued = append(enqueued, tm) }

	tr.SetDesired(5, enqueue)
	tr.SetDesired(10, enqueue) // later: must NOT enqueue
	assert.Equal(t, []varying.Time{5}, enqueued)

	// Dequeuing the original entry: the desired time has since moved to
	// 10, so the tracker must report Stale and re-enqueue 10 itself.
	decision := tr.DequeueDecision(5, enqueue)
	assert.Equal(t, Stale, decision)
	assert.Equal(t, []varying.Time{5, 10}, enqueued)

	decision = tr.DequeueDecision(10, enqueue)
	assert.Equal(t, Process, decision)
}

func TestTracker_SetNoDesired(t *testing.T) {
	var tr Tracker
	var enqueued []varying.Time
	enqueue := func(tm varying.Time) { enqueued = append(enqueued, tm) }

	tr.SetDesired(5, enqueue)
	tr.SetNoDesired()

	decision := tr.DequeueDecision(5, enqueue)
	assert.Equal(t, Stale, decision)
	assert.Len(t, enqueued, 1, "clearing desired must not cause a re-enqueue")
}

func TestTracker_DequeueWithNoQueuedEntryIsStale(t *testing.T) {
	var tr Tracker
	enqueue := func(varying.Time) { t.Fatal("must not enqueue") }
	assert.Equal(t, Stale, tr.DequeueDecision(0, enqueue))
}

func TestTracker_Reset(t *testing.T) {
	var tr Tracker
	enqueue := func(varying.Time) {}
	tr.SetDesired(3, enqueue)
	tr.Reset()
	assert.Equal(t, Stale, tr.DequeueDecision(3, enqueue))
}
