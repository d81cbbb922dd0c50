package ticksched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCancelAllThenRepeatOrdering resolves the spec's Open Question: a
// handler that calls both ctx.CancelAll() and ctx.Repeat() sees the
// just-repeated task survive the current tick (Repeat is immediate), but
// get removed by the deferred CancelAll at the start of the *next* tick —
// CancelAll is never allowed to "protect" the task that issued it.
func TestCancelAllThenRepeatOrdering(t *testing.T) {
	s := newTestScheduler()
	var fireCount int

	s.Schedule(10*time.Millisecond, func(ctx *TaskContext) {
		fireCount++
		ctx.CancelAll()
		ctx.RepeatSame()
	})

	s.Update(10 * time.Millisecond)
	require.Equal(t, 1, fireCount)
	// Repeat took effect immediately: the task is back in the queue.
	require.Equal(t, 1, s.Len())

	s.Update(0)
	// The deferred CancelAll from the previous tick's handler now runs,
	// at the start of this tick's drain, removing the repeated task
	// before it could ever become due again.
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, fireCount)
}

// TestCancelGroupThenRepeatSameGroupOrdering is the same scenario scoped
// to a single group, confirming the ordering isn't an artifact of
// CancelAll specifically.
func TestCancelGroupThenRepeatSameGroupOrdering(t *testing.T) {
	s := newTestScheduler()
	var fireCount int

	s.ScheduleGroup(10*time.Millisecond, 42, func(ctx *TaskContext) {
		fireCount++
		ctx.CancelGroup(42)
		ctx.RepeatSame()
	})

	s.Update(10 * time.Millisecond)
	require.Equal(t, 1, s.Len())

	s.Update(0)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, fireCount)
}
