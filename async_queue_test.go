package ticksched

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsyncQueueFIFO(t *testing.T) {
	q := newAsyncQueue()
	var order []int
	q.Push(func() { order = append(order, 1) })
	q.Push(func() { order = append(order, 2) })
	q.Push(func() { order = append(order, 3) })

	q.Drain()

	assert.Equal(t, []int{1, 2, 3}, order)
	assert.True(t, q.IsEmpty())
}

// TestAsyncQueueDrainFixedPoint verifies that a callable which itself
// pushes another callable during the drain is also run before Drain
// returns, per spec §4.4.
func TestAsyncQueueDrainFixedPoint(t *testing.T) {
	q := newAsyncQueue()
	var order []int
	q.Push(func() {
		order = append(order, 1)
		q.Push(func() { order = append(order, 2) })
	})

	q.Drain()

	assert.Equal(t, []int{1, 2}, order)
	assert.True(t, q.IsEmpty())
}

func TestAsyncQueueDrainEmpty(t *testing.T) {
	q := newAsyncQueue()
	assert.NotPanics(t, func() { q.Drain() })
	assert.True(t, q.IsEmpty())
}
