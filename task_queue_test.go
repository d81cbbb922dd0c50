package ticksched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkTask(seq uint64, deadline time.Time) *task {
	return &task{deadline: deadline, seq: seq}
}

func TestTaskQueueFirstIsMinimum(t *testing.T) {
	base := time.Unix(0, 0)
	q := newTaskQueue()
	q.Insert(mkTask(1, base.Add(30*time.Millisecond)))
	q.Insert(mkTask(2, base.Add(10*time.Millisecond)))
	q.Insert(mkTask(3, base.Add(20*time.Millisecond)))

	require.Equal(t, base.Add(10*time.Millisecond), q.First().deadline)

	got := q.PopMin()
	assert.Equal(t, uint64(2), got.seq)
	require.Equal(t, base.Add(20*time.Millisecond), q.First().deadline)
}

func TestTaskQueueStableTieBreak(t *testing.T) {
	base := time.Unix(0, 0)
	q := newTaskQueue()
	// All three share a deadline; insertion sequence must break the tie.
	q.Insert(mkTask(3, base))
	q.Insert(mkTask(1, base))
	q.Insert(mkTask(2, base))

	var order []uint64
	for !q.IsEmpty() {
		order = append(order, q.PopMin().seq)
	}
	assert.Equal(t, []uint64{1, 2, 3}, order)
}

func TestTaskQueuePopEmptyPanics(t *testing.T) {
	q := newTaskQueue()
	assert.PanicsWithError(t, ErrQueueEmpty.Error(), func() { q.PopMin() })
	assert.PanicsWithError(t, ErrQueueEmpty.Error(), func() { q.First() })
}

func TestTaskQueueRemoveIf(t *testing.T) {
	base := time.Unix(0, 0)
	q := newTaskQueue()
	g7, g8 := uint64(7), uint64(8)
	t1 := &task{seq: 1, deadline: base.Add(time.Millisecond), group: &g7}
	t2 := &task{seq: 2, deadline: base.Add(2 * time.Millisecond), group: &g8}
	t3 := &task{seq: 3, deadline: base.Add(3 * time.Millisecond), group: &g7}
	q.Insert(t1)
	q.Insert(t2)
	q.Insert(t3)

	q.RemoveIf(func(tk *task) bool { return tk.inGroup(7) })

	require.Equal(t, 1, q.Len())
	assert.Equal(t, uint64(2), q.First().seq)
}

func TestTaskQueueModifyIfPreservesHeapInvariant(t *testing.T) {
	base := time.Unix(0, 0)
	q := newTaskQueue()
	q.Insert(mkTask(1, base.Add(10*time.Millisecond)))
	q.Insert(mkTask(2, base.Add(20*time.Millisecond)))
	q.Insert(mkTask(3, base.Add(30*time.Millisecond)))

	// Push task 1 far into the future; it should no longer be first.
	q.ModifyIf(func(tk *task) bool { return tk.seq == 1 }, func(tk *task) {
		tk.deadline = base.Add(100 * time.Millisecond)
	})

	require.Equal(t, uint64(2), q.First().seq)
}

func TestTaskQueueClear(t *testing.T) {
	q := newTaskQueue()
	q.Insert(mkTask(1, time.Unix(0, 0)))
	q.Clear()
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, q.Len())
}
