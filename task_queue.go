package ticksched

import "container/heap"

// taskQueue is a multiset of *task ordered by (deadline, seq), implemented
// as a container/heap min-heap. It is directly grounded on the teacher's
// timerHeap (eventloop/loop.go): the same heap.Interface shape, over *task
// instead of the teacher's Task+when pair.
//
// The queue is never accessed while a task callback is executing; all
// re-entrant mutation from within a callback is routed through the
// Scheduler's AsyncQueue instead (see task_context.go).
type taskQueue struct {
	items []*task
}

func newTaskQueue() *taskQueue {
	return &taskQueue{items: make([]*task, 0, 16)}
}

// heap.Interface

func (q *taskQueue) Len() int { return len(q.items) }

func (q *taskQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.deadline.Equal(b.deadline) {
		return a.seq < b.seq
	}
	return a.deadline.Before(b.deadline)
}

func (q *taskQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *taskQueue) Push(x any) { q.items = append(q.items, x.(*task)) }

func (q *taskQueue) Pop() any {
	old := q.items
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return t
}

// Insert pushes t into the queue in O(log n).
func (q *taskQueue) Insert(t *task) { heap.Push(q, t) }

// PopMin removes and returns the minimum-deadline task. Panics with
// ErrQueueEmpty if the queue is empty.
func (q *taskQueue) PopMin() *task {
	if q.Len() == 0 {
		panic(ErrQueueEmpty)
	}
	return heap.Pop(q).(*task)
}

// First peeks the minimum-deadline task without removing it. Panics with
// ErrQueueEmpty if the queue is empty.
func (q *taskQueue) First() *task {
	if q.Len() == 0 {
		panic(ErrQueueEmpty)
	}
	return q.items[0]
}

// Clear empties the queue in O(n).
func (q *taskQueue) Clear() {
	for i := range q.items {
		q.items[i] = nil
	}
	q.items = q.items[:0]
}

// IsEmpty reports whether the queue has no tasks.
func (q *taskQueue) IsEmpty() bool { return len(q.items) == 0 }

// RemoveIf removes every task for which pred returns true. Every element is
// visited exactly once; removal order is immaterial, so this rebuilds the
// backing slice and re-heapifies once rather than popping one at a time.
func (q *taskQueue) RemoveIf(pred func(*task) bool) {
	kept := q.items[:0:0]
	for _, t := range q.items {
		if !pred(t) {
			kept = append(kept, t)
		}
	}
	q.items = kept
	heap.Init(q)
}

// ModifyIf re-positions every task for which pred returns true: matching
// tasks are extracted, mutated via apply, and re-inserted. This is the only
// supported way to change a queued task's deadline — mutating it in place
// would violate the heap invariant (spec §4.1).
func (q *taskQueue) ModifyIf(pred func(*task) bool, apply func(*task)) {
	var matched []*task
	kept := q.items[:0:0]
	for _, t := range q.items {
		if pred(t) {
			matched = append(matched, t)
		} else {
			kept = append(kept, t)
		}
	}
	q.items = kept
	heap.Init(q)
	for _, t := range matched {
		apply(t)
		heap.Push(q, t)
	}
}
