package ticksched

import "time"

// Handler is invoked when a task's deadline is reached and the Validator
// allows dispatch. It receives a one-shot TaskContext for re-entrant
// manipulation of the owning Scheduler; see task_context.go.
type Handler func(ctx *TaskContext)

// task is the scheduler's internal representation of a scheduled unit of
// work. Its deadline and group may only change through Scheduler-owned
// operations (Delay, Reschedule, SetGroup, ClearGroup); duration, handler,
// and the monotonic growth of repeatCounter are otherwise stable for the
// lifetime of the task, per spec §3.
type task struct {
	deadline      time.Time
	duration      time.Duration
	group         *uint64
	repeatCounter uint64
	handler       Handler

	// seq breaks ties between tasks with identical deadlines, giving the
	// taskQueue a stable, deterministic iteration order (spec §9, "Stable
	// tie-break").
	seq uint64
}

func (t *task) inGroup(g uint64) bool {
	return t.group != nil && *t.group == g
}

func (t *task) inAnyGroup(groups map[uint64]struct{}) bool {
	if t.group == nil {
		return false
	}
	_, ok := groups[*t.group]
	return ok
}
