package ticksched

import (
	"time"
	"weak"
)

// contextState is the mutable state shared by a TaskContext and every copy
// of it: spec §3 requires that "once any copy calls Repeat*, further
// repeat calls are rejected" regardless of which copy is used, so the flag
// lives behind a pointer rather than on the TaskContext value itself.
type contextState struct {
	consumed bool
	repeat   bool
	duration time.Duration
}

// TaskContext is the one-shot handle passed to a firing Handler. Copies of
// a TaskContext share the same underlying task and contextState, so the
// one-shot Repeat* contract holds across copies (spec §3, §4.3).
//
// The weak back-reference to the owning Scheduler is grounded directly on
// the teacher's registry (eventloop/registry.go), which tracks promises
// via weak.Pointer[promise] rather than holding them strongly. Here it
// serves the same purpose the spec's "Design Notes" describe: a handle
// that can tell, cheaply, whether its owner is still around, without
// keeping that owner alive.
type TaskContext struct {
	t        *task
	sched    weak.Pointer[Scheduler]
	liveness *livenessToken
	state    *contextState
}

func newTaskContext(s *Scheduler, t *task) *TaskContext {
	return &TaskContext{
		t:        t,
		sched:    weak.Make(s),
		liveness: s.liveness,
		state:    &contextState{},
	}
}

// IsExpired reports whether the owning Scheduler has been destroyed
// (Close), in which case every mutation method on this TaskContext (and
// any of its copies) is a silent no-op.
func (c *TaskContext) IsExpired() bool {
	return c == nil || c.liveness.isExpired() || c.sched.Value() == nil
}

// IsInGroup reports whether the firing task currently carries group g.
func (c *TaskContext) IsInGroup(g uint64) bool {
	if c == nil {
		return false
	}
	return c.t.inGroup(g)
}

// GetRepeatCounter returns the task's repeat counter as of this firing: 0
// on the first invocation, 1 after the first repeat, and so on.
func (c *TaskContext) GetRepeatCounter() uint64 {
	if c == nil {
		return 0
	}
	return c.t.repeatCounter
}

// SetGroup sets the firing task's group tag. This applies immediately,
// unlike the deferred mutation methods below: it doesn't touch the
// taskQueue's ordering, so there's nothing for the re-entrancy protocol to
// protect (spec §4.3).
func (c *TaskContext) SetGroup(g uint64) {
	if c.IsExpired() {
		return
	}
	gg := g
	c.t.group = &gg
}

// ClearGroup removes the firing task's group tag.
func (c *TaskContext) ClearGroup() {
	if c.IsExpired() {
		return
	}
	c.t.group = nil
}

// dispatch is the single funnel every deferred mutation method routes
// through (spec §4.3): if the Scheduler is gone, the call is a no-op;
// otherwise a closure is appended to the Scheduler's AsyncQueue, to run at
// the top of the next tick.
func (c *TaskContext) dispatch(op func(s *Scheduler)) {
	if c.IsExpired() {
		return
	}
	s := c.sched.Value()
	if s == nil {
		return
	}
	s.async.Push(func() { op(s) })
}

// Async schedules fn to run once, on the next tick's AsyncQueue drain.
func (c *TaskContext) Async(fn func()) {
	if fn == nil {
		return
	}
	c.dispatch(func(*Scheduler) { fn() })
}

// Schedule schedules a new, ungrouped task with a fixed duration.
func (c *TaskContext) Schedule(d time.Duration, h Handler) {
	c.dispatch(func(s *Scheduler) { s.Schedule(d, h) })
}

// ScheduleGroup schedules a new task, tagged with group, with a fixed
// duration.
func (c *TaskContext) ScheduleGroup(d time.Duration, group uint64, h Handler) {
	c.dispatch(func(s *Scheduler) { s.ScheduleGroup(d, group, h) })
}

// ScheduleRange schedules a new, ungrouped task with a duration drawn
// uniformly from [min, max].
func (c *TaskContext) ScheduleRange(min, max time.Duration, h Handler) {
	c.dispatch(func(s *Scheduler) { s.ScheduleRange(min, max, h) })
}

// ScheduleRangeGroup schedules a new task, tagged with group, with a
// duration drawn uniformly from [min, max].
func (c *TaskContext) ScheduleRangeGroup(min, max time.Duration, group uint64, h Handler) {
	c.dispatch(func(s *Scheduler) { s.ScheduleRangeGroup(min, max, group, h) })
}

// CancelAll cancels every queued task, deferred to the next tick.
func (c *TaskContext) CancelAll() {
	c.dispatch(func(s *Scheduler) { s.CancelAll() })
}

// CancelGroup cancels every queued task tagged with g, deferred to the
// next tick.
func (c *TaskContext) CancelGroup(g uint64) {
	c.dispatch(func(s *Scheduler) { s.CancelGroup(g) })
}

// CancelGroupsOf cancels every queued task tagged with any of groups,
// deferred to the next tick.
func (c *TaskContext) CancelGroupsOf(groups ...uint64) {
	c.dispatch(func(s *Scheduler) { s.CancelGroupsOf(groups...) })
}

// DelayAll adds d to every queued task's deadline, deferred to the next
// tick.
func (c *TaskContext) DelayAll(d time.Duration) {
	c.dispatch(func(s *Scheduler) { s.DelayAll(d) })
}

// DelayGroup adds d to the deadline of every queued task tagged with g,
// deferred to the next tick.
func (c *TaskContext) DelayGroup(g uint64, d time.Duration) {
	c.dispatch(func(s *Scheduler) { s.DelayGroup(g, d) })
}

// DelayAllRange adds a duration drawn once from [min, max] to every
// queued task's deadline, deferred to the next tick.
func (c *TaskContext) DelayAllRange(min, max time.Duration) {
	c.dispatch(func(s *Scheduler) { s.DelayAllRange(min, max) })
}

// DelayGroupRange adds a duration drawn once from [min, max] to the
// deadline of every queued task tagged with g, deferred to the next tick.
func (c *TaskContext) DelayGroupRange(g uint64, min, max time.Duration) {
	c.dispatch(func(s *Scheduler) { s.DelayGroupRange(g, min, max) })
}

// RescheduleAll resets every queued task's deadline to now+d and duration
// to d, deferred to the next tick.
func (c *TaskContext) RescheduleAll(d time.Duration) {
	c.dispatch(func(s *Scheduler) { s.RescheduleAll(d) })
}

// RescheduleGroup resets every queued task tagged with g to deadline
// now+d and duration d, deferred to the next tick.
func (c *TaskContext) RescheduleGroup(g uint64, d time.Duration) {
	c.dispatch(func(s *Scheduler) { s.RescheduleGroup(g, d) })
}

// RescheduleAllRange draws a duration once from [min, max] and applies it
// to every queued task via RescheduleAll semantics, deferred to the next
// tick.
func (c *TaskContext) RescheduleAllRange(min, max time.Duration) {
	c.dispatch(func(s *Scheduler) { s.RescheduleAllRange(min, max) })
}

// RescheduleGroupRange draws a duration once from [min, max] and applies
// it to every queued task tagged with g via RescheduleGroup semantics,
// deferred to the next tick.
func (c *TaskContext) RescheduleGroupRange(g uint64, min, max time.Duration) {
	c.dispatch(func(s *Scheduler) { s.RescheduleGroupRange(g, min, max) })
}

// consume marks the context consumed and records the repeat decision that
// the dispatch loop applies after the handler returns. It is the single
// funnel for Repeat, RepeatSame, and RepeatRange.
func (c *TaskContext) consume(duration time.Duration) {
	if c.IsExpired() {
		return
	}
	if c.state.consumed {
		panic(ErrContextConsumed)
	}
	c.state.consumed = true
	c.state.repeat = true
	c.state.duration = duration
}

// Repeat re-inserts the firing task with the given duration: deadline
// advances by duration from the deadline it just fired at (so a task that
// falls behind catches up within the same tick), duration is updated to
// match, and the repeat
// counter is incremented. Unlike the other mutation methods, this is not
// deferred through the AsyncQueue — it signals the dispatch loop directly,
// because it must affect the task that is currently firing (spec §4.3,
// §9 "Repeat as a post-callback signal").
//
// Calling Repeat* a second time on this context, or any copy of it, panics
// with ErrContextConsumed.
func (c *TaskContext) Repeat(duration time.Duration) {
	c.consume(duration)
}

// RepeatSame is Repeat using the task's current nominal duration.
func (c *TaskContext) RepeatSame() {
	if c.IsExpired() {
		return
	}
	c.consume(c.t.duration)
}

// RepeatRange is Repeat using a duration drawn uniformly from [min, max].
func (c *TaskContext) RepeatRange(min, max time.Duration) {
	if c.IsExpired() {
		return
	}
	s := c.sched.Value()
	var d time.Duration
	if s != nil {
		d = s.rand.UniformDuration(min, max)
	} else {
		d = min
	}
	c.consume(d)
}
