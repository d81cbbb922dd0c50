package ticksched

import (
	"time"
)

// Scheduler owns the TaskQueue, AsyncQueue, Validator, current virtual
// time, and the liveness token shared with every TaskContext it hands out.
// It is single-owner and single-threaded: no method is safe to call
// concurrently from more than one goroutine (spec §5).
type Scheduler struct {
	now       time.Time
	queue     *taskQueue
	async     *asyncQueue
	validator Validator
	clock     Clock
	rand      Rand
	liveness  *livenessToken
	logger    *Logger

	// seq hands out the stable tie-break key for newly inserted tasks.
	seq uint64

	// dispatching is true only while the due-task drain loop (tick step 3)
	// is executing a handler; it gates the re-entrancy check on the
	// Scheduler-level manipulation methods (spec §4.2's "Re-entrancy
	// rule"). It is false during the AsyncQueue drain, since closures run
	// there are expected to call these methods.
	dispatching bool
}

// New constructs a Scheduler. Its virtual clock starts at the configured
// Clock's current reading (default SystemClock), and its Validator starts
// as the trivial "always true" predicate, per spec §4.2.
func New(opts ...Option) *Scheduler {
	o := resolveOptions(opts)
	s := &Scheduler{
		queue:     newTaskQueue(),
		async:     newAsyncQueue(),
		validator: o.validator,
		clock:     o.clock,
		rand:      o.rand,
		liveness:  newLivenessToken(),
		logger:    o.logger,
	}
	s.now = s.clock.Now()
	return s
}

// Len returns the number of tasks currently queued.
func (s *Scheduler) Len() int { return s.queue.Len() }

// IsEmpty reports whether no tasks are queued.
func (s *Scheduler) IsEmpty() bool { return s.queue.IsEmpty() }

// Now returns the Scheduler's current virtual time, as of the last tick.
func (s *Scheduler) Now() time.Time { return s.now }

// SetValidator installs p as the Validator consulted before every due-task
// dispatch.
func (s *Scheduler) SetValidator(p Validator) *Scheduler {
	if p == nil {
		p = alwaysTrue
	}
	s.validator = p
	return s
}

// ClearValidator restores the trivial "always true" Validator.
func (s *Scheduler) ClearValidator() *Scheduler {
	s.validator = alwaysTrue
	return s
}

// Close destroys the Scheduler: every still-live TaskContext it has handed
// out will report IsExpired() == true from this point on, and all of its
// mutation methods become no-ops (spec §5, §8). Go has no deterministic
// destructors, so this is the explicit stand-in for "the Scheduler has
// been destroyed" — see SPEC_FULL.md's resolution of this point.
func (s *Scheduler) Close() {
	s.liveness.expire()
	s.queue.Clear()
	s.async.items = s.async.items[:0]
	s.logInfo("close")
}

func (s *Scheduler) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// Schedule inserts a new, ungrouped task, due after d, calling h.
func (s *Scheduler) Schedule(d time.Duration, h Handler) *Scheduler {
	return s.scheduleInternal(d, nil, h)
}

// ScheduleGroup inserts a new task tagged with group, due after d, calling
// h.
func (s *Scheduler) ScheduleGroup(d time.Duration, group uint64, h Handler) *Scheduler {
	g := group
	return s.scheduleInternal(d, &g, h)
}

// ScheduleRange inserts a new, ungrouped task due after a duration drawn
// uniformly from [min, max], calling h.
func (s *Scheduler) ScheduleRange(min, max time.Duration, h Handler) *Scheduler {
	return s.scheduleInternal(s.rand.UniformDuration(min, max), nil, h)
}

// ScheduleRangeGroup inserts a new task tagged with group, due after a
// duration drawn uniformly from [min, max], calling h.
func (s *Scheduler) ScheduleRangeGroup(min, max time.Duration, group uint64, h Handler) *Scheduler {
	g := group
	return s.scheduleInternal(s.rand.UniformDuration(min, max), &g, h)
}

func (s *Scheduler) scheduleInternal(d time.Duration, group *uint64, h Handler) *Scheduler {
	t := &task{
		deadline: s.now.Add(d),
		duration: d,
		group:    group,
		handler:  h,
		seq:      s.nextSeq(),
	}
	s.queue.Insert(t)
	return s
}

// Async appends fn to the AsyncQueue; it runs exactly once, at the start
// of the next tick.
func (s *Scheduler) Async(fn func()) *Scheduler {
	if fn != nil {
		s.async.Push(fn)
	}
	return s
}

// --- manipulation (must not be called from within a task callback) ---

func (s *Scheduler) guardReentrancy() {
	if s.dispatching {
		panic(ErrReentrantMutation)
	}
}

// CancelAll removes every queued task.
func (s *Scheduler) CancelAll() *Scheduler {
	s.guardReentrancy()
	s.queue.Clear()
	return s
}

// CancelGroup removes every queued task tagged with g.
func (s *Scheduler) CancelGroup(g uint64) *Scheduler {
	s.guardReentrancy()
	s.queue.RemoveIf(func(t *task) bool { return t.inGroup(g) })
	return s
}

// CancelGroupsOf removes every queued task tagged with any of groups.
func (s *Scheduler) CancelGroupsOf(groups ...uint64) *Scheduler {
	s.guardReentrancy()
	set := toSet(groups)
	s.queue.RemoveIf(func(t *task) bool { return t.inAnyGroup(set) })
	return s
}

// DelayAll adds d to every queued task's deadline.
func (s *Scheduler) DelayAll(d time.Duration) *Scheduler {
	s.guardReentrancy()
	s.queue.ModifyIf(func(*task) bool { return true }, func(t *task) { t.deadline = t.deadline.Add(d) })
	return s
}

// DelayGroup adds d to the deadline of every queued task tagged with g.
func (s *Scheduler) DelayGroup(g uint64, d time.Duration) *Scheduler {
	s.guardReentrancy()
	s.queue.ModifyIf(func(t *task) bool { return t.inGroup(g) }, func(t *task) { t.deadline = t.deadline.Add(d) })
	return s
}

// DelayAllRange draws a duration once from [min, max] and applies it to
// every queued task's deadline.
func (s *Scheduler) DelayAllRange(min, max time.Duration) *Scheduler {
	return s.DelayAll(s.rand.UniformDuration(min, max))
}

// DelayGroupRange draws a duration once from [min, max] and applies it to
// the deadline of every queued task tagged with g.
func (s *Scheduler) DelayGroupRange(g uint64, min, max time.Duration) *Scheduler {
	return s.DelayGroup(g, s.rand.UniformDuration(min, max))
}

// RescheduleAll sets every queued task's deadline to now+d and duration to
// d.
func (s *Scheduler) RescheduleAll(d time.Duration) *Scheduler {
	s.guardReentrancy()
	now := s.now
	s.queue.ModifyIf(func(*task) bool { return true }, func(t *task) {
		t.deadline = now.Add(d)
		t.duration = d
	})
	return s
}

// RescheduleGroup sets every queued task tagged with g to deadline now+d
// and duration d.
func (s *Scheduler) RescheduleGroup(g uint64, d time.Duration) *Scheduler {
	s.guardReentrancy()
	now := s.now
	s.queue.ModifyIf(func(t *task) bool { return t.inGroup(g) }, func(t *task) {
		t.deadline = now.Add(d)
		t.duration = d
	})
	return s
}

// RescheduleAllRange draws a duration once from [min, max] and applies it
// to every queued task via RescheduleAll semantics.
func (s *Scheduler) RescheduleAllRange(min, max time.Duration) *Scheduler {
	return s.RescheduleAll(s.rand.UniformDuration(min, max))
}

// RescheduleGroupRange draws a duration once from [min, max] and applies
// it to every queued task tagged with g via RescheduleGroup semantics.
func (s *Scheduler) RescheduleGroupRange(g uint64, min, max time.Duration) *Scheduler {
	return s.RescheduleGroup(g, s.rand.UniformDuration(min, max))
}

func toSet(groups []uint64) map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(groups))
	for _, g := range groups {
		set[g] = struct{}{}
	}
	return set
}

// --- tick / Update ---

// Update advances virtual time by delta, drains the AsyncQueue, and
// dispatches every task now due, in deadline order. onComplete, if given,
// is invoked once after draining (spec §4.2).
func (s *Scheduler) Update(delta time.Duration, onComplete ...func()) {
	s.now = s.now.Add(delta)
	s.runTick(onComplete)
}

// UpdateMillis is Update with delta expressed in milliseconds.
func (s *Scheduler) UpdateMillis(ms int64, onComplete ...func()) {
	s.Update(time.Duration(ms)*time.Millisecond, onComplete...)
}

// UpdateNow advances virtual time to the Clock's current reading (delta =
// clock.Now() - now) and otherwise behaves like Update.
func (s *Scheduler) UpdateNow(onComplete ...func()) {
	s.now = s.clock.Now()
	s.runTick(onComplete)
}

func (s *Scheduler) runTick(onComplete []func()) {
	s.async.Drain()
	s.drainDueTasks()
	for _, fn := range onComplete {
		if fn != nil {
			fn()
		}
	}
}

// drainDueTasks pops and fires every task whose deadline has arrived, in
// deadline order (ties broken by insertion sequence), applying the
// Validator and the post-callback Repeat decision for each (spec §4.2).
func (s *Scheduler) drainDueTasks() {
	for !s.queue.IsEmpty() {
		t := s.queue.First()
		if t.deadline.After(s.now) {
			return
		}
		if !s.validator() {
			// A false verdict leaves the task queued, untouched, and
			// stops the drain for this tick: later tasks must not jump
			// ahead of a vetoed earlier one (spec §4.2).
			s.logVeto(t)
			return
		}

		s.queue.PopMin()
		ctx := newTaskContext(s, t)

		s.dispatching = true
		s.logDispatch(t)
		func() {
			defer func() {
				s.dispatching = false
				if ctx.state.repeat {
					t.deadline = t.deadline.Add(ctx.state.duration)
					t.duration = ctx.state.duration
					t.repeatCounter++
					t.seq = s.nextSeq()
					s.queue.Insert(t)
				}
			}()
			t.handler(ctx)
		}()
	}
}

func (s *Scheduler) logDispatch(t *task) {
	if s.logger == nil {
		return
	}
	b := s.logger.Debug().
		Dur("duration", t.duration).
		Uint64("repeat_counter", t.repeatCounter)
	if t.group != nil {
		b = b.Uint64("group", *t.group)
	}
	b.Log("dispatch")
}

func (s *Scheduler) logVeto(t *task) {
	if s.logger == nil {
		return
	}
	s.logger.Notice().
		Time("deadline", t.deadline).
		Log("validator vetoed due task")
}

func (s *Scheduler) logInfo(event string) {
	if s.logger == nil {
		return
	}
	s.logger.Info().Str("event", event).Log("scheduler")
}
