package ticksched

import "errors"

// Standard errors. Contract violations in this package are signalled by
// panicking with one of these sentinels (wrapped via errors.New, matching
// the teacher's "eventloop: ..." sentinel style), rather than by returning
// an error value — see spec §7: these are programmer errors, not recoverable
// conditions the caller is expected to branch on.
var (
	// ErrQueueEmpty is the panic value when PopMin or First is called on an
	// empty taskQueue. The Scheduler never does this itself; it always
	// guards with Len/IsEmpty first, so observing this panic indicates a
	// bug in this package, not caller misuse.
	ErrQueueEmpty = errors.New("ticksched: task queue is empty")

	// ErrContextConsumed is the panic value when a second Repeat* call is
	// made against a TaskContext (or any of its copies) that has already
	// been consumed by an earlier Repeat* call.
	ErrContextConsumed = errors.New("ticksched: task context already consumed by Repeat")

	// ErrReentrantMutation is the panic value when a Scheduler-level
	// manipulation method (CancelAll, DelayGroup, RescheduleAll, ...) is
	// called while a task callback is executing. Callbacks must use the
	// equivalent TaskContext methods instead, which defer their effect to
	// the next tick.
	ErrReentrantMutation = errors.New("ticksched: scheduler mutation called re-entrantly from a task callback")
)
