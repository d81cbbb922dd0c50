package ticksched

// livenessToken is the shared expiry flag between a Scheduler and every
// TaskContext it has ever handed out. Go has no deterministic destructors,
// so "the Scheduler has been destroyed" (spec §3, §4.3) is modelled as an
// explicit call to Scheduler.Close, which flips expired to true; every
// live TaskContext observes that through the shared pointer and degrades
// to a no-op (spec §5: "the single most important safety property").
//
// The teacher's nearest analogue is FastState (eventloop/state.go), an
// atomic state machine shared between a Loop and its goroutines. This
// module has exactly one writer and readers only on the scheduler's own
// goroutine (spec §5: single-owner, single-threaded), so a plain bool
// behind a pointer is sufficient — no atomics are needed here, unlike the
// teacher's cross-goroutine state machine.
type livenessToken struct {
	expired bool
}

func newLivenessToken() *livenessToken { return &livenessToken{} }

func (t *livenessToken) expire() { t.expired = true }

func (t *livenessToken) isExpired() bool { return t == nil || t.expired }
