package ticksched

// Validator is consulted immediately before each due task is dispatched. A
// false verdict vetoes this firing: the task is left in the queue,
// untouched, to be reconsidered on a later tick. It is not an error and
// does not consume the task (spec §4.2, §7).
type Validator func() bool

// alwaysTrue is the trivial default Validator installed by New and restored
// by Scheduler.ClearValidator.
func alwaysTrue() bool { return true }
