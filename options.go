package ticksched

import (
	"github.com/joeycumines/logiface"

	"github.com/joeycumines/ticksched/internal/obslog"
)

// Logger is the structured logger type accepted by WithLogger: a logiface
// logger bound to this module's zerolog-backed event type (internal/
// obslog.Event).
type Logger = logiface.Logger[*obslog.Event]

// schedulerOptions holds configuration resolved at construction time.
// Grounded on the teacher's loopOptions/resolveLoopOptions (eventloop/
// options.go) functional-options pattern.
type schedulerOptions struct {
	clock     Clock
	rand      Rand
	validator Validator
	logger    *Logger
}

// Option configures a Scheduler at construction time.
type Option interface {
	applyScheduler(*schedulerOptions)
}

type optionFunc func(*schedulerOptions)

func (f optionFunc) applyScheduler(o *schedulerOptions) { f(o) }

// WithClock overrides the Clock that New reads for the initial virtual time
// and UpdateNow reads on each call. Default is SystemClock{}.
func WithClock(c Clock) Option {
	return optionFunc(func(o *schedulerOptions) { o.clock = c })
}

// WithRand overrides the Rand used for the [min, max] Schedule/Delay/
// Reschedule overloads. Default is DefaultRand{}.
func WithRand(r Rand) Option {
	return optionFunc(func(o *schedulerOptions) { o.rand = r })
}

// WithValidator installs the Scheduler's Validator at construction time,
// equivalent to calling SetValidator immediately after New.
func WithValidator(v Validator) Option {
	return optionFunc(func(o *schedulerOptions) { o.validator = v })
}

// WithLogger installs a structured logger for scheduler lifecycle events
// (dispatch, veto, close). A nil *logiface.Logger is
// a valid, inert logger (every logiface.Logger method is nil-receiver
// safe), so the default requires no separate no-op implementation.
func WithLogger(l *Logger) Option {
	return optionFunc(func(o *schedulerOptions) { o.logger = l })
}

func resolveOptions(opts []Option) *schedulerOptions {
	o := &schedulerOptions{
		clock:     SystemClock{},
		rand:      DefaultRand{},
		validator: alwaysTrue,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyScheduler(o)
	}
	return o
}
