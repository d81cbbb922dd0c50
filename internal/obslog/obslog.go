// Package obslog adapts this module's structured logging calls to
// github.com/joeycumines/logiface, backed by a zerolog writer.
//
// It is a trimmed copy of the adapter shape used by
// github.com/joeycumines/go-utilpkg/logiface/zerolog: an Event wraps a
// *zerolog.Event, and a Logger maps logiface levels onto zerolog's levels.
// Only the field types ticksched actually emits (string, uint64, duration,
// time, bool, error) are implemented; everything else falls back to the
// embedded UnimplementedEvent, which is the documented way to opt out of
// optional Event methods.
package obslog

import (
	"sync"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

type (
	// Event is the logiface.Event implementation backing every log call.
	Event struct {
		z   *zerolog.Event
		lvl logiface.Level
		msg string

		logiface.UnimplementedEvent
	}

	// Logger bridges a zerolog.Logger into logiface.
	Logger struct {
		Z zerolog.Logger
	}

	// LoggerFactory aliases logiface.LoggerFactory[*Event], so callers don't
	// need to name the Event type at call sites.
	LoggerFactory struct {
		baseLoggerFactory
	}

	baseLoggerFactory = logiface.LoggerFactory[*Event]
)

var (
	// L is the convenience LoggerFactory instance, analogous to the
	// teacher's zerolog.L / stumpy.L package variables.
	L = LoggerFactory{}

	pool = sync.Pool{New: func() any { return new(Event) }}
)

// WithZerolog configures a logiface.Logger to write through zerolog.
func WithZerolog(z zerolog.Logger) logiface.Option[*Event] {
	l := &Logger{Z: z}
	return L.WithOptions(
		L.WithWriter(l),
		L.WithEventFactory(l),
		L.WithEventReleaser(l),
	)
}

func (Event) mustEmbedUnimplementedEvent() {}

func (e *Event) Level() logiface.Level {
	if e == nil {
		return logiface.LevelDisabled
	}
	return e.lvl
}

func (e *Event) AddField(key string, val any) { e.z.Interface(key, val) }

func (e *Event) AddMessage(msg string) bool {
	e.msg = msg
	return true
}

func (e *Event) AddError(err error) bool {
	e.z.Err(err)
	return true
}

func (e *Event) AddString(key, val string) bool {
	e.z.Str(key, val)
	return true
}

func (e *Event) AddUint64(key string, val uint64) bool {
	e.z.Uint64(key, val)
	return true
}

func (e *Event) AddDuration(key string, val time.Duration) bool {
	e.z.Dur(key, val)
	return true
}

func (e *Event) AddTime(key string, val time.Time) bool {
	e.z.Time(key, val)
	return true
}

func (e *Event) AddBool(key string, val bool) bool {
	e.z.Bool(key, val)
	return true
}

func (l *Logger) NewEvent(level logiface.Level) *Event {
	z := l.newZerologEvent(level)
	if z == nil {
		return nil
	}
	e := pool.Get().(*Event)
	e.lvl = level
	e.z = z
	e.msg = ""
	return e
}

func (l *Logger) ReleaseEvent(e *Event) {
	if e != nil {
		*e = Event{}
		pool.Put(e)
	}
}

func (l *Logger) Write(e *Event) error {
	e.z.Msg(e.msg)
	return nil
}

// newZerologEvent maps logiface's syslog-style levels onto zerolog's,
// following the same mapping documented on logiface.Level in the teacher's
// own zerolog adapter (Notice and Warning both collapse to zerolog's Warn,
// Critical collapses to Error, since zerolog has no equivalent levels).
func (l *Logger) newZerologEvent(level logiface.Level) *zerolog.Event {
	switch level {
	case logiface.LevelTrace:
		return l.Z.Trace()
	case logiface.LevelDebug:
		return l.Z.Debug()
	case logiface.LevelInformational:
		return l.Z.Info()
	case logiface.LevelNotice, logiface.LevelWarning:
		return l.Z.Warn()
	case logiface.LevelError, logiface.LevelCritical:
		return l.Z.Error()
	case logiface.LevelAlert:
		return l.Z.Fatal()
	case logiface.LevelEmergency:
		return l.Z.Panic()
	default:
		return nil
	}
}
