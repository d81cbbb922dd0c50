package ticksched

import (
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"

	"github.com/joeycumines/ticksched/internal/obslog"
)

// NewLogger builds a Logger suitable for WithLogger, writing structured
// events through the given zerolog.Logger. This is a convenience wrapper
// around logiface.New + internal/obslog.WithZerolog; callers that want a
// different logiface backend can call logiface.New directly instead.
func NewLogger(z zerolog.Logger, level logiface.Level) *Logger {
	return logiface.New[*obslog.Event](
		logiface.WithLevel[*obslog.Event](level),
		obslog.WithZerolog(z),
	)
}
