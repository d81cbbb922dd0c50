package ticksched

import (
	"math/rand/v2"
	"time"
)

// Rand draws a duration uniformly from [min, max], for the Schedule/Delay/
// Reschedule overloads that take a range instead of a fixed duration.
//
// No library in this module's reference corpus exposes a pluggable
// "uniform duration in a range" abstraction, so the default implementation
// is built directly on math/rand/v2 — this is the one place ticksched
// reaches for the standard library by necessity rather than by choice; see
// DESIGN.md.
type Rand interface {
	UniformDuration(min, max time.Duration) time.Duration
}

// DefaultRand is the default Rand, backed by math/rand/v2.
type DefaultRand struct{}

// UniformDuration returns a duration drawn uniformly from [min, max].
// If max <= min, min is returned without consulting the source of
// randomness.
func (DefaultRand) UniformDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	span := int64(max - min)
	return min + time.Duration(rand.Int64N(span+1))
}
