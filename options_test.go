package ticksched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOptionsDefaults(t *testing.T) {
	o := resolveOptions(nil)
	require.NotNil(t, o.clock)
	require.NotNil(t, o.rand)
	require.NotNil(t, o.validator)
	assert.True(t, o.validator())
	assert.Nil(t, o.logger)
}

func TestResolveOptionsSkipsNilOption(t *testing.T) {
	o := resolveOptions([]Option{nil, WithValidator(func() bool { return false })})
	assert.False(t, o.validator())
}

func TestWithClockOverride(t *testing.T) {
	want := time.Unix(12345, 0)
	s := New(WithClock(&fixedClock{t: want}))
	assert.Equal(t, want, s.Now())
}
