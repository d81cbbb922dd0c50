package ticksched

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLivenessTokenExpire(t *testing.T) {
	tok := newLivenessToken()
	assert.False(t, tok.isExpired())
	tok.expire()
	assert.True(t, tok.isExpired())
}

func TestLivenessTokenNilIsExpired(t *testing.T) {
	var tok *livenessToken
	assert.True(t, tok.isExpired())
}
