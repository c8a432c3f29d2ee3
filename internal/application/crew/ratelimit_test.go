package crew

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRPMLimiterDrainsAndRefills(t *testing.T) {
	now := time.Now()
	l := newRPMLimiter(2)
	l.lastRefill = now
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow(), "bucket should be empty")

	// half a minute refills one token at 2 rpm
	now = now.Add(30 * time.Second)
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestRPMLimiterCapsAtCapacity(t *testing.T) {
	now := time.Now()
	l := newRPMLimiter(3)
	l.lastRefill = now
	l.now = func() time.Time { return now }

	// a long idle period must not bank more than capacity
	now = now.Add(time.Hour)
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow())
	}
	assert.False(t, l.Allow())
}

func TestRPMLimiterZeroConfigStaysUsable(t *testing.T) {
	l := newRPMLimiter(0)
	assert.True(t, l.Allow())
}
