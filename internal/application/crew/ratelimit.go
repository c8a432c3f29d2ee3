package crew

import (
	"sync"
	"time"
)

// rpmLimiter is a token bucket sized from an agent's MaxRPM: capacity MaxRPM,
// refilled at MaxRPM tokens per minute. One bucket per agent per process.
type rpmLimiter struct {
	mu           sync.Mutex
	capacity     float64
	tokens       float64
	refillPerSec float64
	lastRefill   time.Time
	now          func() time.Time
}

func newRPMLimiter(maxRPM int) *rpmLimiter {
	if maxRPM <= 0 {
		maxRPM = 1
	}
	return &rpmLimiter{
		capacity:     float64(maxRPM),
		tokens:       float64(maxRPM),
		refillPerSec: float64(maxRPM) / 60.0,
		lastRefill:   time.Now(),
		now:          time.Now,
	}
}

func (l *rpmLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	elapsed := now.Sub(l.lastRefill).Seconds()
	if elapsed > 0 {
		l.tokens += elapsed * l.refillPerSec
		if l.tokens > l.capacity {
			l.tokens = l.capacity
		}
		l.lastRefill = now
	}

	if l.tokens >= 1 {
		l.tokens--
		return true
	}
	return false
}
