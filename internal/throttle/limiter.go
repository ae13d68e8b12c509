// Package throttle rate-limits chat messages with a token bucket per
// sender.
package throttle

import (
	"sync"
	"time"

	"github.com/telex-tui/telex-server/internal/core"
)

// Limiter is a token bucket: capacity tokens refill continuously over
// the configured interval.
type Limiter struct {
	mu        sync.Mutex
	tokens    float64
	capacity  float64
	rate      float64 // tokens per second
	lastCheck time.Time
}

func NewLimiter(capacity int, interval time.Duration) *Limiter {
	if capacity <= 0 {
		capacity = 1
	}
	if interval <= 0 {
		interval = time.Second
	}

	return &Limiter{
		tokens:    float64(capacity),
		capacity:  float64(capacity),
		rate:      float64(capacity) / interval.Seconds(),
		lastCheck: time.Now(),
	}
}

// Allow consumes one token if available.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(l.lastCheck).Seconds()
	l.lastCheck = now

	if elapsed > 0 {
		l.tokens += elapsed * l.rate
		if l.tokens > l.capacity {
			l.tokens = l.capacity
		}
	}

	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

// Filter returns a chat filter that blocks senders exceeding burst
// messages per interval. Buckets are keyed by sender name; the map
// needs no lock of its own because the hub runs the filter chain
// under its exclusion lock.
func Filter(burst int, interval time.Duration) core.Filter {
	buckets := make(map[string]*Limiter)
	return func(username, body string) core.FilterAction {
		limiter, ok := buckets[username]
		if !ok {
			limiter = NewLimiter(burst, interval)
			buckets[username] = limiter
		}
		if !limiter.Allow() {
			return core.Block("too many messages, slow down")
		}
		return core.Allow()
	}
}
