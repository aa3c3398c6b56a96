package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ClientLimiters holds one token bucket per client key (normally the remote
// IP). Burst equals the rate, so a client can never exceed ratePerSec
// requests within any one second.
type ClientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*entry
	rate     rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a ClientLimiters allowing ratePerSec requests per second per
// client. Buckets unused for longer than idle are dropped by Sweep.
func New(ratePerSec int, idle time.Duration) *ClientLimiters {
	return &ClientLimiters{
		limiters: make(map[string]*entry),
		rate:     rate.Limit(ratePerSec),
		burst:    ratePerSec,
		idle:     idle,
		now:      time.Now,
	}
}

// Allow reports whether the client identified by key may proceed now.
func (cl *ClientLimiters) Allow(key string) bool {
	cl.mu.Lock()
	e, ok := cl.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(cl.rate, cl.burst)}
		cl.limiters[key] = e
	}
	now := cl.now()
	e.lastSeen = now
	cl.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

// Sweep removes buckets idle for longer than the configured window and
// returns how many were dropped.
func (cl *ClientLimiters) Sweep() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cutoff := cl.now().Add(-cl.idle)
	n := 0
	for k, e := range cl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(cl.limiters, k)
			n++
		}
	}
	return n
}

// Len returns the number of tracked clients.
func (cl *ClientLimiters) Len() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.limiters)
}
