// Package ratelimit implements the shared/per-session byte-rate token
// buckets and the reference-counted "copies counter" used to cap
// concurrent sessions per user and per group.
//
// Both primitives are exposed as opaque handles: a handle's lifetime
// equals the longest-lived holder, and releasing a handle (Release) never
// invalidates sibling handles derived from the same parent.
package ratelimit

import (
	"sync"
	"time"
)

// Unlimited is the sentinel rate/count meaning "no limit". It never
// tightens a finite limit: Tighten(Unlimited, x) returns x.
const Unlimited = 0

// Limiter is a token-bucket rate limiter supporting parent/child
// composition: a child's effective rate is the minimum of its own budget
// and every ancestor's remaining budget, so a session's observed
// throughput is bounded above by min(user_rate, every_group_rate).
type Limiter struct {
	mu       sync.Mutex
	limit    int64 // bytes/sec, Unlimited = no limit
	tokens   float64
	lastFill time.Time
	parent   *Limiter
}

// New creates a root limiter with the given bytes/sec limit (Unlimited
// for no limit).
func New(limitBytesPerSec int64) *Limiter {
	return &Limiter{
		limit:    limitBytesPerSec,
		tokens:   float64(limitBytesPerSec),
		lastFill: time.Now(),
	}
}

// Child creates a limiter attached under this one. The child's own limit
// may be tighter than the parent's; it is never looser in effect because
// Acquire always consults the whole ancestor chain.
func (l *Limiter) Child(limitBytesPerSec int64) *Limiter {
	return &Limiter{
		limit:    limitBytesPerSec,
		tokens:   float64(limitBytesPerSec),
		lastFill: time.Now(),
		parent:   l,
	}
}

// refill adds tokens for elapsed time, capped at the bucket's own limit.
// Must be called with l.mu held.
func (l *Limiter) refill() {
	if l.limit == Unlimited {
		return
	}
	now := time.Now()
	elapsed := now.Sub(l.lastFill).Seconds()
	l.lastFill = now
	l.tokens += elapsed * float64(l.limit)
	if l.tokens > float64(l.limit) {
		l.tokens = float64(l.limit)
	}
}

// Acquire blocks (via the returned wait duration) until n bytes' worth of
// budget is available across this limiter and every ancestor, then debits
// all of them. Acquire itself never sleeps; callers honor the returned
// wait and retry, keeping the limiter free of timers of its own.
func (l *Limiter) Acquire(n int) time.Duration {
	wait := l.reserve(n)
	if l.parent != nil {
		if pw := l.parent.Acquire(n); pw > wait {
			wait = pw
		}
	}
	return wait
}

// reserve debits n bytes from this bucket only, returning how long the
// caller should wait before the debited bytes are actually "earned back".
func (l *Limiter) reserve(n int) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.limit == Unlimited {
		return 0
	}
	l.refill()
	l.tokens -= float64(n)
	if l.tokens >= 0 {
		return 0
	}
	deficit := -l.tokens
	return time.Duration(deficit / float64(l.limit) * float64(time.Second))
}

// SetLimit updates the limiter's own budget; used when live reconfiguration
// tightens or loosens a group's or user's configured rate.
func (l *Limiter) SetLimit(limitBytesPerSec int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limit = limitBytesPerSec
}

// Tighten returns the tighter (smaller) of limit and other, honoring the rule that Unlimited never tightens a finite limit.
func Tighten(limit, other int64) int64 {
	switch {
	case limit == Unlimited:
		return other
	case other == Unlimited:
		return limit
	case other < limit:
		return other
	default:
		return limit
	}
}
