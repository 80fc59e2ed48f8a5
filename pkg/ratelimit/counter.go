package ratelimit

import "sync/atomic"

// Counter is a reference-counted live-copy tally with a name, used to cap
// concurrent open files/directories and concurrent sessions per user and
// per group. Copying increments the count; Release (the analog of the
// teacher's copy/drop pattern in pkg/cache's buffer reference counting)
// decrements it.
type Counter struct {
	name  string
	limit int64 // Unlimited (0) = no cap
	live  *atomic.Int64
}

// NewCounter creates an unlimited counter with the given diagnostic name.
func NewCounter(name string) *Counter {
	return &Counter{name: name, live: new(atomic.Int64)}
}

// NewLimitedCounter creates a counter that reports LimitReached once Live()
// would reach limit. limit of Unlimited (0) behaves like NewCounter.
func NewLimitedCounter(name string, limit int64) *Counter {
	return &Counter{name: name, limit: limit, live: new(atomic.Int64)}
}

// Name returns the counter's diagnostic name.
func (c *Counter) Name() string { return c.name }

// Live returns the current number of live copies.
func (c *Counter) Live() int64 { return c.live.Load() }

// Limit returns the configured cap, or Unlimited.
func (c *Counter) Limit() int64 { return c.limit }

// LimitReached reports whether acquiring one more copy would exceed the
// configured limit. Always false for an unlimited counter.
func (c *Counter) LimitReached() bool {
	if c.limit == Unlimited {
		return false
	}
	return c.live.Load() >= c.limit
}

// Acquire increments the live count and returns a handle. The caller must
// call Release exactly once when done (typically via defer), mirroring the
// spec's "the limiter reference held by the session will decrement on
// drop" rule.
func (c *Counter) Acquire() *Handle {
	c.live.Add(1)
	return &Handle{counter: c}
}

// Handle is an opaque held copy of a Counter. Its lifetime should equal the
// lifetime of the session/open-file/open-dir it represents.
type Handle struct {
	counter  *Counter
	released atomic.Bool
}

// Release decrements the counter's live count. Safe to call more than
// once; only the first call has an effect.
func (h *Handle) Release() {
	if h.released.CompareAndSwap(false, true) {
		h.counter.live.Add(-1)
	}
}
