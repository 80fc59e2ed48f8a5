package auth

import "sync"

// sharedEntry is one live, reference-counted User kept alive exactly as
// long as at least one session holds a *SharedUserHandle to it. This
// mirrors authentication/user.hpp's shared_user (a
// shared_ptr<locking_wrapper<user>>) and shared_user_deleter (which
// tracks subscribed event handlers so a mutation can notify every live
// session for that user).
type sharedEntry struct {
	mu   sync.RWMutex
	user *User

	refs int

	subMu       sync.Mutex
	subscribers map[chan struct{}]struct{}
}

// SharedUsers is the process-wide weak-map of live users, keyed by
// username. Unlike a true weak map, entries are removed explicitly when
// the last handle releases (Go has no finalizer-driven eviction suitable
// for this), but the effect is the same: a user with no active sessions
// has no entry here, and the next login recreates it from the Store.
type SharedUsers struct {
	mu      sync.Mutex
	entries map[string]*sharedEntry
}

// NewSharedUsers creates an empty registry.
func NewSharedUsers() *SharedUsers {
	return &SharedUsers{entries: make(map[string]*sharedEntry)}
}

// Acquire returns a handle to the live User named name, constructing one
// via factory if none is currently live. factory is called at most once
// per "nobody currently logged in as this user" gap.
func (s *SharedUsers) Acquire(name string, factory func() *User) *SharedUserHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name]
	if !ok {
		e = &sharedEntry{user: factory(), subscribers: make(map[chan struct{}]struct{})}
		s.entries[name] = e
	}
	e.refs++
	return &SharedUserHandle{registry: s, name: name, entry: e}
}

// Live reports the number of currently live (referenced) users.
func (s *SharedUsers) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *SharedUsers) release(name string, e *sharedEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.refs--
	if e.refs <= 0 {
		delete(s.entries, name)
	}
}

// SharedUserHandle is a reference-counted handle to a live User. The
// holder must call Release exactly once (typically via defer) when the
// session that acquired it ends.
type SharedUserHandle struct {
	registry *SharedUsers
	name     string
	entry    *sharedEntry

	released bool
}

// Read runs fn with a read lock held over the underlying User, safe for
// concurrent use by every session sharing this handle's user.
func (h *SharedUserHandle) Read(fn func(*User)) {
	h.entry.mu.RLock()
	defer h.entry.mu.RUnlock()
	fn(h.entry.user)
}

// Write runs fn with an exclusive lock over the underlying User and then
// notifies every subscriber that the user changed (e.g. a quota or mount
// tree edit landing concurrently with the session's own activity).
func (h *SharedUserHandle) Write(fn func(*User)) {
	h.entry.mu.Lock()
	fn(h.entry.user)
	h.entry.mu.Unlock()
	h.notify()
}

// Subscribe registers for change notifications on this user; the
// returned channel receives a value (non-blocking, buffered 1) after
// every Write. Call unsubscribe when done.
func (h *SharedUserHandle) Subscribe() (ch <-chan struct{}, unsubscribe func()) {
	c := make(chan struct{}, 1)
	h.entry.subMu.Lock()
	h.entry.subscribers[c] = struct{}{}
	h.entry.subMu.Unlock()
	return c, func() {
		h.entry.subMu.Lock()
		delete(h.entry.subscribers, c)
		h.entry.subMu.Unlock()
	}
}

func (h *SharedUserHandle) notify() {
	h.entry.subMu.Lock()
	defer h.entry.subMu.Unlock()
	for c := range h.entry.subscribers {
		select {
		case c <- struct{}{}:
		default:
		}
	}
}

// Release drops this handle's reference. Safe to call at most once; a
// second call is a no-op.
func (h *SharedUserHandle) Release() {
	if h.released {
		return
	}
	h.released = true
	h.registry.release(h.name, h.entry)
}
