// Package autoban implements the autobanner: a short-lived in-memory
// tally of per-IP failed authentication attempts with a TTL window and a
// ban duration, emitting a "banned" event consumed by TCP listeners.
//
// The failure tally uses a TTL cache (so a burst of failures older than
// the window no longer counts towards a ban) while "currently banned"
// is tracked separately: ttlcache models decay-by-eviction, but a ban
// needs an explicit "banned until" deadline independent of when the
// triggering failures happen to expire.
package autoban

import (
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v2"
)

// Config controls the autobanner's tally window, trigger threshold, and
// ban duration.
type Config struct {
	// Window is how long a failed attempt counts towards the threshold.
	Window time.Duration
	// Threshold is the number of failures within Window that triggers a ban.
	Threshold int
	// BanDuration is how long an IP stays banned once triggered.
	BanDuration time.Duration
}

// DefaultConfig mirrors common FTP daemon defaults: 5 failures in a
// minute bans for an hour.
func DefaultConfig() Config {
	return Config{
		Window:      time.Minute,
		Threshold:   5,
		BanDuration: time.Hour,
	}
}

// Listener is notified when an IP transitions into the banned state. TCP
// listeners implement this to immediately refuse new connections from a
// banned peer rather than waiting for the authenticator to reject them.
type Listener interface {
	OnBanned(ip string, until time.Time)
}

// Autobanner tallies failed authentication attempts per IP and bans IPs
// that exceed Config.Threshold within Config.Window.
type Autobanner struct {
	cfg Config

	tally *ttlcache.Cache // ip -> *int (failure count within Window)

	mu      sync.Mutex
	banned  map[string]time.Time // ip -> banned-until
	sinks   []Listener
}

// New creates an Autobanner with the given configuration.
func New(cfg Config) *Autobanner {
	tally := ttlcache.NewCache()
	tally.SetTTL(cfg.Window)
	tally.SkipTTLExtensionOnHit(true)

	return &Autobanner{
		cfg:    cfg,
		tally:  tally,
		banned: make(map[string]time.Time),
	}
}

// Subscribe registers a Listener to be notified of new bans.
func (a *Autobanner) Subscribe(l Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sinks = append(a.sinks, l)
}

// RecordFailure tallies one failed authentication attempt from ip. If the
// tally within Config.Window reaches Config.Threshold, ip is banned for
// Config.BanDuration and every subscribed Listener is notified.
func (a *Autobanner) RecordFailure(ip string) {
	count := 1
	if v, err := a.tally.Get(ip); err == nil {
		if n, ok := v.(int); ok {
			count = n + 1
		}
	}
	_ = a.tally.Set(ip, count)

	if count < a.cfg.Threshold {
		return
	}

	until := time.Now().Add(a.cfg.BanDuration)
	a.mu.Lock()
	a.banned[ip] = until
	sinks := append([]Listener(nil), a.sinks...)
	a.mu.Unlock()

	// The tally resets once a ban is issued: no further attempts are
	// accepted from a banned IP until the ban expires, so there is no
	// benefit to immediately re-triggering on the same failures.
	_ = a.tally.Remove(ip)

	for _, s := range sinks {
		s.OnBanned(ip, until)
	}
}

// IsBanned reports whether ip is currently within its ban window. A ban
// whose deadline has passed is lazily cleared and reports false.
func (a *Autobanner) IsBanned(ip string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	until, ok := a.banned[ip]
	if !ok {
		return false
	}
	if time.Now().After(until) {
		delete(a.banned, ip)
		return false
	}
	return true
}

// Close releases the autobanner's internal TTL cache.
func (a *Autobanner) Close() error {
	return a.tally.Close()
}
