package auth

import (
	"github.com/marmos91/ftpserver/pkg/ratelimit"
	"github.com/marmos91/ftpserver/pkg/tvfs"
)

// OpenLimits caps the number of concurrently open files/directories for a
// session, the TVFS-facing counterpart of authentication/user.hpp's
// tvfs::open_limits.
type OpenLimits struct {
	MaxOpenFiles int64
	MaxOpenDirs  int64
}

// Impersonator is the narrow interface pkg/auth depends on instead of
// importing pkg/impersonation directly, avoiding an import cycle (the
// impersonation package's Backend implementation depends on types this
// package does not need to know about beyond "it resolves to a
// tvfs.Backend").
type Impersonator interface {
	Backend() tvfs.Backend
}

// User is one configured account: its identity, TVFS mount tree,
// optional per-OS-identity impersonator, and the rate/session limits that
// apply to every session authenticated as this user. Grounded on
// authentication/user.hpp's fz::authentication::user.
type User struct {
	ID   string
	Name string

	Disabled   bool
	Credential Credential
	// Methods enumerates the routes by which this user may authenticate,
	// e.g. {password} or {password+token}; a fresh copy is taken per login
	// attempt since AvailableMethods narrows as methods verify.
	Methods AvailableMethods

	MountTree    *tvfs.Tree
	Impersonator Impersonator

	Limiter      *ratelimit.Limiter
	ExtraLimiters []*ratelimit.Limiter

	SessionOpenLimits OpenLimits

	SessionCountLimiter       *ratelimit.Counter
	ExtraSessionCountLimiters []*ratelimit.Counter

	// DisallowedIPs lists CIDR blocks this user may not connect from.
	// AllowedIPs is an exception list to DisallowedIPs: an IP matching
	// AllowedIPs is always permitted even if it also matches
	// DisallowedIPs, mirroring spec scenario S2.
	DisallowedIPs []string
	AllowedIPs    []string
}

// Group is a named bundle of mount points and limits that one or more
// users inherit, mirroring update_group_limiters's group-based limiter
// composition (see DESIGN.md).
type Group struct {
	Name     string
	Mounts   []tvfs.MountPoint
	Limiter  *ratelimit.Limiter
	SessionCountLimiter *ratelimit.Counter
}
