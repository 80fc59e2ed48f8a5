package auth

import (
	"fmt"

	"github.com/marmos91/ftpserver/pkg/autoban"
)

// State is one step of an authentication Operation's lifecycle, named
// after file_based_authenticator.cpp's worker::operation state machine:
// propose (the operation is created and the user's available methods are
// offered to the caller), next (waiting for the caller to supply one more
// round of credentials), verifying (checking a just-supplied method),
// bind_impersonation (acquiring the OS-level impersonation token once all
// methods verify), materialize (folding the result into the shared-user
// weak-map), and the two terminal states success/rejected.
type State int

const (
	StatePropose State = iota
	StateNext
	StateVerifying
	StateBindImpersonation
	StateMaterialize
	StateSuccess
	StateRejected
)

// TokenVerifier redeems a refresh token, returning the username it
// belongs to. No type in this module implements it (pkg/webui's token
// database has no Verify method); Authenticators without one refuse the
// token method.
type TokenVerifier interface {
	Verify(token string) (username string, ok bool)
}

// Authenticator runs the authentication protocol against a Store and a
// SharedUsers registry, throttling failures through an Autobanner. One
// Authenticator is shared by every listener in the process.
type Authenticator struct {
	store   *Store
	shared  *SharedUsers
	banner  *autoban.Autobanner
	tokens  TokenVerifier
}

// NewAuthenticator builds an Authenticator. banner may be nil to disable
// failed-attempt banning (e.g. in tests); tokens may be nil to disable
// the token method entirely.
func NewAuthenticator(store *Store, shared *SharedUsers, banner *autoban.Autobanner, tokens TokenVerifier) *Authenticator {
	return &Authenticator{store: store, shared: shared, banner: banner, tokens: tokens}
}

// Operation is one in-flight authentication attempt, returned by Propose
// and driven to completion by repeated calls to Next.
type Operation struct {
	a    *Authenticator
	Name string
	IP   string

	user      *User
	available AvailableMethods
	result    AuthResult
	state     State
	handle    *SharedUserHandle
}

// Propose begins authenticating name from ip: it checks the autobanner,
// loads the user (or records why it can't), and returns an Operation
// whose GetMethods() lists the routes the caller may attempt via Next.
func (a *Authenticator) Propose(name, ip string) *Operation {
	op := &Operation{a: a, Name: name, IP: ip, state: StatePropose}

	if a.banner != nil && a.banner.IsBanned(ip) {
		op.reject(AuthIPDisallowed)
		return op
	}

	user, err := a.store.BuildUser(name)
	if err != nil {
		if authErr, ok := err.(*Error); ok {
			op.reject(authErr.Result)
		} else {
			op.reject(AuthInternal)
		}
		return op
	}

	if !ipAllowed(ip, user.DisallowedIPs, user.AllowedIPs) {
		op.reject(AuthIPDisallowed)
		return op
	}

	op.user = user
	op.available = append(AvailableMethods{}, user.Methods...)
	return op
}

// GetMethods returns the routes still available to satisfy this
// operation, narrowing after each successful Next call.
func (op *Operation) GetMethods() AvailableMethods { return op.available }

// GetError returns the terminal AuthResult, or AuthNone while the
// operation is still in progress.
func (op *Operation) GetError() AuthResult { return op.result }

// Next verifies one round of client-supplied methods. It returns true if
// more rounds are required (the caller should prompt for additional
// credentials and call Next again), false once the operation has reached
// a terminal state (check GetError for the outcome).
func (op *Operation) Next(methods []Method) (authNecessary bool, err error) {
	if op.state == StateRejected || op.state == StateSuccess {
		return false, fmt.Errorf("auth: Next called on a concluded operation")
	}
	op.state = StateVerifying

	for _, m := range methods {
		bit := bitFor(m.Kind)
		if bit != 0 && !op.available.CanVerify(bit) {
			op.reject(AuthMethodNotSupported)
			return false, NewError(op.result)
		}

		ok := op.verifyOne(m)
		if !ok {
			op.reject(AuthInvalidCredentials)
			return false, NewError(op.result)
		}
		if bit != 0 {
			op.available.SetVerified(bit)
		}
	}

	if !op.available.IsAuthPossible() {
		op.reject(AuthInvalidCredentials)
		return false, NewError(op.result)
	}
	if op.available.IsAuthNecessary() {
		op.state = StateNext
		return true, nil
	}

	if err := op.bindImpersonation(); err != nil {
		op.reject(AuthInternal)
		return false, err
	}
	op.materialize()
	op.state = StateSuccess
	return false, nil
}

func (op *Operation) verifyOne(m Method) bool {
	switch m.Kind {
	case MethodKindNone:
		return true
	case MethodKindPassword:
		ok, upgrade := op.user.Credential.Verify(m.Password)
		if ok && upgrade {
			if newCred, err := NewCredential(m.Password); err == nil {
				op.user.Credential = newCred
			}
		}
		return ok
	case MethodKindToken:
		if op.a.tokens == nil {
			return false
		}
		name, ok := op.a.tokens.Verify(m.Token)
		return ok && name == op.Name
	default:
		return false
	}
}

func (op *Operation) bindImpersonation() error {
	op.state = StateBindImpersonation
	// The local backend requires no binding step; an impersonating user
	// acquires its OS token lazily on first tvfs.Backend call through
	// pkg/impersonation, so there is nothing further to do here.
	return nil
}

func (op *Operation) materialize() {
	op.state = StateMaterialize
	op.handle = op.a.shared.Acquire(op.Name, func() *User { return op.user })
}

func (op *Operation) reject(result AuthResult) {
	op.result = result
	op.state = StateRejected
	if op.a.banner != nil && result.IsUserFault() {
		op.a.banner.RecordFailure(op.IP)
	}
}

// SharedUser returns the materialized handle after a successful
// operation, or nil if the operation has not (yet) succeeded. The caller
// owns the handle and must Release it when the session ends.
func (op *Operation) SharedUser() *SharedUserHandle {
	if op.state != StateSuccess {
		return nil
	}
	return op.handle
}

// Stop aborts an in-progress operation, e.g. because the client
// disconnected mid-authentication.
func (op *Operation) Stop() {
	if op.state != StateSuccess && op.state != StateRejected {
		op.reject(AuthInternal)
	}
}
