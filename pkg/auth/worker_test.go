package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T, users usersDocument, groups groupsDocument) *Store {
	t.Helper()
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "users.xml"), filepath.Join(dir, "groups.xml"))
	s.mu.Lock()
	for _, u := range users.Users {
		s.users[u.Name] = u
	}
	for _, g := range groups.Groups {
		s.groups[g.Name] = g
	}
	s.mu.Unlock()
	return s
}

// TestAuthenticator_ScenarioS1 implements spec scenario S1: a basic
// password login with no mounts and no impersonation succeeds in one
// round, and the session count limiter reflects the new session.
func TestAuthenticator_ScenarioS1(t *testing.T) {
	cred, err := NewCredential("hunter2")
	if err != nil {
		t.Fatalf("NewCredential: %v", err)
	}

	store := newTestStore(t, usersDocument{Users: []userRecord{{
		Name:           "alice",
		CredentialKind: "bcrypt",
		CredentialHash: cred.Hash,
		Methods:        []string{"password"},
	}}}, groupsDocument{})

	shared := NewSharedUsers()
	authn := NewAuthenticator(store, shared, nil, nil)

	op := authn.Propose("alice", "203.0.113.1")
	if op.GetError() != AuthNone {
		t.Fatalf("Propose: got error %v, want none", op.GetError())
	}
	if !op.GetMethods().Has(NewMethodSet(MethodKindPassword)) {
		t.Fatalf("GetMethods() = %v, want a route containing exactly {password}", op.GetMethods())
	}

	necessary, err := op.Next([]Method{{Kind: MethodKindPassword, Password: "hunter2"}})
	if err != nil {
		t.Fatalf("Next: unexpected error %v", err)
	}
	if necessary {
		t.Fatalf("Next: authNecessary = true, want false after satisfying the only route")
	}
	if op.GetError() != AuthNone {
		t.Fatalf("final GetError() = %v, want none", op.GetError())
	}

	handle := op.SharedUser()
	if handle == nil {
		t.Fatalf("SharedUser() = nil after success")
	}
	defer handle.Release()

	handle.Read(func(u *User) {
		if u.MountTree == nil {
			t.Errorf("MountTree is nil, want an empty-but-present tree")
		}
		h := u.SessionCountLimiter.Acquire()
		defer h.Release()
		if u.SessionCountLimiter.Live() != 1 {
			t.Errorf("SessionCountLimiter.Live() = %d, want 1", u.SessionCountLimiter.Live())
		}
	})
}

func TestAuthenticator_WrongPasswordRejects(t *testing.T) {
	cred, _ := NewCredential("hunter2")
	store := newTestStore(t, usersDocument{Users: []userRecord{{
		Name:           "alice",
		CredentialKind: "bcrypt",
		CredentialHash: cred.Hash,
		Methods:        []string{"password"},
	}}}, groupsDocument{})

	authn := NewAuthenticator(store, NewSharedUsers(), nil, nil)
	op := authn.Propose("alice", "203.0.113.1")
	_, err := op.Next([]Method{{Kind: MethodKindPassword, Password: "wrong"}})
	if err == nil {
		t.Fatalf("Next: want error on wrong password")
	}
	if op.GetError() != AuthInvalidCredentials {
		t.Fatalf("GetError() = %v, want AuthInvalidCredentials", op.GetError())
	}
}

func TestAuthenticator_UnknownUserRejects(t *testing.T) {
	store := newTestStore(t, usersDocument{}, groupsDocument{})
	authn := NewAuthenticator(store, NewSharedUsers(), nil, nil)
	op := authn.Propose("ghost", "203.0.113.1")
	if op.GetError() != AuthUserNonexisting {
		t.Fatalf("Propose(ghost): GetError() = %v, want AuthUserNonexisting", op.GetError())
	}
}

func TestAuthenticator_IPDisallowedRejectsAtPropose(t *testing.T) {
	cred, _ := NewCredential("hunter2")
	store := newTestStore(t, usersDocument{Users: []userRecord{{
		Name:           "alice",
		CredentialKind: "bcrypt",
		CredentialHash: cred.Hash,
		Methods:        []string{"password"},
		DisallowedIPs:  []string{"192.0.2.0/24"},
	}}}, groupsDocument{})

	authn := NewAuthenticator(store, NewSharedUsers(), nil, nil)
	op := authn.Propose("alice", "192.0.2.1")
	if op.GetError() != AuthIPDisallowed {
		t.Fatalf("GetError() = %v, want AuthIPDisallowed", op.GetError())
	}
}

func TestStore_Save_AtomicRoundTrip(t *testing.T) {
	cred, _ := NewCredential("hunter2")
	store := newTestStore(t, usersDocument{Users: []userRecord{{
		Name:           "alice",
		CredentialKind: "bcrypt",
		CredentialHash: cred.Hash,
		Methods:        []string{"password"},
	}}}, groupsDocument{})

	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(store.usersPath); err != nil {
		t.Fatalf("users.xml not written: %v", err)
	}

	reloaded := NewStore(store.usersPath, store.groupsPath)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if names := reloaded.UserNames(); len(names) != 1 || names[0] != "alice" {
		t.Fatalf("UserNames() = %v, want [alice]", names)
	}
}
