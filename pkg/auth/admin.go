package auth

import (
	"fmt"
	"sort"

	"github.com/marmos91/ftpserver/pkg/tvfs"
)

// MountInfo is the admin-facing view of a mount point, independent of
// whether it is attached to a user or a group.
type MountInfo struct {
	Virtual    string
	Native     string
	Access     string
	Recursion  string
	Autocreate bool
}

func (m MountInfo) toRecord() (mountRecord, error) {
	if _, ok := tvfs.ParseAccess(m.Access); !ok {
		return mountRecord{}, fmt.Errorf("auth: unknown access %q", m.Access)
	}
	if _, ok := tvfs.ParseRecursion(m.Recursion); !ok {
		return mountRecord{}, fmt.Errorf("auth: unknown recursion %q", m.Recursion)
	}
	if err := tvfs.ValidatePlaceholders(m.Native); err != nil {
		return mountRecord{}, err
	}
	return mountRecord{
		Virtual:    m.Virtual,
		Native:     m.Native,
		Access:     m.Access,
		Recursion:  m.Recursion,
		Autocreate: m.Autocreate,
	}, nil
}

func mountInfoFromRecord(m mountRecord) MountInfo {
	return MountInfo{
		Virtual:    m.Virtual,
		Native:     m.Native,
		Access:     m.Access,
		Recursion:  m.Recursion,
		Autocreate: m.Autocreate,
	}
}

// UserInfo is the admin-facing view of a user record, the shape exposed
// by the webui's /api/v1/users endpoints (see pkg/adminrpc.User).
type UserInfo struct {
	Name                 string
	Disabled             bool
	Methods              []string
	Groups               []string
	Mounts               []MountInfo
	RateLimitBytesPerSec int64
	SessionCountLimit    int64
	DisallowedIPs        []string
	AllowedIPs           []string
}

func userInfoFromRecord(rec userRecord) UserInfo {
	mounts := make([]MountInfo, 0, len(rec.Mounts))
	for _, m := range rec.Mounts {
		mounts = append(mounts, mountInfoFromRecord(m))
	}
	return UserInfo{
		Name:                 rec.Name,
		Disabled:             rec.Disabled,
		Methods:              append([]string(nil), rec.Methods...),
		Groups:               append([]string(nil), rec.Groups...),
		Mounts:               mounts,
		RateLimitBytesPerSec: rec.RateLimitBytesPerSec,
		SessionCountLimit:    rec.SessionCountLimit,
		DisallowedIPs:        append([]string(nil), rec.DisallowedIPs...),
		AllowedIPs:           append([]string(nil), rec.AllowedIPs...),
	}
}

// GroupInfo is the admin-facing view of a group record.
type GroupInfo struct {
	Name                 string
	Mounts               []MountInfo
	RateLimitBytesPerSec int64
	SessionCountLimit    int64
}

func groupInfoFromRecord(rec groupRecord) GroupInfo {
	mounts := make([]MountInfo, 0, len(rec.Mounts))
	for _, m := range rec.Mounts {
		mounts = append(mounts, mountInfoFromRecord(m))
	}
	return GroupInfo{
		Name:                 rec.Name,
		Mounts:               mounts,
		RateLimitBytesPerSec: rec.RateLimitBytesPerSec,
		SessionCountLimit:    rec.SessionCountLimit,
	}
}

// ErrNotFound is returned by the admin CRUD methods when the named user,
// group, or mount does not exist.
var ErrNotFound = fmt.Errorf("auth: not found")

// ErrExists is returned by the admin CRUD methods when creating a user or
// group whose name is already taken.
var ErrExists = fmt.Errorf("auth: already exists")

// ListUsers returns every user, sorted by name.
func (s *Store) ListUsers() []UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]UserInfo, 0, len(s.users))
	for _, rec := range s.users {
		out = append(out, userInfoFromRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetUserInfo returns the admin-facing view of a single user.
func (s *Store) GetUserInfo(name string) (UserInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[name]
	if !ok {
		return UserInfo{}, ErrNotFound
	}
	return userInfoFromRecord(rec), nil
}

// CreateUserWithPassword adds a new user authenticating by password,
// hashing password with bcrypt. It fails if the name is already taken.
func (s *Store) CreateUserWithPassword(name, password string, methods, groups []string) error {
	cred, err := NewCredential(password)
	if err != nil {
		return err
	}
	if len(methods) == 0 {
		methods = []string{"password"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[name]; ok {
		return ErrExists
	}
	s.users[name] = userRecord{
		Name:           name,
		CredentialKind: "bcrypt",
		CredentialHash: cred.Hash,
		Methods:        methods,
		Groups:         groups,
	}
	return nil
}

// UserPatch describes a partial update to a user; nil fields are left
// unchanged.
type UserPatch struct {
	Disabled             *bool
	Groups               []string
	RateLimitBytesPerSec *int64
	SessionCountLimit    *int64
	DisallowedIPs        []string
	AllowedIPs           []string
}

// UpdateUser applies patch to the named user.
func (s *Store) UpdateUser(name string, patch UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[name]
	if !ok {
		return ErrNotFound
	}
	if patch.Disabled != nil {
		rec.Disabled = *patch.Disabled
	}
	if patch.Groups != nil {
		rec.Groups = patch.Groups
	}
	if patch.RateLimitBytesPerSec != nil {
		rec.RateLimitBytesPerSec = *patch.RateLimitBytesPerSec
	}
	if patch.SessionCountLimit != nil {
		rec.SessionCountLimit = *patch.SessionCountLimit
	}
	if patch.DisallowedIPs != nil {
		rec.DisallowedIPs = patch.DisallowedIPs
	}
	if patch.AllowedIPs != nil {
		rec.AllowedIPs = patch.AllowedIPs
	}
	s.users[name] = rec
	return nil
}

// SetUserPassword rehashes and replaces the named user's credential.
func (s *Store) SetUserPassword(name, password string) error {
	cred, err := NewCredential(password)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[name]
	if !ok {
		return ErrNotFound
	}
	rec.CredentialKind = "bcrypt"
	rec.CredentialHash = cred.Hash
	s.users[name] = rec
	return nil
}

// AddUserMount attaches a mount point to the named user.
func (s *Store) AddUserMount(name string, m MountInfo) error {
	rec, err := m.toRecord()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[name]
	if !ok {
		return ErrNotFound
	}
	for _, existing := range u.Mounts {
		if existing.Virtual == rec.Virtual {
			return fmt.Errorf("auth: user %q already has a mount at %q", name, rec.Virtual)
		}
	}
	u.Mounts = append(u.Mounts, rec)
	s.users[name] = u
	return nil
}

// RemoveUserMount detaches the mount at virtual from the named user.
func (s *Store) RemoveUserMount(name, virtual string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[name]
	if !ok {
		return ErrNotFound
	}
	for i, m := range u.Mounts {
		if m.Virtual == virtual {
			u.Mounts = append(u.Mounts[:i], u.Mounts[i+1:]...)
			s.users[name] = u
			return nil
		}
	}
	return ErrNotFound
}

// ListUserMounts returns the mounts attached directly to the named user
// (not including mounts inherited from group membership).
func (s *Store) ListUserMounts(name string) ([]MountInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]MountInfo, 0, len(u.Mounts))
	for _, m := range u.Mounts {
		out = append(out, mountInfoFromRecord(m))
	}
	return out, nil
}

// ListGroups returns every group, sorted by name.
func (s *Store) ListGroups() []GroupInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]GroupInfo, 0, len(s.groups))
	for _, rec := range s.groups {
		out = append(out, groupInfoFromRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetGroupInfo returns the admin-facing view of a single group.
func (s *Store) GetGroupInfo(name string) (GroupInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.groups[name]
	if !ok {
		return GroupInfo{}, ErrNotFound
	}
	return groupInfoFromRecord(rec), nil
}

// CreateGroup adds a new, empty group. It fails if the name is taken.
func (s *Store) CreateGroup(name string, rateLimit, sessionLimit int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[name]; ok {
		return ErrExists
	}
	s.groups[name] = groupRecord{
		Name:                 name,
		RateLimitBytesPerSec: rateLimit,
		SessionCountLimit:    sessionLimit,
	}
	return nil
}

// GroupPatch describes a partial update to a group.
type GroupPatch struct {
	RateLimitBytesPerSec *int64
	SessionCountLimit    *int64
}

// UpdateGroup applies patch to the named group.
func (s *Store) UpdateGroup(name string, patch GroupPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.groups[name]
	if !ok {
		return ErrNotFound
	}
	if patch.RateLimitBytesPerSec != nil {
		rec.RateLimitBytesPerSec = *patch.RateLimitBytesPerSec
	}
	if patch.SessionCountLimit != nil {
		rec.SessionCountLimit = *patch.SessionCountLimit
	}
	s.groups[name] = rec
	return nil
}

// AddGroupMember adds username to the named group's member list (stored
// on the user record, mirroring file_based_authenticator.cpp's group
// membership being a property of the user).
func (s *Store) AddGroupMember(group, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[group]; !ok {
		return ErrNotFound
	}
	u, ok := s.users[username]
	if !ok {
		return ErrNotFound
	}
	for _, g := range u.Groups {
		if g == group {
			return nil
		}
	}
	u.Groups = append(u.Groups, group)
	s.users[username] = u
	return nil
}

// RemoveGroupMember removes username from the named group's member list.
func (s *Store) RemoveGroupMember(group, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return ErrNotFound
	}
	for i, g := range u.Groups {
		if g == group {
			u.Groups = append(u.Groups[:i], u.Groups[i+1:]...)
			s.users[username] = u
			return nil
		}
	}
	return ErrNotFound
}

// ListGroupMembers returns the names of users who are members of group.
func (s *Store) ListGroupMembers(group string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.groups[group]; !ok {
		return nil, ErrNotFound
	}
	var members []string
	for name, u := range s.users {
		for _, g := range u.Groups {
			if g == group {
				members = append(members, name)
				break
			}
		}
	}
	sort.Strings(members)
	return members, nil
}

// AddGroupMount attaches a mount point to the named group.
func (s *Store) AddGroupMount(name string, m MountInfo) error {
	rec, err := m.toRecord()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[name]
	if !ok {
		return ErrNotFound
	}
	for _, existing := range g.Mounts {
		if existing.Virtual == rec.Virtual {
			return fmt.Errorf("auth: group %q already has a mount at %q", name, rec.Virtual)
		}
	}
	g.Mounts = append(g.Mounts, rec)
	s.groups[name] = g
	return nil
}

// RemoveGroupMount detaches the mount at virtual from the named group.
func (s *Store) RemoveGroupMount(name, virtual string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[name]
	if !ok {
		return ErrNotFound
	}
	for i, m := range g.Mounts {
		if m.Virtual == virtual {
			g.Mounts = append(g.Mounts[:i], g.Mounts[i+1:]...)
			s.groups[name] = g
			return nil
		}
	}
	return ErrNotFound
}

// ListGroupMounts returns the mounts attached directly to the named group.
func (s *Store) ListGroupMounts(name string) ([]MountInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]MountInfo, 0, len(g.Mounts))
	for _, m := range g.Mounts {
		out = append(out, mountInfoFromRecord(m))
	}
	return out, nil
}

// VerifyPassword checks password against the named user's stored
// credential, without going through the full authenticator worker (used
// by the webui's login/change-password handlers).
func (s *Store) VerifyPassword(name, password string) (ok bool, err error) {
	s.mu.RLock()
	rec, exists := s.users[name]
	s.mu.RUnlock()
	if !exists {
		return false, ErrNotFound
	}
	if rec.Disabled {
		return false, nil
	}
	credKind := CredentialBcrypt
	if rec.CredentialKind == "legacy_md5" {
		credKind = CredentialLegacyMD5
	}
	cred := Credential{Kind: credKind, Hash: rec.CredentialHash}
	matched, needsUpgrade := cred.Verify(password)
	if !matched {
		return false, nil
	}
	if needsUpgrade {
		if upgraded, err := NewCredential(password); err == nil {
			s.mu.Lock()
			rec = s.users[name]
			rec.CredentialKind = "bcrypt"
			rec.CredentialHash = upgraded.Hash
			s.users[name] = rec
			s.mu.Unlock()
		}
	}
	return true, nil
}

// IsAdmin reports whether name is a member of the "admins" group, the
// convention webui's RequireAdmin middleware checks.
func (s *Store) IsAdmin(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[name]
	if !ok {
		return false
	}
	for _, g := range u.Groups {
		if g == "admins" {
			return true
		}
	}
	return false
}
