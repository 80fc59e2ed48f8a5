package auth

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/marmos91/ftpserver/pkg/ratelimit"
	"github.com/marmos91/ftpserver/pkg/tvfs"
)

// mountRecord is the on-disk form of a tvfs.MountPoint.
type mountRecord struct {
	Virtual    string `xml:"virtual,attr"`
	Native     string `xml:"native,attr"`
	Access     string `xml:"access,attr"`
	Recursion  string `xml:"recursion,attr"`
	Autocreate bool   `xml:"autocreate,attr,omitempty"`
}

func (m mountRecord) toMountPoint() (tvfs.MountPoint, error) {
	access, ok := tvfs.ParseAccess(m.Access)
	if !ok {
		return tvfs.MountPoint{}, fmt.Errorf("auth: mount %q has unknown access %q", m.Virtual, m.Access)
	}
	recursion, ok := tvfs.ParseRecursion(m.Recursion)
	if !ok {
		return tvfs.MountPoint{}, fmt.Errorf("auth: mount %q has unknown recursion %q", m.Virtual, m.Recursion)
	}
	if err := tvfs.ValidatePlaceholders(m.Native); err != nil {
		return tvfs.MountPoint{}, err
	}
	return tvfs.MountPoint{
		Virtual:   m.Virtual,
		Native:    m.Native,
		Access:    access,
		Recursion: recursion,
		Flags:     tvfs.Flags{Autocreate: m.Autocreate},
	}, nil
}

// userRecord is the on-disk form of a User, serialized to users.xml.
type userRecord struct {
	XMLName xml.Name `xml:"user"`

	Name     string `xml:"name,attr"`
	Disabled bool   `xml:"disabled,attr,omitempty"`

	CredentialKind string `xml:"credential,omitempty"`
	CredentialHash string `xml:"hash,omitempty"`

	Methods []string      `xml:"methods>method,omitempty"`
	Groups  []string      `xml:"groups>group,omitempty"`
	Mounts  []mountRecord `xml:"mounts>mount,omitempty"`

	RateLimitBytesPerSec int64    `xml:"rate_limit,omitempty"`
	SessionCountLimit    int64    `xml:"session_count_limit,omitempty"`
	DisallowedIPs        []string `xml:"disallowed_ips>ip,omitempty"`
	AllowedIPs           []string `xml:"allowed_ips>ip,omitempty"`
}

// groupRecord is the on-disk form of a Group, serialized to groups.xml.
type groupRecord struct {
	XMLName xml.Name `xml:"group"`

	Name   string        `xml:"name,attr"`
	Mounts []mountRecord `xml:"mounts>mount,omitempty"`

	RateLimitBytesPerSec int64 `xml:"rate_limit,omitempty"`
	SessionCountLimit    int64 `xml:"session_count_limit,omitempty"`
}

type usersDocument struct {
	XMLName xml.Name     `xml:"users"`
	Users   []userRecord `xml:"user"`
}

type groupsDocument struct {
	XMLName xml.Name      `xml:"groups"`
	Groups  []groupRecord `xml:"group"`
}

// Store is the file-backed user/group database: two XML files
// (users.xml, groups.xml) loaded into memory and saved atomically
// (write-to-temp, then rename), matching file_based_authenticator.cpp's
// save().
type Store struct {
	usersPath  string
	groupsPath string

	mu     sync.RWMutex
	users  map[string]userRecord
	groups map[string]groupRecord
}

// NewStore creates a Store bound to the given file paths. Call Load to
// populate it from disk.
func NewStore(usersPath, groupsPath string) *Store {
	return &Store{
		usersPath:  usersPath,
		groupsPath: groupsPath,
		users:      make(map[string]userRecord),
		groups:     make(map[string]groupRecord),
	}
}

// Load reads and parses both XML files, replacing the in-memory state. A
// missing file is treated as empty, matching first-run behavior.
func (s *Store) Load() error {
	users, err := loadUsers(s.usersPath)
	if err != nil {
		return err
	}
	groups, err := loadGroups(s.groupsPath)
	if err != nil {
		return err
	}

	Sanitize(groups, users)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]userRecord, len(users))
	for _, u := range users {
		s.users[u.Name] = u
	}
	s.groups = make(map[string]groupRecord, len(groups))
	for _, g := range groups {
		s.groups[g.Name] = g
	}
	return nil
}

func loadUsers(path string) ([]userRecord, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: reading %s: %w", path, err)
	}
	var doc usersDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("auth: parsing %s: %w", path, err)
	}
	return doc.Users, nil
}

func loadGroups(path string) ([]groupRecord, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: reading %s: %w", path, err)
	}
	var doc groupsDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("auth: parsing %s: %w", path, err)
	}
	return doc.Groups, nil
}

// Save writes both files atomically (temp file in the same directory,
// then rename) so a crash mid-write never leaves a truncated file.
func (s *Store) Save() error {
	s.mu.RLock()
	users := make([]userRecord, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	groups := make([]groupRecord, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, g)
	}
	s.mu.RUnlock()

	if err := atomicWriteXML(s.usersPath, usersDocument{Users: users}); err != nil {
		return err
	}
	return atomicWriteXML(s.groupsPath, groupsDocument{Groups: groups})
}

func atomicWriteXML(path string, doc any) error {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("auth: encoding %s: %w", path, err)
	}
	data = append([]byte(xml.Header), data...)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("auth: creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("auth: writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("auth: closing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("auth: renaming into %s: %w", path, err)
	}
	return nil
}

// PutUser inserts or replaces user by name.
func (s *Store) PutUser(rec userRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[rec.Name] = rec
}

// RemoveUser deletes the named user, returning false if it did not exist.
func (s *Store) RemoveUser(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[name]; !ok {
		return false
	}
	delete(s.users, name)
	return true
}

// PutGroup inserts or replaces group by name.
func (s *Store) PutGroup(rec groupRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[rec.Name] = rec
}

// RemoveGroup deletes the named group, returning false if it did not
// exist.
func (s *Store) RemoveGroup(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[name]; !ok {
		return false
	}
	delete(s.groups, name)
	return true
}

// UserNames returns every configured username.
func (s *Store) UserNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.users))
	for n := range s.users {
		names = append(names, n)
	}
	return names
}

// BuildUser materializes a runtime *User for name, resolving its group
// memberships into a merged mount tree and the tighter of the user's and
// each group's rate/session limits (via ratelimit.Tighten), mirroring
// file_based_authenticator.cpp's update_shared_user.
func (s *Store) BuildUser(name string) (*User, error) {
	s.mu.RLock()
	rec, ok := s.users[name]
	if !ok {
		s.mu.RUnlock()
		return nil, NewError(AuthUserNonexisting)
	}
	groupRecs := make([]groupRecord, 0, len(rec.Groups))
	for _, gname := range rec.Groups {
		if g, ok := s.groups[gname]; ok {
			groupRecs = append(groupRecs, g)
		}
	}
	s.mu.RUnlock()

	if rec.Disabled {
		return nil, NewError(AuthUserDisabled)
	}

	mounts := make([]tvfs.MountPoint, 0, len(rec.Mounts))
	for _, m := range rec.Mounts {
		mp, err := m.toMountPoint()
		if err != nil {
			return nil, err
		}
		mounts = append(mounts, mp)
	}
	for _, g := range groupRecs {
		for _, m := range g.Mounts {
			mp, err := m.toMountPoint()
			if err != nil {
				return nil, err
			}
			mounts = append(mounts, mp)
		}
	}
	tree, err := tvfs.BuildTree(mounts)
	if err != nil {
		return nil, err
	}

	limit := rec.RateLimitBytesPerSec
	sessionLimit := rec.SessionCountLimit
	var extraLimiters []*ratelimit.Limiter
	var extraSessionLimiters []*ratelimit.Counter
	for _, g := range groupRecs {
		limit = ratelimit.Tighten(limit, g.RateLimitBytesPerSec)
		sessionLimit = ratelimit.Tighten(sessionLimit, g.SessionCountLimit)
		extraLimiters = append(extraLimiters, g.limiter())
		extraSessionLimiters = append(extraSessionLimiters, g.sessionCounter())
	}

	methods := make([]MethodKind, 0, len(rec.Methods))
	for _, m := range rec.Methods {
		switch m {
		case "password":
			methods = append(methods, MethodKindPassword)
		case "token":
			methods = append(methods, MethodKindToken)
		}
	}
	if len(methods) == 0 {
		methods = []MethodKind{MethodKindPassword}
	}

	credKind := CredentialBcrypt
	if rec.CredentialKind == "legacy_md5" {
		credKind = CredentialLegacyMD5
	}

	return &User{
		ID:                        name,
		Name:                      name,
		Disabled:                  rec.Disabled,
		Credential:                Credential{Kind: credKind, Hash: rec.CredentialHash},
		Methods:                   AvailableMethods{NewMethodSet(methods...)},
		MountTree:                 tree,
		Limiter:                   ratelimit.New(limit),
		ExtraLimiters:             extraLimiters,
		SessionCountLimiter:       ratelimit.NewLimitedCounter("sessions:"+name, sessionLimit),
		ExtraSessionCountLimiters: extraSessionLimiters,
		DisallowedIPs:             rec.DisallowedIPs,
		AllowedIPs:                rec.AllowedIPs,
	}, nil
}

func (g groupRecord) limiter() *ratelimit.Limiter {
	return ratelimit.New(g.RateLimitBytesPerSec)
}

func (g groupRecord) sessionCounter() *ratelimit.Counter {
	return ratelimit.NewLimitedCounter("sessions:group:"+g.Name, g.SessionCountLimit)
}
