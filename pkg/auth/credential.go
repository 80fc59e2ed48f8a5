package auth

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialKind distinguishes how Credential.Hash was produced, so a
// successful verification against a legacy hash can trigger a transparent
// upgrade to bcrypt on next save.
type CredentialKind int

const (
	// CredentialBcrypt is the current, preferred password hash.
	CredentialBcrypt CredentialKind = iota
	// CredentialLegacyMD5 is an md5-hex password hash carried over from
	// older configuration imports; it verifies but is never produced for
	// new passwords.
	CredentialLegacyMD5
)

// Credential holds one user's stored password hash.
type Credential struct {
	Kind CredentialKind
	Hash string
}

// NewCredential hashes password with bcrypt at the default cost.
func NewCredential(password string) (Credential, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credential{}, fmt.Errorf("auth: hashing credential: %w", err)
	}
	return Credential{Kind: CredentialBcrypt, Hash: string(h)}, nil
}

// Verify reports whether password matches c's stored hash, and whether
// the credential kind is eligible for a transparent upgrade to bcrypt
// (true only when the match succeeded against a legacy hash).
func (c Credential) Verify(password string) (ok bool, needsUpgrade bool) {
	switch c.Kind {
	case CredentialBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(c.Hash), []byte(password)) == nil, false
	case CredentialLegacyMD5:
		sum := md5.Sum([]byte(password))
		got := hex.EncodeToString(sum[:])
		match := subtle.ConstantTimeCompare([]byte(strings.ToLower(got)), []byte(strings.ToLower(c.Hash))) == 1
		return match, match
	default:
		return false, false
	}
}
