package webui

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// refreshTokenRecord is one issued refresh token, tracked in SQLite via
// gorm so it can be revoked on logout and so a reused-after-revoke token
// is rejected (replay detection).
type refreshTokenRecord struct {
	ID        string `gorm:"primaryKey"`
	Username  string `gorm:"index"`
	ExpiresAt time.Time
	Revoked   bool `gorm:"index"`
	CreatedAt time.Time
}

func (refreshTokenRecord) TableName() string { return "refresh_tokens" }

// TokenDB is the SQLite-backed refresh-token ledger, stored in the file
// named by the webui token_db_path setting (tokens.db in the
// configuration directory by default).
type TokenDB struct {
	db *gorm.DB
}

// OpenTokenDB opens (creating if needed) the SQLite database at path and
// migrates its schema.
func OpenTokenDB(path string) (*TokenDB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("webui: opening token database: %w", err)
	}
	if err := db.AutoMigrate(&refreshTokenRecord{}); err != nil {
		return nil, fmt.Errorf("webui: migrating token database: %w", err)
	}
	return &TokenDB{db: db}, nil
}

// Record persists that a refresh token with the given jti was issued to
// username, expiring at expiresAt.
func (t *TokenDB) Record(jti, username string, expiresAt time.Time) error {
	rec := refreshTokenRecord{
		ID:        jti,
		Username:  username,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return t.db.Create(&rec).Error
}

// IsValid reports whether jti is a known, unrevoked, unexpired refresh
// token. A token absent from the database (e.g. issued before a restart
// that wiped an in-memory-only deployment) is treated as invalid.
func (t *TokenDB) IsValid(jti string) (bool, error) {
	var rec refreshTokenRecord
	err := t.db.First(&rec, "id = ?", jti).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	if rec.Revoked || time.Now().After(rec.ExpiresAt) {
		return false, nil
	}
	return true, nil
}

// Revoke marks jti as revoked, rejecting any future refresh using it.
func (t *TokenDB) Revoke(jti string) error {
	return t.db.Model(&refreshTokenRecord{}).Where("id = ?", jti).Update("revoked", true).Error
}

// RevokeAllForUser revokes every outstanding refresh token for username,
// used on password change/reset to invalidate existing sessions.
func (t *TokenDB) RevokeAllForUser(username string) error {
	return t.db.Model(&refreshTokenRecord{}).Where("username = ? AND revoked = ?", username, false).Update("revoked", true).Error
}

// Close releases the underlying database connection.
func (t *TokenDB) Close() error {
	sqlDB, err := t.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
