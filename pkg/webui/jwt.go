// Package webui implements the admin HTTP API that ftpserverctl drives:
// JWT-based login/refresh/logout, and user/group/mount CRUD layered over
// pkg/auth.Store, on a chi router with JWT issuance/verification backed
// by a SQLite refresh-token ledger.
package webui

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common JWT errors.
var (
	ErrInvalidToken        = errors.New("webui: invalid token")
	ErrExpiredToken        = errors.New("webui: token has expired")
	ErrInvalidTokenType    = errors.New("webui: invalid token type")
	ErrInvalidSecretLength = errors.New("webui: JWT secret must be at least 32 characters")
)

// TokenType distinguishes access tokens from refresh tokens within the
// same claims shape.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the JWT payload issued by the webui.
type Claims struct {
	jwt.RegisteredClaims
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	TokenType TokenType `json:"token_type"`
}

func (c *Claims) IsAccessToken() bool  { return c.TokenType == TokenTypeAccess }
func (c *Claims) IsRefreshToken() bool { return c.TokenType == TokenTypeRefresh }

// JWTConfig configures the JWTService.
type JWTConfig struct {
	Secret               string
	Issuer               string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
}

// JWTService issues and validates access/refresh token pairs.
type JWTService struct {
	cfg JWTConfig
}

// TokenPair is the wire response of a successful login or refresh.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// NewJWTService validates cfg and applies defaults, matching the
// teacher's NewJWTService.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	if len(cfg.Secret) < 32 {
		return nil, ErrInvalidSecretLength
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "ftpserverd"
	}
	if cfg.AccessTokenDuration == 0 {
		cfg.AccessTokenDuration = 15 * time.Minute
	}
	if cfg.RefreshTokenDuration == 0 {
		cfg.RefreshTokenDuration = 7 * 24 * time.Hour
	}
	return &JWTService{cfg: cfg}, nil
}

// GenerateTokenPair issues an access/refresh pair for username. It
// returns the refresh token's jti alongside the pair so the caller can
// record it in the TokenDB for revocation/replay detection.
func (s *JWTService) GenerateTokenPair(username string, isAdmin bool) (*TokenPair, string, error) {
	now := time.Now()
	accessExpiry := now.Add(s.cfg.AccessTokenDuration)
	refreshExpiry := now.Add(s.cfg.RefreshTokenDuration)

	access, _, err := s.sign(username, isAdmin, TokenTypeAccess, now, accessExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("webui: generating access token: %w", err)
	}
	refresh, refreshJTI, err := s.sign(username, isAdmin, TokenTypeRefresh, now, refreshExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("webui: generating refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.cfg.AccessTokenDuration.Seconds()),
		ExpiresAt:    accessExpiry,
	}, refreshJTI, nil
}

func (s *JWTService) sign(username string, isAdmin bool, kind TokenType, issuedAt, expiresAt time.Time) (signed string, jti string, err error) {
	jti = uuid.NewString()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.cfg.Issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username:  username,
		IsAdmin:   isAdmin,
		TokenType: kind,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err = token.SignedString([]byte(s.cfg.Secret))
	return signed, jti, err
}

// ValidateToken parses and verifies tokenString regardless of its kind.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateAccessToken validates tokenString and requires it be an access token.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if !claims.IsAccessToken() {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

// ValidateRefreshToken validates tokenString and requires it be a refresh token.
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken() {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}
