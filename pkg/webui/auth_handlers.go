package webui

import (
	"net/http"

	"github.com/marmos91/ftpserver/pkg/adminrpc"
	"github.com/marmos91/ftpserver/pkg/auth"
)

// AuthHandler implements /api/v1/auth/*.
type AuthHandler struct {
	store   *auth.Store
	jwt     *JWTService
	tokens  *TokenDB
	autoban AutobanRecorder
}

// AutobanRecorder is the subset of *autoban.Autobanner the auth handler
// needs, kept as an interface so webui doesn't have to import autoban's
// full package for a single call.
type AutobanRecorder interface {
	RecordFailure(ip string)
	IsBanned(ip string) bool
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(store *auth.Store, jwt *JWTService, tokens *TokenDB, ab AutobanRecorder) *AuthHandler {
	return &AuthHandler{store: store, jwt: jwt, tokens: tokens, autoban: ab}
}

func clientIP(r *http.Request) string {
	if host, _, err := splitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req adminrpc.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	ip := clientIP(r)
	if h.autoban != nil && h.autoban.IsBanned(ip) {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "too many failed attempts; try again later")
		return
	}

	ok, err := h.store.VerifyPassword(req.Username, req.Password)
	if err != nil || !ok {
		if h.autoban != nil {
			h.autoban.RecordFailure(ip)
		}
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid username or password")
		return
	}

	h.issueTokens(w, req.Username)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	claims, err := h.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired refresh token")
		return
	}
	if h.tokens != nil {
		valid, err := h.tokens.IsValid(claims.ID)
		if err != nil || !valid {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "refresh token has been revoked")
			return
		}
		_ = h.tokens.Revoke(claims.ID)
	}

	h.issueTokens(w, claims.Username)
}

func (h *AuthHandler) issueTokens(w http.ResponseWriter, username string) {
	isAdmin := h.store.IsAdmin(username)
	pair, refreshJTI, err := h.jwt.GenerateTokenPair(username, isAdmin)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ERROR", "failed to issue tokens")
		return
	}
	if h.tokens != nil {
		_ = h.tokens.Record(refreshJTI, username, pair.ExpiresAt.Add(0))
	}
	writeJSON(w, http.StatusOK, adminrpc.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		ExpiresAt:    pair.ExpiresAt,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())
	if claims != nil && h.tokens != nil {
		_ = h.tokens.RevokeAllForUser(claims.Username)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authenticated")
		return
	}
	info, err := h.store.GetUserInfo(claims.Username)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}
	writeJSON(w, http.StatusOK, adminrpc.Identity{
		Username: info.Name,
		Groups:   info.Groups,
		IsAdmin:  claims.IsAdmin,
	})
}
