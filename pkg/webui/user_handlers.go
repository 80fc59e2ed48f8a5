package webui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marmos91/ftpserver/pkg/adminrpc"
	"github.com/marmos91/ftpserver/pkg/auth"
)

// UserHandler implements /api/v1/users/*.
type UserHandler struct {
	store  *auth.Store
	tokens *TokenDB
	jwt    *JWTService
}

func NewUserHandler(store *auth.Store, tokens *TokenDB, jwt *JWTService) *UserHandler {
	return &UserHandler{store: store, tokens: tokens, jwt: jwt}
}

func toAPIUser(info auth.UserInfo) adminrpc.User {
	mounts := make([]adminrpc.Mount, 0, len(info.Mounts))
	for _, m := range info.Mounts {
		mounts = append(mounts, toAPIMount(m))
	}
	return adminrpc.User{
		Name:                 info.Name,
		Disabled:             info.Disabled,
		Methods:              info.Methods,
		Groups:               info.Groups,
		Mounts:               mounts,
		RateLimitBytesPerSec: info.RateLimitBytesPerSec,
		SessionCountLimit:    info.SessionCountLimit,
		DisallowedIPs:        info.DisallowedIPs,
		AllowedIPs:           info.AllowedIPs,
	}
}

func toAPIMount(m auth.MountInfo) adminrpc.Mount {
	return adminrpc.Mount{
		Virtual:    m.Virtual,
		Native:     m.Native,
		Access:     m.Access,
		Recursion:  m.Recursion,
		Autocreate: m.Autocreate,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	infos := h.store.ListUsers()
	users := make([]adminrpc.User, 0, len(infos))
	for _, info := range infos {
		users = append(users, toAPIUser(info))
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "username")
	info, err := h.store.GetUserInfo(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}
	writeJSON(w, http.StatusOK, toAPIUser(info))
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req adminrpc.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if req.Name == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name and password are required")
		return
	}
	if err := h.store.CreateUserWithPassword(req.Name, req.Password, req.Methods, req.Groups); err != nil {
		if err == auth.ErrExists {
			writeError(w, http.StatusConflict, "CONFLICT", "user already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "ERROR", err.Error())
		return
	}
	patch := auth.UserPatch{
		Disabled:             req.Disabled,
		RateLimitBytesPerSec: nonZeroPtr(req.RateLimitBytesPerSec),
		SessionCountLimit:    nonZeroPtr(req.SessionCountLimit),
	}
	if len(req.DisallowedIPs) > 0 {
		patch.DisallowedIPs = req.DisallowedIPs
	}
	if len(req.AllowedIPs) > 0 {
		patch.AllowedIPs = req.AllowedIPs
	}
	_ = h.store.UpdateUser(req.Name, patch)

	info, _ := h.store.GetUserInfo(req.Name)
	writeJSON(w, http.StatusCreated, toAPIUser(info))
}

func nonZeroPtr(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "username")
	var req adminrpc.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	patch := auth.UserPatch{
		Disabled:             req.Disabled,
		RateLimitBytesPerSec: req.RateLimitBytesPerSec,
		SessionCountLimit:    req.SessionCountLimit,
	}
	if req.Groups != nil {
		patch.Groups = *req.Groups
	}
	if req.DisallowedIPs != nil {
		patch.DisallowedIPs = *req.DisallowedIPs
	}
	if req.AllowedIPs != nil {
		patch.AllowedIPs = *req.AllowedIPs
	}
	if err := h.store.UpdateUser(name, patch); err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}
	info, _ := h.store.GetUserInfo(name)
	writeJSON(w, http.StatusOK, toAPIUser(info))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "username")
	if !h.store.RemoveUser(name) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "username")
	var req adminrpc.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.store.SetUserPassword(name, req.NewPassword); err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}
	if h.tokens != nil {
		_ = h.tokens.RevokeAllForUser(name)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) ChangeOwnPassword(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authenticated")
		return
	}
	var req adminrpc.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	ok, err := h.store.VerifyPassword(claims.Username, req.CurrentPassword)
	if err != nil || !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "current password is incorrect")
		return
	}
	if err := h.store.SetUserPassword(claims.Username, req.NewPassword); err != nil {
		writeError(w, http.StatusInternalServerError, "ERROR", err.Error())
		return
	}
	if h.tokens != nil {
		_ = h.tokens.RevokeAllForUser(claims.Username)
	}

	pair, refreshJTI, err := h.jwt.GenerateTokenPair(claims.Username, claims.IsAdmin)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ERROR", "failed to issue tokens")
		return
	}
	if h.tokens != nil {
		_ = h.tokens.Record(refreshJTI, claims.Username, pair.ExpiresAt)
	}
	writeJSON(w, http.StatusOK, adminrpc.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		ExpiresAt:    pair.ExpiresAt,
	})
}
