package webui

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/marmos91/ftpserver/pkg/adminrpc"
	"github.com/marmos91/ftpserver/pkg/auth"
)

// MountHandler implements the /mounts sub-resource nested under both
// /api/v1/users/{username} and /api/v1/groups/{name}.
type MountHandler struct {
	store *auth.Store
}

func NewMountHandler(store *auth.Store) *MountHandler {
	return &MountHandler{store: store}
}

func fromAPIMount(req adminrpc.CreateMountRequest) auth.MountInfo {
	return auth.MountInfo{
		Virtual:    req.Virtual,
		Native:     req.Native,
		Access:     req.Access,
		Recursion:  req.Recursion,
		Autocreate: req.Autocreate,
	}
}

func wildcardVirtual(r *http.Request) string {
	v := chi.URLParam(r, "*")
	if v == "" {
		return ""
	}
	return "/" + strings.TrimPrefix(v, "/")
}

func (h *MountHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "username")
	mounts, err := h.store.ListUserMounts(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}
	writeJSON(w, http.StatusOK, toAPIMounts(mounts))
}

func (h *MountHandler) CreateForUser(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "username")
	var req adminrpc.CreateMountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.store.AddUserMount(name, fromAPIMount(req)); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toAPIMount(fromAPIMount(req)))
}

func (h *MountHandler) DeleteForUser(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "username")
	virtual := wildcardVirtual(r)
	if err := h.store.RemoveUserMount(name, virtual); err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "mount not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MountHandler) ListForGroup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	mounts, err := h.store.ListGroupMounts(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "group not found")
		return
	}
	writeJSON(w, http.StatusOK, toAPIMounts(mounts))
}

func (h *MountHandler) CreateForGroup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req adminrpc.CreateMountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.store.AddGroupMount(name, fromAPIMount(req)); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toAPIMount(fromAPIMount(req)))
}

func (h *MountHandler) DeleteForGroup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	virtual := wildcardVirtual(r)
	if err := h.store.RemoveGroupMount(name, virtual); err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "mount not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toAPIMounts(mounts []auth.MountInfo) []adminrpc.Mount {
	out := make([]adminrpc.Mount, 0, len(mounts))
	for _, m := range mounts {
		out = append(out, toAPIMount(m))
	}
	return out
}
