package webui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marmos91/ftpserver/pkg/adminrpc"
	"github.com/marmos91/ftpserver/pkg/auth"
)

// GroupHandler implements /api/v1/groups/*.
type GroupHandler struct {
	store *auth.Store
}

func NewGroupHandler(store *auth.Store) *GroupHandler {
	return &GroupHandler{store: store}
}

func toAPIGroup(info auth.GroupInfo) adminrpc.Group {
	mounts := make([]adminrpc.Mount, 0, len(info.Mounts))
	for _, m := range info.Mounts {
		mounts = append(mounts, toAPIMount(m))
	}
	return adminrpc.Group{
		Name:                 info.Name,
		Mounts:               mounts,
		RateLimitBytesPerSec: info.RateLimitBytesPerSec,
		SessionCountLimit:    info.SessionCountLimit,
	}
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	infos := h.store.ListGroups()
	groups := make([]adminrpc.Group, 0, len(infos))
	for _, info := range infos {
		groups = append(groups, toAPIGroup(info))
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	info, err := h.store.GetGroupInfo(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "group not found")
		return
	}
	writeJSON(w, http.StatusOK, toAPIGroup(info))
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req adminrpc.CreateGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required")
		return
	}
	if err := h.store.CreateGroup(req.Name, req.RateLimitBytesPerSec, req.SessionCountLimit); err != nil {
		if err == auth.ErrExists {
			writeError(w, http.StatusConflict, "CONFLICT", "group already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "ERROR", err.Error())
		return
	}
	info, _ := h.store.GetGroupInfo(req.Name)
	writeJSON(w, http.StatusCreated, toAPIGroup(info))
}

func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req adminrpc.UpdateGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	patch := auth.GroupPatch{
		RateLimitBytesPerSec: req.RateLimitBytesPerSec,
		SessionCountLimit:    req.SessionCountLimit,
	}
	if err := h.store.UpdateGroup(name, patch); err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "group not found")
		return
	}
	info, _ := h.store.GetGroupInfo(name)
	writeJSON(w, http.StatusOK, toAPIGroup(info))
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.store.RemoveGroup(name) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "group not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	members, err := h.store.ListGroupMembers(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "group not found")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req struct {
		Username string `json:"username"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if err := h.store.AddGroupMember(name, req.Username); err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "group or user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	username := chi.URLParam(r, "username")
	if err := h.store.RemoveGroupMember(name, username); err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "membership not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
