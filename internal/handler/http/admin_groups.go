package http

import (
	"net/http"

	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/utils"
	"github.com/MKhiriev/go-disk-next/models"
)

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.services.GroupService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}

	utils.WriteJSON(w, groups, http.StatusOK)
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	group, err := h.services.GroupService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, group, http.StatusOK)
}

// listGroupMembers handles GET /api/admin/group/list/{id}.
func (h *Handler) listGroupMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, total, err := h.services.GroupService.Members(r.Context(), id, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, listResponse(users, total, page), http.StatusOK)
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var group models.Group
	if err := decodeJSON(w, r, &group); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.services.GroupService.Create(r.Context(), group)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("group_id", created.ID).Str("name", created.Name).Msg("group created")
	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var update models.GroupUpdate
	if err = decodeJSON(w, r, &update); err != nil {
		writeError(w, r, err)
		return
	}

	group, err := h.services.GroupService.Update(r.Context(), id, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, group, http.StatusOK)
}

func (h *Handler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.GroupService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("group_id", id).Msg("group deleted")
	w.WriteHeader(http.StatusNoContent)
}
