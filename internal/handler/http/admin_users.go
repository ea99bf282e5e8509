package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/utils"
	"github.com/MKhiriev/go-disk-next/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, total, err := h.services.UserService.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, listResponse(users, total, page), http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("created_user_id", user.ID).Msg("user created")
	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var update models.UserUpdate
	if err = decodeJSON(w, r, &update); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Update(r.Context(), id, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("deleted_user_id", id).Msg("user deleted")
	w.WriteHeader(http.StatusNoContent)
}

// upgradeUserGroup handles POST /api/admin/user/{id}/group. Until is an
// RFC 3339 timestamp after which the user returns to the current group.
func (h *Handler) upgradeUserGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.GroupUpgradeRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	until, err := time.Parse(time.RFC3339, req.Until)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: until must be RFC 3339", ErrInvalidRequestBody))
		return
	}

	user, err := h.services.UserService.UpgradeGroup(r.Context(), id, req.GroupID, until)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().
		Int64("target_user_id", id).
		Int64("group_id", req.GroupID).
		Time("until", until).
		Msg("user group upgraded")
	utils.WriteJSON(w, user, http.StatusOK)
}
