package http

import (
	"net/http"

	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/utils"
	"github.com/MKhiriev/go-disk-next/models"
)

// listSettings handles GET /api/admin/settings?type=<category>.
func (h *Handler) listSettings(w http.ResponseWriter, r *http.Request) {
	settingType := r.URL.Query().Get("type")
	if settingType == "" {
		writeError(w, r, ErrInvalidQuery)
		return
	}

	settings, err := h.services.SettingService.ListByType(r.Context(), settingType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if settings == nil {
		settings = []models.Setting{}
	}

	utils.WriteJSON(w, settings, http.StatusOK)
}

// updateSettings handles PATCH /api/admin/settings. Every listed setting
// must already exist; the batch is applied atomically.
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.SettingUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.SettingService.SetMany(r.Context(), req.Settings); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int("count", len(req.Settings)).Msg("settings updated")
	w.WriteHeader(http.StatusNoContent)
}
