package http

import (
	"net/http"

	"github.com/MKhiriev/go-disk-next/internal/utils"
	"github.com/MKhiriev/go-disk-next/models"
)

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	utils.WriteJSON(w, models.PingResponse{Version: version}, http.StatusOK)
}

func (h *Handler) siteConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.services.AppInfoService.SiteConfig(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, cfg, http.StatusOK)
}
