package http

import (
	"net/http"

	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/utils"
	"github.com/MKhiriev/go-disk-next/models"
)

// login handles POST /api/user/session. The form carries username (the
// account email), password and an optional captcha token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		writeError(w, r, err)
		return
	}

	req := models.LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
		Captcha:  r.PostForm.Get("captcha"),
	}

	tokens, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, tokens, http.StatusOK)
}

// refresh handles POST /api/user/session/refresh.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		writeError(w, r, err)
		return
	}

	refreshToken := r.PostForm.Get("refresh_token")
	if refreshToken == "" {
		writeError(w, r, ErrInvalidRequestForm)
		return
	}

	tokens, err := h.services.AuthService.Refresh(r.Context(), refreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, tokens, http.StatusOK)
}

// register handles POST /api/user, the self-service sign-up.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", user.ID).Msg("user registered")
	utils.WriteJSON(w, user.Profile(), http.StatusCreated)
}

// me returns the caller's public profile.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	utils.WriteJSON(w, user.Profile(), http.StatusOK)
}
