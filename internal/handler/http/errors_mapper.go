package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/service"
	"github.com/MKhiriev/go-disk-next/internal/store"
	"github.com/MKhiriev/go-disk-next/internal/utils"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings is ordered: the first target matched by errors.Is wins.
var errorMappings = []errorMapping{
	{service.ErrCaptchaFailed, http.StatusBadRequest, "captcha_failed"},
	{service.ErrCaptchaUnavailable, http.StatusBadGateway, "captcha_unavailable"},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, "invalid_data"},
	{ErrInvalidRequestBody, http.StatusBadRequest, "invalid_body"},
	{ErrInvalidRequestForm, http.StatusBadRequest, "invalid_form"},
	{ErrInvalidID, http.StatusBadRequest, "invalid_id"},
	{ErrInvalidQuery, http.StatusBadRequest, "invalid_query"},
	{store.ErrUnknownGroupReference, http.StatusBadRequest, "unknown_group"},

	{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, "invalid_token"},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, "invalid_token"},
	{utils.ErrInvalidBearerHeader, http.StatusUnauthorized, "invalid_token"},

	{service.ErrUserNotActivated, http.StatusForbidden, "user_not_activated"},
	{service.ErrUserBanned, http.StatusForbidden, "user_banned"},
	{service.ErrAdminRequired, http.StatusForbidden, "admin_required"},
	{service.ErrProtectedUser, http.StatusForbidden, "protected_user"},
	{service.ErrProtectedGroup, http.StatusForbidden, "protected_group"},
	{service.ErrRegistrationDisabled, http.StatusForbidden, "registration_disabled"},

	{store.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{store.ErrGroupNotFound, http.StatusNotFound, "group_not_found"},
	{store.ErrSettingNotFound, http.StatusNotFound, "setting_not_found"},
	{ErrRouteNotFound, http.StatusNotFound, "not_found"},

	{store.ErrEmailAlreadyExists, http.StatusConflict, "email_exists"},
	{store.ErrUserAlreadyExists, http.StatusConflict, "user_exists"},
	{store.ErrGroupNameAlreadyExists, http.StatusConflict, "group_name_exists"},
	{store.ErrSettingAlreadyExists, http.StatusConflict, "setting_exists"},
	{store.ErrGroupHasMembers, http.StatusConflict, "group_has_members"},
}

// mapError returns the status, machine code and client-safe detail for err.
// The detail is the matched sentinel's text, never the wrapped chain, so
// driver messages do not reach the client.
func mapError(err error) (int, string, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code, m.target.Error()
		}
	}
	return http.StatusInternalServerError, "internal_error", http.StatusText(http.StatusInternalServerError)
}

// writeError logs err and writes it as a JSON error body. 401 responses
// carry a Bearer challenge.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, detail := mapError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("code", code).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("code", code).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="go-disk-next"`)
	}
	utils.WriteError(w, status, code, detail)
}
