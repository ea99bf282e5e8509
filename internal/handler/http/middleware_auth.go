package http

import (
	"net/http"

	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/utils"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It extracts the token from the "Authorization" header, resolves it to a
// user via [service.AuthService.Authenticate] and stores the user in the
// request context under [utils.UserCtxKey]. Every failure is answered with
// 401 and a Bearer challenge; storage failures are answered with 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		log := logger.FromContext(ctx).With().Int64("user_id", user.ID).Logger()
		ctx = log.WithContext(utils.WithUser(ctx, &user))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin lets the request through only when the authenticated user's
// group is an admin group. It must run after auth.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetUserFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrNoUserInContext)
			return
		}

		if _, err := h.services.AuthService.RequireAdmin(*user); err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
