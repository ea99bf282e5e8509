package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, h.withMetrics)
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}
		r.Use(middleware.Compress(5, "application/json"))

		// routes without authorization
		r.Get("/api/site/ping", h.ping)
		r.Get("/api/site/config", h.siteConfig)
		r.Post("/api/user/session", h.login)
		r.Post("/api/user/session/refresh", h.refresh)
		r.Post("/api/user", h.register)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/api/user/me", h.me)

			r.Group(func(r chi.Router) {
				r.Use(h.requireAdmin)

				r.Get("/api/admin/settings", h.listSettings)
				r.Patch("/api/admin/settings", h.updateSettings)

				r.Get("/api/admin/group", h.listGroups)
				r.Post("/api/admin/group", h.createGroup)
				r.Get("/api/admin/group/{id}", h.getGroup)
				r.Patch("/api/admin/group/{id}", h.updateGroup)
				r.Delete("/api/admin/group/{id}", h.deleteGroup)
				r.Get("/api/admin/group/list/{id}", h.listGroupMembers)

				r.Get("/api/admin/user/list", h.listUsers)
				r.Get("/api/admin/user/info/{id}", h.getUser)
				r.Post("/api/admin/user/create", h.createUser)
				r.Patch("/api/admin/user/{id}", h.updateUser)
				r.Delete("/api/admin/user/{id}", h.deleteUser)
				r.Post("/api/admin/user/{id}/group", h.upgradeUserGroup)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, ErrRouteNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
