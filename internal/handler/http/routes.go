package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// routes requiring a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", h.listTasks)
			r.Post("/", h.createTask)
			r.Get("/stats", h.taskStats)

			r.Route("/{taskID}", func(r chi.Router) {
				r.Get("/", h.getTask)
				r.Patch("/", h.updateTask)
				r.Delete("/", h.deleteTask)
			})
		})

		r.Route("/api/user/me", func(r chi.Router) {
			r.Get("/", h.profile)
			r.Patch("/", h.updateProfile)
			r.Post("/avatar", h.uploadAvatar)
		})
	})

	return router
}
