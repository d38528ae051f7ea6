package web

import (
	"net/http"

	"github.com/Harshinireddy05/DayntTech/internal/logging"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the public and protected routes.
func NewRouter(h *Handler, logger logging.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(logger.With("module", "http")))
	r.Use(chimw.Recoverer)

	// Public routes
	r.Get("/", h.Home)
	r.Get("/healthz", h.Healthz)
	r.Get("/login", h.ShowLogin)
	r.Post("/login", h.Login)
	r.Post("/signup", h.Signup)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(noStore)
		r.Use(requireAuth(h.users))

		r.Post("/logout", h.Logout)
		r.Get("/dashboard", h.ShowDashboard)

		r.Route("/dashboard/people", func(r chi.Router) {
			r.Get("/new", h.ShowNewPerson)
			r.Post("/", h.CreatePerson)
			r.Get("/{id}/edit", h.ShowEditPerson)
			r.Post("/{id}", h.UpdatePerson)
			r.Get("/{id}/delete", h.ShowDeletePerson)
			r.Post("/{id}/delete", h.DeletePerson)
		})
	})

	return r
}
