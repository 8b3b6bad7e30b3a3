package httpapi

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// allowCredentials is off for wildcard origins so that no arbitrary site
// gets credentialed access.
func (s *HTTPServer) allowCredentials() bool {
	return !slices.Contains(s.allowedOrigins, "*")
}

// Router builds the full handler tree. Everything under /api/auth except
// register and login requires a bearer token.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: s.allowCredentials(),
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", s.health)

		api.Route("/auth", func(a chi.Router) {
			a.Post("/register", s.register)
			a.Post("/login", s.login)

			a.Group(func(p chi.Router) {
				p.Use(s.requireAuth)

				p.Get("/me", s.me)
				p.Get("/profile", s.me)
				p.Put("/profile", s.updateProfile)
				p.Put("/change-password", s.changePassword)
				p.Delete("/account", s.deleteAccount)
				p.Delete("/profile", s.deleteAccount)
				p.Post("/logout", s.logout)
				p.Post("/avatar", s.requestAvatarUpload)
			})
		})
	})

	return r
}
