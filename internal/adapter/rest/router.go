package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the full HTTP surface. The session middleware runs on every
// request; the admin gate applies to the /api/admin subtree only.
func NewRouter(h *Handler, resolver SessionResolver, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(Session(resolver))

	r.Get("/healthz", h.HandleHealthz)

	r.Route("/api/listings", func(r chi.Router) {
		r.Get("/", h.HandleBrowse)
		r.Post("/", h.HandleCreateListing)
		r.Get("/{id}", h.HandleGetListing)
		r.Put("/{id}", h.HandleUpdateListing)
		r.Delete("/{id}", h.HandleDeleteListing)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(RequireAdmin)
		r.Get("/dashboard", h.HandleDashboard)
		r.Delete("/users/{id}", h.HandleDeleteUser)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
