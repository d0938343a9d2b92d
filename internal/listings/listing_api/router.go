package listing_api

import (
	"net/http"

	"ms-directory/internal/flash"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the full HTTP surface with its middleware chain.
func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.Logger))
	r.Use(h.Recoverer)
	r.Use(flash.Middleware)

	h.RegisterRoutes(r)
	return r
}
