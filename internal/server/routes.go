package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"homescout/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Post("/search", handler(s.postV1Search))
			r.Get("/community/{id}", handler(s.getV1Community))
			r.Get("/config/weights", handler(s.getV1ConfigWeights))
			r.Post("/crawl", handler(s.postV1Crawl))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
