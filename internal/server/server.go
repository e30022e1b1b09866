// Package server exposes the query pipeline over a JSON API for the
// chart frontend: x = years to maturity, y = yield or spread.
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"CurveWatch/internal/pipeline"
)

// Server wraps the HTTP API around a pipeline.
type Server struct {
	Pipeline *pipeline.Pipeline
}

func New(p *pipeline.Pipeline) *Server {
	return &Server{Pipeline: p}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/issuers", s.handleIssuers)
		r.Get("/curve", s.handleCurve)
		r.Get("/points", s.handlePoints)
	})
	return r
}

// ListenAndServe blocks serving the API.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("[INFO] http api listening on %s", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return srv.ListenAndServe()
}
