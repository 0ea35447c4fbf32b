// Package httpapi exposes the scoring gateway and the viewer streams over
// HTTP. It is one possible transport for the topic/registry/dispatcher
// trio; the registry only ever sees connection ids and sinks.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"scorecast/auth"
	"scorecast/services"
)

type Server struct {
	log            *slog.Logger
	service        services.IScoringService
	jwtSecret      []byte
	connBufferSize int
}

func NewServer(log *slog.Logger, service services.IScoringService, jwtSecret []byte, connBufferSize int) *Server {
	return &Server{
		log:            log,
		service:        service,
		jwtSecret:      jwtSecret,
		connBufferSize: connBufferSize,
	}
}

// Router wires the REST and SSE surface. Reads are public; every mutation
// goes through the Bearer middleware and then the service's role check.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/matches/{id}", s.getMatch)
		r.Get("/matches/{id}/commentary", s.getCommentary)
		r.Get("/live", s.getLiveMatches)

		r.Get("/matches/{id}/stream", s.streamMatch)
		r.Get("/sports/{key}/stream", s.streamSport)
		r.Get("/live/stream", s.streamLiveMatches)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(s.jwtSecret))
			r.Post("/matches", s.createMatch)
			r.Post("/matches/{id}/deliveries", s.submitDelivery)
			r.Patch("/matches/{id}/status", s.submitStatusChange)
		})
	})

	return r
}
