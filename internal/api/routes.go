package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vytor/colorflash/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", s.handleEvents)

		r.Group(func(r chi.Router) {
			timeout := s.RequestTimeout
			if timeout <= 0 {
				timeout = 10 * time.Second
			}
			r.Use(timeoutMiddleware(timeout))

			r.Get("/session", s.handleSession)
			r.Get("/palette", s.handlePalette)

			r.Post("/game/start", s.handleStart)
			r.Post("/game/pause", s.handlePause)
			r.Post("/game/resume", s.handleResume)
			r.Post("/game/end", s.handleEnd)
			r.Post("/game/menu", s.handleMenu)
			r.Post("/game/select", s.handleSelect)

			r.Get("/settings", s.handleGetSettings)
			r.Put("/settings", s.handleUpdateSettings)

			r.Get("/stats", s.handleStats)
			r.Get("/stats/best", s.handleBestScores)
			r.Get("/results", s.handleResults)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, &errors.AppError{
			Code:    errors.ErrCodeBadRequest,
			Message: "method not allowed",
			Status:  http.StatusMethodNotAllowed,
		})
	})
	return r
}
