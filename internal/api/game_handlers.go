package api

import (
	"net/http"

	"github.com/vytor/colorflash/internal/errors"
	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/models"
)

type selectRequest struct {
	Color string `json:"color"`
}

type paletteResponse struct {
	Colors []models.Color `json:"colors"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Engine.Snapshot())
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, paletteResponse{Colors: s.Engine.Palette()})
}

// transition runs an engine intent and replies with the resulting snapshot.
// Intents that do not apply in the current state leave it unchanged.
func (s *Server) transition(name string, intent func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		before := s.Engine.Snapshot().State
		intent()
		snap := s.Engine.Snapshot()
		log.Debug("%s: state %s -> %s", name, before, snap.State)
		writeJSON(w, r, http.StatusOK, snap)
	}
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.transition("start", s.Engine.StartGame)(w, r)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.transition("pause", s.Engine.PauseGame)(w, r)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.transition("resume", s.Engine.ResumeGame)(w, r)
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	s.transition("end", s.Engine.EndGame)(w, r)
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	s.transition("menu", s.Engine.ReturnToMenu)(w, r)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req selectRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError(err.Error()))
		return
	}
	color, err := models.ParseColor(req.Color)
	if err != nil {
		log.Warn("invalid color in select: %q", req.Color)
		handleError(w, r, errors.NewValidationError("color", err.Error()))
		return
	}

	s.transition("select", func() { s.Engine.SelectColor(color) })(w, r)
}
