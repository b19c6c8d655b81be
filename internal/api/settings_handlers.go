package api

import (
	"net/http"

	"github.com/vytor/colorflash/internal/errors"
	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/models"
)

// settingsRequest allows partial updates; omitted fields keep their value.
type settingsRequest struct {
	SoundEnabled *bool   `json:"sound_enabled"`
	Difficulty   *string `json:"difficulty"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Engine.Settings())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError(err.Error()))
		return
	}

	var difficulty models.Difficulty
	if req.Difficulty != nil {
		d, err := models.ParseDifficulty(*req.Difficulty)
		if err != nil {
			handleError(w, r, errors.NewValidationError("difficulty", err.Error()))
			return
		}
		difficulty = d
	}

	// Only the fields present are handed to the engine, which applies each
	// under its own lock, so concurrent partial updates never undo each other.
	switch {
	case req.SoundEnabled != nil && req.Difficulty != nil:
		log.Info("updating settings: sound=%t difficulty=%s", *req.SoundEnabled, difficulty)
		s.Engine.UpdateSettings(*req.SoundEnabled, difficulty)
	case req.SoundEnabled != nil:
		log.Info("updating settings: sound=%t", *req.SoundEnabled)
		s.Engine.SetSoundEnabled(*req.SoundEnabled)
	case req.Difficulty != nil:
		log.Info("updating settings: difficulty=%s", difficulty)
		s.Engine.SetDifficulty(difficulty)
	}
	writeJSON(w, r, http.StatusOK, s.Engine.Settings())
}
