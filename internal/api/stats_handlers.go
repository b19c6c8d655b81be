package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/colorflash/internal/errors"
	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/services"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("fetching stats")

	stats, err := s.StatsService.GetStats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleBestScores(w http.ResponseWriter, r *http.Request) {
	best, err := s.StatsService.GetBestScores(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, best)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	limit := services.DefaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, r, errors.NewValidationError("limit", "must be an integer"))
			return
		}
		limit = n
	}

	results, err := s.StatsService.RecentResults(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, results)
}
