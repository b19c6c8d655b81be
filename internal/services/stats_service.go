package services

import (
	"context"
	"fmt"

	"github.com/vytor/colorflash/internal/errors"
	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/models"
	"github.com/vytor/colorflash/internal/repository"
)

const (
	DefaultResultsLimit = 20
	MaxResultsLimit     = 100
)

// StatsService handles statistics over recorded game results
type StatsService interface {
	GetStats(ctx context.Context) (*models.ResultStats, error)
	GetBestScores(ctx context.Context) ([]models.BestScore, error)
	RecentResults(ctx context.Context, limit int) ([]models.GameResult, error)
}

type statsService struct {
	resultRepo repository.ResultRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(resultRepo repository.ResultRepository) StatsService {
	return &statsService{resultRepo: resultRepo}
}

func (s *statsService) GetStats(ctx context.Context) (*models.ResultStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting result stats")

	stats, err := s.resultRepo.Stats(ctx)
	if err != nil {
		log.Error("failed to get result stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) GetBestScores(ctx context.Context) ([]models.BestScore, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting best scores")

	best, err := s.resultRepo.BestScores(ctx)
	if err != nil {
		log.Error("failed to get best scores: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if best == nil {
		best = []models.BestScore{}
	}
	return best, nil
}

func (s *statsService) RecentResults(ctx context.Context, limit int) ([]models.GameResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting recent results: limit=%d", limit)

	if limit < 1 || limit > MaxResultsLimit {
		return nil, errors.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", MaxResultsLimit))
	}

	results, err := s.resultRepo.Recent(ctx, limit)
	if err != nil {
		log.Error("failed to get recent results: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if results == nil {
		results = []models.GameResult{}
	}
	return results, nil
}
