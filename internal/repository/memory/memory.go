// Package memory holds map-backed repositories for tests and for runs with
// persistence disabled. State is lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/vytor/colorflash/internal/models"
	"github.com/vytor/colorflash/internal/repository"
)

type kvStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKeyValueStore constructs an empty in-memory KeyValueStore.
func NewKeyValueStore() repository.KeyValueStore {
	return &kvStore{values: make(map[string]string)}
}

func (s *kvStore) get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *kvStore) set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *kvStore) GetInt(ctx context.Context, key string) (int, error) {
	raw, ok := s.get(key)
	if !ok {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("key %s: stored value %q is not an int: %w", key, raw, err)
	}
	return v, nil
}

func (s *kvStore) SetInt(ctx context.Context, key string, value int) error {
	s.set(key, strconv.Itoa(value))
	return nil
}

func (s *kvStore) GetBool(ctx context.Context, key string) (bool, error) {
	raw, ok := s.get(key)
	if !ok {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("key %s: stored value %q is not a bool: %w", key, raw, err)
	}
	return v, nil
}

func (s *kvStore) SetBool(ctx context.Context, key string, value bool) error {
	s.set(key, strconv.FormatBool(value))
	return nil
}

func (s *kvStore) GetString(ctx context.Context, key string) (string, bool, error) {
	v, ok := s.get(key)
	return v, ok, nil
}

func (s *kvStore) SetString(ctx context.Context, key string, value string) error {
	s.set(key, value)
	return nil
}

type resultStore struct {
	mu      sync.RWMutex
	nextID  int64
	results []models.GameResult
}

// NewResultRepository constructs an empty in-memory ResultRepository.
func NewResultRepository() repository.ResultRepository {
	return &resultStore{}
}

func (s *resultStore) Insert(ctx context.Context, result models.GameResult) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	result.ID = s.nextID
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now().UTC()
	}
	s.results = append(s.results, result)
	return result.ID, nil
}

func (s *resultStore) Recent(ctx context.Context, limit int) ([]models.GameResult, error) {
	s.mu.RLock()
	out := make([]models.GameResult, len(s.results))
	copy(out, s.results)
	s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CompletedAt.Equal(out[j].CompletedAt) {
			return out[i].CompletedAt.After(out[j].CompletedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *resultStore) Stats(ctx context.Context) (*models.ResultStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.ResultStats{BestScores: map[models.Difficulty]int{}}
	var scoreSum, durationSum float64
	for _, r := range s.results {
		stats.TotalGames++
		stats.TotalCorrect += r.CorrectAnswers
		scoreSum += float64(r.Score)
		durationSum += r.DurationSeconds
		if best, ok := stats.BestScores[r.Difficulty]; !ok || r.Score > best {
			stats.BestScores[r.Difficulty] = r.Score
		}
	}
	if stats.TotalGames > 0 {
		stats.AverageScore = scoreSum / float64(stats.TotalGames)
		stats.AverageDurationSeconds = durationSum / float64(stats.TotalGames)
	}
	return stats, nil
}

func (s *resultStore) BestScores(ctx context.Context) ([]models.BestScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best := map[models.Difficulty]models.GameResult{}
	for _, r := range s.results {
		cur, ok := best[r.Difficulty]
		if !ok || r.Score > cur.Score || (r.Score == cur.Score && r.CompletedAt.Before(cur.CompletedAt)) {
			best[r.Difficulty] = r
		}
	}

	out := make([]models.BestScore, 0, len(best))
	for d, r := range best {
		out = append(out, models.BestScore{Difficulty: d, Score: r.Score, CompletedAt: r.CompletedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Difficulty < out[j].Difficulty })
	return out, nil
}
