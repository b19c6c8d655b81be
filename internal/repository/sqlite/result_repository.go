package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/models"
	"github.com/vytor/colorflash/internal/repository"
)

type resultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a new ResultRepository implementation
func NewResultRepository(db *sql.DB) repository.ResultRepository {
	return &resultRepository{db: db}
}

func scanResult(row scanner) (models.GameResult, error) {
	var r models.GameResult
	var difficulty, reason string
	err := row.Scan(&r.ID, &difficulty, &r.Score, &r.Level, &r.BestStreak, &r.CorrectAnswers, &reason, &r.DurationSeconds, &r.CompletedAt)
	r.Difficulty = models.Difficulty(difficulty)
	r.EndReason = models.EndReason(reason)
	return r, err
}

func (r *resultRepository) Insert(ctx context.Context, result models.GameResult) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("inserting result: difficulty=%s, score=%d, reason=%s", result.Difficulty, result.Score, result.EndReason)

	query, args, err := sqlBuilder.Insert(resultsTable).
		Columns("difficulty", "score", "level", "best_streak", "correct_answers", "end_reason", "duration_seconds", "completed_at").
		Values(string(result.Difficulty), result.Score, result.Level, result.BestStreak, result.CorrectAnswers,
			string(result.EndReason), result.DurationSeconds, result.CompletedAt.UTC()).
		ToSql()
	if err != nil {
		log.Error("failed to build insert: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert result: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get result id: %v", err)
		return 0, err
	}
	log.Debug("result inserted: id=%d", id)
	return id, nil
}

func (r *resultRepository) Recent(ctx context.Context, limit int) ([]models.GameResult, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("listing recent results: limit=%d", limit)

	if limit <= 0 {
		limit = 20
	}
	query, args, err := sqlBuilder.Select(resultColumns...).
		From(resultsTable).
		OrderBy("completed_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list results: %v", err)
		return nil, err
	}
	defer rows.Close()

	var results []models.GameResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			log.Error("failed to scan result row: %v", err)
			return nil, err
		}
		results = append(results, res)
	}
	log.Debug("found %d results", len(results))
	return results, rows.Err()
}

func (r *resultRepository) Stats(ctx context.Context) (*models.ResultStats, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("computing result stats")

	query, args, err := sqlBuilder.Select(
		"COUNT(*)",
		"COALESCE(SUM(correct_answers), 0)",
		"COALESCE(AVG(score), 0)",
		"COALESCE(AVG(duration_seconds), 0)",
	).From(resultsTable).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	stats := &models.ResultStats{BestScores: map[models.Difficulty]int{}}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&stats.TotalGames, &stats.TotalCorrect, &stats.AverageScore, &stats.AverageDurationSeconds)
	if err != nil {
		log.Error("failed to compute stats: %v", err)
		return nil, err
	}

	best, err := r.BestScores(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range best {
		stats.BestScores[b.Difficulty] = b.Score
	}
	return stats, nil
}

// BestScores returns the top result per difficulty; ties go to the earlier game.
func (r *resultRepository) BestScores(ctx context.Context) ([]models.BestScore, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("fetching best scores")

	best := sqlBuilder.Select("r2.id").
		From(resultsTable + " r2").
		Where("r2.difficulty = r.difficulty").
		OrderBy("r2.score DESC", "r2.completed_at ASC", "r2.id ASC").
		Limit(1)
	bestSQL, _, err := best.ToSql()
	if err != nil {
		log.Error("failed to build subquery: %v", err)
		return nil, err
	}

	query, args, err := sqlBuilder.Select("r.difficulty", "r.score", "r.completed_at").
		From(resultsTable + " r").
		Where(squirrel.Expr("r.id = (" + bestSQL + ")")).
		OrderBy("r.difficulty").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query best scores: %v", err)
		return nil, err
	}
	defer rows.Close()

	var scores []models.BestScore
	for rows.Next() {
		var b models.BestScore
		var difficulty string
		if err := rows.Scan(&difficulty, &b.Score, &b.CompletedAt); err != nil {
			log.Error("failed to scan best score row: %v", err)
			return nil, err
		}
		b.Difficulty = models.Difficulty(difficulty)
		scores = append(scores, b)
	}
	return scores, rows.Err()
}
