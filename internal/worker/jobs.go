package worker

import (
	"context"
	"fmt"

	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/models"
	"github.com/vytor/colorflash/internal/repository"
)

// SaveHighScoreJob writes the high score key.
type SaveHighScoreJob struct {
	Store     repository.KeyValueStore
	HighScore int
}

func (j *SaveHighScoreJob) Name() string { return "save_high_score" }

func (j *SaveHighScoreJob) Run(ctx context.Context) error {
	if err := j.Store.SetInt(ctx, repository.KeyHighScore, j.HighScore); err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	logger.FromContext(ctx).Debug("high score saved: %d", j.HighScore)
	return nil
}

// SaveSettingsJob writes both settings keys. A failure on the first key does
// not prevent the second from being attempted.
type SaveSettingsJob struct {
	Store    repository.KeyValueStore
	Settings models.Settings
}

func (j *SaveSettingsJob) Name() string { return "save_settings" }

func (j *SaveSettingsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	soundErr := j.Store.SetBool(ctx, repository.KeySoundEnabled, j.Settings.SoundEnabled)
	if soundErr != nil {
		log.Warn("failed to save sound setting: %v", soundErr)
	}
	diffErr := j.Store.SetString(ctx, repository.KeyDifficulty, j.Settings.Difficulty.String())
	if diffErr != nil {
		log.Warn("failed to save difficulty: %v", diffErr)
	}

	if soundErr != nil {
		return fmt.Errorf("save settings: %w", soundErr)
	}
	if diffErr != nil {
		return fmt.Errorf("save settings: %w", diffErr)
	}
	log.Debug("settings saved: sound=%t difficulty=%s", j.Settings.SoundEnabled, j.Settings.Difficulty)
	return nil
}

// RecordResultJob appends a finished game to the result history.
type RecordResultJob struct {
	Results repository.ResultRepository
	Result  models.GameResult
}

func (j *RecordResultJob) Name() string { return "record_result" }

func (j *RecordResultJob) Run(ctx context.Context) error {
	id, err := j.Results.Insert(ctx, j.Result)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	logger.FromContext(ctx).Debug("result recorded: id=%d score=%d reason=%s", id, j.Result.Score, j.Result.EndReason)
	return nil
}
