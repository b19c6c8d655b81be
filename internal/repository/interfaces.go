package repository

import (
	"context"

	"github.com/vytor/colorflash/internal/models"
)

// Keys stored in the KeyValueStore.
const (
	KeyHighScore    = "highScore"
	KeySoundEnabled = "soundEnabled"
	KeyDifficulty   = "difficulty"
)

// KeyValueStore is the typed key-value persistence the game engine loads its
// settings and high score from. Missing keys are not errors: GetInt returns 0,
// GetBool returns false and GetString reports ok=false.
type KeyValueStore interface {
	GetInt(ctx context.Context, key string) (int, error)
	SetInt(ctx context.Context, key string, value int) error
	GetBool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key string, value string) error
}

// ResultRepository handles finished game records
type ResultRepository interface {
	Insert(ctx context.Context, result models.GameResult) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.GameResult, error)
	Stats(ctx context.Context) (*models.ResultStats, error)
	BestScores(ctx context.Context) ([]models.BestScore, error)
}
