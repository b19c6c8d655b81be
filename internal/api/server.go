package api

import (
	"context"
	"time"

	"github.com/vytor/colorflash/internal/models"
	"github.com/vytor/colorflash/internal/services"
)

// GameEngine is the part of game.Engine the HTTP adapter drives.
type GameEngine interface {
	Snapshot() models.Snapshot
	Settings() models.Settings
	Palette() models.Palette
	Subscribe(fn func(models.Snapshot)) (unsubscribe func())
	StartGame()
	PauseGame()
	ResumeGame()
	SelectColor(c models.Color)
	EndGame()
	ReturnToMenu()
	UpdateSettings(soundEnabled bool, difficulty models.Difficulty)
	SetSoundEnabled(enabled bool)
	SetDifficulty(difficulty models.Difficulty)
}

// Pinger reports database reachability for the readiness probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	Engine       GameEngine
	StatsService services.StatsService
	DB           Pinger

	// HeartbeatInterval is the keep-alive comment period on /api/events.
	HeartbeatInterval time.Duration
	// RequestTimeout bounds every route except the event stream.
	RequestTimeout time.Duration
}
