package game

import (
	"math/rand/v2"
	"time"

	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/models"
	"github.com/vytor/colorflash/internal/repository"
	"github.com/vytor/colorflash/internal/worker"
)

const (
	DefaultBaseTime     = 30 * time.Second
	DefaultTickInterval = 100 * time.Millisecond
)

// SoundPlayer plays a cue. Implementations must not block for the length of
// the sound.
type SoundPlayer interface {
	Play(cue models.Cue)
}

type noSound struct{}

func (noSound) Play(models.Cue) {}

type Option func(*Engine)

func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithRand sets the random source for challenge generation.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithPool sets the persistence pool. The engine starts it and stops it on Close.
func WithPool(p *worker.Pool) Option {
	return func(e *Engine) { e.pool = p }
}

// WithResults enables recording a GameResult for every finished game.
func WithResults(r repository.ResultRepository) Option {
	return func(e *Engine) { e.results = r }
}

func WithSound(p SoundPlayer) Option {
	return func(e *Engine) {
		if p != nil {
			e.sound = p
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l.WithPrefix("engine") }
}

func WithBaseTime(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.baseTime = d
		}
	}
}

func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.tick = d
		}
	}
}

// WithPalette replaces the default palette. An invalid palette is rejected
// with a warning and the default is kept.
func WithPalette(p models.Palette) Option {
	return func(e *Engine) {
		if err := p.Validate(); err != nil {
			e.log.Warn("ignoring palette: %v", err)
			return
		}
		e.palette = append(models.Palette(nil), p...)
	}
}

// WithClock sets the wall clock used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}
