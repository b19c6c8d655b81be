// Package tui is the terminal front end. It forwards key presses to the game
// engine and redraws on every snapshot; it holds no game rules of its own.
package tui

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/models"
)

// Engine is the part of game.Engine the terminal client drives.
type Engine interface {
	Snapshot() models.Snapshot
	Subscribe(fn func(models.Snapshot)) (unsubscribe func())
	StartGame()
	PauseGame()
	ResumeGame()
	SelectColor(c models.Color)
	EndGame()
	ReturnToMenu()
	SetSoundEnabled(enabled bool)
	SetDifficulty(difficulty models.Difficulty)
}

type App struct {
	screen tcell.Screen
	engine Engine
	log    *logger.Logger

	mu        sync.Mutex
	latest    models.Snapshot
	roundTime float64
	redraw    chan struct{}
}

// New wraps an initialized screen. The caller owns screen.Fini.
func New(screen tcell.Screen, engine Engine) *App {
	return &App{
		screen: screen,
		engine: engine,
		log:    logger.Default().WithPrefix("tui"),
		redraw: make(chan struct{}, 1),
	}
}

func (a *App) setSnapshot(s models.Snapshot) {
	a.mu.Lock()
	if s.Version < a.latest.Version {
		a.mu.Unlock()
		return
	}
	// the first snapshot of a round carries the full time
	if s.State == models.StatePlaying && (a.latest.State == models.StateNotStarted || a.latest.State == models.StateGameOver || s.TimeRemaining > a.roundTime) {
		a.roundTime = s.TimeRemaining
	}
	a.latest = s
	a.mu.Unlock()

	select {
	case a.redraw <- struct{}{}:
	default:
	}
}

func (a *App) current() (models.Snapshot, float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.latest, a.roundTime
}

// Run draws and handles input until the player quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.setSnapshot(a.engine.Snapshot())
	unsubscribe := a.engine.Subscribe(a.setSnapshot)
	defer unsubscribe()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	a.log.Info("terminal client started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.HandleKey(ev) {
					a.log.Info("player quit")
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
				a.Draw()
			}
		case <-a.redraw:
			a.Draw()
		}
	}
}

// Draw renders the latest snapshot.
func (a *App) Draw() {
	s, total := a.current()
	draw(a.screen, s, total)
}

// HandleKey maps a key press to an engine intent. It returns false when the
// player asks to quit.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		a.engine.StartGame()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	s := a.engine.Snapshot()
	switch r := ev.Rune(); r {
	case 'q', 'Q':
		return false
	case ' ':
		a.engine.StartGame()
	case 'p', 'P':
		if s.State == models.StatePaused {
			a.engine.ResumeGame()
		} else {
			a.engine.PauseGame()
		}
	case 'e', 'E':
		a.engine.EndGame()
	case 'm', 'M':
		a.engine.ReturnToMenu()
	case 'd', 'D':
		a.engine.SetDifficulty(s.NextDifficulty.Next())
	case 's', 'S':
		a.engine.SetSoundEnabled(!s.SoundEnabled)
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		i := int(r - '1')
		if s.State == models.StatePlaying && i < len(s.ColorOptions) {
			a.engine.SelectColor(s.ColorOptions[i])
		}
	}
	return true
}
