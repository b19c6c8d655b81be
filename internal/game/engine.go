// Package game holds the session state machine: starting, pausing and ending
// games, the countdown, scoring and settings. Presentation code drives it
// through the exported methods and observes it through snapshots.
package game

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vytor/colorflash/internal/challenge"
	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/models"
	"github.com/vytor/colorflash/internal/random"
	"github.com/vytor/colorflash/internal/repository"
	"github.com/vytor/colorflash/internal/worker"
)

// Engine owns one game session. All methods are safe for concurrent use;
// transitions that are not valid in the current state are ignored.
type Engine struct {
	mu sync.Mutex

	log     *logger.Logger
	store   repository.KeyValueStore
	results repository.ResultRepository
	pool    *worker.Pool
	sound   SoundPlayer
	sched   Scheduler
	rng     *rand.Rand
	now     func() time.Time
	palette models.Palette

	baseTime time.Duration
	tick     time.Duration

	state        models.GameState
	score        int
	highScore    int
	newHighScore bool
	level        int
	streak       int
	lastPoints   int
	remaining    time.Duration
	target       models.Color
	options      []models.Color
	difficulty   models.Difficulty
	soundEnabled bool

	// the difficulty the running game was started with
	gameDifficulty models.Difficulty
	roundTime      time.Duration
	bestStreak     int
	correct        int

	cancelCountdown func()
	countdownToken  uint64

	version  uint64
	notifier *notifier
	closed   bool
}

// New builds an engine and loads the high score and settings from store.
// Read failures fall back to defaults and are logged.
func New(ctx context.Context, store repository.KeyValueStore, opts ...Option) *Engine {
	e := &Engine{
		log:        logger.Default().WithPrefix("engine"),
		store:      store,
		sound:      noSound{},
		sched:      TickerScheduler{},
		now:        time.Now,
		palette:    models.DefaultPalette,
		baseTime:   DefaultBaseTime,
		tick:       DefaultTickInterval,
		state:      models.StateNotStarted,
		level:      1,
		difficulty: models.DifficultyNormal,
		notifier:   newNotifier(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		rng, seed, err := random.NewRand(0)
		if err != nil {
			e.log.Warn("crypto seed unavailable, seeding from clock: %v", err)
			seed = time.Now().UnixNano()
			rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1))
		}
		e.log.Debug("challenge seed: %d", seed)
		e.rng = rng
	}
	if e.pool == nil {
		e.pool = worker.NewPool(1, 0).WithLogger(e.log.WithPrefix("persist"))
	}
	e.pool.Start(context.Background())

	e.load(ctx)
	e.gameDifficulty = e.difficulty
	e.log.Info("engine ready: high_score=%d difficulty=%s sound=%t", e.highScore, e.difficulty, e.soundEnabled)
	return e
}

func (e *Engine) load(ctx context.Context) {
	if e.store == nil {
		return
	}

	if hs, err := e.store.GetInt(ctx, repository.KeyHighScore); err != nil {
		e.log.Warn("failed to load high score, using 0: %v", err)
	} else if hs > 0 {
		e.highScore = hs
	}

	if sound, err := e.store.GetBool(ctx, repository.KeySoundEnabled); err != nil {
		e.log.Warn("failed to load sound setting, using off: %v", err)
	} else {
		e.soundEnabled = sound
	}

	label, ok, err := e.store.GetString(ctx, repository.KeyDifficulty)
	switch {
	case err != nil:
		e.log.Warn("failed to load difficulty, using %s: %v", models.DifficultyNormal, err)
	case ok:
		d, err := models.ParseDifficulty(label)
		if err != nil {
			e.log.Warn("stored difficulty unusable, using %s: %v", models.DifficultyNormal, err)
			break
		}
		e.difficulty = d
	}
}

// update runs fn under the lock and plays the cue it returns once the lock is
// released.
func (e *Engine) update(fn func() (models.Cue, bool)) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	cue, play := fn()
	play = play && e.soundEnabled
	e.mu.Unlock()

	if play {
		e.sound.Play(cue)
	}
}

// StartGame begins a new game from the menu or the game-over screen.
func (e *Engine) StartGame() {
	e.update(func() (models.Cue, bool) {
		if e.state != models.StateNotStarted && e.state != models.StateGameOver {
			return 0, false
		}

		e.gameDifficulty = e.difficulty
		ch, err := challenge.New(e.palette, e.gameDifficulty.OptionCount(), e.rng)
		if err != nil {
			e.log.Error("failed to generate challenge: %v", err)
			return 0, false
		}

		e.state = models.StatePlaying
		e.score = 0
		e.streak = 0
		e.level = 1
		e.lastPoints = 0
		e.newHighScore = false
		e.bestStreak = 0
		e.correct = 0
		e.roundTime = e.gameDifficulty.RoundTime(e.baseTime)
		e.remaining = e.roundTime
		e.target = ch.Target
		e.options = ch.Options

		e.startCountdownLocked()
		e.publishLocked()
		e.log.Debug("game started: difficulty=%s time=%v options=%d", e.gameDifficulty, e.remaining, len(e.options))
		return models.CueStart, true
	})
}

func (e *Engine) PauseGame() {
	e.update(func() (models.Cue, bool) {
		if e.state != models.StatePlaying {
			return 0, false
		}
		e.stopCountdownLocked()
		e.state = models.StatePaused
		e.publishLocked()
		return 0, false
	})
}

func (e *Engine) ResumeGame() {
	e.update(func() (models.Cue, bool) {
		if e.state != models.StatePaused {
			return 0, false
		}
		e.state = models.StatePlaying
		e.startCountdownLocked()
		e.publishLocked()
		return 0, false
	})
}

// SelectColor scores a pick against the current target. A wrong pick ends the game.
func (e *Engine) SelectColor(c models.Color) {
	e.update(func() (models.Cue, bool) {
		if e.state != models.StatePlaying {
			return 0, false
		}

		if c != e.target {
			e.log.Debug("wrong pick: got=%s want=%s", c, e.target)
			e.streak = 0
			e.lastPoints = 0
			e.endLocked(models.EndReasonWrong)
			return models.CueWrong, true
		}

		points := challenge.Points(e.level, e.streak)
		e.streak++
		e.score += points
		e.lastPoints = points
		e.correct++
		e.bestStreak = max(e.bestStreak, e.streak)

		cue := models.CueCorrect
		if challenge.LevelsUp(e.streak) {
			e.level++
			cue = models.CueLevelUp
			e.log.Debug("level up: level=%d streak=%d", e.level, e.streak)
		}

		ch, err := challenge.New(e.palette, e.gameDifficulty.OptionCount(), e.rng)
		if err != nil {
			e.log.Error("failed to generate challenge: %v", err)
		} else {
			e.target = ch.Target
			e.options = ch.Options
		}

		e.publishLocked()
		return cue, true
	})
}

// EndGame finishes a running or paused game. Calling it in any other state,
// including a second time, does nothing.
func (e *Engine) EndGame() {
	e.update(func() (models.Cue, bool) {
		if e.state != models.StatePlaying && e.state != models.StatePaused {
			return 0, false
		}
		e.endLocked(models.EndReasonQuit)
		return 0, false
	})
}

func (e *Engine) ReturnToMenu() {
	e.update(func() (models.Cue, bool) {
		if e.state != models.StateGameOver {
			return 0, false
		}
		e.state = models.StateNotStarted
		e.options = nil
		e.target = models.Color{}
		e.lastPoints = 0
		e.newHighScore = false
		e.publishLocked()
		return 0, false
	})
}

// UpdateSettings stores new preferences. A game in progress keeps its timer
// and option count until the next StartGame. An invalid difficulty is ignored.
func (e *Engine) UpdateSettings(soundEnabled bool, difficulty models.Difficulty) {
	e.update(func() (models.Cue, bool) {
		e.applySettingsLocked(soundEnabled, difficulty)
		return 0, false
	})
}

// SetSoundEnabled changes only the sound preference.
func (e *Engine) SetSoundEnabled(enabled bool) {
	e.update(func() (models.Cue, bool) {
		e.applySettingsLocked(enabled, e.difficulty)
		return 0, false
	})
}

// SetDifficulty changes only the difficulty preference.
func (e *Engine) SetDifficulty(difficulty models.Difficulty) {
	e.update(func() (models.Cue, bool) {
		e.applySettingsLocked(e.soundEnabled, difficulty)
		return 0, false
	})
}

func (e *Engine) applySettingsLocked(soundEnabled bool, difficulty models.Difficulty) {
	if !difficulty.Valid() {
		e.log.Warn("ignoring invalid difficulty %q", difficulty)
		difficulty = e.difficulty
	}
	e.soundEnabled = soundEnabled
	e.difficulty = difficulty

	if e.store != nil {
		e.persistLocked(&worker.SaveSettingsJob{
			Store:    e.store,
			Settings: models.Settings{SoundEnabled: soundEnabled, Difficulty: difficulty},
		})
	}
	e.publishLocked()
}

func (e *Engine) onTick(token uint64) {
	e.update(func() (models.Cue, bool) {
		if token != e.countdownToken || e.state != models.StatePlaying {
			return 0, false
		}
		e.remaining -= e.tick
		if e.remaining <= 0 {
			e.remaining = 0
			e.endLocked(models.EndReasonTimeout)
			return models.CueTimeout, true
		}
		e.publishLocked()
		return 0, false
	})
}

func (e *Engine) startCountdownLocked() {
	e.stopCountdownLocked()
	token := e.countdownToken
	e.cancelCountdown = e.sched.Every(e.tick, func() { e.onTick(token) })
}

// stopCountdownLocked cancels the countdown and invalidates any tick already
// in flight.
func (e *Engine) stopCountdownLocked() {
	if e.cancelCountdown != nil {
		e.cancelCountdown()
		e.cancelCountdown = nil
	}
	e.countdownToken++
}

func (e *Engine) endLocked(reason models.EndReason) {
	e.stopCountdownLocked()
	e.state = models.StateGameOver

	if e.score > e.highScore {
		e.log.Info("new high score: %d (was %d)", e.score, e.highScore)
		e.highScore = e.score
		e.newHighScore = true
		if e.store != nil {
			e.persistLocked(&worker.SaveHighScoreJob{Store: e.store, HighScore: e.highScore})
		}
	}

	if e.results != nil {
		e.persistLocked(&worker.RecordResultJob{
			Results: e.results,
			Result: models.GameResult{
				Difficulty:      e.gameDifficulty,
				Score:           e.score,
				Level:           e.level,
				BestStreak:      e.bestStreak,
				CorrectAnswers:  e.correct,
				EndReason:       reason,
				DurationSeconds: (e.roundTime - e.remaining).Seconds(),
				CompletedAt:     e.now().UTC(),
			},
		})
	}

	e.log.Debug("game over: reason=%s score=%d level=%d", reason, e.score, e.level)
	e.publishLocked()
}

// persistLocked queues job without blocking; a full queue drops it.
func (e *Engine) persistLocked(job worker.Job) {
	e.pool.TrySubmit(job)
}

func (e *Engine) snapshotLocked() models.Snapshot {
	var options []models.Color
	if e.options != nil {
		options = append(make([]models.Color, 0, len(e.options)), e.options...)
	}
	// a game keeps the difficulty it started with; only the menu shows the setting
	difficulty := e.gameDifficulty
	if e.state == models.StateNotStarted {
		difficulty = e.difficulty
	}
	return models.Snapshot{
		Version:        e.version,
		State:          e.state,
		Score:          e.score,
		HighScore:      e.highScore,
		NewHighScore:   e.newHighScore,
		TimeRemaining:  e.remaining.Seconds(),
		Level:          e.level,
		Streak:         e.streak,
		LastPoints:     e.lastPoints,
		TargetColor:    e.target,
		ColorOptions:   options,
		Difficulty:     difficulty,
		NextDifficulty: e.difficulty,
		SoundEnabled:   e.soundEnabled,
	}
}

func (e *Engine) publishLocked() {
	e.version++
	e.notifier.publish(e.snapshotLocked())
}

// Snapshot returns a copy of the current session.
func (e *Engine) Snapshot() models.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) Settings() models.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return models.Settings{SoundEnabled: e.soundEnabled, Difficulty: e.difficulty}
}

func (e *Engine) Palette() models.Palette {
	return append(models.Palette(nil), e.palette...)
}

// Subscribe registers fn to receive the current snapshot and then one snapshot
// per change, in order, on a goroutine owned by the subscription.
func (e *Engine) Subscribe(fn func(models.Snapshot)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notifier.add(fn, e.snapshotLocked())
}

// Subscribers returns the number of active subscriptions.
func (e *Engine) Subscribers() int {
	return e.notifier.count()
}

// Close ends any game in progress, stops the countdown and subscriber
// delivery, and waits for queued writes to finish.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	if e.state == models.StatePlaying || e.state == models.StatePaused {
		e.endLocked(models.EndReasonQuit)
	}
	e.stopCountdownLocked()
	e.closed = true
	e.mu.Unlock()

	e.notifier.close()
	e.pool.Stop()
	e.log.Info("engine closed")
}
