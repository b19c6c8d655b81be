// Package audio plays short synthesized cues for game events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/models"
)

const (
	sampleRate    = beep.SampleRate(44100)
	defaultVolume = 0.3
)

// SoundManager mixes cue sounds into the speaker. Until Initialize succeeds
// every Play is a no-op, so a machine without an audio device still plays.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      int
	log         *logger.Logger
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: defaultVolume,
		log:    logger.Default().WithPrefix("audio"),
	}
}

// Initialize opens the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Info("audio initialized at %d Hz", int(sampleRate))
	return nil
}

func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play queues cue on the mixer and returns immediately.
func (sm *SoundManager) Play(cue models.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := CueSound(cue, sampleRate, sm.volume)
	if s == nil {
		sm.log.Warn("no sound for cue %s", cue)
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played++
	sm.log.Debug("playing cue: %s", cue)
}

// Played returns how many cues have been handed to the mixer.
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// Cleanup silences pending sounds and closes the device.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}
