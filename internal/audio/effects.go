package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/vytor/colorflash/internal/models"
)

// WaveType selects the oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator returns a finite streamer of duration at freq.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	totalSamples int
}

func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:     s,
		attack:       rate.N(attack),
		release:      rate.N(release),
		totalSamples: rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.totalSamples - e.position; e.release > 0 && remaining < e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; vol <= 0 is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

type note struct {
	freq     float64
	duration time.Duration
	wave     WaveType
}

func tone(n note, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(n.freq, n.duration, n.wave, rate)
	return NewEnvelope(osc, n.duration, 5*time.Millisecond, n.duration/3, rate)
}

func melody(rate beep.SampleRate, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = tone(n, rate)
	}
	return beep.Seq(parts...)
}

// CueSound builds the streamer for cue at volume (0..1). Unknown cues return nil.
func CueSound(cue models.Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case models.CueStart:
		s = melody(rate,
			note{523.25, 80 * time.Millisecond, WaveTriangle},
			note{659.25, 80 * time.Millisecond, WaveTriangle},
			note{783.99, 120 * time.Millisecond, WaveTriangle},
		)
	case models.CueCorrect:
		s = melody(rate, note{880, 90 * time.Millisecond, WaveSine})
	case models.CueLevelUp:
		s = beep.Mix(
			melody(rate,
				note{880, 70 * time.Millisecond, WaveSine},
				note{1174.66, 70 * time.Millisecond, WaveSine},
				note{1760, 140 * time.Millisecond, WaveSine},
			),
			newVolume(melody(rate, note{440, 280 * time.Millisecond, WaveTriangle}), 0.4),
		)
	case models.CueWrong:
		s = melody(rate, note{110, 220 * time.Millisecond, WaveSquare})
	case models.CueTimeout:
		s = melody(rate,
			note{392, 120 * time.Millisecond, WaveSquare},
			note{261.63, 240 * time.Millisecond, WaveSquare},
		)
	default:
		return nil
	}
	return newVolume(s, volume)
}
