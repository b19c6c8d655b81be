package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/colorflash/internal/models"
)

func drain(t *testing.T, s beep.Streamer) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			peak = max(peak, sample[0], -sample[0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never finished")
	return total, peak
}

func TestOscillator_LengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveTriangle} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, rate)
		total, peak := drain(t, osc)
		assert.Equal(t, rate.N(100*time.Millisecond), total, "wave %d", wave)
		assert.LessOrEqual(t, peak, 1.0)
		assert.NoError(t, osc.Err())
	}
}

func TestOscillator_SquareValues(t *testing.T) {
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, beep.SampleRate(44100))
	buf := make([][2]float64, 64)
	n, ok := osc.Stream(buf)
	require.True(t, ok)
	for _, s := range buf[:n] {
		assert.Contains(t, []float64{-1, 1}, s[0])
	}
}

func TestEnvelope_StartsSilentAndEnds(t *testing.T) {
	rate := beep.SampleRate(44100)
	env := NewEnvelope(NewOscillator(440, 50*time.Millisecond, WaveSquare, rate), 50*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 1)
	n, ok := env.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 1, n)
	assert.Equal(t, 0.0, buf[0][0])

	total, _ := drain(t, env)
	assert.Equal(t, rate.N(50*time.Millisecond)-1, total)
}

func TestCueSound_EveryCueProducesSound(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, cue := range []models.Cue{models.CueStart, models.CueCorrect, models.CueLevelUp, models.CueWrong, models.CueTimeout} {
		s := CueSound(cue, rate, 0.5)
		require.NotNil(t, s, cue.String())
		total, peak := drain(t, s)
		assert.Greater(t, total, 0, cue.String())
		assert.Greater(t, peak, 0.0, cue.String())
	}
}

func TestCueSound_Unknown(t *testing.T) {
	assert.Nil(t, CueSound(models.Cue(99), beep.SampleRate(44100), 1))
}

func TestCueSound_ZeroVolumeIsSilent(t *testing.T) {
	_, peak := drain(t, CueSound(models.CueCorrect, beep.SampleRate(44100), 0))
	assert.Equal(t, 0.0, peak)
}

func TestSoundManager_PlayBeforeInitializeIsNoop(t *testing.T) {
	sm := NewSoundManager()
	assert.False(t, sm.Initialized())

	sm.Play(models.CueCorrect)
	sm.Cleanup()
	assert.Equal(t, 0, sm.Played())
}
