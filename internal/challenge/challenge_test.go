package challenge_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/colorflash/internal/challenge"
	"github.com/vytor/colorflash/internal/models"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func countOf(options []models.Color, c models.Color) int {
	n := 0
	for _, o := range options {
		if o == c {
			n++
		}
	}
	return n
}

func TestNew_OptionsForEveryDifficulty(t *testing.T) {
	rng := seeded(1)
	for _, d := range models.Difficulties {
		t.Run(d.String(), func(t *testing.T) {
			for i := 0; i < 500; i++ {
				ch, err := challenge.New(models.DefaultPalette, d.OptionCount(), rng)
				require.NoError(t, err)

				assert.Len(t, ch.Options, d.OptionCount())
				assert.Equal(t, 1, countOf(ch.Options, ch.Target), "target must appear exactly once")
				assert.True(t, models.DefaultPalette.Contains(ch.Target))
				for _, o := range ch.Options {
					assert.True(t, models.DefaultPalette.Contains(o), "option %s not in palette", o)
				}
			}
		})
	}
}

func TestNew_SameSeedSameRounds(t *testing.T) {
	a, b := seeded(42), seeded(42)
	for i := 0; i < 20; i++ {
		ca, err := challenge.New(models.DefaultPalette, 6, a)
		require.NoError(t, err)
		cb, err := challenge.New(models.DefaultPalette, 6, b)
		require.NoError(t, err)
		assert.Equal(t, ca, cb)
	}
}

func TestOptions_TwoColorPaletteRepeatsDistractor(t *testing.T) {
	red := models.MustParseColor("#ff0000")
	blue := models.MustParseColor("#0000ff")

	options, err := challenge.Options(models.Palette{red, blue}, red, 6, seeded(3))
	require.NoError(t, err)
	assert.Len(t, options, 6)
	assert.Equal(t, 1, countOf(options, red))
	assert.Equal(t, 5, countOf(options, blue))
}

func TestOptions_TargetOutsidePaletteStillUnique(t *testing.T) {
	black := models.MustParseColor("#000000")
	options, err := challenge.Options(models.DefaultPalette, black, 4, seeded(5))
	require.NoError(t, err)
	assert.Equal(t, 1, countOf(options, black))
}

func TestOptions_SingleColorPalette(t *testing.T) {
	red := models.MustParseColor("#ff0000")

	_, err := challenge.Options(models.Palette{red}, red, 3, seeded(1))
	assert.ErrorIs(t, err, challenge.ErrPaletteTooSmall)

	options, err := challenge.Options(models.Palette{red}, red, 1, seeded(1))
	require.NoError(t, err)
	assert.Equal(t, []models.Color{red}, options)
}

func TestOptions_TargetPositionVaries(t *testing.T) {
	rng := seeded(9)
	target := models.DefaultPalette[2]
	positions := map[int]bool{}
	for i := 0; i < 200; i++ {
		options, err := challenge.Options(models.DefaultPalette, target, 4, rng)
		require.NoError(t, err)
		for idx, o := range options {
			if o == target {
				positions[idx] = true
			}
		}
	}
	assert.Len(t, positions, 4, "shuffle should place the target in every slot eventually")
}

func TestPoints(t *testing.T) {
	tests := []struct {
		name         string
		level        int
		streakBefore int
		want         int
	}{
		{"first answer", 1, 0, 12},
		{"fifth answer", 1, 4, 32},
		{"level three", 3, 12, 76},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, challenge.Points(tt.level, tt.streakBefore))
		})
	}
}

func TestLevelsUp(t *testing.T) {
	for streak := 0; streak <= 20; streak++ {
		want := streak == 5 || streak == 10 || streak == 15 || streak == 20
		assert.Equal(t, want, challenge.LevelsUp(streak), "streak %d", streak)
	}
}
