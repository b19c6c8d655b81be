// Package challenge builds the target color and candidate options for one round.
//
// Generation is a pure function of its inputs; all randomness comes from the
// *rand.Rand passed in, so a seeded source reproduces the same rounds.
package challenge

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/vytor/colorflash/internal/models"
)

// ErrPaletteTooSmall is returned when no distractor can be drawn.
var ErrPaletteTooSmall = errors.New("palette has no color other than the target")

// Challenge is one round: the color to find and the shuffled options to pick from.
type Challenge struct {
	Target  models.Color
	Options []models.Color
}

// New picks a target uniformly from the palette and builds count options around it.
func New(palette models.Palette, count int, rng *rand.Rand) (Challenge, error) {
	if len(palette) == 0 {
		return Challenge{}, fmt.Errorf("new challenge: empty palette")
	}
	target := palette[rng.IntN(len(palette))]
	options, err := Options(palette, target, count, rng)
	if err != nil {
		return Challenge{}, err
	}
	return Challenge{Target: target, Options: options}, nil
}

// Options returns count colors: target once, plus count-1 distractors drawn with
// replacement from the palette minus target, in shuffled order.
//
// Distractors may repeat each other. They never equal target, so target appears
// exactly once.
func Options(palette models.Palette, target models.Color, count int, rng *rand.Rand) ([]models.Color, error) {
	if count < 1 {
		count = 1
	}
	options := make([]models.Color, 0, count)
	options = append(options, target)

	others := palette.Without(target)
	if count > 1 && len(others) == 0 {
		return nil, ErrPaletteTooSmall
	}
	for i := 1; i < count; i++ {
		options = append(options, others[rng.IntN(len(others))])
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options, nil
}

// Points is the award for a correct pick, using the streak from before this pick.
func Points(level, streakBefore int) int {
	const base = 10
	return base + level*2 + streakBefore*5
}

// LevelsUp reports whether reaching newStreak crosses a level threshold.
func LevelsUp(newStreak int) bool {
	return newStreak > 0 && newStreak%5 == 0
}
