package models

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty selects the time multiplier and the number of options per challenge.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyNormal Difficulty = "Normal"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists every difficulty in menu order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficulty accepts the raw labels case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// TimeMultiplier scales the base round time. Unknown values behave like Normal.
func (d Difficulty) TimeMultiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 1.5
	case DifficultyHard:
		return 0.7
	default:
		return 1.0
	}
}

// OptionCount is the number of candidate colors shown per challenge.
func (d Difficulty) OptionCount() int {
	switch d {
	case DifficultyEasy:
		return 3
	case DifficultyHard:
		return 6
	default:
		return 4
	}
}

// RoundTime returns base scaled by the multiplier, rounded to the millisecond.
func (d Difficulty) RoundTime(base time.Duration) time.Duration {
	ms := base.Seconds() * d.TimeMultiplier() * 1000
	return time.Duration(ms+0.5) * time.Millisecond
}

// Next cycles Easy -> Normal -> Hard -> Easy.
func (d Difficulty) Next() Difficulty {
	for i, cand := range Difficulties {
		if cand == d {
			return Difficulties[(i+1)%len(Difficulties)]
		}
	}
	return DifficultyNormal
}

func (d Difficulty) String() string {
	return string(d)
}
