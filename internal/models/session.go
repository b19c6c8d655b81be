package models

import "time"

// Snapshot is an immutable copy of the game session handed to presentation code.
// Difficulty is the one the current game was started with, so it always matches
// len(ColorOptions); NextDifficulty is the stored setting the next game will use.
type Snapshot struct {
	Version        uint64     `json:"version"`
	State          GameState  `json:"state"`
	Score          int        `json:"score"`
	HighScore      int        `json:"high_score"`
	NewHighScore   bool       `json:"new_high_score"`
	TimeRemaining  float64    `json:"time_remaining"` // seconds
	Level          int        `json:"level"`
	Streak         int        `json:"streak"`
	LastPoints     int        `json:"last_points"`
	TargetColor    Color      `json:"target_color"`
	ColorOptions   []Color    `json:"color_options"`
	Difficulty     Difficulty `json:"difficulty"`
	NextDifficulty Difficulty `json:"next_difficulty"`
	SoundEnabled   bool       `json:"sound_enabled"`
}

// Settings are the player preferences persisted between runs.
type Settings struct {
	SoundEnabled bool       `json:"sound_enabled"`
	Difficulty   Difficulty `json:"difficulty"`
}

// EndReason records why a game finished.
type EndReason string

const (
	EndReasonWrong   EndReason = "wrong"
	EndReasonTimeout EndReason = "timeout"
	EndReasonQuit    EndReason = "quit"
)

// GameResult is the record written when a game ends.
type GameResult struct {
	ID              int64      `json:"id"`
	Difficulty      Difficulty `json:"difficulty"`
	Score           int        `json:"score"`
	Level           int        `json:"level"`
	BestStreak      int        `json:"best_streak"`
	CorrectAnswers  int        `json:"correct_answers"`
	EndReason       EndReason  `json:"end_reason"`
	DurationSeconds float64    `json:"duration_seconds"`
	CompletedAt     time.Time  `json:"completed_at"`
}

type ResultStats struct {
	TotalGames             int                `json:"total_games"`
	TotalCorrect           int                `json:"total_correct"`
	AverageScore           float64            `json:"average_score"`
	AverageDurationSeconds float64            `json:"average_duration_seconds"`
	BestScores             map[Difficulty]int `json:"best_scores"`
}

type BestScore struct {
	Difficulty  Difficulty `json:"difficulty"`
	Score       int        `json:"score"`
	CompletedAt time.Time  `json:"completed_at"`
}
