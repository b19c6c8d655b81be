package models

import "fmt"

type GameState int

const (
	StateNotStarted GameState = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s GameState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *GameState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "not_started":
		*s = StateNotStarted
	case "playing":
		*s = StatePlaying
	case "paused":
		*s = StatePaused
	case "game_over":
		*s = StateGameOver
	default:
		return fmt.Errorf("unknown game state %q", text)
	}
	return nil
}
