package sqlite

import (
	"github.com/Masterminds/squirrel"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const (
	settingsTable = "settings"
	resultsTable  = "game_results"
)

var resultColumns = []string{
	"id", "difficulty", "score", "level", "best_streak", "correct_answers",
	"end_reason", "duration_seconds", "completed_at",
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
