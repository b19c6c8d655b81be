package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/colorflash/internal/db"
)

func TestOpen_InMemoryAppliesMigrations(t *testing.T) {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	versions, err := database.AppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_settings.sql", "0002_game_results.sql"}, versions)

	for _, table := range []string{"settings", "game_results"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestOpen_ReopenSkipsAppliedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "colorflash.db")

	first, err := db.Open(path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO settings (key, value) VALUES ('highScore', '42')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := db.Open(path)
	require.NoError(t, err)
	defer second.Close()

	var value string
	require.NoError(t, second.QueryRow(`SELECT value FROM settings WHERE key = 'highScore'`).Scan(&value))
	assert.Equal(t, "42", value)

	versions, err := second.AppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Len(t, versions, 2)
}
