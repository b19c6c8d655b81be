package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/colorflash/internal/config"
	"github.com/vytor/colorflash/internal/models"
)

func validConfig() config.Config {
	return config.Config{
		Addr:             ":8080",
		DBPath:           "test.db",
		LogLevel:         "INFO",
		BaseTimeSeconds:  30,
		TickIntervalMs:   100,
		PersistQueueSize: 64,
		Palette:          models.DefaultPalette.String(),
		AudioEnabled:     true,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = " "

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_BaseTime(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		wantErr bool
	}{
		{name: "zero", seconds: 0, wantErr: true},
		{name: "minimum", seconds: 1},
		{name: "default", seconds: 30},
		{name: "maximum", seconds: 600},
		{name: "too long", seconds: 601, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.BaseTimeSeconds = tt.seconds

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "BASE_TIME_SECONDS")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_TickInterval(t *testing.T) {
	for _, ms := range []int{0, 9, 1001} {
		cfg := validConfig()
		cfg.TickIntervalMs = ms

		err := cfg.Validate()
		assert.Error(t, err, "tick %d", ms)
		assert.Contains(t, err.Error(), "TICK_INTERVAL_MS")
	}
}

func TestValidate_LogLevel(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"DEBUG", false},
		{"INFO", false},
		{"WARN", false},
		{"ERROR", false},
		{"debug", false},
		{"", true},
		{"INVALID", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Palette(t *testing.T) {
	cfg := validConfig()
	cfg.Palette = "#ff0000"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "PALETTE")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		LogLevel: "INVALID",
		Palette:  "nope",
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "BASE_TIME_SECONDS")
	assert.Contains(t, errStr, "TICK_INTERVAL_MS")
	assert.Contains(t, errStr, "PERSIST_QUEUE_SIZE")
	assert.Contains(t, errStr, "PALETTE")
}

func TestDurations(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, 30*time.Second, cfg.BaseTime())
	assert.Equal(t, 100*time.Millisecond, cfg.TickInterval())
}

func TestGamePalette_FallsBackToDefault(t *testing.T) {
	cfg := validConfig()
	cfg.Palette = "garbage"
	assert.Equal(t, models.DefaultPalette, cfg.GamePalette())

	cfg.Palette = "#000000,#ffffff"
	assert.Len(t, cfg.GamePalette(), 2)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("BASE_TIME_SECONDS", "45")
	t.Setenv("SEED", "1234")
	t.Setenv("AUDIO_ENABLED", "false")
	t.Setenv("TICK_INTERVAL_MS", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 45, cfg.BaseTimeSeconds)
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.False(t, cfg.AudioEnabled)
	assert.Equal(t, 100, cfg.TickIntervalMs, "invalid ints fall back to the default")
}
