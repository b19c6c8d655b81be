package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/colorflash/internal/models"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	BaseTimeSeconds  int
	TickIntervalMs   int
	PersistQueueSize int
	Palette          string
	Seed             int64
	AudioEnabled     bool
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the game still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:colorflash.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		BaseTimeSeconds:  envIntOr("BASE_TIME_SECONDS", 30),
		TickIntervalMs:   envIntOr("TICK_INTERVAL_MS", 100),
		PersistQueueSize: envIntOr("PERSIST_QUEUE_SIZE", 64),
		Palette:          envOr("PALETTE", models.DefaultPalette.String()),
		Seed:             envInt64Or("SEED", 0),
		AudioEnabled:     envBoolOr("AUDIO_ENABLED", true),
	}
}

// Validate reports every invalid setting in a single error.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.BaseTimeSeconds < 1 || c.BaseTimeSeconds > 600 {
		problems = append(problems, fmt.Sprintf("BASE_TIME_SECONDS must be between 1 and 600 (got %d)", c.BaseTimeSeconds))
	}
	if c.TickIntervalMs < 10 || c.TickIntervalMs > 1000 {
		problems = append(problems, fmt.Sprintf("TICK_INTERVAL_MS must be between 10 and 1000 (got %d)", c.TickIntervalMs))
	}
	if c.PersistQueueSize < 1 {
		problems = append(problems, fmt.Sprintf("PERSIST_QUEUE_SIZE must be at least 1 (got %d)", c.PersistQueueSize))
	}
	if _, err := models.ParsePalette(c.Palette); err != nil {
		problems = append(problems, fmt.Sprintf("PALETTE is invalid: %v", err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c Config) BaseTime() time.Duration {
	return time.Duration(c.BaseTimeSeconds) * time.Second
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// GamePalette parses Palette, falling back to the default palette.
func (c Config) GamePalette() models.Palette {
	p, err := models.ParsePalette(c.Palette)
	if err != nil {
		return models.DefaultPalette
	}
	return p
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envInt64Or(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
