package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/vytor/colorflash/internal/audio"
	"github.com/vytor/colorflash/internal/config"
	"github.com/vytor/colorflash/internal/db"
	"github.com/vytor/colorflash/internal/game"
	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/random"
	"github.com/vytor/colorflash/internal/repository"
	"github.com/vytor/colorflash/internal/repository/memory"
	"github.com/vytor/colorflash/internal/repository/sqlite"
	"github.com/vytor/colorflash/internal/tui"
	"github.com/vytor/colorflash/internal/worker"
)

func main() {
	ephemeral := flag.Bool("ephemeral", false, "keep high score, settings and results in memory only")
	logPath := flag.String("log", "", "append logs to this file (default: discard)")
	flag.Parse()

	if err := run(*ephemeral, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "colormatch: %v\n", err)
		os.Exit(1)
	}
}

func run(ephemeral bool, logPath string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The screen owns stdout while the game runs.
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithOutput(out),
	)
	logger.SetDefault(log)

	var (
		store   repository.KeyValueStore
		results repository.ResultRepository
	)
	if ephemeral {
		log.Info("running with in-memory storage")
		store = memory.NewKeyValueStore()
		results = memory.NewResultRepository()
	} else {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer database.Close()
		store = sqlite.NewKeyValueStore(database.DB)
		results = sqlite.NewResultRepository(database.DB)
	}

	rng, seed, err := random.NewRand(cfg.Seed)
	if err != nil {
		return fmt.Errorf("seed challenge generator: %w", err)
	}
	log.Info("challenge seed: %d", seed)

	opts := []game.Option{
		game.WithRand(rng),
		game.WithBaseTime(cfg.BaseTime()),
		game.WithTickInterval(cfg.TickInterval()),
		game.WithPalette(cfg.GamePalette()),
		game.WithPool(worker.NewPool(1, cfg.PersistQueueSize)),
		game.WithResults(results),
	}
	if cfg.AudioEnabled {
		sound := audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			log.Warn("audio unavailable, continuing without sound: %v", err)
		} else {
			defer sound.Cleanup()
			opts = append(opts, game.WithSound(sound))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := game.New(ctx, store, opts...)
	defer engine.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	if err := tui.New(screen, engine).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
