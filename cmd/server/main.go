package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/colorflash/internal/api"
	"github.com/vytor/colorflash/internal/audio"
	"github.com/vytor/colorflash/internal/config"
	"github.com/vytor/colorflash/internal/db"
	"github.com/vytor/colorflash/internal/game"
	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/random"
	"github.com/vytor/colorflash/internal/repository/sqlite"
	"github.com/vytor/colorflash/internal/services"
	"github.com/vytor/colorflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("ColorFlash Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("base_time_seconds=%d", cfg.BaseTimeSeconds)
	log.Debug("tick_interval_ms=%d", cfg.TickIntervalMs)
	log.Debug("persist_queue_size=%d", cfg.PersistQueueSize)
	log.Debug("audio_enabled=%t", cfg.AudioEnabled)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	rng, seed, err := random.NewRand(cfg.Seed)
	if err != nil {
		log.Error("failed to seed challenge generator: %v", err)
		os.Exit(1)
	}
	log.Info("challenge seed: %d", seed)

	opts := []game.Option{
		game.WithRand(rng),
		game.WithBaseTime(cfg.BaseTime()),
		game.WithTickInterval(cfg.TickInterval()),
		game.WithPalette(cfg.GamePalette()),
		game.WithPool(worker.NewPool(1, cfg.PersistQueueSize)),
		game.WithResults(sqlite.NewResultRepository(database.DB)),
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

	ctx := context.Background()
	engine := game.New(ctx, sqlite.NewKeyValueStore(database.DB), opts...)

	srv := &api.Server{
		Engine:       engine,
		StatsService: services.NewStatsService(sqlite.NewResultRepository(database.DB)),
		DB:           database,
	}

	// Request contexts derive from baseCtx so cancelling it ends open event
	// streams. No WriteTimeout: /api/events is long-lived and every other
	// route is bounded by the router's timeout middleware.
	baseCtx, cancelBase := context.WithCancel(ctx)
	defer cancelBase()
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("closing event streams")
	cancelBase()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Ends a running game as quit and flushes queued writes before the
	// database closes.
	log.Debug("closing game engine")
	engine.Close()

	log.Info("===========================================")
	log.Info("ColorFlash Server Stopped")
	log.Info("===========================================")
}
