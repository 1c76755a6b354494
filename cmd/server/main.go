package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tech-hub-api/internal/api"
	"github.com/tech-hub-api/internal/cache"
	"github.com/tech-hub-api/internal/config"
	"github.com/tech-hub-api/internal/database"
	"github.com/tech-hub-api/internal/email"
	"github.com/tech-hub-api/internal/metrics"
	"github.com/tech-hub-api/internal/repository"
	"github.com/tech-hub-api/internal/service"
	"github.com/tech-hub-api/pkg/logger"
)

const poolStatsInterval = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Logger config comes from the same source; fall back to defaults
		boot := logger.New(logger.Config{})
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log.Info().Msg("Starting Tech Hub API server...")

	// Listing cache
	var listingCache cache.Cache = cache.Nop{}
	if cfg.Cache.Addr != "" {
		rc, err := cache.NewRedis(&cfg.Cache, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, listing cache disabled")
		} else {
			listingCache = rc
		}
	}
	defer listingCache.Close()

	deps := service.Deps{
		Cache: listingCache,
		Email: email.New(&cfg.Email, log),
	}

	var (
		services  *service.Services
		health    api.HealthChecker
		collector *metrics.PoolStatsCollector
	)

	if cfg.Database.Configured() {
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		if err := db.RunMigrations(cfg.Server.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}

		collector = metrics.NewPoolStatsCollector(db)
		collector.Start(poolStatsInterval)

		services = service.NewServices(repository.New(db), cfg, deps, log)
		health = db
	} else {
		services = service.NewReadOnlyServices(cfg, deps, log)
	}

	// Start view counter workers
	viewCtx, stopViews := context.WithCancel(context.Background())
	defer stopViews()
	services.View.Start(viewCtx)

	router := api.NewRouter(services, cfg, health, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Bool("read_only", services.ReadOnly).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Drain queued views before the store goes away
	services.View.Stop()
	if collector != nil {
		collector.Stop()
	}

	log.Info().Msg("Server exited gracefully")
}
