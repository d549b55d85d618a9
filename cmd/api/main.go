// Command api runs the guest registry HTTP server.
//
// @title        Guest Registry API
// @version      1.0
// @description  Staff-facing administration API for guest profiles and visit notes.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/elexus/guest-registry/docs"
	"github.com/elexus/guest-registry/internal/api"
	"github.com/elexus/guest-registry/internal/infrastructure/config"
	"github.com/elexus/guest-registry/internal/infrastructure/db/postgres"
	redisdb "github.com/elexus/guest-registry/internal/infrastructure/db/redis"
	"github.com/elexus/guest-registry/internal/migrate"
	"github.com/elexus/guest-registry/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if err := migrate.NewManager(db, cfg.Database.MigrationsDir, cfg.Database.SeedsDir).Up(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	rdb, err := connectRedis(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Warn().Msg("REDIS_ADDR not set; token revocation disabled, logout is client-side only")
	}

	e, err := api.NewRouter(db, rdb, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("guest registry listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	return redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
}
