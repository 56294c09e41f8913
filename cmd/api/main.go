package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/slidearcade/puzzle-api/internal/api"
	"github.com/slidearcade/puzzle-api/internal/infrastructure/config"
	mongodb "github.com/slidearcade/puzzle-api/internal/infrastructure/db/mongo"
	redisdb "github.com/slidearcade/puzzle-api/internal/infrastructure/db/redis"
	"github.com/slidearcade/puzzle-api/internal/infrastructure/queue"
	"github.com/slidearcade/puzzle-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.NewPlayerRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("player indexes failed")
	}
	if err := mongodb.NewScoreRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("score indexes failed")
	}

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, mongodb.NewScoreEventRepository(db), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, cfg, log, dispatcher)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("puzzle api started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server exited cleanly")
}
