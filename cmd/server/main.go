package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/collabhub/collab-platform/internal/api"
	"github.com/collabhub/collab-platform/internal/infrastructure/config"
	mongodb "github.com/collabhub/collab-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/collabhub/collab-platform/internal/infrastructure/db/redis"
	"github.com/collabhub/collab-platform/pkg/logger"
)

// indexEnsurer lets startup loop over all repositories that declare indexes.
type indexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// Unique indexes encode the data model's uniqueness invariants; create
	// them before serving traffic.
	ensurers := []indexEnsurer{
		mongodb.NewUserRepository(db),
		mongodb.NewSessionRepository(db),
		mongodb.NewProfileRepository(db),
		mongodb.NewMilestoneRepository(db),
		mongodb.NewNotificationRepository(db),
		mongodb.NewAuditRepository(db),
		mongodb.NewPayoutRepository(db),
		mongodb.NewSavedCreatorRepository(db),
		mongodb.NewInboxReadRepository(db),
	}
	for _, r := range ensurers {
		if err := r.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	e, dispatcher := api.NewRouter(db, rdb, api.Options{
		TokenSecret:   cfg.TokenSecret,
		UploadsDir:    cfg.UploadsDir,
		PayoutWorkers: cfg.PayoutWorkers,
		Logger:        log,
	})

	dispatcher.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
