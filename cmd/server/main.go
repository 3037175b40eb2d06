package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/hockeyclub/club-system/internal/api"
	"github.com/hockeyclub/club-system/internal/core/ports"
	"github.com/hockeyclub/club-system/internal/infrastructure/config"
	"github.com/hockeyclub/club-system/internal/infrastructure/db/memory"
	mongodb "github.com/hockeyclub/club-system/internal/infrastructure/db/mongo"
	redisdb "github.com/hockeyclub/club-system/internal/infrastructure/db/redis"
	"github.com/hockeyclub/club-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// --- Credential store ---
	var credentials ports.CredentialStore
	var mongoDB *mongodriver.Database
	switch cfg.CredentialStore {
	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()
		credentials = mongodb.NewCredentialStore(db)
		mongoDB = db
		log.Info().Str("database", cfg.Mongo.Database).Msg("using MongoDB credential store")
	default:
		credentials, err = memory.NewCredentialStore(memory.DefaultSeed())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed credential store")
		}
		log.Info().Msg("using in-memory credential store")
	}

	// --- Redis (optional, enables token revocation) ---
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer func() {
			_ = rdb.Close()
		}()
	}

	e := api.NewRouter(api.RouterParams{
		Config:      cfg,
		Credentials: credentials,
		Mongo:       mongoDB,
		Redis:       rdb,
		Log:         log,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("prefix", cfg.APIPrefix).
			Str("environment", cfg.Env).
			Msg("hockey club API listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
