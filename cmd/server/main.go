package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/varejo-labs/vendas-dashboard/internal/api"
	"github.com/varejo-labs/vendas-dashboard/internal/cache"
	"github.com/varejo-labs/vendas-dashboard/internal/config"
	"github.com/varejo-labs/vendas-dashboard/internal/database"
	"github.com/varejo-labs/vendas-dashboard/internal/ingest"
	"github.com/varejo-labs/vendas-dashboard/internal/upstream"
)

func main() {
	// Missing .env is fine in containerized deploys.
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	logger := log.With().Str("service", "vendas-dashboard").Logger()

	cfg := config.Load()
	if cfg.Upstream.BaseURL == "" || cfg.Upstream.SecretKey == "" {
		logger.Fatal().Msg("API_BASE_URL and API_SECRET_KEY are required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Permission storage: Postgres when configured, memory otherwise.
	var store database.PermissionStore
	if cfg.Database.URL != "" {
		db, err := database.New(cfg.Database.URL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		store = db
		logger.Info().Msg("permission storage: postgres")
	} else {
		store = database.NewMemoryStore()
		logger.Warn().Msg("DATABASE_URL not set, permission storage is in-memory")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	history := cache.New(redisClient, cfg.Redis.TTL)

	client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.SecretKey, cfg.Upstream.Timeout, logger)

	if cfg.Kafka.Enabled {
		consumer := ingest.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, history, logger)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("daily-close consumer stopped")
			}
		}()
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("daily-close consumer started")
	}

	handler := api.NewHandler(store, client, history, logger)
	router := api.SetupRoutes(handler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      api.CORS(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
