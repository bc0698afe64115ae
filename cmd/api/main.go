package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ai-autopilot/gateway/internal/api"
	"github.com/ai-autopilot/gateway/internal/auth"
	"github.com/ai-autopilot/gateway/internal/core/service"
	"github.com/ai-autopilot/gateway/internal/infrastructure/ai"
	"github.com/ai-autopilot/gateway/internal/infrastructure/config"
	mongodb "github.com/ai-autopilot/gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/ai-autopilot/gateway/internal/infrastructure/db/redis"
	"github.com/ai-autopilot/gateway/internal/infrastructure/mail"
	"github.com/ai-autopilot/gateway/internal/infrastructure/queue"
	"github.com/ai-autopilot/gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Local development keeps settings in .env; absence is fine.
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env != config.EnvProduction,
		Service: "gateway",
	})

	// The signing context is resolved exactly once. Every component that
	// mints or verifies tokens gets this value injected; a mismatch between
	// issuer and verifier is impossible by construction.
	signingCtx, err := auth.ResolveSigningContext(cfg.JWT, cfg.Env)
	if err != nil {
		lg.Fatal().Err(err).Msg("signing configuration rejected")
	}
	tokens, err := auth.NewTokenService(signingCtx)
	if err != nil {
		lg.Fatal().Err(err).Msg("token service init failed")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, c := context.WithTimeout(context.Background(), shutdownTimeout)
		defer c()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	accountRepo := mongodb.NewAccountRepository(db)
	historyRepo := mongodb.NewHistoryRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		lg.Fatal().Err(err).Msg("account index bootstrap failed")
	}
	if err := historyRepo.EnsureIndexes(ctx); err != nil {
		lg.Fatal().Err(err).Msg("history index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	historyService := service.NewHistoryService(historyRepo, redisdb.NewHistoryCache(rdb), lg)

	dispatcher := queue.NewDispatcher(0, historyService, lg)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Mongo:          db,
		Redis:          rdb,
		Tokens:         tokens,
		Completion:     ai.NewGroqClient(cfg.Groq),
		Mailer:         mail.NewSender(cfg.Mail),
		RecordQueue:    dispatcher,
		History:        historyService,
		AllowedOrigins: cfg.AllowedOrigins,
		Log:            lg,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			lg.Info().Err(err).Msg("http server stopped")
		}
	}()

	waitForSignal(lg)
	cancel()

	shutdownCtx, c := context.WithTimeout(context.Background(), shutdownTimeout)
	defer c()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("shutdown incomplete")
	}
}

func waitForSignal(lg zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	lg.Info().Str("signal", sig.String()).Msg("shutting down")
}
