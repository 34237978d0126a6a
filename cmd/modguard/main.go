package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	appmoderation "github.com/selira/modguard/pkg/app/moderation"
	"github.com/selira/modguard/pkg/config"
	handlers "github.com/selira/modguard/pkg/handlers/http"
	infraCache "github.com/selira/modguard/pkg/infra/cache"
	"github.com/selira/modguard/pkg/infra/database"
	infraLogger "github.com/selira/modguard/pkg/infra/logger"
	"github.com/selira/modguard/pkg/infra/repository"
	"github.com/selira/modguard/pkg/providers/factory"
	"github.com/selira/modguard/pkg/ruleset"
	"github.com/selira/modguard/pkg/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatalf("failed to run migrations: %v", err)
	}

	banStatusTTL := time.Duration(cfg.Moderation.BanStatusTTLSeconds) * time.Second
	cacheInstance, err := infraCache.NewCache(infraCache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, banStatusTTL)
	if err != nil {
		logger.Fatalf("failed to initialize cache: %v", err)
	}
	defer cacheInstance.Close()

	engine := ruleset.New()
	if len(cfg.Moderation.CustomRules) > 0 {
		engine, err = engine.WithCustomRules(cfg.Moderation.CustomRules)
		if err != nil {
			logger.Fatalf("failed to load custom rules: %v", err)
		}
	}

	providerChain := factory.Build(&cfg.Providers, logger)

	accountRepository := repository.NewAccountRepository(db.DB)
	ledger := appmoderation.NewLedger(accountRepository, cacheInstance, logger, cfg.Moderation.BanThreshold)
	moderator := appmoderation.NewModerator(engine, providerChain, ledger, logger)

	transport := handlers.HandlerTransport{
		ModerateHandler:   handlers.NewModerateHandler(logger, moderator),
		GetAccountHandler: handlers.NewGetAccountHandler(logger, accountRepository),
	}

	srv := server.New(cfg, logger, transport)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("failed to shut down server cleanly")
	}
}
