package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/openlocale/translation-service/configs"
	"github.com/openlocale/translation-service/internal/application/services"
	"github.com/openlocale/translation-service/internal/core/domain/semkey"
	"github.com/openlocale/translation-service/internal/core/ports"
	"github.com/openlocale/translation-service/internal/infrastructure/cache"
	"github.com/openlocale/translation-service/internal/infrastructure/db"
	"github.com/openlocale/translation-service/internal/infrastructure/email"
	"github.com/openlocale/translation-service/internal/infrastructure/health"
	"github.com/openlocale/translation-service/internal/infrastructure/httpserver"
	infraRedis "github.com/openlocale/translation-service/internal/infrastructure/redis"
	"github.com/openlocale/translation-service/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting translation lookup service...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Initialize the shared cache tier client. A failed connection is not
	// fatal: the layered cache degrades to its local fallback tier and
	// reconnects out-of-band.
	redisClient, err := infraRedis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.WithError(err).Warn("Shared cache tier unreachable; continuing with local fallback")
	} else {
		logger.Info("Connected to Redis successfully")
	}
	defer redisClient.Close()

	// Core components, constructed once and injected everywhere
	resolver := semkey.NewResolver()
	layeredCache := cache.NewLayeredCache(redisClient, cache.Options{
		TTL:               cfg.Cache.TTL,
		KeyPrefix:         cfg.Cache.KeyPrefix,
		ReconnectInterval: cfg.Cache.ReconnectInterval,
		Logger:            logger,
	})
	defer layeredCache.Close()

	// Repositories
	translationRepo := repositories.NewTranslationRepository(database, logger)
	contributionRepo := repositories.NewContributionRepository(database, logger)
	rateLimitRepo := repositories.NewRateLimitRedisRepository(redisClient)

	// Contribution notifier is optional; without an API key the workflow
	// simply skips notifications.
	var notifier ports.ContributionNotifier
	if cfg.Email.SendGridAPIKey != "" {
		notifierConfig := &email.NotifierConfig{
			SendGridAPIKey: cfg.Email.SendGridAPIKey,
			FromEmail:      cfg.Email.FromEmail,
			FromName:       cfg.Email.FromName,
			ServiceName:    cfg.Email.ServiceName,
		}
		notifier, err = email.NewContributionNotifier(notifierConfig, logger)
		if err != nil {
			logger.Fatal("Failed to initialize contribution notifier:", err)
		}
	}

	// Wire all services with their dependencies
	lookupService := services.NewLookupService(resolver, layeredCache, translationRepo, logger)
	translationService := services.NewTranslationService(translationRepo, layeredCache, resolver, logger)
	contributionService := services.NewContributionService(contributionRepo, translationRepo, layeredCache, resolver, notifier, logger)

	rateLimiterConfig := &services.RateLimiterConfig{
		DefaultRequestsPerMinute: cfg.RateLimit.DefaultRequestsPerMinute,
		BurstMultiplier:          cfg.RateLimit.BurstMultiplier,
		Window:                   cfg.RateLimit.Window,
		KeyPrefix:                cfg.RateLimit.KeyPrefix,
	}
	rateLimiterService := services.NewRateLimiterService(rateLimitRepo, rateLimiterConfig, logger)

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	deps := httpserver.ServerDeps{
		LookupService:       lookupService,
		TranslationService:  translationService,
		ContributionService: contributionService,
		Resolver:            resolver,
		Cache:               layeredCache,
		RateLimiterService:  rateLimiterService,
		HealthCheckers:      hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
