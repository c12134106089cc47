// Package main is the entry point for the storefront-catalog-service API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"storefront-catalog-service/internal/app/service"
	"storefront-catalog-service/internal/auth"
	"storefront-catalog-service/internal/config"
	"storefront-catalog-service/internal/domain"
	"storefront-catalog-service/internal/infra/memory"
	"storefront-catalog-service/internal/infra/postgres"
	"storefront-catalog-service/internal/infra/postgres/migrations"
	"storefront-catalog-service/internal/infra/provider/registry"
	rediscache "storefront-catalog-service/internal/infra/redis"
	"storefront-catalog-service/internal/job"
	"storefront-catalog-service/internal/logger"
	"storefront-catalog-service/internal/transport/httpserver"
	"storefront-catalog-service/internal/transport/httpserver/middleware"
	"storefront-catalog-service/internal/validator"
	"storefront-catalog-service/pkg/locker"
)

// repositories is the storage driver selected by configuration.
type repositories struct {
	listings    domain.ListingRepository
	users       domain.UserRepository
	payments    domain.PaymentRepository
	submissions domain.SubmissionRepository
}

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("APP_CONFIG"))
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,

			Service: cfg.App.Name,
			Env:     cfg.App.Env,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting storefront-catalog-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
		zap.String("storage", cfg.Storage.Driver),
	)

	var readiness []middleware.ReadinessCheck

	// Storage
	var repos repositories
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := postgres.NewConnection(cfg.Database, log.Logger)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer func() { _ = postgres.Close(db) }()

		if err := migrations.Run(db); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		log.Info("database migrations completed")

		repos = repositories{
			listings:    postgres.NewListingRepository(db),
			users:       postgres.NewUserRepository(db),
			payments:    postgres.NewPaymentRepository(db),
			submissions: postgres.NewSubmissionRepository(db),
		}
		readiness = append(readiness, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return postgres.HealthCheck(ctx, db)
		})
	default:
		store := memory.NewStore()
		repos = repositories{
			listings:    store.Listings(),
			users:       store.Users(),
			payments:    store.Payments(),
			submissions: store.Submissions(),
		}
		log.Warn("using in-memory storage, data is lost on restart")
	}

	// Redis backs the token revocation list and the sync lock when enabled
	var (
		cache      domain.Cache
		syncLocker locker.DistributedLocker
	)
	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := rediscache.NewClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("connected to Redis",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)

		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		syncLocker = locker.NewRedisLocker(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		readiness = append(readiness, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		})
	} else {
		localCache := memory.NewCache()
		defer localCache.Close()
		cache = localCache
		syncLocker = locker.NewLocalLocker()
		log.Info("redis disabled, using process-local cache and lock")
	}

	// Feeds
	feeds := registry.NewFeeds(cfg.Feeds, log.Logger)
	log.Info("catalog feeds configured", zap.Int("count", len(feeds)))

	// Services
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	admin := service.AdminCredentials{
		Email:    cfg.Auth.AdminEmail,
		AdminID:  cfg.Auth.AdminID,
		Password: cfg.Auth.AdminPassword,
	}

	syncSvc := service.NewSyncService(repos.listings, feeds, log.Logger)
	svcs := httpserver.Services{
		Catalog:     service.NewCatalogService(repos.listings, log.Logger),
		Listings:    service.NewListingService(repos.listings, log.Logger),
		Accounts:    service.NewAccountService(repos.users, issuer, cache, admin, log.Logger),
		Payments:    service.NewPaymentService(repos.payments, log.Logger),
		Submissions: service.NewSubmissionService(repos.submissions, log.Logger),
		Admin:       service.NewAdminService(repos.users, repos.listings, repos.payments),
		Sync:        syncSvc,
	}

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:        cfg.App.Port,
			BodyLimit:   cfg.App.BodyLimit,
			Debug:       cfg.App.Debug,
			CORSOrigins: cfg.App.CORSOrigins,
			PageSize:    cfg.Catalog.PageSize,
			MaxPageSize: cfg.Catalog.MaxPageSize,
		},
		svcs,
		validator.New(),
		log.Logger,
		readiness...,
	)

	// Start sync scheduler guarded by the sync lock
	scheduler := job.NewSyncScheduler(
		syncSvc,
		job.SyncConfig{
			Interval:  cfg.Sync.Interval,
			Timeout:   cfg.Sync.Timeout,
			OnStartup: cfg.Sync.OnStartup,
		},
		log.Logger,
		syncLocker,
	)
	if len(feeds) > 0 {
		scheduler.Start(cfg.Sync.OnStartup)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		scheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
