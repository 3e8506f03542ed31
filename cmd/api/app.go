package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitual/internal/adapters/ai"
	"github.com/comitanigiacomo/habitual/internal/adapters/cache"
	"github.com/comitanigiacomo/habitual/internal/adapters/database"
	adapterHTTP "github.com/comitanigiacomo/habitual/internal/adapters/handler/http"
	"github.com/comitanigiacomo/habitual/internal/adapters/repository"
	"github.com/comitanigiacomo/habitual/internal/config"
	"github.com/comitanigiacomo/habitual/internal/core/analyzer"
	"github.com/comitanigiacomo/habitual/internal/core/domain"
	"github.com/comitanigiacomo/habitual/internal/core/services"
	"github.com/comitanigiacomo/habitual/internal/core/workers"
)

const connectTimeout = 10 * time.Second

// app holds everything main needs to serve and to shut down.
type app struct {
	router *gin.Engine
	worker *workers.StreakWorker
	db     *sqlx.DB
	redis  *redis.Client
	logger *zap.Logger
}

// newApp wires storage, services and handlers. The streak worker runs until
// ctx is cancelled.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{logger: logger}

	var (
		habitRepo domain.HabitRepository
		userRepo  domain.UserRepository
	)

	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		habitRepo = repository.NewInMemoryHabitRepository()
		userRepo = repository.NewInMemoryUserRepository()
	default:
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		dsn := database.DSN(cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name, cfg.DB.SSLMode)
		db, err := database.Connect(connectCtx, dsn, database.DefaultPoolConfig())
		if err != nil {
			return nil, err
		}
		a.db = db
		logger.Info("connected_to_database", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

		if err := database.Migrate(connectCtx, db, logger); err != nil {
			a.Close()
			return nil, err
		}

		habitRepo = repository.NewPostgresHabitRepository(db)
		userRepo = repository.NewPostgresUserRepository(db)
	}

	var motivationCache services.MotivationCache
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = rdb
		logger.Info("connected_to_redis", zap.String("host", cfg.Redis.Host))

		habitRepo = repository.NewCachedHabitRepository(habitRepo, rdb, logger)
		motivationCache = cache.NewMotivationCache(rdb, cfg.AI.CacheTTL, logger)
	}

	generator, err := ai.NewGenerator(ctx, ai.Config{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		BaseURL:  cfg.AI.BaseURL,
		Timeout:  cfg.AI.Timeout,
	}, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("motivation generator: %w", err)
	}
	logger.Info("motivation_generator_ready", zap.String("provider", cfg.AI.Provider))

	az := analyzer.New(nil, cfg.Timezone)

	a.worker = workers.NewStreakWorker(habitRepo, az, logger, workers.DefaultQueueSize)
	a.worker.Start(ctx)

	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	habitService := services.NewHabitService(habitRepo, az)
	completionService := services.NewCompletionService(habitRepo, az, a.worker)
	statsService := services.NewStatsService(habitRepo, az)
	motivationService := services.NewMotivationService(habitRepo, generator, motivationCache, az, services.MotivationOptions{
		MaxAttempts:    cfg.AI.MaxAttempts,
		AttemptTimeout: cfg.AI.AttemptTimeout,
	}, logger)

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(authService),
		HabitHandler:      adapterHTTP.NewHabitHandler(habitService),
		CompletionHandler: adapterHTTP.NewCompletionHandler(completionService, habitService),
		StatsHandler:      adapterHTTP.NewStatsHandler(statsService),
		MotivationHandler: adapterHTTP.NewMotivationHandler(motivationService),
		TokenService:      tokenService,
		DB:                a.db,
		Redis:             a.redis,
		Logger:            logger,
		DefaultLocation:   cfg.Timezone,
		RateLimit:         cfg.RateLimit,
		RateWindow:        cfg.RateWindow,
		StartTime:         time.Now(),
	})

	return a, nil
}

// Close releases the database pool and the redis client.
func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed_to_close_database", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed_to_close_redis", zap.Error(err))
		}
	}
}
