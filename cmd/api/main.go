// @title           Habitual API
// @version         1.0
// @description     Habit tracking with streaks, weekly stats and motivational messages.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/comitanigiacomo/habitual/docs"
	"github.com/comitanigiacomo/habitual/internal/config"
	appLogger "github.com/comitanigiacomo/habitual/internal/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := appLogger.New(cfg.IsProduction(), cfg.LogDebug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()

	if err != nil {
		logger.Error("server_failed", zap.Error(err))
		appLogger.Sync(logger)
		os.Exit(1)
	}
	appLogger.Sync(logger)
}

// run serves until ctx is cancelled or the listener fails, then drains
// in-flight requests and waits for the streak worker.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	a, err := newApp(workerCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server_started",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.String("storage", cfg.Storage),
			zap.Bool("redis", cfg.Redis.Enabled),
			zap.String("timezone", cfg.Timezone.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown_signal_received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced_shutdown", zap.Error(err))
	}

	// Requests are drained; no more jobs can be enqueued.
	cancelWorker()
	select {
	case <-a.worker.Done():
	case <-shutdownCtx.Done():
		logger.Warn("streak worker did not stop in time")
	}

	logger.Info("server_stopped")
	return nil
}
