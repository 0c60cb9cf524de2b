// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"cinema-ticketing/cmd"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/jobs"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/internal/wire"
	"cinema-ticketing/pkg/cache"
	"cinema-ticketing/pkg/clock"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	migrateCtx, cancel := context.WithTimeout(ctx, time.Minute)
	err = database.Migrate(migrateCtx, db)
	cancel()
	if err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Optional infrastructure: both fall back to no-ops
	rdb := cache.NewRedisClient(config.Redis, logger)
	if rdb != nil {
		defer rdb.Close()
	}
	cacheStore := cache.NewRedisStore(rdb)

	publisher, err := queue.NewPublisher(config.RabbitMQ, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, order events disabled", zap.Error(err))
		publisher = queue.NopPublisher{}
	}
	defer publisher.Close()

	repos := repository.NewRepository(db, logger)
	service := usecase.NewService(repos, publisher, clock.NewSystem(), config, logger)

	scheduler, err := jobs.NewScheduler(service.Auth, config.Jobs.TokenCleanupCron, logger)
	if err != nil {
		logger.Fatal("Failed to create scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			logger.Warn("Scheduler shutdown failed", zap.Error(err))
		}
	}()

	// Wire all dependencies
	app := wire.Wiring(service, cacheStore, config, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
	logger.Info("Shutdown complete")
}
