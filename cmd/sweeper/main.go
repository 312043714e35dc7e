package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
	"github.com/feral-file/ff-gallery-indexer/internal/config"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/providers/temporal"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		Environment:     cfg.Environment,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	pendingPagesSweeper := sweeper.NewPendingPagesSweeper(sweeper.PendingPagesSweeperConfig{
		Interval:         cfg.PendingPages.Interval,
		BatchSize:        cfg.PendingPages.BatchSize,
		StaleQueuedAfter: cfg.PendingPages.StaleQueuedAfter,
		WorkerPoolSize:   cfg.PendingPages.Worker.WorkerPoolSize,
		WorkerQueueSize:  cfg.PendingPages.Worker.WorkerQueueSize,
	}, store.NewPGStore(db), adapter.NewClock(), temporalClient, cfg.Temporal.TaskQueue)
	logger.InfoCtx(ctx, "Created sweeper",
		zap.String("name", pendingPagesSweeper.Name()),
		zap.Duration("interval", cfg.PendingPages.Interval),
		zap.Int("batch_size", cfg.PendingPages.BatchSize),
		zap.Int("worker_pool_size", cfg.PendingPages.Worker.WorkerPoolSize),
	)

	errChan := make(chan error, 1)
	go func() {
		if err := pendingPagesSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}
	cancel()

	// in-flight workflow starts get a short grace period
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := pendingPagesSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
