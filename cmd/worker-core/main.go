package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
	"github.com/feral-file/ff-gallery-indexer/internal/completion"
	"github.com/feral-file/ff-gallery-indexer/internal/config"
	"github.com/feral-file/ff-gallery-indexer/internal/discovery"
	"github.com/feral-file/ff-gallery-indexer/internal/embedding"
	"github.com/feral-file/ff-gallery-indexer/internal/extraction"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/materializer"
	"github.com/feral-file/ff-gallery-indexer/internal/messaging"
	"github.com/feral-file/ff-gallery-indexer/internal/metrics"
	"github.com/feral-file/ff-gallery-indexer/internal/providers/jetstream"
	"github.com/feral-file/ff-gallery-indexer/internal/providers/openai"
	"github.com/feral-file/ff-gallery-indexer/internal/providers/temporal"
	"github.com/feral-file/ff-gallery-indexer/internal/providers/web"
	"github.com/feral-file/ff-gallery-indexer/internal/ratelimit"
	"github.com/feral-file/ff-gallery-indexer/internal/scraper"
	"github.com/feral-file/ff-gallery-indexer/internal/seeder"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerCoreConfig(*configFile, *envPath)
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
			"service": "worker-core",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Worker Core")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()
	clockAdapter := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.OpenAI.Timeout)

	// Notifications are optional
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, notifications will be dropped")
		publisher = messaging.NewNoopPublisher()
	}
	defer publisher.Close()

	// Initialize pipeline components
	fetcher := web.NewFetcher(web.Config{
		UserAgent:      cfg.Fetcher.UserAgent,
		RequestTimeout: cfg.Fetcher.RequestTimeout,
		MaxBodySize:    cfg.Fetcher.MaxBodySize,
	})
	openaiClient := openai.NewClient(openai.Config{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		Model:          cfg.OpenAI.Model,
		EmbeddingModel: cfg.OpenAI.EmbeddingModel,
	}, httpClient)

	// Share the provider rate limits across worker replicas
	if cfg.RateLimit.RedisAddr != "" {
		throttle, err := ratelimit.NewThrottle(ratelimit.Config{
			KeyPrefix:               cfg.RateLimit.KeyPrefix,
			EnableLocalFallback:     cfg.RateLimit.EnableLocalFallback,
			LocalFallbackMultiplier: cfg.RateLimit.LocalFallbackMultiplier,
			Providers: map[string]ratelimit.ProviderLimit{
				openai.RateLimitCompletions: {
					RequestsPerSecond: cfg.RateLimit.Completions.RequestsPerSecond,
					Burst:             cfg.RateLimit.Completions.Burst,
					MaxWait:           cfg.RateLimit.Completions.MaxWait,
				},
				openai.RateLimitEmbeddings: {
					RequestsPerSecond: cfg.RateLimit.Embeddings.RequestsPerSecond,
					Burst:             cfg.RateLimit.Embeddings.Burst,
					MaxWait:           cfg.RateLimit.Embeddings.MaxWait,
				},
			},
		}, adapter.NewRedisClient(cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword, cfg.RateLimit.RedisDB), clockAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create rate limit throttle", zap.Error(err), zap.String("redis_addr", cfg.RateLimit.RedisAddr))
		}
		defer func() {
			if err := throttle.Close(); err != nil {
				logger.ErrorCtx(ctx, err)
			}
		}()
		openaiClient = openai.NewThrottledClient(openaiClient, throttle)
	} else {
		logger.WarnCtx(ctx, "Redis address not configured, provider requests are not rate limited")
	}
	completionService := completion.NewService(openaiClient)

	executor := workflows.NewExecutor(
		dataStore,
		seeder.NewSeeder(dataStore, publisher, clockAdapter),
		discovery.NewDiscoverer(dataStore, fetcher),
		scraper.NewScraper(dataStore, fetcher, clockAdapter, cfg.Pipeline.ScrapeConcurrency),
		extraction.NewExtractor(dataStore, completionService, jsonAdapter, jcsAdapter, clockAdapter, cfg.Pipeline.ScrapeConcurrency),
		materializer.NewMaterializer(dataStore, publisher, jsonAdapter, clockAdapter, cfg.Pipeline.DefaultTimezone),
		embedding.NewEmbedder(dataStore, completionService, clockAdapter, cfg.Pipeline.ScrapeConcurrency),
		publisher,
		jsonAdapter,
		clockAdapter,
		adapter.NewActivity(),
	)

	// Serve metrics
	metrics.Init()
	var metricsServer *http.Server
	if cfg.Metrics.Address != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{Addr: cfg.Metrics.Address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.ErrorCtx(ctx, fmt.Errorf("metrics server failed: %w", err))
			}
		}()
		logger.InfoCtx(ctx, "Serving metrics", zap.String("address", cfg.Metrics.Address))
	}

	// Connect to Temporal with logger integration
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

	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.TaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors:                       []interceptor.WorkerInterceptor{temporal.NewSentryActivityInterceptor()},
		})
	logger.InfoCtx(ctx, "Created Temporal worker", zap.String("taskQueue", cfg.Temporal.TaskQueue))

	workerCore := workflows.NewWorkerCore(executor, workflows.WorkerCoreConfig{
		PollInterval:        cfg.Pipeline.PollInterval,
		StartupPollAttempts: cfg.Pipeline.StartupPollAttempts,
		ExtractPollAttempts: cfg.Pipeline.ExtractPollAttempts,
		MaxLinksPerListing:  cfg.Pipeline.MaxLinksPerListing,
	})

	// Register workflows
	temporalWorker.RegisterWorkflow(workerCore.SeedAndStartup)
	temporalWorker.RegisterWorkflow(workerCore.DiscoverLinks)
	temporalWorker.RegisterWorkflow(workerCore.ScrapeAndExtract)
	temporalWorker.RegisterWorkflow(workerCore.ScrapePages)
	temporalWorker.RegisterWorkflow(workerCore.EmbedEntities)
	logger.InfoCtx(ctx, "Registered workflows")

	// Register activities
	temporalWorker.RegisterActivity(executor.LookupGallery)
	temporalWorker.RegisterActivity(executor.GalleryExists)
	temporalWorker.RegisterActivity(executor.SeedGallery)
	temporalWorker.RegisterActivity(executor.GetSeedPages)
	temporalWorker.RegisterActivity(executor.ScrapePageContents)
	temporalWorker.RegisterActivity(executor.GetPageFetchProgress)
	temporalWorker.RegisterActivity(executor.DiscoverGalleryLinks)
	temporalWorker.RegisterActivity(executor.ClassifyPages)
	temporalWorker.RegisterActivity(executor.ExtractPages)
	temporalWorker.RegisterActivity(executor.MaterializeEvents)
	temporalWorker.RegisterActivity(executor.GetPagesWithoutEvent)
	temporalWorker.RegisterActivity(executor.FinalizePageKinds)
	temporalWorker.RegisterActivity(executor.ExtractGallery)
	temporalWorker.RegisterActivity(executor.ExtractOpeningHours)
	temporalWorker.RegisterActivity(executor.EmbedGalleries)
	temporalWorker.RegisterActivity(executor.EmbedEvents)
	temporalWorker.RegisterActivity(executor.StartPipelineRun)
	temporalWorker.RegisterActivity(executor.CompletePipelineRun)
	logger.InfoCtx(ctx, "Registered activities")

	if err := temporalWorker.Start(); err != nil {
		logger.FatalCtx(ctx, "Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started and listening for tasks")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.InfoCtx(ctx, "Shutting down worker...")
	temporalWorker.Stop()
	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to shutdown metrics server: %w", err))
		}
	}
	logger.InfoCtx(ctx, "Worker stopped")
}
