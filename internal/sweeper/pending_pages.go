package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/providers/temporal"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
	"github.com/feral-file/ff-gallery-indexer/internal/workflows"
)

const (
	PAGES_PER_WORKFLOW       = 25
	SWEEP_WORKFLOW_TIMEOUT   = 2 * time.Hour
	DEFAULT_SWEEP_INTERVAL   = 10 * time.Minute
	DEFAULT_SWEEP_BATCH_SIZE = 50
	// an extraction queued longer than this is treated as abandoned
	DEFAULT_STALE_QUEUED_AFTER = time.Hour
)

// PendingPagesSweeperConfig holds configuration for the pending pages sweeper
type PendingPagesSweeperConfig struct {
	Interval        time.Duration // Sleep between sweep cycles
	BatchSize       int           // Pages of each kind picked up per cycle
	WorkerPoolSize  int           // Concurrent workflow starts
	WorkerQueueSize int
	// StaleQueuedAfter is how long a page may stay queued for extraction before it is swept again
	StaleQueuedAfter time.Duration
	// RetryInitialInterval and RetryMaxElapsed bound the retries of one workflow start
	RetryInitialInterval time.Duration
	RetryMaxElapsed      time.Duration
}

// SweepStats summarizes one sweep cycle
type SweepStats struct {
	PendingFetch      int
	PendingExtraction int
	Started           int
	Failed            int
}

// pendingPagesSweeper restarts work that a crashed or abandoned pipeline left behind:
// pages never fetched are scraped, and fetched provisional pages never extracted
// go through ScrapeAndExtract.
type pendingPagesSweeper struct {
	config                PendingPagesSweeperConfig
	store                 store.Store
	clock                 adapter.Clock
	orchestrator          temporal.TemporalOrchestrator
	orchestratorTaskQueue string
	running               atomic.Bool
	stopOnce              sync.Once
	stopChan              chan struct{}
	stoppedCh             chan struct{}
}

// NewPendingPagesSweeper creates a new pending pages sweeper
func NewPendingPagesSweeper(
	config PendingPagesSweeperConfig,
	st store.Store,
	clock adapter.Clock,
	orchestrator temporal.TemporalOrchestrator,
	orchestratorTaskQueue string,
) Sweeper {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_SWEEP_INTERVAL
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DEFAULT_SWEEP_BATCH_SIZE
	}
	if config.StaleQueuedAfter <= 0 {
		config.StaleQueuedAfter = DEFAULT_STALE_QUEUED_AFTER
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 1
	}
	if config.RetryInitialInterval <= 0 {
		config.RetryInitialInterval = time.Second
	}
	if config.RetryMaxElapsed <= 0 {
		config.RetryMaxElapsed = time.Minute
	}

	return &pendingPagesSweeper{
		config:                config,
		store:                 st,
		clock:                 clock,
		orchestrator:          orchestrator,
		orchestratorTaskQueue: orchestratorTaskQueue,
		stopChan:              make(chan struct{}),
		stoppedCh:             make(chan struct{}),
	}
}

func (s *pendingPagesSweeper) Name() string {
	return "pending-pages-sweeper"
}

func (s *pendingPagesSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting pending pages sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Pending pages sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Pending pages sweeper stop requested")
			return nil
		default:
		}

		if _, err := s.runSweepCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}

		if !s.sleep(ctx, s.config.Interval) {
			return nil
		}
	}
}

func (s *pendingPagesSweeper) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping pending pages sweeper")
	s.stopOnce.Do(func() { close(s.stopChan) })

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Pending pages sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Pending pages sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle starts one workflow per chunk of pending pages
func (s *pendingPagesSweeper) runSweepCycle(ctx context.Context) (*SweepStats, error) {
	startTime := s.clock.Now()
	stats := &SweepStats{}

	unfetched, err := s.store.GetPagesPendingFetch(ctx, s.config.BatchSize)
	if err != nil {
		return stats, fmt.Errorf("failed to get pages pending fetch: %w", err)
	}
	unextracted, err := s.store.GetPagesPendingExtraction(ctx, s.config.BatchSize, startTime.Add(-s.config.StaleQueuedAfter))
	if err != nil {
		return stats, fmt.Errorf("failed to get pages pending extraction: %w", err)
	}
	stats.PendingFetch = len(unfetched)
	stats.PendingExtraction = len(unextracted)

	if len(unfetched) == 0 && len(unextracted) == 0 {
		logger.DebugCtx(ctx, "No pending pages")
		return stats, nil
	}

	w := workflows.NewWorkerCore(nil, workflows.WorkerCoreConfig{})
	var started, failed atomic.Int32

	pool := pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.WorkerQueueSize),
		pond.WithContext(ctx),
	)
	submit := func(pipeline domain.PipelineName, wf interface{}, pages []schema.Page) {
		for _, chunk := range chunkPageIDs(pages, PAGES_PER_WORKFLOW) {
			pool.Submit(func() {
				if err := s.startWithRetry(ctx, pipeline, wf, chunk); err != nil {
					failed.Add(1)
					logger.ErrorCtx(ctx, err,
						zap.String("pipeline", string(pipeline)),
						zap.Int("pages", len(chunk)))
					return
				}
				started.Add(1)
			})
		}
	}
	submit(domain.PipelineScrapePages, w.ScrapePages, unfetched)
	submit(domain.PipelineScrapeAndExtract, w.ScrapeAndExtract, unextracted)
	pool.StopAndWait()

	stats.Started = int(started.Load())
	stats.Failed = int(failed.Load())

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("pending_fetch", stats.PendingFetch),
		zap.Int("pending_extraction", stats.PendingExtraction),
		zap.Int("workflows_started", stats.Started),
		zap.Int("workflows_failed", stats.Failed),
	)

	return stats, nil
}

// startWithRetry starts a workflow with exponential backoff.
// A workflow ID collision is permanent since IDs are fresh ulids.
func (s *pendingPagesSweeper) startWithRetry(ctx context.Context, pipeline domain.PipelineName, wf interface{}, pageIDs []uuid.UUID) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.config.RetryInitialInterval
	b.MaxElapsedTime = s.config.RetryMaxElapsed
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	options := client.StartWorkflowOptions{
		ID:                       fmt.Sprintf("sweep-%s-%s", pipeline, ulid.MustNewDefault(s.clock.Now()).String()),
		TaskQueue:                s.orchestratorTaskQueue,
		WorkflowExecutionTimeout: SWEEP_WORKFLOW_TIMEOUT,
	}

	var attempts int
	operation := func() error {
		run, err := s.orchestrator.ExecuteWorkflow(ctx, options, wf, pageIDs)
		if err != nil {
			var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
			if errors.As(err, &alreadyStarted) {
				return backoff.Permanent(err)
			}
			return err
		}
		if run != nil {
			logger.InfoCtx(ctx, "Sweep workflow started",
				zap.String("pipeline", string(pipeline)),
				zap.String("workflow_id", run.GetID()),
				zap.String("run_id", run.GetRunID()),
				zap.Int("pages", len(pageIDs)))
		}
		return nil
	}
	notify := func(err error, next time.Duration) {
		attempts++
		logger.WarnCtx(ctx, "Failed to start sweep workflow, retrying",
			zap.String("workflow_id", options.ID),
			zap.Int("attempt", attempts),
			zap.Duration("next_retry_in", next),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("failed to start %s after %d retries: %w", pipeline, attempts, err)
	}
	return nil
}

// sleep waits for d. It returns false when interrupted by cancellation or Stop.
func (s *pendingPagesSweeper) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-s.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}

func chunkPageIDs(pages []schema.Page, size int) [][]uuid.UUID {
	var chunks [][]uuid.UUID
	for start := 0; start < len(pages); start += size {
		end := min(start+size, len(pages))
		chunk := make([]uuid.UUID, 0, end-start)
		for _, p := range pages[start:end] {
			chunk = append(chunk, p.ID)
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}
