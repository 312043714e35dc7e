package workflows

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/extraction"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/materializer"
	"github.com/feral-file/ff-gallery-indexer/internal/scraper"
)

// ScrapeAndExtract scrapes pages, extracts them and materializes their events.
// It fails with a PipelineTimeout when markdown or events do not appear within the polling budget.
func (w *workerCore) ScrapeAndExtract(ctx workflow.Context, pageIDs []uuid.UUID) (result *ScrapeAndExtractResult, err error) {
	logger.InfoWf(ctx, "Starting scrape and extract", zap.Int("pages", len(pageIDs)))

	warnings := []string{}
	w.startRun(ctx, domain.PipelineScrapeAndExtract, pageIDs)
	defer func() {
		w.completeRun(ctx, domain.PipelineScrapeAndExtract, warnings, err)
	}()

	result = &ScrapeAndExtractResult{EventIDs: []uuid.UUID{}}
	if len(pageIDs) == 0 {
		result.Warnings = warnings
		return result, nil
	}

	actx := workflow.WithActivityOptions(ctx, defaultActivityOptions)
	bctx := workflow.WithActivityOptions(ctx, batchActivityOptions)

	// Step 1: Scrape
	var scraped *scraper.Result
	if err := workflow.ExecuteActivity(bctx, w.executor.ScrapePageContents, pageIDs).Get(bctx, &scraped); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to scrape pages"), zap.Error(err))
		return nil, err
	}
	warnings = append(warnings, failureWarnings("fetching page", scraped.Failed)...)

	// Step 2: Wait for markdown on every page
	var progress *FetchProgress
	ready, err := w.pollUntil(ctx, w.config.ExtractPollAttempts, func() (bool, error) {
		if err := workflow.ExecuteActivity(actx, w.executor.GetPageFetchProgress, pageIDs).Get(actx, &progress); err != nil {
			return false, err
		}
		return len(progress.MissingMarkdown) == 0, nil
	})
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, NewPipelineTimeoutError("markdown missing for %d of %d pages after %d polls",
			len(progress.MissingMarkdown), len(pageIDs), w.config.ExtractPollAttempts)
	}

	// Step 3: Extract
	var extracted *extraction.ExtractResult
	if err := workflow.ExecuteActivity(bctx, w.executor.ExtractPages, pageIDs).Get(bctx, &extracted); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to extract pages"), zap.Error(err))
		return nil, err
	}
	warnings = append(warnings, failureWarnings("extracting page", extracted.Failed)...)

	eventPages := extracted.EventDetails
	if len(eventPages) == 0 {
		logger.InfoWf(ctx, "No event pages extracted")
		result.Warnings = warnings
		return result, nil
	}

	// Step 4: Materialize events
	var materialized *materializer.Result
	if err := workflow.ExecuteActivity(actx, w.executor.MaterializeEvents, eventPages).Get(actx, &materialized); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to materialize events"), zap.Error(err))
		return nil, err
	}
	warnings = append(warnings, materialized.Warnings...)
	warnings = append(warnings, failureWarnings("materializing page", materialized.Failed)...)
	result.EventIDs = materialized.EventIDs

	// Step 5: Wait for an event on every event page
	var missing []uuid.UUID
	complete, err := w.pollUntil(ctx, w.config.ExtractPollAttempts, func() (bool, error) {
		if err := workflow.ExecuteActivity(actx, w.executor.GetPagesWithoutEvent, eventPages).Get(actx, &missing); err != nil {
			return false, err
		}
		return len(missing) == 0, nil
	})
	if err != nil {
		return nil, err
	}
	if !complete {
		return nil, NewPipelineTimeoutError("event missing for %d of %d event pages after %d polls",
			len(missing), len(eventPages), w.config.ExtractPollAttempts)
	}

	// Step 6: Finalize page kinds
	if err := workflow.ExecuteActivity(actx, w.executor.FinalizePageKinds, eventPages).Get(actx, nil); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to finalize page kinds"), zap.Error(err))
		return nil, err
	}

	// Step 7: Queue the events for embedding
	if len(result.EventIDs) > 0 {
		err := w.startChild(ctx, childWorkflowID(ctx, "embed-entities"), time.Hour, w.EmbedEntities, EmbedEntitiesInput{
			EventIDs: result.EventIDs,
		})
		if err != nil {
			logger.WarnWf(ctx, "Failed to start event embedding", zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("failed to start event embedding: %v", err))
		}
	}

	logger.InfoWf(ctx, "Scrape and extract completed",
		zap.Int("pages", len(pageIDs)),
		zap.Int("events", len(result.EventIDs)))

	result.Warnings = warnings
	return result, nil
}

// ScrapePages scrapes pages without further processing
func (w *workerCore) ScrapePages(ctx workflow.Context, pageIDs []uuid.UUID) (*scraper.Result, error) {
	logger.InfoWf(ctx, "Starting page scrape", zap.Int("pages", len(pageIDs)))

	bctx := workflow.WithActivityOptions(ctx, batchActivityOptions)

	var scraped *scraper.Result
	if err := workflow.ExecuteActivity(bctx, w.executor.ScrapePageContents, pageIDs).Get(bctx, &scraped); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to scrape pages"), zap.Error(err))
		return nil, err
	}

	return scraped, nil
}

// EmbedEntities embeds galleries and events. Per-entity failures become warnings.
func (w *workerCore) EmbedEntities(ctx workflow.Context, input EmbedEntitiesInput) (result *EmbedEntitiesResult, err error) {
	logger.InfoWf(ctx, "Starting entity embedding",
		zap.Int("galleries", len(input.GalleryIDs)),
		zap.Int("events", len(input.EventIDs)))

	warnings := []string{}
	w.startRun(ctx, domain.PipelineEmbedEntities, input)
	defer func() {
		w.completeRun(ctx, domain.PipelineEmbedEntities, warnings, err)
	}()

	bctx := workflow.WithActivityOptions(ctx, batchActivityOptions)
	result = &EmbedEntitiesResult{}

	if len(input.GalleryIDs) > 0 {
		if err := workflow.ExecuteActivity(bctx, w.executor.EmbedGalleries, input.GalleryIDs).Get(bctx, &result.Galleries); err != nil {
			logger.ErrorWf(ctx, fmt.Errorf("failed to embed galleries"), zap.Error(err))
			return nil, err
		}
		warnings = append(warnings, failureWarnings("embedding gallery", result.Galleries.Failed)...)
	}

	if len(input.EventIDs) > 0 {
		if err := workflow.ExecuteActivity(bctx, w.executor.EmbedEvents, input.EventIDs).Get(bctx, &result.Events); err != nil {
			logger.ErrorWf(ctx, fmt.Errorf("failed to embed events"), zap.Error(err))
			return nil, err
		}
		warnings = append(warnings, failureWarnings("embedding event", result.Events.Failed)...)
	}

	result.Warnings = warnings
	return result, nil
}
