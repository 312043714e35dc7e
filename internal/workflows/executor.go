package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
	"github.com/feral-file/ff-gallery-indexer/internal/discovery"
	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/embedding"
	"github.com/feral-file/ff-gallery-indexer/internal/extraction"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/materializer"
	"github.com/feral-file/ff-gallery-indexer/internal/messaging"
	"github.com/feral-file/ff-gallery-indexer/internal/metrics"
	"github.com/feral-file/ff-gallery-indexer/internal/scraper"
	"github.com/feral-file/ff-gallery-indexer/internal/seeder"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
	"github.com/feral-file/ff-gallery-indexer/internal/uri"
)

// Executor defines the interface for executing activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_core.go -package=mocks -mock_names=Executor=MockCoreExecutor
type Executor interface {
	// LookupGallery returns the ID of the gallery registered for mainURL, or nil
	LookupGallery(ctx context.Context, mainURL string) (*uuid.UUID, error)

	// GalleryExists checks if a gallery row exists
	GalleryExists(ctx context.Context, galleryID uuid.UUID) (bool, error)

	// SeedGallery registers a gallery and its seed pages
	SeedGallery(ctx context.Context, input seeder.Input) (*seeder.Result, error)

	// GetSeedPages returns the seed pages of an already registered gallery
	GetSeedPages(ctx context.Context, galleryID uuid.UUID) (*seeder.Result, error)

	// ScrapePageContents fetches pages and stores their markdown
	ScrapePageContents(ctx context.Context, pageIDs []uuid.UUID) (*scraper.Result, error)

	// GetPageFetchProgress reports which pages are still waiting for a fetch or for markdown
	GetPageFetchProgress(ctx context.Context, pageIDs []uuid.UUID) (*FetchProgress, error)

	// DiscoverGalleryLinks registers unseen links of listing pages
	DiscoverGalleryLinks(ctx context.Context, input discovery.Input) (*discovery.Result, error)

	// ClassifyPages triages freshly discovered pages
	ClassifyPages(ctx context.Context, pageIDs []uuid.UUID) (*extraction.ClassifyResult, error)

	// ExtractPages runs structured extraction on pages
	ExtractPages(ctx context.Context, pageIDs []uuid.UUID) (*extraction.ExtractResult, error)

	// MaterializeEvents upserts the events of extracted event pages
	MaterializeEvents(ctx context.Context, pageIDs []uuid.UUID) (*materializer.Result, error)

	// GetPagesWithoutEvent returns the pages that have no materialized event yet
	GetPagesWithoutEvent(ctx context.Context, pageIDs []uuid.UUID) ([]uuid.UUID, error)

	// FinalizePageKinds marks pages that produced an event as event_detail
	FinalizePageKinds(ctx context.Context, pageIDs []uuid.UUID) error

	// ExtractGallery merges gallery facts from the gallery pages
	ExtractGallery(ctx context.Context, galleryID uuid.UUID) (*extraction.GalleryResult, error)

	// ExtractOpeningHours parses the operator opening hours text of a gallery
	ExtractOpeningHours(ctx context.Context, galleryID uuid.UUID) (int, error)

	// EmbedGalleries embeds galleries that have no embedding yet
	EmbedGalleries(ctx context.Context, galleryIDs []uuid.UUID) (*embedding.Result, error)

	// EmbedEvents embeds events
	EmbedEvents(ctx context.Context, eventIDs []uuid.UUID) (*embedding.Result, error)

	// =============================================================================
	// Pipeline run activities
	// =============================================================================

	// StartPipelineRun records the calling workflow as running
	StartPipelineRun(ctx context.Context, pipeline domain.PipelineName, input interface{}) error

	// CompletePipelineRun records the terminal state of the calling workflow and announces it
	CompletePipelineRun(ctx context.Context, pipeline domain.PipelineName, warnings []string, errMsg *string) error
}

// FetchProgress is a snapshot of the fetch state of a page batch
type FetchProgress struct {
	// Pending lists pages that have never been fetched
	Pending []uuid.UUID `json:"pending"`
	// Failed lists pages whose last fetch failed
	Failed []uuid.UUID `json:"failed"`
	// MissingMarkdown lists pages without usable markdown, unknown IDs included
	MissingMarkdown []uuid.UUID `json:"missing_markdown"`
}

// executor is the concrete implementation of Executor
type executor struct {
	store            store.Store
	seeder           seeder.Seeder
	discoverer       discovery.Discoverer
	scraper          scraper.Scraper
	extractor        extraction.Extractor
	materializer     materializer.Materializer
	embedder         embedding.Embedder
	publisher        messaging.Publisher
	json             adapter.JSON
	clock            adapter.Clock
	temporalActivity adapter.Activity
}

// NewExecutor creates a new executor instance
func NewExecutor(
	store store.Store,
	seeder seeder.Seeder,
	discoverer discovery.Discoverer,
	scraper scraper.Scraper,
	extractor extraction.Extractor,
	materializer materializer.Materializer,
	embedder embedding.Embedder,
	publisher messaging.Publisher,
	jsonAdapter adapter.JSON,
	clock adapter.Clock,
	temporalActivity adapter.Activity,
) Executor {
	return &executor{
		store:            store,
		seeder:           seeder,
		discoverer:       discoverer,
		scraper:          scraper,
		extractor:        extractor,
		materializer:     materializer,
		embedder:         embedder,
		publisher:        publisher,
		json:             jsonAdapter,
		clock:            clock,
		temporalActivity: temporalActivity,
	}
}

// LookupGallery returns the ID of the gallery registered for mainURL, or nil
func (e *executor) LookupGallery(ctx context.Context, mainURL string) (*uuid.UUID, error) {
	normalized, err := uri.Normalize(mainURL)
	if err != nil {
		return nil, err
	}

	gallery, err := e.store.GetGalleryByNormalizedURL(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup gallery: %w", err)
	}
	if gallery == nil {
		return nil, nil
	}

	return &gallery.ID, nil
}

// GalleryExists checks if a gallery row exists
func (e *executor) GalleryExists(ctx context.Context, galleryID uuid.UUID) (bool, error) {
	gallery, err := e.store.GetGalleryByID(ctx, galleryID)
	if err != nil {
		return false, fmt.Errorf("failed to check if gallery exists: %w", err)
	}
	return gallery != nil, nil
}

func (e *executor) SeedGallery(ctx context.Context, input seeder.Input) (*seeder.Result, error) {
	return e.seeder.Seed(ctx, input)
}

// GetSeedPages rebuilds the seed result of a gallery from its stored seed URLs
func (e *executor) GetSeedPages(ctx context.Context, galleryID uuid.UUID) (*seeder.Result, error) {
	gallery, err := e.store.GetGalleryByID(ctx, galleryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	if gallery == nil {
		return nil, domain.ErrGalleryNotFound
	}

	pages, err := e.store.GetPagesByGalleryID(ctx, galleryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery pages: %w", err)
	}
	pagesByURL := make(map[string]schema.Page, len(pages))
	for _, p := range pages {
		pagesByURL[p.NormalizedURL] = p
	}

	result := &seeder.Result{
		GalleryID:   galleryID,
		PageIDs:     []uuid.UUID{},
		ListingURLs: []string{},
	}
	seen := make(map[string]struct{})
	for _, raw := range []*string{&gallery.MainURL, gallery.AboutURL, gallery.EventsURL} {
		if raw == nil || strings.TrimSpace(*raw) == "" {
			continue
		}
		normalized, err := uri.Normalize(*raw)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping malformed stored seed URL",
				zap.String("galleryID", galleryID.String()),
				zap.String("url", *raw),
				zap.Error(err))
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}

		page, ok := pagesByURL[normalized]
		if !ok {
			continue
		}
		result.PageIDs = append(result.PageIDs, page.ID)
		result.ListingURLs = append(result.ListingURLs, normalized)
	}

	return result, nil
}

func (e *executor) ScrapePageContents(ctx context.Context, pageIDs []uuid.UUID) (*scraper.Result, error) {
	return e.scraper.ScrapePages(ctx, pageIDs)
}

// GetPageFetchProgress reports which pages are still waiting for a fetch or for markdown
func (e *executor) GetPageFetchProgress(ctx context.Context, pageIDs []uuid.UUID) (*FetchProgress, error) {
	progress := &FetchProgress{
		Pending:         []uuid.UUID{},
		Failed:          []uuid.UUID{},
		MissingMarkdown: []uuid.UUID{},
	}
	if len(pageIDs) == 0 {
		return progress, nil
	}

	pages, err := e.store.GetPagesByIDs(ctx, pageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get pages: %w", err)
	}
	contents, err := e.store.GetPageContents(ctx, pageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get page contents: %w", err)
	}

	status := make(map[uuid.UUID]domain.FetchStatus, len(pages))
	for _, p := range pages {
		status[p.ID] = p.FetchStatus
	}
	hasMarkdown := make(map[uuid.UUID]bool, len(contents))
	for _, c := range contents {
		hasMarkdown[c.PageID] = c.Markdown != nil && strings.TrimSpace(*c.Markdown) != ""
	}

	for _, id := range pageIDs {
		switch s, ok := status[id]; {
		case !ok:
		case s == domain.FetchStatusError:
			progress.Failed = append(progress.Failed, id)
		case !s.Terminal():
			progress.Pending = append(progress.Pending, id)
		}
		if !hasMarkdown[id] {
			progress.MissingMarkdown = append(progress.MissingMarkdown, id)
		}
	}

	return progress, nil
}

func (e *executor) DiscoverGalleryLinks(ctx context.Context, input discovery.Input) (*discovery.Result, error) {
	return e.discoverer.Discover(ctx, input)
}

func (e *executor) ClassifyPages(ctx context.Context, pageIDs []uuid.UUID) (*extraction.ClassifyResult, error) {
	return e.extractor.ClassifyPages(ctx, pageIDs)
}

func (e *executor) ExtractPages(ctx context.Context, pageIDs []uuid.UUID) (*extraction.ExtractResult, error) {
	return e.extractor.ExtractPages(ctx, pageIDs)
}

func (e *executor) MaterializeEvents(ctx context.Context, pageIDs []uuid.UUID) (*materializer.Result, error) {
	return e.materializer.Materialize(ctx, pageIDs)
}

// GetPagesWithoutEvent returns the pages that have no materialized event yet
func (e *executor) GetPagesWithoutEvent(ctx context.Context, pageIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(pageIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	events, err := e.store.GetEventsByPageIDs(ctx, pageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	withEvent := make(map[uuid.UUID]struct{}, len(events))
	for _, ev := range events {
		withEvent[ev.PageID] = struct{}{}
	}

	missing := []uuid.UUID{}
	for _, id := range pageIDs {
		if _, ok := withEvent[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// FinalizePageKinds marks pages that produced an event as event_detail
func (e *executor) FinalizePageKinds(ctx context.Context, pageIDs []uuid.UUID) error {
	if len(pageIDs) == 0 {
		return nil
	}

	events, err := e.store.GetEventsByPageIDs(ctx, pageIDs)
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}

	for _, ev := range events {
		if err := e.store.UpdatePageKind(ctx, ev.PageID, domain.PageKindEventDetail); err != nil {
			return fmt.Errorf("failed to finalize page kind: %w", err)
		}
	}
	return nil
}

func (e *executor) ExtractGallery(ctx context.Context, galleryID uuid.UUID) (*extraction.GalleryResult, error) {
	return e.extractor.ExtractGallery(ctx, galleryID)
}

func (e *executor) ExtractOpeningHours(ctx context.Context, galleryID uuid.UUID) (int, error) {
	return e.extractor.ExtractOpeningHours(ctx, galleryID)
}

func (e *executor) EmbedGalleries(ctx context.Context, galleryIDs []uuid.UUID) (*embedding.Result, error) {
	return e.embedder.EmbedGalleries(ctx, galleryIDs)
}

func (e *executor) EmbedEvents(ctx context.Context, eventIDs []uuid.UUID) (*embedding.Result, error) {
	return e.embedder.EmbedEvents(ctx, eventIDs)
}

// StartPipelineRun records the calling workflow as running
func (e *executor) StartPipelineRun(ctx context.Context, pipeline domain.PipelineName, input interface{}) error {
	info := e.temporalActivity.GetInfo(ctx)

	raw, err := e.json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal pipeline input: %w", err)
	}

	return e.store.CreatePipelineRun(ctx, store.CreatePipelineRunInput{
		WorkflowID:    info.WorkflowExecution.ID,
		WorkflowRunID: info.WorkflowExecution.RunID,
		Pipeline:      pipeline,
		Input:         raw,
		StartedAt:     e.clock.Now(),
	})
}

// CompletePipelineRun records the terminal state of the calling workflow and announces it
func (e *executor) CompletePipelineRun(ctx context.Context, pipeline domain.PipelineName, warnings []string, errMsg *string) error {
	info := e.temporalActivity.GetInfo(ctx)

	status := schema.PipelineRunStatusCompleted
	if errMsg != nil {
		status = schema.PipelineRunStatusFailed
	}
	if warnings == nil {
		warnings = []string{}
	}

	now := e.clock.Now()
	if err := e.store.CompletePipelineRun(ctx, store.CompletePipelineRunInput{
		WorkflowID:  info.WorkflowExecution.ID,
		Status:      status,
		Warnings:    warnings,
		Error:       errMsg,
		CompletedAt: now,
	}); err != nil {
		return fmt.Errorf("failed to complete pipeline run: %w", err)
	}
	metrics.ObservePipelineRun(string(pipeline), string(status))

	notification := messaging.NewNotification(
		domain.NotificationPipelineCompleted,
		nil,
		map[string]string{
			"pipeline":    string(pipeline),
			"workflow_id": info.WorkflowExecution.ID,
			"run_id":      info.WorkflowExecution.RunID,
			"status":      string(status),
			"warnings":    fmt.Sprintf("%d", len(warnings)),
		},
		now,
	)
	if err := e.publisher.PublishNotification(ctx, notification); err != nil {
		logger.WarnCtx(ctx, "Failed to publish pipeline completed notification",
			zap.String("workflowID", info.WorkflowExecution.ID),
			zap.Error(err))
	}

	return nil
}
