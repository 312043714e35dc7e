package workflows

import (
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/embedding"
	"github.com/feral-file/ff-gallery-indexer/internal/scraper"
	"github.com/feral-file/ff-gallery-indexer/internal/seeder"
)

// WorkerCore defines the gallery indexing pipelines
type WorkerCore interface {
	// SeedAndStartup registers a gallery when needed, scrapes its seed pages, extracts and embeds
	// the gallery and starts link discovery
	SeedAndStartup(ctx workflow.Context, input SeedAndStartupInput) (*SeedAndStartupResult, error)

	// ScrapeAndExtract scrapes pages, extracts them and materializes their events
	ScrapeAndExtract(ctx workflow.Context, pageIDs []uuid.UUID) (*ScrapeAndExtractResult, error)

	// DiscoverLinks registers new links of listing pages, scrapes and classifies them and hands
	// event candidates to ScrapeAndExtract
	DiscoverLinks(ctx workflow.Context, input DiscoverLinksInput) (*DiscoverLinksResult, error)

	// ScrapePages scrapes pages without further processing
	ScrapePages(ctx workflow.Context, pageIDs []uuid.UUID) (*scraper.Result, error)

	// EmbedEntities embeds galleries and events
	EmbedEntities(ctx workflow.Context, input EmbedEntitiesInput) (*EmbedEntitiesResult, error)
}

type WorkerCoreConfig struct {
	// PollInterval is the sleep between two polls of a waiting step
	PollInterval time.Duration
	// StartupPollAttempts bounds the polls of SeedAndStartup, which proceeds when they run out
	StartupPollAttempts int
	// ExtractPollAttempts bounds the polls of ScrapeAndExtract, which fails when they run out
	ExtractPollAttempts int
	// MaxLinksPerListing caps the links registered per listing page
	MaxLinksPerListing int
}

// SeedAndStartupInput is the operator request to index a gallery
type SeedAndStartupInput struct {
	seeder.Input
	// Reseed runs the seeder even when the gallery is already registered
	Reseed bool `json:"reseed,omitempty"`
}

type SeedAndStartupResult struct {
	GalleryID uuid.UUID `json:"gallery_id"`
	Warnings  []string  `json:"warnings"`
}

type ScrapeAndExtractResult struct {
	EventIDs []uuid.UUID `json:"event_ids"`
	Warnings []string    `json:"warnings"`
}

type DiscoverLinksInput struct {
	GalleryID   uuid.UUID `json:"gallery_id" binding:"required"`
	ListingURLs []string  `json:"listing_urls" binding:"required,min=1"`
}

type DiscoverLinksResult struct {
	NewPageIDs      []uuid.UUID `json:"new_page_ids"`
	EventCandidates []uuid.UUID `json:"event_candidates"`
	Warnings        []string    `json:"warnings"`
}

type EmbedEntitiesInput struct {
	GalleryIDs []uuid.UUID `json:"gallery_ids"`
	EventIDs   []uuid.UUID `json:"event_ids"`
}

type EmbedEntitiesResult struct {
	Galleries *embedding.Result `json:"galleries,omitempty"`
	Events    *embedding.Result `json:"events,omitempty"`
	Warnings  []string          `json:"warnings"`
}

// workerCore is the concrete implementation of WorkerCore
type workerCore struct {
	config   WorkerCoreConfig
	executor Executor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor, config WorkerCoreConfig) WorkerCore {
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	if config.StartupPollAttempts <= 0 {
		config.StartupPollAttempts = 12
	}
	if config.ExtractPollAttempts <= 0 {
		config.ExtractPollAttempts = 60
	}
	if config.MaxLinksPerListing <= 0 {
		config.MaxLinksPerListing = domain.DEFAULT_MAX_LINKS_PER_LISTING
	}
	return &workerCore{
		executor: executor,
		config:   config,
	}
}
