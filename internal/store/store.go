package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
)

// UpsertGalleryInput is the input for seeding a gallery row
type UpsertGalleryInput struct {
	MainURL           string
	AboutURL          *string
	EventsURL         *string
	NormalizedMainURL string
}

// GalleryInfoInput holds descriptive gallery fields. Nil fields are left untouched.
type GalleryInfoInput struct {
	GalleryID        uuid.UUID
	Name             *string
	About            *string
	Address          *string
	District         *string
	Instagram        *string
	Email            *string
	Phone            *string
	Website          *string
	Tags             []string
	OpeningHoursText *string
}

// GalleryHoursInput is one open range on a weekday
type GalleryHoursInput struct {
	Weekday     int
	OpenMinute  int
	CloseMinute int
}

// EmbeddingInput is a computed embedding ready to be stored
type EmbeddingInput struct {
	Vector    []float32
	Model     string
	CreatedAt time.Time
}

// CreatePageInput is the input for registering a page
type CreatePageInput struct {
	GalleryID     *uuid.UUID
	URL           string
	NormalizedURL string
	Kind          domain.PageKind
}

// SavePageContentInput is the result of fetching a page
type SavePageContentInput struct {
	PageID      uuid.UUID
	Markdown    *string
	ContentHash *string
	ParsedAt    time.Time
}

// SavePageStructuredInput replaces the structured record of a page
type SavePageStructuredInput struct {
	PageID            uuid.UUID
	ParseStatus       domain.ParseStatus
	ExtractedPageKind *domain.PageKind
	Payload           []byte
	PayloadHash       *string
	ExtractionError   *string
	ParsedAt          *time.Time
}

// UpsertEventInput is the canonical event derived from an event page
type UpsertEventInput struct {
	PageID    uuid.UUID
	GalleryID uuid.UUID
	Title     string
	StartAt   time.Time
	EndAt     *time.Time
	Timezone  string
	Status    domain.EventStatus
	TicketURL *string
	Info      EventInfoInput
}

// EventInfoInput is the descriptive part of an event
type EventInfoInput struct {
	Description *string
	Artists     []string
	Tags        []string
	Images      []string
	Prices      []domain.Price
}

// CreatePipelineRunInput records the start of a workflow run
type CreatePipelineRunInput struct {
	WorkflowID    string
	WorkflowRunID string
	Pipeline      domain.PipelineName
	Input         []byte
	StartedAt     time.Time
}

// CompletePipelineRunInput records the terminal state of a workflow run
type CompletePipelineRunInput struct {
	WorkflowID  string
	Status      schema.PipelineRunStatus
	Warnings    []string
	Error       *string
	CompletedAt time.Time
}

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// Store defines the interface for database operations
type Store interface {
	// =============================================================================
	// Galleries
	// =============================================================================

	// GetGalleryByID retrieves a gallery by its ID
	GetGalleryByID(ctx context.Context, id uuid.UUID) (*schema.Gallery, error)
	// GetGalleryByNormalizedURL retrieves a gallery by its normalized main URL
	GetGalleryByNormalizedURL(ctx context.Context, normalizedURL string) (*schema.Gallery, error)
	// UpsertGallery creates a gallery or updates the existing one with the same normalized main URL.
	// The returned bool is true when the row was created.
	UpsertGallery(ctx context.Context, input UpsertGalleryInput) (*schema.Gallery, bool, error)
	// UpsertGalleryInfo writes the non-nil fields of input, overwriting existing values
	UpsertGalleryInfo(ctx context.Context, input GalleryInfoInput) error
	// FillGalleryInfo writes the non-nil fields of input only where the stored value is empty,
	// and stamps extracted_at the first time it runs
	FillGalleryInfo(ctx context.Context, input GalleryInfoInput, extractedAt time.Time) error
	// GetGalleryInfo retrieves the info row of a gallery
	GetGalleryInfo(ctx context.Context, galleryID uuid.UUID) (*schema.GalleryInfo, error)
	// ReplaceGalleryHours replaces all opening hours of a gallery
	ReplaceGalleryHours(ctx context.Context, galleryID uuid.UUID, hours []GalleryHoursInput) error
	// GetGalleryHours retrieves the opening hours of a gallery ordered by weekday and open minute
	GetGalleryHours(ctx context.Context, galleryID uuid.UUID) ([]schema.GalleryHours, error)
	// UpdateGalleryEmbedding stores the embedding of a gallery
	UpdateGalleryEmbedding(ctx context.Context, galleryID uuid.UUID, input EmbeddingInput) error

	// =============================================================================
	// Pages
	// =============================================================================

	// UpsertPage creates a page or updates the kind and owner of the existing page with the same normalized URL
	UpsertPage(ctx context.Context, input CreatePageInput) (*schema.Page, error)
	// CreatePageIfAbsent inserts a page unless its normalized URL is already registered.
	// The returned bool is false, with a nil page, when the URL already existed.
	CreatePageIfAbsent(ctx context.Context, input CreatePageInput) (*schema.Page, bool, error)
	// GetExistingNormalizedURLs returns the subset of normalized URLs that are already registered
	GetExistingNormalizedURLs(ctx context.Context, normalizedURLs []string) ([]string, error)
	// GetPageByID retrieves a page by its ID
	GetPageByID(ctx context.Context, id uuid.UUID) (*schema.Page, error)
	// GetPagesByIDs retrieves pages by their IDs
	GetPagesByIDs(ctx context.Context, ids []uuid.UUID) ([]schema.Page, error)
	// GetPagesByGalleryID retrieves the pages of a gallery, optionally filtered by kind
	GetPagesByGalleryID(ctx context.Context, galleryID uuid.UUID, kinds ...domain.PageKind) ([]schema.Page, error)
	// UpdatePageKind sets the kind of a page unconditionally
	UpdatePageKind(ctx context.Context, pageID uuid.UUID, kind domain.PageKind) error
	// PromotePageKind sets the kind of a page only while its current kind is provisional.
	// The returned bool is true when the kind changed.
	PromotePageKind(ctx context.Context, pageID uuid.UUID, kind domain.PageKind) (bool, error)
	// UpdatePageFetchStatus records the outcome of a fetch
	UpdatePageFetchStatus(ctx context.Context, pageID uuid.UUID, status domain.FetchStatus, fetchedAt time.Time) error
	// GetPagesPendingFetch retrieves pages that have never been fetched, oldest first
	GetPagesPendingFetch(ctx context.Context, limit int) ([]schema.Page, error)
	// GetPagesPendingExtraction retrieves provisional pages that have markdown but no extraction yet, oldest first.
	// Pages left queued since before queuedBefore count as not extracted.
	GetPagesPendingExtraction(ctx context.Context, limit int, queuedBefore time.Time) ([]schema.Page, error)

	// =============================================================================
	// Page content
	// =============================================================================

	// SavePageContent upserts the content of a page
	SavePageContent(ctx context.Context, input SavePageContentInput) error
	// GetPageContent retrieves the content of a page
	GetPageContent(ctx context.Context, pageID uuid.UUID) (*schema.PageContent, error)
	// GetPageContents retrieves the content rows that exist for the given pages
	GetPageContents(ctx context.Context, pageIDs []uuid.UUID) ([]schema.PageContent, error)
	// MarkPagesQueued sets parse_status to queued for the given pages
	MarkPagesQueued(ctx context.Context, pageIDs []uuid.UUID) error
	// SavePageStructured replaces the structured record of a page
	SavePageStructured(ctx context.Context, input SavePageStructuredInput) error
	// GetPageStructured retrieves the structured record of a page
	GetPageStructured(ctx context.Context, pageID uuid.UUID) (*schema.PageStructured, error)
	// GetPageStructuredByPageIDs retrieves the structured records that exist for the given pages
	GetPageStructuredByPageIDs(ctx context.Context, pageIDs []uuid.UUID) ([]schema.PageStructured, error)

	// =============================================================================
	// Events
	// =============================================================================

	// GetEventByID retrieves an event by its ID
	GetEventByID(ctx context.Context, id uuid.UUID) (*schema.Event, error)
	// GetEventByPageID retrieves the event materialized from a page
	GetEventByPageID(ctx context.Context, pageID uuid.UUID) (*schema.Event, error)
	// GetEventsByPageIDs retrieves the events materialized from the given pages
	GetEventsByPageIDs(ctx context.Context, pageIDs []uuid.UUID) ([]schema.Event, error)
	// UpsertEvent inserts the event of a page, or updates it in place when the page already has one.
	// The event info is upserted in the same transaction. The returned bool is true when the event was created.
	UpsertEvent(ctx context.Context, input UpsertEventInput) (*schema.Event, bool, error)
	// GetEventInfo retrieves the info row of an event
	GetEventInfo(ctx context.Context, eventID uuid.UUID) (*schema.EventInfo, error)
	// UpdateEventEmbedding stores the embedding of an event
	UpdateEventEmbedding(ctx context.Context, eventID uuid.UUID, input EmbeddingInput) error

	// =============================================================================
	// Pipeline runs
	// =============================================================================

	// CreatePipelineRun records a running pipeline, resetting any previous run with the same workflow ID
	CreatePipelineRun(ctx context.Context, input CreatePipelineRunInput) error
	// CompletePipelineRun records the terminal state of a pipeline run
	CompletePipelineRun(ctx context.Context, input CompletePipelineRunInput) error
	// GetPipelineRunByWorkflowID retrieves a pipeline run by its workflow ID
	GetPipelineRunByWorkflowID(ctx context.Context, workflowID string) (*schema.PipelineRun, error)
}
