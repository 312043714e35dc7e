package workflows_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ff-gallery-indexer/internal/discovery"
	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/embedding"
	"github.com/feral-file/ff-gallery-indexer/internal/extraction"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/mocks"
	"github.com/feral-file/ff-gallery-indexer/internal/scraper"
	"github.com/feral-file/ff-gallery-indexer/internal/seeder"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
	"github.com/feral-file/ff-gallery-indexer/internal/workflows"
)

var testNow = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

// testExecutorMocks contains all the mocks needed for testing the executor
type testExecutorMocks struct {
	ctrl             *gomock.Controller
	store            *mocks.MockStore
	seeder           *mocks.MockSeeder
	discoverer       *mocks.MockDiscoverer
	scraper          *mocks.MockScraper
	extractor        *mocks.MockExtractor
	materializer     *mocks.MockMaterializer
	embedder         *mocks.MockEmbedder
	publisher        *mocks.MockPublisher
	json             *mocks.MockJSON
	clock            *mocks.MockClock
	temporalActivity *mocks.MockActivity
	executor         workflows.Executor
}

// setupTestExecutor creates all the mocks and executor for testing
func setupTestExecutor(t *testing.T) *testExecutorMocks {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testExecutorMocks{
		ctrl:             ctrl,
		store:            mocks.NewMockStore(ctrl),
		seeder:           mocks.NewMockSeeder(ctrl),
		discoverer:       mocks.NewMockDiscoverer(ctrl),
		scraper:          mocks.NewMockScraper(ctrl),
		extractor:        mocks.NewMockExtractor(ctrl),
		materializer:     mocks.NewMockMaterializer(ctrl),
		embedder:         mocks.NewMockEmbedder(ctrl),
		publisher:        mocks.NewMockPublisher(ctrl),
		json:             mocks.NewMockJSON(ctrl),
		clock:            mocks.NewMockClock(ctrl),
		temporalActivity: mocks.NewMockActivity(ctrl),
	}

	tm.executor = workflows.NewExecutor(
		tm.store,
		tm.seeder,
		tm.discoverer,
		tm.scraper,
		tm.extractor,
		tm.materializer,
		tm.embedder,
		tm.publisher,
		tm.json,
		tm.clock,
		tm.temporalActivity,
	)

	return tm
}

// tearDownTestExecutor cleans up the test mocks
func tearDownTestExecutor(mocks *testExecutorMocks) {
	mocks.ctrl.Finish()
}

func activityInfo() activity.Info {
	return activity.Info{
		WorkflowExecution: workflow.Execution{ID: "seed-and-startup-1", RunID: "run-1"},
		Attempt:           1,
	}
}

// ====================================================================================
// LookupGallery Tests
// ====================================================================================

func TestLookupGallery_Found(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	galleryID := uuid.New()

	mocks.store.EXPECT().
		GetGalleryByNormalizedURL(ctx, "https://gallery.example").
		Return(&schema.Gallery{ID: galleryID}, nil)

	id, err := mocks.executor.LookupGallery(ctx, "http://www.Gallery.example/")

	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, galleryID, *id)
}

func TestLookupGallery_NotFound(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()

	mocks.store.EXPECT().
		GetGalleryByNormalizedURL(ctx, "https://gallery.example").
		Return(nil, nil)

	id, err := mocks.executor.LookupGallery(ctx, "gallery.example")

	assert.NoError(t, err)
	assert.Nil(t, id)
}

func TestLookupGallery_MalformedURL(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	id, err := mocks.executor.LookupGallery(context.Background(), "mailto:info@gallery.example")

	assert.ErrorIs(t, err, domain.ErrMalformedURL)
	assert.Nil(t, id)
}

// ====================================================================================
// GetSeedPages Tests
// ====================================================================================

func TestGetSeedPages_Success(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	galleryID := uuid.New()
	mainPage, eventsPage, detailPage := uuid.New(), uuid.New(), uuid.New()

	mocks.store.EXPECT().GetGalleryByID(ctx, galleryID).Return(&schema.Gallery{
		ID:        galleryID,
		MainURL:   "https://www.gallery.example/",
		AboutURL:  strPtr("https://gallery.example"),
		EventsURL: strPtr("https://gallery.example/events/"),
	}, nil)
	mocks.store.EXPECT().GetPagesByGalleryID(ctx, galleryID).Return([]schema.Page{
		{ID: detailPage, NormalizedURL: "https://gallery.example/events/1"},
		{ID: eventsPage, NormalizedURL: "https://gallery.example/events"},
		{ID: mainPage, NormalizedURL: "https://gallery.example"},
	}, nil)

	result, err := mocks.executor.GetSeedPages(ctx, galleryID)

	require.NoError(t, err)
	assert.Equal(t, galleryID, result.GalleryID)
	assert.Equal(t, []uuid.UUID{mainPage, eventsPage}, result.PageIDs)
	assert.Equal(t, []string{"https://gallery.example", "https://gallery.example/events"}, result.ListingURLs)
}

func TestGetSeedPages_GalleryNotFound(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	galleryID := uuid.New()

	mocks.store.EXPECT().GetGalleryByID(ctx, galleryID).Return(nil, nil)

	result, err := mocks.executor.GetSeedPages(ctx, galleryID)

	assert.ErrorIs(t, err, domain.ErrGalleryNotFound)
	assert.Nil(t, result)
}

// ====================================================================================
// GetPageFetchProgress Tests
// ====================================================================================

func TestGetPageFetchProgress(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	okPage, failedPage, neverPage, blankPage, unknownPage := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()
	ids := []uuid.UUID{okPage, failedPage, neverPage, blankPage, unknownPage}

	mocks.store.EXPECT().GetPagesByIDs(ctx, ids).Return([]schema.Page{
		{ID: okPage, FetchStatus: domain.FetchStatusOK},
		{ID: failedPage, FetchStatus: domain.FetchStatusError},
		{ID: neverPage, FetchStatus: domain.FetchStatusNever},
		{ID: blankPage, FetchStatus: domain.FetchStatusOK},
	}, nil)
	mocks.store.EXPECT().GetPageContents(ctx, ids).Return([]schema.PageContent{
		{PageID: okPage, Markdown: strPtr("# Hello")},
		{PageID: failedPage},
		{PageID: blankPage, Markdown: strPtr("  ")},
	}, nil)

	progress, err := mocks.executor.GetPageFetchProgress(ctx, ids)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{neverPage}, progress.Pending)
	assert.Equal(t, []uuid.UUID{failedPage}, progress.Failed)
	assert.Equal(t, []uuid.UUID{failedPage, neverPage, blankPage, unknownPage}, progress.MissingMarkdown)
}

func TestGetPageFetchProgress_StoreError(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	ids := []uuid.UUID{uuid.New()}

	mocks.store.EXPECT().GetPagesByIDs(ctx, ids).Return(nil, errors.New("db down"))

	progress, err := mocks.executor.GetPageFetchProgress(ctx, ids)

	assert.Error(t, err)
	assert.Nil(t, progress)
}

// ====================================================================================
// Event page Tests
// ====================================================================================

func TestGetPagesWithoutEvent(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	withEvent, withoutEvent := uuid.New(), uuid.New()
	ids := []uuid.UUID{withEvent, withoutEvent}

	mocks.store.EXPECT().GetEventsByPageIDs(ctx, ids).Return([]schema.Event{{ID: uuid.New(), PageID: withEvent}}, nil)

	missing, err := mocks.executor.GetPagesWithoutEvent(ctx, ids)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{withoutEvent}, missing)
}

func TestFinalizePageKinds(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	withEvent, withoutEvent := uuid.New(), uuid.New()
	ids := []uuid.UUID{withEvent, withoutEvent}

	mocks.store.EXPECT().GetEventsByPageIDs(ctx, ids).Return([]schema.Event{{ID: uuid.New(), PageID: withEvent}}, nil)
	mocks.store.EXPECT().UpdatePageKind(ctx, withEvent, domain.PageKindEventDetail).Return(nil)

	assert.NoError(t, mocks.executor.FinalizePageKinds(ctx, ids))
}

func TestFinalizePageKinds_StoreError(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	page := uuid.New()

	mocks.store.EXPECT().GetEventsByPageIDs(ctx, []uuid.UUID{page}).Return([]schema.Event{{PageID: page}}, nil)
	mocks.store.EXPECT().UpdatePageKind(ctx, page, domain.PageKindEventDetail).Return(errors.New("db down"))

	assert.Error(t, mocks.executor.FinalizePageKinds(ctx, []uuid.UUID{page}))
}

// ====================================================================================
// Delegating activity Tests
// ====================================================================================

func TestSeedGallery(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	input := seeder.Input{MainURL: "https://gallery.example"}
	expected := &seeder.Result{GalleryID: uuid.New()}

	mocks.seeder.EXPECT().Seed(ctx, input).Return(expected, nil)

	result, err := mocks.executor.SeedGallery(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestDiscoverGalleryLinks(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	input := discovery.Input{GalleryID: uuid.New(), ListingURLs: []string{"https://gallery.example"}, MaxLinksPerListing: 10}

	mocks.discoverer.EXPECT().Discover(ctx, input).Return(nil, domain.ErrGalleryNotFound)

	result, err := mocks.executor.DiscoverGalleryLinks(ctx, input)

	assert.ErrorIs(t, err, domain.ErrGalleryNotFound)
	assert.Nil(t, result)
}

func TestScrapePageContents(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	ids := []uuid.UUID{uuid.New()}
	expected := &scraper.Result{Fetched: ids}

	mocks.scraper.EXPECT().ScrapePages(ctx, ids).Return(expected, nil)

	result, err := mocks.executor.ScrapePageContents(ctx, ids)

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestGalleryExists(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	found := uuid.New()
	missing := uuid.New()

	mocks.store.EXPECT().GetGalleryByID(ctx, found).Return(&schema.Gallery{ID: found}, nil)
	mocks.store.EXPECT().GetGalleryByID(ctx, missing).Return(nil, nil)

	exists, err := mocks.executor.GalleryExists(ctx, found)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = mocks.executor.GalleryExists(ctx, missing)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGalleryExists_StoreError(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	id := uuid.New()

	mocks.store.EXPECT().GetGalleryByID(ctx, id).Return(nil, errors.New("connection refused"))

	exists, err := mocks.executor.GalleryExists(ctx, id)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check if gallery exists")
	assert.False(t, exists)
}

func TestClassifyPages(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	ids := []uuid.UUID{uuid.New()}
	expected := &extraction.ClassifyResult{
		Kinds:           map[uuid.UUID]domain.PageKind{ids[0]: domain.PageKindEventCandidate},
		EventCandidates: ids,
	}

	mocks.extractor.EXPECT().ClassifyPages(ctx, ids).Return(expected, nil)

	result, err := mocks.executor.ClassifyPages(ctx, ids)

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestExtractPages(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	expected := &extraction.ExtractResult{
		Extracted:    ids[:1],
		EventDetails: ids[:1],
		Failed:       map[uuid.UUID]string{ids[1]: domain.ErrNoMarkdown.Error()},
	}

	mocks.extractor.EXPECT().ExtractPages(ctx, ids).Return(expected, nil)

	result, err := mocks.executor.ExtractPages(ctx, ids)

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestMaterializeEvents(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	ids := []uuid.UUID{uuid.New()}

	mocks.materializer.EXPECT().Materialize(ctx, ids).Return(nil, errors.New("database unavailable"))

	result, err := mocks.executor.MaterializeEvents(ctx, ids)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestExtractGalleryAndOpeningHours(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	galleryID := uuid.New()
	expected := &extraction.GalleryResult{Sources: 2, Warnings: []string{}}

	mocks.extractor.EXPECT().ExtractGallery(ctx, galleryID).Return(expected, nil)
	mocks.extractor.EXPECT().ExtractOpeningHours(ctx, galleryID).Return(6, nil)

	result, err := mocks.executor.ExtractGallery(ctx, galleryID)
	require.NoError(t, err)
	assert.Equal(t, expected, result)

	hours, err := mocks.executor.ExtractOpeningHours(ctx, galleryID)
	require.NoError(t, err)
	assert.Equal(t, 6, hours)
}

func TestEmbedGalleriesAndEvents(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	galleryIDs := []uuid.UUID{uuid.New()}
	eventIDs := []uuid.UUID{uuid.New()}
	galleries := &embedding.Result{Embedded: []uuid.UUID{}, Skipped: map[uuid.UUID]string{galleryIDs[0]: "already embedded"}}
	events := &embedding.Result{Embedded: eventIDs}

	mocks.embedder.EXPECT().EmbedGalleries(ctx, galleryIDs).Return(galleries, nil)
	mocks.embedder.EXPECT().EmbedEvents(ctx, eventIDs).Return(events, nil)

	result, err := mocks.executor.EmbedGalleries(ctx, galleryIDs)
	require.NoError(t, err)
	assert.Equal(t, galleries, result)

	result, err = mocks.executor.EmbedEvents(ctx, eventIDs)
	require.NoError(t, err)
	assert.Equal(t, events, result)
}

// ====================================================================================
// Pipeline run Tests
// ====================================================================================

func TestStartPipelineRun(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	input := map[string]interface{}{"main_url": "https://gallery.example"}

	mocks.temporalActivity.EXPECT().GetInfo(ctx).Return(activityInfo())
	mocks.json.EXPECT().Marshal(input).Return([]byte(`{"main_url":"https://gallery.example"}`), nil)
	mocks.clock.EXPECT().Now().Return(testNow)
	mocks.store.EXPECT().CreatePipelineRun(ctx, store.CreatePipelineRunInput{
		WorkflowID:    "seed-and-startup-1",
		WorkflowRunID: "run-1",
		Pipeline:      domain.PipelineSeedAndStartup,
		Input:         []byte(`{"main_url":"https://gallery.example"}`),
		StartedAt:     testNow,
	}).Return(nil)

	assert.NoError(t, mocks.executor.StartPipelineRun(ctx, domain.PipelineSeedAndStartup, input))
}

func TestStartPipelineRun_MarshalError(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()

	mocks.temporalActivity.EXPECT().GetInfo(ctx).Return(activityInfo())
	mocks.json.EXPECT().Marshal(gomock.Any()).Return(nil, errors.New("unsupported value"))

	err := mocks.executor.StartPipelineRun(ctx, domain.PipelineSeedAndStartup, nil)

	assert.ErrorContains(t, err, "failed to marshal pipeline input")
}

func TestCompletePipelineRun_Completed(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()

	mocks.temporalActivity.EXPECT().GetInfo(ctx).Return(activityInfo())
	mocks.clock.EXPECT().Now().Return(testNow)
	mocks.store.EXPECT().CompletePipelineRun(ctx, store.CompletePipelineRunInput{
		WorkflowID:  "seed-and-startup-1",
		Status:      schema.PipelineRunStatusCompleted,
		Warnings:    []string{},
		CompletedAt: testNow,
	}).Return(nil)
	mocks.publisher.EXPECT().
		PublishNotification(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, n *domain.Notification) error {
			assert.Equal(t, domain.NotificationPipelineCompleted, n.Type)
			assert.Equal(t, "seed-and-startup", n.Attributes["pipeline"])
			assert.Equal(t, "seed-and-startup-1", n.Attributes["workflow_id"])
			assert.Equal(t, "completed", n.Attributes["status"])
			assert.Equal(t, testNow, n.OccurredAt)
			return nil
		})

	assert.NoError(t, mocks.executor.CompletePipelineRun(ctx, domain.PipelineSeedAndStartup, nil, nil))
}

func TestCompletePipelineRun_FailedAndPublishError(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	errMsg := "pipeline timeout"

	mocks.temporalActivity.EXPECT().GetInfo(ctx).Return(activityInfo())
	mocks.clock.EXPECT().Now().Return(testNow)
	mocks.store.EXPECT().CompletePipelineRun(ctx, store.CompletePipelineRunInput{
		WorkflowID:  "seed-and-startup-1",
		Status:      schema.PipelineRunStatusFailed,
		Warnings:    []string{"w"},
		Error:       &errMsg,
		CompletedAt: testNow,
	}).Return(nil)
	mocks.publisher.EXPECT().PublishNotification(ctx, gomock.Any()).Return(errors.New("nats down"))

	assert.NoError(t, mocks.executor.CompletePipelineRun(ctx, domain.PipelineScrapeAndExtract, []string{"w"}, &errMsg))
}

func TestCompletePipelineRun_StoreError(t *testing.T) {
	mocks := setupTestExecutor(t)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()

	mocks.temporalActivity.EXPECT().GetInfo(ctx).Return(activityInfo())
	mocks.clock.EXPECT().Now().Return(testNow)
	mocks.store.EXPECT().CompletePipelineRun(ctx, gomock.Any()).Return(errors.New("db down"))

	assert.Error(t, mocks.executor.CompletePipelineRun(ctx, domain.PipelineEmbedEntities, nil, nil))
}
