package executor_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	temporalmocks "go.temporal.io/sdk/mocks"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
	"github.com/feral-file/ff-gallery-indexer/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-gallery-indexer/internal/api/shared/errors"
	"github.com/feral-file/ff-gallery-indexer/internal/api/shared/executor"
	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/mocks"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
	"github.com/feral-file/ff-gallery-indexer/internal/workflows"
)

var testNow = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

type testExecutorMocks struct {
	ctrl         *gomock.Controller
	store        *mocks.MockStore
	orchestrator *mocks.MockTemporalOrchestrator
	clock        *mocks.MockClock
	executor     executor.Executor
}

func setupTestExecutor(t *testing.T) *testExecutorMocks {
	ctrl := gomock.NewController(t)
	tm := &testExecutorMocks{
		ctrl:         ctrl,
		store:        mocks.NewMockStore(ctrl),
		orchestrator: mocks.NewMockTemporalOrchestrator(ctrl),
		clock:        mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(testNow).AnyTimes()
	tm.executor = executor.NewExecutor(tm.store, tm.orchestrator, "gallery-indexing", adapter.NewJSON(), tm.clock)
	return tm
}

func workflowRun(t *testing.T, workflowID, runID string) client.WorkflowRun {
	run := &temporalmocks.WorkflowRun{}
	run.On("GetID").Return(workflowID)
	run.On("GetRunID").Return(runID)
	t.Cleanup(func() { run.AssertExpectations(t) })
	return run
}

func requireAPIError(t *testing.T, err error, code apierrors.ErrorCode) *apierrors.APIError {
	t.Helper()
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	assert.Equal(t, code, apiErr.Code)
	return apiErr
}

func TestTriggerPipeline_SeedAndStartup(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()

	tm.orchestrator.EXPECT().
		ExecuteWorkflow(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts client.StartWorkflowOptions, _ interface{}, args ...interface{}) (client.WorkflowRun, error) {
			assert.Equal(t, "seed-and-startup-https://gallery.example", opts.ID)
			assert.Equal(t, "gallery-indexing", opts.TaskQueue)
			assert.Equal(t, constants.SEED_AND_STARTUP_TIMEOUT, opts.WorkflowExecutionTimeout)
			require.Len(t, args, 1)
			input, ok := args[0].(workflows.SeedAndStartupInput)
			require.True(t, ok)
			assert.Equal(t, "http://www.gallery.example/", input.MainURL)
			require.NotNil(t, input.OpeningHoursText)
			assert.True(t, input.Reseed)
			return workflowRun(t, opts.ID, "run-1"), nil
		})

	resp, err := tm.executor.TriggerPipeline(ctx, domain.PipelineSeedAndStartup,
		[]byte(`{"main_url":"http://www.gallery.example/","opening_hours_text":"Tue-Sun 11-19","reseed":true}`))

	require.NoError(t, err)
	assert.Equal(t, "seed-and-startup", resp.Pipeline)
	assert.Equal(t, "seed-and-startup-https://gallery.example", resp.WorkflowID)
	assert.Equal(t, "run-1", resp.RunID)
}

func TestTriggerPipeline_ScrapeAndExtract(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()
	pageID := uuid.New()

	tm.orchestrator.EXPECT().
		ExecuteWorkflow(ctx, gomock.Any(), gomock.Any(), []uuid.UUID{pageID}).
		DoAndReturn(func(_ context.Context, opts client.StartWorkflowOptions, _ interface{}, _ ...interface{}) (client.WorkflowRun, error) {
			assert.True(t, strings.HasPrefix(opts.ID, "scrape-and-extract-"))
			assert.Len(t, strings.TrimPrefix(opts.ID, "scrape-and-extract-"), 26)
			return workflowRun(t, opts.ID, "run-2"), nil
		})

	resp, err := tm.executor.TriggerPipeline(ctx, domain.PipelineScrapeAndExtract, []byte(`{"page_ids":["`+pageID.String()+`"]}`))

	require.NoError(t, err)
	assert.Equal(t, "run-2", resp.RunID)
}

func TestTriggerPipeline_ScrapePages(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()
	pageID := uuid.New()

	tm.orchestrator.EXPECT().
		ExecuteWorkflow(ctx, gomock.Any(), gomock.Any(), []uuid.UUID{pageID}).
		DoAndReturn(func(_ context.Context, opts client.StartWorkflowOptions, _ interface{}, _ ...interface{}) (client.WorkflowRun, error) {
			assert.True(t, strings.HasPrefix(opts.ID, "scrape-pages-"))
			assert.Equal(t, constants.SCRAPE_PAGES_TIMEOUT, opts.WorkflowExecutionTimeout)
			return workflowRun(t, opts.ID, "run-5"), nil
		})

	resp, err := tm.executor.TriggerPipeline(ctx, domain.PipelineScrapePages, []byte(`{"page_ids":["`+pageID.String()+`"]}`))

	require.NoError(t, err)
	assert.Equal(t, "scrape-pages", resp.Pipeline)
}

func TestTriggerPipeline_DiscoverLinks(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()
	galleryID := uuid.New()

	tm.orchestrator.EXPECT().
		ExecuteWorkflow(ctx, gomock.Any(), gomock.Any(), workflows.DiscoverLinksInput{
			GalleryID:   galleryID,
			ListingURLs: []string{"https://gallery.example/events"},
		}).
		Return(workflowRun(t, "discover-links-x", "run-3"), nil)

	resp, err := tm.executor.TriggerPipeline(ctx, domain.PipelineDiscoverLinks,
		[]byte(`{"gallery_id":"`+galleryID.String()+`","listing_urls":["https://gallery.example/events"]}`))

	require.NoError(t, err)
	assert.Equal(t, "discover-links-x", resp.WorkflowID)
}

func TestTriggerPipeline_EmbedEntities(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()
	eventID := uuid.New()

	tm.orchestrator.EXPECT().
		ExecuteWorkflow(ctx, gomock.Any(), gomock.Any(), workflows.EmbedEntitiesInput{EventIDs: []uuid.UUID{eventID}}).
		Return(workflowRun(t, "embed-entities-x", "run-4"), nil)

	resp, err := tm.executor.TriggerPipeline(ctx, domain.PipelineEmbedEntities, []byte(`{"event_ids":["`+eventID.String()+`"]}`))

	require.NoError(t, err)
	assert.Equal(t, "run-4", resp.RunID)
}

func TestTriggerPipeline_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		pipeline domain.PipelineName
		params   string
	}{
		{"seed without main url", domain.PipelineSeedAndStartup, `{}`},
		{"seed with malformed main url", domain.PipelineSeedAndStartup, `{"main_url":"mailto:info@gallery.example"}`},
		{"seed with empty body", domain.PipelineSeedAndStartup, ``},
		{"scrape without pages", domain.PipelineScrapeAndExtract, `{"page_ids":[]}`},
		{"scrape with bad uuid", domain.PipelineScrapeAndExtract, `{"page_ids":["nope"]}`},
		{"discover without gallery", domain.PipelineDiscoverLinks, `{"listing_urls":["https://gallery.example"]}`},
		{"discover without listings", domain.PipelineDiscoverLinks, `{"gallery_id":"` + uuid.NewString() + `"}`},
		{"embed without ids", domain.PipelineEmbedEntities, `{"gallery_ids":[],"event_ids":[]}`},
		{"not json", domain.PipelineEmbedEntities, `gallery`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestExecutor(t)

			resp, err := tm.executor.TriggerPipeline(context.Background(), tt.pipeline, []byte(tt.params))

			assert.Nil(t, resp)
			apiErr := requireAPIError(t, err, apierrors.ErrCodeValidationFailed)
			assert.Equal(t, 400, apiErr.HTTPStatus())
		})
	}
}

func TestTriggerPipeline_UnknownPipeline(t *testing.T) {
	tm := setupTestExecutor(t)

	resp, err := tm.executor.TriggerPipeline(context.Background(), domain.PipelineName("reindex-everything"), []byte(`{}`))

	assert.Nil(t, resp)
	apiErr := requireAPIError(t, err, apierrors.ErrCodeNotFound)
	assert.Equal(t, 404, apiErr.HTTPStatus())
	assert.Contains(t, apiErr.Details, domain.ErrUnknownPipeline.Error())
}

func TestTriggerPipeline_OrchestratorError(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()

	tm.orchestrator.EXPECT().
		ExecuteWorkflow(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("temporal unavailable"))

	resp, err := tm.executor.TriggerPipeline(ctx, domain.PipelineEmbedEntities, []byte(`{"gallery_ids":["`+uuid.NewString()+`"]}`))

	assert.Nil(t, resp)
	requireAPIError(t, err, apierrors.ErrCodeServiceError)
}

func TestGetPipelineRun(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()
	completedAt := testNow.Add(time.Minute)

	tm.store.EXPECT().GetPipelineRunByWorkflowID(ctx, "wf-1").Return(&schema.PipelineRun{
		WorkflowID:    "wf-1",
		WorkflowRunID: "run-1",
		Pipeline:      "scrape-and-extract",
		Status:        schema.PipelineRunStatusCompleted,
		Input:         datatypes.JSON(`{"page_ids":[]}`),
		Warnings:      datatypes.JSONSlice[string]{"page x: no markdown"},
		StartedAt:     testNow,
		CompletedAt:   &completedAt,
	}, nil)

	resp, err := tm.executor.GetPipelineRun(ctx, "wf-1")

	require.NoError(t, err)
	assert.Equal(t, "run-1", resp.RunID)
	assert.Equal(t, "completed", resp.Status)
	assert.JSONEq(t, `{"page_ids":[]}`, string(resp.Input))
	assert.Equal(t, []string{"page x: no markdown"}, resp.Warnings)
	assert.Equal(t, &completedAt, resp.CompletedAt)
}

func TestGetPipelineRun_NotFound(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()

	tm.store.EXPECT().GetPipelineRunByWorkflowID(ctx, "wf-1").Return(nil, nil)

	_, err := tm.executor.GetPipelineRun(ctx, "wf-1")

	requireAPIError(t, err, apierrors.ErrCodeNotFound)
}

func TestGetPipelineRun_StoreError(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()

	tm.store.EXPECT().GetPipelineRunByWorkflowID(ctx, "wf-1").Return(nil, errors.New("db down"))

	_, err := tm.executor.GetPipelineRun(ctx, "wf-1")

	apiErr := requireAPIError(t, err, apierrors.ErrCodeDatabaseError)
	assert.Equal(t, 500, apiErr.HTTPStatus())
}
