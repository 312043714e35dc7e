package sweeper_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/mocks"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
	"github.com/feral-file/ff-gallery-indexer/internal/sweeper"
)

var testNow = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

// queuedCutoff is testNow minus the default stale queued age
var queuedCutoff = testNow.Add(-sweeper.DEFAULT_STALE_QUEUED_AFTER)

// testSweeperMocks contains all the mocks needed for testing the sweeper
type testSweeperMocks struct {
	ctrl         *gomock.Controller
	store        *mocks.MockStore
	clock        *mocks.MockClock
	orchestrator *mocks.MockTemporalOrchestrator
	sweeper      sweeper.Sweeper
	// slept is closed when the first cycle finishes and the sweeper goes to sleep
	slept chan struct{}
}

// setupTestSweeper creates all the mocks and sweeper for testing
func setupTestSweeper(t *testing.T) *testSweeperMocks {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testSweeperMocks{
		ctrl:         ctrl,
		store:        mocks.NewMockStore(ctrl),
		clock:        mocks.NewMockClock(ctrl),
		orchestrator: mocks.NewMockTemporalOrchestrator(ctrl),
		slept:        make(chan struct{}),
	}

	tm.clock.EXPECT().Now().Return(testNow).AnyTimes()
	tm.clock.EXPECT().Since(testNow).Return(time.Second).AnyTimes()

	// the first sleep never ends, so every test observes exactly one cycle
	var once sync.Once
	tm.clock.EXPECT().After(time.Minute).DoAndReturn(func(time.Duration) <-chan time.Time {
		once.Do(func() { close(tm.slept) })
		return make(chan time.Time)
	}).AnyTimes()

	tm.sweeper = sweeper.NewPendingPagesSweeper(
		sweeper.PendingPagesSweeperConfig{
			Interval:             time.Minute,
			BatchSize:            60,
			WorkerPoolSize:       2,
			RetryInitialInterval: time.Millisecond,
			RetryMaxElapsed:      20 * time.Millisecond,
		},
		tm.store,
		tm.clock,
		tm.orchestrator,
		"test-task-queue",
	)

	return tm
}

// tearDownTestSweeper cleans up the test mocks
func tearDownTestSweeper(mocks *testSweeperMocks) {
	mocks.ctrl.Finish()
}

// runOneCycle starts the sweeper, waits for its first sleep and stops it
func runOneCycle(t *testing.T, tm *testSweeperMocks) {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- tm.sweeper.Start(context.Background()) }()

	select {
	case <-tm.slept:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep cycle did not finish")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tm.sweeper.Stop(stopCtx))
	require.NoError(t, <-done)
}

func pages(n int) []schema.Page {
	out := make([]schema.Page, n)
	for i := range out {
		out[i] = schema.Page{ID: uuid.New()}
	}
	return out
}

type startedWorkflow struct {
	id      string
	pageIDs []uuid.UUID
}

func recordStarts(tm *testSweeperMocks) (*sync.Mutex, *[]startedWorkflow) {
	var mu sync.Mutex
	started := []startedWorkflow{}
	tm.orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts client.StartWorkflowOptions, _ interface{}, args ...interface{}) (client.WorkflowRun, error) {
			mu.Lock()
			defer mu.Unlock()
			started = append(started, startedWorkflow{id: opts.ID, pageIDs: args[0].([]uuid.UUID)})
			return client.WorkflowRun(nil), nil
		}).
		AnyTimes()
	return &mu, &started
}

func TestPendingPagesSweeper_Name(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	assert.Equal(t, "pending-pages-sweeper", mocks.sweeper.Name())
}

func TestPendingPagesSweeper_StartsWorkflowsPerChunk(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	unfetched := pages(30)
	unextracted := pages(3)
	mocks.store.EXPECT().GetPagesPendingFetch(gomock.Any(), 60).Return(unfetched, nil)
	mocks.store.EXPECT().GetPagesPendingExtraction(gomock.Any(), 60, queuedCutoff).Return(unextracted, nil)
	mu, started := recordStarts(mocks)

	runOneCycle(t, mocks)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *started, 3)

	var scrapeChunks, extractChunks [][]uuid.UUID
	ids := map[string]struct{}{}
	for _, wf := range *started {
		ids[wf.id] = struct{}{}
		switch {
		case strings.HasPrefix(wf.id, "sweep-scrape-pages-"):
			scrapeChunks = append(scrapeChunks, wf.pageIDs)
		case strings.HasPrefix(wf.id, "sweep-scrape-and-extract-"):
			extractChunks = append(extractChunks, wf.pageIDs)
		default:
			t.Fatalf("unexpected workflow id %s", wf.id)
		}
	}
	assert.Len(t, ids, 3, "workflow ids must be unique")

	require.Len(t, scrapeChunks, 2)
	assert.ElementsMatch(t, []int{25, 5}, []int{len(scrapeChunks[0]), len(scrapeChunks[1])})
	require.Len(t, extractChunks, 1)
	assert.Equal(t, []uuid.UUID{unextracted[0].ID, unextracted[1].ID, unextracted[2].ID}, extractChunks[0])
}

func TestPendingPagesSweeper_NothingPending(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	mocks.store.EXPECT().GetPagesPendingFetch(gomock.Any(), 60).Return([]schema.Page{}, nil)
	mocks.store.EXPECT().GetPagesPendingExtraction(gomock.Any(), 60, queuedCutoff).Return([]schema.Page{}, nil)

	runOneCycle(t, mocks)
}

func TestPendingPagesSweeper_StoreErrorStillSleeps(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	mocks.store.EXPECT().GetPagesPendingFetch(gomock.Any(), 60).Return(nil, errors.New("db down"))

	runOneCycle(t, mocks)
}

func TestPendingPagesSweeper_RetriesWorkflowStart(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	mocks.store.EXPECT().GetPagesPendingFetch(gomock.Any(), 60).Return(pages(1), nil)
	mocks.store.EXPECT().GetPagesPendingExtraction(gomock.Any(), 60, queuedCutoff).Return([]schema.Page{}, nil)

	gomock.InOrder(
		mocks.orchestrator.EXPECT().
			ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("temporal unavailable")),
		mocks.orchestrator.EXPECT().
			ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(client.WorkflowRun(nil), nil),
	)

	runOneCycle(t, mocks)
}

func TestPendingPagesSweeper_AlreadyStartedIsNotRetried(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	mocks.store.EXPECT().GetPagesPendingFetch(gomock.Any(), 60).Return([]schema.Page{}, nil)
	mocks.store.EXPECT().GetPagesPendingExtraction(gomock.Any(), 60, queuedCutoff).Return(pages(2), nil)
	mocks.orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "", "")).
		Times(1)

	runOneCycle(t, mocks)
}

func TestPendingPagesSweeper_StartTwice(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	mocks.store.EXPECT().GetPagesPendingFetch(gomock.Any(), 60).Return([]schema.Page{}, nil)
	mocks.store.EXPECT().GetPagesPendingExtraction(gomock.Any(), 60, queuedCutoff).Return([]schema.Page{}, nil)

	done := make(chan error, 1)
	go func() { done <- mocks.sweeper.Start(context.Background()) }()
	<-mocks.slept

	assert.Error(t, mocks.sweeper.Start(context.Background()))

	require.NoError(t, mocks.sweeper.Stop(context.Background()))
	require.NoError(t, <-done)
}

func TestPendingPagesSweeper_StopWhenNotRunning(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	assert.NoError(t, mocks.sweeper.Stop(context.Background()))
}

func TestPendingPagesSweeper_ContextCancellation(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	mocks.store.EXPECT().GetPagesPendingFetch(gomock.Any(), 60).Return([]schema.Page{}, nil)
	mocks.store.EXPECT().GetPagesPendingExtraction(gomock.Any(), 60, queuedCutoff).Return([]schema.Page{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mocks.sweeper.Start(ctx) }()
	<-mocks.slept

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
