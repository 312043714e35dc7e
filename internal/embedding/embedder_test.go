package embedding_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-gallery-indexer/internal/embedding"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/mocks"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

var testNow = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

type testEmbedderMocks struct {
	ctrl       *gomock.Controller
	store      *mocks.MockStore
	completion *mocks.MockCompletionService
	clock      *mocks.MockClock
	embedder   embedding.Embedder
}

func setupTestEmbedder(t *testing.T) *testEmbedderMocks {
	ctrl := gomock.NewController(t)
	tm := &testEmbedderMocks{
		ctrl:       ctrl,
		store:      mocks.NewMockStore(ctrl),
		completion: mocks.NewMockCompletionService(ctrl),
		clock:      mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(testNow).AnyTimes()
	tm.embedder = embedding.NewEmbedder(tm.store, tm.completion, tm.clock, 2)
	return tm
}

func strPtr(s string) *string {
	return &s
}

func TestEmbedder_EmbedGalleries(t *testing.T) {
	t.Run("embeds galleries without embedding", func(t *testing.T) {
		tm := setupTestEmbedder(t)
		ctx := context.Background()

		galleryID := uuid.New()
		tm.store.EXPECT().GetGalleryByID(ctx, galleryID).Return(&schema.Gallery{ID: galleryID, MainURL: "https://gallery.example"}, nil)
		tm.store.EXPECT().GetGalleryInfo(ctx, galleryID).Return(&schema.GalleryInfo{GalleryID: galleryID, Name: strPtr("Lumen")}, nil)
		tm.completion.EXPECT().Embed(ctx, "Name: Lumen").Return([]float32{0.1, 0.2}, "text-embedding-3-small", nil)
		tm.store.EXPECT().UpdateGalleryEmbedding(ctx, galleryID, store.EmbeddingInput{
			Vector:    []float32{0.1, 0.2},
			Model:     "text-embedding-3-small",
			CreatedAt: testNow,
		}).Return(nil)

		result, err := tm.embedder.EmbedGalleries(ctx, []uuid.UUID{galleryID})
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{galleryID}, result.Embedded)
		assert.Empty(t, result.Skipped)
		assert.Empty(t, result.Failed)
	})

	t.Run("missing info embeds the main url", func(t *testing.T) {
		tm := setupTestEmbedder(t)
		ctx := context.Background()

		galleryID := uuid.New()
		tm.store.EXPECT().GetGalleryByID(ctx, galleryID).Return(&schema.Gallery{ID: galleryID, MainURL: "https://gallery.example"}, nil)
		tm.store.EXPECT().GetGalleryInfo(ctx, galleryID).Return(nil, nil)
		tm.completion.EXPECT().Embed(ctx, "https://gallery.example").Return([]float32{1}, "m", nil)
		tm.store.EXPECT().UpdateGalleryEmbedding(ctx, galleryID, gomock.Any()).Return(nil)

		result, err := tm.embedder.EmbedGalleries(ctx, []uuid.UUID{galleryID})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{galleryID}, result.Embedded)
	})

	t.Run("existing embedding is skipped", func(t *testing.T) {
		tm := setupTestEmbedder(t)
		ctx := context.Background()

		galleryID := uuid.New()
		vector := pgvector.NewVector([]float32{0.5})
		tm.store.EXPECT().GetGalleryByID(ctx, galleryID).Return(&schema.Gallery{ID: galleryID}, nil)
		tm.store.EXPECT().GetGalleryInfo(ctx, galleryID).Return(&schema.GalleryInfo{GalleryID: galleryID, Embedding: &vector}, nil)

		result, err := tm.embedder.EmbedGalleries(ctx, []uuid.UUID{galleryID})
		require.NoError(t, err)

		assert.Empty(t, result.Embedded)
		assert.Equal(t, embedding.SkipReasonAlreadyEmbedded, result.Skipped[galleryID])
	})

	t.Run("one failure does not block the batch", func(t *testing.T) {
		tm := setupTestEmbedder(t)
		ctx := context.Background()

		missingID, failingID, okID := uuid.New(), uuid.New(), uuid.New()
		tm.store.EXPECT().GetGalleryByID(ctx, missingID).Return(nil, nil)
		tm.store.EXPECT().GetGalleryByID(ctx, failingID).Return(&schema.Gallery{ID: failingID, MainURL: "https://failing.example"}, nil)
		tm.store.EXPECT().GetGalleryInfo(ctx, failingID).Return(nil, nil)
		tm.completion.EXPECT().Embed(ctx, "https://failing.example").Return(nil, "", errors.New("rate limited"))
		tm.store.EXPECT().GetGalleryByID(ctx, okID).Return(&schema.Gallery{ID: okID, MainURL: "https://ok.example"}, nil)
		tm.store.EXPECT().GetGalleryInfo(ctx, okID).Return(nil, nil)
		tm.completion.EXPECT().Embed(ctx, "https://ok.example").Return([]float32{1}, "m", nil)
		tm.store.EXPECT().UpdateGalleryEmbedding(ctx, okID, gomock.Any()).Return(nil)

		result, err := tm.embedder.EmbedGalleries(ctx, []uuid.UUID{missingID, failingID, okID})
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{okID}, result.Embedded)
		assert.Equal(t, "gallery not found", result.Failed[missingID])
		assert.Contains(t, result.Failed[failingID], "rate limited")
	})

	t.Run("empty input", func(t *testing.T) {
		tm := setupTestEmbedder(t)

		result, err := tm.embedder.EmbedGalleries(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, result.Embedded)
	})
}

func TestEmbedder_EmbedEvents(t *testing.T) {
	t.Run("re-embeds events with existing embedding", func(t *testing.T) {
		tm := setupTestEmbedder(t)
		ctx := context.Background()

		eventID := uuid.New()
		vector := pgvector.NewVector([]float32{0.5})
		tm.store.EXPECT().GetEventByID(ctx, eventID).Return(&schema.Event{ID: eventID, Title: "Spring Show"}, nil)
		tm.store.EXPECT().GetEventInfo(ctx, eventID).Return(&schema.EventInfo{
			EventID:     eventID,
			Description: strPtr("Paintings of spring"),
			Embedding:   &vector,
		}, nil)
		tm.completion.EXPECT().Embed(ctx, "Paintings of spring").Return([]float32{0.3}, "m", nil)
		tm.store.EXPECT().UpdateEventEmbedding(ctx, eventID, store.EmbeddingInput{
			Vector:    []float32{0.3},
			Model:     "m",
			CreatedAt: testNow,
		}).Return(nil)

		result, err := tm.embedder.EmbedEvents(ctx, []uuid.UUID{eventID})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{eventID}, result.Embedded)
	})

	t.Run("empty text is skipped", func(t *testing.T) {
		tm := setupTestEmbedder(t)
		ctx := context.Background()

		eventID := uuid.New()
		tm.store.EXPECT().GetEventByID(ctx, eventID).Return(&schema.Event{ID: eventID, Title: "  "}, nil)
		tm.store.EXPECT().GetEventInfo(ctx, eventID).Return(nil, nil)

		result, err := tm.embedder.EmbedEvents(ctx, []uuid.UUID{eventID})
		require.NoError(t, err)

		assert.Empty(t, result.Embedded)
		assert.Equal(t, embedding.SkipReasonEmptyText, result.Skipped[eventID])
		assert.Empty(t, result.Failed)
	})

	t.Run("store failure is recorded", func(t *testing.T) {
		tm := setupTestEmbedder(t)
		ctx := context.Background()

		eventID := uuid.New()
		tm.store.EXPECT().GetEventByID(ctx, eventID).Return(&schema.Event{ID: eventID, Title: "Show"}, nil)
		tm.store.EXPECT().GetEventInfo(ctx, eventID).Return(nil, nil)
		tm.completion.EXPECT().Embed(ctx, "Show").Return([]float32{1}, "m", nil)
		tm.store.EXPECT().UpdateEventEmbedding(ctx, eventID, gomock.Any()).Return(errors.New("db down"))

		result, err := tm.embedder.EmbedEvents(ctx, []uuid.UUID{eventID})
		require.NoError(t, err)
		assert.Contains(t, result.Failed[eventID], "db down")
	})

	t.Run("unknown event fails", func(t *testing.T) {
		tm := setupTestEmbedder(t)
		ctx := context.Background()

		eventID := uuid.New()
		tm.store.EXPECT().GetEventByID(ctx, eventID).Return(nil, nil)

		result, err := tm.embedder.EmbedEvents(ctx, []uuid.UUID{eventID})
		require.NoError(t, err)
		assert.Contains(t, result.Failed[eventID], "not found")
	})
}
