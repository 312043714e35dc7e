package embedding

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
	"github.com/feral-file/ff-gallery-indexer/internal/completion"
	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/metrics"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
)

const defaultConcurrency = 4

const (
	SkipReasonAlreadyEmbedded = "already embedded"
	SkipReasonEmptyText       = "empty text"
)

// errSkipped carries a skip reason out of an embed task
type errSkipped struct {
	reason string
}

func (e errSkipped) Error() string {
	return e.reason
}

// Result reports the outcome of an embedding batch
type Result struct {
	Embedded []uuid.UUID          `json:"embedded"`
	Skipped  map[uuid.UUID]string `json:"skipped"`
	Failed   map[uuid.UUID]string `json:"failed"`
}

// Embedder computes and stores embeddings for galleries and events
//
//go:generate mockgen -source=embedder.go -destination=../mocks/embedder.go -package=mocks -mock_names=Embedder=MockEmbedder
type Embedder interface {
	// EmbedGalleries embeds galleries that have no embedding yet
	EmbedGalleries(ctx context.Context, galleryIDs []uuid.UUID) (*Result, error)
	// EmbedEvents embeds events, replacing any existing embedding
	EmbedEvents(ctx context.Context, eventIDs []uuid.UUID) (*Result, error)
}

type embedder struct {
	store       store.Store
	completion  completion.Service
	clock       adapter.Clock
	concurrency int
}

// NewEmbedder creates an embedder running at most concurrency embeddings at once
func NewEmbedder(store store.Store, completion completion.Service, clock adapter.Clock, concurrency int) Embedder {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &embedder{
		store:       store,
		completion:  completion,
		clock:       clock,
		concurrency: concurrency,
	}
}

func (e *embedder) EmbedGalleries(ctx context.Context, galleryIDs []uuid.UUID) (*Result, error) {
	return e.embedAll(ctx, domain.EntityTypeGallery, galleryIDs, e.embedGallery), nil
}

func (e *embedder) EmbedEvents(ctx context.Context, eventIDs []uuid.UUID) (*Result, error) {
	return e.embedAll(ctx, domain.EntityTypeEvent, eventIDs, e.embedEvent), nil
}

// embedAll runs embed for every id on a bounded pool and sorts the outcomes
func (e *embedder) embedAll(ctx context.Context, entity domain.EntityType, ids []uuid.UUID, embed func(context.Context, uuid.UUID) error) *Result {
	result := &Result{
		Embedded: []uuid.UUID{},
		Skipped:  make(map[uuid.UUID]string),
		Failed:   make(map[uuid.UUID]string),
	}
	if len(ids) == 0 {
		return result
	}

	var mu sync.Mutex
	pool := pond.NewPool(e.concurrency, pond.WithContext(ctx))
	for _, id := range ids {
		pool.Submit(func() {
			err := embed(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			var skipped errSkipped
			switch {
			case err == nil:
				result.Embedded = append(result.Embedded, id)
				metrics.ObserveEmbedding(string(entity), "ok")
			case errors.As(err, &skipped):
				result.Skipped[id] = skipped.reason
				metrics.ObserveEmbedding(string(entity), "skipped")
			default:
				logger.WarnCtx(ctx, "Failed to embed entity",
					zap.String("entity", string(entity)),
					zap.String("id", id.String()),
					zap.Error(err))
				result.Failed[id] = err.Error()
				metrics.ObserveEmbedding(string(entity), "error")
			}
		})
	}
	pool.StopAndWait()

	logger.InfoCtx(ctx, "Embedded entities",
		zap.String("entity", string(entity)),
		zap.Int("requested", len(ids)),
		zap.Int("embedded", len(result.Embedded)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)))

	return result
}

func (e *embedder) embedGallery(ctx context.Context, galleryID uuid.UUID) error {
	gallery, err := e.store.GetGalleryByID(ctx, galleryID)
	if err != nil {
		return fmt.Errorf("failed to get gallery: %w", err)
	}
	if gallery == nil {
		return domain.ErrGalleryNotFound
	}

	info, err := e.store.GetGalleryInfo(ctx, galleryID)
	if err != nil {
		return fmt.Errorf("failed to get gallery info: %w", err)
	}
	if info.HasEmbedding() {
		return errSkipped{reason: SkipReasonAlreadyEmbedded}
	}

	text := GalleryText(*gallery, info)
	if text == "" {
		return errSkipped{reason: SkipReasonEmptyText}
	}

	vector, model, err := e.completion.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed gallery: %w", err)
	}

	return e.store.UpdateGalleryEmbedding(ctx, galleryID, store.EmbeddingInput{
		Vector:    vector,
		Model:     model,
		CreatedAt: e.clock.Now(),
	})
}

func (e *embedder) embedEvent(ctx context.Context, eventID uuid.UUID) error {
	event, err := e.store.GetEventByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return fmt.Errorf("event %s not found", eventID)
	}

	info, err := e.store.GetEventInfo(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event info: %w", err)
	}

	text := EventText(*event, info)
	if text == "" {
		return errSkipped{reason: SkipReasonEmptyText}
	}

	vector, model, err := e.completion.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed event: %w", err)
	}

	return e.store.UpdateEventEmbedding(ctx, eventID, store.EmbeddingInput{
		Vector:    vector,
		Model:     model,
		CreatedAt: e.clock.Now(),
	})
}
