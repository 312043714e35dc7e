package scraper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/metrics"
	"github.com/feral-file/ff-gallery-indexer/internal/providers/web"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
	"github.com/feral-file/ff-gallery-indexer/internal/types"
)

const defaultConcurrency = 8

// Result reports the outcome of a scrape batch
type Result struct {
	// Fetched lists pages whose fetch succeeded
	Fetched []uuid.UUID `json:"fetched"`
	// Failed maps pages whose fetch failed to the error message
	Failed map[uuid.UUID]string `json:"failed"`
	// Missing lists requested IDs that are not registered
	Missing []uuid.UUID `json:"missing"`
}

// Scraper fetches pages and stores their markdown
//
//go:generate mockgen -source=scraper.go -destination=../mocks/scraper.go -package=mocks -mock_names=Scraper=MockScraper
type Scraper interface {
	// ScrapePages fetches every page independently. A failed page is recorded with
	// fetch status error and does not stop the others.
	ScrapePages(ctx context.Context, pageIDs []uuid.UUID) (*Result, error)
}

type scraper struct {
	store       store.Store
	fetcher     web.Fetcher
	clock       adapter.Clock
	concurrency int
}

// NewScraper creates a scraper running at most concurrency fetches at once
func NewScraper(store store.Store, fetcher web.Fetcher, clock adapter.Clock, concurrency int) Scraper {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &scraper{
		store:       store,
		fetcher:     fetcher,
		clock:       clock,
		concurrency: concurrency,
	}
}

func (s *scraper) ScrapePages(ctx context.Context, pageIDs []uuid.UUID) (*Result, error) {
	result := &Result{
		Fetched: []uuid.UUID{},
		Failed:  make(map[uuid.UUID]string),
		Missing: []uuid.UUID{},
	}
	if len(pageIDs) == 0 {
		return result, nil
	}

	pages, err := s.store.GetPagesByIDs(ctx, pageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get pages: %w", err)
	}

	found := make(map[uuid.UUID]struct{}, len(pages))
	for _, p := range pages {
		found[p.ID] = struct{}{}
	}
	for _, id := range pageIDs {
		if _, ok := found[id]; !ok {
			result.Missing = append(result.Missing, id)
		}
	}

	var mu sync.Mutex
	pool := pond.NewPool(s.concurrency, pond.WithContext(ctx))
	for _, page := range pages {
		pool.Submit(func() {
			err := s.scrapePage(ctx, page)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[page.ID] = err.Error()
				return
			}
			result.Fetched = append(result.Fetched, page.ID)
		})
	}
	pool.StopAndWait()

	logger.InfoCtx(ctx, "Scraped pages",
		zap.Int("requested", len(pageIDs)),
		zap.Int("fetched", len(result.Fetched)),
		zap.Int("failed", len(result.Failed)),
		zap.Int("missing", len(result.Missing)))

	return result, nil
}

// scrapePage fetches a page and persists content and fetch status.
// The content row is written on failure too, with null markdown.
func (s *scraper) scrapePage(ctx context.Context, page schema.Page) error {
	var (
		markdown *string
		hash     *string
	)

	fetched, fetchErr := s.fetcher.Scrape(ctx, page.NormalizedURL)
	if fetchErr != nil {
		logger.WarnCtx(ctx, "Failed to fetch page",
			zap.String("pageID", page.ID.String()),
			zap.String("url", page.NormalizedURL),
			zap.Error(fetchErr))
	} else if fetched.Markdown != nil {
		markdown = fetched.Markdown
		hash = types.StringPtr(ContentHash(*markdown))
	}

	now := s.clock.Now()
	if err := s.store.SavePageContent(ctx, store.SavePageContentInput{
		PageID:      page.ID,
		Markdown:    markdown,
		ContentHash: hash,
		ParsedAt:    now,
	}); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to save page content: %w", err), zap.String("pageID", page.ID.String()))
		return err
	}

	status := domain.FetchStatusOK
	if fetchErr != nil {
		status = domain.FetchStatusError
	}
	if err := s.store.UpdatePageFetchStatus(ctx, page.ID, status, now); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to update fetch status: %w", err), zap.String("pageID", page.ID.String()))
		return err
	}
	metrics.ObservePageFetch(string(status))

	return fetchErr
}

// ContentHash returns the hex sha256 of markdown
func ContentHash(markdown string) string {
	sum := sha256.Sum256([]byte(markdown))
	return hex.EncodeToString(sum[:])
}
