package discovery

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/metrics"
	"github.com/feral-file/ff-gallery-indexer/internal/providers/web"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/uri"
)

// Input is a batch of listing pages to harvest links from
type Input struct {
	GalleryID          uuid.UUID `json:"gallery_id"`
	ListingURLs        []string  `json:"listing_urls"`
	MaxLinksPerListing int       `json:"max_links_per_listing"`
}

// Result reports what a discovery run registered
type Result struct {
	// NewLinks is the number of pages inserted per listing URL
	NewLinks map[string]int `json:"new_links"`
	// NewPageIDs lists the inserted pages in insertion order
	NewPageIDs []uuid.UUID `json:"new_page_ids"`
	// Failed maps listing URLs that could not be listed to the error message
	Failed map[string]string `json:"failed"`
}

// Discoverer registers outbound links of listing pages as new pages
//
//go:generate mockgen -source=discoverer.go -destination=../mocks/discoverer.go -package=mocks -mock_names=Discoverer=MockDiscoverer
type Discoverer interface {
	// Discover lists the links of every listing URL and inserts the unseen ones with kind init.
	// Existing pages are never modified.
	Discover(ctx context.Context, input Input) (*Result, error)
}

type discoverer struct {
	store   store.Store
	fetcher web.Fetcher
}

// NewDiscoverer creates a new link discoverer
func NewDiscoverer(store store.Store, fetcher web.Fetcher) Discoverer {
	return &discoverer{
		store:   store,
		fetcher: fetcher,
	}
}

func (d *discoverer) Discover(ctx context.Context, input Input) (*Result, error) {
	gallery, err := d.store.GetGalleryByID(ctx, input.GalleryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	if gallery == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrGalleryNotFound, input.GalleryID)
	}

	maxLinks := input.MaxLinksPerListing
	if maxLinks <= 0 {
		maxLinks = domain.DEFAULT_MAX_LINKS_PER_LISTING
	}

	result := &Result{
		NewLinks:   make(map[string]int, len(input.ListingURLs)),
		NewPageIDs: []uuid.UUID{},
		Failed:     make(map[string]string),
	}

	for _, listingURL := range input.ListingURLs {
		// pages inserted before a failure are kept: a retry would see them as existing
		pageIDs, err := d.discoverListing(ctx, gallery.ID, listingURL, maxLinks)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to discover links",
				zap.String("listingURL", listingURL),
				zap.Int("inserted", len(pageIDs)),
				zap.Error(err))
			result.Failed[listingURL] = err.Error()
		}

		result.NewLinks[listingURL] = len(pageIDs)
		result.NewPageIDs = append(result.NewPageIDs, pageIDs...)
		metrics.ObserveLinksDiscovered(len(pageIDs))
	}

	logger.InfoCtx(ctx, "Discovered links",
		zap.String("galleryID", gallery.ID.String()),
		zap.Int("listings", len(input.ListingURLs)),
		zap.Int("newPages", len(result.NewPageIDs)),
		zap.Int("failed", len(result.Failed)))

	return result, nil
}

func (d *discoverer) discoverListing(ctx context.Context, galleryID uuid.UUID, listingURL string, maxLinks int) ([]uuid.UUID, error) {
	links, err := d.fetcher.ListLinks(ctx, listingURL)
	if err != nil {
		return nil, err
	}
	if len(links) > maxLinks {
		links = links[:maxLinks]
	}

	candidates, rejected := uri.NormalizeAll(links)
	if len(rejected) > 0 {
		logger.DebugCtx(ctx, "Dropped malformed links",
			zap.String("listingURL", listingURL),
			zap.Strings("links", rejected))
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	normalized := make([]string, len(candidates))
	for i, c := range candidates {
		normalized[i] = c.Normalized
	}

	existing, err := d.store.GetExistingNormalizedURLs(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing pages: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, u := range existing {
		known[u] = struct{}{}
	}

	var pageIDs []uuid.UUID
	for _, link := range candidates {
		if _, ok := known[link.Normalized]; ok {
			continue
		}

		page, created, err := d.store.CreatePageIfAbsent(ctx, store.CreatePageInput{
			GalleryID:     &galleryID,
			URL:           link.Raw,
			NormalizedURL: link.Normalized,
			Kind:          domain.PageKindInit,
		})
		if err != nil {
			return pageIDs, fmt.Errorf("failed to create page: %w", err)
		}
		// A concurrent run inserted the same URL first
		if !created {
			continue
		}
		pageIDs = append(pageIDs, page.ID)
	}

	return pageIDs, nil
}
