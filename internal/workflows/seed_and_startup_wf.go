package workflows

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-gallery-indexer/internal/discovery"
	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/embedding"
	"github.com/feral-file/ff-gallery-indexer/internal/extraction"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/scraper"
	"github.com/feral-file/ff-gallery-indexer/internal/seeder"
)

// SeedAndStartup brings a gallery to a usable state. Every step after seeding is best-effort:
// failures become warnings of the run instead of failing it.
func (w *workerCore) SeedAndStartup(ctx workflow.Context, input SeedAndStartupInput) (result *SeedAndStartupResult, err error) {
	logger.InfoWf(ctx, "Starting seed and startup",
		zap.String("mainURL", input.MainURL),
		zap.Bool("reseed", input.Reseed))

	warnings := []string{}
	w.startRun(ctx, domain.PipelineSeedAndStartup, input)
	defer func() {
		w.completeRun(ctx, domain.PipelineSeedAndStartup, warnings, err)
	}()

	actx := workflow.WithActivityOptions(ctx, defaultActivityOptions)
	bctx := workflow.WithActivityOptions(ctx, batchActivityOptions)

	// Step 1: Look the gallery up by its normalized main URL
	var existing *uuid.UUID
	if err := workflow.ExecuteActivity(actx, w.executor.LookupGallery, input.MainURL).Get(actx, &existing); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to lookup gallery"), zap.Error(err))
		return nil, err
	}

	// Step 2: Seed when absent, otherwise reuse the stored seed pages
	var seed *seeder.Result
	if existing == nil || input.Reseed {
		if err := workflow.ExecuteActivity(actx, w.executor.SeedGallery, input.Input).Get(actx, &seed); err != nil {
			logger.ErrorWf(ctx, fmt.Errorf("failed to seed gallery"), zap.Error(err))
			return nil, err
		}

		if existing == nil {
			visible, err := w.pollUntil(ctx, w.config.StartupPollAttempts, func() (bool, error) {
				var exists bool
				err := workflow.ExecuteActivity(actx, w.executor.GalleryExists, seed.GalleryID).Get(actx, &exists)
				return exists, err
			})
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("failed to confirm gallery row: %v", err))
			} else if !visible {
				warnings = append(warnings, fmt.Sprintf("gallery row not visible after %d polls", w.config.StartupPollAttempts))
			}
		}
	} else {
		if err := workflow.ExecuteActivity(actx, w.executor.GetSeedPages, *existing).Get(actx, &seed); err != nil {
			logger.ErrorWf(ctx, fmt.Errorf("failed to get seed pages"), zap.Error(err))
			return nil, err
		}
	}
	galleryID := seed.GalleryID

	// Step 3: Scrape the seed pages
	var scraped *scraper.Result
	if err := workflow.ExecuteActivity(bctx, w.executor.ScrapePageContents, seed.PageIDs).Get(bctx, &scraped); err != nil {
		logger.WarnWf(ctx, "Failed to scrape seed pages", zap.Error(err))
		warnings = append(warnings, fmt.Sprintf("failed to scrape seed pages: %v", err))
	}

	// Step 4: Wait for every seed page to reach a terminal fetch status
	var progress *FetchProgress
	settled, err := w.pollUntil(ctx, w.config.StartupPollAttempts, func() (bool, error) {
		if err := workflow.ExecuteActivity(actx, w.executor.GetPageFetchProgress, seed.PageIDs).Get(actx, &progress); err != nil {
			return false, err
		}
		return len(progress.Pending) == 0, nil
	})
	switch {
	case err != nil:
		warnings = append(warnings, fmt.Sprintf("failed to poll seed pages: %v", err))
	case !settled:
		warnings = append(warnings, fmt.Sprintf("%d seed pages still pending fetch after %d polls", len(progress.Pending), w.config.StartupPollAttempts))
	}
	if progress != nil {
		for _, id := range progress.Failed {
			warnings = append(warnings, fmt.Sprintf("seed page %s failed to fetch", id))
		}
	}

	// Step 5: Extract gallery facts, even from a partial scrape
	var gallery *extraction.GalleryResult
	if err := workflow.ExecuteActivity(bctx, w.executor.ExtractGallery, galleryID).Get(bctx, &gallery); err != nil {
		logger.WarnWf(ctx, "Failed to extract gallery", zap.Error(err))
		warnings = append(warnings, fmt.Sprintf("failed to extract gallery: %v", err))
	} else {
		warnings = append(warnings, gallery.Warnings...)
	}

	// Step 6: Embed the gallery
	var embedded *embedding.Result
	if err := workflow.ExecuteActivity(bctx, w.executor.EmbedGalleries, []uuid.UUID{galleryID}).Get(bctx, &embedded); err != nil {
		logger.WarnWf(ctx, "Failed to embed gallery", zap.Error(err))
		warnings = append(warnings, fmt.Sprintf("failed to embed gallery: %v", err))
	} else {
		warnings = append(warnings, failureWarnings("embedding gallery", embedded.Failed)...)
	}

	// Step 7: Parse operator supplied opening hours
	if input.HasOpeningHoursText() {
		var ranges int
		if err := workflow.ExecuteActivity(bctx, w.executor.ExtractOpeningHours, galleryID).Get(bctx, &ranges); err != nil {
			logger.WarnWf(ctx, "Failed to extract opening hours", zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("failed to extract opening hours: %v", err))
		} else {
			logger.InfoWf(ctx, "Opening hours stored", zap.Int("ranges", ranges))
		}
	}

	// Step 8: Start link discovery without waiting for it
	if len(seed.ListingURLs) > 0 {
		err := w.startChild(ctx, fmt.Sprintf("discover-links-%s", galleryID), 2*time.Hour, w.DiscoverLinks, DiscoverLinksInput{
			GalleryID:   galleryID,
			ListingURLs: seed.ListingURLs,
		})
		if err != nil {
			logger.WarnWf(ctx, "Failed to start link discovery", zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("failed to start link discovery: %v", err))
		}
	}

	logger.InfoWf(ctx, "Seed and startup completed",
		zap.String("galleryID", galleryID.String()),
		zap.Int("warnings", len(warnings)))

	return &SeedAndStartupResult{GalleryID: galleryID, Warnings: warnings}, nil
}

// DiscoverLinks registers new links of listing pages, scrapes and classifies them and hands
// event candidates to ScrapeAndExtract
func (w *workerCore) DiscoverLinks(ctx workflow.Context, input DiscoverLinksInput) (result *DiscoverLinksResult, err error) {
	logger.InfoWf(ctx, "Starting link discovery",
		zap.String("galleryID", input.GalleryID.String()),
		zap.Strings("listingURLs", input.ListingURLs))

	warnings := []string{}
	w.startRun(ctx, domain.PipelineDiscoverLinks, input)
	defer func() {
		w.completeRun(ctx, domain.PipelineDiscoverLinks, warnings, err)
	}()

	bctx := workflow.WithActivityOptions(ctx, batchActivityOptions)

	// Step 1: Register unseen links
	var discovered *discovery.Result
	err = workflow.ExecuteActivity(bctx, w.executor.DiscoverGalleryLinks, discovery.Input{
		GalleryID:          input.GalleryID,
		ListingURLs:        input.ListingURLs,
		MaxLinksPerListing: w.config.MaxLinksPerListing,
	}).Get(bctx, &discovered)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to discover links"), zap.Error(err))
		return nil, err
	}
	for _, listing := range sortedKeys(discovered.Failed) {
		warnings = append(warnings, fmt.Sprintf("listing %s: %s", listing, discovered.Failed[listing]))
	}

	result = &DiscoverLinksResult{
		NewPageIDs:      discovered.NewPageIDs,
		EventCandidates: []uuid.UUID{},
	}
	if len(discovered.NewPageIDs) == 0 {
		logger.InfoWf(ctx, "No new links discovered")
		result.Warnings = warnings
		return result, nil
	}

	// Step 2: Scrape the new pages
	var scraped *scraper.Result
	if err := workflow.ExecuteActivity(bctx, w.executor.ScrapePageContents, discovered.NewPageIDs).Get(bctx, &scraped); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to scrape discovered pages"), zap.Error(err))
		return nil, err
	}
	warnings = append(warnings, failureWarnings("fetching page", scraped.Failed)...)

	// Step 3: Classify them
	var classified *extraction.ClassifyResult
	if err := workflow.ExecuteActivity(bctx, w.executor.ClassifyPages, discovered.NewPageIDs).Get(bctx, &classified); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to classify discovered pages"), zap.Error(err))
		return nil, err
	}
	warnings = append(warnings, failureWarnings("classifying page", classified.Failed)...)
	result.EventCandidates = classified.EventCandidates

	// Step 4: Hand event candidates over without waiting
	if len(classified.EventCandidates) > 0 {
		err := w.startChild(ctx, childWorkflowID(ctx, "scrape-and-extract"), 2*time.Hour, w.ScrapeAndExtract, classified.EventCandidates)
		if err != nil {
			logger.WarnWf(ctx, "Failed to start event extraction", zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("failed to start event extraction: %v", err))
		}
	}

	logger.InfoWf(ctx, "Link discovery completed",
		zap.Int("newPages", len(discovered.NewPageIDs)),
		zap.Int("eventCandidates", len(classified.EventCandidates)))

	result.Warnings = warnings
	return result, nil
}
