package seeder

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/messaging"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/uri"
)

// Input is the operator supplied description of a gallery
type Input struct {
	MainURL          string  `json:"main_url" binding:"required"`
	AboutURL         *string `json:"about_url,omitempty"`
	EventsURL        *string `json:"events_url,omitempty"`
	Name             *string `json:"name,omitempty"`
	Address          *string `json:"address,omitempty"`
	Instagram        *string `json:"instagram,omitempty"`
	OpeningHoursText *string `json:"opening_hours_text,omitempty"`
}

// HasOpeningHoursText reports whether the operator supplied opening hours
func (i Input) HasOpeningHoursText() bool {
	return clean(i.OpeningHoursText) != nil
}

// Result identifies the seeded gallery and its seed pages
type Result struct {
	GalleryID uuid.UUID `json:"gallery_id"`
	// Created is true when the gallery did not exist before
	Created bool `json:"created"`
	// PageIDs are the seed pages, main first
	PageIDs []uuid.UUID `json:"page_ids"`
	// ListingURLs are the normalized seed URLs, used as discovery sources
	ListingURLs []string `json:"listing_urls"`
}

// Seeder registers galleries and their seed pages
//
//go:generate mockgen -source=seeder.go -destination=../mocks/seeder.go -package=mocks -mock_names=Seeder=MockSeeder
type Seeder interface {
	// Seed upserts the gallery keyed by its normalized main URL, writes the operator fields
	// and upserts one page per distinct seed URL. Re-seeding is idempotent.
	Seed(ctx context.Context, input Input) (*Result, error)
}

type seeder struct {
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewSeeder creates a new gallery seeder
func NewSeeder(store store.Store, publisher messaging.Publisher, clock adapter.Clock) Seeder {
	return &seeder{
		store:     store,
		publisher: publisher,
		clock:     clock,
	}
}

type seedURL struct {
	raw        string
	normalized string
	kind       domain.PageKind
}

// clean trims s and returns nil for blank values
func clean(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *seeder) Seed(ctx context.Context, input Input) (*Result, error) {
	normalizedMain, err := uri.Normalize(input.MainURL)
	if err != nil {
		return nil, fmt.Errorf("invalid main URL: %w", err)
	}

	seeds := []seedURL{{raw: strings.TrimSpace(input.MainURL), normalized: normalizedMain, kind: domain.PageKindGalleryMain}}
	optional := []struct {
		raw  *string
		kind domain.PageKind
		name string
	}{
		{input.AboutURL, domain.PageKindGalleryAbout, "about"},
		{input.EventsURL, domain.PageKindEventList, "events"},
	}
	for _, o := range optional {
		raw := clean(o.raw)
		if raw == nil {
			continue
		}
		normalized, err := uri.Normalize(*raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s URL: %w", o.name, err)
		}
		seeds = append(seeds, seedURL{raw: *raw, normalized: normalized, kind: o.kind})
	}

	var aboutURL, eventsURL *string
	for _, seed := range seeds[1:] {
		u := seed.raw
		switch seed.kind {
		case domain.PageKindGalleryAbout:
			aboutURL = &u
		case domain.PageKindEventList:
			eventsURL = &u
		}
	}

	gallery, created, err := s.store.UpsertGallery(ctx, store.UpsertGalleryInput{
		MainURL:           seeds[0].raw,
		AboutURL:          aboutURL,
		EventsURL:         eventsURL,
		NormalizedMainURL: normalizedMain,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert gallery: %w", err)
	}

	info := store.GalleryInfoInput{
		GalleryID:        gallery.ID,
		Name:             clean(input.Name),
		Address:          clean(input.Address),
		Instagram:        clean(input.Instagram),
		OpeningHoursText: clean(input.OpeningHoursText),
	}
	if err := s.store.UpsertGalleryInfo(ctx, info); err != nil {
		return nil, fmt.Errorf("failed to upsert gallery info: %w", err)
	}

	result := &Result{
		GalleryID:   gallery.ID,
		Created:     created,
		PageIDs:     []uuid.UUID{},
		ListingURLs: []string{},
	}
	seen := make(map[string]struct{}, len(seeds))
	for _, seed := range seeds {
		if _, ok := seen[seed.normalized]; ok {
			continue
		}
		seen[seed.normalized] = struct{}{}

		galleryID := gallery.ID
		page, err := s.store.UpsertPage(ctx, store.CreatePageInput{
			GalleryID:     &galleryID,
			URL:           seed.raw,
			NormalizedURL: seed.normalized,
			Kind:          seed.kind,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upsert %s page: %w", seed.kind, err)
		}
		result.PageIDs = append(result.PageIDs, page.ID)
		result.ListingURLs = append(result.ListingURLs, seed.normalized)
	}

	logger.InfoCtx(ctx, "Seeded gallery",
		zap.String("galleryID", gallery.ID.String()),
		zap.String("mainURL", normalizedMain),
		zap.Bool("created", created),
		zap.Int("pages", len(result.PageIDs)))

	notification := messaging.NewNotification(
		domain.NotificationGallerySeeded,
		[]uuid.UUID{gallery.ID},
		map[string]string{"main_url": normalizedMain},
		s.clock.Now(),
	)
	if err := s.publisher.PublishNotification(ctx, notification); err != nil {
		logger.WarnCtx(ctx, "Failed to publish gallery seeded notification",
			zap.String("galleryID", gallery.ID.String()),
			zap.Error(err))
	}

	return result, nil
}
