package store

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func strPtr(s string) *string {
	return &s
}

// seedTestGallery creates a gallery with the given main URL
func seedTestGallery(t *testing.T, store Store, mainURL string) *schema.Gallery {
	t.Helper()
	gallery, _, err := store.UpsertGallery(context.Background(), UpsertGalleryInput{
		MainURL:           mainURL,
		NormalizedMainURL: mainURL,
	})
	require.NoError(t, err)
	require.NotNil(t, gallery)
	return gallery
}

// seedTestPage registers a page owned by galleryID
func seedTestPage(t *testing.T, store Store, galleryID uuid.UUID, url string, kind domain.PageKind) *schema.Page {
	t.Helper()
	page, created, err := store.CreatePageIfAbsent(context.Background(), CreatePageInput{
		GalleryID:     &galleryID,
		URL:           url,
		NormalizedURL: url,
		Kind:          kind,
	})
	require.NoError(t, err)
	require.True(t, created)
	return page
}

func buildTestEventInput(pageID, galleryID uuid.UUID, title string) UpsertEventInput {
	amount := 15.0
	return UpsertEventInput{
		PageID:    pageID,
		GalleryID: galleryID,
		Title:     title,
		StartAt:   time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC),
		Timezone:  "Asia/Taipei",
		Status:    domain.EventStatusScheduled,
		TicketURL: strPtr("https://acme-gallery.com/tickets"),
		Info: EventInfoInput{
			Description: strPtr("A group show"),
			Artists:     []string{"Ada", "Grace"},
			Tags:        []string{"painting"},
			Images:      []string{"https://acme-gallery.com/a.jpg"},
			Prices:      []domain.Price{{Label: strPtr("General"), Amount: &amount, Currency: strPtr("TWD")}},
		},
	}
}

// =============================================================================
// Galleries
// =============================================================================

func testUpsertGallery(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("creates then updates the same gallery", func(t *testing.T) {
		first, created, err := store.UpsertGallery(ctx, UpsertGalleryInput{
			MainURL:           "https://Acme-Gallery.com/",
			AboutURL:          strPtr("https://acme-gallery.com/about"),
			NormalizedMainURL: "https://acme-gallery.com",
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, uuid.Nil, first.ID)

		second, created, err := store.UpsertGallery(ctx, UpsertGalleryInput{
			MainURL:           "http://www.acme-gallery.com",
			EventsURL:         strPtr("https://acme-gallery.com/events"),
			NormalizedMainURL: "https://acme-gallery.com",
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "http://www.acme-gallery.com", second.MainURL)
		require.NotNil(t, second.AboutURL, "about url must survive a re-seed without one")
		assert.Equal(t, "https://acme-gallery.com/about", *second.AboutURL)
		require.NotNil(t, second.EventsURL)
		assert.Equal(t, "https://acme-gallery.com/events", *second.EventsURL)
	})

	t.Run("lookup by id and normalized url", func(t *testing.T) {
		gallery := seedTestGallery(t, store, "https://lookup.example")

		byID, err := store.GetGalleryByID(ctx, gallery.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, gallery.NormalizedMainURL, byID.NormalizedMainURL)

		byURL, err := store.GetGalleryByNormalizedURL(ctx, "https://lookup.example")
		require.NoError(t, err)
		require.NotNil(t, byURL)
		assert.Equal(t, gallery.ID, byURL.ID)
	})

	t.Run("missing gallery returns nil", func(t *testing.T) {
		gallery, err := store.GetGalleryByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, gallery)

		gallery, err = store.GetGalleryByNormalizedURL(ctx, "https://nowhere.example")
		require.NoError(t, err)
		assert.Nil(t, gallery)
	})
}

func testGalleryInfo(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://info.example")

	t.Run("operator values overwrite and nil keeps", func(t *testing.T) {
		require.NoError(t, store.UpsertGalleryInfo(ctx, GalleryInfoInput{
			GalleryID: gallery.ID,
			Name:      strPtr("Info Gallery"),
			Address:   strPtr("1 Main St"),
		}))
		require.NoError(t, store.UpsertGalleryInfo(ctx, GalleryInfoInput{
			GalleryID: gallery.ID,
			Instagram: strPtr("@info"),
		}))

		info, err := store.GetGalleryInfo(ctx, gallery.ID)
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, "Info Gallery", *info.Name)
		assert.Equal(t, "1 Main St", *info.Address)
		assert.Equal(t, "@info", *info.Instagram)
		assert.Empty(t, info.Tags)
		assert.Nil(t, info.ExtractedAt)
	})

	t.Run("fill only sets empty fields and stamps extracted_at once", func(t *testing.T) {
		firstExtraction := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, store.FillGalleryInfo(ctx, GalleryInfoInput{
			GalleryID: gallery.ID,
			Name:      strPtr("Extracted Name"),
			About:     strPtr("A contemporary space"),
			Tags:      []string{"contemporary", "photography"},
		}, firstExtraction))

		require.NoError(t, store.FillGalleryInfo(ctx, GalleryInfoInput{
			GalleryID: gallery.ID,
			About:     strPtr("Should not replace"),
			Tags:      []string{"ignored"},
		}, firstExtraction.Add(time.Hour)))

		info, err := store.GetGalleryInfo(ctx, gallery.ID)
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, "Info Gallery", *info.Name, "operator name wins over extraction")
		assert.Equal(t, "A contemporary space", *info.About)
		assert.Equal(t, []string{"contemporary", "photography"}, []string(info.Tags))
		require.NotNil(t, info.ExtractedAt)
		assert.True(t, firstExtraction.Equal(*info.ExtractedAt))
	})

	t.Run("missing info returns nil", func(t *testing.T) {
		info, err := store.GetGalleryInfo(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, info)
	})
}

func testGalleryHours(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://hours.example")

	require.NoError(t, store.ReplaceGalleryHours(ctx, gallery.ID, []GalleryHoursInput{
		{Weekday: 2, OpenMinute: 660, CloseMinute: 1140},
		{Weekday: 1, OpenMinute: 600, CloseMinute: 1080},
	}))

	hours, err := store.GetGalleryHours(ctx, gallery.ID)
	require.NoError(t, err)
	require.Len(t, hours, 2)
	assert.Equal(t, 1, hours[0].Weekday)
	assert.Equal(t, 600, hours[0].OpenMinute)
	assert.Equal(t, 2, hours[1].Weekday)

	// replacing drops the previous rows
	require.NoError(t, store.ReplaceGalleryHours(ctx, gallery.ID, []GalleryHoursInput{
		{Weekday: 6, OpenMinute: 720, CloseMinute: 1020},
	}))
	hours, err = store.GetGalleryHours(ctx, gallery.ID)
	require.NoError(t, err)
	require.Len(t, hours, 1)
	assert.Equal(t, 6, hours[0].Weekday)

	require.NoError(t, store.ReplaceGalleryHours(ctx, gallery.ID, nil))
	hours, err = store.GetGalleryHours(ctx, gallery.ID)
	require.NoError(t, err)
	assert.Empty(t, hours)
}

func testGalleryEmbedding(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://embedding.example")

	info, err := store.GetGalleryInfo(ctx, gallery.ID)
	require.NoError(t, err)
	assert.False(t, info.HasEmbedding())

	createdAt := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpdateGalleryEmbedding(ctx, gallery.ID, EmbeddingInput{
		Vector:    []float32{0.1, 0.2, 0.3},
		Model:     "text-embedding-3-small",
		CreatedAt: createdAt,
	}))

	info, err = store.GetGalleryInfo(ctx, gallery.ID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.True(t, info.HasEmbedding())
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, info.Embedding.Slice())
	assert.Equal(t, "text-embedding-3-small", *info.EmbeddingModel)
	assert.True(t, createdAt.Equal(*info.EmbeddingCreatedAt))
}

// =============================================================================
// Pages
// =============================================================================

func testCreatePageIfAbsent(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://pages.example")

	input := CreatePageInput{
		GalleryID:     &gallery.ID,
		URL:           "https://pages.example/events/1/",
		NormalizedURL: "https://pages.example/events/1",
		Kind:          domain.PageKindInit,
	}

	page, created, err := store.CreatePageIfAbsent(ctx, input)
	require.NoError(t, err)
	require.True(t, created)
	require.NotNil(t, page)
	assert.Equal(t, domain.FetchStatusNever, page.FetchStatus)

	// rediscovery of the same normalized url is a no-op
	again, created, err := store.CreatePageIfAbsent(ctx, input)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, again)

	pages, err := store.GetPagesByGalleryID(ctx, gallery.ID)
	require.NoError(t, err)
	assert.Len(t, pages, 1)
}

func testUpsertPage(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://upsert-page.example")

	discovered, created, err := store.CreatePageIfAbsent(ctx, CreatePageInput{
		URL:           "https://upsert-page.example/about",
		NormalizedURL: "https://upsert-page.example/about",
		Kind:          domain.PageKindInit,
	})
	require.NoError(t, err)
	require.True(t, created)
	assert.Nil(t, discovered.GalleryID)

	seeded, err := store.UpsertPage(ctx, CreatePageInput{
		GalleryID:     &gallery.ID,
		URL:           "https://upsert-page.example/about",
		NormalizedURL: "https://upsert-page.example/about",
		Kind:          domain.PageKindGalleryAbout,
	})
	require.NoError(t, err)
	assert.Equal(t, discovered.ID, seeded.ID)
	assert.Equal(t, domain.PageKindGalleryAbout, seeded.Kind)
	require.NotNil(t, seeded.GalleryID)
	assert.Equal(t, gallery.ID, *seeded.GalleryID)

	// upserting again keeps the single row
	again, err := store.UpsertPage(ctx, CreatePageInput{
		GalleryID:     &gallery.ID,
		URL:           "https://upsert-page.example/about",
		NormalizedURL: "https://upsert-page.example/about",
		Kind:          domain.PageKindGalleryAbout,
	})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, again.ID)

	pages, err := store.GetPagesByGalleryID(ctx, gallery.ID, domain.PageKindGalleryAbout)
	require.NoError(t, err)
	assert.Len(t, pages, 1)

	pages, err = store.GetPagesByGalleryID(ctx, gallery.ID, domain.PageKindGalleryMain)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func testGetExistingNormalizedURLs(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://existing.example")
	seedTestPage(t, store, gallery.ID, "https://existing.example/a", domain.PageKindInit)
	seedTestPage(t, store, gallery.ID, "https://existing.example/b", domain.PageKindInit)

	existing, err := store.GetExistingNormalizedURLs(ctx, []string{
		"https://existing.example/a",
		"https://existing.example/c",
		"https://existing.example/b",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"https://existing.example/a", "https://existing.example/b"}, existing)

	existing, err = store.GetExistingNormalizedURLs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, existing)
}

func testPageKindAndFetchStatus(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://kinds.example")
	page := seedTestPage(t, store, gallery.ID, "https://kinds.example/show", domain.PageKindInit)

	changed, err := store.PromotePageKind(ctx, page.ID, domain.PageKindEventCandidate)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = store.PromotePageKind(ctx, page.ID, domain.PageKindEventDetail)
	require.NoError(t, err)
	assert.True(t, changed)

	// event_detail is final, promotion no longer applies
	changed, err = store.PromotePageKind(ctx, page.ID, domain.PageKindOther)
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, store.UpdatePageKind(ctx, page.ID, domain.PageKindEventList))

	fetchedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, store.UpdatePageFetchStatus(ctx, page.ID, domain.FetchStatusError, fetchedAt))

	reloaded, err := store.GetPageByID(ctx, page.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, domain.PageKindEventList, reloaded.Kind)
	assert.Equal(t, domain.FetchStatusError, reloaded.FetchStatus)
	require.NotNil(t, reloaded.FetchedAt)
	assert.True(t, fetchedAt.Equal(*reloaded.FetchedAt))

	missing, err := store.GetPageByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testGetPagesByIDs(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://by-ids.example")
	a := seedTestPage(t, store, gallery.ID, "https://by-ids.example/a", domain.PageKindInit)
	b := seedTestPage(t, store, gallery.ID, "https://by-ids.example/b", domain.PageKindInit)

	pages, err := store.GetPagesByIDs(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, pages, 2)

	ids := []uuid.UUID{pages[0].ID, pages[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, ids)

	pages, err = store.GetPagesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func testPendingPages(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://pending.example")
	never := seedTestPage(t, store, gallery.ID, "https://pending.example/never", domain.PageKindInit)
	fetched := seedTestPage(t, store, gallery.ID, "https://pending.example/fetched", domain.PageKindEventCandidate)
	empty := seedTestPage(t, store, gallery.ID, "https://pending.example/empty", domain.PageKindInit)
	extracted := seedTestPage(t, store, gallery.ID, "https://pending.example/extracted", domain.PageKindInit)
	stuck := seedTestPage(t, store, gallery.ID, "https://pending.example/stuck", domain.PageKindEventCandidate)

	now := time.Now().UTC()
	for _, p := range []*schema.Page{fetched, empty, extracted, stuck} {
		require.NoError(t, store.UpdatePageFetchStatus(ctx, p.ID, domain.FetchStatusOK, now))
	}
	require.NoError(t, store.SavePageContent(ctx, SavePageContentInput{PageID: fetched.ID, Markdown: strPtr("# Show"), ParsedAt: now}))
	require.NoError(t, store.SavePageContent(ctx, SavePageContentInput{PageID: empty.ID, Markdown: nil, ParsedAt: now}))
	require.NoError(t, store.SavePageContent(ctx, SavePageContentInput{PageID: extracted.ID, Markdown: strPtr("# Done"), ParsedAt: now}))
	require.NoError(t, store.SavePageContent(ctx, SavePageContentInput{PageID: stuck.ID, Markdown: strPtr("# Stuck"), ParsedAt: now}))
	require.NoError(t, store.MarkPagesQueued(ctx, []uuid.UUID{stuck.ID}))
	require.NoError(t, store.SavePageStructured(ctx, SavePageStructuredInput{
		PageID:      extracted.ID,
		ParseStatus: domain.ParseStatusOK,
		ParsedAt:    &now,
	}))

	pendingFetch, err := store.GetPagesPendingFetch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pendingFetch, 1)
	assert.Equal(t, never.ID, pendingFetch[0].ID)

	// a recently queued page is still in flight
	pendingExtraction, err := store.GetPagesPendingExtraction(ctx, 10, now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, pendingExtraction, 1)
	assert.Equal(t, fetched.ID, pendingExtraction[0].ID)

	// once the queued row is older than the cutoff it is picked up again
	pendingExtraction, err = store.GetPagesPendingExtraction(ctx, 10, now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, pendingExtraction, 2)
	assert.ElementsMatch(t, []uuid.UUID{fetched.ID, stuck.ID}, []uuid.UUID{pendingExtraction[0].ID, pendingExtraction[1].ID})
}

// =============================================================================
// Page content
// =============================================================================

func testPageContent(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://content.example")
	page := seedTestPage(t, store, gallery.ID, "https://content.example/a", domain.PageKindGalleryMain)
	other := seedTestPage(t, store, gallery.ID, "https://content.example/b", domain.PageKindGalleryAbout)

	parsedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SavePageContent(ctx, SavePageContentInput{
		PageID:      page.ID,
		Markdown:    strPtr("# Hello"),
		ContentHash: strPtr("abc"),
		ParsedAt:    parsedAt,
	}))

	// a later fetch with no markdown still overwrites, keeping the row
	require.NoError(t, store.SavePageContent(ctx, SavePageContentInput{
		PageID:   page.ID,
		ParsedAt: parsedAt.Add(time.Hour),
	}))

	content, err := store.GetPageContent(ctx, page.ID)
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Nil(t, content.Markdown)
	assert.Nil(t, content.ContentHash)
	assert.True(t, parsedAt.Add(time.Hour).Equal(content.ParsedAt))

	contents, err := store.GetPageContents(ctx, []uuid.UUID{page.ID, other.ID})
	require.NoError(t, err)
	assert.Len(t, contents, 1)

	missing, err := store.GetPageContent(ctx, other.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testPageStructured(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://structured.example")
	page := seedTestPage(t, store, gallery.ID, "https://structured.example/show", domain.PageKindEventCandidate)

	require.NoError(t, store.MarkPagesQueued(ctx, []uuid.UUID{page.ID, page.ID}))
	structured, err := store.GetPageStructured(ctx, page.ID)
	require.NoError(t, err)
	require.NotNil(t, structured)
	assert.Equal(t, domain.ParseStatusQueued, structured.ParseStatus)

	payload, err := json.Marshal(domain.EventPayload{Title: "Opening"})
	require.NoError(t, err)
	kind := domain.PageKindEventDetail
	now := time.Now().UTC()
	require.NoError(t, store.SavePageStructured(ctx, SavePageStructuredInput{
		PageID:            page.ID,
		ParseStatus:       domain.ParseStatusOK,
		ExtractedPageKind: &kind,
		Payload:           payload,
		PayloadHash:       strPtr("hash"),
		ParsedAt:          &now,
	}))

	structured, err = store.GetPageStructured(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ParseStatusOK, structured.ParseStatus)
	require.NotNil(t, structured.ExtractedPageKind)
	assert.Equal(t, domain.PageKindEventDetail, *structured.ExtractedPageKind)
	assert.JSONEq(t, string(payload), string(structured.Payload))
	assert.Nil(t, structured.ExtractionError)

	// a failed re-extraction replaces the payload
	require.NoError(t, store.SavePageStructured(ctx, SavePageStructuredInput{
		PageID:          page.ID,
		ParseStatus:     domain.ParseStatusError,
		ExtractionError: strPtr(domain.NO_MARKDOWN_REASON),
		ParsedAt:        &now,
	}))
	rows, err := store.GetPageStructuredByPageIDs(ctx, []uuid.UUID{page.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ParseStatusError, rows[0].ParseStatus)
	assert.Nil(t, rows[0].ExtractedPageKind)
	assert.Empty(t, rows[0].Payload)
	assert.Equal(t, domain.NO_MARKDOWN_REASON, *rows[0].ExtractionError)
}

// =============================================================================
// Events
// =============================================================================

func testUpsertEvent(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://events.example")
	page := seedTestPage(t, store, gallery.ID, "https://events.example/show", domain.PageKindEventDetail)

	first, created, err := store.UpsertEvent(ctx, buildTestEventInput(page.ID, gallery.ID, "Spring Show"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Spring Show", first.Title)

	info, err := store.GetEventInfo(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, []string{"Ada", "Grace"}, []string(info.Artists))
	require.Len(t, info.Prices, 1)
	assert.Equal(t, 15.0, *info.Prices[0].Amount)

	// re-extraction of the same page updates in place
	input := buildTestEventInput(page.ID, gallery.ID, "Spring Show (extended)")
	input.Status = domain.EventStatusPostponed
	input.Info.Artists = nil
	second, created, err := store.UpsertEvent(ctx, input)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Spring Show (extended)", second.Title)
	assert.Equal(t, domain.EventStatusPostponed, second.Status)

	info, err = store.GetEventInfo(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, info.Artists)

	events, err := store.GetEventsByPageIDs(ctx, []uuid.UUID{page.ID})
	require.NoError(t, err)
	assert.Len(t, events, 1, "a page never has more than one event")

	byPage, err := store.GetEventByPageID(ctx, page.ID)
	require.NoError(t, err)
	require.NotNil(t, byPage)
	assert.Equal(t, first.ID, byPage.ID)

	byID, err := store.GetEventByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Asia/Taipei", byID.Timezone)

	missing, err := store.GetEventByPageID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testEventEmbedding(t *testing.T, store Store) {
	ctx := context.Background()
	gallery := seedTestGallery(t, store, "https://event-embedding.example")
	page := seedTestPage(t, store, gallery.ID, "https://event-embedding.example/show", domain.PageKindEventDetail)
	event, _, err := store.UpsertEvent(ctx, buildTestEventInput(page.ID, gallery.ID, "Embedded"))
	require.NoError(t, err)

	require.NoError(t, store.UpdateEventEmbedding(ctx, event.ID, EmbeddingInput{
		Vector:    []float32{1, 0, 0, 1},
		Model:     "text-embedding-3-small",
		CreatedAt: time.Now().UTC(),
	}))

	info, err := store.GetEventInfo(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, info.Embedding)
	assert.Equal(t, []float32{1, 0, 0, 1}, info.Embedding.Slice())
	assert.Equal(t, "A group show", *info.Description, "embedding must not clear descriptive fields")
}

// =============================================================================
// Pipeline runs
// =============================================================================

func testPipelineRuns(t *testing.T, store Store) {
	ctx := context.Background()
	workflowID := fmt.Sprintf("scrape-and-extract-%s", uuid.NewString())

	require.NoError(t, store.CreatePipelineRun(ctx, CreatePipelineRunInput{
		WorkflowID:    workflowID,
		WorkflowRunID: "run-1",
		Pipeline:      domain.PipelineScrapeAndExtract,
		Input:         []byte(`{"page_ids":[]}`),
		StartedAt:     time.Now().UTC(),
	}))

	run, err := store.GetPipelineRunByWorkflowID(ctx, workflowID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, schema.PipelineRunStatusRunning, run.Status)
	assert.Equal(t, string(domain.PipelineScrapeAndExtract), run.Pipeline)

	require.NoError(t, store.CompletePipelineRun(ctx, CompletePipelineRunInput{
		WorkflowID:  workflowID,
		Status:      schema.PipelineRunStatusFailed,
		Warnings:    []string{"page x: fetch failed"},
		Error:       strPtr("markdown never appeared"),
		CompletedAt: time.Now().UTC(),
	}))

	run, err = store.GetPipelineRunByWorkflowID(ctx, workflowID)
	require.NoError(t, err)
	assert.Equal(t, schema.PipelineRunStatusFailed, run.Status)
	assert.Equal(t, []string{"page x: fetch failed"}, []string(run.Warnings))
	require.NotNil(t, run.CompletedAt)

	// re-running under the same workflow id resets the record
	require.NoError(t, store.CreatePipelineRun(ctx, CreatePipelineRunInput{
		WorkflowID:    workflowID,
		WorkflowRunID: "run-2",
		Pipeline:      domain.PipelineScrapeAndExtract,
		StartedAt:     time.Now().UTC(),
	}))
	run, err = store.GetPipelineRunByWorkflowID(ctx, workflowID)
	require.NoError(t, err)
	assert.Equal(t, "run-2", run.WorkflowRunID)
	assert.Equal(t, schema.PipelineRunStatusRunning, run.Status)
	assert.Nil(t, run.Error)
	assert.Nil(t, run.CompletedAt)
	assert.Empty(t, run.Warnings)

	err = store.CompletePipelineRun(ctx, CompletePipelineRunInput{
		WorkflowID:  "unknown-workflow",
		Status:      schema.PipelineRunStatusCompleted,
		CompletedAt: time.Now().UTC(),
	})
	assert.Error(t, err)

	missing, err := store.GetPipelineRunByWorkflowID(ctx, "unknown-workflow")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// RunStoreTests runs every store test against the given implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"UpsertGallery", testUpsertGallery},
		{"GalleryInfo", testGalleryInfo},
		{"GalleryHours", testGalleryHours},
		{"GalleryEmbedding", testGalleryEmbedding},
		{"CreatePageIfAbsent", testCreatePageIfAbsent},
		{"UpsertPage", testUpsertPage},
		{"GetExistingNormalizedURLs", testGetExistingNormalizedURLs},
		{"PageKindAndFetchStatus", testPageKindAndFetchStatus},
		{"GetPagesByIDs", testGetPagesByIDs},
		{"PendingPages", testPendingPages},
		{"PageContent", testPageContent},
		{"PageStructured", testPageStructured},
		{"UpsertEvent", testUpsertEvent},
		{"EventEmbedding", testEventEmbedding},
		{"PipelineRuns", testPipelineRuns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 20, open)
	assert.Equal(t, 5, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(4, 10, time.Minute, time.Minute)
	assert.Equal(t, 4, open)
	assert.Equal(t, 4, idle)
}
