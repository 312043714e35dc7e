package seeder_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/mocks"
	"github.com/feral-file/ff-gallery-indexer/internal/seeder"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

type testSeederMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	seeder    seeder.Seeder
}

func setupTestSeeder(t *testing.T) *testSeederMocks {
	ctrl := gomock.NewController(t)
	tm := &testSeederMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)).AnyTimes()
	tm.seeder = seeder.NewSeeder(tm.store, tm.publisher, tm.clock)
	return tm
}

func strPtr(s string) *string {
	return &s
}

// expectPageUpserts returns a fresh page for every upsert and records the inputs
func expectPageUpserts(tm *testSeederMocks, inputs *[]store.CreatePageInput) {
	tm.store.EXPECT().
		UpsertPage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreatePageInput) (*schema.Page, error) {
			*inputs = append(*inputs, input)
			return &schema.Page{ID: uuid.New(), NormalizedURL: input.NormalizedURL, Kind: input.Kind}, nil
		}).
		AnyTimes()
}

func TestSeeder_Seed_MainOnly(t *testing.T) {
	tm := setupTestSeeder(t)
	ctx := context.Background()
	galleryID := uuid.New()

	tm.store.EXPECT().
		UpsertGallery(ctx, store.UpsertGalleryInput{
			MainURL:           "https://acme-gallery.com",
			NormalizedMainURL: "https://acme-gallery.com",
		}).
		Return(&schema.Gallery{ID: galleryID}, true, nil)
	tm.store.EXPECT().UpsertGalleryInfo(ctx, store.GalleryInfoInput{GalleryID: galleryID}).Return(nil)

	var pages []store.CreatePageInput
	expectPageUpserts(tm, &pages)

	tm.publisher.EXPECT().
		PublishNotification(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, n *domain.Notification) error {
			assert.Equal(t, domain.NotificationGallerySeeded, n.Type)
			assert.Equal(t, []uuid.UUID{galleryID}, n.SubjectIDs)
			return nil
		})

	result, err := tm.seeder.Seed(ctx, seeder.Input{MainURL: "https://acme-gallery.com"})
	require.NoError(t, err)

	assert.Equal(t, galleryID, result.GalleryID)
	assert.True(t, result.Created)
	require.Len(t, pages, 1)
	assert.Equal(t, domain.PageKindGalleryMain, pages[0].Kind)
	assert.Equal(t, galleryID, *pages[0].GalleryID)
	assert.Len(t, result.PageIDs, 1)
	assert.Equal(t, []string{"https://acme-gallery.com"}, result.ListingURLs)
}

func TestSeeder_Seed_AllURLs(t *testing.T) {
	tm := setupTestSeeder(t)
	ctx := context.Background()
	galleryID := uuid.New()

	tm.store.EXPECT().
		UpsertGallery(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.UpsertGalleryInput) (*schema.Gallery, bool, error) {
			assert.Equal(t, "http://www.Gallery.example/", input.MainURL)
			assert.Equal(t, "https://gallery.example", input.NormalizedMainURL)
			assert.Equal(t, "gallery.example/about", *input.AboutURL)
			assert.Equal(t, "https://gallery.example/events?utm_source=x", *input.EventsURL)
			return &schema.Gallery{ID: galleryID}, false, nil
		})
	tm.store.EXPECT().
		UpsertGalleryInfo(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.GalleryInfoInput) error {
			assert.Equal(t, "Acme", *input.Name)
			assert.Nil(t, input.Address)
			assert.Equal(t, "Tue-Sun 11-19", *input.OpeningHoursText)
			return nil
		})

	var pages []store.CreatePageInput
	expectPageUpserts(tm, &pages)
	tm.publisher.EXPECT().PublishNotification(ctx, gomock.Any()).Return(nil)

	result, err := tm.seeder.Seed(ctx, seeder.Input{
		MainURL:          "http://www.Gallery.example/",
		AboutURL:         strPtr("gallery.example/about"),
		EventsURL:        strPtr("https://gallery.example/events?utm_source=x"),
		Name:             strPtr(" Acme "),
		Address:          strPtr("   "),
		OpeningHoursText: strPtr("Tue-Sun 11-19"),
	})
	require.NoError(t, err)
	assert.False(t, result.Created)

	require.Len(t, pages, 3)
	assert.Equal(t, domain.PageKindGalleryMain, pages[0].Kind)
	assert.Equal(t, "https://gallery.example/about", pages[1].NormalizedURL)
	assert.Equal(t, domain.PageKindGalleryAbout, pages[1].Kind)
	assert.Equal(t, "https://gallery.example/events", pages[2].NormalizedURL)
	assert.Equal(t, domain.PageKindEventList, pages[2].Kind)
	assert.Equal(t, []string{
		"https://gallery.example",
		"https://gallery.example/about",
		"https://gallery.example/events",
	}, result.ListingURLs)
}

func TestSeeder_Seed_DuplicateSeedURLs(t *testing.T) {
	tm := setupTestSeeder(t)
	ctx := context.Background()
	galleryID := uuid.New()

	tm.store.EXPECT().UpsertGallery(ctx, gomock.Any()).Return(&schema.Gallery{ID: galleryID}, true, nil)
	tm.store.EXPECT().UpsertGalleryInfo(ctx, gomock.Any()).Return(nil)

	var pages []store.CreatePageInput
	expectPageUpserts(tm, &pages)
	tm.publisher.EXPECT().PublishNotification(ctx, gomock.Any()).Return(nil)

	result, err := tm.seeder.Seed(ctx, seeder.Input{
		MainURL:   "https://gallery.example",
		EventsURL: strPtr("https://www.gallery.example/"),
	})
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, domain.PageKindGalleryMain, pages[0].Kind)
	assert.Len(t, result.PageIDs, 1)
}

func TestSeeder_Seed_InvalidURLs(t *testing.T) {
	ctx := context.Background()

	t.Run("main", func(t *testing.T) {
		tm := setupTestSeeder(t)
		_, err := tm.seeder.Seed(ctx, seeder.Input{MainURL: ""})
		assert.ErrorIs(t, err, domain.ErrMalformedURL)
	})

	t.Run("about", func(t *testing.T) {
		tm := setupTestSeeder(t)
		_, err := tm.seeder.Seed(ctx, seeder.Input{MainURL: "https://gallery.example", AboutURL: strPtr("ftp://gallery.example/about")})
		assert.ErrorIs(t, err, domain.ErrMalformedURL)
	})
}

func TestSeeder_Seed_PublishFailureIsNotFatal(t *testing.T) {
	tm := setupTestSeeder(t)
	ctx := context.Background()

	tm.store.EXPECT().UpsertGallery(ctx, gomock.Any()).Return(&schema.Gallery{ID: uuid.New()}, true, nil)
	tm.store.EXPECT().UpsertGalleryInfo(ctx, gomock.Any()).Return(nil)
	var pages []store.CreatePageInput
	expectPageUpserts(tm, &pages)
	tm.publisher.EXPECT().PublishNotification(ctx, gomock.Any()).Return(errors.New("nats: timeout"))

	_, err := tm.seeder.Seed(ctx, seeder.Input{MainURL: "https://gallery.example"})
	assert.NoError(t, err)
}

func TestSeeder_Seed_StoreFailure(t *testing.T) {
	tm := setupTestSeeder(t)
	ctx := context.Background()

	tm.store.EXPECT().UpsertGallery(ctx, gomock.Any()).Return(nil, false, errors.New("connection refused"))

	_, err := tm.seeder.Seed(ctx, seeder.Input{MainURL: "https://gallery.example"})
	assert.Error(t, err)
}

func TestInput_HasOpeningHoursText(t *testing.T) {
	assert.False(t, seeder.Input{}.HasOpeningHoursText())
	assert.False(t, seeder.Input{OpeningHoursText: strPtr("  ")}.HasOpeningHoursText())
	assert.True(t, seeder.Input{OpeningHoursText: strPtr("Daily 10-18")}.HasOpeningHoursText())
}
