package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// idle connections can never exceed the open limit
	maxIdleConns = min(maxIdleConns, maxOpenConns)

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// provisionalKinds are the page kinds that extraction may overwrite
var provisionalKinds = []domain.PageKind{domain.PageKindInit, domain.PageKindEventCandidate}

// =============================================================================
// Galleries
// =============================================================================

// GetGalleryByID retrieves a gallery by its ID
func (s *pgStore) GetGalleryByID(ctx context.Context, id uuid.UUID) (*schema.Gallery, error) {
	var gallery schema.Gallery
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&gallery).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	return &gallery, nil
}

// GetGalleryByNormalizedURL retrieves a gallery by its normalized main URL
func (s *pgStore) GetGalleryByNormalizedURL(ctx context.Context, normalizedURL string) (*schema.Gallery, error) {
	var gallery schema.Gallery
	err := s.db.WithContext(ctx).Where("normalized_main_url = ?", normalizedURL).First(&gallery).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get gallery by normalized url: %w", err)
	}
	return &gallery, nil
}

// UpsertGallery creates a gallery or updates the existing one keyed by normalized main URL.
// Optional URLs are only overwritten when a new value is supplied.
func (s *pgStore) UpsertGallery(ctx context.Context, input UpsertGalleryInput) (*schema.Gallery, bool, error) {
	var gallery schema.Gallery
	created := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&schema.Gallery{}).
			Where("normalized_main_url = ?", input.NormalizedMainURL).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing gallery: %w", err)
		}
		created = count == 0

		row := schema.Gallery{
			MainURL:           input.MainURL,
			AboutURL:          input.AboutURL,
			EventsURL:         input.EventsURL,
			NormalizedMainURL: input.NormalizedMainURL,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "normalized_main_url"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"main_url":   gorm.Expr("EXCLUDED.main_url"),
				"about_url":  gorm.Expr("COALESCE(EXCLUDED.about_url, galleries.about_url)"),
				"events_url": gorm.Expr("COALESCE(EXCLUDED.events_url, galleries.events_url)"),
				"updated_at": gorm.Expr("now()"),
			}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to upsert gallery: %w", err)
		}

		if err := tx.Where("normalized_main_url = ?", input.NormalizedMainURL).First(&gallery).Error; err != nil {
			return fmt.Errorf("failed to reload gallery: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &gallery, created, nil
}

// galleryInfoRow converts an input into a row, leaving tags to the database default when empty
func galleryInfoRow(input GalleryInfoInput) schema.GalleryInfo {
	row := schema.GalleryInfo{
		GalleryID:        input.GalleryID,
		Name:             input.Name,
		About:            input.About,
		Address:          input.Address,
		District:         input.District,
		Instagram:        input.Instagram,
		Email:            input.Email,
		Phone:            input.Phone,
		Website:          input.Website,
		OpeningHoursText: input.OpeningHoursText,
	}
	if len(input.Tags) > 0 {
		row.Tags = datatypes.NewJSONSlice(input.Tags)
	}
	return row
}

var galleryInfoTextColumns = []string{
	"name", "about", "address", "district", "instagram", "email", "phone", "website", "opening_hours_text",
}

// UpsertGalleryInfo writes the supplied fields, keeping stored values for nil fields
func (s *pgStore) UpsertGalleryInfo(ctx context.Context, input GalleryInfoInput) error {
	assignments := map[string]interface{}{
		"tags":       gorm.Expr("CASE WHEN jsonb_array_length(EXCLUDED.tags) > 0 THEN EXCLUDED.tags ELSE gallery_info.tags END"),
		"updated_at": gorm.Expr("now()"),
	}
	for _, col := range galleryInfoTextColumns {
		assignments[col] = gorm.Expr(fmt.Sprintf("COALESCE(EXCLUDED.%s, gallery_info.%s)", col, col))
	}

	row := galleryInfoRow(input)
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "gallery_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert gallery info: %w", err)
	}

	return nil
}

// FillGalleryInfo writes the supplied fields only where the stored value is empty
func (s *pgStore) FillGalleryInfo(ctx context.Context, input GalleryInfoInput, extractedAt time.Time) error {
	assignments := map[string]interface{}{
		"tags":         gorm.Expr("CASE WHEN jsonb_array_length(gallery_info.tags) = 0 THEN EXCLUDED.tags ELSE gallery_info.tags END"),
		"extracted_at": gorm.Expr("COALESCE(gallery_info.extracted_at, EXCLUDED.extracted_at)"),
		"updated_at":   gorm.Expr("now()"),
	}
	for _, col := range galleryInfoTextColumns {
		assignments[col] = gorm.Expr(fmt.Sprintf("COALESCE(NULLIF(gallery_info.%s, ''), EXCLUDED.%s)", col, col))
	}

	row := galleryInfoRow(input)
	row.ExtractedAt = &extractedAt
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "gallery_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to fill gallery info: %w", err)
	}

	return nil
}

// GetGalleryInfo retrieves the info row of a gallery
func (s *pgStore) GetGalleryInfo(ctx context.Context, galleryID uuid.UUID) (*schema.GalleryInfo, error) {
	var info schema.GalleryInfo
	err := s.db.WithContext(ctx).Where("gallery_id = ?", galleryID).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get gallery info: %w", err)
	}
	return &info, nil
}

// ReplaceGalleryHours replaces all opening hours of a gallery in one transaction
func (s *pgStore) ReplaceGalleryHours(ctx context.Context, galleryID uuid.UUID, hours []GalleryHoursInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gallery_id = ?", galleryID).Delete(&schema.GalleryHours{}).Error; err != nil {
			return fmt.Errorf("failed to delete gallery hours: %w", err)
		}

		if len(hours) == 0 {
			return nil
		}

		rows := make([]schema.GalleryHours, 0, len(hours))
		for _, h := range hours {
			rows = append(rows, schema.GalleryHours{
				GalleryID:   galleryID,
				Weekday:     h.Weekday,
				OpenMinute:  h.OpenMinute,
				CloseMinute: h.CloseMinute,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to create gallery hours: %w", err)
		}
		return nil
	})
}

// GetGalleryHours retrieves the opening hours of a gallery
func (s *pgStore) GetGalleryHours(ctx context.Context, galleryID uuid.UUID) ([]schema.GalleryHours, error) {
	var hours []schema.GalleryHours
	err := s.db.WithContext(ctx).
		Where("gallery_id = ?", galleryID).
		Order("weekday ASC, open_minute ASC").
		Find(&hours).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery hours: %w", err)
	}
	return hours, nil
}

// UpdateGalleryEmbedding stores the embedding of a gallery, creating the info row if needed
func (s *pgStore) UpdateGalleryEmbedding(ctx context.Context, galleryID uuid.UUID, input EmbeddingInput) error {
	vector := pgvector.NewVector(input.Vector)
	row := schema.GalleryInfo{
		GalleryID:          galleryID,
		Embedding:          &vector,
		EmbeddingModel:     &input.Model,
		EmbeddingCreatedAt: &input.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "gallery_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"embedding", "embedding_model", "embedding_created_at", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to update gallery embedding: %w", err)
	}
	return nil
}

// =============================================================================
// Pages
// =============================================================================

// UpsertPage creates a page or updates the kind of the existing one.
// An existing owner is never replaced.
func (s *pgStore) UpsertPage(ctx context.Context, input CreatePageInput) (*schema.Page, error) {
	var page schema.Page
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := schema.Page{
			GalleryID:     input.GalleryID,
			URL:           input.URL,
			NormalizedURL: input.NormalizedURL,
			Kind:          input.Kind,
			FetchStatus:   domain.FetchStatusNever,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "normalized_url"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"kind":       gorm.Expr("EXCLUDED.kind"),
				"gallery_id": gorm.Expr("COALESCE(pages.gallery_id, EXCLUDED.gallery_id)"),
				"updated_at": gorm.Expr("now()"),
			}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to upsert page: %w", err)
		}

		if err := tx.Where("normalized_url = ?", input.NormalizedURL).First(&page).Error; err != nil {
			return fmt.Errorf("failed to reload page: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePageIfAbsent inserts a page unless the normalized URL is already registered
func (s *pgStore) CreatePageIfAbsent(ctx context.Context, input CreatePageInput) (*schema.Page, bool, error) {
	page := schema.Page{
		GalleryID:     input.GalleryID,
		URL:           input.URL,
		NormalizedURL: input.NormalizedURL,
		Kind:          input.Kind,
		FetchStatus:   domain.FetchStatusNever,
	}

	// ON CONFLICT DO NOTHING makes re-discovery a no-op even under concurrent discoverers
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "normalized_url"}},
		DoNothing: true,
	}).Create(&page)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create page: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return &page, true, nil
}

// GetExistingNormalizedURLs returns the subset of normalized URLs already registered
func (s *pgStore) GetExistingNormalizedURLs(ctx context.Context, normalizedURLs []string) ([]string, error) {
	if len(normalizedURLs) == 0 {
		return []string{}, nil
	}

	var existing []string
	err := s.db.WithContext(ctx).
		Model(&schema.Page{}).
		Where("normalized_url IN ?", normalizedURLs).
		Pluck("normalized_url", &existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get existing normalized urls: %w", err)
	}
	return existing, nil
}

// GetPageByID retrieves a page by its ID
func (s *pgStore) GetPageByID(ctx context.Context, id uuid.UUID) (*schema.Page, error) {
	var page schema.Page
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return &page, nil
}

// GetPagesByIDs retrieves pages by their IDs
func (s *pgStore) GetPagesByIDs(ctx context.Context, ids []uuid.UUID) ([]schema.Page, error) {
	if len(ids) == 0 {
		return []schema.Page{}, nil
	}

	var pages []schema.Page
	err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&pages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pages: %w", err)
	}
	return pages, nil
}

// GetPagesByGalleryID retrieves the pages of a gallery, optionally filtered by kind
func (s *pgStore) GetPagesByGalleryID(ctx context.Context, galleryID uuid.UUID, kinds ...domain.PageKind) ([]schema.Page, error) {
	query := s.db.WithContext(ctx).Where("gallery_id = ?", galleryID)
	if len(kinds) > 0 {
		query = query.Where("kind IN ?", kinds)
	}

	var pages []schema.Page
	if err := query.Order("created_at ASC").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("failed to get pages by gallery: %w", err)
	}
	return pages, nil
}

// UpdatePageKind sets the kind of a page
func (s *pgStore) UpdatePageKind(ctx context.Context, pageID uuid.UUID, kind domain.PageKind) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Page{}).
		Where("id = ?", pageID).
		Updates(map[string]interface{}{
			"kind":       kind,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update page kind: %w", err)
	}
	return nil
}

// PromotePageKind sets the kind of a page while it is still provisional
func (s *pgStore) PromotePageKind(ctx context.Context, pageID uuid.UUID, kind domain.PageKind) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Page{}).
		Where("id = ? AND kind IN ?", pageID, provisionalKinds).
		Updates(map[string]interface{}{
			"kind":       kind,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to promote page kind: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// UpdatePageFetchStatus records the outcome of a fetch
func (s *pgStore) UpdatePageFetchStatus(ctx context.Context, pageID uuid.UUID, status domain.FetchStatus, fetchedAt time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Page{}).
		Where("id = ?", pageID).
		Updates(map[string]interface{}{
			"fetch_status": status,
			"fetched_at":   fetchedAt,
			"updated_at":   time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update page fetch status: %w", err)
	}
	return nil
}

// GetPagesPendingFetch retrieves pages that have never been fetched
func (s *pgStore) GetPagesPendingFetch(ctx context.Context, limit int) ([]schema.Page, error) {
	var pages []schema.Page
	err := s.db.WithContext(ctx).
		Where("fetch_status = ?", domain.FetchStatusNever).
		Order("created_at ASC").
		Limit(limit).
		Find(&pages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pages pending fetch: %w", err)
	}
	return pages, nil
}

// GetPagesPendingExtraction retrieves provisional pages that were fetched with markdown but never extracted,
// including pages whose extraction was queued before queuedBefore and never finished
func (s *pgStore) GetPagesPendingExtraction(ctx context.Context, limit int, queuedBefore time.Time) ([]schema.Page, error) {
	var pages []schema.Page
	err := s.db.WithContext(ctx).
		Model(&schema.Page{}).
		Select("pages.*").
		Joins("JOIN page_content ON page_content.page_id = pages.id").
		Joins("LEFT JOIN page_structured ON page_structured.page_id = pages.id").
		Where("pages.fetch_status = ?", domain.FetchStatusOK).
		Where("pages.kind IN ?", provisionalKinds).
		Where("page_content.markdown IS NOT NULL").
		Where("page_structured.page_id IS NULL OR page_structured.parse_status = ? OR (page_structured.parse_status = ? AND page_structured.updated_at < ?)",
			domain.ParseStatusNever, domain.ParseStatusQueued, queuedBefore).
		Order("pages.created_at ASC").
		Limit(limit).
		Find(&pages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pages pending extraction: %w", err)
	}
	return pages, nil
}

// =============================================================================
// Page content
// =============================================================================

// SavePageContent upserts the content of a page keyed by page id
func (s *pgStore) SavePageContent(ctx context.Context, input SavePageContentInput) error {
	row := schema.PageContent{
		PageID:      input.PageID,
		Markdown:    input.Markdown,
		ContentHash: input.ContentHash,
		ParsedAt:    input.ParsedAt,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"markdown", "content_hash", "parsed_at", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save page content: %w", err)
	}
	return nil
}

// GetPageContent retrieves the content of a page
func (s *pgStore) GetPageContent(ctx context.Context, pageID uuid.UUID) (*schema.PageContent, error) {
	var content schema.PageContent
	err := s.db.WithContext(ctx).Where("page_id = ?", pageID).First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get page content: %w", err)
	}
	return &content, nil
}

// GetPageContents retrieves the content rows that exist for the given pages
func (s *pgStore) GetPageContents(ctx context.Context, pageIDs []uuid.UUID) ([]schema.PageContent, error) {
	if len(pageIDs) == 0 {
		return []schema.PageContent{}, nil
	}

	var contents []schema.PageContent
	if err := s.db.WithContext(ctx).Where("page_id IN ?", pageIDs).Find(&contents).Error; err != nil {
		return nil, fmt.Errorf("failed to get page contents: %w", err)
	}
	return contents, nil
}

// MarkPagesQueued sets parse_status to queued, creating structured rows where missing
func (s *pgStore) MarkPagesQueued(ctx context.Context, pageIDs []uuid.UUID) error {
	if len(pageIDs) == 0 {
		return nil
	}

	// a single upsert statement cannot touch the same row twice
	ids := uniqueIDs(pageIDs)
	rows := make([]schema.PageStructured, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, schema.PageStructured{
			PageID:      id,
			ParseStatus: domain.ParseStatusQueued,
		})
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"parse_status", "updated_at"}),
	}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to mark pages queued: %w", err)
	}
	return nil
}

// SavePageStructured replaces the structured record of a page
func (s *pgStore) SavePageStructured(ctx context.Context, input SavePageStructuredInput) error {
	row := schema.PageStructured{
		PageID:            input.PageID,
		ParseStatus:       input.ParseStatus,
		ExtractedPageKind: input.ExtractedPageKind,
		Payload:           datatypes.JSON(input.Payload),
		PayloadHash:       input.PayloadHash,
		ExtractionError:   input.ExtractionError,
		ParsedAt:          input.ParsedAt,
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "page_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"parse_status",
			"extracted_page_kind",
			"payload",
			"payload_hash",
			"extraction_error",
			"parsed_at",
			"updated_at",
		}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save page structured: %w", err)
	}
	return nil
}

// GetPageStructured retrieves the structured record of a page
func (s *pgStore) GetPageStructured(ctx context.Context, pageID uuid.UUID) (*schema.PageStructured, error) {
	var structured schema.PageStructured
	err := s.db.WithContext(ctx).Where("page_id = ?", pageID).First(&structured).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get page structured: %w", err)
	}
	return &structured, nil
}

// GetPageStructuredByPageIDs retrieves the structured records that exist for the given pages
func (s *pgStore) GetPageStructuredByPageIDs(ctx context.Context, pageIDs []uuid.UUID) ([]schema.PageStructured, error) {
	if len(pageIDs) == 0 {
		return []schema.PageStructured{}, nil
	}

	var rows []schema.PageStructured
	if err := s.db.WithContext(ctx).Where("page_id IN ?", pageIDs).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get page structured rows: %w", err)
	}
	return rows, nil
}

// =============================================================================
// Events
// =============================================================================

// GetEventByID retrieves an event by its ID
func (s *pgStore) GetEventByID(ctx context.Context, id uuid.UUID) (*schema.Event, error) {
	var event schema.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// GetEventByPageID retrieves the event materialized from a page
func (s *pgStore) GetEventByPageID(ctx context.Context, pageID uuid.UUID) (*schema.Event, error) {
	var event schema.Event
	err := s.db.WithContext(ctx).Where("page_id = ?", pageID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event by page: %w", err)
	}
	return &event, nil
}

// GetEventsByPageIDs retrieves the events materialized from the given pages
func (s *pgStore) GetEventsByPageIDs(ctx context.Context, pageIDs []uuid.UUID) ([]schema.Event, error) {
	if len(pageIDs) == 0 {
		return []schema.Event{}, nil
	}

	var events []schema.Event
	if err := s.db.WithContext(ctx).Where("page_id IN ?", pageIDs).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get events by pages: %w", err)
	}
	return events, nil
}

// UpsertEvent inserts or updates the single event of a page together with its info row
func (s *pgStore) UpsertEvent(ctx context.Context, input UpsertEventInput) (*schema.Event, bool, error) {
	var event schema.Event
	created := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing schema.Event
		err := tx.Where("page_id = ?", input.PageID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := schema.Event{
				PageID:    input.PageID,
				GalleryID: input.GalleryID,
				Title:     input.Title,
				StartAt:   input.StartAt,
				EndAt:     input.EndAt,
				Timezone:  input.Timezone,
				Status:    input.Status,
				TicketURL: input.TicketURL,
			}
			// A concurrent materializer may have inserted the same page in between
			result := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "page_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"gallery_id", "title", "start_at", "end_at", "timezone", "status", "ticket_url", "updated_at",
				}),
			}).Create(&row)
			if result.Error != nil {
				return fmt.Errorf("failed to create event: %w", result.Error)
			}
			created = true
		case err != nil:
			return fmt.Errorf("failed to get existing event: %w", err)
		default:
			if err := tx.Model(&schema.Event{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"gallery_id": input.GalleryID,
					"title":      input.Title,
					"start_at":   input.StartAt,
					"end_at":     input.EndAt,
					"timezone":   input.Timezone,
					"status":     input.Status,
					"ticket_url": input.TicketURL,
					"updated_at": time.Now(),
				}).Error; err != nil {
				return fmt.Errorf("failed to update event: %w", err)
			}
		}

		if err := tx.Where("page_id = ?", input.PageID).First(&event).Error; err != nil {
			return fmt.Errorf("failed to reload event: %w", err)
		}

		info := schema.EventInfo{
			EventID:     event.ID,
			Description: input.Info.Description,
			Artists:     datatypes.NewJSONSlice(nonNil(input.Info.Artists)),
			Tags:        datatypes.NewJSONSlice(nonNil(input.Info.Tags)),
			Images:      datatypes.NewJSONSlice(nonNil(input.Info.Images)),
			Prices:      datatypes.NewJSONSlice(nonNil(input.Info.Prices)),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "artists", "tags", "images", "prices", "updated_at"}),
		}).Create(&info).Error; err != nil {
			return fmt.Errorf("failed to upsert event info: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &event, created, nil
}

// GetEventInfo retrieves the info row of an event
func (s *pgStore) GetEventInfo(ctx context.Context, eventID uuid.UUID) (*schema.EventInfo, error) {
	var info schema.EventInfo
	err := s.db.WithContext(ctx).Where("event_id = ?", eventID).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event info: %w", err)
	}
	return &info, nil
}

// UpdateEventEmbedding stores the embedding of an event, creating the info row if needed
func (s *pgStore) UpdateEventEmbedding(ctx context.Context, eventID uuid.UUID, input EmbeddingInput) error {
	vector := pgvector.NewVector(input.Vector)
	row := schema.EventInfo{
		EventID:            eventID,
		Embedding:          &vector,
		EmbeddingModel:     &input.Model,
		EmbeddingCreatedAt: &input.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"embedding", "embedding_model", "embedding_created_at", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to update event embedding: %w", err)
	}
	return nil
}

// =============================================================================
// Pipeline runs
// =============================================================================

// CreatePipelineRun records a running pipeline keyed by workflow ID
func (s *pgStore) CreatePipelineRun(ctx context.Context, input CreatePipelineRunInput) error {
	row := schema.PipelineRun{
		WorkflowID:    input.WorkflowID,
		WorkflowRunID: input.WorkflowRunID,
		Pipeline:      string(input.Pipeline),
		Status:        schema.PipelineRunStatusRunning,
		Input:         datatypes.JSON(input.Input),
		Warnings:      datatypes.NewJSONSlice([]string{}),
		StartedAt:     input.StartedAt,
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "workflow_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"workflow_run_id": gorm.Expr("EXCLUDED.workflow_run_id"),
			"pipeline":        gorm.Expr("EXCLUDED.pipeline"),
			"status":          gorm.Expr("EXCLUDED.status"),
			"input":           gorm.Expr("EXCLUDED.input"),
			"warnings":        gorm.Expr("EXCLUDED.warnings"),
			"error":           nil,
			"started_at":      gorm.Expr("EXCLUDED.started_at"),
			"completed_at":    nil,
		}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create pipeline run: %w", err)
	}
	return nil
}

// CompletePipelineRun records the terminal state of a pipeline run
func (s *pgStore) CompletePipelineRun(ctx context.Context, input CompletePipelineRunInput) error {
	result := s.db.WithContext(ctx).
		Model(&schema.PipelineRun{}).
		Where("workflow_id = ?", input.WorkflowID).
		Updates(map[string]interface{}{
			"status":       input.Status,
			"warnings":     datatypes.NewJSONSlice(nonNil(input.Warnings)),
			"error":        input.Error,
			"completed_at": input.CompletedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to complete pipeline run: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to complete pipeline run: workflow %s has no run record", input.WorkflowID)
	}
	return nil
}

// GetPipelineRunByWorkflowID retrieves a pipeline run by its workflow ID
func (s *pgStore) GetPipelineRunByWorkflowID(ctx context.Context, workflowID string) (*schema.PipelineRun, error) {
	var run schema.PipelineRun
	err := s.db.WithContext(ctx).Where("workflow_id = ?", workflowID).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pipeline run: %w", err)
	}
	return &run, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
