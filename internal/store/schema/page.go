package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
)

// Page represents the pages table - the registry of every discovered URL
type Page struct {
	// ID is the page identity
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	// GalleryID is the owning gallery, nil for standalone discovery
	GalleryID *uuid.UUID `gorm:"column:gallery_id;type:uuid;index"`
	// URL is the URL as it was found
	URL string `gorm:"column:url;not null;type:text"`
	// NormalizedURL is the globally unique dedup key
	NormalizedURL string `gorm:"column:normalized_url;not null;uniqueIndex;type:text"`
	// Kind is the role of the page (init, gallery_main, event_detail, ...)
	Kind domain.PageKind `gorm:"column:kind;not null;type:text;default:init"`
	// FetchStatus tracks whether raw content was retrieved
	FetchStatus domain.FetchStatus `gorm:"column:fetch_status;not null;type:text;default:never"`
	// FetchedAt is the timestamp of the last fetch attempt
	FetchedAt *time.Time `gorm:"column:fetched_at;type:timestamptz"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Page model
func (Page) TableName() string {
	return "pages"
}

// PageContent represents the page_content table - the markdown of the last fetch
type PageContent struct {
	PageID uuid.UUID `gorm:"column:page_id;type:uuid;primaryKey"`
	// Markdown is nil when the fetch produced nothing extractable
	Markdown *string `gorm:"column:markdown;type:text"`
	// ContentHash is the sha256 of the markdown, nil when markdown is nil
	ContentHash *string `gorm:"column:content_hash;type:text"`
	// ParsedAt is the timestamp the markdown was produced
	ParsedAt  time.Time `gorm:"column:parsed_at;not null;default:now();type:timestamptz"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the PageContent model
func (PageContent) TableName() string {
	return "page_content"
}

// PageStructured represents the page_structured table - the latest extraction of a page
type PageStructured struct {
	PageID      uuid.UUID          `gorm:"column:page_id;type:uuid;primaryKey"`
	ParseStatus domain.ParseStatus `gorm:"column:parse_status;not null;type:text;default:never"`
	// ExtractedPageKind is the kind reported by the extractor
	ExtractedPageKind *domain.PageKind `gorm:"column:extracted_page_kind;type:text"`
	// Payload is the validated payload, only set for event details
	Payload datatypes.JSON `gorm:"column:payload;type:jsonb"`
	// PayloadHash is the sha256 of the canonical (JCS) payload
	PayloadHash *string `gorm:"column:payload_hash;type:text"`
	// ExtractionError holds the failure message verbatim
	ExtractionError *string    `gorm:"column:extraction_error;type:text"`
	ParsedAt        *time.Time `gorm:"column:parsed_at;type:timestamptz"`
	CreatedAt       time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the PageStructured model
func (PageStructured) TableName() string {
	return "page_structured"
}
