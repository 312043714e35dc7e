package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Gallery represents the galleries table - one row per art venue, deduplicated by normalized main URL
type Gallery struct {
	// ID is the gallery identity
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	// MainURL is the operator supplied primary URL
	MainURL string `gorm:"column:main_url;not null;type:text"`
	// AboutURL is the optional about page URL
	AboutURL *string `gorm:"column:about_url;type:text"`
	// EventsURL is the optional events listing URL
	EventsURL *string `gorm:"column:events_url;type:text"`
	// NormalizedMainURL is the dedup key for galleries
	NormalizedMainURL string `gorm:"column:normalized_main_url;not null;uniqueIndex;type:text"`
	// CreatedAt is the timestamp when the gallery was first seeded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last re-seed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Info  *GalleryInfo   `gorm:"foreignKey:GalleryID;constraint:OnDelete:CASCADE"`
	Hours []GalleryHours `gorm:"foreignKey:GalleryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Gallery model
func (Gallery) TableName() string {
	return "galleries"
}

// GalleryInfo represents the gallery_info table - descriptive facts about a gallery
type GalleryInfo struct {
	GalleryID        uuid.UUID                   `gorm:"column:gallery_id;type:uuid;primaryKey"`
	Name             *string                     `gorm:"column:name;type:text"`
	About            *string                     `gorm:"column:about;type:text"`
	Address          *string                     `gorm:"column:address;type:text"`
	District         *string                     `gorm:"column:district;type:text"`
	Instagram        *string                     `gorm:"column:instagram;type:text"`
	Email            *string                     `gorm:"column:email;type:text"`
	Phone            *string                     `gorm:"column:phone;type:text"`
	Website          *string                     `gorm:"column:website;type:text"`
	Tags             datatypes.JSONSlice[string] `gorm:"column:tags;not null;type:jsonb;default:'[]'"`
	OpeningHoursText *string                     `gorm:"column:opening_hours_text;type:text"`
	// ExtractedAt is set the first time gallery facts are extracted from the gallery's own pages
	ExtractedAt *time.Time `gorm:"column:extracted_at;type:timestamptz"`
	// Embedding is the vector of the gallery's descriptive text, nil until embedded
	Embedding          *pgvector.Vector `gorm:"column:embedding;type:vector"`
	EmbeddingModel     *string          `gorm:"column:embedding_model;type:text"`
	EmbeddingCreatedAt *time.Time       `gorm:"column:embedding_created_at;type:timestamptz"`
	CreatedAt          time.Time        `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt          time.Time        `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the GalleryInfo model
func (GalleryInfo) TableName() string {
	return "gallery_info"
}

// HasEmbedding reports whether an embedding vector has been stored
func (g *GalleryInfo) HasEmbedding() bool {
	return g != nil && g.Embedding != nil && len(g.Embedding.Slice()) > 0
}

// GalleryHours represents the gallery_hours table - one open range on a weekday
type GalleryHours struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	GalleryID uuid.UUID `gorm:"column:gallery_id;type:uuid;not null;index"`
	// Weekday follows time.Weekday, 0 is Sunday
	Weekday int `gorm:"column:weekday;not null;type:smallint"`
	// OpenMinute and CloseMinute are minutes from local midnight
	OpenMinute  int       `gorm:"column:open_minute;not null"`
	CloseMinute int       `gorm:"column:close_minute;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the GalleryHours model
func (GalleryHours) TableName() string {
	return "gallery_hours"
}
