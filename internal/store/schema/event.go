package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
)

// Event represents the events table - at most one event per source page
type Event struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	PageID    uuid.UUID  `gorm:"column:page_id;type:uuid;not null;uniqueIndex"`
	GalleryID uuid.UUID  `gorm:"column:gallery_id;type:uuid;not null;index"`
	Title     string     `gorm:"column:title;not null;type:text"`
	StartAt   time.Time  `gorm:"column:start_at;not null;type:timestamptz"`
	EndAt     *time.Time `gorm:"column:end_at;type:timestamptz"`
	// Timezone is an IANA zone name
	Timezone  string             `gorm:"column:timezone;not null;type:text"`
	Status    domain.EventStatus `gorm:"column:status;not null;type:text;default:scheduled"`
	TicketURL *string            `gorm:"column:ticket_url;type:text"`
	CreatedAt time.Time          `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time          `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Info *EventInfo `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Event model
func (Event) TableName() string {
	return "events"
}

// EventInfo represents the event_info table - descriptive details of an event
type EventInfo struct {
	EventID            uuid.UUID                         `gorm:"column:event_id;type:uuid;primaryKey"`
	Description        *string                           `gorm:"column:description;type:text"`
	Artists            datatypes.JSONSlice[string]       `gorm:"column:artists;not null;type:jsonb;default:'[]'"`
	Tags               datatypes.JSONSlice[string]       `gorm:"column:tags;not null;type:jsonb;default:'[]'"`
	Images             datatypes.JSONSlice[string]       `gorm:"column:images;not null;type:jsonb;default:'[]'"`
	Prices             datatypes.JSONSlice[domain.Price] `gorm:"column:prices;not null;type:jsonb;default:'[]'"`
	Embedding          *pgvector.Vector                  `gorm:"column:embedding;type:vector"`
	EmbeddingModel     *string                           `gorm:"column:embedding_model;type:text"`
	EmbeddingCreatedAt *time.Time                        `gorm:"column:embedding_created_at;type:timestamptz"`
	CreatedAt          time.Time                         `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt          time.Time                         `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the EventInfo model
func (EventInfo) TableName() string {
	return "event_info"
}
