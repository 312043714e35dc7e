package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Extraction is the result of extracting a single page.
// It is either KindOnly (no payload) or EventDetail (payload required).
type Extraction interface {
	Kind() PageKind
	extraction()
}

// KindOnly is an extraction that classified the page without producing a payload
type KindOnly struct {
	kind PageKind
}

// NewKindOnly returns a payload-less extraction. Event details, provisional
// and unknown kinds are rejected.
func NewKindOnly(kind PageKind) (KindOnly, error) {
	if !kind.Valid() || kind.Provisional() || kind == PageKindEventDetail {
		return KindOnly{}, fmt.Errorf("%w: kind %q cannot be extracted without payload", ErrInvalidExtraction, kind)
	}
	return KindOnly{kind: kind}, nil
}

func (k KindOnly) Kind() PageKind { return k.kind }

func (KindOnly) extraction() {}

// EventDetail is an extraction of a page describing a single event
type EventDetail struct {
	Payload EventPayload
}

func (EventDetail) Kind() PageKind { return PageKindEventDetail }

func (EventDetail) extraction() {}

// EventPayload is the structured form of an event page
type EventPayload struct {
	Title       string       `json:"title" validate:"required"`
	StartAt     *string      `json:"start_at"`
	EndAt       *string      `json:"end_at"`
	Timezone    *string      `json:"timezone" validate:"omitempty,timezone"`
	Status      string       `json:"status" validate:"omitempty,oneof=scheduled cancelled postponed unknown"`
	TicketURL   *string      `json:"ticket_url" validate:"omitempty,url"`
	Description *string      `json:"description"`
	Prices      []Price      `json:"prices" validate:"dive"`
	Artists     []string     `json:"artists"`
	Tags        []string     `json:"tags"`
	Images      []string     `json:"images" validate:"dive,url"`
	Occurrences []Occurrence `json:"occurrences" validate:"dive"`
}

// Price is a single ticket price
type Price struct {
	Label    *string  `json:"label"`
	Amount   *float64 `json:"amount" validate:"omitempty,gte=0"`
	Currency *string  `json:"currency" validate:"omitempty,len=3"`
}

// Occurrence is one explicit date range of an event
type Occurrence struct {
	StartAt  *string `json:"start_at"`
	EndAt    *string `json:"end_at"`
	Timezone *string `json:"timezone" validate:"omitempty,timezone"`
}

// GalleryPayload holds gallery level facts extracted from its own pages
type GalleryPayload struct {
	Name             *string  `json:"name"`
	About            *string  `json:"about"`
	Address          *string  `json:"address"`
	District         *string  `json:"district"`
	Instagram        *string  `json:"instagram"`
	Email            *string  `json:"email" validate:"omitempty,email"`
	Phone            *string  `json:"phone"`
	Website          *string  `json:"website" validate:"omitempty,url"`
	Tags             []string `json:"tags"`
	OpeningHoursText *string  `json:"opening_hours_text"`
}

// OpeningHours is one open range on a weekday, in minutes from midnight.
// Weekday follows time.Weekday (0 is Sunday).
type OpeningHours struct {
	Weekday     int `json:"weekday" validate:"min=0,max=6"`
	OpenMinute  int `json:"open_minute" validate:"min=0,max=1439"`
	CloseMinute int `json:"close_minute" validate:"min=1,max=1440,gtfield=OpenMinute"`
}

// NotificationType is the kind of a pipeline notification
type NotificationType string

const (
	NotificationGallerySeeded     NotificationType = "gallery.seeded"
	NotificationEventMaterialized NotificationType = "event.materialized"
	NotificationPipelineCompleted NotificationType = "pipeline.completed"
)

// Notification is published when the pipeline produces or changes an entity
type Notification struct {
	ID         string            `json:"id"`
	Type       NotificationType  `json:"type"`
	SubjectIDs []uuid.UUID       `json:"subject_ids"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
