package domain

import (
	"strings"
)

// PageKind is the role a page plays for a gallery
type PageKind string

const (
	PageKindInit           PageKind = "init"
	PageKindGalleryMain    PageKind = "gallery_main"
	PageKindGalleryAbout   PageKind = "gallery_about"
	PageKindEventList      PageKind = "event_list"
	PageKindEventCandidate PageKind = "event_candidate"
	PageKindEventDetail    PageKind = "event_detail"
	PageKindOther          PageKind = "other"
)

// AllPageKinds lists every page kind in declaration order
var AllPageKinds = []PageKind{
	PageKindInit,
	PageKindGalleryMain,
	PageKindGalleryAbout,
	PageKindEventList,
	PageKindEventCandidate,
	PageKindEventDetail,
	PageKindOther,
}

// Valid reports whether k is a known page kind
func (k PageKind) Valid() bool {
	for _, kind := range AllPageKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Provisional reports whether k is a placeholder kind that extraction may overwrite
func (k PageKind) Provisional() bool {
	return k == PageKindInit || k == PageKindEventCandidate
}

// IsGalleryPage reports whether k describes the gallery itself
func (k PageKind) IsGalleryPage() bool {
	return k == PageKindGalleryMain || k == PageKindGalleryAbout
}

// String returns the string form of the kind
func (k PageKind) String() string {
	return string(k)
}

// FetchStatus tracks whether raw content was retrieved for a page
type FetchStatus string

const (
	FetchStatusNever FetchStatus = "never"
	FetchStatusOK    FetchStatus = "ok"
	FetchStatusError FetchStatus = "error"
)

// Terminal reports whether a fetch attempt has finished
func (s FetchStatus) Terminal() bool {
	return s == FetchStatusOK || s == FetchStatusError
}

// ParseStatus tracks structured extraction for a page
type ParseStatus string

const (
	ParseStatusNever  ParseStatus = "never"
	ParseStatusQueued ParseStatus = "queued"
	ParseStatusOK     ParseStatus = "ok"
	ParseStatusError  ParseStatus = "error"
)

// EventStatus is the scheduling state of an event
type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusPostponed EventStatus = "postponed"
	EventStatusUnknown   EventStatus = "unknown"
)

// ParseEventStatus maps free-form status text to an EventStatus.
// Anything unrecognised becomes unknown, an empty value means scheduled.
func ParseEventStatus(s string) EventStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scheduled", "confirmed", "upcoming", "ongoing":
		return EventStatusScheduled
	case "cancelled", "canceled":
		return EventStatusCancelled
	case "postponed", "rescheduled":
		return EventStatusPostponed
	default:
		return EventStatusUnknown
	}
}

// EntityType identifies what an embedding belongs to
type EntityType string

const (
	EntityTypeGallery EntityType = "gallery"
	EntityTypeEvent   EntityType = "event"
)

// PipelineName is the public name of an orchestrated pipeline
type PipelineName string

const (
	PipelineSeedAndStartup   PipelineName = "seed-and-startup"
	PipelineScrapeAndExtract PipelineName = "scrape-and-extract"
	PipelineDiscoverLinks    PipelineName = "discover-links"
	PipelineScrapePages      PipelineName = "scrape-pages"
	PipelineEmbedEntities    PipelineName = "embed-entities"
)

// Valid reports whether p names a known pipeline
func (p PipelineName) Valid() bool {
	switch p {
	case PipelineSeedAndStartup, PipelineScrapeAndExtract, PipelineDiscoverLinks, PipelineScrapePages, PipelineEmbedEntities:
		return true
	}
	return false
}
