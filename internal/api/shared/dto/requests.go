package dto

import (
	"github.com/google/uuid"
)

// PageIDsRequest is the parameter object of the scrape-and-extract and scrape-pages pipelines
type PageIDsRequest struct {
	PageIDs []uuid.UUID `json:"page_ids" binding:"required,min=1,max=500"`
}

// EmbedEntitiesRequest is the parameter object of the embed-entities pipeline.
// At least one of the lists must be non-empty.
type EmbedEntitiesRequest struct {
	GalleryIDs []uuid.UUID `json:"gallery_ids" binding:"max=500"`
	EventIDs   []uuid.UUID `json:"event_ids" binding:"max=500"`
}
