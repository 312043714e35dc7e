package completion

import (
	"maps"
	"slices"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
)

// extractableKinds are the kinds a model may assign. Provisional kinds are never a model answer.
var extractableKinds = []string{
	string(domain.PageKindGalleryMain),
	string(domain.PageKindGalleryAbout),
	string(domain.PageKindEventList),
	string(domain.PageKindEventDetail),
	string(domain.PageKindOther),
}

func nullable(t string) map[string]any {
	return map[string]any{"type": []string{t, "null"}}
}

func stringArray() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

// object builds a strict object schema: every property is required and
// optional values are expressed as nullable types
func object(properties map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             slices.Sorted(maps.Keys(properties)),
		"additionalProperties": false,
	}
}

func classifySchema() map[string]any {
	return object(map[string]any{
		"kind": map[string]any{"type": "string", "enum": extractableKinds},
	})
}

func eventSchema() map[string]any {
	occurrence := object(map[string]any{
		"start_at": nullable("string"),
		"end_at":   nullable("string"),
		"timezone": nullable("string"),
	})
	price := object(map[string]any{
		"label":    nullable("string"),
		"amount":   nullable("number"),
		"currency": nullable("string"),
	})

	return object(map[string]any{
		"title":       map[string]any{"type": "string"},
		"start_at":    nullable("string"),
		"end_at":      nullable("string"),
		"timezone":    nullable("string"),
		"status":      map[string]any{"type": "string", "enum": []string{"scheduled", "cancelled", "postponed", "unknown"}},
		"ticket_url":  nullable("string"),
		"description": nullable("string"),
		"prices":      map[string]any{"type": "array", "items": price},
		"artists":     stringArray(),
		"tags":        stringArray(),
		"images":      stringArray(),
		"occurrences": map[string]any{"type": "array", "items": occurrence},
	})
}

func extractPageSchema() map[string]any {
	event := eventSchema()
	event["type"] = []string{"object", "null"}

	return object(map[string]any{
		"kind":  map[string]any{"type": "string", "enum": extractableKinds},
		"event": event,
	})
}

func gallerySchema() map[string]any {
	return object(map[string]any{
		"name":               nullable("string"),
		"about":              nullable("string"),
		"address":            nullable("string"),
		"district":           nullable("string"),
		"instagram":          nullable("string"),
		"email":              nullable("string"),
		"phone":              nullable("string"),
		"website":            nullable("string"),
		"tags":               stringArray(),
		"opening_hours_text": nullable("string"),
	})
}

func openingHoursSchema() map[string]any {
	hours := object(map[string]any{
		"weekday":      map[string]any{"type": "integer", "minimum": 0, "maximum": 6},
		"open_minute":  map[string]any{"type": "integer", "minimum": 0, "maximum": 1439},
		"close_minute": map[string]any{"type": "integer", "minimum": 1, "maximum": 1440},
	})
	return object(map[string]any{
		"hours": map[string]any{"type": "array", "items": hours},
	})
}
