package embedding

import (
	"strings"

	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
	"github.com/feral-file/ff-gallery-indexer/internal/types"
)

// GalleryText builds the labeled text embedded for a gallery.
// Without name, tags or about it falls back to the main URL.
func GalleryText(gallery schema.Gallery, info *schema.GalleryInfo) string {
	var lines []string
	if info != nil {
		if name := types.SafeString(types.TrimmedPtr(info.Name)); name != "" {
			lines = append(lines, "Name: "+name)
		}
		var tags []string
		for _, tag := range info.Tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		if len(tags) > 0 {
			lines = append(lines, "Tags: "+strings.Join(tags, ", "))
		}
		if about := types.SafeString(types.TrimmedPtr(info.About)); about != "" {
			lines = append(lines, "About: "+about)
		}
	}
	if len(lines) == 0 {
		return strings.TrimSpace(gallery.MainURL)
	}
	return strings.Join(lines, "\n")
}

// EventText prefers the event description and falls back to the title
func EventText(event schema.Event, info *schema.EventInfo) string {
	if info != nil {
		if description := types.SafeString(types.TrimmedPtr(info.Description)); description != "" {
			return description
		}
	}
	return strings.TrimSpace(event.Title)
}
