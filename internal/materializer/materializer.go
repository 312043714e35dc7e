package materializer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/messaging"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
)

// Result reports the events produced from a batch of pages
type Result struct {
	// EventIDs lists the created or updated events in page order
	EventIDs []uuid.UUID `json:"event_ids"`
	// Created lists the events that did not exist before
	Created []uuid.UUID `json:"created"`
	// Skipped maps pages without a successful event extraction to the reason
	Skipped map[uuid.UUID]string `json:"skipped"`
	// Failed maps pages whose event could not be stored to the error message
	Failed map[uuid.UUID]string `json:"failed"`
	// Warnings lists the schedule fallbacks that were applied
	Warnings []string `json:"warnings"`
}

// Materializer turns extracted event pages into canonical events
//
//go:generate mockgen -source=materializer.go -destination=../mocks/materializer.go -package=mocks -mock_names=Materializer=MockMaterializer
type Materializer interface {
	// Materialize upserts one event per page whose extraction produced an event payload.
	// Re-materializing a page updates its event in place.
	Materialize(ctx context.Context, pageIDs []uuid.UUID) (*Result, error)
}

type materializer struct {
	store           store.Store
	publisher       messaging.Publisher
	json            adapter.JSON
	clock           adapter.Clock
	defaultTimezone string
}

// NewMaterializer creates a new event materializer
func NewMaterializer(store store.Store, publisher messaging.Publisher, json adapter.JSON, clock adapter.Clock, defaultTimezone string) Materializer {
	if defaultTimezone == "" {
		defaultTimezone = domain.DEFAULT_EVENT_TIMEZONE
	}
	return &materializer{
		store:           store,
		publisher:       publisher,
		json:            json,
		clock:           clock,
		defaultTimezone: defaultTimezone,
	}
}

func (m *materializer) Materialize(ctx context.Context, pageIDs []uuid.UUID) (*Result, error) {
	result := &Result{
		EventIDs: []uuid.UUID{},
		Created:  []uuid.UUID{},
		Skipped:  make(map[uuid.UUID]string),
		Failed:   make(map[uuid.UUID]string),
		Warnings: []string{},
	}
	if len(pageIDs) == 0 {
		return result, nil
	}

	pages, err := m.store.GetPagesByIDs(ctx, pageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get pages: %w", err)
	}
	pagesByID := make(map[uuid.UUID]schema.Page, len(pages))
	for _, p := range pages {
		pagesByID[p.ID] = p
	}

	structured, err := m.store.GetPageStructuredByPageIDs(ctx, pageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get page structured: %w", err)
	}
	structuredByID := make(map[uuid.UUID]schema.PageStructured, len(structured))
	for _, s := range structured {
		structuredByID[s.PageID] = s
	}

	for _, pageID := range pageIDs {
		page, ok := pagesByID[pageID]
		if !ok {
			result.Skipped[pageID] = domain.ErrPageNotFound.Error()
			continue
		}

		row, ok := structuredByID[pageID]
		if reason := skipReason(row, ok); reason != "" {
			result.Skipped[pageID] = reason
			continue
		}
		if page.GalleryID == nil {
			result.Failed[pageID] = "page has no gallery"
			continue
		}

		event, created, warnings, err := m.materializePage(ctx, page, row)
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", page.NormalizedURL, w))
		}
		if err != nil {
			logger.WarnCtx(ctx, "Failed to materialize event",
				zap.String("pageID", pageID.String()),
				zap.Error(err))
			result.Failed[pageID] = err.Error()
			continue
		}

		result.EventIDs = append(result.EventIDs, event.ID)
		if created {
			result.Created = append(result.Created, event.ID)
		}
	}

	logger.InfoCtx(ctx, "Materialized events",
		zap.Int("pages", len(pageIDs)),
		zap.Int("events", len(result.EventIDs)),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)))

	if len(result.EventIDs) > 0 {
		notification := messaging.NewNotification(
			domain.NotificationEventMaterialized,
			result.EventIDs,
			map[string]string{"created": fmt.Sprintf("%d", len(result.Created))},
			m.clock.Now(),
		)
		if err := m.publisher.PublishNotification(ctx, notification); err != nil {
			logger.WarnCtx(ctx, "Failed to publish event materialized notification", zap.Error(err))
		}
	}

	return result, nil
}

// skipReason explains why a page structured row cannot produce an event
func skipReason(row schema.PageStructured, found bool) string {
	switch {
	case !found:
		return "page has not been extracted"
	case row.ParseStatus != domain.ParseStatusOK:
		return fmt.Sprintf("parse status is %s", row.ParseStatus)
	case row.ExtractedPageKind == nil || *row.ExtractedPageKind != domain.PageKindEventDetail:
		return "page is not an event detail"
	case len(row.Payload) == 0:
		return "event payload missing"
	}
	return ""
}

func (m *materializer) materializePage(ctx context.Context, page schema.Page, row schema.PageStructured) (*schema.Event, bool, []string, error) {
	var payload domain.EventPayload
	if err := m.json.Unmarshal(row.Payload, &payload); err != nil {
		return nil, false, nil, fmt.Errorf("failed to unmarshal event payload: %w", err)
	}

	schedule := ResolveSchedule(payload, m.clock.Now(), m.defaultTimezone)
	// without a start in the payload a re-run must not move the event to the current time
	if schedule.StartDefaulted {
		existing, err := m.store.GetEventByPageID(ctx, page.ID)
		if err != nil {
			return nil, false, nil, fmt.Errorf("failed to get existing event: %w", err)
		}
		if existing != nil {
			schedule.keepStart(existing.StartAt)
		}
	}
	if len(schedule.Warnings) > 0 {
		logger.WarnCtx(ctx, "Applied schedule fallbacks",
			zap.String("pageID", page.ID.String()),
			zap.Strings("warnings", schedule.Warnings))
	}

	event, created, err := m.store.UpsertEvent(ctx, store.UpsertEventInput{
		PageID:    page.ID,
		GalleryID: *page.GalleryID,
		Title:     payload.Title,
		StartAt:   schedule.StartAt,
		EndAt:     schedule.EndAt,
		Timezone:  schedule.Timezone,
		Status:    domain.ParseEventStatus(payload.Status),
		TicketURL: payload.TicketURL,
		Info: store.EventInfoInput{
			Description: payload.Description,
			Artists:     payload.Artists,
			Tags:        payload.Tags,
			Images:      payload.Images,
			Prices:      payload.Prices,
		},
	})
	if err != nil {
		return nil, false, schedule.Warnings, fmt.Errorf("failed to upsert event: %w", err)
	}

	return event, created, schedule.Warnings, nil
}
