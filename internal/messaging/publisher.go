package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
)

// Publisher defines the interface for publishing pipeline notifications to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishNotification publishes a notification about galleries, events or pipeline runs
	PublishNotification(ctx context.Context, notification *domain.Notification) error
	// Close closes the connection
	Close()
}

// NewNotification builds a notification envelope with a time ordered ID
func NewNotification(notificationType domain.NotificationType, subjectIDs []uuid.UUID, attributes map[string]string, occurredAt time.Time) *domain.Notification {
	if subjectIDs == nil {
		subjectIDs = []uuid.UUID{}
	}
	return &domain.Notification{
		ID:         ulid.MustNewDefault(occurredAt).String(),
		Type:       notificationType,
		SubjectIDs: subjectIDs,
		Attributes: attributes,
		OccurredAt: occurredAt,
	}
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every notification.
// It is used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishNotification(context.Context, *domain.Notification) error { return nil }

func (noopPublisher) Close() {}
