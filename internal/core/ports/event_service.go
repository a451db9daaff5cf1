package ports

import (
	"context"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// TrackingEventInput is one carrier event queued for recording.
type TrackingEventInput struct {
	PIN   string
	Event domain.TrackingEvent
}

// TrackingRecorder persists tracking events, skipping ones already recorded.
type TrackingRecorder interface {
	Record(ctx context.Context, in TrackingEventInput) error
}

// EventQueue accepts tracking events for asynchronous recording.
type EventQueue interface {
	EnqueueBatch(events []TrackingEventInput)
}
