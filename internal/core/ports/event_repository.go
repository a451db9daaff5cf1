package ports

import (
	"context"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// TrackingEventRepository stores the tracking events seen for each PIN.
type TrackingEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.RecordedEvent) error
	// ListByPIN returns the stored events of a PIN, newest first.
	ListByPIN(ctx context.Context, pin string) ([]domain.RecordedEvent, error)
}
