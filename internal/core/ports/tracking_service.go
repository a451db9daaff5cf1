package ports

import (
	"context"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// TrackingService looks up tracking details and keeps their history.
type TrackingService interface {
	Track(ctx context.Context, pin string) (*domain.TrackingResult, error)
	History(ctx context.Context, pin string) ([]domain.RecordedEvent, error)
}
