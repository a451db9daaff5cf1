package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

type TrackingService struct {
	carrier ports.Carrier
	events  ports.TrackingEventRepository
	queue   ports.EventQueue
	logger  zerolog.Logger
}

// NewTrackingService wires tracking lookups. queue may be nil, in which case
// looked-up events are not recorded.
func NewTrackingService(carrier ports.Carrier, events ports.TrackingEventRepository, queue ports.EventQueue, logger zerolog.Logger) *TrackingService {
	return &TrackingService{carrier: carrier, events: events, queue: queue, logger: logger}
}

// Track fetches the current tracking detail of a PIN or DNC and queues its
// events for recording.
func (s *TrackingService) Track(ctx context.Context, pin string) (*domain.TrackingResult, error) {
	pin = strings.TrimSpace(pin)
	res, err := s.carrier.FindTracking(ctx, pin)
	if err != nil {
		return nil, fmt.Errorf("track: %w", err)
	}

	if s.queue != nil && len(res.Events) > 0 {
		batch := make([]ports.TrackingEventInput, 0, len(res.Events))
		for _, ev := range res.Events {
			batch = append(batch, ports.TrackingEventInput{PIN: pin, Event: ev})
		}
		s.queue.EnqueueBatch(batch)
	}

	s.logger.Info().Str("pin", pin).Int("events", len(res.Events)).Msg("tracking fetched")
	return res, nil
}

// History returns the events recorded for a PIN, newest first.
func (s *TrackingService) History(ctx context.Context, pin string) ([]domain.RecordedEvent, error) {
	pin = strings.TrimSpace(pin)
	if s.events == nil {
		return []domain.RecordedEvent{}, nil
	}
	events, err := s.events.ListByPIN(ctx, pin)
	if err != nil {
		return nil, fmt.Errorf("tracking history: %w", err)
	}
	if events == nil {
		events = []domain.RecordedEvent{}
	}
	return events, nil
}
