package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

// DedupChecker abstracts the store of already recorded events (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, pin, event string, ts time.Time) (bool, error)
	Mark(ctx context.Context, pin, event string, ts time.Time) error
}

type trackingRecorder struct {
	eventRepo ports.TrackingEventRepository
	dedup     DedupChecker
	log       zerolog.Logger
	now       func() time.Time
}

// NewTrackingRecorder returns a TrackingRecorder implementation.
func NewTrackingRecorder(
	eventRepo ports.TrackingEventRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.TrackingRecorder {
	return &trackingRecorder{
		eventRepo: eventRepo,
		dedup:     dedup,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Record deduplicates and persists a single tracking event.
func (s *trackingRecorder) Record(ctx context.Context, in ports.TrackingEventInput) error {
	ev := in.Event

	isDup, err := s.dedup.IsDuplicate(ctx, in.PIN, ev.Name, ev.Time)
	if err != nil {
		s.log.Warn().Err(err).Str("pin", in.PIN).Msg("dedup check failed, recording anyway")
	} else if isDup {
		s.log.Debug().Str("pin", in.PIN).Str("event", ev.Name).Msg("duplicate event skipped")
		return nil
	}

	recorded := &domain.RecordedEvent{
		PIN:        in.PIN,
		Name:       ev.Name,
		Time:       ev.Time,
		Location:   ev.Location,
		Message:    ev.Message,
		RecordedAt: s.now(),
	}
	if err := s.eventRepo.InsertEvent(ctx, recorded); err != nil {
		return fmt.Errorf("record event: %w", err)
	}

	// Marked only after the insert so a failed write is retried on the next lookup.
	if markErr := s.dedup.Mark(ctx, in.PIN, ev.Name, ev.Time); markErr != nil {
		s.log.Warn().Err(markErr).Str("pin", in.PIN).Msg("failed to set dedup key")
	}

	s.log.Info().
		Str("pin", in.PIN).
		Str("event", ev.Name).
		Time("event_time", ev.Time).
		Msg("tracking event recorded")

	return nil
}
