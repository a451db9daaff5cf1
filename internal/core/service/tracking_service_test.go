package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

type stubQueue struct {
	batches [][]ports.TrackingEventInput
}

func (q *stubQueue) EnqueueBatch(events []ports.TrackingEventInput) {
	q.batches = append(q.batches, events)
}

func trackingResult() *domain.TrackingResult {
	return &domain.TrackingResult{
		Success:        true,
		TrackingNumber: "1371134583769923",
		Events: []domain.TrackingEvent{
			{Name: "1496", Time: time.Date(2011, 2, 3, 16, 59, 59, 0, time.UTC), Location: "SAINTE-FOY, QC"},
			{Name: "20", Time: time.Date(2011, 2, 3, 13, 40, 40, 0, time.UTC), Location: "SAINTE-FOY, QC"},
		},
	}
}

func TestTrackingService_Track_EnqueuesEvents(t *testing.T) {
	queue := &stubQueue{}
	svc := NewTrackingService(&stubCarrier{tracking: trackingResult()}, &stubEventRepo{}, queue, discardLogger)

	res, err := svc.Track(context.Background(), "1371134583769923")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(res.Events))
	}
	if len(queue.batches) != 1 || len(queue.batches[0]) != 2 {
		t.Fatalf("expected one batch of 2 events, got %v", queue.batches)
	}
	if queue.batches[0][0].PIN != "1371134583769923" || queue.batches[0][0].Event.Name != "1496" {
		t.Errorf("unexpected queued event: %+v", queue.batches[0][0])
	}
}

func TestTrackingService_Track_NoEventsNoBatch(t *testing.T) {
	queue := &stubQueue{}
	svc := NewTrackingService(&stubCarrier{tracking: &domain.TrackingResult{Success: true}}, nil, queue, discardLogger)

	if _, err := svc.Track(context.Background(), "1371134583769923"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue.batches) != 0 {
		t.Errorf("expected no batch, got %d", len(queue.batches))
	}
}

func TestTrackingService_Track_InvalidPIN(t *testing.T) {
	queue := &stubQueue{}
	carrier := &stubCarrier{err: domain.InvalidInput("tracking path", domain.ErrInvalidPIN)}
	svc := NewTrackingService(carrier, nil, queue, discardLogger)

	_, err := svc.Track(context.Background(), "123")
	if !errors.Is(err, domain.ErrInvalidPIN) || !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid PIN error, got %v", err)
	}
	if len(queue.batches) != 0 {
		t.Error("expected nothing queued")
	}
}

func TestTrackingService_History(t *testing.T) {
	repo := &stubEventRepo{}
	_ = repo.InsertEvent(context.Background(), &domain.RecordedEvent{PIN: "1371134583769923", Name: "20"})
	_ = repo.InsertEvent(context.Background(), &domain.RecordedEvent{PIN: "1371134583769923", Name: "1496"})
	_ = repo.InsertEvent(context.Background(), &domain.RecordedEvent{PIN: "315052413796541", Name: "0100"})
	svc := NewTrackingService(&stubCarrier{}, repo, nil, discardLogger)

	events, err := svc.History(context.Background(), "1371134583769923")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 || events[0].Name != "1496" {
		t.Errorf("unexpected history: %+v", events)
	}

	none, err := svc.History(context.Background(), "000000000000")
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("expected empty history, got %v %v", none, err)
	}
}

func TestTrackingService_TrimsPINForRecordingAndHistory(t *testing.T) {
	queue := &stubQueue{}
	carrier := &stubCarrier{tracking: trackingResult()}
	repo := &stubEventRepo{}
	svc := NewTrackingService(carrier, repo, queue, discardLogger)

	if _, err := svc.Track(context.Background(), "  1371134583769923\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if carrier.lastPIN != "1371134583769923" {
		t.Errorf("carrier called with %q", carrier.lastPIN)
	}
	if len(queue.batches) != 1 || queue.batches[0][0].PIN != "1371134583769923" {
		t.Fatalf("events queued under untrimmed pin: %+v", queue.batches)
	}

	_ = repo.InsertEvent(context.Background(), &domain.RecordedEvent{PIN: "1371134583769923", Name: "1496"})
	events, err := svc.History(context.Background(), " 1371134583769923 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 recorded event, got %d", len(events))
	}
}
