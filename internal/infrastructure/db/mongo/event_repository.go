package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

const collectionTrackingEvents = "tracking_events"

// EventRepository implements ports.TrackingEventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionTrackingEvents)}
}

var _ ports.TrackingEventRepository = (*EventRepository)(nil)

// InsertEvent persists a tracking event. The unique index on
// (pin, name, time) makes a repeated insert a no-op.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.RecordedEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"pin":         event.PIN,
		"name":        event.Name,
		"time":        event.Time.UTC(),
		"location":    event.Location,
		"message":     event.Message,
		"recorded_at": event.RecordedAt.UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// ListByPIN returns the recorded events of a PIN, newest first.
func (r *EventRepository) ListByPIN(ctx context.Context, pin string) ([]domain.RecordedEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "time", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"pin": pin}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []domain.RecordedEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// EnsureIndexes creates necessary indexes on the tracking_events collection.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pin", Value: 1}, {Key: "name", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "pin", Value: 1}, {Key: "time", Value: -1}}},
	})
	return err
}
