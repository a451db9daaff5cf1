package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

const collectionShipments = "shipments"

type ShipmentRepository struct {
	col *mongo.Collection
}

var _ ports.ShipmentRepository = (*ShipmentRepository)(nil)

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{col: db.Collection(collectionShipments)}
}

// Create inserts a new shipment record.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.ShipmentRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateShipment
		}
		return err
	}
	return nil
}

// FindByID retrieves a shipment record by id.
// When customerNumber is non-empty, an additional filter by customer_number is applied.
func (r *ShipmentRepository) FindByID(ctx context.Context, id, customerNumber string) (*domain.ShipmentRecord, error) {
	filter := bson.M{"_id": id}
	if customerNumber != "" {
		filter["customer_number"] = customerNumber
	}
	return r.findOne(ctx, filter)
}

// FindByIdempotencyKey retrieves the record a customer created with the given key.
func (r *ShipmentRepository) FindByIdempotencyKey(ctx context.Context, customerNumber, key string) (*domain.ShipmentRecord, error) {
	return r.findOne(ctx, bson.M{"customer_number": customerNumber, "idempotency_key": key})
}

func (r *ShipmentRepository) findOne(ctx context.Context, filter bson.M) (*domain.ShipmentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.ShipmentRecord
	err := r.col.FindOne(ctx, filter).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns one page of records matching the filter, newest first, and
// the total number of matches.
func (r *ShipmentRepository) List(ctx context.Context, f ports.ListShipmentsFilter) ([]*domain.ShipmentRecord, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilter(f)
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := make([]*domain.ShipmentRecord, 0, f.Limit)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func listFilter(f ports.ListShipmentsFilter) bson.M {
	filter := bson.M{}
	if f.CustomerNumber != "" {
		filter["customer_number"] = f.CustomerNumber
	}
	if f.ServiceCode != "" {
		filter["service_code"] = f.ServiceCode
	}
	created := bson.M{}
	if !f.DateFrom.IsZero() {
		created["$gte"] = f.DateFrom.UTC()
	}
	if !f.DateTo.IsZero() {
		created["$lte"] = f.DateTo.UTC()
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}
	return filter
}

// EnsureIndexes creates necessary indexes on the shipments collection.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer_number", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "carrier.tracking_number", Value: 1}}},
		{
			Keys: bson.D{{Key: "customer_number", Value: 1}, {Key: "idempotency_key", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"idempotency_key": bson.M{"$type": "string"}}),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
