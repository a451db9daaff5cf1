package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "canadapost-gateway"
)

// Config holds the connection settings for the gateway database.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store bundles the client with the gateway database and the repositories
// built on it.
type Store struct {
	client *mongo.Client
	DB     *mongo.Database

	Shipments *ShipmentRepository
	Events    *EventRepository
	Merchants *MerchantRepository
}

// Connect dials MongoDB, pings the primary and builds the repositories.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping %s: %w", cfg.Database, err)
	}

	db := client.Database(cfg.Database)
	return &Store{
		client:    client,
		DB:        db,
		Shipments: NewShipmentRepository(db),
		Events:    NewEventRepository(db),
		Merchants: NewMerchantRepository(db),
	}, nil
}

// EnsureIndexes creates the indexes of every collection the gateway owns.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	steps := []struct {
		collection string
		ensure     func(context.Context) error
	}{
		{collectionShipments, s.Shipments.EnsureIndexes},
		{collectionTrackingEvents, s.Events.EnsureIndexes},
		{merchantCollection, s.Merchants.EnsureIndexes},
	}
	for _, step := range steps {
		if err := step.ensure(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", step.collection, err)
		}
	}
	return nil
}

// Ping reports whether the primary is reachable. Used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
