package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

const (
	idempotencyTTL = 24 * time.Hour
	pendingValue   = "pending"
)

// IdempotencyStore tracks Idempotency-Key headers of shipment creations.
// A key is first reserved with a pending marker, then bound to the id of the
// stored record once the shipment exists.
// Key format: idem:<customer_number>:<key>
type IdempotencyStore struct {
	client *redis.Client
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Reserve claims the key. It returns false when the key is already taken.
func (s *IdempotencyStore) Reserve(ctx context.Context, customer, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(customer, key), pendingValue, idempotencyTTL).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency reserve: %w", err)
	}
	return ok, nil
}

// Bind points a reserved key at the stored shipment record.
func (s *IdempotencyStore) Bind(ctx context.Context, customer, key, recordID string) error {
	if err := s.client.Set(ctx, s.key(customer, key), recordID, idempotencyTTL).Err(); err != nil {
		return fmt.Errorf("idempotency bind: %w", err)
	}
	return nil
}

// Lookup returns the record id bound to the key. It returns "" when the key
// is unknown or still pending.
func (s *IdempotencyStore) Lookup(ctx context.Context, customer, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(customer, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	if v == pendingValue {
		return "", nil
	}
	return v, nil
}

// Release frees a reserved key so the request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, customer, key string) error {
	return s.client.Del(ctx, s.key(customer, key)).Err()
}

func (s *IdempotencyStore) key(customer, key string) string {
	return fmt.Sprintf("idem:%s:%s", customer, key)
}
