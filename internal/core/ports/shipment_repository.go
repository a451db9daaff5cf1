package ports

import (
	"context"
	"time"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// ListShipmentsFilter carries all query parameters for listing shipments.
// CustomerNumber is always enforced by the service layer.
type ListShipmentsFilter struct {
	CustomerNumber string    // empty = no filter (admin)
	ServiceCode    string    // optional
	DateFrom       time.Time // optional: created_at >= DateFrom
	DateTo         time.Time // optional: created_at <= DateTo
	Page           int       // 1-based
	Limit          int
}

// ShipmentRepository defines persistence operations for shipment records.
type ShipmentRepository interface {
	Create(ctx context.Context, s *domain.ShipmentRecord) error
	// FindByID retrieves a record. When customerNumber is non-empty the query is
	// additionally scoped to that customer.
	FindByID(ctx context.Context, id, customerNumber string) (*domain.ShipmentRecord, error)
	FindByIdempotencyKey(ctx context.Context, customerNumber, key string) (*domain.ShipmentRecord, error)
	List(ctx context.Context, filter ListShipmentsFilter) ([]*domain.ShipmentRecord, int64, error)
}

// IdempotencyStore remembers which record an Idempotency-Key produced.
type IdempotencyStore interface {
	// Reserve claims key for the customer. It returns false when the key is
	// already claimed.
	Reserve(ctx context.Context, customerNumber, key string) (bool, error)
	// Bind attaches the created record id to a reserved key.
	Bind(ctx context.Context, customerNumber, key, recordID string) error
	// Lookup returns the record id bound to key, or "" when none is bound yet.
	Lookup(ctx context.Context, customerNumber, key string) (string, error)
	Release(ctx context.Context, customerNumber, key string) error
}
