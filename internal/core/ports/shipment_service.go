package ports

import (
	"context"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// Caller identifies the authenticated merchant behind a request.
type Caller struct {
	Role           string
	CustomerNumber string
	ContractID     string
}

// IsAdmin reports whether the caller may act on any customer's records.
func (c Caller) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

// CreateShipmentInput carries a shipment creation on behalf of a caller.
type CreateShipmentInput struct {
	Caller         Caller
	Request        domain.ShipmentRequest
	IdempotencyKey string
}

// CreateShipmentResult is returned by the service after creating a shipment.
type CreateShipmentResult struct {
	Record *domain.ShipmentRecord
	// AlreadyExisted is true when the Idempotency-Key matched an earlier shipment.
	AlreadyExisted bool
}

// GetShipmentInput identifies a stored shipment.
type GetShipmentInput struct {
	ID     string
	Caller Caller
}

// ListShipmentsInput carries all parameters for the list endpoint.
type ListShipmentsInput struct {
	Caller Caller
	Filter ListShipmentsFilter
}

// ListShipmentsResult is returned by ListShipments.
type ListShipmentsResult struct {
	Items      []*domain.ShipmentRecord
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ShipmentService defines use-case operations for shipments.
type ShipmentService interface {
	CreateShipment(ctx context.Context, input CreateShipmentInput) (*CreateShipmentResult, error)
	GetShipment(ctx context.Context, input GetShipmentInput) (*domain.ShipmentRecord, error)
	ListShipments(ctx context.Context, input ListShipmentsInput) (*ListShipmentsResult, error)
	Label(ctx context.Context, input GetShipmentInput) ([]byte, error)
}
