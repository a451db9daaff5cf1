package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ShipmentService struct {
	carrier ports.Carrier
	repo    ports.ShipmentRepository
	idem    ports.IdempotencyStore
	logger  zerolog.Logger
	now     func() time.Time
	newID   func() string
}

// NewShipmentService wires the shipment use cases. idem may be nil, in which
// case idempotency keys are resolved through the repository only.
func NewShipmentService(carrier ports.Carrier, repo ports.ShipmentRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *ShipmentService {
	return &ShipmentService{
		carrier: carrier,
		repo:    repo,
		idem:    idem,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// CreateShipment creates a shipment with the carrier and stores the result. If
// an idempotency key is provided and already seen, the previously created
// shipment is returned without calling the carrier again.
func (s *ShipmentService) CreateShipment(ctx context.Context, input ports.CreateShipmentInput) (*ports.CreateShipmentResult, error) {
	req, err := scopeRequest(input.Caller, input.Request)
	if err != nil {
		return nil, fmt.Errorf("create shipment: %w", err)
	}
	customer, key := req.CustomerNumber, input.IdempotencyKey

	if key != "" {
		if existing := s.replay(ctx, customer, key); existing != nil {
			s.logger.Info().Str("idempotency_key", key).Str("shipment_id", existing.ID).Msg("idempotent replay")
			return &ports.CreateShipmentResult{Record: existing, AlreadyExisted: true}, nil
		}
		if s.idem != nil {
			reserved, err := s.idem.Reserve(ctx, customer, key)
			if err != nil {
				s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, creating anyway")
			} else if !reserved {
				return nil, fmt.Errorf("create shipment: %w", domain.ErrDuplicateShipment)
			}
		}
	}

	result, err := s.carrier.CreateShipment(ctx, req)
	if err != nil {
		s.release(ctx, customer, key)
		s.logger.Error().Err(err).Str("service_code", req.ServiceCode).Msg("carrier rejected shipment")
		return nil, fmt.Errorf("create shipment: %w", err)
	}

	record := &domain.ShipmentRecord{
		ID:             s.newID(),
		CustomerNumber: customer,
		ServiceCode:    req.ServiceCode,
		Origin:         req.Sender,
		Destination:    req.Destination,
		Packages:       req.Packages,
		Carrier:        *result,
		IdempotencyKey: key,
		CreatedAt:      s.now(),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		// The carrier shipment exists at this point; the key stays reserved so
		// a retry cannot create a second one.
		s.logger.Error().Err(err).Str("tracking_number", result.TrackingNumber).Msg("failed to store shipment")
		return nil, fmt.Errorf("create shipment: %w", err)
	}

	if key != "" && s.idem != nil {
		if err := s.idem.Bind(ctx, customer, key, record.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to bind idempotency key")
		}
	}

	s.logger.Info().
		Str("shipment_id", record.ID).
		Str("tracking_number", result.TrackingNumber).
		Str("customer_number", customer).
		Msg("shipment created")

	return &ports.CreateShipmentResult{Record: record}, nil
}

// replay returns the record an idempotency key already produced, if any.
func (s *ShipmentService) replay(ctx context.Context, customer, key string) *domain.ShipmentRecord {
	if s.idem != nil {
		id, err := s.idem.Lookup(ctx, customer, key)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed")
		}
		if id != "" {
			if rec, err := s.repo.FindByID(ctx, id, ""); err == nil {
				return rec
			}
		}
	}
	rec, err := s.repo.FindByIdempotencyKey(ctx, customer, key)
	if err != nil {
		return nil
	}
	return rec
}

func (s *ShipmentService) release(ctx context.Context, customer, key string) {
	if key == "" || s.idem == nil {
		return
	}
	if err := s.idem.Release(ctx, customer, key); err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}

// GetShipment returns a stored shipment. Merchants only see their own.
func (s *ShipmentService) GetShipment(ctx context.Context, input ports.GetShipmentInput) (*domain.ShipmentRecord, error) {
	customer, err := customerFilter(input.Caller)
	if err != nil {
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	rec, err := s.repo.FindByID(ctx, input.ID, customer)
	if err != nil {
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return rec, nil
}

// ListShipments pages through stored shipments. Limit defaults to 20 and is
// capped at 100.
func (s *ShipmentService) ListShipments(ctx context.Context, input ports.ListShipmentsInput) (*ports.ListShipmentsResult, error) {
	customer, err := customerFilter(input.Caller)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	f := input.Filter
	f.CustomerNumber = customer
	if f.Page < 1 {
		f.Page = 1
	}
	switch {
	case f.Limit <= 0:
		f.Limit = defaultListLimit
	case f.Limit > maxListLimit:
		f.Limit = maxListLimit
	}

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	if items == nil {
		items = []*domain.ShipmentRecord{}
	}

	return &ports.ListShipmentsResult{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: int((total + int64(f.Limit) - 1) / int64(f.Limit)),
	}, nil
}

// Label downloads the label artifact of a stored shipment.
func (s *ShipmentService) Label(ctx context.Context, input ports.GetShipmentInput) ([]byte, error) {
	rec, err := s.GetShipment(ctx, input)
	if err != nil {
		return nil, err
	}
	if rec.Carrier.LabelURL == "" {
		return nil, fmt.Errorf("label: %w", domain.ErrLabelUnavailable)
	}
	pdf, err := s.carrier.RetrieveLabel(ctx, rec.Carrier.LabelURL)
	if err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}
	return pdf, nil
}

// scopeRequest pins a merchant's request to its own carrier account. Admins
// may ship for any customer.
func scopeRequest(caller ports.Caller, req domain.ShipmentRequest) (domain.ShipmentRequest, error) {
	customer, contract, err := scopeAccount(caller, req.CustomerNumber, req.ContractID)
	if err != nil {
		return req, err
	}
	req.CustomerNumber, req.ContractID = customer, contract
	return req, nil
}

// scopeAccount resolves the customer number and contract a call runs under.
func scopeAccount(caller ports.Caller, customer, contract string) (string, string, error) {
	if caller.IsAdmin() {
		return customer, contract, nil
	}
	if caller.CustomerNumber == "" {
		return "", "", domain.ErrForbidden
	}
	if customer != "" && customer != caller.CustomerNumber {
		return "", "", domain.ErrForbidden
	}
	if contract == "" {
		contract = caller.ContractID
	}
	return caller.CustomerNumber, contract, nil
}

// customerFilter returns the customer number a caller's reads are scoped to.
// Admins get an empty filter.
func customerFilter(caller ports.Caller) (string, error) {
	if caller.IsAdmin() {
		return "", nil
	}
	if caller.CustomerNumber == "" {
		return "", domain.ErrForbidden
	}
	return caller.CustomerNumber, nil
}
