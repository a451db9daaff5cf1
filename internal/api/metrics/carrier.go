package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

// instrumentedCarrier records call counts and latencies around a Carrier.
type instrumentedCarrier struct {
	next ports.Carrier
}

// InstrumentCarrier wraps next so every operation is measured.
func InstrumentCarrier(next ports.Carrier) ports.Carrier {
	return &instrumentedCarrier{next: next}
}

func (c *instrumentedCarrier) FindRates(ctx context.Context, req domain.RateRequest) (*domain.RateResult, error) {
	start := time.Now()
	res, err := c.next.FindRates(ctx, req)
	observe("find_rates", start, err)
	if err == nil {
		RateQuotesReturned.Observe(float64(len(res.Rates)))
	}
	return res, err
}

func (c *instrumentedCarrier) FindTracking(ctx context.Context, pin string) (*domain.TrackingResult, error) {
	start := time.Now()
	res, err := c.next.FindTracking(ctx, pin)
	observe("find_tracking", start, err)
	return res, err
}

func (c *instrumentedCarrier) CreateShipment(ctx context.Context, req domain.ShipmentRequest) (*domain.ShipmentResult, error) {
	start := time.Now()
	res, err := c.next.CreateShipment(ctx, req)
	observe("create_shipment", start, err)
	if err == nil {
		ShipmentsCreatedTotal.WithLabelValues(req.ServiceCode).Inc()
	}
	return res, err
}

func (c *instrumentedCarrier) RetrieveLabel(ctx context.Context, link string) ([]byte, error) {
	start := time.Now()
	pdf, err := c.next.RetrieveLabel(ctx, link)
	observe("retrieve_label", start, err)
	return pdf, err
}

func observe(op string, start time.Time, err error) {
	CarrierRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	CarrierRequestsTotal.WithLabelValues(op, Outcome(err)).Inc()
}

// Outcome names the error kind of a carrier result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrCarrier):
		return "carrier_error"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, domain.ErrTransport):
		return "transport"
	default:
		return "error"
	}
}
