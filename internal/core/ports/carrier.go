package ports

import (
	"context"
	"net/http"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// Transport performs a single HTTP exchange with the carrier. A non-2xx answer
// is returned as *domain.HTTPError carrying the response body.
type Transport interface {
	Post(ctx context.Context, url string, body []byte, headers http.Header) ([]byte, error)
	Get(ctx context.Context, url string, headers http.Header) ([]byte, error)
}

// Carrier is the rate, tracking and shipping API of a parcel carrier.
type Carrier interface {
	FindRates(ctx context.Context, req domain.RateRequest) (*domain.RateResult, error)
	FindTracking(ctx context.Context, pin string) (*domain.TrackingResult, error)
	CreateShipment(ctx context.Context, req domain.ShipmentRequest) (*domain.ShipmentResult, error)
	RetrieveLabel(ctx context.Context, url string) ([]byte, error)
}
