package ports

import (
	"context"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// RateService quotes shipping rates for a caller.
type RateService interface {
	Quote(ctx context.Context, caller Caller, req domain.RateRequest) (*domain.RateResult, error)
}
