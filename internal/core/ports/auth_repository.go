package ports

import (
	"context"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// MerchantRepository persists API accounts.
type MerchantRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Merchant, error)
	Create(ctx context.Context, merchant *domain.Merchant) (*domain.Merchant, error)
}
