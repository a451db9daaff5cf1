package ports

import (
	"context"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// RegisterMerchantInput carries the fields of a new API account.
type RegisterMerchantInput struct {
	Username       string
	Password       string
	Email          string
	Role           string
	CustomerNumber string
	ContractID     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterMerchantInput) (*domain.Merchant, error)
	Login(ctx context.Context, username, password string) (string, *domain.Merchant, error)
}
