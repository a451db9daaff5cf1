package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

// AuthService implements merchant registration and login.
type AuthService struct {
	repo      ports.MerchantRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.MerchantRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterMerchantInput) (*domain.Merchant, error) {
	if in.Username == "" || in.Password == "" || in.Role == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Role != domain.RoleAdmin && in.Role != domain.RoleMerchant {
		return nil, domain.ErrInvalidCredentials
	}
	// A merchant without a customer number could not ship or read anything.
	if in.Role == domain.RoleMerchant && in.CustomerNumber == "" {
		return nil, domain.InvalidInput("register merchant", domain.ErrMissingCustomerNumber)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	merchant := &domain.Merchant{
		Username:       in.Username,
		Email:          in.Email,
		PasswordHash:   string(hash),
		Role:           in.Role,
		CustomerNumber: in.CustomerNumber,
		ContractID:     in.ContractID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, merchant)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Merchant, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	merchant, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(merchant.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(merchant)
	if err != nil {
		return "", nil, err
	}

	return token, merchant, nil
}

func (s *AuthService) generateToken(m *domain.Merchant) (string, error) {
	claims := jwt.MapClaims{
		"username":        m.Username,
		"role":            m.Role,
		"customer_number": m.CustomerNumber,
		"contract_id":     m.ContractID,
		"exp":             time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
