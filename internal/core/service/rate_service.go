package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

type RateService struct {
	carrier ports.Carrier
	logger  zerolog.Logger
}

func NewRateService(carrier ports.Carrier, logger zerolog.Logger) *RateService {
	return &RateService{carrier: carrier, logger: logger}
}

// Quote asks the carrier for every service that can carry the parcels.
func (s *RateService) Quote(ctx context.Context, caller ports.Caller, req domain.RateRequest) (*domain.RateResult, error) {
	customer, contract, err := scopeAccount(caller, req.CustomerNumber, req.ContractID)
	if err != nil {
		return nil, fmt.Errorf("quote rates: %w", err)
	}
	req.CustomerNumber, req.ContractID = customer, contract

	res, err := s.carrier.FindRates(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("origin", req.Origin.SanitizedPostalCode()).
			Str("destination", req.Destination.CountryCode()).
			Msg("rate quote failed")
		return nil, fmt.Errorf("quote rates: %w", err)
	}

	s.logger.Info().
		Str("origin", req.Origin.SanitizedPostalCode()).
		Str("destination", req.Destination.CountryCode()).
		Int("quotes", len(res.Rates)).
		Msg("rates quoted")
	return res, nil
}
