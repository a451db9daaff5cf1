package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

func rateRequest() domain.RateRequest {
	return domain.RateRequest{
		Origin:      domain.Location{Country: "CA", PostalCode: "K1P 1J1"},
		Destination: domain.Location{Country: "CA", PostalCode: "V5J 2T2"},
		Packages:    []domain.Package{{WeightKg: 1.2}},
	}
}

func TestRateService_Quote_ScopesMerchant(t *testing.T) {
	carrier := &stubCarrier{rates: &domain.RateResult{
		Success: true,
		Rates: []domain.RateEstimate{{
			ServiceCode: "DOM.EP",
			TotalPrice:  decimal.RequireFromString("13.01"),
			Currency:    "CAD",
		}},
	}}
	svc := NewRateService(carrier, discardLogger)

	caller := merchant
	caller.ContractID = "0040662521"
	res, err := svc.Quote(context.Background(), caller, rateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rates) != 1 || res.Rates[0].ServiceCode != "DOM.EP" {
		t.Fatalf("unexpected rates: %+v", res.Rates)
	}
	if carrier.lastRate.CustomerNumber != "0008035576" || carrier.lastRate.ContractID != "0040662521" {
		t.Errorf("expected merchant account on the request, got %q/%q",
			carrier.lastRate.CustomerNumber, carrier.lastRate.ContractID)
	}
}

func TestRateService_Quote_AdminPassesThrough(t *testing.T) {
	carrier := &stubCarrier{rates: &domain.RateResult{Success: true}}
	svc := NewRateService(carrier, discardLogger)

	if _, err := svc.Quote(context.Background(), admin, rateRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if carrier.lastRate.CustomerNumber != "" {
		t.Errorf("admin request should keep an empty customer number, got %q", carrier.lastRate.CustomerNumber)
	}
}

func TestRateService_Quote_ForbiddenForOtherCustomer(t *testing.T) {
	svc := NewRateService(&stubCarrier{}, discardLogger)

	req := rateRequest()
	req.CustomerNumber = "0001371134"
	_, err := svc.Quote(context.Background(), merchant, req)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRateService_Quote_CarrierErrorKeepsKind(t *testing.T) {
	carrier := &stubCarrier{err: domain.CarrierError("find rates", "You cannot mail on behalf of the requested customer.", []string{"E002"})}
	svc := NewRateService(carrier, discardLogger)

	_, err := svc.Quote(context.Background(), ports.Caller{Role: domain.RoleAdmin}, rateRequest())
	if !errors.Is(err, domain.ErrCarrier) {
		t.Fatalf("expected ErrCarrier, got %v", err)
	}
	res := domain.ErrorResultFrom(err)
	if res.Message != "You cannot mail on behalf of the requested customer." {
		t.Errorf("unexpected message: %q", res.Message)
	}
}
