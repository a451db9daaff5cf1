package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Codes   []string `json:"codes,omitempty"`
}

type locationRequest struct {
	Name       string `json:"name"`
	Company    string `json:"company"`
	Phone      string `json:"phone"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	Address3   string `json:"address3"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"     validate:"required"`
	PostalCode string `json:"postal_code"`
}

type packageRequest struct {
	WeightKg   float64   `json:"weight_kg"  validate:"gt=0"`
	Dimensions []float64 `json:"dimensions" validate:"max=3,dive,gte=0"`
	Tube       bool      `json:"tube"`
	Oversized  bool      `json:"oversized"`
	Unpackaged bool      `json:"unpackaged"`
}

type codRequest struct {
	Amount           decimal.Decimal `json:"amount"             swaggertype:"string"`
	IncludesShipping bool            `json:"includes_shipping"`
	MethodOfPayment  string          `json:"method_of_payment"`
}

type optionsRequest struct {
	COD                   *codRequest      `json:"cod"`
	Coverage              *decimal.Decimal `json:"coverage"                 swaggertype:"string"`
	SignatureRequired     bool             `json:"signature_required"`
	ProofOfAge18          bool             `json:"proof_of_age_18"`
	ProofOfAge19          bool             `json:"proof_of_age_19"`
	HoldForPickup         bool             `json:"hold_for_pickup"`
	DoNotSafeDrop         bool             `json:"do_not_safe_drop"`
	LeaveAtDoor           bool             `json:"leave_at_door"`
	DeliveryConfirmation  bool             `json:"delivery_confirmation"`
	DeliverToPostOffice   string           `json:"deliver_to_post_office"`
	ReturnAtSenderExpense bool             `json:"return_at_sender_expense"`
	ReturnToSender        bool             `json:"return_to_sender"`
	Abandon               bool             `json:"abandon"`
}

type rateRequest struct {
	CustomerNumber      string           `json:"customer_number"`
	ContractID          string           `json:"contract_id"`
	Origin              locationRequest  `json:"origin"                validate:"required"`
	Destination         locationRequest  `json:"destination"           validate:"required"`
	Packages            []packageRequest `json:"packages"              validate:"required,min=1,dive"`
	Options             optionsRequest   `json:"options"`
	Services            []string         `json:"services"              validate:"dive,service_code"`
	ExpectedMailingDate string           `json:"expected_mailing_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r locationRequest) toDomain() domain.Location {
	return domain.Location{
		Name:       r.Name,
		Company:    r.Company,
		Phone:      r.Phone,
		Address1:   r.Address1,
		Address2:   r.Address2,
		Address3:   r.Address3,
		City:       r.City,
		Province:   r.Province,
		Country:    r.Country,
		PostalCode: r.PostalCode,
	}
}

func toPackages(reqs []packageRequest) []domain.Package {
	pkgs := make([]domain.Package, 0, len(reqs))
	for _, p := range reqs {
		pkgs = append(pkgs, domain.Package{
			WeightKg:   p.WeightKg,
			Dimensions: p.Dimensions,
			Tube:       p.Tube,
			Oversized:  p.Oversized,
			Unpackaged: p.Unpackaged,
		})
	}
	return pkgs
}

func (r optionsRequest) toDomain() domain.ShippingOptions {
	opts := domain.ShippingOptions{
		Coverage:              r.Coverage,
		SignatureRequired:     r.SignatureRequired,
		ProofOfAge18:          r.ProofOfAge18,
		ProofOfAge19:          r.ProofOfAge19,
		HoldForPickup:         r.HoldForPickup,
		DoNotSafeDrop:         r.DoNotSafeDrop,
		LeaveAtDoor:           r.LeaveAtDoor,
		DeliveryConfirmation:  r.DeliveryConfirmation,
		DeliverToPostOffice:   r.DeliverToPostOffice,
		ReturnAtSenderExpense: r.ReturnAtSenderExpense,
		ReturnToSender:        r.ReturnToSender,
		Abandon:               r.Abandon,
	}
	if r.COD != nil {
		opts.COD = &domain.CashOnDelivery{
			Amount:           r.COD.Amount,
			IncludesShipping: r.COD.IncludesShipping,
			MethodOfPayment:  r.COD.MethodOfPayment,
		}
	}
	return opts
}

// toDomain maps the payload to the carrier request. The mailing date has
// already been checked by the validator.
func (r rateRequest) toDomain() domain.RateRequest {
	req := domain.RateRequest{
		CustomerNumber: r.CustomerNumber,
		ContractID:     r.ContractID,
		Origin:         r.Origin.toDomain(),
		Destination:    r.Destination.toDomain(),
		Packages:       toPackages(r.Packages),
		Options:        r.Options.toDomain(),
		ServiceCodes:   r.Services,
	}
	if r.ExpectedMailingDate != "" {
		req.ExpectedMailingDate, _ = time.Parse("2006-01-02", r.ExpectedMailingDate)
	}
	return req
}
