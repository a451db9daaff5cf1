package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// --- Request types ---

type lineItemRequest struct {
	SKU              string          `json:"sku"`
	Description      string          `json:"description"        validate:"required"`
	Quantity         int             `json:"quantity"           validate:"required,gt=0"`
	UnitWeightKg     float64         `json:"unit_weight_kg"     validate:"gt=0"`
	UnitValue        decimal.Decimal `json:"unit_value"         swaggertype:"string"`
	HSTariffCode     string          `json:"hs_tariff_code"`
	CountryOfOrigin  string          `json:"country_of_origin"`
	ProvinceOfOrigin string          `json:"province_of_origin"`
}

type customsRequest struct {
	Currency          string           `json:"currency"            validate:"omitempty,len=3"`
	ConversionFromCAD *decimal.Decimal `json:"conversion_from_cad" swaggertype:"string"`
	ReasonForExport   string           `json:"reason_for_export"`
	AdditionalInfo    string           `json:"additional_info"`
}

type preferencesRequest struct {
	ShowPackingInstructions *bool `json:"show_packing_instructions"`
	ShowPostageRate         *bool `json:"show_postage_rate"`
	ShowInsuredValue        *bool `json:"show_insured_value"`
}

type createShipmentRequest struct {
	CustomerNumber         string             `json:"customer_number"`
	ContractID             string             `json:"contract_id"`
	MailedOnBehalfOf       string             `json:"mailed_on_behalf_of"`
	GroupID                string             `json:"group_id"`
	RequestedShippingPoint string             `json:"requested_shipping_point"`
	OutputFormat           string             `json:"output_format"      validate:"omitempty,oneof=paper 8.5x11 4x6"`
	ServiceCode            string             `json:"service_code"       validate:"required,service_code"`
	Sender                 locationRequest    `json:"sender"             validate:"required"`
	Destination            locationRequest    `json:"destination"        validate:"required"`
	Packages               []packageRequest   `json:"packages"           validate:"required,min=1,dive"`
	LineItems              []lineItemRequest  `json:"line_items"         validate:"dive"`
	Options                optionsRequest     `json:"options"`
	NotificationEmail      string             `json:"notification_email" validate:"omitempty,email"`
	Document               bool               `json:"document"`
	Preferences            preferencesRequest `json:"preferences"`
	Customs                customsRequest     `json:"customs"`
}

// --- Response types ---

type shipmentLinks struct {
	Self  string `json:"self"`
	Label string `json:"label,omitempty"`
}

type carrierResponse struct {
	ShipmentID     string `json:"shipment_id"`
	TrackingNumber string `json:"tracking_number"`
	SelfURL        string `json:"self_url,omitempty"`
	DetailsURL     string `json:"details_url,omitempty"`
	ReceiptURL     string `json:"receipt_url,omitempty"`
	LabelURL       string `json:"label_url,omitempty"`
}

type createShipmentResponse struct {
	Success        bool            `json:"success"`
	ID             string          `json:"id"`
	TrackingNumber string          `json:"tracking_number"`
	CreatedAt      time.Time       `json:"created_at"`
	Carrier        carrierResponse `json:"carrier"`
	Links          shipmentLinks   `json:"_links"`
}

type locationResponse struct {
	Name       string `json:"name,omitempty"`
	Company    string `json:"company,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code,omitempty"`
}

type getShipmentResponse struct {
	ID             string           `json:"id"`
	CustomerNumber string           `json:"customer_number"`
	ServiceCode    string           `json:"service_code"`
	ServiceName    string           `json:"service_name,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	Origin         locationResponse `json:"origin"`
	Destination    locationResponse `json:"destination"`
	WeightKg       float64          `json:"weight_kg"`
	Carrier        carrierResponse  `json:"carrier"`
	Links          shipmentLinks    `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listShipmentsResponse struct {
	Data       []getShipmentResponse `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}
