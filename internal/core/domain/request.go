package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateRequest is the input of a rate quote.
type RateRequest struct {
	CustomerNumber string          `json:"customer_number,omitempty"`
	ContractID     string          `json:"contract_id,omitempty"`
	Origin         Location        `json:"origin"`
	Destination    Location        `json:"destination"`
	Packages       []Package       `json:"packages"`
	Options        ShippingOptions `json:"options"`

	// ServiceCodes restricts the quote to these services when non-empty.
	ServiceCodes        []string  `json:"service_codes,omitempty"`
	ExpectedMailingDate time.Time `json:"expected_mailing_date,omitempty"`
}

// ShipmentRequest is the input of a shipment creation. Setting ContractID
// selects the contract shipment flow.
type ShipmentRequest struct {
	CustomerNumber string `json:"customer_number,omitempty" yaml:"customer_number"`
	ContractID     string `json:"contract_id,omitempty" yaml:"contract_id"`
	// MailedOnBehalfOf defaults to CustomerNumber.
	MailedOnBehalfOf       string `json:"mailed_on_behalf_of,omitempty" yaml:"mailed_on_behalf_of"`
	GroupID                string `json:"group_id,omitempty" yaml:"group_id"`
	RequestedShippingPoint string `json:"requested_shipping_point,omitempty" yaml:"requested_shipping_point"`
	OutputFormat           string `json:"output_format,omitempty" yaml:"output_format"`

	ServiceCode       string          `json:"service_code" yaml:"service_code"`
	Sender            Location        `json:"sender" yaml:"sender"`
	Destination       Location        `json:"destination" yaml:"destination"`
	Packages          []Package       `json:"packages" yaml:"packages"`
	LineItems         []LineItem      `json:"line_items,omitempty" yaml:"line_items"`
	Options           ShippingOptions `json:"options" yaml:"options"`
	NotificationEmail string          `json:"notification_email,omitempty" yaml:"notification_email"`
	Document          bool            `json:"document,omitempty" yaml:"document"`
	Preferences       Preferences     `json:"preferences" yaml:"preferences"`
	Customs           CustomsInfo     `json:"customs" yaml:"customs"`
}

// CustomsInfo overrides the customs block defaults.
type CustomsInfo struct {
	Currency          string           `json:"currency,omitempty" yaml:"currency"`
	ConversionFromCAD *decimal.Decimal `json:"conversion_from_cad,omitempty" yaml:"conversion_from_cad"`
	ReasonForExport   string           `json:"reason_for_export,omitempty" yaml:"reason_for_export"`
	AdditionalInfo    string           `json:"additional_info,omitempty" yaml:"additional_info"`
}

// ContractMode reports whether the request creates a contract shipment.
func (r ShipmentRequest) ContractMode() bool {
	return r.ContractID != ""
}

// MOBO returns the mailed-on-behalf-of customer number.
func (r ShipmentRequest) MOBO() string {
	if r.MailedOnBehalfOf != "" {
		return r.MailedOnBehalfOf
	}
	return r.CustomerNumber
}
