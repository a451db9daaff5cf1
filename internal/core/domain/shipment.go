package domain

import (
	"errors"
	"time"
)

var ErrShipmentNotFound = errors.New("shipment not found")
var ErrDuplicateShipment = errors.New("shipment already exists")
var ErrForbidden = errors.New("access forbidden")
var ErrLabelUnavailable = errors.New("shipment has no label link")

// Preferences controls what the carrier prints on the label. Nil fields take
// the carrier defaults: packing instructions on, postage rate off, insured
// value on.
type Preferences struct {
	ShowPackingInstructions *bool `json:"show_packing_instructions,omitempty" bson:"show_packing_instructions,omitempty" yaml:"show_packing_instructions"`
	ShowPostageRate         *bool `json:"show_postage_rate,omitempty" bson:"show_postage_rate,omitempty" yaml:"show_postage_rate"`
	ShowInsuredValue        *bool `json:"show_insured_value,omitempty" bson:"show_insured_value,omitempty" yaml:"show_insured_value"`
}

// ShipmentResult is the carrier's answer to a shipment creation.
type ShipmentResult struct {
	Success        bool   `json:"success" bson:"-"`
	Message        string `json:"message" bson:"-"`
	ShipmentID     string `json:"shipment_id" bson:"shipment_id"`
	TrackingNumber string `json:"tracking_number" bson:"tracking_number"`
	SelfURL        string `json:"self_url,omitempty" bson:"self_url,omitempty"`
	DetailsURL     string `json:"details_url,omitempty" bson:"details_url,omitempty"`
	ReceiptURL     string `json:"receipt_url,omitempty" bson:"receipt_url,omitempty"`
	LabelURL       string `json:"label_url,omitempty" bson:"label_url,omitempty"`
}

// ShipmentRecord is a created shipment as persisted by the gateway.
type ShipmentRecord struct {
	ID             string         `json:"id" bson:"_id,omitempty"`
	CustomerNumber string         `json:"customer_number" bson:"customer_number"`
	ServiceCode    string         `json:"service_code" bson:"service_code"`
	Origin         Location       `json:"origin" bson:"origin"`
	Destination    Location       `json:"destination" bson:"destination"`
	Packages       []Package      `json:"packages" bson:"packages"`
	Carrier        ShipmentResult `json:"carrier" bson:"carrier"`
	IdempotencyKey string         `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
}
