package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CarrierName is the display name reported on every estimate.
const CarrierName = "Canada Post PWS"

// RateEstimate is one priced service option returned by a rate quote.
type RateEstimate struct {
	Origin      Location        `json:"origin"`
	Destination Location        `json:"destination"`
	Carrier     string          `json:"carrier"`
	ServiceCode string          `json:"service_code"`
	ServiceName string          `json:"service_name"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Currency    string          `json:"currency"`
	// DeliveryRange is nil when the carrier gives no estimate, otherwise the
	// earliest and latest expected delivery dates.
	DeliveryRange []time.Time `json:"delivery_range"`
}

// RateResult wraps the estimates of a single rate quote, in carrier order.
type RateResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Rates   []RateEstimate `json:"rates"`
}
