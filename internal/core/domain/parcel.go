package domain

import "github.com/shopspring/decimal"

// Package is one physical parcel. Dimensions are centimetres, longest first
// when the caller knows the order; at most three values are meaningful.
type Package struct {
	WeightKg   float64   `json:"weight_kg" bson:"weight_kg" yaml:"weight_kg"`
	Dimensions []float64 `json:"dimensions_cm,omitempty" bson:"dimensions_cm,omitempty" yaml:"dimensions_cm"`
	Tube       bool      `json:"tube,omitempty" bson:"tube,omitempty" yaml:"tube"`
	Oversized  bool      `json:"oversized,omitempty" bson:"oversized,omitempty" yaml:"oversized"`
	Unpackaged bool      `json:"unpackaged,omitempty" bson:"unpackaged,omitempty" yaml:"unpackaged"`
}

// LineItem is a unit of merchandise declared on customs documents.
type LineItem struct {
	SKU              string          `json:"sku,omitempty" bson:"sku,omitempty" yaml:"sku"`
	Description      string          `json:"description" bson:"description" yaml:"description"`
	Quantity         int             `json:"quantity" bson:"quantity" yaml:"quantity"`
	UnitWeightKg     float64         `json:"unit_weight_kg" bson:"unit_weight_kg" yaml:"unit_weight_kg"`
	UnitValue        decimal.Decimal `json:"unit_value" bson:"unit_value" yaml:"unit_value"`
	HSTariffCode     string          `json:"hs_tariff_code,omitempty" bson:"hs_tariff_code,omitempty" yaml:"hs_tariff_code"`
	CountryOfOrigin  string          `json:"country_of_origin,omitempty" bson:"country_of_origin,omitempty" yaml:"country_of_origin"`
	ProvinceOfOrigin string          `json:"province_of_origin,omitempty" bson:"province_of_origin,omitempty" yaml:"province_of_origin"`
}

// ParcelTotals is the reduction of a set of packages into the single parcel
// the carrier prices: summed weight and OR-ed shape flags.
type ParcelTotals struct {
	WeightKg   float64
	Tube       bool
	Oversized  bool
	Unpackaged bool
}

// Aggregate reduces packages into ParcelTotals. An empty slice weighs zero.
func Aggregate(pkgs []Package) ParcelTotals {
	var t ParcelTotals
	for _, p := range pkgs {
		t.WeightKg += p.WeightKg
		t.Tube = t.Tube || p.Tube
		t.Oversized = t.Oversized || p.Oversized
		t.Unpackaged = t.Unpackaged || p.Unpackaged
	}
	return t
}
