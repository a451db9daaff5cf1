package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLocation_SanitizedPostalCode(t *testing.T) {
	cases := map[string]string{
		"K1P 1J1":    "K1P1J1",
		" k1p\t1j1 ": "K1P1J1",
		"90210":      "90210",
		"":           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Location{PostalCode: in}.SanitizedPostalCode(), in)
	}
}

func TestLocation_CountryCode(t *testing.T) {
	assert.Equal(t, "CA", Location{Country: "CA"}.CountryCode())
	assert.Equal(t, "US", Location{Country: "us"}.CountryCode())
	assert.Equal(t, "JP", Location{Country: "Japan"}.CountryCode())
	assert.Equal(t, "FR", Location{Country: "france"}.CountryCode())
	assert.Equal(t, "", Location{Country: "Atlantis"}.CountryCode())
	assert.Equal(t, "", Location{}.CountryCode())
}

func TestLocation_Address2And3(t *testing.T) {
	assert.Equal(t, "Suite 100 Floor 2", Location{Address2: "Suite 100", Address3: "Floor 2"}.Address2And3())
	assert.Equal(t, "Floor 2", Location{Address2: "  ", Address3: "Floor 2"}.Address2And3())
	assert.Equal(t, "", Location{}.Address2And3())
}

func TestAggregate(t *testing.T) {
	totals := Aggregate([]Package{
		{WeightKg: 0.025, Tube: true},
		{WeightKg: 3.40194277, Oversized: true},
	})
	assert.InDelta(t, 3.42694277, totals.WeightKg, 1e-9)
	assert.True(t, totals.Tube)
	assert.True(t, totals.Oversized)
	assert.False(t, totals.Unpackaged)

	assert.Equal(t, ParcelTotals{}, Aggregate(nil))
}

func TestShippingOptions_Codes(t *testing.T) {
	assert.True(t, ShippingOptions{}.IsEmpty())

	cov := decimal.NewFromInt(100)
	opts := ShippingOptions{
		LeaveAtDoor:         true,
		COD:                 &CashOnDelivery{Amount: decimal.NewFromInt(50)},
		Coverage:            &cov,
		ProofOfAge18:        true,
		DeliverToPostOffice: "0123",
	}
	assert.Equal(t, []string{"COD", "COV", "PA18", "LAD", "D2PO"}, opts.Codes())
}
