package canadapost

import (
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

var (
	vancouver = domain.Location{
		Name:       "Jane White",
		Address1:   "5555 Trafalgar St.",
		City:       "Vancouver",
		Province:   "BC",
		Country:    "CA",
		PostalCode: "V5J 2T2",
	}
	paris = domain.Location{
		Name:       "John Smith",
		Company:    "test",
		Phone:      "613-555-1212",
		Address1:   "5 avenue Anatole France - Champ de Mars",
		City:       "Paris",
		Country:    "FR",
		PostalCode: "75007",
	}
	sweater = domain.LineItem{
		SKU:             "SW-001",
		Description:     "Hand knitted wool sweater with reindeer pattern, size M",
		Quantity:        2,
		UnitWeightKg:    0.45,
		UnitValue:       decimal.RequireFromString("59.5"),
		HSTariffCode:    "6110.11",
		CountryOfOrigin: "CA",
	}
)

func buildShipment(t *testing.T, req domain.ShipmentRequest) *etree.Element {
	t.Helper()
	b, err := DefaultCatalog().BuildShipmentRequest(req)
	require.NoError(t, err)
	root := parseXML(t, b).Root()
	require.NotNil(t, root)
	return root
}

func baseShipment() domain.ShipmentRequest {
	return domain.ShipmentRequest{
		CustomerNumber: "0008035576",
		ServiceCode:    "DOM.EP",
		Sender:         home,
		Destination:    vancouver,
		Packages:       []domain.Package{pkgTube},
	}
}

func TestBuildShipmentRequest_MissingCustomerNumber(t *testing.T) {
	req := baseShipment()
	req.CustomerNumber = ""

	_, err := DefaultCatalog().BuildShipmentRequest(req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingCustomerNumber))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestBuildShipmentRequest_NonContractDomestic(t *testing.T) {
	root := buildShipment(t, baseShipment())

	assert.Equal(t, "non-contract-shipment", root.Tag)
	assert.Equal(t, "http://www.canadapost.ca/ws/ncshipment", root.SelectAttrValue("xmlns", ""))
	assert.Equal(t, []string{"delivery-spec"}, childTags(root))

	spec := root.SelectElement("delivery-spec")
	assert.Equal(t, []string{
		"service-code",
		"sender",
		"destination",
		"parcel-characteristics",
		"preferences",
	}, childTags(spec))
	assert.Equal(t, "DOM.EP", textAt(t, spec, "./service-code"))
}

func TestBuildShipmentRequest_SenderBlock(t *testing.T) {
	req := baseShipment()
	req.Sender.Company = ""
	req.Sender.Address2 = "Suite 100"
	spec := buildShipment(t, req).SelectElement("delivery-spec")

	sender := spec.SelectElement("sender")
	assert.Equal(t, []string{"name", "company", "contact-phone", "address-details"}, childTags(sender))
	assert.Equal(t, "John Smith", textAt(t, sender, "./company"))
	assert.Equal(t, "613-555-1212", textAt(t, sender, "./contact-phone"))
	assert.Equal(t, "Suite 100", textAt(t, sender, "./address-details/address-line-2"))
	assert.Equal(t, "K1P1J1", textAt(t, sender, "./address-details/postal-zip-code"))
	assert.Nil(t, sender.FindElement("./address-details/country-code"))
}

func TestBuildShipmentRequest_DestinationBlock(t *testing.T) {
	spec := buildShipment(t, baseShipment()).SelectElement("delivery-spec")

	dest := spec.SelectElement("destination")
	assert.Equal(t, []string{"name", "address-details"}, childTags(dest))
	assert.Nil(t, dest.SelectElement("company"))
	assert.Equal(t, "CA", textAt(t, dest, "./address-details/country-code"))
	assert.Equal(t, "V5J2T2", textAt(t, dest, "./address-details/postal-zip-code"))
	assert.Nil(t, dest.FindElement("./address-details/address-line-2"))
}

func TestBuildShipmentRequest_PreferencesDefaultsAndOverrides(t *testing.T) {
	spec := buildShipment(t, baseShipment()).SelectElement("delivery-spec")
	assert.Equal(t, "true", textAt(t, spec, "./preferences/show-packing-instructions"))
	assert.Equal(t, "false", textAt(t, spec, "./preferences/show-postage-rate"))
	assert.Equal(t, "true", textAt(t, spec, "./preferences/show-insured-value"))

	yes, no := true, false
	req := baseShipment()
	req.Preferences = domain.Preferences{ShowPostageRate: &yes, ShowInsuredValue: &no}
	spec = buildShipment(t, req).SelectElement("delivery-spec")
	assert.Equal(t, "true", textAt(t, spec, "./preferences/show-packing-instructions"))
	assert.Equal(t, "true", textAt(t, spec, "./preferences/show-postage-rate"))
	assert.Equal(t, "false", textAt(t, spec, "./preferences/show-insured-value"))
}

func TestBuildShipmentRequest_ParcelDimensionsAndDocumentFlag(t *testing.T) {
	req := baseShipment()
	req.Packages = []domain.Package{{WeightKg: 2, Dimensions: []float64{30, 20, 10}}}
	spec := buildShipment(t, req).SelectElement("delivery-spec")

	parcel := spec.SelectElement("parcel-characteristics")
	assert.Equal(t, []string{"weight", "dimensions", "document"}, childTags(parcel))
	assert.Equal(t, "2.000", textAt(t, parcel, "./weight"))
	assert.Equal(t, "30.0", textAt(t, parcel, "./dimensions/length"))
	assert.Equal(t, "20.0", textAt(t, parcel, "./dimensions/width"))
	assert.Equal(t, "10.0", textAt(t, parcel, "./dimensions/height"))
	assert.Equal(t, "false", textAt(t, parcel, "./document"))
}

func TestBuildShipmentRequest_DimensionsSkippedWhenIncompleteOrZero(t *testing.T) {
	for _, dims := range [][]float64{{30, 20}, {0, 0, 0}, nil} {
		req := baseShipment()
		req.Packages = []domain.Package{{WeightKg: 2, Dimensions: dims}}
		parcel := buildShipment(t, req).FindElement("./delivery-spec/parcel-characteristics")
		assert.Nil(t, parcel.SelectElement("dimensions"), "dims %v", dims)
	}
}

func TestBuildShipmentRequest_NotificationAndOptions(t *testing.T) {
	req := baseShipment()
	req.NotificationEmail = "jane@example.com"
	req.Options = domain.ShippingOptions{SignatureRequired: true, DeliveryConfirmation: true}
	spec := buildShipment(t, req).SelectElement("delivery-spec")

	assert.Equal(t, []string{
		"service-code",
		"sender",
		"destination",
		"options",
		"parcel-characteristics",
		"notification",
		"preferences",
	}, childTags(spec))
	assert.Equal(t, []string{"SO", "DC"}, optionCodes(spec.SelectElement("options")))
	assert.Equal(t, "jane@example.com", textAt(t, spec, "./notification/email"))
	for _, tag := range []string{"on-shipment", "on-exception", "on-delivery"} {
		assert.Equal(t, "true", textAt(t, spec, "./notification/"+tag))
	}
}

func TestBuildShipmentRequest_CustomsOnlyOutsideCanada(t *testing.T) {
	spec := buildShipment(t, baseShipment()).SelectElement("delivery-spec")
	assert.Nil(t, spec.SelectElement("customs"))

	req := baseShipment()
	req.Destination = beverlyHills
	req.LineItems = []domain.LineItem{sweater}
	spec = buildShipment(t, req).SelectElement("delivery-spec")

	customs := spec.SelectElement("customs")
	require.NotNil(t, customs)
	assert.Equal(t, "USD", textAt(t, customs, "./currency"))
	assert.Equal(t, "SOG", textAt(t, customs, "./reason-for-export"))

	item := customs.FindElement("./sku-list/item")
	require.NotNil(t, item)
	assert.Equal(t, []string{
		"hs-tariff-code",
		"sku",
		"customs-description",
		"unit-weight",
		"customs-value-per-unit",
		"customs-number-of-units",
		"country-of-origin",
	}, childTags(item))
	assert.Equal(t, "0.450", textAt(t, item, "./unit-weight"))
	assert.Equal(t, "59.50", textAt(t, item, "./customs-value-per-unit"))
	assert.Equal(t, "2", textAt(t, item, "./customs-number-of-units"))
	desc := textAt(t, item, "./customs-description")
	assert.Len(t, desc, 44)
	assert.True(t, strings.HasPrefix(sweater.Description, desc))
}

func TestBuildShipmentRequest_CustomsCurrency(t *testing.T) {
	req := baseShipment()
	req.Destination = paris
	req.LineItems = []domain.LineItem{sweater}
	customs := buildShipment(t, req).FindElement("./delivery-spec/customs")
	assert.Equal(t, "CAD", textAt(t, customs, "./currency"))
	assert.Nil(t, customs.SelectElement("conversion-from-cad"))

	rate := decimal.RequireFromString("0.68")
	req.Customs = domain.CustomsInfo{Currency: "EUR", ConversionFromCAD: &rate, AdditionalInfo: "gift"}
	customs = buildShipment(t, req).FindElement("./delivery-spec/customs")
	assert.Equal(t, "EUR", textAt(t, customs, "./currency"))
	assert.Equal(t, "0.68", textAt(t, customs, "./conversion-from-cad"))
	assert.Equal(t, "gift", textAt(t, customs, "./additional-customs-info"))

	dest := buildShipment(t, req).FindElement("./delivery-spec/destination")
	assert.Equal(t, "test", textAt(t, dest, "./company"))
	assert.Equal(t, "613-555-1212", textAt(t, dest, "./client-voice-number"))
	assert.Equal(t, "FR", textAt(t, dest, "./address-details/country-code"))
}

func TestBuildShipmentRequest_ContractMode(t *testing.T) {
	req := baseShipment()
	req.ContractID = "0040662521"
	req.GroupID = "test"
	root := buildShipment(t, req)

	assert.Equal(t, "shipment", root.Tag)
	assert.Equal(t, "http://www.canadapost.ca/ws/shipment", root.SelectAttrValue("xmlns", ""))
	assert.Equal(t, []string{"group-id", "requested-shipping-point", "delivery-spec"}, childTags(root))
	assert.Equal(t, "test", textAt(t, root, "./group-id"))
	assert.Equal(t, "K1P1J1", textAt(t, root, "./requested-shipping-point"))

	spec := root.SelectElement("delivery-spec")
	assert.Equal(t, []string{
		"service-code",
		"sender",
		"destination",
		"parcel-characteristics",
		"print-preferences",
		"preferences",
		"settlement-info",
	}, childTags(spec))
	assert.Equal(t, "paper", textAt(t, spec, "./print-preferences/output-format"))
	assert.Equal(t, "PDF", textAt(t, spec, "./print-preferences/encoding"))
	assert.Equal(t, "0040662521", textAt(t, spec, "./settlement-info/contract-id"))
	assert.Equal(t, "Account", textAt(t, spec, "./settlement-info/intended-method-of-payment"))
}

func TestBuildShipmentRequest_UnknownDestinationCountry(t *testing.T) {
	for _, country := range []string{"Atlantis", "EU", ""} {
		req := baseShipment()
		req.Destination.Country = country

		b, err := DefaultCatalog().BuildShipmentRequest(req)

		assert.Nil(t, b, country)
		assert.True(t, errors.Is(err, domain.ErrUnknownCountry), country)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), country)
	}
}
