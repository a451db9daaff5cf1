package canadapost

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var (
	// 25 g mailing tube.
	pkgTube = domain.Package{WeightKg: 0.025, Dimensions: []float64{93, 10}, Tube: true}
	// 7.5 lb box, 15x10x4.5 in.
	pkgBox = domain.Package{WeightKg: 3.40194277, Dimensions: []float64{38.1, 25.4, 11.43}}

	home = domain.Location{
		Name:       "John Smith",
		Company:    "test",
		Phone:      "613-555-1212",
		Address1:   "123 Elm St.",
		City:       "Ottawa",
		Province:   "ON",
		Country:    "CA",
		PostalCode: "K1P 1J1",
	}
	beverlyHills = domain.Location{
		Name:       "Frank White",
		Address1:   "999 Wiltshire Blvd",
		City:       "Beverly Hills",
		Province:   "CA",
		Country:    "US",
		PostalCode: "90210",
	}
	tokyo = domain.Location{Country: "Japan", City: "Tokyo"}
)

func parseXML(t *testing.T, b []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(b))
	return doc
}

func childTags(el *etree.Element) []string {
	var tags []string
	for _, c := range el.ChildElements() {
		tags = append(tags, c.Tag)
	}
	return tags
}

func textAt(t *testing.T, el *etree.Element, path string) string {
	t.Helper()
	found := el.FindElement(path)
	require.NotNil(t, found, "missing %s", path)
	return found.Text()
}

// ---------------------------------------------------------------------------
// parcel-characteristics
// ---------------------------------------------------------------------------

func TestParcelCharacteristics_SingleItem(t *testing.T) {
	el := parcelCharacteristics([]domain.Package{pkgTube})
	assert.Equal(t, "0.025", textAt(t, el, "./weight"))
}

func TestParcelCharacteristics_MultipleItemsSumWeight(t *testing.T) {
	el := parcelCharacteristics([]domain.Package{pkgTube, pkgBox})
	assert.Len(t, el.SelectElements("weight"), 1)
	assert.Equal(t, "3.427", textAt(t, el, "./weight"))
}

func TestParcelCharacteristics_NoItems(t *testing.T) {
	el := parcelCharacteristics(nil)
	assert.Equal(t, "0.000", textAt(t, el, "./weight"))
	assert.Equal(t, []string{"weight"}, childTags(el))
}

func TestParcelCharacteristics_FlagsOnlyWhenSet(t *testing.T) {
	cases := []struct {
		name string
		pkg  domain.Package
		tag  string
	}{
		{"tube", domain.Package{WeightKg: 0.025, Tube: true}, "mailing-tube"},
		{"oversized", domain.Package{WeightKg: 0.025, Oversized: true}, "oversized"},
		{"unpackaged", domain.Package{WeightKg: 0.025, Unpackaged: true}, "unpackaged"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			el := parcelCharacteristics([]domain.Package{tc.pkg})
			assert.Equal(t, []string{"weight", tc.tag}, childTags(el))
			assert.Equal(t, "true", textAt(t, el, "./"+tc.tag))
		})
	}

	plain := parcelCharacteristics([]domain.Package{{WeightKg: 1}})
	assert.Equal(t, []string{"weight"}, childTags(plain))
}

func TestParcelCharacteristics_FlagIsOrAcrossItems(t *testing.T) {
	el := parcelCharacteristics([]domain.Package{{WeightKg: 1}, {WeightKg: 1, Oversized: true}})
	assert.Equal(t, []string{"weight", "oversized"}, childTags(el))
}

// ---------------------------------------------------------------------------
// destination
// ---------------------------------------------------------------------------

func TestDestinationNode_Domestic(t *testing.T) {
	el := destinationNode(home)
	assert.Equal(t, "K1P1J1", textAt(t, el, "./domestic/postal-code"))
	assert.Len(t, el.ChildElements(), 1)
}

func TestDestinationNode_UnitedStates(t *testing.T) {
	el := destinationNode(beverlyHills)
	assert.Equal(t, "90210", textAt(t, el, "./united-states/zip-code"))
}

func TestDestinationNode_International(t *testing.T) {
	el := destinationNode(tokyo)
	assert.Equal(t, "JP", textAt(t, el, "./international/country-code"))

	el = destinationNode(domain.Location{Country: "JP"})
	assert.Equal(t, "JP", textAt(t, el, "./international/country-code"))
}

// ---------------------------------------------------------------------------
// options
// ---------------------------------------------------------------------------

func optionCodes(el *etree.Element) []string {
	var codes []string
	for _, o := range el.FindElements("./option/option-code") {
		codes = append(codes, o.Text())
	}
	return codes
}

func TestOptionsNode_NoOptions(t *testing.T) {
	assert.Nil(t, optionsNode(domain.ShippingOptions{}))
}

func TestOptionsNode_Signature(t *testing.T) {
	el := optionsNode(domain.ShippingOptions{SignatureRequired: true})
	require.NotNil(t, el)
	assert.Equal(t, []string{"SO"}, optionCodes(el))
}

func TestOptionsNode_Coverage(t *testing.T) {
	amount := decimal.NewFromFloat(100.00)
	el := optionsNode(domain.ShippingOptions{Coverage: &amount})
	require.NotNil(t, el)
	assert.Equal(t, []string{"COV"}, optionCodes(el))
	assert.Equal(t, "100.00", textAt(t, el, "./option/option-amount"))
}

func TestOptionsNode_COD(t *testing.T) {
	el := optionsNode(domain.ShippingOptions{COD: &domain.CashOnDelivery{
		Amount:           decimal.RequireFromString("100"),
		IncludesShipping: true,
		MethodOfPayment:  "CHQ",
	}})
	require.NotNil(t, el)
	assert.Equal(t, []string{"COD"}, optionCodes(el))
	assert.Equal(t, "100.00", textAt(t, el, "./option/option-amount"))
	assert.Equal(t, "true", textAt(t, el, "./option/option-qualifier-1"))
	assert.Equal(t, "CHQ", textAt(t, el, "./option/option-qualifier-2"))
}

func TestOptionsNode_OtherOptionsInOrder(t *testing.T) {
	el := optionsNode(domain.ShippingOptions{
		LeaveAtDoor:   true,
		DoNotSafeDrop: true,
		HoldForPickup: true,
		ProofOfAge19:  true,
		ProofOfAge18:  true,
	})
	require.NotNil(t, el)
	assert.Equal(t, []string{"PA18", "PA19", "HFP", "DNS", "LAD"}, optionCodes(el))
}

func TestOptionsNode_DeliverToPostOffice(t *testing.T) {
	el := optionsNode(domain.ShippingOptions{DeliverToPostOffice: "0000102941"})
	require.NotNil(t, el)
	assert.Equal(t, []string{"D2PO"}, optionCodes(el))
	assert.Equal(t, "0000102941", textAt(t, el, "./option/option-qualifier-2"))
}

// ---------------------------------------------------------------------------
// mailing-scenario
// ---------------------------------------------------------------------------

func TestBuildRateRequest_ElementOrder(t *testing.T) {
	cat := DefaultCatalog()
	b, err := cat.BuildRateRequest(domain.RateRequest{
		CustomerNumber:      "0008035576",
		ContractID:          "0040662521",
		Origin:              home,
		Destination:         beverlyHills,
		Packages:            []domain.Package{pkgTube},
		Options:             domain.ShippingOptions{SignatureRequired: true},
		ServiceCodes:        []string{"USA.EP"},
		ExpectedMailingDate: time.Date(2012, 1, 17, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	root := parseXML(t, b).Root()
	require.NotNil(t, root)
	assert.Equal(t, "mailing-scenario", root.Tag)
	assert.Equal(t, "http://www.canadapost.ca/ws/ship/rate", root.SelectAttrValue("xmlns", ""))
	assert.Equal(t, []string{
		"customer-number",
		"contract-id",
		"quote-type",
		"expected-mailing-date",
		"options",
		"parcel-characteristics",
		"services",
		"origin-postal-code",
		"destination",
	}, childTags(root))
	assert.Equal(t, "commercial", textAt(t, root, "./quote-type"))
	assert.Equal(t, "2012-01-17", textAt(t, root, "./expected-mailing-date"))
	assert.Equal(t, "K1P1J1", textAt(t, root, "./origin-postal-code"))
	assert.Equal(t, "90210", textAt(t, root, "./destination/united-states/zip-code"))
	assert.Equal(t, "USA.EP", textAt(t, root, "./services/service-code"))
}

func TestBuildRateRequest_MinimalOmitsOptionalBlocks(t *testing.T) {
	b, err := DefaultCatalog().BuildRateRequest(domain.RateRequest{
		CustomerNumber: "0008035576",
		Origin:         home,
		Destination:    tokyo,
		Packages:       []domain.Package{pkgTube, pkgBox},
	})
	require.NoError(t, err)

	root := parseXML(t, b).Root()
	assert.Equal(t, []string{
		"customer-number",
		"quote-type",
		"parcel-characteristics",
		"origin-postal-code",
		"destination",
	}, childTags(root))
	assert.Equal(t, "3.427", textAt(t, root, "./parcel-characteristics/weight"))
	assert.Equal(t, "JP", textAt(t, root, "./destination/international/country-code"))
}

func TestBuildRateRequest_Deterministic(t *testing.T) {
	cov := decimal.RequireFromString("250")
	req := domain.RateRequest{
		CustomerNumber: "0008035576",
		Origin:         home,
		Destination:    beverlyHills,
		Packages:       []domain.Package{pkgTube, pkgBox},
		Options:        domain.ShippingOptions{Coverage: &cov, ProofOfAge18: true},
	}
	cat := DefaultCatalog()

	first, err := cat.BuildRateRequest(req)
	require.NoError(t, err)
	second, err := cat.BuildRateRequest(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildRateRequest_UnknownDestinationCountry(t *testing.T) {
	for _, country := range []string{"Atlantis", "EU", "", "  "} {
		b, err := DefaultCatalog().BuildRateRequest(domain.RateRequest{
			CustomerNumber: "0008035576",
			Origin:         home,
			Destination:    domain.Location{Country: country, PostalCode: "12345"},
			Packages:       []domain.Package{pkgBox},
		})

		assert.Nil(t, b, country)
		assert.ErrorIs(t, err, domain.ErrUnknownCountry, country)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, country)
	}
}
