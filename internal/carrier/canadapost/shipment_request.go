package canadapost

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

const (
	maxCustomsDescription = 44
	reasonSaleOfGoods     = "SOG"
	defaultOutputFormat   = "paper"
	labelEncoding         = "PDF"
	paymentMethodAccount  = "Account"
)

// BuildShipmentRequest renders a non-contract-shipment document, or a shipment
// document in contract mode.
func (c Catalog) BuildShipmentRequest(req domain.ShipmentRequest) ([]byte, error) {
	if req.CustomerNumber == "" {
		return nil, domain.InvalidInput("build shipment request", domain.ErrMissingCustomerNumber)
	}
	if req.Destination.CountryCode() == "" {
		return nil, domain.InvalidInput("build shipment request", domain.ErrUnknownCountry)
	}

	var (
		doc  *etree.Document
		root *etree.Element
	)
	if req.ContractMode() {
		doc, root = newDocument("shipment", c.ContractShipmentNamespace)
		addOptionalText(root, "group-id", req.GroupID)
		shippingPoint := req.RequestedShippingPoint
		if shippingPoint == "" {
			shippingPoint = req.Sender.SanitizedPostalCode()
		}
		addText(root, "requested-shipping-point", shippingPoint)
	} else {
		doc, root = newDocument("non-contract-shipment", c.ShipmentNamespace)
	}

	delivery := root.CreateElement("delivery-spec")
	addText(delivery, "service-code", req.ServiceCode)
	delivery.AddChild(senderNode(req.Sender))
	delivery.AddChild(recipientNode(req.Destination))
	if opts := optionsNode(req.Options); opts != nil {
		delivery.AddChild(opts)
	}
	delivery.AddChild(shipmentParcelCharacteristics(req.Packages, req.Document))
	if req.NotificationEmail != "" {
		delivery.AddChild(notificationNode(req.NotificationEmail))
	}
	if req.ContractMode() {
		delivery.AddChild(printPreferencesNode(req.OutputFormat))
	}
	delivery.AddChild(preferencesNode(req.Preferences))
	if req.ContractMode() {
		delivery.AddChild(settlementInfoNode(req.ContractID))
	}
	if req.Destination.CountryCode() != "CA" {
		delivery.AddChild(customsNode(req.Destination, req.LineItems, req.Customs))
	}

	b, err := writeDocument(doc)
	if err != nil {
		return nil, domain.InvalidInput("build shipment request", err)
	}
	return b, nil
}

func senderNode(loc domain.Location) *etree.Element {
	el := etree.NewElement("sender")
	addText(el, "name", loc.Name)
	company := loc.Company
	if company == "" {
		company = loc.Name
	}
	addText(el, "company", company)
	addText(el, "contact-phone", loc.Phone)
	el.AddChild(addressDetails(loc, false))
	return el
}

func recipientNode(loc domain.Location) *etree.Element {
	el := etree.NewElement("destination")
	addText(el, "name", loc.Name)
	addOptionalText(el, "company", loc.Company)
	addOptionalText(el, "client-voice-number", loc.Phone)
	el.AddChild(addressDetails(loc, true))
	return el
}

func addressDetails(loc domain.Location, withCountry bool) *etree.Element {
	el := etree.NewElement("address-details")
	addText(el, "address-line-1", loc.Address1)
	addOptionalText(el, "address-line-2", loc.Address2And3())
	addText(el, "city", loc.City)
	addOptionalText(el, "prov-state", loc.Province)
	if withCountry {
		addText(el, "country-code", loc.CountryCode())
	}
	addOptionalText(el, "postal-zip-code", loc.SanitizedPostalCode())
	return el
}

func notificationNode(email string) *etree.Element {
	el := etree.NewElement("notification")
	addText(el, "email", email)
	addBool(el, "on-shipment", true)
	addBool(el, "on-exception", true)
	addBool(el, "on-delivery", true)
	return el
}

func printPreferencesNode(format string) *etree.Element {
	if format == "" {
		format = defaultOutputFormat
	}
	el := etree.NewElement("print-preferences")
	addText(el, "output-format", format)
	addText(el, "encoding", labelEncoding)
	return el
}

func preferencesNode(p domain.Preferences) *etree.Element {
	el := etree.NewElement("preferences")
	addBool(el, "show-packing-instructions", boolOr(p.ShowPackingInstructions, true))
	addBool(el, "show-postage-rate", boolOr(p.ShowPostageRate, false))
	addBool(el, "show-insured-value", boolOr(p.ShowInsuredValue, true))
	return el
}

func settlementInfoNode(contractID string) *etree.Element {
	el := etree.NewElement("settlement-info")
	addText(el, "contract-id", contractID)
	addText(el, "intended-method-of-payment", paymentMethodAccount)
	return el
}

func customsNode(dest domain.Location, items []domain.LineItem, info domain.CustomsInfo) *etree.Element {
	el := etree.NewElement("customs")
	currency := customsCurrency(dest, info.Currency)
	addText(el, "currency", currency)
	if currency != "CAD" && info.ConversionFromCAD != nil {
		addText(el, "conversion-from-cad", info.ConversionFromCAD.String())
	}
	reason := info.ReasonForExport
	if reason == "" {
		reason = reasonSaleOfGoods
	}
	addText(el, "reason-for-export", reason)
	addOptionalText(el, "additional-customs-info", info.AdditionalInfo)

	skus := el.CreateElement("sku-list")
	for _, item := range items {
		it := skus.CreateElement("item")
		addOptionalText(it, "hs-tariff-code", item.HSTariffCode)
		addOptionalText(it, "sku", item.SKU)
		addText(it, "customs-description", truncate(item.Description, maxCustomsDescription))
		addText(it, "unit-weight", formatWeight(item.UnitWeightKg))
		addText(it, "customs-value-per-unit", formatAmount(item.UnitValue))
		addText(it, "customs-number-of-units", strconv.Itoa(item.Quantity))
		addOptionalText(it, "country-of-origin", item.CountryOfOrigin)
		addOptionalText(it, "province-of-origin", item.ProvinceOfOrigin)
	}
	return el
}

// customsCurrency picks the declared currency. Destinations other than Canada
// and the United States declare in CAD unless the caller overrides it.
func customsCurrency(dest domain.Location, override string) string {
	if override != "" {
		return override
	}
	if dest.CountryCode() == "US" {
		return "USD"
	}
	return "CAD"
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
