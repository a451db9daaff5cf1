package canadapost

import "github.com/99minutos/canadapost-gateway/internal/core/domain"

const dateLayout = "2006-01-02"

// BuildRateRequest renders the mailing-scenario document of a rate quote. The
// output depends only on req, so equal requests produce identical bytes.
func (c Catalog) BuildRateRequest(req domain.RateRequest) ([]byte, error) {
	if req.Destination.CountryCode() == "" {
		return nil, domain.InvalidInput("build rate request", domain.ErrUnknownCountry)
	}

	doc, root := newDocument("mailing-scenario", c.RateNamespace)

	addText(root, "customer-number", req.CustomerNumber)
	addOptionalText(root, "contract-id", req.ContractID)
	addText(root, "quote-type", "commercial")
	if !req.ExpectedMailingDate.IsZero() {
		addText(root, "expected-mailing-date", req.ExpectedMailingDate.Format(dateLayout))
	}
	if opts := optionsNode(req.Options); opts != nil {
		root.AddChild(opts)
	}
	root.AddChild(parcelCharacteristics(req.Packages))
	if len(req.ServiceCodes) > 0 {
		services := root.CreateElement("services")
		for _, code := range req.ServiceCodes {
			addText(services, "service-code", code)
		}
	}
	addText(root, "origin-postal-code", req.Origin.SanitizedPostalCode())
	root.AddChild(destinationNode(req.Destination))

	b, err := writeDocument(doc)
	if err != nil {
		return nil, domain.InvalidInput("build rate request", err)
	}
	return b, nil
}
