package canadapost

import (
	"github.com/beevik/etree"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// destinationNode selects the rate destination shape from the country code.
func destinationNode(loc domain.Location) *etree.Element {
	el := etree.NewElement("destination")
	switch code := loc.CountryCode(); code {
	case "CA":
		addText(el.CreateElement("domestic"), "postal-code", loc.SanitizedPostalCode())
	case "US":
		addText(el.CreateElement("united-states"), "zip-code", loc.SanitizedPostalCode())
	default:
		addText(el.CreateElement("international"), "country-code", code)
	}
	return el
}
