package canadapost

import (
	"fmt"
	"slices"
)

const (
	ProductionURL = "https://soa-gw.canadapost.ca/"
	SandboxURL    = "https://ct.soa-gw.canadapost.ca/"
)

// Catalog is the fixed vocabulary of the web service: endpoint paths, media
// types, namespaces and service names. A Catalog is built once and never
// mutated; DefaultCatalog returns a fresh copy on every call.
type Catalog struct {
	RateNamespace             string
	ShipmentNamespace         string
	ContractShipmentNamespace string
	TrackingNamespace         string
	MessagesNamespace         string

	RatePath                string
	NonContractShipmentPath string // formatted with the customer number
	ContractShipmentPath    string // formatted with customer and mailed-on-behalf-of numbers
	PINTrackingPath         string // formatted with the pin
	DNCTrackingPath         string // formatted with the dnc

	RateMediaType             string
	TrackingMediaType         string
	ShipmentMediaType         string
	ContractShipmentMediaType string
	LabelMediaType            string

	Currency string

	services map[string]string
}

func DefaultCatalog() Catalog {
	return Catalog{
		RateNamespace:             "http://www.canadapost.ca/ws/ship/rate",
		ShipmentNamespace:         "http://www.canadapost.ca/ws/ncshipment",
		ContractShipmentNamespace: "http://www.canadapost.ca/ws/shipment",
		TrackingNamespace:         "http://www.canadapost.ca/ws/track",
		MessagesNamespace:         "http://www.canadapost.ca/ws/messages",

		RatePath:                "rs/ship/price",
		NonContractShipmentPath: "rs/%s/ncshipment",
		ContractShipmentPath:    "rs/%s/%s/shipment",
		PINTrackingPath:         "vis/track/pin/%s/detail",
		DNCTrackingPath:         "vis/track/dnc/%s/detail",

		RateMediaType:             "application/vnd.cpc.ship.rate+xml",
		TrackingMediaType:         "application/vnd.cpc.track+xml",
		ShipmentMediaType:         "application/vnd.cpc.ncshipment+xml",
		ContractShipmentMediaType: "application/vnd.cpc.shipment+xml",
		LabelMediaType:            "application/pdf",

		Currency: "CAD",

		services: map[string]string{
			"DOM.RP":        "Regular Parcel",
			"DOM.EP":        "Expedited Parcel",
			"DOM.XP":        "Xpresspost",
			"DOM.XP.CERT":   "Xpresspost Certified",
			"DOM.PC":        "Priority",
			"DOM.LIB":       "Library Books",
			"USA.EP":        "Expedited Parcel USA",
			"USA.PW.ENV":    "Priority Worldwide Envelope USA",
			"USA.PW.PAK":    "Priority Worldwide pak USA",
			"USA.PW.PARCEL": "Priority Worldwide Parcel USA",
			"USA.SP.AIR":    "Small Packet USA Air",
			"USA.TP":        "Tracked Packet USA",
			"USA.TP.LVM":    "Tracked Packet USA (LVM)",
			"USA.XP":        "Xpresspost USA",
			"INT.XP":        "Xpresspost International",
			"INT.IP.AIR":    "International Parcel Air",
			"INT.IP.SURF":   "International Parcel Surface",
			"INT.PW.ENV":    "Priority Worldwide Envelope Int'l",
			"INT.PW.PAK":    "Priority Worldwide pak Int'l",
			"INT.PW.PARCEL": "Priority Worldwide parcel Int'l",
			"INT.SP.AIR":    "Small Packet International Air",
			"INT.SP.SURF":   "Small Packet International Surface",
			"INT.TP":        "Tracked Packet International",
		},
	}
}

// ServiceName returns the display name of a service code and whether the code
// is known.
func (c Catalog) ServiceName(code string) (string, bool) {
	name, ok := c.services[code]
	return name, ok
}

// ServiceCodes returns every known service code in sorted order.
func (c Catalog) ServiceCodes() []string {
	codes := make([]string, 0, len(c.services))
	for code := range c.services {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

func (c Catalog) nonContractShipmentPath(customer string) string {
	return fmt.Sprintf(c.NonContractShipmentPath, customer)
}

func (c Catalog) contractShipmentPath(customer, mobo string) string {
	return fmt.Sprintf(c.ContractShipmentPath, customer, mobo)
}
