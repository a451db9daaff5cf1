package canadapost

import (
	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// ParseShipment reads the shipment-info document returned on creation, in
// either its contract or non-contract form.
func ParseShipment(body []byte) (*domain.ShipmentResult, error) {
	const op = "parse shipment"

	doc, err := readDocument(body)
	if err != nil {
		return nil, domain.Malformed(op, err)
	}
	root := doc.SelectElement("non-contract-shipment-info")
	if root == nil {
		root = doc.SelectElement("shipment-info")
	}
	if root == nil {
		return nil, domain.Malformed(op, domain.ErrNoShipment)
	}

	res := &domain.ShipmentResult{
		Success:        true,
		ShipmentID:     childText(root, "shipment-id"),
		TrackingNumber: childText(root, "tracking-pin"),
	}
	for _, link := range root.FindElements("./links/link") {
		href := link.SelectAttrValue("href", "")
		switch link.SelectAttrValue("rel", "") {
		case "self":
			res.SelfURL = href
		case "details":
			res.DetailsURL = href
		case "receipt":
			res.ReceiptURL = href
		case "label":
			if res.LabelURL == "" {
				res.LabelURL = href
			}
		}
	}
	return res, nil
}
