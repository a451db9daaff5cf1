package canadapost

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// ParseRates reads a price-quotes document. Quotes keep document order; an
// empty price-quotes element is a successful result with no rates.
func ParseRates(body []byte, origin, dest domain.Location) (*domain.RateResult, error) {
	const op = "parse rates"

	doc, err := readDocument(body)
	if err != nil {
		return nil, domain.Malformed(op, err)
	}
	root := doc.SelectElement("price-quotes")
	if root == nil {
		return nil, domain.Malformed(op, domain.ErrNoRateQuotes)
	}

	quotes := root.SelectElements("price-quote")
	rates := make([]domain.RateEstimate, 0, len(quotes))
	for _, q := range quotes {
		due := childText(q.SelectElement("price-details"), "due")
		price, err := decimal.NewFromString(due)
		if err != nil {
			return nil, domain.Malformed(op, fmt.Errorf("price-quote %s: due %q: %w", childText(q, "service-code"), due, err))
		}

		var deliveryRange []time.Time
		if expected := childText(q.SelectElement("service-standard"), "expected-delivery-date"); expected != "" {
			d, err := time.Parse(dateLayout, expected)
			if err != nil {
				return nil, domain.Malformed(op, fmt.Errorf("expected-delivery-date %q: %w", expected, err))
			}
			deliveryRange = []time.Time{d, d}
		}

		rates = append(rates, domain.RateEstimate{
			Origin:        origin,
			Destination:   dest,
			Carrier:       domain.CarrierName,
			ServiceCode:   childText(q, "service-code"),
			ServiceName:   childText(q, "service-name"),
			TotalPrice:    price,
			Currency:      "CAD",
			DeliveryRange: deliveryRange,
		})
	}

	return &domain.RateResult{Success: true, Rates: rates}, nil
}
