package canadapost

import (
	"fmt"
	"strings"
	"time"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// ParseTracking reads a tracking-detail document. Events keep the carrier
// order, which is newest first.
func ParseTracking(body []byte) (*domain.TrackingResult, error) {
	const op = "parse tracking"

	doc, err := readDocument(body)
	if err != nil {
		return nil, domain.Malformed(op, err)
	}
	root := doc.SelectElement("tracking-detail")
	if root == nil {
		return nil, domain.Malformed(op, domain.ErrNoTracking)
	}

	occurrences := root.FindElements("./significant-events/occurrence")
	events := make([]domain.TrackingEvent, 0, len(occurrences))
	for _, occ := range occurrences {
		ts, err := eventTime(childText(occ, "event-date"), childText(occ, "event-time"), childText(occ, "event-time-zone"))
		if err != nil {
			return nil, domain.Malformed(op, fmt.Errorf("event %s: %w", childText(occ, "event-identifier"), err))
		}
		events = append(events, domain.TrackingEvent{
			Name:     childText(occ, "event-identifier"),
			Time:     ts,
			Location: joinNonEmpty(", ", childText(occ, "event-retail-name"), childText(occ, "event-site"), childText(occ, "event-province")),
			Message:  childText(occ, "event-description"),
		})
	}

	var expected time.Time
	if s := childText(root, "expected-delivery-date"); s != "" {
		if expected, err = time.Parse(dateLayout, s); err != nil {
			return nil, domain.Malformed(op, fmt.Errorf("expected-delivery-date %q: %w", s, err))
		}
	}

	var changed *time.Time
	if s := childText(root, "changed-expected-date"); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, domain.Malformed(op, fmt.Errorf("changed-expected-date %q: %w", s, err))
		}
		changed = &d
	}

	postal := childText(root, "destination-postal-id")
	return &domain.TrackingResult{
		Success:               true,
		ServiceName:           childText(root, "service-name"),
		ExpectedDate:          expected,
		ChangedDate:           changed,
		ChangeReason:          strings.TrimSpace(rawChildText(root, "changed-expected-delivery-reason")),
		DestinationPostalCode: postal,
		TrackingNumber:        childText(root, "pin"),
		CustomerNumber:        childText(root, "mailed-by-customer-number"),
		Events:                events,
		Destination:           domain.Location{PostalCode: postal},
	}, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
