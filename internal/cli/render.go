package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

var (
	brand   = lipgloss.Color("#DA291C")
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	faint   = lipgloss.Color("#3F3F46")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(brand)
	labelStyle = lipgloss.NewStyle().Foreground(dim).Width(18)
	valueStyle = lipgloss.NewStyle().Foreground(fg)
	priceStyle = lipgloss.NewStyle().Bold(true).Foreground(success).Width(10).Align(lipgloss.Right)
	codeStyle  = lipgloss.NewStyle().Foreground(dim).Width(14)
	nameStyle  = lipgloss.NewStyle().Foreground(fg).Width(28)
	dimStyle   = lipgloss.NewStyle().Foreground(dim)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(danger)

	separatorLine = lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("─", 64))
)

func field(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func renderRates(res *domain.RateResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Canada Post rates") + "\n")
	b.WriteString(separatorLine + "\n")
	if len(res.Rates) == 0 {
		b.WriteString(dimStyle.Render("no services available for this parcel") + "\n")
		return b.String()
	}
	for _, r := range res.Rates {
		delivery := "no estimate"
		if len(r.DeliveryRange) == 2 {
			delivery = r.DeliveryRange[0].Format("2006-01-02")
			if !r.DeliveryRange[1].Equal(r.DeliveryRange[0]) {
				delivery += " to " + r.DeliveryRange[1].Format("2006-01-02")
			}
		}
		b.WriteString(codeStyle.Render(r.ServiceCode))
		b.WriteString(nameStyle.Render(r.ServiceName))
		b.WriteString(priceStyle.Render(r.TotalPrice.StringFixed(2) + " " + r.Currency))
		b.WriteString("  " + dimStyle.Render(delivery) + "\n")
	}
	return b.String()
}

func renderTracking(res *domain.TrackingResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tracking "+res.TrackingNumber) + "\n")
	b.WriteString(separatorLine + "\n")
	b.WriteString(field("Service", res.ServiceName))
	if !res.ExpectedDate.IsZero() {
		b.WriteString(field("Expected", res.ExpectedDate.Format("2006-01-02")))
	}
	if res.ChangedDate != nil {
		b.WriteString(field("Changed", fmt.Sprintf("%s (%s)", res.ChangedDate.Format("2006-01-02"), res.ChangeReason)))
	}
	if res.DestinationPostalCode != "" {
		b.WriteString(field("Destination", res.DestinationPostalCode))
	}
	b.WriteString(separatorLine + "\n")
	for _, e := range res.Events {
		b.WriteString(dimStyle.Render(e.Time.Format(time.RFC3339)) + "  ")
		b.WriteString(valueStyle.Render(e.Message))
		if e.Location != "" {
			b.WriteString(dimStyle.Render("  " + e.Location))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderShipment(res *domain.ShipmentResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Shipment created") + "\n")
	b.WriteString(separatorLine + "\n")
	b.WriteString(field("Shipment id", res.ShipmentID))
	b.WriteString(field("Tracking number", res.TrackingNumber))
	if res.LabelURL != "" {
		b.WriteString(field("Label", res.LabelURL))
	}
	if res.ReceiptURL != "" {
		b.WriteString(field("Receipt", res.ReceiptURL))
	}
	return b.String()
}
