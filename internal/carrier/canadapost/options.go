package canadapost

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// optionsNode renders the options block, or nil when no option applies.
func optionsNode(opts domain.ShippingOptions) *etree.Element {
	codes := opts.Codes()
	if len(codes) == 0 {
		return nil
	}

	el := etree.NewElement("options")
	for _, code := range codes {
		opt := el.CreateElement("option")
		addText(opt, "option-code", code)

		switch code {
		case domain.OptionCOD:
			addText(opt, "option-amount", formatAmount(opts.COD.Amount))
			addText(opt, "option-qualifier-1", strconv.FormatBool(opts.COD.IncludesShipping))
			addOptionalText(opt, "option-qualifier-2", opts.COD.MethodOfPayment)
		case domain.OptionCoverage:
			addText(opt, "option-amount", formatAmount(*opts.Coverage))
		case domain.OptionDeliverToPostOffice:
			addText(opt, "option-qualifier-2", opts.DeliverToPostOffice)
		}
	}
	return el
}
