package domain

import "github.com/shopspring/decimal"

// Carrier option codes, in the order they are emitted.
const (
	OptionCOD                   = "COD"
	OptionCoverage              = "COV"
	OptionSignature             = "SO"
	OptionProofOfAge18          = "PA18"
	OptionProofOfAge19          = "PA19"
	OptionHoldForPickup         = "HFP"
	OptionDoNotSafeDrop         = "DNS"
	OptionLeaveAtDoor           = "LAD"
	OptionDeliveryConfirmation  = "DC"
	OptionDeliverToPostOffice   = "D2PO"
	OptionReturnAtSenderExpense = "RASE"
	OptionReturnToSender        = "RTS"
	OptionAbandon               = "ABAN"
)

// CashOnDelivery configures the COD option.
type CashOnDelivery struct {
	Amount decimal.Decimal `json:"amount" bson:"amount" yaml:"amount"`
	// IncludesShipping adds the postage to the amount collected.
	IncludesShipping bool `json:"includes_shipping,omitempty" bson:"includes_shipping,omitempty" yaml:"includes_shipping"`
	// MethodOfPayment is one of CSH, CHQ, MOCC or the carrier default when empty.
	MethodOfPayment string `json:"method_of_payment,omitempty" bson:"method_of_payment,omitempty" yaml:"method_of_payment"`
}

// ShippingOptions is the set of carrier options attached to a rate request or
// a shipment. The zero value selects no option.
type ShippingOptions struct {
	COD                   *CashOnDelivery  `json:"cod,omitempty" bson:"cod,omitempty" yaml:"cod"`
	Coverage              *decimal.Decimal `json:"coverage,omitempty" bson:"coverage,omitempty" yaml:"coverage"`
	SignatureRequired     bool             `json:"signature_required,omitempty" bson:"signature_required,omitempty" yaml:"signature_required"`
	ProofOfAge18          bool             `json:"pa18,omitempty" bson:"pa18,omitempty" yaml:"pa18"`
	ProofOfAge19          bool             `json:"pa19,omitempty" bson:"pa19,omitempty" yaml:"pa19"`
	HoldForPickup         bool             `json:"hfp,omitempty" bson:"hfp,omitempty" yaml:"hfp"`
	DoNotSafeDrop         bool             `json:"dns,omitempty" bson:"dns,omitempty" yaml:"dns"`
	LeaveAtDoor           bool             `json:"lad,omitempty" bson:"lad,omitempty" yaml:"lad"`
	DeliveryConfirmation  bool             `json:"dc,omitempty" bson:"dc,omitempty" yaml:"dc"`
	DeliverToPostOffice   string           `json:"d2po_office_id,omitempty" bson:"d2po_office_id,omitempty" yaml:"d2po_office_id"`
	ReturnAtSenderExpense bool             `json:"rase,omitempty" bson:"rase,omitempty" yaml:"rase"`
	ReturnToSender        bool             `json:"rts,omitempty" bson:"rts,omitempty" yaml:"rts"`
	Abandon               bool             `json:"aban,omitempty" bson:"aban,omitempty" yaml:"aban"`
}

// Codes lists the option codes that apply, in emission order.
func (o ShippingOptions) Codes() []string {
	var codes []string
	add := func(on bool, code string) {
		if on {
			codes = append(codes, code)
		}
	}
	add(o.COD != nil, OptionCOD)
	add(o.Coverage != nil, OptionCoverage)
	add(o.SignatureRequired, OptionSignature)
	add(o.ProofOfAge18, OptionProofOfAge18)
	add(o.ProofOfAge19, OptionProofOfAge19)
	add(o.HoldForPickup, OptionHoldForPickup)
	add(o.DoNotSafeDrop, OptionDoNotSafeDrop)
	add(o.LeaveAtDoor, OptionLeaveAtDoor)
	add(o.DeliveryConfirmation, OptionDeliveryConfirmation)
	add(o.DeliverToPostOffice != "", OptionDeliverToPostOffice)
	add(o.ReturnAtSenderExpense, OptionReturnAtSenderExpense)
	add(o.ReturnToSender, OptionReturnToSender)
	add(o.Abandon, OptionAbandon)
	return codes
}

// IsEmpty reports whether no option applies.
func (o ShippingOptions) IsEmpty() bool {
	return len(o.Codes()) == 0
}
