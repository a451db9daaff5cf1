package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the carrier layer matches exactly one of
// these through errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrCarrier           = errors.New("carrier rejected request")
	ErrMalformedResponse = errors.New("malformed carrier response")
	ErrTransport         = errors.New("carrier transport failure")
)

// Specific failures, each raised under one of the kinds above.
var (
	ErrInvalidPIN            = errors.New("tracking pin must be 12, 13, 15 or 16 digits")
	ErrMissingCustomerNumber = errors.New("customer number is required")
	ErrUnknownCountry        = errors.New("destination country is not a known ISO country")
	ErrNoRateQuotes          = errors.New("no rate quotes")
	ErrNoTracking            = errors.New("no tracking")
	ErrNoShipment            = errors.New("no shipment info")
	ErrNoMessages            = errors.New("no messages")
)

// Error is the error type of the carrier layer.
type Error struct {
	Kind    error
	Op      string
	Message string
	// Codes holds the carrier message codes when Kind is ErrCarrier.
	Codes []string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	case e.Kind != nil:
		b.WriteString(e.Kind.Error())
	default:
		b.WriteString("unknown error")
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func InvalidInput(op string, err error) *Error {
	return &Error{Kind: ErrInvalidInput, Op: op, Err: err}
}

func Malformed(op string, err error) *Error {
	return &Error{Kind: ErrMalformedResponse, Op: op, Err: err}
}

func TransportFailure(op string, err error) *Error {
	return &Error{Kind: ErrTransport, Op: op, Err: err}
}

// CarrierError reports a request the carrier answered with a messages document.
func CarrierError(op, message string, codes []string) *Error {
	return &Error{Kind: ErrCarrier, Op: op, Message: message, Codes: codes}
}

// HTTPError is returned by a transport when the carrier answers with a
// non-2xx status. Body holds the raw response so it can be parsed.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("carrier responded with status %d", e.StatusCode)
}

// ErrorResult is the failure counterpart of the carrier results.
type ErrorResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Codes   []string `json:"codes,omitempty"`
}

// ErrorResultFrom converts any error into an ErrorResult. Carrier messages and
// codes are carried over verbatim.
func ErrorResultFrom(err error) *ErrorResult {
	if err == nil {
		return nil
	}
	var cpErr *Error
	if errors.As(err, &cpErr) {
		msg := cpErr.Message
		if msg == "" {
			msg = cpErr.Error()
		}
		return &ErrorResult{Message: msg, Codes: cpErr.Codes}
	}
	return &ErrorResult{Message: err.Error()}
}
