package canadapost

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

// Config holds the credentials and account identifiers of a client.
type Config struct {
	APIKey   string
	Secret   string
	BaseURL  string
	Language string
	// CustomerNumber and ContractID are used when a request leaves them empty.
	CustomerNumber string
	ContractID     string
}

// Client turns domain requests into web service calls. Each call is a single
// request and response; the client keeps no state between calls.
type Client struct {
	cfg       Config
	transport ports.Transport
	catalog   Catalog
	log       zerolog.Logger
	groupID   func() string
}

var _ ports.Carrier = (*Client)(nil)

func NewClient(cfg Config, transport ports.Transport, catalog Catalog, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = ProductionURL
	}
	return &Client{
		cfg:       cfg,
		transport: transport,
		catalog:   catalog,
		log:       log.With().Str("carrier", domain.CarrierName).Logger(),
		groupID: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		},
	}
}

// Catalog returns the vocabulary the client was built with.
func (c *Client) Catalog() Catalog {
	return c.catalog
}

// FindRates quotes every service available for the parcel.
func (c *Client) FindRates(ctx context.Context, req domain.RateRequest) (*domain.RateResult, error) {
	const op = "find rates"

	if req.CustomerNumber == "" {
		req.CustomerNumber = c.cfg.CustomerNumber
	}
	if req.ContractID == "" {
		req.ContractID = c.cfg.ContractID
	}
	body, err := c.catalog.BuildRateRequest(req)
	if err != nil {
		return nil, err
	}

	url := c.url(c.catalog.RatePath)
	resp, err := c.post(ctx, op, url, body, c.catalog.RateMediaType)
	if err != nil {
		return nil, err
	}
	return ParseRates(resp, req.Origin, req.Destination)
}

// FindTracking fetches the tracking detail of a PIN or DNC. Malformed numbers
// are rejected without a call.
func (c *Client) FindTracking(ctx context.Context, pin string) (*domain.TrackingResult, error) {
	const op = "find tracking"

	path, err := c.catalog.TrackingPath(pin)
	if err != nil {
		return nil, err
	}
	resp, err := c.get(ctx, op, c.url(path), c.catalog.TrackingMediaType)
	if err != nil {
		return nil, err
	}
	return ParseTracking(resp)
}

// CreateShipment creates a shipment and returns its identifiers and links.
func (c *Client) CreateShipment(ctx context.Context, req domain.ShipmentRequest) (*domain.ShipmentResult, error) {
	const op = "create shipment"

	if req.CustomerNumber == "" {
		req.CustomerNumber = c.cfg.CustomerNumber
	}
	if req.ContractID == "" {
		req.ContractID = c.cfg.ContractID
	}
	if req.ContractMode() && req.GroupID == "" {
		req.GroupID = c.groupID()
	}
	body, err := c.catalog.BuildShipmentRequest(req)
	if err != nil {
		return nil, err
	}

	path := c.catalog.nonContractShipmentPath(req.CustomerNumber)
	mediaType := c.catalog.ShipmentMediaType
	if req.ContractMode() {
		path = c.catalog.contractShipmentPath(req.CustomerNumber, req.MOBO())
		mediaType = c.catalog.ContractShipmentMediaType
	}

	resp, err := c.post(ctx, op, c.url(path), body, mediaType)
	if err != nil {
		return nil, err
	}
	return ParseShipment(resp)
}

// RetrieveLabel downloads a label artifact. Relative links are resolved
// against the base URL.
func (c *Client) RetrieveLabel(ctx context.Context, link string) ([]byte, error) {
	const op = "retrieve label"

	if link == "" {
		return nil, domain.InvalidInput(op, domain.ErrLabelUnavailable)
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		link = c.url(link)
	}
	return c.get(ctx, op, link, c.catalog.LabelMediaType)
}

func (c *Client) post(ctx context.Context, op, url string, body []byte, mediaType string) ([]byte, error) {
	h := c.headers(mediaType)
	h.Set("Content-Type", mediaType)

	start := time.Now()
	resp, err := c.transport.Post(ctx, url, body, h)
	c.log.Debug().
		Str("op", op).
		Str("url", url).
		Int("request_bytes", len(body)).
		Int("response_bytes", len(resp)).
		Dur("elapsed", time.Since(start)).
		Err(err).
		Msg("carrier call")
	if err != nil {
		return nil, c.translate(op, err)
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, op, url, mediaType string) ([]byte, error) {
	start := time.Now()
	resp, err := c.transport.Get(ctx, url, c.headers(mediaType))
	c.log.Debug().
		Str("op", op).
		Str("url", url).
		Int("response_bytes", len(resp)).
		Dur("elapsed", time.Since(start)).
		Err(err).
		Msg("carrier call")
	if err != nil {
		return nil, c.translate(op, err)
	}
	return resp, nil
}

func (c *Client) headers(mediaType string) http.Header {
	h := http.Header{}
	h.Set("Accept", mediaType)
	h.Set("Authorization", c.authorization())
	h.Set("Accept-Language", AcceptLanguage(c.cfg.Language))
	return h
}

func (c *Client) authorization() string {
	creds := c.cfg.APIKey + ":" + c.cfg.Secret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// translate maps a transport failure into the carrier error taxonomy. An
// error status with a messages body becomes a carrier error.
func (c *Client) translate(op string, err error) error {
	var cpErr *domain.Error
	if errors.As(err, &cpErr) {
		return err
	}

	var httpErr *domain.HTTPError
	if !errors.As(err, &httpErr) {
		return domain.TransportFailure(op, err)
	}
	res, perr := ParseError(httpErr.Body)
	if perr != nil || res.Message == "" {
		return domain.TransportFailure(op, err)
	}
	carrierErr := domain.CarrierError(op, res.Message, res.Codes)
	carrierErr.Err = httpErr
	return carrierErr
}

// AcceptLanguage maps a language setting to the header value: "fr" selects
// Canadian French, anything else Canadian English.
func AcceptLanguage(lang string) string {
	if strings.EqualFold(strings.TrimSpace(lang), "fr") {
		return "fr-CA"
	}
	return "en-CA"
}
