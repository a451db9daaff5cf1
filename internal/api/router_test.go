package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/99minutos/canadapost-gateway/internal/api/handler"
	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

const testSecret = "router-secret"

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAuth struct{}

func (stubAuth) Register(_ context.Context, in ports.RegisterMerchantInput) (*domain.Merchant, error) {
	return &domain.Merchant{Username: in.Username, Role: in.Role, CustomerNumber: in.CustomerNumber}, nil
}

func (stubAuth) Login(_ context.Context, username, password string) (string, *domain.Merchant, error) {
	return "", nil, domain.ErrInvalidCredentials
}

type stubRates struct{ err error }

func (s stubRates) Quote(context.Context, ports.Caller, domain.RateRequest) (*domain.RateResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.RateResult{Success: true, Rates: []domain.RateEstimate{}}, nil
}

type stubTracking struct{ err error }

func (s stubTracking) Track(context.Context, string) (*domain.TrackingResult, error) {
	return nil, s.err
}

func (s stubTracking) History(context.Context, string) ([]domain.RecordedEvent, error) {
	return []domain.RecordedEvent{}, s.err
}

type stubShipments struct{ err error }

func (s stubShipments) CreateShipment(context.Context, ports.CreateShipmentInput) (*ports.CreateShipmentResult, error) {
	return nil, s.err
}

func (s stubShipments) GetShipment(context.Context, ports.GetShipmentInput) (*domain.ShipmentRecord, error) {
	return nil, s.err
}

func (s stubShipments) ListShipments(context.Context, ports.ListShipmentsInput) (*ports.ListShipmentsResult, error) {
	return nil, s.err
}

func (s stubShipments) Label(context.Context, ports.GetShipmentInput) ([]byte, error) {
	return nil, s.err
}

func newTestRouter(t *testing.T, deps Dependencies) *echo.Echo {
	t.Helper()
	reg := prometheus.NewRegistry()
	deps.Log = zerolog.Nop()
	deps.JWTSecret = testSecret
	deps.Registerer = reg
	deps.Gatherer = reg
	if deps.Auth == nil {
		deps.Auth = stubAuth{}
	}
	if deps.Rates == nil {
		deps.Rates = stubRates{}
	}
	if deps.Tracking == nil {
		deps.Tracking = stubTracking{}
	}
	if deps.Shipments == nil {
		deps.Shipments = stubShipments{}
	}
	return NewRouter(deps)
}

func bearer(t *testing.T, role, customer string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username":        "alice",
		"role":            role,
		"customer_number": customer,
		"exp":             time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func do(e *echo.Echo, method, target, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domain.ErrorResult {
	t.Helper()
	var res domain.ErrorResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return res
}

// ---------------------------------------------------------------------------
// Routing & auth
// ---------------------------------------------------------------------------

func TestRouter_HealthAndMetricsAreOpen(t *testing.T) {
	e := newTestRouter(t, Dependencies{
		Probes: map[string]handler.Pinger{
			"mongo": handler.PingFunc(func(context.Context) error { return nil }),
		},
	})

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := do(e, http.MethodGet, path, "", ""); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_CarrierRoutesRequireToken(t *testing.T) {
	e := newTestRouter(t, Dependencies{})

	rec := do(e, http.MethodGet, "/v1/tracking/1371134583769923", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if res := decodeError(t, rec); res.Success || res.Message == "" {
		t.Fatalf("expected error envelope, got %+v", res)
	}
}

func TestRouter_RegisterIsAdminOnly(t *testing.T) {
	e := newTestRouter(t, Dependencies{})
	body := `{"username":"bob","password":"pw","role":"merchant","customer_number":"0001371134"}`

	if rec := do(e, http.MethodPost, "/auth/register", bearer(t, domain.RoleMerchant, "0008035576"), body); rec.Code != http.StatusForbidden {
		t.Fatalf("merchant: expected 403, got %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/auth/register", bearer(t, domain.RoleAdmin, ""), body); rec.Code != http.StatusCreated {
		t.Fatalf("admin: expected 201, got %d", rec.Code)
	}
}

func TestRouter_LoginFailureIs401(t *testing.T) {
	e := newTestRouter(t, Dependencies{})
	rec := do(e, http.MethodPost, "/auth/login", "", `{"username":"alice","password":"nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func TestRouter_ErrorMapping(t *testing.T) {
	carrierRejected := domain.CarrierError("find tracking", "No Pin History", []string{"004"})
	carrierRejected.Err = &domain.HTTPError{StatusCode: http.StatusNotFound}

	carrierFailed := domain.CarrierError("find tracking", "Server error", []string{"9999"})
	carrierFailed.Err = &domain.HTTPError{StatusCode: http.StatusInternalServerError}

	cases := []struct {
		name    string
		err     error
		status  int
		message string
		codes   []string
	}{
		{"invalid pin", domain.InvalidInput("find tracking", domain.ErrInvalidPIN), http.StatusBadRequest, "", nil},
		{"carrier 4xx", carrierRejected, http.StatusUnprocessableEntity, "No Pin History", []string{"004"}},
		{"carrier 5xx", carrierFailed, http.StatusBadGateway, "Server error", []string{"9999"}},
		{"malformed", domain.Malformed("find tracking", domain.ErrNoTracking), http.StatusBadGateway, "", nil},
		{"transport", domain.TransportFailure("find tracking", errors.New("dial tcp: refused")), http.StatusServiceUnavailable, "carrier unavailable", nil},
		{"forbidden", fmt.Errorf("track: %w", domain.ErrForbidden), http.StatusForbidden, "access forbidden", nil},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestRouter(t, Dependencies{Tracking: stubTracking{err: tc.err}})
			rec := do(e, http.MethodGet, "/v1/tracking/1371134583769923", bearer(t, domain.RoleMerchant, "0008035576"), "")

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, rec.Code, rec.Body.String())
			}
			res := decodeError(t, rec)
			if res.Success {
				t.Fatalf("success must be false")
			}
			if tc.message != "" && res.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, res.Message)
			}
			if tc.codes != nil && strings.Join(res.Codes, ",") != strings.Join(tc.codes, ",") {
				t.Fatalf("expected codes %v, got %v", tc.codes, res.Codes)
			}
		})
	}
}

func TestRouter_ShipmentNotFoundAndDuplicate(t *testing.T) {
	auth := bearer(t, domain.RoleMerchant, "0008035576")

	e := newTestRouter(t, Dependencies{Shipments: stubShipments{err: fmt.Errorf("get shipment: %w", domain.ErrShipmentNotFound)}})
	if rec := do(e, http.MethodGet, "/v1/shipments/rec-404", auth, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	e = newTestRouter(t, Dependencies{Shipments: stubShipments{err: domain.ErrLabelUnavailable}})
	if rec := do(e, http.MethodGet, "/v1/shipments/rec-1/label", auth, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
