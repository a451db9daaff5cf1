package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Carries carrier messages and codes through to the client.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, *domain.ErrorResult) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, &domain.ErrorResult{Message: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrShipmentNotFound):
		return http.StatusNotFound, message("shipment not found")
	case errors.Is(err, domain.ErrLabelUnavailable):
		return http.StatusNotFound, message("shipment has no label")
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, message("access forbidden")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, message("invalid credentials")
	case errors.Is(err, domain.ErrMerchantNotFound):
		return http.StatusNotFound, message("merchant not found")
	case errors.Is(err, domain.ErrMerchantExists):
		return http.StatusConflict, message("merchant already exists")
	case errors.Is(err, domain.ErrDuplicateShipment):
		return http.StatusConflict, message("a shipment with this idempotency key is in progress")
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, domain.ErrorResultFrom(err)
	case errors.Is(err, domain.ErrCarrier):
		return carrierStatus(err), domain.ErrorResultFrom(err)
	case errors.Is(err, domain.ErrMalformedResponse):
		log.Error().Err(err).Str("path", c.Path()).Msg("malformed carrier response")
		return http.StatusBadGateway, domain.ErrorResultFrom(err)
	case errors.Is(err, domain.ErrTransport):
		log.Error().Err(err).Str("path", c.Path()).Msg("carrier unreachable")
		return http.StatusServiceUnavailable, message("carrier unavailable")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, message("internal server error")
}

// carrierStatus maps a carrier rejection. A 4xx from the carrier means the
// request itself was refused.
func carrierStatus(err error) int {
	var httpErr *domain.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func message(msg string) *domain.ErrorResult {
	return &domain.ErrorResult{Message: msg}
}
