package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

// ShipmentHandler handles HTTP requests for shipment operations.
type ShipmentHandler struct {
	service     ports.ShipmentService
	serviceName func(code string) (string, bool)
}

// NewShipmentHandler builds the handler. serviceName resolves service codes to
// display names in responses and may be nil.
func NewShipmentHandler(service ports.ShipmentService, serviceName func(code string) (string, bool)) *ShipmentHandler {
	return &ShipmentHandler{service: service, serviceName: serviceName}
}

// Create handles POST /v1/shipments.
//
// @Summary      Create a shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                 false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createShipmentRequest  true   "Shipment details"
// @Success      201              {object}  createShipmentResponse
// @Success      200              {object}  createShipmentResponse  "Replayed idempotent request"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Failure      502              {object}  errorResponse
// @Router       /v1/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	result, err := h.service.CreateShipment(c.Request().Context(), toCreateInput(req, caller, idempotencyKey))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toCreateResponse(result.Record))
}

// Get handles GET /v1/shipments/:id.
//
// @Summary      Get a stored shipment
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shipment record id"
// @Success      200  {object}  getShipmentResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/shipments/{id} [get]
func (h *ShipmentHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	rec, err := h.service.GetShipment(c.Request().Context(), ports.GetShipmentInput{
		ID:     c.Param("id"),
		Caller: caller,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGetResponse(rec, h.serviceName))
}

// List handles GET /v1/shipments.
//
// @Summary      List stored shipments
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        page          query     int     false  "Page number (1-based)"
// @Param        limit         query     int     false  "Page size, max 100"
// @Param        service_code  query     string  false  "Filter by service code"
// @Param        date_from     query     string  false  "Created on or after (YYYY-MM-DD or RFC3339)"
// @Param        date_to       query     string  false  "Created on or before (YYYY-MM-DD or RFC3339)"
// @Success      200           {object}  listShipmentsResponse
// @Failure      400           {object}  errorResponse
// @Router       /v1/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	filter := ports.ListShipmentsFilter{ServiceCode: c.QueryParam("service_code")}
	if filter.Page, err = intQuery(c, "page"); err != nil {
		return err
	}
	if filter.Limit, err = intQuery(c, "limit"); err != nil {
		return err
	}
	if filter.DateFrom, err = timeQuery(c, "date_from", false); err != nil {
		return err
	}
	if filter.DateTo, err = timeQuery(c, "date_to", true); err != nil {
		return err
	}

	res, err := h.service.ListShipments(c.Request().Context(), ports.ListShipmentsInput{
		Caller: caller,
		Filter: filter,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res, h.serviceName))
}

// Label handles GET /v1/shipments/:id/label.
//
// @Summary      Download the shipping label
// @Tags         shipments
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path      string  true  "Shipment record id"
// @Success      200  {file}    binary
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/shipments/{id}/label [get]
func (h *ShipmentHandler) Label(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	pdf, err := h.service.Label(c.Request().Context(), ports.GetShipmentInput{
		ID:     c.Param("id"),
		Caller: caller,
	})
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+c.Param("id")+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a non-negative integer")
	}
	return n, nil
}

// timeQuery parses a date or RFC3339 timestamp. A bare date used as an upper
// bound covers the whole day.
func timeQuery(c echo.Context, name string, endOfDay bool) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be YYYY-MM-DD or RFC3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
