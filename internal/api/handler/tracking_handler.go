package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

// TrackingHandler serves tracking lookups.
type TrackingHandler struct {
	service ports.TrackingService
}

func NewTrackingHandler(service ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

type trackingHistoryResponse struct {
	PIN    string                 `json:"pin"`
	Events []domain.RecordedEvent `json:"events"`
}

// Track handles GET /v1/tracking/:pin.
//
// @Summary      Track a PIN or DNC
// @Tags         tracking
// @Produce      json
// @Security     BearerAuth
// @Param        pin  path      string  true  "12, 13 or 16 character PIN, or 15 character DNC"
// @Success      200  {object}  domain.TrackingResult
// @Failure      400  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/tracking/{pin} [get]
func (h *TrackingHandler) Track(c echo.Context) error {
	if _, err := ctxCaller(c); err != nil {
		return err
	}

	res, err := h.service.Track(c.Request().Context(), c.Param("pin"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// History handles GET /v1/tracking/:pin/history.
//
// @Summary      Recorded tracking events of a PIN
// @Tags         tracking
// @Produce      json
// @Security     BearerAuth
// @Param        pin  path      string  true  "PIN or DNC"
// @Success      200  {object}  trackingHistoryResponse
// @Router       /v1/tracking/{pin}/history [get]
func (h *TrackingHandler) History(c echo.Context) error {
	if _, err := ctxCaller(c); err != nil {
		return err
	}

	pin := c.Param("pin")
	events, err := h.service.History(c.Request().Context(), pin)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trackingHistoryResponse{PIN: pin, Events: events})
}
