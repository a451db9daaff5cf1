package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

// RateHandler serves rate quotes.
type RateHandler struct {
	service ports.RateService
}

func NewRateHandler(service ports.RateService) *RateHandler {
	return &RateHandler{service: service}
}

// Quote handles POST /v1/rates.
//
// @Summary      Quote shipping rates
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      rateRequest  true  "Mailing scenario"
// @Success      200   {object}  domain.RateResult
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/rates [post]
func (h *RateHandler) Quote(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.service.Quote(c.Request().Context(), caller, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
