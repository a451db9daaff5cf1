package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/canadapost-gateway/internal/api/middleware"
	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

// ctxCaller extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - merchant role requires a customer_number; without it the JWT is
//     structurally valid but cannot be scoped to an account.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	role, _ := c.Get(middleware.CtxRole).(string)
	if role == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	customer, _ := c.Get(middleware.CtxCustomerNumber).(string)
	if role == domain.RoleMerchant && customer == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing customer number")
	}

	contract, _ := c.Get(middleware.CtxContractID).(string)
	return ports.Caller{Role: role, CustomerNumber: customer, ContractID: contract}, nil
}
