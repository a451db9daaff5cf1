package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by Auth.
const (
	CtxUsername       = "username"
	CtxRole           = "role"
	CtxCustomerNumber = "customer_number"
	CtxContractID     = "contract_id"
)

type merchantClaims struct {
	Username       string `json:"username"`
	Role           string `json:"role"`
	CustomerNumber string `json:"customer_number"`
	ContractID     string `json:"contract_id"`
	jwt.RegisteredClaims
}

// Auth verifies an HS256 bearer token and copies the merchant claims into the
// echo context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	key := []byte(jwtSecret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			scheme, raw, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			var claims merchantClaims
			tkn, err := parser.ParseWithClaims(strings.TrimSpace(raw), &claims, func(*jwt.Token) (any, error) {
				return key, nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUsername, claims.Username)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxCustomerNumber, claims.CustomerNumber)
			c.Set(CtxContractID, claims.ContractID)
			return next(c)
		}
	}
}
