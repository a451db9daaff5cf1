package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role"`
	CustomerNumber string `json:"customer_number"`
	ContractID     string `json:"contract_id,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string           `json:"token,omitempty"`
	Merchant *domain.Merchant `json:"merchant,omitempty"`
}

// Register creates a new merchant account.
//
// @Summary      Register a merchant
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Merchant registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	m, err := h.authService.Register(c.Request().Context(), ports.RegisterMerchantInput{
		Username:       req.Username,
		Password:       req.Password,
		Email:          req.Email,
		Role:           req.Role,
		CustomerNumber: req.CustomerNumber,
		ContractID:     req.ContractID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Merchant: m})
}

// Login authenticates a merchant and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, m, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, Merchant: m})
}
