package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/canadapost-gateway/docs"
	"github.com/99minutos/canadapost-gateway/internal/api/handler"
	"github.com/99minutos/canadapost-gateway/internal/api/middleware"
	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

// Dependencies are the services and collaborators the HTTP API is built on.
type Dependencies struct {
	Log       zerolog.Logger
	JWTSecret string

	Auth      ports.AuthService
	Rates     ports.RateService
	Tracking  ports.TrackingService
	Shipments ports.ShipmentService

	// ServiceName resolves carrier service codes; it backs request validation
	// and display names in shipment responses.
	ServiceName func(code string) (string, bool)

	// Probes are checked by /health/ready, keyed by dependency name.
	Probes map[string]handler.Pinger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	var knownService func(string) bool
	if deps.ServiceName != nil {
		knownService = func(code string) bool {
			_, ok := deps.ServiceName(code)
			return ok
		}
	}
	e.Validator = handler.NewValidator(knownService)

	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "cpws",
		Registerer: deps.Registerer,
	}))

	// --- Operational routes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Probes)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register, authMiddleware, middleware.RBAC(domain.RoleAdmin))

	// --- Carrier routes ---
	v1 := e.Group("/v1", authMiddleware, middleware.RBAC(domain.RoleAdmin, domain.RoleMerchant))

	rateHandler := handler.NewRateHandler(deps.Rates)
	v1.POST("/rates", rateHandler.Quote)

	trackingHandler := handler.NewTrackingHandler(deps.Tracking)
	v1.GET("/tracking/:pin", trackingHandler.Track)
	v1.GET("/tracking/:pin/history", trackingHandler.History)

	shipmentHandler := handler.NewShipmentHandler(deps.Shipments, deps.ServiceName)
	v1.POST("/shipments", shipmentHandler.Create)
	v1.GET("/shipments", shipmentHandler.List)
	v1.GET("/shipments/:id", shipmentHandler.Get)
	v1.GET("/shipments/:id/label", shipmentHandler.Label)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
