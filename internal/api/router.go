package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/NatanCav/FlowFit/internal/api/handler"
	"github.com/NatanCav/FlowFit/internal/api/middleware"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Clients   *handler.ClientHandler
	Payments  *handler.PaymentHandler
	Reports   *handler.ReportHandler
	Health    *handler.HealthHandler
	Readiness *handler.HealthDependenciesHandler
}

// RouterConfig carries what NewRouter needs besides the handlers.
type RouterConfig struct {
	Tokens      ports.TokenValidator
	Logger      zerolog.Logger
	CORSOrigins []string
	// Registry receives the HTTP metrics. Nil selects the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(cfg.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	promCfg := echoprometheus.MiddlewareConfig{Subsystem: "flowfit"}
	metricsHandler := echoprometheus.NewHandler()
	if cfg.Registry != nil {
		promCfg.Registerer = cfg.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: cfg.Registry})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", h.Health.Liveness)
	if h.Readiness != nil {
		e.GET("/health/ready", h.Readiness.Readiness)
	}
	e.GET("/metrics", metricsHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authenticate := middleware.Authenticate(cfg.Tokens)
	adminOnly := middleware.RequireAdmin()

	api := e.Group("/api")
	api.GET("/status", h.Health.Status)

	// --- Auth ---
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/verificar", h.Auth.Verify)

	// --- Users (admin) ---
	users := api.Group("/usuarios", authenticate, adminOnly)
	users.GET("", h.Users.List)
	users.POST("", h.Users.Create)
	users.GET("/:id", h.Users.Get)
	users.PUT("/:id", h.Users.Update)
	users.DELETE("/:id", h.Users.Delete)

	// --- Clients ---
	clients := api.Group("/clientes", authenticate)
	clients.GET("", h.Clients.List)
	clients.POST("", h.Clients.Create)
	clients.GET("/:id", h.Clients.Get)
	clients.PUT("/:id", h.Clients.Update)
	clients.DELETE("/:id", h.Clients.Delete)

	// --- Payments ---
	payments := api.Group("/pagamentos", authenticate)
	payments.GET("", h.Payments.List)
	payments.POST("", h.Payments.Create)
	payments.GET("/mes-atual", h.Reports.PaidThisMonth)
	payments.POST("/:id/pagar", h.Payments.Pay)
	payments.POST("/:id/cancelar", h.Payments.Cancel)
	payments.DELETE("/:id", h.Payments.Delete)

	// --- History and reports ---
	api.GET("/historico", h.Reports.History, authenticate, adminOnly)
	api.GET("/historico/:cliente_id", h.Payments.ClientHistory, authenticate)
	api.GET("/dashboard", h.Reports.Dashboard, authenticate)
	api.GET("/inadimplentes", h.Reports.Overdue, authenticate)

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// requestLogger emits one zerolog entry per request.
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
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			if v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
