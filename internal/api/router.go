package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/delibery/pedidos-api/docs"
	"github.com/delibery/pedidos-api/internal/api/handler"
	"github.com/delibery/pedidos-api/internal/api/middleware"
	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
)

const serviceName = "pedidos-api"

// Dependencies are the constructed services the router wires into routes.
type Dependencies struct {
	Log           zerolog.Logger
	Version       string
	Authenticator ports.Authenticator
	AuthService   ports.AuthService
	OrderService  ports.OrderService
	MetricService ports.MetricService
	// MetricSink receives one record per request.
	MetricSink ports.MetricSink
	// Readiness checks by dependency name, e.g. "mongodb" and "redis".
	Readiness map[string]handler.DependencyCheck
	// Registerer and Gatherer back the HTTP metrics; nil means the
	// Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Before routing: one metric record per request, 404s included ---
	e.Pre(middleware.Recorder(middleware.RecorderConfig{
		Sink: deps.MetricSink,
		Log:  deps.Log.With().Str("component", "recorder").Logger(),
	}))

	// --- Global middleware ---
	e.Use(echomiddleware.CORSWithConfig(corsConfig(deps.AllowedOrigins)))
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper:    middleware.SkipOperational,
	}))
	e.Use(echomiddleware.Recover())

	// --- Operational endpoints (no auth required) ---
	e.GET("/", handler.NewBannerHandler(serviceName, deps.Version).Banner)
	e.GET("/health", handler.NewHealthHandler().Liveness)                       // liveness  – is the process alive?
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Readiness).Readiness) // readiness – are dependencies up?
	e.GET("/internal/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	e.POST("/login", authHandler.Login)
	e.POST("/login/client", authHandler.LoginClient)

	authenticated := middleware.Auth(deps.Authenticator)

	// --- Orders ---
	orderHandler := handler.NewOrderHandler(deps.OrderService)
	orders := e.Group("/orders", authenticated)
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:key", orderHandler.Get)
	orders.PATCH("/:key/status", orderHandler.UpdateStatus)
	orders.DELETE("/:key", orderHandler.Delete, middleware.RBAC(domain.RoleInternal))

	// --- Metric records of the caller ---
	metricHandler := handler.NewMetricHandler(deps.MetricService)
	records := e.Group("/metrics", authenticated)
	records.GET("", metricHandler.List)
	records.DELETE("", metricHandler.Clear)

	return e
}

func corsConfig(origins []string) echomiddleware.CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			"Idempotency-Key",
		},
		ExposeHeaders: []string{echo.HeaderLocation, echo.HeaderXRequestID},
	}
}
