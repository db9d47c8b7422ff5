package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/booking-platform/services/docs"
	"github.com/booking-platform/services/internal/api/handler"
	"github.com/booking-platform/services/internal/api/metrics"
	"github.com/booking-platform/services/internal/api/middleware"
	"github.com/booking-platform/services/internal/core/ports"
)

// Service names double as metric subsystems and swagger instance names.
const (
	ServiceReservations = "reservations"
	ServiceUsers        = "users"
)

// Options carries the dependencies shared by both routers.
type Options struct {
	Log zerolog.Logger
	// Checks feed GET /healthz/ready, keyed by dependency name.
	Checks map[string]handler.Check
	// Registerer and Gatherer back the metrics; nil means the Prometheus
	// default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewReservationRouter builds the Echo instance of the reservation service.
func NewReservationRouter(svc ports.ReservationService, opts Options) *echo.Echo {
	e, m := newEcho(ServiceReservations, opts)
	h := handler.NewReservationHandler(svc, m)

	g := e.Group("/api/reservations")
	g.GET("/", h.List)
	g.POST("/", h.Create)
	g.GET("/:id/", h.Get)
	g.PUT("/:id/", h.Update)
	g.PATCH("/:id/", h.Update)
	g.DELETE("/:id/", h.Delete)
	g.POST("/:id/confirm/", h.Confirm)
	g.POST("/:id/cancel/", h.Cancel)

	return e
}

// NewUserRouter builds the Echo instance of the user service.
func NewUserRouter(svc ports.UserService, opts Options) *echo.Echo {
	e, m := newEcho(ServiceUsers, opts)
	h := handler.NewUserHandler(svc, m)

	g := e.Group("/api/users")
	g.GET("/", h.List)
	g.POST("/", h.Create)
	g.GET("/active/", h.Active) // static segment wins over :id
	g.GET("/:id/", h.Get)
	g.PUT("/:id/", h.Update)
	g.PATCH("/:id/", h.Update)
	g.DELETE("/:id/", h.Delete)
	g.POST("/:id/activate/", h.Activate)
	g.POST("/:id/deactivate/", h.Deactivate)

	return e
}

// newEcho registers the middleware and operational routes common to both
// services.
func newEcho(service string, opts Options) (*echo.Echo, *metrics.Metrics) {
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(opts.Log))
	e.Use(echomiddleware.Recover())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "booking",
		Subsystem:  service,
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Health probes ---
	health := handler.NewHealthHandler(opts.Checks)
	e.GET("/healthz", health.Liveness)
	e.GET("/healthz/ready", health.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(service)))

	return e, metrics.New(reg)
}
