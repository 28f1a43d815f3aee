package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/karnbhushan1994/freefortalk/docs"
	"github.com/karnbhushan1994/freefortalk/internal/api/handler"
	"github.com/karnbhushan1994/freefortalk/internal/api/middleware"
	"github.com/karnbhushan1994/freefortalk/internal/core/ports"
)

const bodyLimit = "1M"

// Options carries the transport settings resolved from config.
type Options struct {
	// ExposeErrorDetail adds internal error causes to 5xx responses.
	ExposeErrorDetail bool
	CORSOrigins       []string
	// StaticDir is served at the root when non-empty.
	StaticDir string
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	opts Options,
	authService ports.AuthService,
	tokens middleware.TokenParser,
	checks map[string]handler.HealthCheck,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, opts.ExposeErrorDetail)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "freefortalk",
		Registerer: registerer,
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{AllowOrigins: opts.CORSOrigins}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	if opts.StaticDir != "" {
		e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{Root: opts.StaticDir}))
	}

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(authService)
	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, middleware.Auth(tokens))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(checks)
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
