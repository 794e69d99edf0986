package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gymguider/fitness-api/docs"
	"github.com/gymguider/fitness-api/internal/api/handler"
	"github.com/gymguider/fitness-api/internal/api/middleware"
	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/ports"
)

// Dependencies is everything the HTTP layer needs. Services are built by the
// caller so the router stays free of storage concerns.
type Dependencies struct {
	Auth      ports.AuthService
	Resolver  ports.IdentityResolver
	Users     ports.IdentityService
	Exercises ports.ExerciseService
	Plans     ports.WorkoutPlanService
	Logs      ports.WorkoutLogService

	Readiness []handler.DependencyCheck
	Log       zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics. Nil uses the
	// default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(metricsMiddleware(deps.Registry))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	exerciseHandler := handler.NewExerciseHandler(deps.Exercises)
	planHandler := handler.NewPlanHandler(deps.Plans)
	logHandler := handler.NewLogHandler(deps.Logs)

	authenticated := middleware.Auth(deps.Resolver, deps.Log)
	trainerOnly := middleware.RequireRole(domain.RoleTrainer)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authenticated)

	// --- Users ---
	users := e.Group("/users", authenticated)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Exercise catalogue ---
	exercises := e.Group("/exercises", authenticated)
	exercises.GET("", exerciseHandler.List)
	exercises.GET("/:id", exerciseHandler.Get)
	exercises.POST("", exerciseHandler.Create, trainerOnly)
	exercises.PUT("/:id", exerciseHandler.Update, trainerOnly)
	exercises.DELETE("/:id", exerciseHandler.Delete, trainerOnly)

	// --- Workout plans ---
	plans := e.Group("/plans", authenticated)
	plans.GET("", planHandler.List)
	plans.POST("", planHandler.Create)
	plans.GET("/:id", planHandler.Get)
	plans.PUT("/:id", planHandler.Update)
	plans.DELETE("/:id", planHandler.Delete)

	// --- Workout logs ---
	logs := e.Group("/logs", authenticated)
	logs.GET("", logHandler.List)
	logs.POST("", logHandler.Create)
	logs.GET("/:id", logHandler.Get)
	logs.PUT("/:id", logHandler.Update)
	logs.DELETE("/:id", logHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness) // pings Mongo and Redis

	// --- Operations ---
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Subsystem: "gymguider",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

// requestLogger emits one structured line per request through zerolog.
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
