package http

import (
	"log/slog"
	"time"

	"github.com/geocoder89/monoapp/internal/http/handlers"
	"github.com/geocoder89/monoapp/internal/http/middlewares"
	"github.com/geocoder89/monoapp/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterDeps struct {
	Log    *slog.Logger
	Prom   *observability.Prom
	Health handlers.HealthReporter
	Users  handlers.UsersReader

	// Readiness lists the dependencies /readyz pings.
	Readiness []handlers.ReadinessCheck
	// RateCounter backs the /api rate limiter; nil means per-process memory.
	RateCounter middlewares.WindowCounter

	CORSOrigins         []string
	UsersStrictNotFound bool
	RateLimitRequests   int
	RateLimitWindow     time.Duration
	MaxBodyBytes        int64
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware("monoapp-api"))
	r.Use(middlewares.RequestLogger(deps.Log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(deps.CORSOrigins))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.MaxBodyBytes(deps.MaxBodyBytes))

	// probes, metrics and docs

	h := handlers.NewHealthHandler(deps.Readiness...)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Prom != nil {
		r.GET("/metrics", gin.WrapH(deps.Prom.Handler()))
	}

	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	// API

	counter := deps.RateCounter
	if counter == nil {
		counter = middlewares.NewMemoryCounter()
	}
	limiter := middlewares.NewRateLimiter(counter, deps.RateLimitRequests, deps.RateLimitWindow)

	appHandler := handlers.NewAppHandler(deps.Health)
	usersHandler := handlers.NewUsersHandler(deps.Users, deps.UsersStrictNotFound)

	api := r.Group("/api")
	api.Use(limiter.RateLimiterMiddleware(middlewares.KeyByIP))

	api.GET("", appHandler.GetWelcome)
	api.GET("/health", appHandler.GetHealth)
	api.GET("/users", usersHandler.ListUsers)
	api.GET("/users/:id", usersHandler.GetUserByID)

	return r
}
