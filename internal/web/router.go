package web

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/geocoder89/monoapp/internal/http/middlewares"
	"github.com/geocoder89/monoapp/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterDeps struct {
	Log  *slog.Logger
	Prom *observability.Prom
	View *View

	// BackendOrigin receives proxied /api requests, e.g. http://localhost:3001.
	BackendOrigin string
	// Location renders timestamps; nil means the process local zone.
	Location *time.Location
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}

	origin, err := url.Parse(deps.BackendOrigin)
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("invalid backend origin %q", deps.BackendOrigin)
	}

	rend, err := newRenderer(deps.Location)
	if err != nil {
		return nil, err
	}

	h := &Handler{view: deps.View, renderer: rend, log: deps.Log}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware("monoapp-web"))
	r.Use(middlewares.RequestLogger(deps.Log))
	r.Use(middlewares.SecurityHeaders())
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	// pages

	r.GET("/", h.Home)
	r.POST("/refresh", h.Refresh)
	r.GET("/about", h.About)
	r.GET("/status.json", h.Status)

	if deps.Prom != nil {
		r.GET("/metrics", gin.WrapH(deps.Prom.Handler()))
	}

	// dev-server style proxy

	proxy := newAPIProxy(origin, deps.Log)
	r.Any("/api", gin.WrapH(proxy))
	r.Any("/api/*path", gin.WrapH(proxy))

	return r, nil
}
