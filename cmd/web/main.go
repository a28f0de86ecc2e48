package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/monoapp/internal/apiclient"
	"github.com/geocoder89/monoapp/internal/config"
	"github.com/geocoder89/monoapp/internal/observability"
	"github.com/geocoder89/monoapp/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	startCtx, cancelStart := config.WithTimeout(5 * time.Second)
	defer cancelStart()

	shutdownTracer, err := observability.InitTracer(startCtx, "monoapp-web", cfg.OTELEndpoint)
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	prom := observability.NewProm(prometheus.NewRegistry())

	// one client per process, shared by every request
	client := apiclient.New(
		apiclient.ResolveBaseURL(cfg.APIURL, cfg.BackendOrigin()),
		apiclient.WithObserver(apiclient.NewLogObserver(log), apiclient.NewPromObserver(prom)),
	)

	view := web.NewView(client, log)

	router, err := web.NewRouter(web.RouterDeps{
		Log:           log,
		Prom:          prom,
		View:          view,
		BackendOrigin: cfg.BackendOrigin(),
	})
	if err != nil {
		log.Error("router init failed", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.WebPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Web server starting", "port", cfg.WebPort, "env", cfg.Env, "api_base", client.BaseURL())
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if err := view.Wait(ctx); err != nil {
			log.Error("health fetch still running at shutdown", "err", err)
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(cfg.ShutdownTimeout + 2*time.Second):
		log.Error("shutdown timed out")
	}
}
