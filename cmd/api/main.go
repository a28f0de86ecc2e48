package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/monoapp/internal/config"
	"github.com/geocoder89/monoapp/internal/db"
	"github.com/geocoder89/monoapp/internal/domain/user"
	httpx "github.com/geocoder89/monoapp/internal/http"
	"github.com/geocoder89/monoapp/internal/http/handlers"
	"github.com/geocoder89/monoapp/internal/observability"
	"github.com/geocoder89/monoapp/internal/redisclient"
	"github.com/geocoder89/monoapp/internal/repo/memory"
	"github.com/geocoder89/monoapp/internal/repo/postgres"
	"github.com/geocoder89/monoapp/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load the config set up
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	startCtx, cancelStart := config.WithTimeout(15 * time.Second)
	defer cancelStart()

	shutdownTracer, err := observability.InitTracer(startCtx, "monoapp-api", cfg.OTELEndpoint)
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	deps := httpx.RouterDeps{
		Log:                 log,
		Prom:                prom,
		Health:              service.NewHealthService(),
		CORSOrigins:         cfg.CORSOrigins(),
		UsersStrictNotFound: cfg.UsersStrictNotFound,
		RateLimitRequests:   cfg.RateLimitRequests,
		RateLimitWindow:     cfg.RateLimitWindow,
		MaxBodyBytes:        cfg.MaxBodyBytes,
	}

	var closers []func()

	// users store
	switch cfg.UsersStore {
	case config.UsersStorePostgres:
		pool, err := db.NewPool(startCtx, cfg.DBURL(), cfg.DBMaxConns)
		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		closers = append(closers, pool.Close)

		if err := db.EnsureSeedUsers(startCtx, pool, user.Seed()); err != nil {
			log.Error("seed users failed", "err", err)
			os.Exit(1)
		}

		deps.Users = service.NewUsersService(postgres.NewUsersRepo(pool, prom), service.WithCache(cfg.UsersCacheTTL))
		deps.Readiness = append(deps.Readiness, handlers.ReadinessCheck{Name: "postgres", Ping: pool.Ping})
	default:
		deps.Users = service.NewUsersService(memory.NewUsersRepo(user.Seed()))
	}

	// shared rate limit window when redis is configured
	if cfg.RedisAddr != "" {
		rdb := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		closers = append(closers, func() { _ = rdb.Close() })

		if err := rdb.Ping(startCtx); err != nil {
			log.Warn("redis unreachable at startup", "addr", cfg.RedisAddr, "err", err)
		}

		deps.RateCounter = rdb
		deps.Readiness = append(deps.Readiness, handlers.ReadinessCheck{Name: "redis", Ping: rdb.Ping})
	}

	// set up routers with the deps
	router := httpx.NewRouter(deps)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "users_store", cfg.UsersStore)
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

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}

		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(cfg.ShutdownTimeout + 2*time.Second):
		log.Error("shutdown timed out")
	}
}
