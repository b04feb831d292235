package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	itemhandler "einkauf/internal/items/handler"
	itemmetrics "einkauf/internal/items/metrics"
	itemservice "einkauf/internal/items/service"
	itemstore "einkauf/internal/items/store"
	listhandler "einkauf/internal/list/handler"
	listservice "einkauf/internal/list/service"
	liststore "einkauf/internal/list/store"
	"einkauf/internal/platform/config"
	"einkauf/internal/platform/httpserver"
	"einkauf/internal/platform/logger"
	"einkauf/internal/platform/metrics"
	"einkauf/internal/platform/middleware"
	"einkauf/internal/platform/postgres"
	platformredis "einkauf/internal/platform/redis"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var items itemstore.Store = itemstore.NewInMemory()
	var settings liststore.Store = liststore.NewInMemory()

	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		items = itemstore.NewPostgres(pool)
		settings = liststore.NewPostgres(pool)
	}

	if cfg.RedisURL != "" {
		redisClient, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			log.Error("redis connect failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		// Redis takes over the settings singleton; items stay in whichever
		// store was selected above.
		settings = liststore.NewRedis(redisClient)
	}

	platformMetrics := metrics.New()
	itemSvc := itemservice.New(items, itemservice.WithMetrics(itemmetrics.New()))
	listSvc := listservice.New(settings, cfg.DefaultListTitle)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Latency(platformMetrics))
	r.Use(middleware.CORS(cfg.CORSOrigin))

	itemhandler.New(itemSvc, log).Register(r)
	listhandler.New(listSvc, log).Register(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting einkauf server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
