// Package main starts the storefront BFF: per-visitor catalog, cart, session
// and checkout state served over HTTP on top of the remote catalog service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/laserstudio/storefront/internal/api"
	"github.com/laserstudio/storefront/internal/core/fallback"
	"github.com/laserstudio/storefront/internal/core/ports"
	"github.com/laserstudio/storefront/internal/core/service"
	"github.com/laserstudio/storefront/internal/infrastructure/catalogclient"
	redisdb "github.com/laserstudio/storefront/internal/infrastructure/db/redis"
	"github.com/laserstudio/storefront/internal/infrastructure/http/handlers"
	"github.com/laserstudio/storefront/internal/infrastructure/memory"
	"github.com/laserstudio/storefront/internal/infrastructure/queue"
	"github.com/laserstudio/storefront/internal/pkg/config"
	"github.com/laserstudio/storefront/pkg/logger"
)

const (
	janitorInterval = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// @title       Laser Studio Storefront API
// @version     1.0
// @description Per-visitor catalog, cart, session and checkout state for the laser engraving storefront.
// @BasePath    /
func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "storefront",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	demo, err := fallback.Load(cfg.FallbackPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load fallback catalog")
	}

	client := catalogclient.New(catalogclient.Config{
		BaseURL: cfg.Catalog.URL,
		Timeout: cfg.Catalog.Timeout,
	}, log)

	checks := []handlers.Check{{Name: "catalog", Ping: client.Ping, Optional: true}}

	// The checkout guard is optional: without Redis orders are still placed,
	// only the duplicate-submission protection is lost.
	var guard ports.CheckoutGuard
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, checkout guard disabled")
		} else {
			defer rdb.Close()
			guard = redisdb.NewCheckoutGuard(rdb, cfg.Redis.GuardTTL)
			checks = append(checks, handlers.Check{
				Name:     "redis",
				Ping:     redisdb.Pinger(rdb),
				Optional: true,
			})
		}
	}

	store := memory.NewStateStore(cfg.VisitorIdle, log)
	go store.RunJanitor(ctx, janitorInterval)

	router := service.NewViewRouter(log)
	applier := service.NewFetchApplier(store, router, log)
	dispatcher := queue.NewDispatcher(queue.Config{
		QueueSize: cfg.FetchQueue,
		Timeout:   cfg.FetchTimeout,
	}, client, applier, log)
	dispatcher.Start(ctx)

	svc := service.NewStorefront(
		store,
		router,
		service.NewSessionService(client, guard, router, log),
		service.NewReconciler(demo),
		dispatcher,
		log,
	)

	e := api.NewRouter(svc, api.RouterConfig{
		VisitorSecret: cfg.VisitorSecret,
		VisitorTTL:    cfg.VisitorIdle,
		Checks:        checks,
		Logger:        log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("catalog", cfg.Catalog.URL).Msg("storefront listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
