// Package main starts the reference catalog backend used in development.
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

	"github.com/laserstudio/storefront/internal/backend"
	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/fallback"
	"github.com/laserstudio/storefront/internal/infrastructure/config"
	mongodb "github.com/laserstudio/storefront/internal/infrastructure/db/mongo"
	"github.com/laserstudio/storefront/internal/infrastructure/http/handlers"
	"github.com/laserstudio/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	bootLog := logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Pretty: true, Service: "catalogd"})
	cfg := config.Load(bootLog)
	log := bootLog.Level(logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	catalog := mongodb.NewCatalogRepository(db)
	if cfg.Seed {
		demo := fallback.Default()
		err := catalog.Seed(ctx, domain.Catalog{
			Categories: demo.Categories,
			Products:   demo.Products,
			Portfolio:  demo.Portfolio,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed catalog")
		}
	}

	svc := backend.NewService(
		catalog,
		mongodb.NewAccountRepository(db),
		mongodb.NewOrderRepository(db),
		mongodb.NewContactRepository(db),
		log,
	)

	e := backend.NewRouter(svc, log, handlers.Check{Name: "mongo", Ping: mongodb.Pinger(client)})

	go func() {
		log.Info().Str("port", cfg.Port).Str("database", cfg.Mongo.Database).Msg("catalogd listening")
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
