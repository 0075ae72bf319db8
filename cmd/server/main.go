package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trazia/backend/config"
	httpDelivery "github.com/trazia/backend/internal/delivery/http"
	"github.com/trazia/backend/internal/domain"
	"github.com/trazia/backend/internal/infrastructure/cache"
	"github.com/trazia/backend/internal/infrastructure/retention"
	"github.com/trazia/backend/internal/infrastructure/usda"
	"github.com/trazia/backend/internal/log"
	"github.com/trazia/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Error(context.Background(), "server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := log.SetLevel(cfg.Log.Level); err != nil {
		return err
	}

	log.Info(ctx, "starting Trazia backend",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"default_region", cfg.Engine.DefaultRegion,
	)

	// The retention table is required; a bad resource stops startup
	table, err := retention.Load(cfg.Engine.RetentionFactorsPath)
	if err != nil {
		return err
	}
	log.Info(ctx, "retention factors loaded", "rows", table.Len(), "methods", len(table.Methods()))

	memoryCache := cache.NewMemoryCache(cfg.Cache.CleanupInterval)
	defer memoryCache.Close()

	// Without an API key, ingredient lines must carry their own profiles
	var catalog domain.ProfileSource
	if cfg.USDA.APIKey != "" {
		usdaClient := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL, cfg.RateLimit.USDA)
		usdaClient.SetDebug(cfg.IsDevelopment())
		catalog = usecase.NewCatalogService(memoryCache, usdaClient, usecase.CatalogServiceConfig{
			CacheTTL: cfg.Cache.TTL,
		})
		log.Info(ctx, "USDA catalog enabled", "base_url", cfg.USDA.BaseURL, "cache_ttl", cfg.Cache.TTL.String())
	} else {
		log.Warn(ctx, "USDA API key not configured; catalog lookups disabled")
	}

	labeling := usecase.NewLabelingService(table, catalog, usecase.LabelingServiceConfig{
		DefaultRegion: domain.LabelingRegion(cfg.Engine.DefaultRegion),
	})
	handler := httpDelivery.NewHandler(labeling, catalog, table, httpDelivery.HandlerConfig{
		Cache: memoryCache,
	})
	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case sig := <-stop:
		log.Info(ctx, "shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
