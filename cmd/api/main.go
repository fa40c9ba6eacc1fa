// ABOUTME: Main entry point for the Portfolio Feeds API server
// ABOUTME: Wires together all components, loads the registry and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-feeds-api/api"
	"portfolio-feeds-api/api/handlers"
	"portfolio-feeds-api/core/feed"
	"portfolio-feeds-api/core/interfaces"
	"portfolio-feeds-api/core/registry"
	"portfolio-feeds-api/core/retry"
	"portfolio-feeds-api/core/store"
	"portfolio-feeds-api/infrastructure/cache/memory"
	"portfolio-feeds-api/infrastructure/cache/redis"
	stdhttp "portfolio-feeds-api/infrastructure/http/standard"
	"portfolio-feeds-api/infrastructure/logger/structured"
	"portfolio-feeds-api/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := structured.NewLogger(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	logger.Info("Starting Portfolio Feeds API", map[string]interface{}{
		"port":             cfg.Server.Port,
		"cache_type":       cfg.Cache.Type,
		"registry":         cfg.Feeds.Registry,
		"items_per_feed":   cfg.Feeds.ItemsPerFeed,
		"refresh_interval": cfg.Feeds.RefreshInterval.String(),
	})

	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	// The per-attempt timeout is enforced through the request context
	httpClient := stdhttp.NewStandardHTTPClient(2*cfg.Feeds.RequestTimeout, logger)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	feedService := feed.NewFeedService(deps, feed.Options{
		Endpoints: feed.Endpoints{
			PrimaryURL:    cfg.Proxies.PrimaryURL,
			PrimaryAPIKey: cfg.Proxies.PrimaryAPIKey,
			RelayURL:      cfg.Proxies.RelayURL,
			DirectURL:     cfg.Proxies.DirectURL,
		},
		Retry: retry.Options{
			MaxRetries:     retryCount(cfg.Feeds.MaxRetries),
			BaseDelay:      cfg.Feeds.BaseDelay,
			AttemptTimeout: cfg.Feeds.RequestTimeout,
		},
		CacheTTL: cfg.Cache.TTL,
	})

	feedStore := store.New(feedService, logger, store.Options{
		ItemsPerFeed:     cfg.Feeds.ItemsPerFeed,
		LoadStagger:      cfg.Feeds.LoadStagger,
		RetryDelayStep:   cfg.Feeds.RetryDelayStep,
		MaxManualRetries: cfg.Feeds.MaxManualRetries,
		RefreshInterval:  cfg.Feeds.RefreshInterval,
	})

	loader := registry.NewLoader(cfg.Feeds.Registry, httpClient)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Feeds.RequestTimeout)
	if err := feedStore.Reload(loadCtx, loader); err != nil {
		// The API still starts so the configuration error is visible to clients
		logger.Error("Feed registry unavailable at startup", map[string]interface{}{
			"error": err.Error(),
		})
	}
	cancelLoad()

	if err := feedStore.Start(); err != nil {
		log.Fatalf("Failed to start feed refresh: %v", err)
	}

	humaAPI, router, limiter := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:    logger,
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
	})

	handlers.NewFeedHandler(feedStore, loader).RegisterRoutes(humaAPI)
	handlers.NewHealthHandler(feedStore).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	feedStore.Stop()
	if limiter != nil {
		limiter.Stop()
	}

	logger.Info("Server stopped", nil)
}

// newCache builds the configured cache backend. Redis falls back to memory
// when it cannot be reached; "none" disables caching.
func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache(), func() {}
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache, func() { redisCache.Close() }
	case "none":
		logger.Info("Cache disabled", nil)
		return nil, func() {}
	default:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache(), func() {}
	}
}

// retryCount maps a configured count of zero retries to the retry package's
// negative sentinel, since zero there selects the default
func retryCount(n int) int {
	if n == 0 {
		return -1
	}
	return n
}
