// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, CORS, request logging and rate limiting

package api

import (
	"net/http"
	"time"

	"portfolio-feeds-api/api/middleware"
	"portfolio-feeds-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const (
	apiTitle       = "Portfolio Feeds API"
	apiVersion     = "1.0.0"
	apiDescription = "Aggregates the latest posts of a registry of blogs and exposes their load state"

	rateLimitIdleTTL = 3 * time.Minute
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger    interfaces.Logger
	RateLimit float64 // sustained requests per second per client IP
	RateBurst int     // burst size per client IP
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(corsHandler())

	api := humachi.New(router, apiConfig())

	// The OpenAPI spec is automatically available at /openapi.json
	// The Swagger UI is automatically available at /docs

	return api, router
}

// NewAPIWithMiddleware creates a new API with middleware configured.
// The returned limiter is nil when rate limiting is disabled; callers stop it on shutdown.
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router, *middleware.RateLimiter) {
	router := chi.NewRouter()

	// CORS should be first middleware
	router.Use(corsHandler())

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, rateLimitIdleTTL)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	api := humachi.New(router, apiConfig())

	return api, router, limiter
}

func apiConfig() huma.Config {
	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = apiDescription
	return config
}

func corsHandler() func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Burst", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})
}
