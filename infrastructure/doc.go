// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: in-process cache backed by patrickmn/go-cache
// - cache/redis: shared cache backed by go-redis
// - http/standard: net/http client that sets proxy request headers
// - logger/structured: logrus logger with optional lumberjack file rotation
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 5*time.Minute)
//	value, err := cache.Get(ctx, "key")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address:   "localhost:6379",
//	    KeyPrefix: "portfolio-feeds:",
//	})
//
// # Logger
//
//	logger := structured.NewLogger(structured.Options{Level: "info", Format: "json"})
//	logger.Info("Feed loaded", map[string]interface{}{
//	    "feed":  "Example Blog",
//	    "items": 5,
//	})
package infrastructure
