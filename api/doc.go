// Package api provides the HTTP API layer for the Portfolio Feeds service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers over the feed state store
// - dto/: Data Transfer Objects and mappers for responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
//	GET  /feeds                 every registered feed with its load state
//	GET  /feeds/{index}         one feed
//	POST /feeds/{index}/retry   schedule a manual retry (202, or 429 once retries are used up)
//	POST /registry/reload       re-read the blog registry
//	GET  /health                liveness
//
// The OpenAPI spec is available at /openapi.json and the Swagger UI at /docs.
//
// # Usage Example
//
//	humaAPI, router, limiter := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:    logger,
//	    RateLimit: 5,
//	    RateBurst: 20,
//	})
//	defer limiter.Stop()
//
//	handlers.NewFeedHandler(feedStore, loader).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 format produced by Huma:
//
//	{
//	    "status": 404,
//	    "title": "Not Found",
//	    "detail": "feed not found: 9"
//	}
package api
