// Package core contains the business logic of the feed aggregation pipeline.
// It is framework-agnostic; all external dependencies are injected via interfaces.
//
// The core package is organized into several sub-packages:
//
// - domain: FeedDescriptor, FeedItem and FeedState models
// - registry: loads the blog registry from a JSON/YAML file or URL
// - retry: HTTP GET with per-attempt timeouts and exponential backoff
// - feed: fetches one feed through the proxy strategies and normalizes its items
// - store: owns the per-feed load state, manual retries and periodic refresh
// - errors: custom error types for classification and API responses
// - interfaces: contracts for external dependencies (cache, HTTP, logger)
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,
//	    HTTPClient: myHTTPClient,
//	    Logger:     myLogger,
//	}
//
//	feedService := feed.NewFeedService(deps, feed.Options{Endpoints: endpoints})
//	feedStore := store.New(feedService, myLogger, store.DefaultOptions())
//	feedStore.Reload(ctx, registry.NewLoader("blogs.json", myHTTPClient))
//	feedStore.Start()
//	defer feedStore.Stop()
package core
