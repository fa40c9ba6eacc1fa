// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Bundles the cache, HTTP client and logger shared by the fetch pipeline

package interfaces

// Dependencies holds the external dependencies of the feed service
type Dependencies struct {
	// Cache holds fetched feed results; nil disables caching
	Cache Cache

	// HTTPClient reaches the proxy services
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
