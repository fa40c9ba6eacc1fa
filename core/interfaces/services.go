// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts between the feed store, the feed service and the registry

package interfaces

import (
	"context"

	"portfolio-feeds-api/core/domain"
)

// FetchOptions controls a single feed fetch
type FetchOptions struct {
	// Count is the maximum number of items to return
	Count int

	// BypassCache forces a network fetch; the fresh result is still written through
	BypassCache bool
}

// FeedFetcher fetches and normalizes the items of one registered feed
type FeedFetcher interface {
	FetchFeed(ctx context.Context, feed domain.FeedDescriptor, opts FetchOptions) ([]domain.FeedItem, error)
}

// RegistryLoader loads the list of registered feeds
type RegistryLoader interface {
	Load(ctx context.Context) ([]domain.FeedDescriptor, error)
}
