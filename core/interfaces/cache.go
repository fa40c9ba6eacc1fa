// Package interfaces defines the contracts between the core pipeline and its
// infrastructure so that every component can be tested with fakes.
package interfaces

import (
	"context"
	"time"
)

// Cache stores fetched feed results as opaque bytes.
// The feed service writes normalized items under keys of the form
// "feed:<rss url>:<count>" and treats every Get error as a miss:
//
//	data, err := cache.Get(ctx, "feed:https://blog.test/feed:5")
//	if err != nil {
//		// fetch from the proxies, then
//		cache.Set(ctx, "feed:https://blog.test/feed:5", encoded, 5*time.Minute)
//	}
type Cache interface {
	// Get returns the value for key, or an error when it is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for ttl. A ttl of 0 never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
