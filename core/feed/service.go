// ABOUTME: Feed service fetches a registered feed through the cascading proxy services
// ABOUTME: Results are normalized, cached and classified independently of the HTTP layer

package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio-feeds-api/core/domain"
	coreerrors "portfolio-feeds-api/core/errors"
	"portfolio-feeds-api/core/interfaces"
	"portfolio-feeds-api/core/retry"
)

const (
	// DefaultCount is used when a fetch does not ask for a positive item count
	DefaultCount = 5

	// DefaultCacheTTL is how long a fetched result is reused
	DefaultCacheTTL = 5 * time.Minute
)

// Options configures a FeedService
type Options struct {
	Endpoints  Endpoints
	Strategies []Strategy
	Retry      retry.Options
	CacheTTL   time.Duration
}

// FeedService implements interfaces.FeedFetcher
type FeedService struct {
	deps       interfaces.Dependencies
	fetcher    *retry.Fetcher
	endpoints  Endpoints
	strategies []Strategy
	cacheTTL   time.Duration
}

// NewFeedService creates a new feed service instance
func NewFeedService(deps interfaces.Dependencies, opts Options) *FeedService {
	strategies := opts.Strategies
	if len(strategies) == 0 {
		strategies = DefaultStrategies
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &FeedService{
		deps:       deps,
		fetcher:    retry.NewFetcher(deps.HTTPClient, deps.Logger, opts.Retry),
		endpoints:  opts.Endpoints,
		strategies: strategies,
		cacheTTL:   ttl,
	}
}

// FetchFeed returns up to opts.Count normalized items from the first strategy that yields any.
// When every strategy fails the error is a *errors.AllSourcesExhaustedError.
func (s *FeedService) FetchFeed(ctx context.Context, feed domain.FeedDescriptor, opts interfaces.FetchOptions) ([]domain.FeedItem, error) {
	if feed.RSSURL == "" {
		return nil, &coreerrors.ValidationError{Field: "rss", Message: "feed RSS URL cannot be empty"}
	}

	count := opts.Count
	if count <= 0 {
		count = DefaultCount
	}

	if !opts.BypassCache {
		if items, ok := s.getCachedItems(ctx, feed.RSSURL, count); ok {
			s.debug("Serving feed from cache", map[string]interface{}{
				"feed":  feed.Title,
				"items": len(items),
			})
			return items, nil
		}
	}

	errs := make([]error, 0, len(s.strategies))
	for _, strategy := range s.strategies {
		raw, err := s.tryStrategy(ctx, strategy, feed.RSSURL, count)
		if err != nil {
			s.warn("RSS service failed", map[string]interface{}{
				"feed":     feed.Title,
				"strategy": strategy.String(),
				"error":    err.Error(),
			})
			errs = append(errs, err)

			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		items := normalize(raw, count)
		if err := s.cacheItems(ctx, feed.RSSURL, count, items); err != nil {
			s.warn("Failed to cache feed", map[string]interface{}{
				"feed":  feed.Title,
				"error": err.Error(),
			})
		}

		s.debug("Fetched feed", map[string]interface{}{
			"feed":     feed.Title,
			"strategy": strategy.String(),
			"items":    len(items),
		})
		return items, nil
	}

	exhausted := &coreerrors.AllSourcesExhaustedError{
		Feed:    feed.Title,
		Message: classifyFailure(errs),
		Errs:    errs,
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Error("All RSS services failed", map[string]interface{}{
			"feed":    feed.Title,
			"message": exhausted.Message,
			"error":   errors.Join(errs...).Error(),
		})
	}

	return nil, exhausted
}

// tryStrategy fetches and decodes one proxy service response
func (s *FeedService) tryStrategy(ctx context.Context, strategy Strategy, rssURL string, count int) ([]rawItem, error) {
	target, err := strategy.requestURL(s.endpoints, rssURL, count)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strategy, err)
	}

	if strategy == StrategyDirect {
		return nil, fmt.Errorf("XML parsing not implemented for direct RSS %s: %w", target, coreerrors.ErrNotImplemented)
	}

	body, err := s.fetcher.Get(ctx, target)
	if err != nil {
		return nil, err
	}

	return strategy.decode(body, rssURL, count)
}

func cacheKey(rssURL string, count int) string {
	return fmt.Sprintf("feed:%s:%d", rssURL, count)
}

// getCachedItems returns cached items; any cache error counts as a miss
func (s *FeedService) getCachedItems(ctx context.Context, rssURL string, count int) ([]domain.FeedItem, bool) {
	if s.deps.Cache == nil {
		return nil, false
	}

	data, err := s.deps.Cache.Get(ctx, cacheKey(rssURL, count))
	if err != nil || data == nil {
		return nil, false
	}

	var items []domain.FeedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}

	for i := range items {
		if items[i].Categories == nil {
			items[i].Categories = []string{}
		}
	}

	return items, true
}

// cacheItems stores a fetched result
func (s *FeedService) cacheItems(ctx context.Context, rssURL string, count int, items []domain.FeedItem) error {
	if s.deps.Cache == nil {
		return nil
	}

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	return s.deps.Cache.Set(ctx, cacheKey(rssURL, count), data, s.cacheTTL)
}

func (s *FeedService) debug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}

func (s *FeedService) warn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}
