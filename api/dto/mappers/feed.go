// ABOUTME: Mappers for converting between store views and API DTOs
// ABOUTME: Computes presentation fields such as excerpts and relative dates

package mappers

import (
	"time"

	"portfolio-feeds-api/api/dto/responses"
	"portfolio-feeds-api/core/domain"
	"portfolio-feeds-api/core/store"
	"portfolio-feeds-api/pkg/utils/duration"
	"portfolio-feeds-api/pkg/utils/html"
)

const (
	displayTitleLength = 80
	excerptLength      = 120
)

// Limits carries the store bounds needed to derive presentation fields
type Limits struct {
	ItemsPerFeed     int
	MaxManualRetries int
}

// ToFeedsResponse converts a store snapshot to a FeedsResponse DTO
func ToFeedsResponse(snap store.Snapshot, limits Limits, now time.Time) *responses.FeedsResponse {
	feeds := make([]responses.FeedResponse, 0, len(snap.Feeds))
	for _, feed := range snap.Feeds {
		feeds = append(feeds, ToFeedResponse(feed, limits, now))
	}

	return &responses.FeedsResponse{
		Feeds:        feeds,
		TotalFeeds:   len(feeds),
		ItemsPerFeed: limits.ItemsPerFeed,
	}
}

// ToFeedResponse converts a store feed view to a FeedResponse DTO
func ToFeedResponse(feed store.Feed, limits Limits, now time.Time) responses.FeedResponse {
	items := make([]responses.FeedItemResponse, 0, len(feed.State.Items))
	for _, item := range feed.State.Items {
		items = append(items, ToFeedItemResponse(item, now))
	}

	remaining := limits.MaxManualRetries - feed.Retries
	if remaining < 0 {
		remaining = 0
	}

	return responses.FeedResponse{
		Index:            feed.Index,
		Title:            feed.Descriptor.Title,
		RSS:              feed.Descriptor.RSSURL,
		Image:            feed.Descriptor.Image,
		Link:             feed.Descriptor.Link,
		Description:      feed.Descriptor.Description,
		Status:           string(feed.State.Phase),
		Items:            items,
		Error:            feed.State.ErrorMessage,
		LastUpdatedAt:    feed.State.LastUpdatedAt,
		ShowingLatest:    feed.State.Phase == domain.PhaseReady && limits.ItemsPerFeed > 0 && len(items) >= limits.ItemsPerFeed,
		RetriesUsed:      feed.Retries,
		RetriesRemaining: remaining,
	}
}

// ToFeedItemResponse converts a domain FeedItem to a FeedItemResponse DTO
func ToFeedItemResponse(item domain.FeedItem, now time.Time) responses.FeedItemResponse {
	categories := item.Categories
	if categories == nil {
		categories = []string{}
	}

	response := responses.FeedItemResponse{
		Title:        item.Title,
		DisplayTitle: html.Truncate(item.Title, displayTitleLength),
		Link:         item.Link,
		Description:  item.Description,
		Excerpt:      html.Excerpt(item.Description, excerptLength),
		PublishedAt:  item.PublishedAt,
		Categories:   categories,
	}

	if item.PublishedAt != nil {
		response.PublishedLabel = duration.RelativeLabel(*item.PublishedAt, now)
	}
	if len(categories) > 0 {
		response.Badge = categories[0]
	}

	return response
}
