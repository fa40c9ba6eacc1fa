// ABOUTME: Response DTOs for feed-related API endpoints
// ABOUTME: Provides structured responses with JSON serialization

package responses

import "time"

// FeedItemResponse represents a blog post in API responses
type FeedItemResponse struct {
	Title          string     `json:"title" doc:"Post title"`
	DisplayTitle   string     `json:"display_title" doc:"Title shortened for display"`
	Link           string     `json:"link" doc:"Link to the full post"`
	Description    string     `json:"description" doc:"Post description as supplied by the feed"`
	Excerpt        string     `json:"excerpt,omitempty" doc:"Plain-text description excerpt"`
	PublishedAt    *time.Time `json:"published_at,omitempty" doc:"Publication date"`
	PublishedLabel string     `json:"published_label,omitempty" doc:"Relative publication label such as 'Yesterday'"`
	Categories     []string   `json:"categories" doc:"Post categories"`
	Badge          string     `json:"badge,omitempty" doc:"First category, shown as a badge"`
}

// FeedResponse represents one registered feed and its load state
type FeedResponse struct {
	Index            int                `json:"index" doc:"Position of the feed in the registry"`
	Title            string             `json:"title" doc:"Blog title"`
	RSS              string             `json:"rss" doc:"Blog RSS URL"`
	Image            string             `json:"image,omitempty" doc:"Blog logo URL"`
	Link             string             `json:"link,omitempty" doc:"Blog home page"`
	Description      string             `json:"description,omitempty" doc:"Blog description"`
	Status           string             `json:"status" enum:"loading,ready,error" doc:"Load phase of the feed"`
	Items            []FeedItemResponse `json:"items" doc:"Latest posts, present when ready"`
	Error            string             `json:"error,omitempty" doc:"User-facing error message, present on error"`
	LastUpdatedAt    *time.Time         `json:"last_updated_at,omitempty" doc:"When the posts were last fetched"`
	ShowingLatest    bool               `json:"showing_latest" doc:"Whether only the latest items_per_feed posts are shown"`
	RetriesUsed      int                `json:"retries_used" doc:"Manual retries used since the last successful load"`
	RetriesRemaining int                `json:"retries_remaining" doc:"Manual retries still available"`
}

// FeedsResponse represents every registered feed
type FeedsResponse struct {
	Feeds        []FeedResponse `json:"feeds" doc:"Registered feeds in registry order"`
	TotalFeeds   int            `json:"total_feeds" doc:"Total number of feeds"`
	ItemsPerFeed int            `json:"items_per_feed" doc:"Maximum posts kept per feed"`
}

// RetryResponse acknowledges an accepted manual retry
type RetryResponse struct {
	Index            int    `json:"index" doc:"Feed index"`
	Status           string `json:"status" doc:"Load phase after the retry was accepted"`
	RetriesRemaining int    `json:"retries_remaining" doc:"Manual retries still available"`
}

// ReloadResponse reports the outcome of a registry reload
type ReloadResponse struct {
	TotalFeeds int `json:"total_feeds" doc:"Number of feeds registered"`
}

// HealthResponse represents service liveness
type HealthResponse struct {
	Status string `json:"status" doc:"Service status"`
	Feeds  int    `json:"feeds" doc:"Number of registered feeds"`
}
