// ABOUTME: FeedItem domain model represents one normalized blog post
// ABOUTME: Produced from heterogeneous proxy responses by the feed service

package domain

import "time"

// UntitledPost is the title given to items whose title could not be determined.
// Items carrying it are dropped during normalization.
const UntitledPost = "Untitled Post"

// FeedItem represents an individual post in a feed
type FeedItem struct {
	// Title is the post headline
	Title string `json:"title"`

	// Link is the URL to the full post
	Link string `json:"link"`

	// Description is the post summary; empty when the source had none
	Description string `json:"description"`

	// PublishedAt is when the post was published; nil when unknown
	PublishedAt *time.Time `json:"published_at"`

	// Categories lists the post categories in source order, never nil
	Categories []string `json:"categories"`
}

// IsValid checks if the feed item has a usable title
func (fi *FeedItem) IsValid() bool {
	return fi.Title != "" && fi.Title != UntitledPost
}
