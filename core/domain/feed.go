// ABOUTME: FeedDescriptor domain model describes one registered blog feed
// ABOUTME: Provides validation to ensure a registry entry can be fetched

package domain

import (
	"errors"
	"net/url"
)

// FeedDescriptor describes a blog feed supplied by the feed registry.
// Descriptors are immutable for the lifetime of the process.
type FeedDescriptor struct {
	// Title is the human-readable name of the blog
	Title string `json:"title" yaml:"title"`

	// RSSURL is the URL of the blog's RSS/Atom document
	RSSURL string `json:"rss" yaml:"rss"`

	// Image is the blog logo shown on the feed card
	Image string `json:"image" yaml:"image"`

	// Link is the blog's home page
	Link string `json:"link" yaml:"link"`

	// Description is a short blurb about the blog
	Description string `json:"description" yaml:"description"`
}

// Validate checks if the descriptor has the fields needed to fetch it
func (d *FeedDescriptor) Validate() error {
	if d.Title == "" {
		return errors.New("feed title cannot be empty")
	}

	if d.RSSURL == "" {
		return errors.New("feed rss url cannot be empty")
	}

	parsed, err := url.Parse(d.RSSURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("feed rss url is not valid format")
	}

	return nil
}
