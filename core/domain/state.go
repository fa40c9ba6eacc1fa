// ABOUTME: FeedState domain model tracks the load phase of one registered feed
// ABOUTME: Constructors keep the phase, items and error message consistent

package domain

import "time"

// Phase is the load phase of a feed
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// FeedState is the per-feed record owned by the feed state store.
// Items is non-empty only in PhaseReady and ErrorMessage is set only in PhaseError.
type FeedState struct {
	Phase         Phase
	Items         []FeedItem
	ErrorMessage  string
	LastUpdatedAt *time.Time
}

// LoadingState returns a state for a feed whose fetch is pending
func LoadingState() FeedState {
	return FeedState{Phase: PhaseLoading, Items: []FeedItem{}}
}

// ReadyState returns a state holding freshly fetched items
func ReadyState(items []FeedItem, at time.Time) FeedState {
	if items == nil {
		items = []FeedItem{}
	}
	return FeedState{Phase: PhaseReady, Items: items, LastUpdatedAt: &at}
}

// ErrorState returns a state for a feed whose fetch failed
func ErrorState(message string) FeedState {
	return FeedState{Phase: PhaseError, Items: []FeedItem{}, ErrorMessage: message}
}

// Clone returns a deep copy so callers cannot mutate store-owned slices
func (s FeedState) Clone() FeedState {
	out := s
	out.Items = make([]FeedItem, len(s.Items))
	for i, item := range s.Items {
		item.Categories = append([]string{}, item.Categories...)
		if item.PublishedAt != nil {
			published := *item.PublishedAt
			item.PublishedAt = &published
		}
		out.Items[i] = item
	}
	if s.LastUpdatedAt != nil {
		t := *s.LastUpdatedAt
		out.LastUpdatedAt = &t
	}
	return out
}
