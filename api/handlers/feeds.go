// ABOUTME: Feed handlers for the Huma API
// ABOUTME: Exposes the feed store state, manual retries and registry reloads

package handlers

import (
	"context"
	"net/http"
	"time"

	"portfolio-feeds-api/api/dto/mappers"
	"portfolio-feeds-api/api/dto/responses"
	"portfolio-feeds-api/core/interfaces"
	"portfolio-feeds-api/core/store"

	"github.com/danielgtaylor/huma/v2"
)

// FeedStore is the subset of the feed state store used by the handlers
type FeedStore interface {
	Snapshot() store.Snapshot
	Get(index int) (store.Feed, error)
	Retry(index int) error
	Reload(ctx context.Context, loader interfaces.RegistryLoader) error
	ItemsPerFeed() int
	MaxManualRetries() int
}

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	store  FeedStore
	loader interfaces.RegistryLoader
	now    func() time.Time
}

// NewFeedHandler creates a new feed handler. loader may be nil, in which
// case registry reloads are rejected.
func NewFeedHandler(feedStore FeedStore, loader interfaces.RegistryLoader) *FeedHandler {
	return &FeedHandler{
		store:  feedStore,
		loader: loader,
		now:    time.Now,
	}
}

// RegisterRoutes registers all feed-related routes
func (h *FeedHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listFeeds",
		Method:      http.MethodGet,
		Path:        "/feeds",
		Summary:     "List registered feeds",
		Description: "Returns every registered blog feed with its load state and latest posts",
		Tags:        []string{"Feeds"},
	}, h.ListFeeds)

	huma.Register(api, huma.Operation{
		OperationID: "getFeed",
		Method:      http.MethodGet,
		Path:        "/feeds/{index}",
		Summary:     "Get one feed",
		Description: "Returns one registered blog feed by its registry position",
		Tags:        []string{"Feeds"},
	}, h.GetFeed)

	huma.Register(api, huma.Operation{
		OperationID:   "retryFeed",
		Method:        http.MethodPost,
		Path:          "/feeds/{index}/retry",
		Summary:       "Retry a feed",
		Description:   "Schedules a manual re-fetch that bypasses the cache. Each feed allows a limited number of retries until it loads.",
		Tags:          []string{"Feeds"},
		DefaultStatus: http.StatusAccepted,
	}, h.RetryFeed)

	huma.Register(api, huma.Operation{
		OperationID: "reloadRegistry",
		Method:      http.MethodPost,
		Path:        "/registry/reload",
		Summary:     "Reload the feed registry",
		Description: "Re-reads the blog registry and restarts the initial load of every feed",
		Tags:        []string{"Registry"},
	}, h.ReloadRegistry)
}

// FeedIndexInput identifies a feed by its registry position
type FeedIndexInput struct {
	Index int `path:"index" minimum:"0" doc:"Position of the feed in the registry"`
}

// ListFeedsOutput defines the output for the ListFeeds operation
type ListFeedsOutput struct {
	Body responses.FeedsResponse
}

// ListFeeds handles the GET /feeds endpoint
func (h *FeedHandler) ListFeeds(ctx context.Context, input *struct{}) (*ListFeedsOutput, error) {
	snap := h.store.Snapshot()
	if snap.ConfigErr != nil {
		return nil, toHumaError(snap.ConfigErr)
	}

	return &ListFeedsOutput{
		Body: *mappers.ToFeedsResponse(snap, h.limits(), h.now()),
	}, nil
}

// GetFeedOutput defines the output for the GetFeed operation
type GetFeedOutput struct {
	Body responses.FeedResponse
}

// GetFeed handles the GET /feeds/{index} endpoint
func (h *FeedHandler) GetFeed(ctx context.Context, input *FeedIndexInput) (*GetFeedOutput, error) {
	feed, err := h.store.Get(input.Index)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &GetFeedOutput{
		Body: mappers.ToFeedResponse(feed, h.limits(), h.now()),
	}, nil
}

// RetryFeedOutput defines the output for the RetryFeed operation
type RetryFeedOutput struct {
	Body responses.RetryResponse
}

// RetryFeed handles the POST /feeds/{index}/retry endpoint
func (h *FeedHandler) RetryFeed(ctx context.Context, input *FeedIndexInput) (*RetryFeedOutput, error) {
	if err := h.store.Retry(input.Index); err != nil {
		return nil, toHumaError(err)
	}

	feed, err := h.store.Get(input.Index)
	if err != nil {
		return nil, toHumaError(err)
	}
	response := mappers.ToFeedResponse(feed, h.limits(), h.now())

	return &RetryFeedOutput{
		Body: responses.RetryResponse{
			Index:            input.Index,
			Status:           response.Status,
			RetriesRemaining: response.RetriesRemaining,
		},
	}, nil
}

// ReloadRegistryOutput defines the output for the ReloadRegistry operation
type ReloadRegistryOutput struct {
	Body responses.ReloadResponse
}

// ReloadRegistry handles the POST /registry/reload endpoint
func (h *FeedHandler) ReloadRegistry(ctx context.Context, input *struct{}) (*ReloadRegistryOutput, error) {
	if h.loader == nil {
		return nil, huma.Error503ServiceUnavailable("Registry reload is not configured")
	}

	if err := h.store.Reload(ctx, h.loader); err != nil {
		return nil, toHumaError(err)
	}

	return &ReloadRegistryOutput{
		Body: responses.ReloadResponse{TotalFeeds: len(h.store.Snapshot().Feeds)},
	}, nil
}

func (h *FeedHandler) limits() mappers.Limits {
	return mappers.Limits{
		ItemsPerFeed:     h.store.ItemsPerFeed(),
		MaxManualRetries: h.store.MaxManualRetries(),
	}
}
