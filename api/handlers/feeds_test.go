package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"portfolio-feeds-api/api/dto/responses"
	"portfolio-feeds-api/core/domain"
	"portfolio-feeds-api/core/errors"
	"portfolio-feeds-api/core/interfaces"
	"portfolio-feeds-api/core/store"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore is a mock implementation of the feed store
type mockStore struct {
	snapshot  store.Snapshot
	retryErr  error
	reloadErr error
	retried   []int
	reloaded  int
}

func (m *mockStore) Snapshot() store.Snapshot {
	return m.snapshot
}

func (m *mockStore) Get(index int) (store.Feed, error) {
	if index < 0 || index >= len(m.snapshot.Feeds) {
		return store.Feed{}, &errors.NotFoundError{Resource: "feed", ID: strconv.Itoa(index)}
	}
	return m.snapshot.Feeds[index], nil
}

func (m *mockStore) Retry(index int) error {
	if m.retryErr != nil {
		return m.retryErr
	}
	if _, err := m.Get(index); err != nil {
		return err
	}
	m.retried = append(m.retried, index)
	m.snapshot.Feeds[index].State = domain.LoadingState()
	m.snapshot.Feeds[index].Retries++
	return nil
}

func (m *mockStore) Reload(ctx context.Context, loader interfaces.RegistryLoader) error {
	m.reloaded++
	if m.reloadErr != nil {
		return m.reloadErr
	}
	feeds, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	m.snapshot = store.Snapshot{}
	for i, feed := range feeds {
		m.snapshot.Feeds = append(m.snapshot.Feeds, store.Feed{Index: i, Descriptor: feed, State: domain.LoadingState()})
	}
	return nil
}

func (m *mockStore) ItemsPerFeed() int     { return 5 }
func (m *mockStore) MaxManualRetries() int { return 3 }

type mockLoader struct {
	feeds []domain.FeedDescriptor
	err   error
}

func (m *mockLoader) Load(ctx context.Context) ([]domain.FeedDescriptor, error) {
	return m.feeds, m.err
}

func sampleStore() *mockStore {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	return &mockStore{
		snapshot: store.Snapshot{Feeds: []store.Feed{
			{
				Index:      0,
				Descriptor: domain.FeedDescriptor{Title: "Ready Blog", RSSURL: "https://ready.test/feed"},
				State:      domain.ReadyState([]domain.FeedItem{{Title: "Post", Link: "https://ready.test/p", Categories: []string{}}}, now),
			},
			{
				Index:      1,
				Descriptor: domain.FeedDescriptor{Title: "Broken Blog", RSSURL: "https://broken.test/feed"},
				State:      domain.ErrorState("RSS feed not found - URL may be incorrect"),
				Retries:    1,
			},
		}},
	}
}

func newTestAPI(t *testing.T, feedStore FeedStore, loader interfaces.RegistryLoader) humatest.TestAPI {
	_, api := humatest.New(t)
	NewFeedHandler(feedStore, loader).RegisterRoutes(api)
	NewHealthHandler(feedStore).RegisterRoutes(api)
	return api
}

func TestFeedHandler_RegisterRoutes(t *testing.T) {
	api := newTestAPI(t, sampleStore(), nil)

	openapi := api.OpenAPI()
	for _, path := range []string{"/feeds", "/feeds/{index}", "/feeds/{index}/retry", "/registry/reload", "/health"} {
		assert.NotNil(t, openapi.Paths[path], "path %s should be registered", path)
	}
	assert.NotNil(t, openapi.Paths["/feeds/{index}/retry"].Post)
}

func TestListFeeds(t *testing.T) {
	api := newTestAPI(t, sampleStore(), nil)

	resp := api.Get("/feeds")
	require.Equal(t, http.StatusOK, resp.Code)

	var body responses.FeedsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 2, body.TotalFeeds)
	assert.Equal(t, 5, body.ItemsPerFeed)
	assert.Equal(t, "ready", body.Feeds[0].Status)
	assert.Len(t, body.Feeds[0].Items, 1)
	assert.Equal(t, "error", body.Feeds[1].Status)
	assert.Equal(t, "RSS feed not found - URL may be incorrect", body.Feeds[1].Error)
	assert.Equal(t, 2, body.Feeds[1].RetriesRemaining)
}

func TestListFeeds_ConfigurationError(t *testing.T) {
	feedStore := &mockStore{snapshot: store.Snapshot{
		ConfigErr: &errors.ConfigurationError{Message: "No blog feeds configured"},
	}}
	api := newTestAPI(t, feedStore, nil)

	resp := api.Get("/feeds")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), "No blog feeds configured")
}

func TestGetFeed(t *testing.T) {
	api := newTestAPI(t, sampleStore(), nil)

	resp := api.Get("/feeds/0")
	require.Equal(t, http.StatusOK, resp.Code)

	var body responses.FeedResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Ready Blog", body.Title)
	assert.Equal(t, "https://ready.test/feed", body.RSS)
}

func TestGetFeed_NotFound(t *testing.T) {
	api := newTestAPI(t, sampleStore(), nil)

	resp := api.Get("/feeds/9")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRetryFeed_Accepted(t *testing.T) {
	feedStore := sampleStore()
	api := newTestAPI(t, feedStore, nil)

	resp := api.Post("/feeds/1/retry")
	require.Equal(t, http.StatusAccepted, resp.Code)

	var body responses.RetryResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Index)
	assert.Equal(t, "loading", body.Status)
	assert.Equal(t, 1, body.RetriesRemaining)
	assert.Equal(t, []int{1}, feedStore.retried)
}

func TestRetryFeed_LimitReached(t *testing.T) {
	feedStore := sampleStore()
	feedStore.retryErr = errors.ErrRetryLimitReached
	api := newTestAPI(t, feedStore, nil)

	resp := api.Post("/feeds/1/retry")

	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
}

func TestRetryFeed_UnknownIndex(t *testing.T) {
	api := newTestAPI(t, sampleStore(), nil)

	resp := api.Post("/feeds/5/retry")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestReloadRegistry(t *testing.T) {
	feedStore := sampleStore()
	loader := &mockLoader{feeds: []domain.FeedDescriptor{
		{Title: "A", RSSURL: "https://a.test/feed"},
		{Title: "B", RSSURL: "https://b.test/feed"},
		{Title: "C", RSSURL: "https://c.test/feed"},
	}}
	api := newTestAPI(t, feedStore, loader)

	resp := api.Post("/registry/reload")
	require.Equal(t, http.StatusOK, resp.Code)

	var body responses.ReloadResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 3, body.TotalFeeds)
	assert.Equal(t, 1, feedStore.reloaded)
}

func TestReloadRegistry_InvalidRegistry(t *testing.T) {
	feedStore := sampleStore()
	loader := &mockLoader{err: &errors.ConfigurationError{Message: "Invalid blog registry"}}
	api := newTestAPI(t, feedStore, loader)

	resp := api.Post("/registry/reload")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid blog registry")
}

func TestReloadRegistry_NotConfigured(t *testing.T) {
	feedStore := sampleStore()
	api := newTestAPI(t, feedStore, nil)

	resp := api.Post("/registry/reload")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, 0, feedStore.reloaded)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, sampleStore(), nil)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body responses.HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 2, body.Feeds)
}

func TestHealth_Degraded(t *testing.T) {
	feedStore := &mockStore{snapshot: store.Snapshot{ConfigErr: &errors.ConfigurationError{Message: "x"}}}
	api := newTestAPI(t, feedStore, nil)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "degraded")
}
