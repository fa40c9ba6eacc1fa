package feed

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"portfolio-feeds-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	mu      sync.Mutex
	urls    []string
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	m.mu.Lock()
	m.urls = append(m.urls, url)
	m.mu.Unlock()

	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, errors.New("no response configured")
}

// requested returns how many requests went to URLs starting with prefix
func (m *mockHTTPClient) requested(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int
	for _, u := range m.urls {
		if strings.HasPrefix(u, prefix) {
			n++
		}
	}
	return n
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMockCache() *mockCache {
	return &mockCache{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) record(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, level+": "+msg)
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.record("debug", msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.record("info", msg) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.record("warn", msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.record("error", msg) }

func (m *mockLogger) count(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int
	for _, msg := range m.messages {
		if strings.HasPrefix(msg, prefix) {
			n++
		}
	}
	return n
}
