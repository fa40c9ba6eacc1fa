package standard

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordingLogger struct {
	mu            sync.Mutex
	debugMessages []string
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugMessages = append(l.debugMessages, msg)
}
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  {}
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  {}
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {}

func TestNewStandardHTTPClient(t *testing.T) {
	client := NewStandardHTTPClient(10*time.Second, nil)

	if client.client.Timeout != 10*time.Second {
		t.Errorf("Client timeout = %v, want 10s", client.client.Timeout)
	}
	if client.client.Transport != http.DefaultTransport {
		t.Error("Client without logger should use the default transport")
	}
}

func TestStandardHTTPClient_Get_ProxyRequest(t *testing.T) {
	var captured *http.Request

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","items":[]}`))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10*time.Second, nil)
	resp, err := client.Get(context.Background(), server.URL+"/api.json?count=5&rss_url=https%3A%2F%2Fblog.test%2Ffeed")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	body, _ := io.ReadAll(resp.Body())
	resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode())
	}
	if resp.Header("content-type") != "application/json" {
		t.Errorf("Header(content-type) = %q", resp.Header("content-type"))
	}
	if string(body) != `{"status":"ok","items":[]}` {
		t.Errorf("Body = %s", body)
	}

	if captured.Method != http.MethodGet {
		t.Errorf("Method = %s, want GET", captured.Method)
	}
	if got := captured.URL.Query().Get("rss_url"); got != "https://blog.test/feed" {
		t.Errorf("rss_url = %q", got)
	}
	if !strings.Contains(captured.Header.Get("User-Agent"), "PortfolioFeeds") {
		t.Errorf("User-Agent = %q, should contain PortfolioFeeds", captured.Header.Get("User-Agent"))
	}
	if !strings.HasPrefix(captured.Header.Get("Accept"), "application/json") {
		t.Errorf("Accept = %q, should prefer application/json", captured.Header.Get("Accept"))
	}
}

func TestStandardHTTPClient_Get_ReturnsErrorStatuses(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10*time.Second, nil)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if attempts != 1 {
		t.Errorf("Attempts = %d, want 1", attempts)
	}
	if resp.StatusCode() != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", resp.StatusCode())
	}
}

func TestStandardHTTPClient_Get_HonoursContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10*time.Second, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	resp, err := client.Get(ctx, server.URL)
	if err == nil {
		resp.Body().Close()
		t.Fatal("Get should return error when the context deadline passes")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestStandardHTTPClient_Get_InvalidURL(t *testing.T) {
	client := NewStandardHTTPClient(10*time.Second, nil)

	if _, err := client.Get(context.Background(), "://missing-scheme"); err == nil {
		t.Error("Get should return error for invalid URL")
	}
}

func TestStandardHTTPClient_Get_LogsOutgoingRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewStandardHTTPClient(10*time.Second, logger)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if _, err := client.Get(context.Background(), "http://127.0.0.1:1"); err == nil {
		t.Fatal("Get to a closed port should fail")
	}

	want := []string{"Outgoing HTTP response", "Outgoing HTTP request failed"}
	if len(logger.debugMessages) != 2 || logger.debugMessages[0] != want[0] || logger.debugMessages[1] != want[1] {
		t.Errorf("debug messages = %v, want %v", logger.debugMessages, want)
	}
}
