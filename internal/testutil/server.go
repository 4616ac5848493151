package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ServerInstance represents a running HTTP test server.
type ServerInstance struct {
	BaseURL string
	Close   func()
}

// StartServer launches an in-memory HTTP server for handler.
// The server is closed when the test finishes.
func StartServer(t *testing.T, handler http.Handler) *ServerInstance {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &ServerInstance{
		BaseURL: server.URL,
		Close:   server.Close,
	}
}

// Get fetches baseURL+path and returns the status code and body.
func Get(t testing.TB, baseURL, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(baseURL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return resp.StatusCode, string(body)
}
