package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func scrapeOK(markdown, title string) []byte {
	b, _ := json.Marshal(map[string]any{
		"success": true,
		"data": map[string]any{
			"markdown": markdown,
			"metadata": map[string]any{
				"title":      title,
				"statusCode": 200,
			},
		},
	})
	return b
}

func TestScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/scrape" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer fc-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if req["url"] != "https://example.com/case" {
			t.Errorf("unexpected url in request: %v", req["url"])
		}
		w.Write(scrapeOK("# Case\n\nBody.", "Case Page"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "fc-key", 3)
	page, err := c.Scrape(context.Background(), "https://example.com/case")
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if page.Title != "Case Page" || !strings.Contains(page.Markdown, "Body.") {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestScrapeRetriesRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(scrapeOK("recovered", ""))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 3)
	c.http.RetryWaitMin = 0
	c.http.RetryWaitMax = 0

	page, err := c.Scrape(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("scrape after retry: %v", err)
	}
	if page.Markdown != "recovered" {
		t.Errorf("unexpected markdown %q", page.Markdown)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected 2 attempts, got %d", n)
	}
}

func TestScrapeClientErrorFatal(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 3)
	c.http.RetryWaitMin = 0
	c.http.RetryWaitMax = 0

	if _, err := c.Scrape(context.Background(), "https://example.com"); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("client errors must not be retried, got %d attempts", n)
	}
}

func TestScrapeBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "blocked by robots.txt"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 1)
	_, err := c.Scrape(context.Background(), "https://example.com")
	if err == nil || !strings.Contains(err.Error(), "robots.txt") {
		t.Errorf("expected backend error surfaced, got %v", err)
	}
}
