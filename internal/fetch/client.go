// Package fetch calls the scrape backend through its documented HTTP
// contract. Transient failures (429, 5xx) are retried with exponential
// backoff up to a bounded attempt count; client errors fail immediately.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Page is the scraped view of one URL.
type Page struct {
	URL        string `json:"url"`
	Title      string `json:"title,omitempty"`
	Markdown   string `json:"markdown"`
	StatusCode int    `json:"status_code,omitempty"`
}

// Client talks to a Firecrawl-compatible scrape endpoint.
type Client struct {
	endpoint string
	apiKey   string
	http     *retryablehttp.Client
}

// NewClient builds a scrape client. retryMax bounds retries against
// rate-limit and server errors.
func NewClient(endpoint, apiKey string, retryMax int) *Client {
	if retryMax <= 0 {
		retryMax = 3
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.RetryWaitMin = 1 * time.Second
	rc.RetryWaitMax = 30 * time.Second
	rc.Logger = nil

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		http:     rc,
	}
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		Markdown string `json:"markdown"`
		Metadata struct {
			Title      string `json:"title"`
			SourceURL  string `json:"sourceURL"`
			StatusCode int    `json:"statusCode"`
		} `json:"metadata"`
	} `json:"data"`
}

// Scrape fetches one URL as markdown.
func (c *Client) Scrape(ctx context.Context, url string) (*Page, error) {
	body, err := json.Marshal(scrapeRequest{URL: url, Formats: []string{"markdown"}})
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", url, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: read response: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scrape %s: backend returned %d: %s", url, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var sr scrapeResponse
	if err := json.Unmarshal(b, &sr); err != nil {
		return nil, fmt.Errorf("scrape %s: decode response: %w", url, err)
	}
	if !sr.Success {
		return nil, fmt.Errorf("scrape %s: backend error: %s", url, sr.Error)
	}

	return &Page{
		URL:        url,
		Title:      sr.Data.Metadata.Title,
		Markdown:   sr.Data.Markdown,
		StatusCode: sr.Data.Metadata.StatusCode,
	}, nil
}
