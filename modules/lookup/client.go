package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// userAgent matches what the upstream APIs expect from API clients.
const userAgent = "xiaoxiaoapi/1.0.0"

// Fetcher is the shared HTTP client for lookup adapters. Deadlines come
// from the caller's context; the router bounds every lookup.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the default transport.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{}}
}

// GetJSON fetches a URL and parses the body as JSON.
func (f *Fetcher) GetJSON(ctx context.Context, url string) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("invalid JSON response")
	}
	return gjson.ParseBytes(body), nil
}

// strOr returns the first non-empty string among the given paths, or
// the fallback.
func strOr(res gjson.Result, fallback string, paths ...string) string {
	for _, p := range paths {
		if v := res.Get(p).String(); v != "" {
			return v
		}
	}
	return fallback
}
