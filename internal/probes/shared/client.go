// Package shared holds the HTTP plumbing common to all gateway probes.
package shared

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Timeout bounds every billing request. One attempt only: probes treat any
// failure as "not this backend", so a retry would just slow detection down.
const Timeout = 30 * time.Second

// maxBodyBytes caps how much of a response we read. Billing payloads are
// tiny; anything bigger is a misrouted endpoint.
const maxBodyBytes = 1 << 20

var httpClient = &http.Client{Timeout: Timeout}

// JoinURL appends path to base, tolerating a trailing slash on base.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

// Get issues a single GET with a bearer Authorization header and returns
// the response body. Non-2xx statuses are errors. Decoding stays with the
// callers so that parse failures classify separately from transport ones.
func Get(ctx context.Context, rawURL, apiKey string, params url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing url %q: %w", rawURL, err)
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", u.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", u.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, u.Path)
	}
	return body, nil
}
