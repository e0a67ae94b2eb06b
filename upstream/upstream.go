package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"intent-chat/metrics"
)

const (
	DefaultCountriesURL   = "https://restcountries.com/v3.1"
	DefaultNationalizeURL = "https://api.nationalize.io"
	DefaultTimeout        = 5 * time.Second

	// Upstream error bodies are only kept for logging, no need to hold on to more than this
	maxErrorBody = 512
)

var (
	// ErrNotFound is returned when the country API answers with a non-success status.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned when the nationality API answers with a non-success status.
	ErrUnavailable = errors.New("unavailable")
)

// NewHTTPClient returns the client shared by the lookups. Every call is bounded by timeout
// even when the caller's context has no deadline.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

type response struct {
	StatusCode int
	Body       []byte
}

func (r response) snippet() string {
	if len(r.Body) > maxErrorBody {
		return string(r.Body[:maxErrorBody])
	}
	return string(r.Body)
}

func get(ctx context.Context, client *http.Client, api string, rawURL string) (*response, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", api, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		metrics.UpstreamDuration.WithLabelValues(api, "error").Observe(time.Since(start).Seconds())
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactKey(urlErr.URL)
		}
		return nil, fmt.Errorf("failed to call %s: %w", api, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.UpstreamDuration.WithLabelValues(api, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response body: %w", api, err)
	}

	return &response{StatusCode: resp.StatusCode, Body: body}, nil
}

// redactKey hides the api key in URLs that end up in error messages shown to users.
func redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Get("apikey") == "" {
		return raw
	}
	q.Set("apikey", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}
