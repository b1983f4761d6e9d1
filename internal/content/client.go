// Package content talks to the external article API.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotFound reports a 404 for a specific article id.
	ErrNotFound = errors.New("content: article not found")
	// ErrUpstream covers every other upstream failure: transport errors,
	// non-2xx statuses, malformed JSON, and a 2xx body missing its payload.
	ErrUpstream = errors.New("content: upstream failure")
)

// Client fetches articles from the content API. All calls are bounded by the
// configured timeout; a timeout degrades exactly like any other fetch
// failure.
type Client struct {
	origin string
	http   *http.Client
}

// NewClient builds a Client against the given API origin.
func NewClient(origin string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		origin: strings.TrimRight(origin, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(),
		},
	}
}

type articleEnvelope struct {
	Article *Article `json:"article"`
}

type listEnvelope struct {
	Articles []Article `json:"articles"`
}

// GetArticle fetches a single article by id.
func (c *Client) GetArticle(ctx context.Context, id int64) (*Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/articles/%d", c.origin, id), nil)
	if err != nil {
		return nil, fmt.Errorf("build article request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	var env articleEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decode article: %v", ErrUpstream, err)
	}
	if env.Article == nil {
		return nil, fmt.Errorf("%w: response missing article", ErrUpstream)
	}
	return env.Article, nil
}

// ListArticles fetches the full collection in a single call. The API does
// not paginate, which caps how large a catalog the sitemap can cover.
func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.origin+"/api/articles", nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	var env listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decode articles: %v", ErrUpstream, err)
	}
	return env.Articles, nil
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
